// Package api exposes the planner as a JSON HTTP API.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ukprmenbersaku-abc/help-study/internal/planner"
)

type Handler struct {
	svc           *planner.Service
	logger        *zap.Logger
	deadlineLimit int
}

func NewHandler(svc *planner.Service, logger *zap.Logger, deadlineLimit int) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if deadlineLimit <= 0 {
		deadlineLimit = 5
	}
	return &Handler{svc: svc, logger: logger, deadlineLimit: deadlineLimit}
}

// NewRouter builds the gin engine with every API route registered.
func NewRouter(h *Handler, debug bool) *gin.Engine {
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(RequestID(), Logger(h.logger), Recovery(h.logger))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.GET("/progress", h.GetProgress)

	api.GET("/subjects", h.ListSubjects)
	api.POST("/subjects", h.CreateSubject)
	api.PUT("/subjects/:id", h.UpdateSubject)
	api.DELETE("/subjects/:id", h.DeleteSubject)

	api.GET("/tasks", h.ListTasks)
	api.POST("/tasks", h.CreateTask)
	api.GET("/tasks/:id", h.GetTask)
	api.PUT("/tasks/:id", h.UpdateTask)
	api.DELETE("/tasks/:id", h.DeleteTask)
	api.POST("/tasks/:id/toggle", h.ToggleTask)

	api.POST("/suggestions/import", h.ImportSuggestions)
	api.GET("/today", h.Today)
	api.GET("/deadlines", h.Deadlines)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
	return r
}

// Serve runs the API on addr until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, addr string, handler http.Handler, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	logger.Info("server shutting down")
	return srv.Shutdown(shutdownCtx)
}
