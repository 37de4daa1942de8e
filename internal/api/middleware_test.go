package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newMiddlewareEngine(log *zap.Logger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), Logger(log), Recovery(log))
	r.GET("/api/tasks/:id", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"id": c.Param("id")}) })
	r.GET("/boom", func(c *gin.Context) { panic("boom") })
	return r
}

func TestLoggerUsesRoutePattern(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := newMiddlewareEngine(zap.New(core))

	for _, path := range []string{"/api/tasks/a1", "/api/tasks/b2"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, w.Code)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

	entries := logs.FilterMessage("http").All()
	require.Len(t, entries, 3)
	assert.Equal(t, "/api/tasks/:id", entries[0].ContextMap()["route"])
	assert.Equal(t, "/api/tasks/:id", entries[1].ContextMap()["route"])
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "unmatched", entries[2].ContextMap()["route"])
	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
}

func TestRequestIDHeader(t *testing.T) {
	r := newMiddlewareEngine(zap.NewNop())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/tasks/x", nil))
	assert.Len(t, w.Header().Get(RequestIDHeader), 36)

	req := httptest.NewRequest(http.MethodGet, "/api/tasks/x", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestRecoveryReturns500WithRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := newMiddlewareEngine(zap.New(core))

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "req-1")
	panics := logs.FilterMessage("panic recovered").All()
	require.Len(t, panics, 1)
	assert.Equal(t, "/boom", panics[0].ContextMap()["route"])
}
