package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ukprmenbersaku-abc/help-study/internal/planner"
	"github.com/ukprmenbersaku-abc/help-study/internal/suggest"
)

func statusOf(err error) int {
	var verr planner.ValidationError
	switch {
	case errors.As(err, &verr), errors.Is(err, suggest.ErrEmptyPlan):
		return http.StatusBadRequest
	case errors.Is(err, planner.ErrTaskNotFound), errors.Is(err, planner.ErrSubjectNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) fail(c *gin.Context, err error) {
	status := statusOf(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", zap.String("route", c.FullPath()), zap.String("request_id", requestID(c)), zap.Error(err))
		msg = "internal server error"
	}
	c.JSON(status, gin.H{"error": msg})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
