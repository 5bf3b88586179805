package server

import (
	"errors"
	"net/http"

	"github.com/agenthands/agentflow/internal/agent"
	"github.com/agenthands/agentflow/internal/chat"
	"github.com/agenthands/agentflow/internal/session"
	"github.com/agenthands/agentflow/internal/validation"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func statusOf(err error) int {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr), errors.Is(err, agent.ErrUnknownMode):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrRunInProgress), errors.Is(err, chat.ErrBusy):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(c *gin.Context, err error) {
	code := statusOf(err)
	if code == http.StatusInternalServerError {
		s.logger.Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.JSON(code, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
}
