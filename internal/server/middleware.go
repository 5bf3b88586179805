package server

import (
	"net/http"
	"time"

	"github.com/agenthands/agentflow/internal/session"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const stateKey = "session"

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("ip", c.ClientIP()))
	}
}

// cors echoes allowed origins. Credentials are only allowed for explicit
// origins, never for a "*" match.
func cors(allowed []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		wildcard, explicit := false, false
		for _, o := range allowed {
			if o == "*" {
				wildcard = true
			} else if o == origin {
				explicit = true
			}
		}

		if origin != "" && (wildcard || explicit) {
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type")
			h.Add("Vary", "Origin")
			if explicit {
				h.Set("Access-Control-Allow-Credentials", "true")
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// withSession resolves the browser's State from its cookie, issuing a new
// cookie when the session is new.
func (s *Server) withSession(c *gin.Context) {
	id, _ := c.Cookie(SessionCookie)
	st, created := s.sessions.Get(id)
	if created {
		maxAge := int(s.cfg.SessionTTL.Seconds())
		http.SetCookie(c.Writer, &http.Cookie{
			Name:     SessionCookie,
			Value:    st.ID(),
			Path:     "/",
			MaxAge:   maxAge,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	c.Set(stateKey, st)
	c.Next()
}

func stateOf(c *gin.Context) *session.State {
	return c.MustGet(stateKey).(*session.State)
}
