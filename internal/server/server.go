// Package server exposes agent runs, history, chat and auth over HTTP.
package server

import (
	"context"
	"net/http"

	"github.com/agenthands/agentflow/internal/auth"
	"github.com/agenthands/agentflow/internal/chat"
	"github.com/agenthands/agentflow/internal/config"
	"github.com/agenthands/agentflow/internal/history"
	"github.com/agenthands/agentflow/internal/logging"
	"github.com/agenthands/agentflow/internal/session"
	"github.com/agenthands/agentflow/internal/workflow"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionCookie carries the browser id.
const SessionCookie = "agentflow_sid"

type Deps struct {
	Generator workflow.Generator
	Replier   chat.Replier
	History   *history.Manager
	Auth      auth.Authenticator
	Config    config.ServerConfig
	// SupervisorTemperature is passed to every controller.
	SupervisorTemperature float32
	Logger                *zap.Logger
}

type Server struct {
	gen      workflow.Generator
	history  *history.Manager
	auth     auth.Authenticator
	sessions *session.Manager
	cfg      config.ServerConfig
	supTemp  float32
	logger   *zap.Logger
}

func New(d Deps) *Server {
	logger := logging.OrNop(d.Logger)
	s := &Server{
		gen:     d.Generator,
		history: d.History,
		auth:    d.Auth,
		cfg:     d.Config,
		supTemp: d.SupervisorTemperature,
		logger:  logger,
	}
	s.sessions = session.NewManager(d.Config.SessionTTL.Duration, func() *chat.Session {
		return chat.NewSession(d.Replier, logger)
	}, logger)
	s.sessions.OnEvict = s.history.Forget
	return s
}

func (s *Server) Sessions() *session.Manager { return s.sessions }

// runner builds a controller that records into the history of st.
func (s *Server) runner(ctx context.Context, st *session.State) *workflow.Controller {
	return workflow.NewController(s.gen, s.history.For(ctx, st.ID()),
		workflow.WithSupervisorTemperature(s.supTemp),
		workflow.WithLogger(s.logger.With(zap.String("session", st.ID()))),
	)
}

func (s *Server) SetupRouter() *gin.Engine {
	if !s.cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.logger), cors(s.cfg.AllowedOrigins))

	r.GET("/healthz", s.Health)

	api := r.Group("/api")
	api.GET("/agents", s.ListAgents)

	api.Use(s.withSession)
	api.GET("/session", s.GetSession)
	api.PUT("/session/mode", s.SelectMode)
	api.PUT("/session/view", s.SetView)
	api.POST("/run", s.Run)

	api.GET("/history", s.ListHistory)
	api.DELETE("/history", s.ClearHistory)

	api.GET("/chat", s.ListChat)
	api.POST("/chat", s.SendChat)
	api.GET("/chat/ws", s.ChatSocket)

	authGroup := api.Group("/auth")
	authGroup.POST("/login", s.Login)
	authGroup.POST("/register", s.Register)
	authGroup.POST("/verify", s.Verify)
	authGroup.POST("/reset", s.ResetPassword)
	authGroup.POST("/logout", s.Logout)

	return r
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
