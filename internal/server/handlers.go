package server

import (
	"net/http"

	"github.com/agenthands/agentflow/internal/agent"
	"github.com/agenthands/agentflow/internal/auth"
	"github.com/agenthands/agentflow/internal/history"
	"github.com/agenthands/agentflow/internal/session"
	"github.com/agenthands/agentflow/internal/validation"
	"github.com/gin-gonic/gin"
)

type AgentInfo struct {
	Mode agent.Mode `json:"mode"`
	agent.Config
}

func (s *Server) ListAgents(c *gin.Context) {
	modes := agent.Modes()
	out := make([]AgentInfo, 0, len(modes))
	for _, m := range modes {
		out = append(out, AgentInfo{Mode: m, Config: agent.ConfigFor(m)})
	}
	c.JSON(http.StatusOK, gin.H{"agents": out})
}

func (s *Server) GetSession(c *gin.Context) {
	c.JSON(http.StatusOK, stateOf(c).Snapshot())
}

type SelectModeRequest struct {
	Mode string `json:"mode"`
}

func (s *Server) SelectMode(c *gin.Context) {
	var req SelectModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	mode, err := agent.ParseMode(req.Mode)
	if err != nil {
		s.fail(c, err)
		return
	}
	st := stateOf(c)
	if err := st.SelectMode(mode); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, st.Snapshot())
}

type SetViewRequest struct {
	ShowHistory bool `json:"show_history"`
}

func (s *Server) SetView(c *gin.Context) {
	var req SetViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	st := stateOf(c)
	st.SetShowHistory(req.ShowHistory)
	c.JSON(http.StatusOK, st.Snapshot())
}

type RunRequest struct {
	Input string `json:"input"`
}

type RunResponse struct {
	session.Outcome
	Session session.Snapshot `json:"session"`
}

func (s *Server) Run(c *gin.Context) {
	var req RunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ctx := c.Request.Context()
	st := stateOf(c)
	out, err := st.Run(ctx, req.Input, s.runner(ctx, st))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, RunResponse{Outcome: out, Session: st.Snapshot()})
}

func (s *Server) ListHistory(c *gin.Context) {
	ctx := c.Request.Context()
	items := s.history.For(ctx, stateOf(c).ID()).LoadAll(ctx)
	c.JSON(http.StatusOK, gin.H{"items": items})
}

type ClearHistoryRequest struct {
	Confirm bool `json:"confirm"`
}

func (s *Server) ClearHistory(c *gin.Context) {
	var req ClearHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ctx := c.Request.Context()
	store := s.history.For(ctx, stateOf(c).ID())
	cleared, err := store.ClearAll(ctx, history.Answer(req.Confirm))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cleared": cleared, "items": store.Items()})
}

func (s *Server) ListChat(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"messages": stateOf(c).Chat().Messages()})
}

type SendChatRequest struct {
	Message string `json:"message"`
}

func (s *Server) SendChat(c *gin.Context) {
	var req SendChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	conv := stateOf(c).Chat()
	reply, err := conv.Send(c.Request.Context(), req.Message)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": reply, "messages": conv.Messages()})
}

func (s *Server) Login(c *gin.Context) {
	var req auth.Credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	id, err := s.auth.Login(c.Request.Context(), req)
	if err != nil {
		s.fail(c, err)
		return
	}
	st := stateOf(c)
	st.Login(id)
	c.JSON(http.StatusOK, st.Snapshot())
}

func (s *Server) Register(c *gin.Context) {
	var req auth.Registration
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ch, err := s.auth.Register(c.Request.Context(), req)
	if err != nil {
		s.fail(c, err)
		return
	}
	st := stateOf(c)
	st.SetPending(ch)
	c.JSON(http.StatusOK, st.Snapshot())
}

type VerifyRequest struct {
	Code string `json:"code"`
}

func (s *Server) Verify(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	st := stateOf(c)
	ch, ok := st.Pending()
	if !ok {
		s.fail(c, &validation.Error{Field: "code", Reason: "has no pending registration"})
		return
	}
	id, err := s.auth.Verify(c.Request.Context(), ch, req.Code)
	if err != nil {
		s.fail(c, err)
		return
	}
	st.Login(id)
	c.JSON(http.StatusOK, st.Snapshot())
}

type ResetRequest struct {
	Email string `json:"email"`
}

func (s *Server) ResetPassword(c *gin.Context) {
	var req ResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := s.auth.ResetPassword(c.Request.Context(), req.Email); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "sent"})
}

func (s *Server) Logout(c *gin.Context) {
	st := stateOf(c)
	st.Logout()
	c.JSON(http.StatusOK, st.Snapshot())
}
