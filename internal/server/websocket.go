package server

import (
	"context"
	"net/url"

	"github.com/agenthands/agentflow/internal/chat"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type chatIn struct {
	Message string `json:"message"`
}

type chatOut struct {
	Messages []chat.Message `json:"messages,omitempty"`
	Reply    *chat.Message  `json:"reply,omitempty"`
	Error    string         `json:"error,omitempty"`
}

// ChatSocket streams the chat session: the log on connect, then one reply
// per message received.
func (s *Server) ChatSocket(c *gin.Context) {
	st := stateOf(c)
	log := s.logger.With(zap.String("session", st.ID()))

	ws, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		OriginPatterns: originHosts(s.cfg.AllowedOrigins),
	})
	if err != nil {
		log.Warn("Failed to accept WebSocket", zap.Error(err))
		return
	}
	defer func() {
		if closeErr := ws.Close(websocket.StatusNormalClosure, "session ended"); closeErr != nil {
			log.Debug("Failed to close websocket", zap.Error(closeErr))
		}
	}()

	ctx := c.Request.Context()
	conv := st.Chat()
	if err := wsjson.Write(ctx, ws, chatOut{Messages: conv.Messages()}); err != nil {
		return
	}
	s.chatLoop(ctx, ws, conv, log)
}

func (s *Server) chatLoop(ctx context.Context, ws *websocket.Conn, conv *chat.Session, log *zap.Logger) {
	for {
		var in chatIn
		if err := wsjson.Read(ctx, ws, &in); err != nil {
			if websocket.CloseStatus(err) != -1 {
				log.Debug("WebSocket closed by client")
			} else {
				log.Debug("WebSocket read ended", zap.Error(err))
			}
			return
		}

		out := chatOut{}
		reply, err := conv.Send(ctx, in.Message)
		if err != nil {
			out.Error = err.Error()
		} else {
			out.Reply = &reply
		}
		if err := wsjson.Write(ctx, ws, out); err != nil {
			log.Warn("WebSocket write failed", zap.Error(err))
			return
		}
	}
}

// originHosts turns configured origins into host patterns for Accept.
func originHosts(origins []string) []string {
	hosts := make([]string, 0, len(origins))
	for _, o := range origins {
		if o == "*" {
			hosts = append(hosts, o)
			continue
		}
		u, err := url.Parse(o)
		if err != nil || u.Host == "" {
			hosts = append(hosts, o)
			continue
		}
		hosts = append(hosts, u.Host)
	}
	return hosts
}
