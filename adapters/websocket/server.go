package websocket

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/satriahrh/muse-relay/domain"
	"github.com/satriahrh/muse-relay/usecase"
	"github.com/satriahrh/muse-relay/utils/log"
)

type Server struct {
	upgrader  websocket.Upgrader
	svc       *usecase.ChatService
	hub       *Hub
	keepalive Keepalive
}

type Option func(*Server)

// WithKeepalive overrides DefaultKeepalive for every connection.
func WithKeepalive(k Keepalive) Option {
	return func(s *Server) { s.keepalive = k }
}

func NewServer(svc *usecase.ChatService, opts ...Option) *Server {
	s := &Server{
		upgrader:  websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		svc:       svc,
		hub:       NewHub(),
		keepalive: DefaultKeepalive,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Server) RunWebsocketHub() {
	s.hub.Run()
}

func (s *Server) GetHub() *Hub {
	return s.hub
}

// Shutdown closes all open chat connections.
func (s *Server) Shutdown() {
	s.hub.CloseAll()
}

// handleFrame decodes a chat request frame and answers it the same way
// the HTTP chat route does.
func (s *Server) handleFrame(ctx context.Context, frame []byte) []byte {
	var payload any

	req, err := domain.DecodeChatRequest(frame)
	if err == nil {
		var reply string
		reply, err = s.svc.Reply(ctx, req)
		payload = domain.ChatReply{Reply: reply}
	}
	if err != nil {
		payload = domain.NewErrorResponse(err)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		log.WithCtx(ctx).Error("Failed to marshal reply frame", zap.Error(err))
		data, _ = json.Marshal(domain.NewErrorResponse(err))
	}
	return data
}
