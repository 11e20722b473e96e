package websocket

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/satriahrh/muse-relay/utils/log"
)

// Handler upgrades the request and serves chat frames until the
// connection closes.
func (s *Server) Handler(c echo.Context) error {
	conn, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// The upgrader has already answered the request.
		log.WithCtx(c.Request().Context()).Warn("WebSocket upgrade failed", zap.Error(err))
		return nil
	}

	client := NewClient(conn, uuid.NewString(), c.RealIP(), s.keepalive, s.handleFrame)
	s.hub.Register(client)
	defer s.hub.Unregister(client)

	client.Run()

	<-client.Context().Done()

	return nil
}
