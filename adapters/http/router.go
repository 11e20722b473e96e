package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/satriahrh/muse-relay/adapters/websocket"
)

// NewRouter wires middleware and routes for the relay.
func NewRouter(chat *ChatHandler, ws *websocket.Server, bodyLimit string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.Secure())
	e.Use(middleware.RequestID())
	e.Use(RequestContext)

	// Any origin may call the relay.
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.POST, echo.OPTIONS},
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
		},
		MaxAge: 86400,
	}))

	e.Use(middleware.BodyLimit(bodyLimit))

	e.GET("/", chat.Home)
	e.POST("/api/chat", chat.Chat)
	e.GET("/ws/chat", ws.Handler)

	return e
}
