package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/satriahrh/muse-relay/domain"
	"github.com/satriahrh/muse-relay/usecase"
	"github.com/satriahrh/muse-relay/utils/log"
)

// LivenessMessage is returned by the root route.
const LivenessMessage = "Chat relay is running! POST to /api/chat to chat."

type ChatHandler struct {
	chatService *usecase.ChatService
}

func NewChatHandler(chatService *usecase.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// Home confirms the service is up.
func (h *ChatHandler) Home(c echo.Context) error {
	return c.String(http.StatusOK, LivenessMessage)
}

// Chat relays a conversation to the model. The body is read as JSON
// whatever its Content-Type.
func (h *ChatHandler) Chat(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		var tooLarge *echo.HTTPError
		if errors.As(err, &tooLarge) {
			return tooLarge
		}
		return writeError(c, domain.ErrInvalidInput)
	}

	req, err := domain.DecodeChatRequest(body)
	if err != nil {
		return writeError(c, err)
	}

	reply, err := h.chatService.Reply(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, domain.ChatReply{Reply: reply})
}

func writeError(c echo.Context, err error) error {
	return c.JSON(statusFor(err), domain.NewErrorResponse(err))
}

// statusFor maps invalid input to 400 and everything else, upstream
// failures included, to 500.
func statusFor(err error) int {
	if errors.Is(err, domain.ErrInvalidInput) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// RequestContext copies the request id and client address into the
// request context so use case logs carry them.
func RequestContext(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		ctx = log.ContextWith(ctx, log.RequestIDKey, c.Response().Header().Get(echo.HeaderXRequestID))
		ctx = log.ContextWith(ctx, log.RemoteIPKey, c.RealIP())
		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}
