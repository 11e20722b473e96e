package websocket

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satriahrh/muse-relay/adapters/hasher"
	"github.com/satriahrh/muse-relay/domain"
	"github.com/satriahrh/muse-relay/usecase"
)

type echoLlm struct{}

// Generate answers with the last message's text, or fails on "boom".
func (echoLlm) Generate(_ context.Context, history []domain.ChatMessage) (string, error) {
	last := history[len(history)-1].Text
	if last == "boom" {
		return "", errors.New("upstream exploded")
	}
	return "echo: " + last, nil
}

type slowLlm struct {
	delay time.Duration
}

func (s slowLlm) Generate(ctx context.Context, history []domain.ChatMessage) (string, error) {
	select {
	case <-time.After(s.delay):
		return "slow: " + history[len(history)-1].Text, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func newTestServer(t *testing.T, opts ...Option) (*Server, string) {
	t.Helper()
	return newTestServerWith(t, echoLlm{}, opts...)
}

func newTestServerWith(t *testing.T, model domain.Llm, opts ...Option) (*Server, string) {
	t.Helper()

	srv := NewServer(usecase.NewChatService(model, hasher.New()), opts...)
	srv.RunWebsocketHub()

	e := echo.New()
	e.GET("/ws/chat", srv.Handler)
	httpServer := httptest.NewServer(e)
	t.Cleanup(httpServer.Close)

	return srv, "ws" + strings.TrimPrefix(httpServer.URL, "http") + "/ws/chat"
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, frame string) map[string]string {
	t.Helper()
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(frame)))

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var reply map[string]string
	require.NoError(t, conn.ReadJSON(&reply))
	return reply
}

func TestHandler_RepliesInOrder(t *testing.T) {
	_, url := newTestServer(t)
	conn := dial(t, url)

	assert.Equal(t, map[string]string{"reply": "echo: Hello"},
		roundTrip(t, conn, `{"messages":[{"sender":"user","text":"Hello"}]}`))
	assert.Equal(t, map[string]string{"reply": "echo: again"},
		roundTrip(t, conn, `{"messages":[{"sender":"user","text":"Hello"},{"sender":"bot","text":"echo: Hello"},{"sender":"user","text":"again"}]}`))
}

func TestHandler_ErrorFrames(t *testing.T) {
	_, url := newTestServer(t)
	conn := dial(t, url)

	assert.Equal(t, map[string]string{"error": domain.InvalidInputMessage},
		roundTrip(t, conn, `{"messages":[]}`))
	assert.Equal(t, map[string]string{"error": domain.InvalidInputMessage},
		roundTrip(t, conn, `not json`))
	assert.Equal(t, map[string]string{"error": "upstream exploded"},
		roundTrip(t, conn, `{"messages":[{"sender":"user","text":"boom"}]}`))

	// The connection survives errors.
	assert.Equal(t, map[string]string{"reply": "echo: still here"},
		roundTrip(t, conn, `{"messages":[{"sender":"user","text":"still here"}]}`))
}

func TestHub_TracksAndClosesClients(t *testing.T) {
	srv, url := newTestServer(t)

	conn := dial(t, url)
	require.Eventually(t, func() bool { return srv.GetHub().ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	srv.Shutdown()
	assert.Equal(t, 0, srv.GetHub().ClientCount())

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)

	// New connections are refused once the hub is closed.
	late := dial(t, url)
	late.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err = late.ReadMessage()
	assert.Error(t, err)
}

func TestHandler_SurvivesModelCallLongerThanPongWait(t *testing.T) {
	_, url := newTestServerWith(t, slowLlm{delay: 400 * time.Millisecond},
		WithKeepalive(Keepalive{PongWait: 150 * time.Millisecond, PingPeriod: 50 * time.Millisecond}))
	conn := dial(t, url)

	assert.Equal(t, map[string]string{"reply": "slow: first"},
		roundTrip(t, conn, `{"messages":[{"sender":"user","text":"first"}]}`))
	assert.Equal(t, map[string]string{"reply": "slow: second"},
		roundTrip(t, conn, `{"messages":[{"sender":"user","text":"second"}]}`))
}
