package websocket

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/satriahrh/muse-relay/utils/log"
)

// FrameHandler turns one inbound frame into the frame sent back.
type FrameHandler func(ctx context.Context, frame []byte) []byte

type Client struct {
	conn      *websocket.Conn
	send      chan []byte
	handle    FrameHandler
	keepalive Keepalive
	ctx       context.Context
	cancel    context.CancelFunc
	mu        sync.Mutex
	closed    bool
}

// Keepalive controls how long a silent peer is tolerated. PingPeriod
// must be shorter than PongWait.
type Keepalive struct {
	PongWait   time.Duration
	PingPeriod time.Duration
}

// DefaultKeepalive pings every 30s and drops peers silent for 60s.
var DefaultKeepalive = Keepalive{
	PongWait:   60 * time.Second,
	PingPeriod: 30 * time.Second,
}

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 10 * 1024 * 1024
)

// NewClient creates a new WebSocket client
func NewClient(conn *websocket.Conn, connID, remoteIP string, keepalive Keepalive, handle FrameHandler) *Client {
	ctx := log.ContextWith(context.Background(), log.ConnIDKey, connID)
	ctx = log.ContextWith(ctx, log.RemoteIPKey, remoteIP)
	ctx, cancel := context.WithCancel(ctx)
	return &Client{
		conn:      conn,
		send:      make(chan []byte, 16),
		handle:    handle,
		keepalive: keepalive,
		ctx:       ctx,
		cancel:    cancel,
	}
}

func (c *Client) Run() {
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.keepalive.PongWait))
	})

	go c.readPump()
	go c.writePump()
}

// Close gracefully closes the client connection
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	c.closed = true
	c.cancel()
	c.conn.Close()
}

// IsClosed returns true if the client connection is closed
func (c *Client) IsClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Context returns the client's context
func (c *Client) Context() context.Context {
	return c.ctx
}

// readPump handles frames one at a time, so replies keep request order.
// Pongs are only processed while reading, so the deadline is refreshed
// after every handled frame; a slow model call must not expire it.
func (c *Client) readPump() {
	defer c.Close()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(c.keepalive.PongWait))

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.WithCtx(c.ctx).Error("WebSocket error", zap.Error(err))
			}
			return
		}

		reply := c.handle(c.ctx, message)
		if err := c.SendMessage(reply); err != nil {
			log.WithCtx(c.ctx).Warn("Failed to queue reply", zap.Error(err))
			return
		}
		c.conn.SetReadDeadline(time.Now().Add(c.keepalive.PongWait))
	}
}

// writePump owns all data writes on the connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(c.keepalive.PingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.WithCtx(c.ctx).Error("Failed to write message", zap.Error(err))
				return
			}

		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				log.WithCtx(c.ctx).Debug("Failed to send ping", zap.Error(err))
				return
			}

		case <-c.ctx.Done():
			c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, ""),
				time.Now().Add(writeWait))
			return
		}
	}
}

// SendMessage queues a frame for the write pump.
func (c *Client) SendMessage(message []byte) error {
	select {
	case c.send <- message:
		return nil
	case <-c.ctx.Done():
		return websocket.ErrCloseSent
	}
}
