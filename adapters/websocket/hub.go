package websocket

import (
	"github.com/satriahrh/muse-relay/utils/log"
)

// Hub keeps track of open chat connections. All bookkeeping happens on
// the goroutine started by Run.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	shutdown   chan chan struct{}
	count      chan chan int
	closed     bool
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		shutdown:   make(chan chan struct{}),
		count:      make(chan chan int),
	}
}

// Run starts the hub
func (h *Hub) Run() {
	go h.run()
}

func (h *Hub) run() {
	for {
		select {
		case client := <-h.register:
			if h.closed {
				client.Close()
				continue
			}
			h.clients[client] = true
			log.WithCtx(client.ctx).Debug("New client registered")

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.Close()
				log.WithCtx(client.ctx).Debug("Client unregistered")
			}

		case done := <-h.shutdown:
			for client := range h.clients {
				client.Close()
				delete(h.clients, client)
			}
			h.closed = true
			close(done)

		case reply := <-h.count:
			reply <- len(h.clients)
		}
	}
}

// Register adds a client to the hub
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// CloseAll closes every connection and refuses new ones.
func (h *Hub) CloseAll() {
	done := make(chan struct{})
	h.shutdown <- done
	<-done
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	reply := make(chan int)
	h.count <- reply
	return <-reply
}
