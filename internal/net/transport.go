package net

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"StrokeBoard/internal/state"
)

// BoardPath is the websocket endpoint served by the host.
const BoardPath = "/board"

// peer is one websocket connection. Writes are serialized per connection.
type peer struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (p *peer) send(op state.Op) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.conn.WriteJSON(op)
}

// Hub is run by the HOST. It accepts client connections, hands every
// received op to OnOp and relays it to the other clients.
type Hub struct {
	// OnOp is called from the connection goroutines for every op received
	// from a client.
	OnOp func(op state.Op)

	peers    map[*peer]struct{}
	mu       sync.RWMutex
	upgrader websocket.Upgrader
}

func NewHub() *Hub {
	return &Hub{
		peers: make(map[*peer]struct{}),
		upgrader: websocket.Upgrader{
			// Boards on the LAN connect from anywhere.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[HOST] Upgrade from %s failed: %v", r.RemoteAddr, err)
		return
	}
	p := &peer{conn: conn}
	h.add(p)
	defer h.remove(p)

	addr := conn.RemoteAddr().String()
	for {
		var op state.Op
		if err := conn.ReadJSON(&op); err != nil {
			log.Printf("[HOST] Client %s disconnected: %v", addr, err)
			return
		}
		log.Printf("[HOST] Received '%s' from %s", op.Type, addr)
		if h.OnOp != nil {
			h.OnOp(op)
		}
		h.broadcast(op, p)
	}
}

// Broadcast sends a host op to every client.
func (h *Hub) Broadcast(op state.Op) {
	h.broadcast(op, nil)
}

func (h *Hub) broadcast(op state.Op, exclude *peer) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for p := range h.peers {
		if p == exclude {
			continue
		}
		if err := p.send(op); err != nil {
			log.Printf("[HOST] Error sending to %s: %v", p.conn.RemoteAddr(), err)
		}
	}
}

// Len returns the number of connected clients.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.peers)
}

// Close drops every client connection.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for p := range h.peers {
		p.conn.Close()
		delete(h.peers, p)
	}
}

func (h *Hub) add(p *peer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.peers[p] = struct{}{}
	log.Printf("[HOST] Added connection: %s", p.conn.RemoteAddr())
}

func (h *Hub) remove(p *peer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.peers[p]; ok {
		delete(h.peers, p)
		p.conn.Close()
		log.Printf("[HOST] Removed connection: %s", p.conn.RemoteAddr())
	}
}

// Client is a CLIENT board's connection to the host.
type Client struct {
	p *peer
}

// Dial connects to the hub served at addr (host:port).
func Dial(ctx context.Context, addr string) (*Client, error) {
	url := fmt.Sprintf("ws://%s%s", addr, BoardPath)
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	return &Client{p: &peer{conn: conn}}, nil
}

// Send writes op to the host.
func (c *Client) Send(op state.Op) error {
	if err := c.p.send(op); err != nil {
		return fmt.Errorf("send %s: %w", op.Type, err)
	}
	return nil
}

// Listen calls fn for every op relayed by the host until the connection
// fails or is closed.
func (c *Client) Listen(fn func(op state.Op)) error {
	for {
		var op state.Op
		if err := c.p.conn.ReadJSON(&op); err != nil {
			return err
		}
		fn(op)
	}
}

// LocalAddr returns the client's side of the connection.
func (c *Client) LocalAddr() string {
	return c.p.conn.LocalAddr().String()
}

func (c *Client) Close() error {
	return c.p.conn.Close()
}
