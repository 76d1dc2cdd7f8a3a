// Package stream fans simulation frames out to websocket clients. It sits on
// the driver side of the simulation: the physics core never imports it.
package stream

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/gravitylab/orbital/nbody"
)

const (
	sendQueueSize = 16
	writeTimeout  = 5 * time.Second
)

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Broadcaster is an nbody.Observer that serializes every frame to JSON and
// delivers it to all connected websocket clients. Slow clients drop frames
// rather than stalling the stepping goroutine.
type Broadcaster struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}
	closed  bool
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		clients: make(map[*client]struct{}),
	}
}

// Handler upgrades incoming requests and registers the connection for frame
// delivery until it closes.
func (b *Broadcaster) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := b.upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("stream: upgrade failed:", err)
			return
		}

		c := &client{
			conn: conn,
			send: make(chan []byte, sendQueueSize),
		}

		b.mu.Lock()
		if b.closed {
			b.mu.Unlock()
			conn.Close()
			return
		}
		b.clients[c] = struct{}{}
		b.mu.Unlock()

		go b.writePump(c)
		b.readPump(c)
	}
}

// OnStep implements nbody.Observer.
func (b *Broadcaster) OnStep(frame nbody.Frame) {
	data, err := json.Marshal(frame)
	if err != nil {
		log.Println("stream: marshal failed:", err)
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for c := range b.clients {
		select {
		case c.send <- data:
		default:
			// Client is not keeping up; skip this frame for it.
		}
	}
}

func (b *Broadcaster) ClientCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.clients)
}

// Close disconnects every client and rejects future connections.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for c := range b.clients {
		close(c.send)
		delete(b.clients, c)
	}
}

func (b *Broadcaster) writePump(c *client) {
	for data := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			break
		}
	}
	c.conn.Close()
}

// readPump discards client messages and unregisters the client when the
// connection drops.
func (b *Broadcaster) readPump(c *client) {
	defer b.remove(c)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (b *Broadcaster) remove(c *client) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.clients[c]; ok {
		delete(b.clients, c)
		close(c.send)
	}
}
