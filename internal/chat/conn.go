package chat

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// sendBuffer is the per-connection outbound frame buffer. Frames beyond
	// it are dropped rather than letting one slow reader stall the broadcast.
	sendBuffer = 64

	writeTimeout = 5 * time.Second
)

// Conn is one live chat connection. Its index tracks its position in the
// Registry and is rewritten whenever compaction shifts it. The admin badge is
// decided once at connect time and never changes.
//
// All fields are owned by the chat server and mutated only under its mutex.
// Outbound writes go through a buffered channel drained by a single writer
// goroutine, since gorilla connections permit only one concurrent writer.
type Conn struct {
	ws   *websocket.Conn
	send chan []byte

	index         int
	admin         bool
	lastMessageAt time.Time

	// gone is set under the server mutex when the connection leaves the
	// registry, by either the close path or the idle sweep.
	gone      bool
	closeOnce sync.Once
}

// newConn wraps an upgraded websocket connection and starts its write pump.
// lastMessageAt is seeded one send interval in the past so the first message
// is never throttled.
func newConn(ws *websocket.Conn, admin bool, sendInterval time.Duration) *Conn {
	c := &Conn{
		ws:            ws,
		send:          make(chan []byte, sendBuffer),
		admin:         admin,
		lastMessageAt: time.Now().Add(-sendInterval),
	}

	go c.writePump()

	return c
}

// writePump drains the send channel onto the wire. It exits when the channel
// is closed and then tears down the transport, which also unblocks the read
// loop.
func (c *Conn) writePump() {
	defer c.ws.Close()

	for data := range c.send {
		if err := c.ws.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
			return
		}
		if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
}

// enqueue hands a frame to the write pump without blocking. Full buffers drop
// the frame; delivery is best effort. Must not be called after close.
func (c *Conn) enqueue(data []byte) bool {
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// close shuts down the write pump exactly once. The pump closes the
// underlying transport on exit.
func (c *Conn) close() {
	c.closeOnce.Do(func() {
		close(c.send)
	})
}
