package chat

import "time"

// Registry is the dense, order-preserving collection of live connections.
// Removal compacts the slice so iteration for broadcast never skips holes and
// every connection's index always reflects its true position:
//
//	for all i in [0, Len()): registry.At(i).index == i
//
// The Registry does no locking of its own; the chat server's mutex serializes
// every Add, Remove, and iteration.
type Registry struct {
	conns []*Conn
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Len returns the number of live connections.
func (r *Registry) Len() int {
	return len(r.conns)
}

// At returns the connection at position i.
func (r *Registry) At(i int) *Conn {
	return r.conns[i]
}

// Add appends a connection and stamps its index.
func (r *Registry) Add(c *Conn) int {
	c.index = len(r.conns)
	r.conns = append(r.conns, c)
	return c.index
}

// Remove deletes the connection at index i, shifting every subsequent
// connection down by one and rewriting its index to match. Out-of-range
// indices are clamped rather than panicking; that state is a programmer error
// caught by tests, not something to crash production over.
func (r *Registry) Remove(i int) {
	if i < 0 || i >= len(r.conns) {
		return
	}

	for j := i; j < len(r.conns)-1; j++ {
		r.conns[j] = r.conns[j+1]
		r.conns[j].index = j
	}

	r.conns[len(r.conns)-1] = nil
	r.conns = r.conns[:len(r.conns)-1]
}

// ForEach calls f for every live connection in admission order.
func (r *Registry) ForEach(f func(c *Conn)) {
	for _, c := range r.conns {
		f(c)
	}
}

// SweepIdle removes every connection whose last accepted message is older
// than window and returns the removed connections so the caller can close
// their transports. Run before admitting a new connection to bound growth
// from abandoned transports that never delivered a close event.
func (r *Registry) SweepIdle(now time.Time, window time.Duration) []*Conn {
	var swept []*Conn

	for i := 0; i < len(r.conns); {
		c := r.conns[i]
		if now.Sub(c.lastMessageAt) > window {
			r.Remove(i)
			swept = append(swept, c)
			continue
		}
		i++
	}

	return swept
}
