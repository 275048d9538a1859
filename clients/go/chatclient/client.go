// Package chatclient provides a Go client for the anonymous chat relay.
package chatclient

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// Message is one chat message as seen on the wire.
type Message struct {
	Admin     bool      `json:"admin"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Event is one decoded server frame. Exactly one field group is set: Backlog
// on the initial history frame, Packet on a broadcast, Reject on a policy
// rejection addressed to this client.
type Event struct {
	Backlog []Message
	Packet  *Message
	Reject  string
}

// Client connects to the relay's /ws endpoint. Set Origin to an allowed UI
// origin and Cookie to a session cookie header value ("name=sid") to connect
// with an admin badge.
type Client struct {
	URL    string // e.g. ws://127.0.0.1:3001/ws
	Origin string
	Cookie string

	ws *websocket.Conn
}

// New creates a client for the given WebSocket URL.
func New(url string) *Client {
	return &Client{URL: url}
}

// Connect dials the relay. The first server frame after a successful connect
// is always the backlog; read it with Next.
func (c *Client) Connect(ctx context.Context) error {
	header := http.Header{}
	if c.Origin != "" {
		header.Set("Origin", c.Origin)
	}
	if c.Cookie != "" {
		header.Set("Cookie", c.Cookie)
	}

	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	ws, resp, err := dialer.DialContext(ctx, c.URL, header)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusForbidden {
			return errors.New("connection rejected: origin not allowed")
		}
		return err
	}

	c.ws = ws
	return nil
}

// Send submits one chat message as a raw text frame.
func (c *Client) Send(text string) error {
	if c.ws == nil {
		return errors.New("not connected")
	}
	return c.ws.WriteMessage(websocket.TextMessage, []byte(text))
}

// Next blocks for the next server frame and decodes it.
func (c *Client) Next() (*Event, error) {
	if c.ws == nil {
		return nil, errors.New("not connected")
	}

	var frame struct {
		Messages  []Message `json:"messages"`
		Error     string    `json:"error"`
		Admin     *bool     `json:"admin"`
		Message   string    `json:"message"`
		CreatedAt time.Time `json:"created_at"`
	}
	if err := c.ws.ReadJSON(&frame); err != nil {
		return nil, err
	}

	switch {
	case frame.Error != "":
		return &Event{Reject: frame.Error}, nil
	case frame.Admin != nil:
		return &Event{Packet: &Message{
			Admin:     *frame.Admin,
			Message:   frame.Message,
			CreatedAt: frame.CreatedAt,
		}}, nil
	default:
		if frame.Messages == nil {
			frame.Messages = []Message{}
		}
		return &Event{Backlog: frame.Messages}, nil
	}
}

// SetReadDeadline bounds how long Next may block.
func (c *Client) SetReadDeadline(t time.Time) error {
	if c.ws == nil {
		return errors.New("not connected")
	}
	return c.ws.SetReadDeadline(t)
}

// Close tears down the connection.
func (c *Client) Close() error {
	if c.ws == nil {
		return nil
	}
	return c.ws.Close()
}
