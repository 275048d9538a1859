package chat

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/RuzgarAtaOzkan/server/internal/config"
	"github.com/RuzgarAtaOzkan/server/internal/metrics"
	"github.com/RuzgarAtaOzkan/server/internal/models"
	"github.com/RuzgarAtaOzkan/server/internal/store"
)

// backlogFrame is the first outbound frame on every new connection: the
// ledger snapshot, oldest first.
type backlogFrame struct {
	Messages []models.Packet `json:"messages"`
}

// errorFrame is sent only to the offending connection on a signaled
// rejection.
type errorFrame struct {
	Error string `json:"error"`
}

// Server is the anonymous chat relay. It owns the connection registry and
// message ledger and wires connection lifecycle events through the admin
// authenticator and the rate & content policy.
//
// One mutex serializes every registry and ledger mutation, so broadcast order
// equals admission order and the compacting removal never interleaves with a
// broadcast. The only external lookups (session, user) happen before the
// connection enters the registry.
type Server struct {
	log    zerolog.Logger
	auth   *Authenticator
	policy *Policy

	upgrader       websocket.Upgrader
	allowedOrigins []string
	idleExpiry     time.Duration
	sendInterval   time.Duration
	readLimit      int64

	mu       sync.Mutex
	registry *Registry
	ledger   *Ledger
}

// NewServer creates the chat relay from configuration and the external
// session and user stores.
func NewServer(cfg *config.Config, logger zerolog.Logger, sessions store.SessionStore, users store.UserStore) *Server {
	s := &Server{
		log: logger.With().Str("component", "chat").Logger(),
		auth: NewAuthenticator(sessions, users, cfg.SessionName, cfg.SessionLifetime,
			cfg.RoleAdmin, cfg.RoleKeyAdmin),
		policy:         NewPolicy(cfg.MessageLength, cfg.SendInterval, cfg.Blacklist),
		allowedOrigins: cfg.AllowedOrigins(),
		idleExpiry:     cfg.IdleExpiry,
		sendInterval:   cfg.SendInterval,
		// Inbound frames are raw text; anything far over the message length
		// bound is garbage we refuse to buffer. Length is counted in runes,
		// so allow up to 4 bytes each plus slack.
		readLimit: int64(4*cfg.MessageLength + 1024),
		registry:  NewRegistry(),
		ledger:    NewLedger(cfg.MessageLimit, cfg.MessageMaxAge),
	}

	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		// Origin is checked before the upgrade so rejects can be counted.
		CheckOrigin: func(r *http.Request) bool { return true },
	}

	return s
}

// HandleWS runs the connect state machine: origin check, admin check, idle
// sweep, registration, backlog, then the read loop until transport close.
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	if !s.originAllowed(r.Header.Get("Origin")) {
		metrics.HandshakesTotal.WithLabelValues("bad_origin").Inc()
		s.log.Debug().Str("origin", r.Header.Get("Origin")).Msg("connection rejected: origin not allowed")
		http.Error(w, "origin not allowed", http.StatusForbidden)
		return
	}

	// The admin check is the only step that awaits external stores; it runs
	// before the connection holds any shared state. Failure to authenticate
	// degrades to anonymous, never to rejection.
	admin := s.auth.IsAdmin(r.Context(), r.Header.Get("Cookie"))

	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		metrics.HandshakesTotal.WithLabelValues("failed").Inc()
		return
	}
	ws.SetReadLimit(s.readLimit)

	conn := newConn(ws, admin, s.sendInterval)

	s.mu.Lock()
	now := time.Now()

	// Bound registry growth from abandoned transports before admitting.
	swept := s.registry.SweepIdle(now, s.idleExpiry)
	for _, c := range swept {
		c.gone = true
		c.close()
	}

	index := s.registry.Add(conn)
	backlog, marshalErr := json.Marshal(backlogFrame{Messages: s.ledger.Snapshot(now)})
	if marshalErr == nil {
		conn.enqueue(backlog)
	}
	live := s.registry.Len()
	s.mu.Unlock()

	if n := len(swept); n > 0 {
		metrics.ConnectionsSwept.Add(float64(n))
		s.log.Info().Int("swept", n).Msg("idle connections closed")
	}
	metrics.HandshakesTotal.WithLabelValues("accepted").Inc()
	metrics.ConnectionsActive.Set(float64(live))

	s.log.Debug().Bool("admin", admin).Int("index", index).Int("live", live).Msg("connection opened")

	s.readLoop(conn)
}

// readLoop pumps inbound frames until the transport closes, then removes the
// connection from the registry.
func (s *Server) readLoop(c *Conn) {
	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			break
		}
		s.handleMessage(c, string(data))
	}

	s.disconnect(c)
}

// handleMessage validates one inbound message and, on success, broadcasts it
// to every live connection (sender included) and admits it to the ledger.
// Rejections answer the sender alone; the empty case answers nothing.
func (s *Server) handleMessage(c *Conn, raw string) {
	message := Normalize(raw)
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if c.gone {
		// Swept while the read loop was still draining frames.
		return
	}

	if err := s.policy.Validate(message, c.lastMessageAt, now); err != nil {
		metrics.MessagesRejected.WithLabelValues(err.Error()).Inc()
		if !errors.Is(err, ErrEmptyMessage) {
			if frame, mErr := json.Marshal(errorFrame{Error: err.Error()}); mErr == nil {
				c.enqueue(frame)
			}
		}
		return
	}

	packet := models.Packet{
		ID:        ulid.Make().String(),
		Admin:     c.admin,
		Message:   message,
		CreatedAt: now,
	}

	frame, err := json.Marshal(packet)
	if err != nil {
		return
	}

	s.registry.ForEach(func(peer *Conn) {
		peer.enqueue(frame)
	})
	s.ledger.Append(packet, now)
	c.lastMessageAt = now

	metrics.MessagesBroadcast.Inc()
	metrics.LedgerSize.Set(float64(s.ledger.Len()))

	s.log.Debug().
		Str("packet_id", packet.ID).
		Bool("admin", packet.Admin).
		Int("recipients", s.registry.Len()).
		Msg("message broadcast")
}

// disconnect removes a connection from the registry with compaction. Safe to
// call after an idle sweep already removed it.
func (s *Server) disconnect(c *Conn) {
	s.mu.Lock()
	if !c.gone {
		c.gone = true
		s.registry.Remove(c.index)
	}
	live := s.registry.Len()
	s.mu.Unlock()

	c.close()
	metrics.ConnectionsActive.Set(float64(live))

	s.log.Debug().Int("live", live).Msg("connection closed")
}

// originAllowed reports whether the declared origin matches a configured UI
// origin. With no origins configured (development), every origin is allowed.
func (s *Server) originAllowed(origin string) bool {
	if len(s.allowedOrigins) == 0 {
		return true
	}
	for _, allowed := range s.allowedOrigins {
		if origin == allowed {
			return true
		}
	}
	return false
}

// Stats reports live relay state for the stats endpoint.
type Stats struct {
	Connections      int `json:"connections"`
	BufferedMessages int `json:"buffered_messages"`
}

// Stats returns the current connection and ledger counts.
func (s *Server) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{
		Connections:      s.registry.Len(),
		BufferedMessages: s.ledger.Len(),
	}
}

// Close force-closes every live connection. Called at process shutdown.
func (s *Server) Close() {
	s.mu.Lock()
	s.registry.ForEach(func(c *Conn) {
		c.gone = true
		c.close()
	})
	s.registry = NewRegistry()
	s.mu.Unlock()

	metrics.ConnectionsActive.Set(0)
}
