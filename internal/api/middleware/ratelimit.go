package middleware

import (
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/RuzgarAtaOzkan/server/internal/metrics"
	"github.com/RuzgarAtaOzkan/server/internal/store"
)

// ConnectLimiter bounds WebSocket handshake attempts per client IP using a
// redis counter with a rolling window. Message-level throttling lives in the
// chat policy; this only defends the upgrade path against reconnect storms.
type ConnectLimiter struct {
	redis  *store.RedisStore
	logger zerolog.Logger
	limit  int
	window time.Duration
}

// NewConnectLimiter creates a ConnectLimiter. A nil redis store disables it.
func NewConnectLimiter(redis *store.RedisStore, logger zerolog.Logger, limit int, window time.Duration) *ConnectLimiter {
	return &ConnectLimiter{
		redis:  redis,
		logger: logger,
		limit:  limit,
		window: window,
	}
}

// Middleware enforces the handshake limit. Redis failures let the request
// through; losing rate limiting briefly beats dropping every connection.
func (l *ConnectLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if l.redis == nil || l.limit <= 0 {
			next.ServeHTTP(w, r)
			return
		}

		ip := clientIP(r)

		count, err := l.redis.IncrementConnectRate(r.Context(), ip, l.window)
		if err != nil {
			l.logger.Warn().Err(err).Msg("connect rate check failed, allowing")
			next.ServeHTTP(w, r)
			return
		}

		if count > int64(l.limit) {
			metrics.HandshakesTotal.WithLabelValues("rate_limited").Inc()
			l.logger.Info().Str("ip", ip).Int64("count", count).Msg("handshake rate limited")
			w.Header().Set("Retry-After", "60")
			http.Error(w, "too many connection attempts", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientIP returns the request's remote IP, without the port.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
