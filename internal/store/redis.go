package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/RuzgarAtaOzkan/server/internal/models"
)

// sessionsKey is the redis hash holding all sessions, keyed by session ID.
// Values are JSON session blobs written by the auth service.
const sessionsKey = "sessions"

// RedisStore handles Redis operations for sessions and rate limiting.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a new Redis store.
func NewRedisStore(ctx context.Context, redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisStore{client: client}, nil
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Ping checks the Redis connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Client exposes the underlying client for middleware that needs it.
func (s *RedisStore) Client() *redis.Client {
	return s.client
}

// GetSession looks up a session by ID. Returns (nil, nil) if absent.
func (s *RedisStore) GetSession(ctx context.Context, sid string) (*models.Session, error) {
	data, err := s.client.HGet(ctx, sessionsKey, sid).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var session models.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, err
	}

	return &session, nil
}

// PutSession stores a session blob under its ID.
func (s *RedisStore) PutSession(ctx context.Context, sid string, session *models.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.client.HSet(ctx, sessionsKey, sid, string(data)).Err()
}

// DeleteSession removes a session. Used to evict expired sessions.
func (s *RedisStore) DeleteSession(ctx context.Context, sid string) error {
	return s.client.HDel(ctx, sessionsKey, sid).Err()
}

// connectRateKey returns the key for a client IP's handshake counter.
func connectRateKey(ip string) string {
	return fmt.Sprintf("ratelimit:ws:%s", ip)
}

// IncrementConnectRate increments the handshake counter for an IP and
// returns the new count. The window TTL is refreshed on every call.
func (s *RedisStore) IncrementConnectRate(ctx context.Context, ip string, window time.Duration) (int64, error) {
	key := connectRateKey(ip)

	pipe := s.client.Pipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}
