package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/RuzgarAtaOzkan/server/internal/models"
)

// SessionStore defines the interface for the external session store.
// RedisStore implements this interface.
type SessionStore interface {
	GetSession(ctx context.Context, sid string) (*models.Session, error)
	PutSession(ctx context.Context, sid string, session *models.Session) error
	DeleteSession(ctx context.Context, sid string) error
}

// UserStore defines the interface for persistent storage of users.
// Both PostgresStore and SQLiteStore implement this interface.
type UserStore interface {
	// Connection management
	Close()
	Ping(ctx context.Context) error

	// User operations
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CountUsers(ctx context.Context) (int64, error)
}
