package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account.
// Password holds the bcrypt hash, never the plaintext.
type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name,omitempty"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Role      string    `json:"role"`
	RoleKey   string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
