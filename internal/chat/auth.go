package chat

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/RuzgarAtaOzkan/server/internal/store"
)

// Authenticator decides whether a connecting peer is an authenticated admin
// from its raw Cookie header and the external session and user stores.
type Authenticator struct {
	sessions store.SessionStore
	users    store.UserStore

	sessionName     string
	sessionLifetime time.Duration
	roleAdmin       string
	roleKeyAdmin    string
}

// NewAuthenticator creates an Authenticator. Either store may be nil, in
// which case every peer resolves to anonymous.
func NewAuthenticator(sessions store.SessionStore, users store.UserStore, sessionName string, sessionLifetime time.Duration, roleAdmin, roleKeyAdmin string) *Authenticator {
	return &Authenticator{
		sessions:        sessions,
		users:           users,
		sessionName:     sessionName,
		sessionLifetime: sessionLifetime,
		roleAdmin:       roleAdmin,
		roleKeyAdmin:    roleKeyAdmin,
	}
}

// IsAdmin reports whether the cookie header carries a live admin session.
// It never fails: a missing header, unknown or expired session, unknown user,
// or role mismatch all degrade to anonymous participation. Expired sessions
// are evicted from the session store opportunistically.
func (a *Authenticator) IsAdmin(ctx context.Context, cookieHeader string) bool {
	if cookieHeader == "" || a.sessions == nil || a.users == nil {
		return false
	}

	sid := ParseCookie(cookieHeader, a.sessionName)
	if sid == "" {
		return false
	}

	session, err := a.sessions.GetSession(ctx, sid)
	if err != nil || session == nil {
		return false
	}

	expireAt := time.UnixMilli(session.CreatedAt).Add(a.sessionLifetime)
	if expireAt.Before(time.Now()) {
		_ = a.sessions.DeleteSession(ctx, sid)
		return false
	}

	userID, err := uuid.Parse(session.UserID)
	if err != nil {
		return false
	}

	user, err := a.users.GetUserByID(ctx, userID)
	if err != nil || user == nil {
		return false
	}

	// Role name and role key must both match; the key defends against a
	// spoofed role string when the two are not rotated together.
	return user.Role == a.roleAdmin && user.RoleKey == a.roleKeyAdmin
}
