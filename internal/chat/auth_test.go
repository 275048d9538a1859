package chat

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/RuzgarAtaOzkan/server/internal/models"
)

// fakeSessions is an in-memory SessionStore.
type fakeSessions struct {
	sessions map[string]*models.Session
	deleted  []string
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{sessions: make(map[string]*models.Session)}
}

func (f *fakeSessions) GetSession(ctx context.Context, sid string) (*models.Session, error) {
	return f.sessions[sid], nil
}

func (f *fakeSessions) PutSession(ctx context.Context, sid string, session *models.Session) error {
	f.sessions[sid] = session
	return nil
}

func (f *fakeSessions) DeleteSession(ctx context.Context, sid string) error {
	delete(f.sessions, sid)
	f.deleted = append(f.deleted, sid)
	return nil
}

// fakeUsers is an in-memory UserStore.
type fakeUsers struct {
	users map[uuid.UUID]*models.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: make(map[uuid.UUID]*models.User)}
}

func (f *fakeUsers) Close()                           {}
func (f *fakeUsers) Ping(ctx context.Context) error   { return nil }
func (f *fakeUsers) CountUsers(ctx context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

func (f *fakeUsers) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUsers) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return f.users[id], nil
}

func (f *fakeUsers) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

// authFixture seeds an admin user with a live session and returns the
// authenticator plus the session cookie header to use.
func authFixture(t *testing.T) (*Authenticator, *fakeSessions, *fakeUsers, string) {
	t.Helper()

	sessions := newFakeSessions()
	users := newFakeUsers()

	admin := &models.User{
		ID:      uuid.New(),
		Email:   "admin@example.com",
		Role:    "admin",
		RoleKey: "role-key-admin",
	}
	users.users[admin.ID] = admin

	sessions.sessions["live-sid"] = &models.Session{
		UserID:    admin.ID.String(),
		CreatedAt: time.Now().UnixMilli(),
	}

	auth := NewAuthenticator(sessions, users, "sid", time.Hour, "admin", "role-key-admin")
	return auth, sessions, users, "sid=live-sid"
}

func TestIsAdmin(t *testing.T) {
	auth, _, _, cookie := authFixture(t)

	if !auth.IsAdmin(context.Background(), cookie) {
		t.Fatal("expected admin for live session")
	}
}

// A connection with no Cookie header joins as anonymous.
func TestIsAdminNoCookie(t *testing.T) {
	auth, _, _, _ := authFixture(t)

	if auth.IsAdmin(context.Background(), "") {
		t.Fatal("expected anonymous without a cookie header")
	}
}

func TestIsAdminUnknownSession(t *testing.T) {
	auth, _, _, _ := authFixture(t)

	if auth.IsAdmin(context.Background(), "sid=missing") {
		t.Fatal("expected anonymous for unknown session")
	}
}

func TestIsAdminExpiredSession(t *testing.T) {
	auth, sessions, _, _ := authFixture(t)

	sessions.sessions["old-sid"] = &models.Session{
		UserID:    sessions.sessions["live-sid"].UserID,
		CreatedAt: time.Now().Add(-2 * time.Hour).UnixMilli(),
	}

	if auth.IsAdmin(context.Background(), "sid=old-sid") {
		t.Fatal("expected anonymous for expired session")
	}

	// Expired sessions are evicted opportunistically.
	if len(sessions.deleted) != 1 || sessions.deleted[0] != "old-sid" {
		t.Fatalf("expected old-sid evicted, got %v", sessions.deleted)
	}
}

func TestIsAdminUnknownUser(t *testing.T) {
	auth, sessions, _, _ := authFixture(t)

	sessions.sessions["orphan-sid"] = &models.Session{
		UserID:    uuid.New().String(),
		CreatedAt: time.Now().UnixMilli(),
	}

	if auth.IsAdmin(context.Background(), "sid=orphan-sid") {
		t.Fatal("expected anonymous for unknown user")
	}
}

func TestIsAdminRoleMismatch(t *testing.T) {
	auth, sessions, users, _ := authFixture(t)

	regular := &models.User{
		ID:      uuid.New(),
		Email:   "user@example.com",
		Role:    "user",
		RoleKey: "role-key-admin",
	}
	users.users[regular.ID] = regular
	sessions.sessions["user-sid"] = &models.Session{
		UserID:    regular.ID.String(),
		CreatedAt: time.Now().UnixMilli(),
	}

	if auth.IsAdmin(context.Background(), "sid=user-sid") {
		t.Fatal("expected anonymous for non-admin role")
	}
}

// A spoofed role string without the matching role key stays anonymous.
func TestIsAdminRoleKeyMismatch(t *testing.T) {
	auth, sessions, users, _ := authFixture(t)

	spoofed := &models.User{
		ID:      uuid.New(),
		Email:   "spoof@example.com",
		Role:    "admin",
		RoleKey: "wrong-key",
	}
	users.users[spoofed.ID] = spoofed
	sessions.sessions["spoof-sid"] = &models.Session{
		UserID:    spoofed.ID.String(),
		CreatedAt: time.Now().UnixMilli(),
	}

	if auth.IsAdmin(context.Background(), "sid=spoof-sid") {
		t.Fatal("expected anonymous for role key mismatch")
	}
}

func TestIsAdminNilStores(t *testing.T) {
	auth := NewAuthenticator(nil, nil, "sid", time.Hour, "admin", "key")

	if auth.IsAdmin(context.Background(), "sid=anything") {
		t.Fatal("expected anonymous with no stores configured")
	}
}

func TestIsAdminMalformedUserID(t *testing.T) {
	auth, sessions, _, _ := authFixture(t)

	sessions.sessions["bad-uid"] = &models.Session{
		UserID:    "not-a-uuid",
		CreatedAt: time.Now().UnixMilli(),
	}

	if auth.IsAdmin(context.Background(), "sid=bad-uid") {
		t.Fatal("expected anonymous for malformed user id")
	}
}
