// Command mkadmin seeds an admin user into the user store and opens a ready
// session for it in redis, printing the Cookie header to connect with. Meant
// for operators and local development; the public signup flow never assigns
// the admin role.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/RuzgarAtaOzkan/server/internal/config"
	"github.com/RuzgarAtaOzkan/server/internal/models"
	"github.com/RuzgarAtaOzkan/server/internal/store"
)

func main() {
	email := flag.String("email", "", "admin email (required)")
	password := flag.String("password", "", "admin password (required)")
	name := flag.String("name", "", "display name")
	flag.Parse()

	if *email == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Load()
	if cfg.RoleKeyAdmin == "" {
		fmt.Fprintln(os.Stderr, "ROLE_KEY_ADMIN must be set")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var users store.UserStore
	if strings.HasPrefix(cfg.DatabaseURL, "postgres") {
		pgStore, err := store.NewPostgresStore(ctx, cfg.DatabaseURL)
		if err != nil {
			fatal("postgres connection failed", err)
		}
		users = pgStore
	} else {
		sqliteStore, err := store.NewSQLiteStore(ctx, cfg.DatabaseURL)
		if err != nil {
			fatal("sqlite open failed", err)
		}
		users = sqliteStore
	}
	defer users.Close()

	existing, err := users.GetUserByEmail(ctx, *email)
	if err != nil {
		fatal("user lookup failed", err)
	}
	if existing != nil {
		fatal("user already exists", fmt.Errorf("%s", *email))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		fatal("password hashing failed", err)
	}

	user := &models.User{
		Name:     *name,
		Email:    *email,
		Password: string(hash),
		Role:     cfg.RoleAdmin,
		RoleKey:  cfg.RoleKeyAdmin,
	}
	if err := users.CreateUser(ctx, user); err != nil {
		fatal("user creation failed", err)
	}

	fmt.Printf("admin created: %s (%s)\n", user.Email, user.ID)

	if cfg.RedisURL == "" {
		fmt.Println("REDIS_URL not set, skipping session")
		return
	}

	redisStore, err := store.NewRedisStore(ctx, cfg.RedisURL)
	if err != nil {
		fatal("redis connection failed", err)
	}
	defer redisStore.Close()

	sid := ulid.Make().String()
	session := &models.Session{
		UserID:    user.ID.String(),
		CreatedAt: time.Now().UnixMilli(),
	}
	if err := redisStore.PutSession(ctx, sid, session); err != nil {
		fatal("session write failed", err)
	}

	fmt.Printf("session created, connect with:\n  Cookie: %s=%s\n", cfg.SessionName, sid)
}

func fatal(msg string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
	os.Exit(1)
}
