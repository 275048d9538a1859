package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	Port        string
	Host        string
	Env         string
	DatabaseURL string
	RedisURL    string

	// Session cookie
	SessionName     string
	SessionLifetime time.Duration

	// Admin role identity. Both must match on the user record;
	// the key is a second factor against role-string spoofing.
	RoleAdmin    string
	RoleKeyAdmin string

	// Allowed WebSocket origins
	URLUI      string
	URLUILocal string

	// Chat tuning
	MessageLimit  int           // max messages kept in the ledger
	MessageMaxAge time.Duration // max age of a ledger entry
	SendInterval  time.Duration // min interval between messages per connection
	MessageLength int           // max message length after normalization
	IdleExpiry    time.Duration // connections idle longer than this are swept
	Blacklist     []string      // forbidden terms

	// WebSocket handshake rate limiting (per IP)
	ConnectLimit  int
	ConnectWindow time.Duration
}

// Load reads configuration from environment variables.
// In development, it loads from .env file if present.
// In production, it panics on missing required variables.
func Load() *Config {
	// Load .env file if it exists (for development)
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "3001"),
		Host:        getEnv("HOST", "127.0.0.1"),
		Env:         getEnv("ENV", "development"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),

		SessionName:     getEnv("SESSION_NAME", "sid"),
		SessionLifetime: getDuration("SESSION_LIFETIME", 60*24*time.Hour),

		RoleAdmin:    getEnv("ROLE_ADMIN", "admin"),
		RoleKeyAdmin: os.Getenv("ROLE_KEY_ADMIN"),

		URLUI:      os.Getenv("URL_UI"),
		URLUILocal: os.Getenv("URL_UI_LOCAL"),

		MessageLimit:  getInt("CHAT_MESSAGE_LIMIT", 1000),
		MessageMaxAge: getDuration("CHAT_MESSAGE_MAX_AGE", 3*24*time.Hour),
		SendInterval:  getDuration("CHAT_SEND_INTERVAL", 3*time.Second),
		MessageLength: getInt("CHAT_MESSAGE_LENGTH", 100),
		IdleExpiry:    getDuration("CHAT_IDLE_EXPIRY", 6*time.Minute),

		ConnectLimit:  getInt("WS_CONNECT_LIMIT", 30),
		ConnectWindow: getDuration("WS_CONNECT_WINDOW", time.Minute),
	}

	// Parse blacklist (comma-separated terms)
	blacklist := getEnv("CHAT_BLACKLIST", "yasak,uygunsuz,kelime")
	for _, term := range strings.Split(blacklist, ",") {
		term = strings.ToLower(strings.TrimSpace(term))
		if term != "" {
			cfg.Blacklist = append(cfg.Blacklist, term)
		}
	}

	// In production, require the external stores and a real UI origin
	if cfg.Env == "production" {
		if cfg.DatabaseURL == "" {
			panic("DATABASE_URL is required in production")
		}
		if cfg.RedisURL == "" {
			panic("REDIS_URL is required in production")
		}
		if cfg.URLUI == "" {
			panic("URL_UI is required in production")
		}
		if cfg.RoleKeyAdmin == "" {
			panic("ROLE_KEY_ADMIN is required in production")
		}
	}

	return cfg
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// AllowedOrigins returns the configured WebSocket origins, skipping empty ones.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	if c.URLUI != "" {
		origins = append(origins, c.URLUI)
	}
	if c.URLUILocal != "" {
		origins = append(origins, c.URLUILocal)
	}
	return origins
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
