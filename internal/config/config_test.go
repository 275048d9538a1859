package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "HOST", "ENV", "DATABASE_URL", "REDIS_URL",
		"SESSION_NAME", "SESSION_LIFETIME", "ROLE_ADMIN", "ROLE_KEY_ADMIN",
		"URL_UI", "URL_UI_LOCAL", "CHAT_MESSAGE_LIMIT", "CHAT_MESSAGE_MAX_AGE",
		"CHAT_SEND_INTERVAL", "CHAT_MESSAGE_LENGTH", "CHAT_IDLE_EXPIRY",
		"CHAT_BLACKLIST", "WS_CONNECT_LIMIT", "WS_CONNECT_WINDOW",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Port != "3001" {
		t.Errorf("expected default port 3001, got %s", cfg.Port)
	}
	if cfg.Env != "development" || !cfg.IsDevelopment() {
		t.Errorf("expected development env, got %s", cfg.Env)
	}
	if cfg.SessionName != "sid" {
		t.Errorf("expected default session name sid, got %s", cfg.SessionName)
	}
	if cfg.SessionLifetime != 60*24*time.Hour {
		t.Errorf("expected 60 day session lifetime, got %s", cfg.SessionLifetime)
	}
	if cfg.MessageLimit != 1000 {
		t.Errorf("expected message limit 1000, got %d", cfg.MessageLimit)
	}
	if cfg.MessageMaxAge != 72*time.Hour {
		t.Errorf("expected 72h max age, got %s", cfg.MessageMaxAge)
	}
	if cfg.SendInterval != 3*time.Second {
		t.Errorf("expected 3s send interval, got %s", cfg.SendInterval)
	}
	if cfg.MessageLength != 100 {
		t.Errorf("expected message length 100, got %d", cfg.MessageLength)
	}
	if cfg.IdleExpiry != 6*time.Minute {
		t.Errorf("expected 6m idle expiry, got %s", cfg.IdleExpiry)
	}

	want := []string{"yasak", "uygunsuz", "kelime"}
	if len(cfg.Blacklist) != len(want) {
		t.Fatalf("expected default blacklist %v, got %v", want, cfg.Blacklist)
	}
	for i, term := range want {
		if cfg.Blacklist[i] != term {
			t.Errorf("blacklist[%d]: expected %q, got %q", i, term, cfg.Blacklist[i])
		}
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("CHAT_MESSAGE_LIMIT", "50")
	t.Setenv("CHAT_SEND_INTERVAL", "500ms")
	t.Setenv("CHAT_BLACKLIST", " Foo , BAR ,, baz ")

	cfg := Load()

	if cfg.Port != "9000" {
		t.Errorf("expected port 9000, got %s", cfg.Port)
	}
	if cfg.MessageLimit != 50 {
		t.Errorf("expected message limit 50, got %d", cfg.MessageLimit)
	}
	if cfg.SendInterval != 500*time.Millisecond {
		t.Errorf("expected 500ms send interval, got %s", cfg.SendInterval)
	}

	// Terms are trimmed, lowercased and empties dropped.
	want := []string{"foo", "bar", "baz"}
	if len(cfg.Blacklist) != len(want) {
		t.Fatalf("expected blacklist %v, got %v", want, cfg.Blacklist)
	}
	for i, term := range want {
		if cfg.Blacklist[i] != term {
			t.Errorf("blacklist[%d]: expected %q, got %q", i, term, cfg.Blacklist[i])
		}
	}
}

func TestLoadBadValuesFallBack(t *testing.T) {
	t.Setenv("CHAT_MESSAGE_LIMIT", "not-a-number")
	t.Setenv("CHAT_SEND_INTERVAL", "soon")

	cfg := Load()

	if cfg.MessageLimit != 1000 {
		t.Errorf("expected fallback message limit 1000, got %d", cfg.MessageLimit)
	}
	if cfg.SendInterval != 3*time.Second {
		t.Errorf("expected fallback 3s send interval, got %s", cfg.SendInterval)
	}
}

func TestAllowedOrigins(t *testing.T) {
	cfg := &Config{}
	if got := cfg.AllowedOrigins(); len(got) != 0 {
		t.Fatalf("expected no origins, got %v", got)
	}

	cfg.URLUI = "https://chat.example.com"
	cfg.URLUILocal = "http://localhost:3000"
	got := cfg.AllowedOrigins()
	if len(got) != 2 || got[0] != cfg.URLUI || got[1] != cfg.URLUILocal {
		t.Fatalf("expected both origins in order, got %v", got)
	}

	cfg.URLUI = ""
	got = cfg.AllowedOrigins()
	if len(got) != 1 || got[0] != cfg.URLUILocal {
		t.Fatalf("expected local origin only, got %v", got)
	}
}
