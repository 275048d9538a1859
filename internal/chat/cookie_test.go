package chat

import "testing"

func TestParseCookie(t *testing.T) {
	tests := []struct {
		name   string
		cookie string
		key    string
		want   string
	}{
		{"irregular spacing", " bar=foo; domain_sid =  abc123  ;", "domain_sid", "abc123"},
		{"plain", "sid=abc123", "sid", "abc123"},
		{"among others", "theme=dark; sid=abc123; lang=tr", "sid", "abc123"},
		{"missing equals", "sid abc123", "sid", "abc123"},
		{"terminated by semicolon", "sid=abc123;theme=dark", "sid", "abc123"},
		{"name absent", "bar=foo; theme=dark", "sid", ""},
		{"empty header", "", "sid", ""},
		{"name at end with no value", "theme=dark; sid=", "sid", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseCookie(tt.cookie, tt.key)
			if got != tt.want {
				t.Fatalf("ParseCookie(%q, %q) = %q, want %q", tt.cookie, tt.key, got, tt.want)
			}
		})
	}
}

// ParseCookie is a pure function: calling it twice must yield the same value.
func TestParseCookieIdempotent(t *testing.T) {
	header := " a=1; sid = xyz ;"
	first := ParseCookie(header, "sid")
	second := ParseCookie(header, "sid")
	if first != second {
		t.Fatalf("expected identical results, got %q then %q", first, second)
	}
	if first != "xyz" {
		t.Fatalf("expected xyz, got %q", first)
	}
}
