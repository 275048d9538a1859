package chat

import (
	"regexp"
	"strings"
	"time"
)

// allowedRegex gates the whole message before any blacklist matching. ASCII
// letters and digits, Turkish letters, and a small punctuation set only.
var allowedRegex = regexp.MustCompile(`^[a-zA-Z0-9ÇçİıÖöŞşÜüĞğ?!., ]+$`)

// Policy enforces per-connection send intervals, message length, and the
// content blacklist.
type Policy struct {
	MaxLength    int
	SendInterval time.Duration
	Blacklist    []string
}

// NewPolicy creates a Policy. Blacklist terms are lowercased once here.
func NewPolicy(maxLength int, sendInterval time.Duration, blacklist []string) *Policy {
	terms := make([]string, 0, len(blacklist))
	for _, term := range blacklist {
		term = strings.ToLower(strings.TrimSpace(term))
		if term != "" {
			terms = append(terms, term)
		}
	}
	return &Policy{MaxLength: maxLength, SendInterval: sendInterval, Blacklist: terms}
}

// Normalize collapses runs of consecutive spaces down to one and strips
// leading and trailing spaces. Interior single spaces are left alone; this is
// deliberately not a full trim or whitespace collapse.
func Normalize(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		// Drop a space when the next character is also a space or the end.
		if s[i] == ' ' && (i+1 >= len(s) || s[i+1] == ' ') {
			continue
		}
		// Drop a leading space before the first captured character.
		if b.Len() == 0 && s[i] == ' ' {
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// Validate checks a normalized message against the policy, in order: empty,
// length, send frequency, blacklist. The first failing check wins. The caller
// is responsible for stamping the connection's lastMessageAt on success.
func (p *Policy) Validate(message string, lastMessageAt, now time.Time) error {
	if message == "" {
		return ErrEmptyMessage
	}

	if len([]rune(message)) > p.MaxLength {
		return ErrLongMessage
	}

	if now.Sub(lastMessageAt) < p.SendInterval {
		return ErrFrequentMessage
	}

	if !p.clean(message) {
		return ErrInappropriateMessage
	}

	return nil
}

// clean reports whether a message passes the character-class gate and the
// blacklist. Words are compared after collapsing adjacent repeated characters,
// so "baaad" still matches a "bad" term. Interleaving distinct characters or
// spacing a word out defeats the check; that is a known limitation kept for
// compatibility.
func (p *Policy) clean(message string) bool {
	if !allowedRegex.MatchString(message) {
		return false
	}

	words := strings.Split(strings.ToLower(message), " ")
	for _, word := range words {
		light := collapseRepeats(word)

		for _, term := range p.Blacklist {
			if strings.Contains(light, term) {
				return false
			}
		}
	}

	return true
}

// collapseRepeats removes adjacent identical characters, keeping the last of
// each run: "baaad" => "bad". One pass, adjacent duplicates only.
func collapseRepeats(word string) string {
	runes := []rune(word)
	var b strings.Builder
	for j := 0; j < len(runes); j++ {
		if j+1 < len(runes) && runes[j] == runes[j+1] {
			continue
		}
		b.WriteRune(runes[j])
	}
	return b.String()
}
