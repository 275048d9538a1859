package chat

import (
	"time"

	"github.com/RuzgarAtaOzkan/server/internal/models"
)

// Ledger is the bounded, time-windowed history of broadcast messages, oldest
// first. It is sent to newly joined connections as backlog. The Ledger does
// no locking of its own; the chat server's mutex serializes all access.
type Ledger struct {
	maxCount int
	maxAge   time.Duration
	packets  []models.Packet
}

// NewLedger creates a Ledger bounded by count and age.
func NewLedger(maxCount int, maxAge time.Duration) *Ledger {
	return &Ledger{maxCount: maxCount, maxAge: maxAge}
}

// Len returns the number of buffered packets.
func (l *Ledger) Len() int {
	return len(l.packets)
}

// Append admits a packet and re-establishes both bounds.
func (l *Ledger) Append(p models.Packet, now time.Time) {
	l.packets = append(l.packets, p)
	l.Trim(now)
}

// Trim drops the oldest entries until the count bound holds, then drops every
// entry older than the age window. Relative order of the remainder is
// preserved. If every entry is stale the ledger is cleared.
func (l *Ledger) Trim(now time.Time) {
	if len(l.packets) > l.maxCount {
		offset := len(l.packets) - l.maxCount
		l.packets = l.packets[offset:]
	}

	// Find the first entry still within the age window; everything before it
	// is stale.
	fresh := len(l.packets)
	for i, p := range l.packets {
		if now.Sub(p.CreatedAt) <= l.maxAge {
			fresh = i
			break
		}
	}

	if fresh > 0 {
		l.packets = l.packets[fresh:]
	}
}

// Snapshot trims and returns a copy of the buffered packets, oldest first.
// The copy is never nil so it marshals as a JSON array.
func (l *Ledger) Snapshot(now time.Time) []models.Packet {
	l.Trim(now)

	snapshot := make([]models.Packet, len(l.packets))
	copy(snapshot, l.packets)
	return snapshot
}
