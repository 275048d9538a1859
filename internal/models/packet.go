package models

import "time"

// Packet is a broadcast chat message. Entries are immutable once accepted;
// the ledger evicts them by count or by age.
type Packet struct {
	ID        string    `json:"-"` // ULID, logs only
	Admin     bool      `json:"admin"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
