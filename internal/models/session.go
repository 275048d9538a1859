package models

// Session is the JSON blob stored per session ID in the redis sessions hash.
type Session struct {
	UserID    string `json:"user_id"`
	CreatedAt int64  `json:"created_at"` // Unix ms
	IP        string `json:"ip,omitempty"`
}
