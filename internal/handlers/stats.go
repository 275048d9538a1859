package handlers

import (
	"context"
	"net/http"
	"time"
)

// StatsResponse represents the public stats endpoint response.
type StatsResponse struct {
	Connections      int   `json:"connections"`
	BufferedMessages int   `json:"buffered_messages"`
	UsersRegistered  int64 `json:"users_registered"`
}

// Stats reports live chat state and the registered user count.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	resp := StatsResponse{}

	if h.chat != nil {
		stats := h.chat.Stats()
		resp.Connections = stats.Connections
		resp.BufferedMessages = stats.BufferedMessages
	}

	if h.users != nil {
		if count, err := h.users.CountUsers(ctx); err == nil {
			resp.UsersRegistered = count
		}
	}

	h.JSON(w, http.StatusOK, resp)
}
