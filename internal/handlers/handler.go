package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/RuzgarAtaOzkan/server/internal/chat"
	"github.com/RuzgarAtaOzkan/server/internal/store"
)

// Handler contains shared dependencies for all HTTP handlers.
type Handler struct {
	users store.UserStore
	redis *store.RedisStore
	chat  *chat.Server
}

// NewHandler creates a new Handler with the given stores and chat server.
func NewHandler(users store.UserStore, redis *store.RedisStore, chatServer *chat.Server) *Handler {
	return &Handler{users: users, redis: redis, chat: chatServer}
}

// JSON sends a JSON response with the given status code.
func (h *Handler) JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Error sends a JSON error response with the given status code.
func (h *Handler) Error(w http.ResponseWriter, status int, message string) {
	h.JSON(w, status, map[string]string{"error": message})
}
