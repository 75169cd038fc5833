package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/taskdeck/taskdeck/internal/services"
)

// UserHandler handles HTTP requests for user listing.
type UserHandler struct {
	service services.UserServiceProvider
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserServiceProvider) *UserHandler {
	return &UserHandler{service: service}
}

// List returns every registered user. Password hashes are excluded by
// the model's json tags.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list users")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, users)
}
