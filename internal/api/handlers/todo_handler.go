package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/taskdeck/taskdeck/internal/auth"
	"github.com/taskdeck/taskdeck/internal/services"
)

// TodoHandler handles HTTP requests for todo management. Every route it
// serves sits behind the bearer middleware, so the acting user is always
// present in the request context.
type TodoHandler struct {
	service services.TodoServiceProvider
}

// NewTodoHandler creates a new TodoHandler.
func NewTodoHandler(service services.TodoServiceProvider) *TodoHandler {
	return &TodoHandler{service: service}
}

// CreateTodoPayload defines the structure for create requests.
type CreateTodoPayload struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Completed   bool    `json:"completed"`
}

// UpdateTodoPayload defines the structure for partial updates. Pointer
// fields distinguish an omitted key from one explicitly set to its zero
// value; only the keys present in the request are applied.
type UpdateTodoPayload struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

// Create handles creation of a new todo owned by the current user.
func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r.Context())
	if !ok {
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	var payload CreateTodoPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	todo, err := h.service.Create(r.Context(), user.ID, payload.Title, payload.Description, payload.Completed)
	if err != nil {
		log.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to create todo")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, todo)
}

// List handles retrieval of all of the current user's todos.
func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r.Context())
	if !ok {
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	todos, err := h.service.List(r.Context(), user.ID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to list todos")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, todos)
}

// Get handles retrieval of a single todo. A todo that is absent or owned
// by another user serializes as null with a 200, matching list semantics
// of "nothing visible here".
func (h *TodoHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r.Context())
	if !ok {
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondJSON(w, http.StatusOK, nil)
		return
	}

	todo, err := h.service.Get(r.Context(), user.ID, id)
	if err != nil {
		if errors.Is(err, services.ErrTodoNotFound) {
			respondJSON(w, http.StatusOK, nil)
			return
		}
		log.Error().Err(err).Int64("user_id", user.ID).Int64("todo_id", id).Msg("Failed to get todo")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, todo)
}

// Update handles a partial update of a single todo.
func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r.Context())
	if !ok {
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusNotFound, services.ErrTodoNotFound.Error())
		return
	}

	var payload UpdateTodoPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	todo, err := h.service.Update(r.Context(), user.ID, id, services.TodoPatch{
		Title:       payload.Title,
		Description: payload.Description,
		Completed:   payload.Completed,
	})
	if err != nil {
		if !errors.Is(err, services.ErrTodoNotFound) {
			log.Error().Err(err).Int64("user_id", user.ID).Int64("todo_id", id).Msg("Failed to update todo")
		}
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, todo)
}

// Delete handles deletion of a single todo. Deleting a todo that does
// not exist (or is not owned by the caller) still returns 204.
func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r.Context())
	if !ok {
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	deleted, err := h.service.Delete(r.Context(), user.ID, id)
	if err != nil {
		log.Error().Err(err).Int64("user_id", user.ID).Int64("todo_id", id).Msg("Failed to delete todo")
		respondServiceError(w, err)
		return
	}
	if !deleted {
		log.Debug().Int64("user_id", user.ID).Int64("todo_id", id).Msg("Delete matched no todo")
	}

	w.WriteHeader(http.StatusNoContent)
}
