// Package handler exposes the character sheet API over net/http.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dmelim/local-character-sheets/internal/domain/models"
	"github.com/dmelim/local-character-sheets/internal/domain/services"
	"github.com/dmelim/local-character-sheets/internal/httputil"
)

// CharacterHandler handles character HTTP requests
type CharacterHandler struct {
	characters services.CharacterService
	logger     *slog.Logger
}

// NewCharacterHandler creates a new character handler
func NewCharacterHandler(characters services.CharacterService, logger *slog.Logger) *CharacterHandler {
	return &CharacterHandler{
		characters: characters,
		logger:     logger,
	}
}

// Register wires the character routes onto a mux (Go 1.22+ patterns).
func (h *CharacterHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.HealthCheck)

	mux.HandleFunc("GET /api/characters", h.ListCharacters)
	mux.HandleFunc("POST /api/characters", h.CreateCharacter)
	mux.HandleFunc("GET /api/characters/{id}", h.GetCharacter)
	mux.HandleFunc("PATCH /api/characters/{id}", h.RenameCharacter)
	mux.HandleFunc("PATCH /api/characters/{id}/update", h.UpdateCharacter)
	mux.HandleFunc("DELETE /api/characters/{id}", h.DeleteCharacter)
}

// ListResponse wraps the character listing.
type ListResponse struct {
	Items []models.CharacterSummary `json:"items"`
}

// CreateResponse carries the id of a newly created character.
type CreateResponse struct {
	ID string `json:"id"`
}

// DeleteResponse acknowledges an idempotent delete.
type DeleteResponse struct {
	OK bool `json:"ok"`
}

// ListCharacters retrieves summaries of all characters
// GET /api/characters
func (h *CharacterHandler) ListCharacters(w http.ResponseWriter, r *http.Request) {
	items, err := h.characters.ListCharacters(r.Context())
	if err != nil {
		h.handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, ListResponse{Items: items})
}

// CreateCharacter creates a new character
// POST /api/characters
func (h *CharacterHandler) CreateCharacter(w http.ResponseWriter, r *http.Request) {
	var req services.CreateCharacterRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ch, err := h.characters.CreateCharacter(r.Context(), &req)
	if err != nil {
		h.handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, CreateResponse{ID: ch.ID})
}

// GetCharacter retrieves the full character document
// GET /api/characters/{id}
func (h *CharacterHandler) GetCharacter(w http.ResponseWriter, r *http.Request) {
	ch, err := h.characters.GetCharacter(r.Context(), r.PathValue("id"))
	if err != nil {
		h.handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, ch)
}

// RenameCharacter renames a character under optimistic concurrency
// PATCH /api/characters/{id}
func (h *CharacterHandler) RenameCharacter(w http.ResponseWriter, r *http.Request) {
	var req services.RenameCharacterRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	summary, err := h.characters.RenameCharacter(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		h.handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, summary)
}

// UpdateCharacter applies a batched field update
// PATCH /api/characters/{id}/update
func (h *CharacterHandler) UpdateCharacter(w http.ResponseWriter, r *http.Request) {
	var req services.BatchedUpdateRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.characters.UpdateCharacter(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		h.handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}

// DeleteCharacter deletes a character; deleting an absent one still succeeds
// DELETE /api/characters/{id}
func (h *CharacterHandler) DeleteCharacter(w http.ResponseWriter, r *http.Request) {
	if err := h.characters.DeleteCharacter(r.Context(), r.PathValue("id")); err != nil {
		h.handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, DeleteResponse{OK: true})
}

// HealthCheck is a simple health check endpoint
// GET /health
func (h *CharacterHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now(),
	})
}
