package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rahulbhardwaj/dorawi/internal/apperror"
	"github.com/rahulbhardwaj/dorawi/internal/auth"
	"github.com/rahulbhardwaj/dorawi/internal/model"
	"github.com/rahulbhardwaj/dorawi/internal/repository"
)

// FavoriteHandler serves the authenticated user's saved translations.
// Saving the same (original, toLang) pair twice is rejected, so "Already
// saved" surfaces as a 400 rather than silently merging.
type FavoriteHandler struct {
	favorites repository.FavoriteRepository
	logger    *slog.Logger
}

func NewFavoriteHandler(favorites repository.FavoriteRepository, logger *slog.Logger) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites, logger: logger}
}

// HandleList returns the user's favorites, newest first.
//
// HTTP: GET /api/favorites
// Auth: required
func (h *FavoriteHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("authentication required"))
		return
	}

	entries, err := h.favorites.ListFavoritesByUser(r.Context(), userID)
	if err != nil {
		h.logger.Error("listing favorites failed",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

type favoriteCreateRequest struct {
	Original   string `json:"original"`
	Translated string `json:"translated"`
	FromLang   string `json:"fromLang"`
	ToLang     string `json:"toLang"`
}

// HandleCreate saves one translation as a favorite.
//
// HTTP: POST /api/favorites
// Auth: required
func (h *FavoriteHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("authentication required"))
		return
	}

	var req favoriteCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}
	if strings.TrimSpace(req.Original) == "" || strings.TrimSpace(req.Translated) == "" {
		writeError(w, apperror.ValidationFailed("body", "original and translated are required"))
		return
	}

	entry := &model.FavoriteEntry{
		UserID:     userID,
		Original:   req.Original,
		Translated: req.Translated,
		FromLang:   req.FromLang,
		ToLang:     req.ToLang,
	}
	if err := h.favorites.CreateFavorite(r.Context(), entry); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}

// HandleDelete removes one favorite owned by the user. Deleting an unknown
// id is a no-op success, so the endpoint is idempotent.
//
// HTTP: DELETE /api/favorites/{id}
// Auth: required
func (h *FavoriteHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("authentication required"))
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, apperror.ValidationFailed("id", "favorite id is required"))
		return
	}

	if err := h.favorites.DeleteFavorite(r.Context(), userID, id); err != nil {
		h.logger.Error("deleting favorite failed",
			slog.String("userID", userID),
			slog.String("favoriteID", id),
			slog.String("error", err.Error()),
		)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Favorite removed"})
}
