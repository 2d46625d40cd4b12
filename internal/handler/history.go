package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/rahulbhardwaj/dorawi/internal/apperror"
	"github.com/rahulbhardwaj/dorawi/internal/auth"
	"github.com/rahulbhardwaj/dorawi/internal/model"
	"github.com/rahulbhardwaj/dorawi/internal/repository"
)

// historyLimit bounds how many entries the list endpoint returns from the
// durable store. The in-memory fallback ignores it.
const historyLimit = 50

// HistoryHandler serves the authenticated user's translation history.
type HistoryHandler struct {
	history repository.HistoryRepository
	logger  *slog.Logger
}

func NewHistoryHandler(history repository.HistoryRepository, logger *slog.Logger) *HistoryHandler {
	return &HistoryHandler{history: history, logger: logger}
}

// HandleList returns the user's history, newest first.
//
// HTTP: GET /api/history
// Auth: required
func (h *HistoryHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("authentication required"))
		return
	}

	entries, err := h.history.ListHistoryByUser(r.Context(), userID, historyLimit)
	if err != nil {
		h.logger.Error("listing history failed",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

type historyCreateRequest struct {
	Original   string `json:"original"`
	Translated string `json:"translated"`
	FromLang   string `json:"fromLang"`
	ToLang     string `json:"toLang"`
}

// HandleCreate records one translation in the user's history.
//
// HTTP: POST /api/history
// Auth: required
func (h *HistoryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("authentication required"))
		return
	}

	var req historyCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}
	if strings.TrimSpace(req.Original) == "" || strings.TrimSpace(req.Translated) == "" {
		writeError(w, apperror.ValidationFailed("body", "original and translated are required"))
		return
	}

	entry := &model.HistoryEntry{
		UserID:     userID,
		Original:   req.Original,
		Translated: req.Translated,
		FromLang:   req.FromLang,
		ToLang:     req.ToLang,
	}
	if err := h.history.CreateHistory(r.Context(), entry); err != nil {
		h.logger.Error("creating history entry failed",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}
