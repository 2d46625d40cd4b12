package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rahulbhardwaj/dorawi/internal/apperror"
	"github.com/rahulbhardwaj/dorawi/internal/auth"
	"github.com/rahulbhardwaj/dorawi/internal/model"
	"github.com/rahulbhardwaj/dorawi/internal/repository"
)

// wordsPerTranslation is the fixed heuristic behind the stats endpoint's
// wordsTranslated figure. It is an estimate, not a real word count.
const wordsPerTranslation = 12

// topLanguageCount is how many target languages the stats endpoint reports.
const topLanguageCount = 3

// UserHandler serves the authenticated user's profile, password change and
// usage stats.
type UserHandler struct {
	users     repository.UserRepository
	history   repository.HistoryRepository
	passwords *auth.PasswordService
	logger    *slog.Logger
}

func NewUserHandler(
	users repository.UserRepository,
	history repository.HistoryRepository,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *UserHandler {
	return &UserHandler{
		users:     users,
		history:   history,
		passwords: passwords,
		logger:    logger,
	}
}

// HandleGetProfile returns the user's profile.
//
// HTTP: GET /api/user/profile
// Auth: required
func (h *UserHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("authentication required"))
		return
	}

	user, err := h.users.GetUserByID(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

type updateProfileRequest struct {
	Avatar string `json:"avatar"`
}

// HandleUpdateProfile updates the user's avatar, the only mutable profile
// field.
//
// HTTP: PUT /api/user/profile
// Auth: required
func (h *UserHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("authentication required"))
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	if err := h.users.UpdateAvatar(r.Context(), userID, req.Avatar); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Profile updated"})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// HandleChangePassword verifies the current password before storing the
// hash of the new one.
//
// HTTP: PUT /api/user/password
// Auth: required
func (h *UserHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("authentication required"))
		return
	}

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}
	if len(req.NewPassword) < 6 {
		writeError(w, apperror.ValidationFailed("newPassword", "password must be at least 6 characters"))
		return
	}

	user, err := h.users.GetUserByID(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.passwords.Verify(user.PasswordHash, req.CurrentPassword); err != nil {
		writeError(w, apperror.ValidationFailed("currentPassword", "Current password is incorrect"))
		return
	}

	hash, err := h.passwords.Hash(req.NewPassword)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.users.UpdatePassword(r.Context(), userID, hash); err != nil {
		writeError(w, err)
		return
	}

	h.logger.Info("password changed", slog.String("userID", userID))
	writeJSON(w, http.StatusOK, map[string]string{"message": "Password updated"})
}

// HandleStats aggregates the user's translation activity.
//
// HTTP: GET /api/user/stats
// Auth: required
func (h *UserHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("authentication required"))
		return
	}

	total, err := h.history.CountHistoryByUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	top, err := h.history.TopLanguages(r.Context(), userID, topLanguageCount)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.Stats{
		TotalTranslations: total,
		TopLanguages:      top,
		WordsTranslated:   total * wordsPerTranslation,
	})
}
