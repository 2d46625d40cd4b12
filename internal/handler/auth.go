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

// AuthHandler implements email+password signup and login. Both endpoints
// return a signed access token so the client can call the protected routes
// immediately.
type AuthHandler struct {
	users     repository.UserRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

func NewAuthHandler(
	users repository.UserRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// authResponse is the body of both signup and login: the token plus the
// user profile (the password hash is excluded by the model's json tags).
type authResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// HandleSignup registers a new user.
//
// HTTP: POST /api/auth/signup
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	if req.Username == "" {
		writeError(w, apperror.ValidationFailed("username", "username is required"))
		return
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		writeError(w, apperror.ValidationFailed("email", "a valid email is required"))
		return
	}
	if len(req.Password) < 6 {
		writeError(w, apperror.ValidationFailed("password", "password must be at least 6 characters"))
		return
	}

	hash, err := h.passwords.Hash(req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := h.users.CreateUser(r.Context(), user); err != nil {
		writeError(w, err)
		return
	}

	token, err := h.tokens.Generate(user.ID)
	if err != nil {
		h.logger.Error("signup: token generation failed", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}

	h.logger.Info("user signed up", slog.String("userID", user.ID))
	writeJSON(w, http.StatusCreated, authResponse{Token: token, User: user})
}

// HandleLogin verifies credentials and issues a fresh token.
//
// HTTP: POST /api/auth/login
//
// A wrong email and a wrong password return the same generic 400 so the
// endpoint cannot be used to probe which emails are registered.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	invalidCreds := apperror.ValidationFailed("credentials", "Invalid credentials")

	user, err := h.users.GetUserByEmail(r.Context(), strings.TrimSpace(req.Email))
	if err != nil {
		writeError(w, invalidCreds)
		return
	}
	if err := h.passwords.Verify(user.PasswordHash, req.Password); err != nil {
		writeError(w, invalidCreds)
		return
	}

	token, err := h.tokens.Generate(user.ID)
	if err != nil {
		h.logger.Error("login: token generation failed", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}

	h.logger.Info("user logged in", slog.String("userID", user.ID))
	writeJSON(w, http.StatusOK, authResponse{Token: token, User: user})
}
