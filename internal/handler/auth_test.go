package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rahulbhardwaj/dorawi/internal/handler"
	"github.com/rahulbhardwaj/dorawi/internal/repository/memory"
	"github.com/stretchr/testify/assert"
)

func TestAuthHandler_Signup(t *testing.T) {
	t.Run("creates user and returns token", func(t *testing.T) {
		store := memory.New()
		tokens := newTestTokens(t)
		h := handler.NewAuthHandler(store, tokens, newTestPasswords(), testLogger())

		body := `{"username":"dora","email":"dora@example.com","password":"secret123"}`
		req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewBufferString(body))
		rr := httptest.NewRecorder()

		h.HandleSignup(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)

		var res struct {
			Token string `json:"token"`
			User  struct {
				ID       string `json:"id"`
				Username string `json:"username"`
				Email    string `json:"email"`
			} `json:"user"`
		}
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&res))
		assert.NotEmpty(t, res.Token)
		assert.NotEmpty(t, res.User.ID)
		assert.Equal(t, "dora", res.User.Username)

		// The token must authenticate as the new user.
		userID, err := tokens.Validate(res.Token)
		assert.NoError(t, err)
		assert.Equal(t, res.User.ID, userID)
	})

	t.Run("never exposes the password hash", func(t *testing.T) {
		store := memory.New()
		h := handler.NewAuthHandler(store, newTestTokens(t), newTestPasswords(), testLogger())

		body := `{"username":"dora","email":"dora@example.com","password":"secret123"}`
		req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewBufferString(body))
		rr := httptest.NewRecorder()

		h.HandleSignup(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.NotContains(t, rr.Body.String(), "password")
		assert.NotContains(t, rr.Body.String(), "$2a$")
	})

	t.Run("duplicate email is a 400", func(t *testing.T) {
		store := memory.New()
		h := handler.NewAuthHandler(store, newTestTokens(t), newTestPasswords(), testLogger())
		seedUser(t, store, "dora@example.com")

		body := `{"username":"other","email":"dora@example.com","password":"secret123"}`
		req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewBufferString(body))
		rr := httptest.NewRecorder()

		h.HandleSignup(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "User already exists")
	})

	t.Run("rejects short password", func(t *testing.T) {
		h := handler.NewAuthHandler(memory.New(), newTestTokens(t), newTestPasswords(), testLogger())

		body := `{"username":"dora","email":"dora@example.com","password":"abc"}`
		req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewBufferString(body))
		rr := httptest.NewRecorder()

		h.HandleSignup(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("rejects invalid JSON", func(t *testing.T) {
		h := handler.NewAuthHandler(memory.New(), newTestTokens(t), newTestPasswords(), testLogger())

		req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewBufferString(`{"username":`))
		rr := httptest.NewRecorder()

		h.HandleSignup(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("valid credentials return token", func(t *testing.T) {
		store := memory.New()
		tokens := newTestTokens(t)
		h := handler.NewAuthHandler(store, tokens, newTestPasswords(), testLogger())
		user := seedUser(t, store, "dora@example.com")

		body := `{"email":"dora@example.com","password":"` + testPassword + `"}`
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(body))
		rr := httptest.NewRecorder()

		h.HandleLogin(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var res struct {
			Token string `json:"token"`
		}
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&res))
		userID, err := tokens.Validate(res.Token)
		assert.NoError(t, err)
		assert.Equal(t, user.ID, userID)
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		store := memory.New()
		h := handler.NewAuthHandler(store, newTestTokens(t), newTestPasswords(), testLogger())
		seedUser(t, store, "dora@example.com")

		wrongPass := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
			bytes.NewBufferString(`{"email":"dora@example.com","password":"wrong-password"}`))
		h.HandleLogin(wrongPass, req)

		unknownEmail := httptest.NewRecorder()
		req = httptest.NewRequest(http.MethodPost, "/api/auth/login",
			bytes.NewBufferString(`{"email":"nobody@example.com","password":"`+testPassword+`"}`))
		h.HandleLogin(unknownEmail, req)

		assert.Equal(t, http.StatusBadRequest, wrongPass.Code)
		assert.Equal(t, http.StatusBadRequest, unknownEmail.Code)
		assert.Equal(t, wrongPass.Body.String(), unknownEmail.Body.String())
	})
}
