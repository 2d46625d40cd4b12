package handler_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/rahulbhardwaj/dorawi/internal/auth"
	"github.com/rahulbhardwaj/dorawi/internal/model"
	"github.com/rahulbhardwaj/dorawi/internal/repository/memory"
)

const (
	testSecret   = "handler-test-secret-16chars!"
	testPassword = "password123"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestTokens(t *testing.T) *auth.TokenService {
	t.Helper()
	tokens, err := auth.NewTokenService(testSecret)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return tokens
}

// newTestPasswords uses a minimal bcrypt cost to keep the suite fast.
func newTestPasswords() *auth.PasswordService {
	return auth.NewPasswordServiceForTest(4)
}

// seedUser creates a user with testPassword in the store.
func seedUser(t *testing.T, store *memory.Store, email string) *model.User {
	t.Helper()
	hash, err := newTestPasswords().Hash(testPassword)
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}
	user := &model.User{
		Username:     "tester",
		Email:        email,
		PasswordHash: hash,
	}
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("seeding user: %v", err)
	}
	return user
}
