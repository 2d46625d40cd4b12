// Package repository defines the storage interfaces for users, history and
// favorites.
//
// Two implementations exist: sqlite (durable) and memory (in-process
// fallback). The choice between them is made once at startup — the server
// opens the durable store optimistically and falls back to memory when the
// open fails. Handlers receive the interfaces and never know which mode is
// active.
package repository

import (
	"context"

	"github.com/rahulbhardwaj/dorawi/internal/model"
)

type UserRepository interface {
	// CreateUser inserts a new user. A user with the same email already
	// existing yields apperror.ErrDuplicate.
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateAvatar(ctx context.Context, id, avatar string) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

type HistoryRepository interface {
	CreateHistory(ctx context.Context, entry *model.HistoryEntry) error
	// ListHistoryByUser returns entries newest-first. limit bounds the
	// result in the durable store; the fallback store returns the full
	// history.
	ListHistoryByUser(ctx context.Context, userID string, limit int) ([]model.HistoryEntry, error)
	CountHistoryByUser(ctx context.Context, userID string) (int, error)
	// TopLanguages returns the n most frequent target languages for the
	// user, by count descending.
	TopLanguages(ctx context.Context, userID string, n int) ([]model.LanguageCount, error)
}

type FavoriteRepository interface {
	// CreateFavorite inserts a favorite. A favorite with the same
	// (userID, original, toLang) already existing yields
	// apperror.ErrDuplicate.
	CreateFavorite(ctx context.Context, entry *model.FavoriteEntry) error
	ListFavoritesByUser(ctx context.Context, userID string) ([]model.FavoriteEntry, error)
	// DeleteFavorite removes the favorite with the given id if it belongs
	// to userID. Deleting a missing favorite is not an error.
	DeleteFavorite(ctx context.Context, userID, id string) error
}

// Store aggregates all repositories behind one handle so the server can
// swap the whole persistence mode at once.
type Store interface {
	UserRepository
	HistoryRepository
	FavoriteRepository
	Close() error
}
