// Package memory implements the repository interfaces with in-process maps.
//
// It is the fallback store used when the durable database cannot be reached
// at startup. Nothing survives a restart, and the durable and fallback
// stores are never merged or reconciled — whichever mode is selected at
// boot stays active for the process lifetime.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/xid"

	"github.com/rahulbhardwaj/dorawi/internal/apperror"
	"github.com/rahulbhardwaj/dorawi/internal/model"
	"github.com/rahulbhardwaj/dorawi/internal/repository"
)

// Store implements repository.Store with mutex-guarded maps.
//
// One coarse mutex guards everything. Expected load in fallback mode is a
// handful of users; fine-grained locking would buy nothing.
type Store struct {
	mu        sync.Mutex
	users     map[string]*model.User          // keyed by user ID
	byEmail   map[string]string               // lowercased email → user ID
	history   map[string][]model.HistoryEntry // keyed by owning user ID
	favorites map[string][]model.FavoriteEntry
}

// Ensure interfaces are met.
var _ repository.Store = (*Store)(nil)

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		users:     make(map[string]*model.User),
		byEmail:   make(map[string]string),
		history:   make(map[string][]model.HistoryEntry),
		favorites: make(map[string][]model.FavoriteEntry),
	}
}

// Close is a no-op; it exists to satisfy repository.Store.
func (s *Store) Close() error { return nil }

// --- UserRepository ---

func (s *Store) CreateUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(user.Email)
	if _, exists := s.byEmail[key]; exists {
		return apperror.Duplicate("User already exists")
	}

	now := time.Now()
	user.ID = xid.New().String()
	user.CreatedAt = now
	user.UpdatedAt = now

	copied := *user
	s.users[user.ID] = &copied
	s.byEmail[key] = user.ID
	return nil
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	copied := *u
	return &copied, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, apperror.NotFound("user", email)
	}
	copied := *s.users[id]
	return &copied, nil
}

func (s *Store) UpdateAvatar(ctx context.Context, id, avatar string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return apperror.NotFound("user", id)
	}
	u.Avatar = avatar
	u.UpdatedAt = time.Now()
	return nil
}

func (s *Store) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return apperror.NotFound("user", id)
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now()
	return nil
}

// --- HistoryRepository ---

func (s *Store) CreateHistory(ctx context.Context, entry *model.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.ID = xid.New().String()
	entry.CreatedAt = time.Now()
	s.history[entry.UserID] = append(s.history[entry.UserID], *entry)
	return nil
}

// ListHistoryByUser returns the user's full history newest-first. The limit
// is ignored here: only the durable store bounds the result.
func (s *Store) ListHistoryByUser(ctx context.Context, userID string, limit int) ([]model.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.history[userID]
	out := make([]model.HistoryEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) CountHistoryByUser(ctx context.Context, userID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.history[userID]), nil
}

func (s *Store) TopLanguages(ctx context.Context, userID string, n int) ([]model.LanguageCount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := make(map[string]int)
	for _, e := range s.history[userID] {
		counts[e.ToLang]++
	}

	out := make([]model.LanguageCount, 0, len(counts))
	for code, count := range counts {
		out = append(out, model.LanguageCount{Code: code, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Code < out[j].Code // stable order for equal counts
	})
	if len(out) > n {
		out = out[:n]
	}
	return out, nil
}

// --- FavoriteRepository ---

func (s *Store) CreateFavorite(ctx context.Context, entry *model.FavoriteEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, f := range s.favorites[entry.UserID] {
		if f.Original == entry.Original && f.ToLang == entry.ToLang {
			return apperror.Duplicate("Already saved")
		}
	}

	entry.ID = xid.New().String()
	entry.CreatedAt = time.Now()
	s.favorites[entry.UserID] = append(s.favorites[entry.UserID], *entry)
	return nil
}

func (s *Store) ListFavoritesByUser(ctx context.Context, userID string) ([]model.FavoriteEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.favorites[userID]
	out := make([]model.FavoriteEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) DeleteFavorite(ctx context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.favorites[userID]
	kept := entries[:0]
	for _, f := range entries {
		if f.ID != id {
			kept = append(kept, f)
		}
	}
	s.favorites[userID] = kept
	return nil
}
