package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/rahulbhardwaj/dorawi/internal/apperror"
	"github.com/rahulbhardwaj/dorawi/internal/model"
)

// CreateFavorite inserts a favorite, enforcing the per-user
// (original, to_lang) uniqueness rule. Duplicates are rejected with
// apperror.ErrDuplicate, never merged.
func (db *DB) CreateFavorite(ctx context.Context, entry *model.FavoriteEntry) error {
	var existingID string
	err := db.conn.QueryRowContext(ctx,
		`SELECT id FROM favorites WHERE user_id = ? AND original = ? AND to_lang = ?`,
		entry.UserID, entry.Original, entry.ToLang,
	).Scan(&existingID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("sqlite: checking favorite duplicate: %w", err)
	}
	if existingID != "" {
		return apperror.Duplicate("Already saved")
	}

	entry.ID = xid.New().String()
	entry.CreatedAt = time.Now()

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO favorites (id, user_id, original, translated, from_lang, to_lang, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.UserID,
		entry.Original,
		entry.Translated,
		entry.FromLang,
		entry.ToLang,
		entry.CreatedAt,
	)
	if err != nil {
		// The UNIQUE index catches the race the pre-check can miss.
		if isUniqueViolation(err) {
			return apperror.Duplicate("Already saved")
		}
		return fmt.Errorf("sqlite: inserting favorite: %w", err)
	}

	return nil
}

// ListFavoritesByUser returns the user's favorites newest-first.
func (db *DB) ListFavoritesByUser(ctx context.Context, userID string) ([]model.FavoriteEntry, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, user_id, original, translated, from_lang, to_lang, created_at
		 FROM favorites WHERE user_id = ? ORDER BY created_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing favorites for user %s: %w", userID, err)
	}
	defer rows.Close()

	entries := []model.FavoriteEntry{}
	for rows.Next() {
		var e model.FavoriteEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Original, &e.Translated, &e.FromLang, &e.ToLang, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning favorite row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating favorite rows: %w", err)
	}

	return entries, nil
}

// DeleteFavorite removes the favorite if it belongs to userID. Deleting a
// missing favorite is a no-op — the end state is the same.
func (db *DB) DeleteFavorite(ctx context.Context, userID, id string) error {
	_, err := db.conn.ExecContext(ctx,
		`DELETE FROM favorites WHERE id = ? AND user_id = ?`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting favorite %s: %w", id, err)
	}
	return nil
}
