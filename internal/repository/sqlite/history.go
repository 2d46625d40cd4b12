package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/rahulbhardwaj/dorawi/internal/model"
)

// CreateHistory inserts a translation record. Entries are immutable once
// written — there is no update path.
func (db *DB) CreateHistory(ctx context.Context, entry *model.HistoryEntry) error {
	entry.ID = xid.New().String()
	entry.CreatedAt = time.Now()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO history (id, user_id, original, translated, from_lang, to_lang, created_at)
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
		return fmt.Errorf("sqlite: inserting history entry: %w", err)
	}
	return nil
}

// ListHistoryByUser returns the user's history newest-first, bounded to
// limit rows. A limit <= 0 means no bound.
func (db *DB) ListHistoryByUser(ctx context.Context, userID string, limit int) ([]model.HistoryEntry, error) {
	query := `SELECT id, user_id, original, translated, from_lang, to_lang, created_at
		 FROM history WHERE user_id = ? ORDER BY created_at DESC, id DESC`
	args := []any{userID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing history for user %s: %w", userID, err)
	}
	defer rows.Close()

	entries := []model.HistoryEntry{}
	for rows.Next() {
		var e model.HistoryEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Original, &e.Translated, &e.FromLang, &e.ToLang, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning history row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating history rows: %w", err)
	}

	return entries, nil
}

// CountHistoryByUser returns the number of history entries the user owns.
func (db *DB) CountHistoryByUser(ctx context.Context, userID string) (int, error) {
	var count int
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM history WHERE user_id = ?`, userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("sqlite: counting history for user %s: %w", userID, err)
	}
	return count, nil
}

// TopLanguages returns the user's n most frequent target languages,
// by count descending (code ascending on ties, for stable output).
func (db *DB) TopLanguages(ctx context.Context, userID string, n int) ([]model.LanguageCount, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT to_lang, COUNT(*) AS cnt FROM history
		 WHERE user_id = ?
		 GROUP BY to_lang
		 ORDER BY cnt DESC, to_lang ASC
		 LIMIT ?`,
		userID, n,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: aggregating top languages for user %s: %w", userID, err)
	}
	defer rows.Close()

	out := []model.LanguageCount{}
	for rows.Next() {
		var lc model.LanguageCount
		if err := rows.Scan(&lc.Code, &lc.Count); err != nil {
			return nil, fmt.Errorf("sqlite: scanning language count: %w", err)
		}
		out = append(out, lc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating language counts: %w", err)
	}

	return out, nil
}
