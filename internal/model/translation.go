package model

import "time"

// HistoryEntry is one recorded translation. Entries are immutable once
// created and always belong to a user (UserID is never empty).
type HistoryEntry struct {
	ID         string    `json:"id"         db:"id"`
	UserID     string    `json:"userId"     db:"user_id"`
	Original   string    `json:"original"   db:"original"`
	Translated string    `json:"translated" db:"translated"`
	FromLang   string    `json:"fromLang"   db:"from_lang"`
	ToLang     string    `json:"toLang"     db:"to_lang"`
	CreatedAt  time.Time `json:"createdAt"  db:"created_at"`
}

// FavoriteEntry has the same shape as HistoryEntry plus a uniqueness rule:
// no two favorites for the same user may share (Original, ToLang).
// Duplicate inserts are rejected, never merged.
type FavoriteEntry struct {
	ID         string    `json:"id"         db:"id"`
	UserID     string    `json:"userId"     db:"user_id"`
	Original   string    `json:"original"   db:"original"`
	Translated string    `json:"translated" db:"translated"`
	FromLang   string    `json:"fromLang"   db:"from_lang"`
	ToLang     string    `json:"toLang"     db:"to_lang"`
	CreatedAt  time.Time `json:"createdAt"  db:"created_at"`
}

// TranslationResult is the transient output of the translation pipeline.
// It is returned to the caller and, if the client chooses, becomes a
// HistoryEntry via POST /api/history. It is never persisted on its own.
type TranslationResult struct {
	Original   string `json:"original"`
	Translated string `json:"translated"`
}

// LanguageCount is one row of the top-languages aggregation.
type LanguageCount struct {
	Code  string `json:"code"`
	Count int    `json:"count"`
}

// Stats summarises a user's translation activity.
//
// WordsTranslated is a fixed heuristic (translations x 12), not a real word
// count.
type Stats struct {
	TotalTranslations int             `json:"totalTranslations"`
	TopLanguages      []LanguageCount `json:"topLanguages"`
	WordsTranslated   int             `json:"wordsTranslated"`
}
