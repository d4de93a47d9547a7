package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/five82/forkify/internal/recipe"
)

// BookmarksKey is the fixed key bookmarks are stored under.
const BookmarksKey = "bookmarks"

// Bookmarks persists the bookmark list as JSON in a Store.
type Bookmarks struct {
	store  *Store
	logger *zap.Logger
}

// NewBookmarks adapts store for bookmark persistence.
func NewBookmarks(store *Store, logger *zap.Logger) *Bookmarks {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bookmarks{store: store, logger: logger}
}

// LoadBookmarks returns the stored bookmarks. A missing or unreadable value
// yields an empty list; only storage failures are errors.
func (b *Bookmarks) LoadBookmarks(ctx context.Context) ([]recipe.Summary, error) {
	raw, ok, err := b.store.Get(ctx, BookmarksKey)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return nil, nil
	}
	var out []recipe.Summary
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		b.logger.Warn("discarding unreadable bookmarks", zap.Error(err))
		return nil, nil
	}
	return out, nil
}

// SaveBookmarks replaces the stored bookmarks.
func (b *Bookmarks) SaveBookmarks(ctx context.Context, bookmarks []recipe.Summary) error {
	if bookmarks == nil {
		bookmarks = []recipe.Summary{}
	}
	raw, err := json.Marshal(bookmarks)
	if err != nil {
		return fmt.Errorf("encode bookmarks: %w", err)
	}
	return b.store.Set(ctx, BookmarksKey, string(raw))
}

// ClearBookmarks removes all stored bookmarks.
func (b *Bookmarks) ClearBookmarks(ctx context.Context) error {
	return b.store.Remove(ctx, BookmarksKey)
}
