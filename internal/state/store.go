package state

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/five82/forkify/internal/recipe"
)

// ErrNoRecipe is returned by operations that need a current recipe.
var ErrNoRecipe = errors.New("no recipe loaded")

// BookmarkStore persists the bookmark list.
type BookmarkStore interface {
	LoadBookmarks(ctx context.Context) ([]recipe.Summary, error)
	SaveBookmarks(ctx context.Context, bookmarks []recipe.Summary) error
}

// Snapshot is a copy of the application state handed to views.
type Snapshot struct {
	Recipe      *recipe.Recipe
	Search      recipe.Search
	Bookmarks   []recipe.Summary
	LastUpdated time.Time
}

// State is the single application state. All mutation goes through its
// methods; readers get copies.
type State struct {
	mu          sync.RWMutex
	recipe      *recipe.Recipe
	search      recipe.Search
	bookmarks   []recipe.Summary
	lastUpdated time.Time
	persist     BookmarkStore
}

// New creates an empty state. A nil store keeps bookmarks in memory only.
func New(store BookmarkStore, perPage int) *State {
	if perPage <= 0 {
		perPage = recipe.DefaultResultsPerPage
	}
	return &State{
		search:  recipe.Search{PerPage: perPage},
		persist: store,
	}
}

// LoadBookmarks replaces the in-memory bookmarks with the persisted ones.
func (s *State) LoadBookmarks(ctx context.Context) error {
	if s.persist == nil {
		return nil
	}
	loaded, err := s.persist.LoadBookmarks(ctx)
	if err != nil {
		return fmt.Errorf("load bookmarks: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookmarks = dedupe(loaded)
	if s.recipe != nil {
		s.recipe.Bookmarked = s.indexOf(s.recipe.ID) >= 0
	}
	s.touch()
	return nil
}

// SetRecipe makes r the current recipe. Its Bookmarked flag is derived from
// the bookmark list.
func (s *State) SetRecipe(r recipe.Recipe) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := r.Clone()
	cur.Bookmarked = s.indexOf(cur.ID) >= 0
	s.recipe = &cur
	s.touch()
}

// Recipe returns a copy of the current recipe.
func (s *State) Recipe() (recipe.Recipe, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.recipe == nil {
		return recipe.Recipe{}, false
	}
	return s.recipe.Clone(), true
}

// SetSearch records a new query and its results and resets to the first page.
func (s *State) SetSearch(query string, results []recipe.Summary) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.search.Query = query
	s.search.Results = cloneSummaries(results)
	s.search.Page = 0
	s.touch()
}

// ResultsPage moves to page k (clamped to the available pages) and returns
// its results.
func (s *State) ResultsPage(k int) []recipe.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.search.Page = recipe.ClampPage(k, len(s.search.Results), s.search.PerPage)
	s.touch()
	return recipe.Page(s.search.Results, s.search.Page, s.search.PerPage)
}

// CurrentPage returns the results on the current page without moving.
func (s *State) CurrentPage() []recipe.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return recipe.Page(s.search.Results, s.search.Page, s.search.PerPage)
}

// Search returns a copy of the search record.
func (s *State) Search() recipe.Search {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.search
	out.Results = cloneSummaries(s.search.Results)
	return out
}

// UpdateServings rescales the current recipe to servings.
func (s *State) UpdateServings(servings int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.recipe == nil {
		return ErrNoRecipe
	}
	scaled, err := s.recipe.WithServings(servings)
	if err != nil {
		return err
	}
	s.recipe = &scaled
	s.touch()
	return nil
}

// AddBookmark appends summary unless its id is already bookmarked, and
// persists the list. The in-memory list is updated even when persisting fails.
func (s *State) AddBookmark(ctx context.Context, summary recipe.Summary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(summary.ID) < 0 {
		s.bookmarks = append(s.bookmarks, summary)
	}
	if s.recipe != nil && s.recipe.ID == summary.ID {
		s.recipe.Bookmarked = true
	}
	s.touch()
	return s.save(ctx)
}

// DeleteBookmark removes id from the bookmarks and persists the list.
func (s *State) DeleteBookmark(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(id); i >= 0 {
		s.bookmarks = append(s.bookmarks[:i:i], s.bookmarks[i+1:]...)
	}
	if s.recipe != nil && s.recipe.ID == id {
		s.recipe.Bookmarked = false
	}
	s.touch()
	return s.save(ctx)
}

// IsBookmarked reports whether id is in the bookmarks.
func (s *State) IsBookmarked(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexOf(id) >= 0
}

// Bookmarks returns a copy of the bookmark list.
func (s *State) Bookmarks() []recipe.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSummaries(s.bookmarks)
}

// Snapshot returns a copy of the whole state.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Search:      s.search,
		Bookmarks:   cloneSummaries(s.bookmarks),
		LastUpdated: s.lastUpdated,
	}
	snap.Search.Results = cloneSummaries(s.search.Results)
	if s.recipe != nil {
		r := s.recipe.Clone()
		snap.Recipe = &r
	}
	return snap
}

func (s *State) save(ctx context.Context) error {
	if s.persist == nil {
		return nil
	}
	if err := s.persist.SaveBookmarks(ctx, cloneSummaries(s.bookmarks)); err != nil {
		return fmt.Errorf("save bookmarks: %w", err)
	}
	return nil
}

func (s *State) touch() {
	s.lastUpdated = time.Now()
}

func (s *State) indexOf(id string) int {
	for i, b := range s.bookmarks {
		if b.ID == id {
			return i
		}
	}
	return -1
}

func dedupe(in []recipe.Summary) []recipe.Summary {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]recipe.Summary, 0, len(in))
	for _, b := range in {
		if _, ok := seen[b.ID]; ok {
			continue
		}
		seen[b.ID] = struct{}{}
		out = append(out, b)
	}
	return out
}

func cloneSummaries(in []recipe.Summary) []recipe.Summary {
	if len(in) == 0 {
		return nil
	}
	dup := make([]recipe.Summary, len(in))
	copy(dup, in)
	return dup
}
