package state

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/five82/forkify/internal/recipe"
)

type memoryStore struct {
	saved   []recipe.Summary
	saves   int
	loadErr error
	saveErr error
}

func (m *memoryStore) LoadBookmarks(context.Context) ([]recipe.Summary, error) {
	return m.saved, m.loadErr
}

func (m *memoryStore) SaveBookmarks(_ context.Context, b []recipe.Summary) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = b
	return nil
}

func qty(v float64) *float64 { return &v }

func sampleRecipe(id string) recipe.Recipe {
	return recipe.Recipe{
		ID:       id,
		Title:    "Recipe " + id,
		Servings: 4,
		Ingredients: []recipe.Ingredient{
			{Quantity: qty(2), Unit: "cups", Description: "flour"},
			{Description: "salt"},
		},
	}
}

func TestState_SetRecipeDerivesBookmarkFlag(t *testing.T) {
	ctx := context.Background()
	s := New(nil, 10)

	if err := s.AddBookmark(ctx, recipe.Summary{ID: "b1"}); err != nil {
		t.Fatalf("AddBookmark returned error: %v", err)
	}

	s.SetRecipe(sampleRecipe("b1"))
	cur, ok := s.Recipe()
	if !ok || cur.ID != "b1" || !cur.Bookmarked {
		t.Fatalf("Recipe = %#v, want b1 bookmarked", cur)
	}

	s.SetRecipe(sampleRecipe("other"))
	cur, _ = s.Recipe()
	if cur.ID != "other" || cur.Bookmarked {
		t.Fatalf("Recipe = %#v, want other not bookmarked", cur)
	}
}

func TestState_SnapshotIsIndependent(t *testing.T) {
	s := New(nil, 10)
	s.SetRecipe(sampleRecipe("r1"))
	s.SetSearch("pizza", []recipe.Summary{{ID: "a"}, {ID: "b"}})

	snap := s.Snapshot()
	*snap.Recipe.Ingredients[0].Quantity = 100
	snap.Search.Results[0].ID = "changed"

	again := s.Snapshot()
	if *again.Recipe.Ingredients[0].Quantity != 2 {
		t.Fatalf("Snapshot shares ingredient quantities with state")
	}
	if again.Search.Results[0].ID != "a" {
		t.Fatalf("Snapshot shares search results with state")
	}
}

func TestState_UpdateServings(t *testing.T) {
	s := New(nil, 10)
	if err := s.UpdateServings(2); !errors.Is(err, ErrNoRecipe) {
		t.Fatalf("UpdateServings without recipe error = %v, want ErrNoRecipe", err)
	}

	s.SetRecipe(sampleRecipe("r1"))
	if err := s.UpdateServings(8); err != nil {
		t.Fatalf("UpdateServings returned error: %v", err)
	}
	cur, _ := s.Recipe()
	if cur.Servings != 8 || *cur.Ingredients[0].Quantity != 4 || cur.Ingredients[1].Quantity != nil {
		t.Fatalf("Recipe after scaling = %#v", cur)
	}

	if err := s.UpdateServings(0); !errors.Is(err, recipe.ErrInvalidServings) {
		t.Fatalf("UpdateServings(0) error = %v, want ErrInvalidServings", err)
	}
	cur, _ = s.Recipe()
	if cur.Servings != 8 {
		t.Fatalf("failed update changed servings to %d", cur.Servings)
	}
}

func TestState_ResultsPageClampsAndTracksPage(t *testing.T) {
	s := New(nil, 10)
	results := make([]recipe.Summary, 25)
	for i := range results {
		results[i] = recipe.Summary{ID: string(rune('a' + i))}
	}
	s.SetSearch("q", results)

	page := s.ResultsPage(1)
	if len(page) != 10 || page[0].ID != results[10].ID {
		t.Fatalf("page 1 = %v", page)
	}
	if s.Search().Page != 1 {
		t.Fatalf("Search().Page = %d, want 1", s.Search().Page)
	}

	page = s.ResultsPage(9)
	if len(page) != 5 || s.Search().Page != 2 {
		t.Fatalf("page beyond end = %d results at page %d, want 5 at 2", len(page), s.Search().Page)
	}

	s.SetSearch("new", results[:3])
	if s.Search().Page != 0 || len(s.CurrentPage()) != 3 {
		t.Fatalf("new search did not reset to first page")
	}
}

func TestState_BookmarkThenUnbookmarkRestores(t *testing.T) {
	ctx := context.Background()
	store := &memoryStore{saved: []recipe.Summary{{ID: "x"}, {ID: "y"}}}
	s := New(store, 10)
	if err := s.LoadBookmarks(ctx); err != nil {
		t.Fatalf("LoadBookmarks returned error: %v", err)
	}
	before := s.Bookmarks()

	s.SetRecipe(sampleRecipe("z"))
	if err := s.AddBookmark(ctx, recipe.Summary{ID: "z"}); err != nil {
		t.Fatalf("AddBookmark returned error: %v", err)
	}
	if err := s.AddBookmark(ctx, recipe.Summary{ID: "z"}); err != nil {
		t.Fatalf("AddBookmark (dup) returned error: %v", err)
	}
	if got := len(s.Bookmarks()); got != 3 {
		t.Fatalf("bookmarks after add = %d, want 3 (deduplicated)", got)
	}
	if cur, _ := s.Recipe(); !cur.Bookmarked {
		t.Fatalf("current recipe not flagged after bookmarking")
	}

	if err := s.DeleteBookmark(ctx, "z"); err != nil {
		t.Fatalf("DeleteBookmark returned error: %v", err)
	}
	if diff := cmp.Diff(before, s.Bookmarks()); diff != "" {
		t.Fatalf("bookmarks not restored (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(before, store.saved); diff != "" {
		t.Fatalf("persisted bookmarks not restored (-want +got):\n%s", diff)
	}
	if cur, _ := s.Recipe(); cur.Bookmarked {
		t.Fatalf("current recipe still flagged after unbookmarking")
	}
	if store.saves != 3 {
		t.Fatalf("saves = %d, want 3", store.saves)
	}
}

func TestState_LoadBookmarksDedupesAndReportsErrors(t *testing.T) {
	ctx := context.Background()
	store := &memoryStore{saved: []recipe.Summary{{ID: "a"}, {ID: "a"}, {ID: "b"}}}
	s := New(store, 10)
	if err := s.LoadBookmarks(ctx); err != nil {
		t.Fatalf("LoadBookmarks returned error: %v", err)
	}
	if got := s.Bookmarks(); len(got) != 2 {
		t.Fatalf("Bookmarks = %v, want 2 unique", got)
	}

	store.loadErr = errors.New("disk gone")
	if err := s.LoadBookmarks(ctx); err == nil {
		t.Fatalf("LoadBookmarks returned nil error, want error")
	}
}

func TestState_SaveFailureKeepsMemoryChange(t *testing.T) {
	store := &memoryStore{saveErr: errors.New("read-only")}
	s := New(store, 10)
	err := s.AddBookmark(context.Background(), recipe.Summary{ID: "a"})
	if err == nil {
		t.Fatalf("AddBookmark returned nil error, want save error")
	}
	if !s.IsBookmarked("a") {
		t.Fatalf("bookmark dropped from memory after save failure")
	}
}
