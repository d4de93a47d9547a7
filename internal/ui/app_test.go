package ui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/forkify/internal/controller"
	"github.com/five82/forkify/internal/event"
	"github.com/five82/forkify/internal/forkify"
	"github.com/five82/forkify/internal/prefs"
	"github.com/five82/forkify/internal/recipe"
	"github.com/five82/forkify/internal/state"
)

type fakeSource struct {
	results []forkify.SummaryDTO
	created int
}

func (f *fakeSource) Search(_ context.Context, _ string) ([]forkify.SummaryDTO, error) {
	return f.results, nil
}

func (f *fakeSource) Recipe(_ context.Context, id string) (forkify.RecipeDTO, error) {
	if id == "missing" {
		return forkify.RecipeDTO{}, &forkify.APIError{StatusCode: 400, Message: "Invalid _id: missing"}
	}
	servings := 4
	if id == "single" {
		servings = 1
	}
	two := 2.0
	return forkify.RecipeDTO{
		ID:          id,
		Title:       "Recipe " + id,
		Publisher:   "Test Kitchen",
		SourceURL:   "https://example.com/" + id,
		Servings:    servings,
		CookingTime: 30,
		Ingredients: []forkify.IngredientDTO{
			{Quantity: &two, Unit: "cups", Description: "flour"},
			{Description: "salt"},
		},
	}, nil
}

func (f *fakeSource) CreateRecipe(_ context.Context, dto forkify.RecipeDTO) (forkify.RecipeDTO, error) {
	f.created++
	dto.ID = fmt.Sprintf("user-%d", f.created)
	dto.Key = "key"
	return dto, nil
}

func newTestModel(t *testing.T, opts Options) (Model, *state.State) {
	t.Helper()
	src := &fakeSource{}
	for i := 0; i < 23; i++ {
		src.results = append(src.results, forkify.SummaryDTO{ID: fmt.Sprintf("s%02d", i), Title: fmt.Sprintf("Result %02d", i)})
	}
	st := opts.State
	if st == nil {
		st = state.New(nil, 10)
	}
	d := event.NewDispatcher(nil)
	t.Cleanup(controller.New(st, src, nil).Register(d))

	opts.Dispatcher = d
	opts.State = st
	if opts.PrefsPath == "" {
		opts.PrefsPath = filepath.Join(t.TempDir(), "prefs.toml")
	}
	if opts.ModalClose == 0 {
		opts.ModalClose = time.Millisecond
	}

	m := New(opts)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 160, Height: 40})
	return next.(Model), st
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func press(m Model, k string) (Model, tea.Cmd) {
	next, cmd := m.Update(keyMsg(k))
	return next.(Model), cmd
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		m, _ = press(m, string(r))
	}
	return m
}

// drain runs cmd and feeds dispatch results back into the model. Other
// messages (spinner frames, cursor blinks) are dropped.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		return m
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			m = drain(t, m, c)
		}
	case dispatchedMsg, submitUploadMsg, closeModalMsg:
		next, follow := m.Update(msg)
		m = drain(t, next.(Model), follow)
	}
	return m
}

func searchFor(t *testing.T, m Model, query string) Model {
	t.Helper()
	m, _ = press(m, "/")
	m = typeText(m, query)
	m, cmd := press(m, "enter")
	require.True(t, m.loading[regionResults], "search marks results as loading")
	return drain(t, m, cmd)
}

func TestUpdate_WindowSizeBeforeReady(t *testing.T) {
	m := New(Options{PrefsPath: filepath.Join(t.TempDir(), "prefs.toml")})
	assert.Equal(t, "Loading...", m.View())

	next, _ := m.Update(tea.WindowSizeMsg{Width: 0, Height: 0})
	result := next.(Model)
	assert.True(t, result.ready)
	assert.NotPanics(t, func() { _ = result.View() })
}

func TestSearch_SubmitsAndShowsFirstPage(t *testing.T) {
	m, _ := newTestModel(t, Options{})

	m, _ = press(m, "/")
	require.Equal(t, FocusSearch, m.focus)
	m = typeText(m, "pizza")
	assert.Equal(t, "pizza", m.searchInput.Value())

	m, cmd := press(m, "enter")
	assert.Equal(t, FocusResults, m.focus)
	assert.Empty(t, m.searchInput.Value(), "input is cleared on submit")
	m = drain(t, m, cmd)

	assert.False(t, m.loading[regionResults])
	assert.Equal(t, "pizza", m.snapshot.Search.Query)
	assert.Len(t, m.currentPage(), 10)

	view := m.View()
	assert.Contains(t, view, "Result 00")
	assert.Contains(t, view, "Page 2 ›")
	assert.NotContains(t, view, "‹ Page")
}

func TestSearch_EmptyQueryIsIgnored(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m, _ = press(m, "/")
	m = typeText(m, "   ")
	m, cmd := press(m, "enter")
	assert.Nil(t, cmd)
	assert.Equal(t, FocusResults, m.focus)
	assert.Empty(t, m.snapshot.Search.Query)
}

func TestResults_PaginateAndOpen(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m = searchFor(t, m, "pizza")

	m, cmd := press(m, "left")
	assert.Nil(t, cmd, "no previous page on the first page")

	m, cmd = press(m, "]")
	m = drain(t, m, cmd)
	assert.Equal(t, 1, m.snapshot.Search.Page)
	view := m.View()
	assert.Contains(t, view, "‹ Page 1")
	assert.Contains(t, view, "Page 3 ›")

	m, cmd = press(m, "right")
	m = drain(t, m, cmd)
	assert.Equal(t, 2, m.snapshot.Search.Page)
	require.Len(t, m.currentPage(), 3)
	view = m.View()
	assert.Contains(t, view, "‹ Page 2")
	assert.NotContains(t, view, "Page 4 ›")

	_, cmd = press(m, "]")
	assert.Nil(t, cmd, "no next page on the last page")

	m, _ = press(m, "j")
	m, _ = press(m, "j")
	m, _ = press(m, "j")
	assert.Equal(t, 2, m.selectedResult, "selection stops at the last row")

	m, cmd = press(m, "enter")
	assert.Equal(t, "#s22", m.location)
	m = drain(t, m, cmd)
	require.NotNil(t, m.snapshot.Recipe)
	assert.Equal(t, "s22", m.snapshot.Recipe.ID)
	assert.Contains(t, m.View(), "RECIPE S22")

	_, cmd = press(m, "enter")
	assert.Nil(t, cmd, "reopening the current location is a no-op")
}

func TestPaginationLabels(t *testing.T) {
	tests := []struct {
		name     string
		results  int
		page     int
		wantPrev string
		wantNext string
	}{
		{name: "single page", results: 7, page: 0},
		{name: "first page", results: 23, page: 0, wantNext: "Page 2 ›"},
		{name: "middle page", results: 23, page: 1, wantPrev: "‹ Page 1", wantNext: "Page 3 ›"},
		{name: "last page", results: 23, page: 2, wantPrev: "‹ Page 2"},
		{name: "no results", results: 0, page: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := searchOf(tt.results, tt.page)
			prev, next := paginationLabels(s)
			assert.Equal(t, tt.wantPrev, prev)
			assert.Equal(t, tt.wantNext, next)
		})
	}
}

func TestLocation_LoadsRecipeOnInit(t *testing.T) {
	m, _ := newTestModel(t, Options{Location: "r1"})
	assert.Equal(t, "#r1", m.location)
	assert.True(t, m.loading[regionRecipe])
	assert.Contains(t, m.View(), "Loading recipe...")

	m = drain(t, m, m.Init())
	require.NotNil(t, m.snapshot.Recipe)
	assert.Equal(t, "r1", m.snapshot.Recipe.ID)
	assert.False(t, m.loading[regionRecipe])

	view := m.View()
	assert.Contains(t, view, "2 cups flour")
	assert.Contains(t, view, "Test Kitchen")
}

func TestLocation_FailedLoadShowsRecipeError(t *testing.T) {
	m, _ := newTestModel(t, Options{Location: "#missing"})
	m = drain(t, m, m.Init())

	assert.Nil(t, m.snapshot.Recipe)
	assert.Equal(t, msgRecipeError, m.errors[regionRecipe])
	assert.Contains(t, m.View(), msgRecipeError)
}

func TestRecipe_ServingsAndBookmarkKeys(t *testing.T) {
	m, st := newTestModel(t, Options{Location: "#r1"})
	m = drain(t, m, m.Init())

	m, cmd := press(m, "+")
	m = drain(t, m, cmd)
	require.NotNil(t, m.snapshot.Recipe)
	assert.Equal(t, 5, m.snapshot.Recipe.Servings)
	assert.InDelta(t, 2.5, *m.snapshot.Recipe.Ingredients[0].Quantity, 1e-9)
	assert.Contains(t, m.View(), "2 1/2 cups flour")

	m, cmd = press(m, "-")
	m = drain(t, m, cmd)
	assert.Equal(t, 4, m.snapshot.Recipe.Servings)

	m, cmd = press(m, "b")
	m = drain(t, m, cmd)
	assert.True(t, m.snapshot.Recipe.Bookmarked)
	assert.True(t, st.IsBookmarked("r1"))
	assert.Contains(t, m.View(), "★ bookmarked")

	m, cmd = press(m, "b")
	m = drain(t, m, cmd)
	assert.False(t, m.snapshot.Recipe.Bookmarked)
	assert.Empty(t, st.Bookmarks())
}

type failingBookmarks struct{}

func (failingBookmarks) LoadBookmarks(context.Context) ([]recipe.Summary, error) { return nil, nil }

func (failingBookmarks) SaveBookmarks(context.Context, []recipe.Summary) error {
	return errors.New("disk full")
}

func TestRecipe_FailedBookmarkSaveShowsOnStatusLine(t *testing.T) {
	st := state.New(failingBookmarks{}, 10)
	m, _ := newTestModel(t, Options{Location: "#r1", State: st})
	m = drain(t, m, m.Init())

	m, cmd := press(m, "b")
	m = drain(t, m, cmd)

	assert.Contains(t, m.errors[regionStatus], "disk full")
	assert.Empty(t, m.errors[regionBookmarks])
	assert.Contains(t, m.View(), "disk full")
	assert.True(t, st.IsBookmarked("r1"), "bookmark is kept in memory")
}

func TestRecipe_ServingsNeverBelowOne(t *testing.T) {
	m, _ := newTestModel(t, Options{Location: "#single"})
	m = drain(t, m, m.Init())
	require.Equal(t, 1, m.snapshot.Recipe.Servings)

	_, cmd := press(m, "-")
	assert.Nil(t, cmd)
}

func TestRecipe_KeysWithoutRecipeDoNothing(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	for _, k := range []string{"+", "-", "b"} {
		_, cmd := press(m, k)
		assert.Nil(t, cmd, "key %q", k)
	}
	assert.Contains(t, m.View(), msgRecipeEmpty)
}

func TestBookmarksPanel(t *testing.T) {
	m, _ := newTestModel(t, Options{Location: "#r2"})
	m = drain(t, m, m.Init())

	m, _ = press(m, "B")
	assert.True(t, m.showBookmarks)
	assert.Equal(t, FocusBookmarks, m.focus)
	assert.Contains(t, m.View(), msgNoBookmarks)

	m, cmd := press(m, "b")
	m = drain(t, m, cmd)
	assert.Contains(t, m.View(), "Recipe r2")

	m, _ = press(m, "esc")
	assert.False(t, m.showBookmarks)
	assert.Equal(t, FocusResults, m.focus)
}

func TestBookmarksPanel_OpensBookmark(t *testing.T) {
	m, _ := newTestModel(t, Options{Location: "#r2"})
	m = drain(t, m, m.Init())
	m, cmd := press(m, "b")
	m = drain(t, m, cmd)

	m = searchFor(t, m, "pizza")
	m, cmd = press(m, "enter")
	m = drain(t, m, cmd)
	require.Equal(t, "s00", m.snapshot.Recipe.ID)

	m, _ = press(m, "B")
	m, cmd = press(m, "enter")
	m = drain(t, m, cmd)
	assert.Equal(t, "#r2", m.location)
	assert.Equal(t, "r2", m.snapshot.Recipe.ID)
}

func TestUploadForm_UploadsAndClosesItself(t *testing.T) {
	m, st := newTestModel(t, Options{CanUpload: true})

	m, _ = press(m, "a")
	require.NotNil(t, m.modal)
	assert.Contains(t, m.View(), "Add recipe")

	fields := []string{"My soup", "https://example.com/soup", "https://example.com/soup.jpg", "Me", "20", "2", "1,kg,carrots", ",,salt"}
	for i, value := range fields {
		m = typeText(m, value)
		if i < len(fields)-1 {
			m, _ = press(m, "tab")
		}
	}

	m, cmd := press(m, "ctrl+s")
	require.NotNil(t, cmd)
	form := m.modal.(uploadForm)
	assert.True(t, form.uploading)

	next, cmd := m.Update(cmd())
	m = next.(Model)
	dispatched := findDispatched(t, cmd)
	require.NoError(t, dispatched.err)

	next, cmd = m.Update(dispatched)
	m = next.(Model)
	require.NotNil(t, m.modal, "form stays open until the close timer fires")
	assert.Contains(t, m.View(), msgUploadSuccess)
	assert.Equal(t, "#user-1", m.location)
	assert.True(t, st.IsBookmarked("user-1"))

	m = drain(t, m, cmd)
	assert.Nil(t, m.modal)
	assert.Contains(t, m.View(), "MY SOUP")
	assert.Contains(t, m.View(), "◆ yours")
}

func TestUploadForm_ShowsValidationErrors(t *testing.T) {
	m, _ := newTestModel(t, Options{CanUpload: true})
	m, _ = press(m, "a")

	m, cmd := press(m, "ctrl+s")
	assert.Nil(t, cmd)
	assert.Contains(t, m.modal.(uploadForm).err, "prep time")

	// Fill only the numeric fields so the upload reaches validation.
	for i := 0; i < fieldCookingTime; i++ {
		m, _ = press(m, "tab")
	}
	m = typeText(m, "10")
	m, _ = press(m, "tab")
	m = typeText(m, "2")

	m, cmd = press(m, "ctrl+s")
	m = drain(t, m, cmd)
	require.NotNil(t, m.modal)
	form := m.modal.(uploadForm)
	assert.False(t, form.uploading)
	assert.Equal(t, "title is required", form.err)

	m, _ = press(m, "esc")
	assert.Nil(t, m.modal)
}

func TestUploadForm_DisabledWithoutAPIKey(t *testing.T) {
	m, _ := newTestModel(t, Options{CanUpload: false})
	m, _ = press(m, "a")
	assert.Nil(t, m.modal)
	assert.Contains(t, m.View(), "api_key")

	m, _ = press(m, "j")
	assert.Empty(t, m.errors[regionStatus], "status clears on the next key")
}

func TestHelpOverlay(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m, _ = press(m, "?")
	assert.True(t, m.showHelp)
	assert.Contains(t, m.View(), "Keyboard Shortcuts")

	m, cmd := press(m, "q")
	assert.Nil(t, cmd, "keys close help instead of acting")
	assert.False(t, m.showHelp)
}

func TestThemeCyclePersistsPrefs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	m, _ := newTestModel(t, Options{PrefsPath: path})
	require.Equal(t, "Dracula", m.theme.Name)

	m, _ = press(m, "T")
	assert.Equal(t, "Slate", m.theme.Name)

	p, err := prefs.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Slate", p.Theme)
}

func TestBookmarksPanelStatePersistsPrefs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	m, _ := newTestModel(t, Options{PrefsPath: path})

	m, _ = press(m, "T")
	m, _ = press(m, "B")
	p, err := prefs.Load(path)
	require.NoError(t, err)
	assert.Equal(t, prefs.Prefs{Theme: "Slate", BookmarksOpen: true}, p)

	m, _ = press(m, "B")
	assert.False(t, m.showBookmarks)
	p, err = prefs.Load(path)
	require.NoError(t, err)
	assert.False(t, p.BookmarksOpen)
	assert.Equal(t, "Slate", p.Theme, "theme survives the panel toggle")

	reopened, _ := newTestModel(t, Options{PrefsPath: path, ShowBookmarks: true})
	assert.True(t, reopened.showBookmarks)
	assert.Contains(t, reopened.View(), msgNoBookmarks)
}

func TestQuitKeys(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	for _, k := range []string{"q", "ctrl+c"} {
		_, cmd := press(m, k)
		require.NotNil(t, cmd)
		_, ok := cmd().(tea.QuitMsg)
		assert.True(t, ok, "key %q quits", k)
	}

	m, _ = press(m, "/")
	m, _ = press(m, "q")
	assert.Equal(t, "q", m.searchInput.Value(), "q types into the search input")
	assert.Equal(t, FocusSearch, m.focus)
}

func TestTabCyclesPanes(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m, _ = press(m, "tab")
	assert.Equal(t, FocusRecipe, m.focus)
	m, _ = press(m, "tab")
	assert.Equal(t, FocusResults, m.focus)
}

func TestCompactLayoutShowsFocusedPane(t *testing.T) {
	m, _ := newTestModel(t, Options{Location: "#r1"})
	m = drain(t, m, m.Init())
	next, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: 30})
	m = next.(Model)

	assert.NotContains(t, m.View(), "RECIPE R1")
	m, _ = press(m, "tab")
	assert.Contains(t, m.View(), "RECIPE R1")
}

func findDispatched(t *testing.T, cmd tea.Cmd) dispatchedMsg {
	t.Helper()
	require.NotNil(t, cmd)
	switch msg := cmd().(type) {
	case dispatchedMsg:
		return msg
	case tea.BatchMsg:
		for _, c := range msg {
			if c == nil {
				continue
			}
			if d, ok := c().(dispatchedMsg); ok {
				return d
			}
		}
	}
	t.Fatalf("no dispatchedMsg in command")
	return dispatchedMsg{}
}

func TestIngredientLine(t *testing.T) {
	half := 0.5
	assert.Equal(t, "1/2 cup sugar", ingredientLine(ingredient(&half, "cup", "sugar")))
	assert.Equal(t, "salt", ingredientLine(ingredient(nil, "", "salt")))
}

func TestVisibleWindowKeepsSelectionInView(t *testing.T) {
	tests := []struct{ selected, n, rows, start, end int }{
		{0, 5, 10, 0, 5},
		{0, 20, 5, 0, 5},
		{10, 20, 5, 8, 13},
		{19, 20, 5, 15, 20},
	}
	for _, tt := range tests {
		start, end := visibleWindow(tt.selected, tt.n, tt.rows)
		assert.Equal(t, tt.start, start, "%+v", tt)
		assert.Equal(t, tt.end, end, "%+v", tt)
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	got := truncate("a much longer title", 8)
	assert.True(t, strings.HasSuffix(got, "…"))
	assert.LessOrEqual(t, len([]rune(got)), 8)
}

func searchOf(n, page int) recipe.Search {
	s := recipe.Search{Query: "q", Page: page, PerPage: 10}
	for i := 0; i < n; i++ {
		s.Results = append(s.Results, recipe.Summary{ID: fmt.Sprintf("s%02d", i)})
	}
	return s
}

func ingredient(q *float64, unit, desc string) recipe.Ingredient {
	return recipe.Ingredient{Quantity: q, Unit: unit, Description: desc}
}
