package ui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/forkify/internal/event"
	"github.com/five82/forkify/internal/forkify"
	"github.com/five82/forkify/internal/recipe"
	"github.com/five82/forkify/internal/state"
)

// region is a part of the screen that loads and fails independently.
type region int

const (
	regionResults region = iota
	regionRecipe
	regionBookmarks
	regionUpload
	regionStatus
)

func (r region) String() string {
	switch r {
	case regionResults:
		return "results"
	case regionRecipe:
		return "recipe"
	case regionBookmarks:
		return "bookmarks"
	case regionUpload:
		return "upload"
	default:
		return "status"
	}
}

func regionFor(kind event.Kind) region {
	switch kind {
	case event.KindSearchSubmitted, event.KindPageRequested:
		return regionResults
	case event.KindRecipeRequested:
		return regionRecipe
	case event.KindBookmarksRequested:
		return regionBookmarks
	case event.KindRecipeUploaded:
		return regionUpload
	default:
		return regionStatus
	}
}

// Messages shown in place of a region's content.
const (
	msgRecipeError   = "We could not find that recipe. Please try another one!"
	msgRecipeEmpty   = "Start by searching for a recipe or an ingredient. Have fun!"
	msgNoResults     = "No recipes found for your query! Please try again ;)"
	msgNoBookmarks   = "No bookmarks yet. Find a nice recipe and bookmark it ;)"
	msgUploadSuccess = "Recipe was successfully uploaded :)"
)

// errorText is what a region shows when the action behind kind failed.
func errorText(kind event.Kind, err error) string {
	var timeout *forkify.TimeoutError
	switch {
	case errors.As(err, &timeout):
		return timeout.Error()
	case kind == event.KindRecipeRequested:
		return msgRecipeError
	case kind == event.KindSearchSubmitted:
		return msgNoResults
	default:
		return err.Error()
	}
}

// dispatchedMsg reports that an event went through the dispatch table.
type dispatchedMsg struct {
	kind     event.Kind
	snapshot state.Snapshot
	err      error
}

// submitUploadMsg carries a completed add-recipe form.
type submitUploadMsg struct {
	upload recipe.Upload
}

// dispatch sends ev through the dispatch table off the update loop.
func (m Model) dispatch(ev event.Event) tea.Cmd {
	ctx, d, st := m.ctx, m.dispatcher, m.state
	return func() tea.Msg {
		var err error
		if d != nil {
			err = d.Dispatch(ctx, ev)
		}
		var snap state.Snapshot
		if st != nil {
			snap = st.Snapshot()
		}
		return dispatchedMsg{kind: ev.Kind(), snapshot: snap, err: err}
	}
}

// start marks the event's region as loading and dispatches ev.
func (m *Model) start(ev event.Event) tea.Cmd {
	r := regionFor(ev.Kind())
	m.loading[r] = true
	delete(m.errors, r)
	return tea.Batch(m.dispatch(ev), m.spinner.Tick)
}

func (m *Model) handleDispatched(msg dispatchedMsg) {
	r := regionFor(msg.kind)
	delete(m.loading, r)
	m.applySnapshot(msg.snapshot)

	if msg.err != nil {
		m.logger.Warn("action failed",
			zap.String("event", string(msg.kind)),
			zap.String("region", r.String()),
			zap.Error(msg.err))
		m.errors[r] = errorText(msg.kind, msg.err)
		return
	}
	delete(m.errors, r)

	if msg.kind == event.KindRecipeUploaded && msg.snapshot.Recipe != nil {
		m.location = "#" + msg.snapshot.Recipe.ID
	}
}

func (m *Model) applySnapshot(snap state.Snapshot) {
	m.snapshot = snap
	m.selectedResult = clampIndex(m.selectedResult, len(m.currentPage()))
	m.selectedBookmark = clampIndex(m.selectedBookmark, len(snap.Bookmarks))
	m.refreshRecipeViewport()
}

func clampIndex(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
