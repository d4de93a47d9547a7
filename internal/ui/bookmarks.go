package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/forkify/internal/event"
)

func (m Model) handleBookmarksKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.snapshot.Bookmarks
	if len(items) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.selectedBookmark < len(items)-1 {
			m.selectedBookmark++
		}
	case key.Matches(msg, m.keys.Up):
		if m.selectedBookmark > 0 {
			m.selectedBookmark--
		}
	case key.Matches(msg, m.keys.Top):
		m.selectedBookmark = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selectedBookmark = len(items) - 1
	case key.Matches(msg, m.keys.Open):
		return m, m.openRecipe(items[clampIndex(m.selectedBookmark, len(items))].ID)
	}
	return m, nil
}

// toggleBookmark bookmarks the open recipe or removes its bookmark.
func (m *Model) toggleBookmark() tea.Cmd {
	if m.snapshot.Recipe == nil || m.loading[regionRecipe] {
		return nil
	}
	return m.dispatch(event.BookmarkToggled{})
}

func (m Model) renderBookmarks(width, height int) string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.BookmarkMarker.Bold(true).Render("Bookmarks"))
	b.WriteString("\n")

	if msg := m.errors[regionBookmarks]; msg != "" {
		b.WriteString(styles.DangerText.Width(width).Render(msg))
		return b.String()
	}

	items := m.snapshot.Bookmarks
	if len(items) == 0 {
		b.WriteString(styles.MutedText.Width(width).Render(msgNoBookmarks))
		return b.String()
	}

	start, end := visibleWindow(m.selectedBookmark, len(items), height-1)
	for i := start; i < end; i++ {
		b.WriteString(m.renderSummary(items[i], i == m.selectedBookmark && m.focus == FocusBookmarks, width))
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
