package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/forkify/internal/event"
	"github.com/five82/forkify/internal/recipe"
)

// currentPage returns the visible slice of the search results.
func (m Model) currentPage() []recipe.Summary {
	s := m.snapshot.Search
	return recipe.Page(s.Results, s.Page, s.PerPage)
}

// handleResultsKey processes keyboard input for the results list.
func (m Model) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.currentPage()
	s := m.snapshot.Search

	switch {
	case key.Matches(msg, m.keys.PrevPage):
		if s.HasPrev() {
			return m, m.gotoPage(s.Page - 1)
		}
		return m, nil
	case key.Matches(msg, m.keys.NextPage):
		if s.HasNext() {
			return m, m.gotoPage(s.Page + 1)
		}
		return m, nil
	}

	if len(items) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.selectedResult < len(items)-1 {
			m.selectedResult++
		}
	case key.Matches(msg, m.keys.Up):
		if m.selectedResult > 0 {
			m.selectedResult--
		}
	case key.Matches(msg, m.keys.Top):
		m.selectedResult = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selectedResult = len(items) - 1
	case key.Matches(msg, m.keys.Open):
		return m, m.openRecipe(items[clampIndex(m.selectedResult, len(items))].ID)
	}

	return m, nil
}

func (m *Model) gotoPage(page int) tea.Cmd {
	m.selectedResult = 0
	return m.start(event.PageRequested{Page: page})
}

// paginationLabels returns the previous and next page buttons for s. Page
// numbers are shown one-based. The first page only has a next button, the
// last only a previous one, and a single page has neither.
func paginationLabels(s recipe.Search) (prev, next string) {
	if s.PageCount() <= 1 {
		return "", ""
	}
	shown := s.Page + 1
	if s.HasPrev() {
		prev = fmt.Sprintf("‹ Page %d", shown-1)
	}
	if s.HasNext() {
		next = fmt.Sprintf("Page %d ›", shown+1)
	}
	return prev, next
}

func (m Model) renderResults(width, height int) string {
	styles := m.theme.Styles()

	switch {
	case m.loading[regionResults]:
		return m.spinner.View() + " " + styles.MutedText.Render("Searching...")
	case m.errors[regionResults] != "":
		return styles.DangerText.Width(width).Render(m.errors[regionResults])
	case m.snapshot.Search.Query == "":
		return styles.MutedText.Width(width).Render("Press / to search for a recipe.")
	}

	items := m.currentPage()
	if len(items) == 0 {
		return styles.DangerText.Width(width).Render(msgNoResults)
	}

	var b strings.Builder
	title := fmt.Sprintf("Results for %q", m.snapshot.Search.Query)
	b.WriteString(styles.AccentText.Bold(true).Render(truncate(title, width)))
	b.WriteString("\n")

	rows := height - 3
	start, end := visibleWindow(m.selectedResult, len(items), rows)
	for i := start; i < end; i++ {
		b.WriteString(m.renderSummary(items[i], i == m.selectedResult && m.focus == FocusResults, width))
		b.WriteString("\n")
	}

	body := b.String()
	footer := m.renderPagination(width)
	gap := height - lipgloss.Height(body) - 1
	if gap > 0 {
		body += strings.Repeat("\n", gap)
	}
	return body + footer
}

func (m Model) renderPagination(width int) string {
	styles := m.theme.Styles()
	prev, next := paginationLabels(m.snapshot.Search)
	if prev == "" && next == "" {
		return ""
	}
	left, right := "", ""
	if prev != "" {
		left = styles.Button.Render(prev)
	}
	if next != "" {
		right = styles.Button.Render(next)
	}
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

// renderSummary renders one result or bookmark row. The open recipe is
// highlighted and user recipes carry a marker.
func (m Model) renderSummary(s recipe.Summary, selected bool, width int) string {
	styles := m.theme.Styles()

	marker := "  "
	if s.IsUserRecipe() {
		marker = styles.UserMarker.Render("◆ ")
	}
	label := truncate(s.Title, width-4)
	if s.Publisher != "" && lipgloss.Width(label)+len(s.Publisher)+3 <= width-4 {
		label += styles.MutedText.Render(" · " + s.Publisher)
	}

	current := m.snapshot.Recipe != nil && m.snapshot.Recipe.ID == s.ID
	switch {
	case selected:
		return styles.Selected.Width(width).Render("▸ " + marker + label)
	case current:
		return styles.Current.Render("  " + marker + label)
	default:
		return styles.Text.Render("  " + marker + label)
	}
}

// visibleWindow returns the [start, end) slice of n rows to show so that
// selected stays visible in rows lines.
func visibleWindow(selected, n, rows int) (int, int) {
	if rows <= 0 || n <= rows {
		return 0, n
	}
	start := selected - rows/2
	if start < 0 {
		start = 0
	}
	if start+rows > n {
		start = n - rows
	}
	return start, start + rows
}

func truncate(s string, width int) string {
	if width <= 1 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
