package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/forkify/internal/event"
)

// The location is the recipe address shown in the header, "#<id>". Opening
// a recipe changes it; a changed location loads that recipe.

func normalizeLocation(raw string) string {
	id := locationID(raw)
	if id == "" {
		return ""
	}
	return "#" + id
}

func locationID(loc string) string {
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(loc), "#"))
}

// openRecipe moves the location to id. Reopening the current location is
// a no-op unless its last load failed.
func (m *Model) openRecipe(id string) tea.Cmd {
	loc := normalizeLocation(id)
	if loc == "" {
		return nil
	}
	if loc == m.location && m.errors[regionRecipe] == "" {
		return nil
	}
	m.location = loc
	if layout(m.width, m.height).compact {
		m.focus = FocusRecipe
	}
	return m.start(event.RecipeRequested{ID: locationID(loc)})
}
