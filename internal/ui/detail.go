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

func (m Model) handleRecipeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		m.recipeViewport.ScrollDown(1)
	case key.Matches(msg, m.keys.Up):
		m.recipeViewport.ScrollUp(1)
	case key.Matches(msg, m.keys.Top):
		m.recipeViewport.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.recipeViewport.GotoBottom()
	}
	return m, nil
}

// changeServings asks for delta more servings. The count never drops
// below one.
func (m *Model) changeServings(delta int) tea.Cmd {
	r := m.snapshot.Recipe
	if r == nil || m.loading[regionRecipe] {
		return nil
	}
	servings := r.Servings + delta
	if servings < 1 {
		return nil
	}
	return m.dispatch(event.ServingsChanged{Servings: servings})
}

func (m *Model) refreshRecipeViewport() {
	if !m.ready {
		return
	}
	r := m.snapshot.Recipe
	if r == nil {
		m.recipeViewport.SetContent("")
		m.shownRecipeID = ""
		return
	}
	m.recipeViewport.SetContent(renderRecipeContent(*r, m.theme, m.recipeViewport.Width))
	if r.ID != m.shownRecipeID {
		m.recipeViewport.GotoTop()
		m.shownRecipeID = r.ID
	}
}

func (m Model) renderRecipe(width, height int) string {
	styles := m.theme.Styles()
	switch {
	case m.loading[regionRecipe]:
		return m.spinner.View() + " " + styles.MutedText.Render("Loading recipe...")
	case m.errors[regionRecipe] != "":
		return styles.DangerText.Width(width).Render(m.errors[regionRecipe])
	case m.snapshot.Recipe == nil:
		return styles.MutedText.Width(width).Render(msgRecipeEmpty)
	}
	return m.recipeViewport.View()
}

// renderRecipeContent lays out a recipe for the detail viewport.
func renderRecipeContent(r recipe.Recipe, theme Theme, width int) string {
	styles := theme.Styles()
	if width < 10 {
		width = 10
	}
	wrap := lipgloss.NewStyle().Width(width)

	var b strings.Builder

	title := styles.Logo.Render(strings.ToUpper(r.Title))
	b.WriteString(wrap.Render(title))
	b.WriteString("\n\n")

	facts := []string{
		styles.AccentText.Render(fmt.Sprintf("%d", r.CookingTime)) + " minutes",
		styles.AccentText.Render(fmt.Sprintf("%d", r.Servings)) + " servings " + styles.FaintText.Render("(+/-)"),
	}
	if r.IsUserRecipe() {
		facts = append(facts, styles.UserMarker.Render("◆ yours"))
	}
	if r.Bookmarked {
		facts = append(facts, styles.BookmarkMarker.Render("★ bookmarked"))
	} else {
		facts = append(facts, styles.FaintText.Render("☆ b to bookmark"))
	}
	b.WriteString(wrap.Render(strings.Join(facts, "   ")))
	b.WriteString("\n\n")

	b.WriteString(styles.AccentText.Bold(true).Render("Recipe ingredients"))
	b.WriteString("\n")
	for _, ing := range r.Ingredients {
		b.WriteString(wrap.Render(styles.SuccessText.Render("✓ ") + styles.Text.Render(ingredientLine(ing))))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(styles.AccentText.Bold(true).Render("How to cook it"))
	b.WriteString("\n")
	publisher := r.Publisher
	if publisher == "" {
		publisher = "its publisher"
	}
	b.WriteString(wrap.Render(styles.Text.Render(fmt.Sprintf(
		"This recipe was carefully designed and tested by %s. Please check out directions at their website.",
		publisher))))
	if r.SourceURL != "" {
		b.WriteString("\n")
		b.WriteString(wrap.Render(styles.InfoText.Underline(true).Render(r.SourceURL)))
	}
	return b.String()
}

// ingredientLine renders "1 1/2 cups flour", skipping empty parts.
func ingredientLine(ing recipe.Ingredient) string {
	return ing.String()
}
