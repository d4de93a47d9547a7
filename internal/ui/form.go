package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/forkify/internal/event"
	"github.com/five82/forkify/internal/recipe"
)

// Form field indexes. Ingredient lines follow fieldServings.
const (
	fieldTitle = iota
	fieldURL
	fieldImage
	fieldPublisher
	fieldCookingTime
	fieldServings
	fieldIngredients
)

var dataFields = []struct {
	label       string
	placeholder string
}{
	{"Title", "Pasta al pomodoro"},
	{"URL", "https://example.com/pasta"},
	{"Image URL", "https://example.com/pasta.jpg"},
	{"Publisher", "Your name"},
	{"Prep time", "Minutes"},
	{"Servings", "4"},
}

// uploadForm is the add-recipe modal.
type uploadForm struct {
	inputs     []textinput.Model
	focused    int
	closeAfter time.Duration

	uploading bool
	uploaded  bool
	err       string
}

func newUploadForm(closeAfter time.Duration) uploadForm {
	inputs := make([]textinput.Model, 0, fieldIngredients+IngredientFields)
	for _, f := range dataFields {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = f.placeholder
		in.CharLimit = 200
		inputs = append(inputs, in)
	}
	for i := 0; i < IngredientFields; i++ {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = "Format: 'Quantity,Unit,Description'"
		in.CharLimit = 200
		inputs = append(inputs, in)
	}
	return uploadForm{inputs: inputs, closeAfter: closeAfter}
}

func (f uploadForm) Init() tea.Cmd {
	return f.inputs[f.focused].Focus()
}

func (f uploadForm) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return f.handleKey(msg, keys)

	case dispatchedMsg:
		if msg.kind != event.KindRecipeUploaded {
			return f, nil, false
		}
		f.uploading = false
		if msg.err != nil {
			f.err = msg.err.Error()
			return f, nil, false
		}
		f.uploaded = true
		f.err = ""
		return f, closeModalAfter(f.closeAfter), false

	case closeModalMsg:
		return f, nil, f.uploaded
	}

	var cmd tea.Cmd
	f.inputs[f.focused], cmd = f.inputs[f.focused].Update(msg)
	return f, cmd, false
}

func (f uploadForm) handleKey(msg tea.KeyMsg, keys keyMap) (Modal, tea.Cmd, bool) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return f, tea.Quit, false

	case key.Matches(msg, keys.Escape):
		return f, nil, true

	case f.uploaded:
		// Waiting for the close timer.
		return f, nil, false

	case key.Matches(msg, keys.Submit):
		if f.uploading {
			return f, nil, false
		}
		upload, err := f.upload()
		if err != nil {
			f.err = err.Error()
			return f, nil, false
		}
		f.err = ""
		f.uploading = true
		return f, func() tea.Msg { return submitUploadMsg{upload: upload} }, false

	case key.Matches(msg, keys.NextField):
		return f, f.move(1), false

	case key.Matches(msg, keys.PrevField):
		return f, f.move(-1), false
	}

	var cmd tea.Cmd
	f.inputs[f.focused], cmd = f.inputs[f.focused].Update(msg)
	return f, cmd, false
}

// move shifts focus by delta fields, wrapping around.
func (f *uploadForm) move(delta int) tea.Cmd {
	f.inputs[f.focused].Blur()
	n := len(f.inputs)
	f.focused = ((f.focused+delta)%n + n) % n
	return f.inputs[f.focused].Focus()
}

// upload collects the form into an Upload. Numeric fields are checked
// here; everything else is validated when the upload is built.
func (f uploadForm) upload() (recipe.Upload, error) {
	value := func(i int) string { return strings.TrimSpace(f.inputs[i].Value()) }

	cookingTime, err := strconv.Atoi(value(fieldCookingTime))
	if err != nil {
		return recipe.Upload{}, errors.New("prep time must be a whole number of minutes")
	}
	servings, err := strconv.Atoi(value(fieldServings))
	if err != nil {
		return recipe.Upload{}, errors.New("servings must be a whole number")
	}

	ingredients := make([]string, 0, IngredientFields)
	for i := fieldIngredients; i < len(f.inputs); i++ {
		ingredients = append(ingredients, value(i))
	}

	return recipe.Upload{
		Title:       value(fieldTitle),
		SourceURL:   value(fieldURL),
		ImageURL:    value(fieldImage),
		Publisher:   value(fieldPublisher),
		CookingTime: cookingTime,
		Servings:    servings,
		Ingredients: ingredients,
	}, nil
}

func (f uploadForm) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Muted)).
		Width(14)
	focusedLabel := labelStyle.Foreground(lipgloss.Color(theme.Accent))

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Add recipe"))
	b.WriteString("\n\n")

	if f.uploaded {
		b.WriteString(styles.SuccessText.Render(msgUploadSuccess))
		return placeCenter(width, height, theme, formFrame(theme).Render(b.String()))
	}

	b.WriteString(styles.AccentText.Bold(true).Render("Recipe data"))
	b.WriteString("\n")
	for i, in := range f.inputs {
		if i == fieldIngredients {
			b.WriteString("\n")
			b.WriteString(styles.AccentText.Bold(true).Render("Ingredients"))
			b.WriteString("\n")
		}
		label := labelStyle
		if i == f.focused {
			label = focusedLabel
		}
		b.WriteString(label.Render(fieldLabel(i)))
		b.WriteString(in.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case f.uploading:
		b.WriteString(styles.InfoText.Render("Uploading..."))
	case f.err != "":
		b.WriteString(styles.DangerText.Width(FormWidth - 6).Render(f.err))
	default:
		b.WriteString(styles.FaintText.Render("tab next field · ctrl+s upload · esc close"))
	}

	return placeCenter(width, height, theme, formFrame(theme).Render(b.String()))
}

func fieldLabel(i int) string {
	if i < fieldIngredients {
		return dataFields[i].label
	}
	return fmt.Sprintf("Ingredient %d", i-fieldIngredients+1)
}

func formFrame(theme Theme) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Accent)).
		Padding(1, 2).
		Width(FormWidth)
}
