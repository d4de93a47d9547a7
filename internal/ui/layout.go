package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which only the focused
	// pane is shown.
	LayoutCompactWidth = 90

	// ListMinWidth is the narrowest the results column gets.
	ListMinWidth = 32

	// HelpWidth is the width of the help overlay.
	HelpWidth = 44

	// FormWidth is the width of the add-recipe form.
	FormWidth = 64
)

// Rows reserved above the panes: header and command bar.
const chromeHeight = 2

// DefaultModalClose is how long the add-recipe form stays open after a
// successful upload.
const DefaultModalClose = 2500 * time.Millisecond

// IngredientFields is the number of ingredient lines on the add-recipe form.
const IngredientFields = 6

type paneSize struct {
	listWidth   int
	detailWidth int
	height      int
	compact     bool
}

// layout splits the terminal into the list column and the recipe column.
// Widths and heights exclude pane borders.
func layout(width, height int) paneSize {
	inner := height - chromeHeight - 2
	if inner < 1 {
		inner = 1
	}
	if width < LayoutCompactWidth {
		w := width - 2
		if w < 1 {
			w = 1
		}
		return paneSize{listWidth: w, detailWidth: w, height: inner, compact: true}
	}
	list := width * 2 / 5
	if list < ListMinWidth {
		list = ListMinWidth
	}
	return paneSize{
		listWidth:   list - 2,
		detailWidth: width - list - 2,
		height:      inner,
	}
}
