// Package ui provides the Bubble Tea terminal interface for forkify.
//
// # Layout
//
//	┌ header: logo, location, bookmark count ──────────────────────┐
//	│ command bar: key hints, search input, or a status error      │
//	├ results / bookmarks ──────┬ recipe ──────────────────────────┤
//	│ ▸ Pizza Margherita        │ PIZZA MARGHERITA                 │
//	│   ◆ My pizza              │ 45 minutes   4 servings          │
//	│                           │ ✓ 1 1/2 cups flour               │
//	│ ‹ Page 1        Page 3 ›  │                                  │
//	└───────────────────────────┴──────────────────────────────────┘
//
// Below LayoutCompactWidth only the focused pane is drawn.
//
// # Data Flow
//
// Every user action becomes an event sent through the dispatch table as a
// tea.Cmd, so network calls never block the update loop. The command
// returns a dispatchedMsg holding a state snapshot; the model renders only
// from snapshots and never reads the state while drawing.
//
// Each region (results, recipe, bookmarks, upload form, status line) keeps
// its own loading flag and error text. A failure in one region does not
// clear the others.
//
// # Location
//
// The open recipe is addressed by a location, "#<id>", shown in the header.
// Selecting a result or bookmark changes the location, and a changed
// location loads the recipe. A location passed in Options is loaded by Init.
//
// # Modals
//
// The help overlay closes on any key. The add-recipe form implements Modal
// and receives every message while open. After a successful upload it shows
// a confirmation and closes itself once Options.ModalClose has elapsed.
//
// # Themes
//
// T cycles Dracula, Slate and Paprika. The chosen theme and whether the
// bookmarks panel is open are saved to the prefs file.
package ui
