// Package event is the typed dispatch table that connects user actions to
// controller handlers.
package event

import (
	"github.com/five82/forkify/internal/recipe"
)

// Kind identifies an event type.
type Kind string

// Event kinds.
const (
	KindRecipeRequested    Kind = "RecipeRequested"
	KindSearchSubmitted    Kind = "SearchSubmitted"
	KindPageRequested      Kind = "PageRequested"
	KindServingsChanged    Kind = "ServingsChanged"
	KindBookmarkToggled    Kind = "BookmarkToggled"
	KindBookmarksRequested Kind = "BookmarksRequested"
	KindRecipeUploaded     Kind = "RecipeUploaded"
)

// Event is implemented by every dispatched event.
type Event interface {
	Kind() Kind
}

// RecipeRequested is raised when the location changes to a recipe id.
type RecipeRequested struct {
	ID string
}

func (RecipeRequested) Kind() Kind { return KindRecipeRequested }

// SearchSubmitted is raised when the user submits a query.
type SearchSubmitted struct {
	Query string
}

func (SearchSubmitted) Kind() Kind { return KindSearchSubmitted }

// PageRequested is raised by the pagination buttons. Page is zero-based.
type PageRequested struct {
	Page int
}

func (PageRequested) Kind() Kind { return KindPageRequested }

// ServingsChanged is raised by the servings buttons.
type ServingsChanged struct {
	Servings int
}

func (ServingsChanged) Kind() Kind { return KindServingsChanged }

// BookmarkToggled flips the bookmark on the current recipe.
type BookmarkToggled struct{}

func (BookmarkToggled) Kind() Kind { return KindBookmarkToggled }

// BookmarksRequested asks for the persisted bookmarks to be loaded.
type BookmarksRequested struct{}

func (BookmarksRequested) Kind() Kind { return KindBookmarksRequested }

// RecipeUploaded carries a user-authored recipe to submit.
type RecipeUploaded struct {
	Upload recipe.Upload
}

func (RecipeUploaded) Kind() Kind { return KindRecipeUploaded }
