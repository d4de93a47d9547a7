// Package controller applies user actions to the application state.
package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/five82/forkify/internal/event"
	"github.com/five82/forkify/internal/forkify"
	"github.com/five82/forkify/internal/recipe"
	"github.com/five82/forkify/internal/state"
)

// Controller owns the state and the recipe source. Each Control method is
// one user action; Register binds them to the dispatch table.
type Controller struct {
	state  *state.State
	source forkify.RecipeSource
	logger *zap.Logger
}

// New creates a Controller.
func New(st *state.State, source forkify.RecipeSource, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{state: st, source: source, logger: logger}
}

// State exposes the state for read access by views.
func (c *Controller) State() *state.State {
	return c.state
}

// Register subscribes the controller's handlers and returns a function that
// removes them all.
func (c *Controller) Register(d *event.Dispatcher) func() {
	unsubs := []func(){
		d.Subscribe(event.KindBookmarksRequested, func(ctx context.Context, _ event.Event) error {
			return c.ControlBookmarks(ctx)
		}),
		d.Subscribe(event.KindRecipeRequested, func(ctx context.Context, ev event.Event) error {
			return c.ControlRecipe(ctx, ev.(event.RecipeRequested).ID)
		}),
		d.Subscribe(event.KindSearchSubmitted, func(ctx context.Context, ev event.Event) error {
			return c.ControlSearchResults(ctx, ev.(event.SearchSubmitted).Query)
		}),
		d.Subscribe(event.KindPageRequested, func(_ context.Context, ev event.Event) error {
			c.ControlPagination(ev.(event.PageRequested).Page)
			return nil
		}),
		d.Subscribe(event.KindServingsChanged, func(_ context.Context, ev event.Event) error {
			return c.ControlServings(ev.(event.ServingsChanged).Servings)
		}),
		d.Subscribe(event.KindBookmarkToggled, func(ctx context.Context, _ event.Event) error {
			return c.ControlToggleBookmark(ctx)
		}),
		d.Subscribe(event.KindRecipeUploaded, func(ctx context.Context, ev event.Event) error {
			_, err := c.ControlAddRecipe(ctx, ev.(event.RecipeUploaded).Upload)
			return err
		}),
	}
	return func() {
		for _, unsub := range unsubs {
			unsub()
		}
	}
}

// ControlRecipe loads the recipe with id and makes it current. An empty id
// is ignored.
func (c *Controller) ControlRecipe(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}
	dto, err := c.source.Recipe(ctx, id)
	if err != nil {
		c.logger.Warn("load recipe failed", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("load recipe %s: %w", id, err)
	}
	r := recipe.FromDTO(dto)
	if r.ID == "" {
		r.ID = id
	}
	c.state.SetRecipe(r)
	c.logger.Debug("recipe loaded", zap.String("id", r.ID), zap.Int("ingredients", len(r.Ingredients)))
	return nil
}

// ControlSearchResults runs query and stores the results on the first page.
// An empty query is ignored.
func (c *Controller) ControlSearchResults(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	dtos, err := c.source.Search(ctx, query)
	if err != nil {
		c.logger.Warn("search failed", zap.String("query", query), zap.Error(err))
		return fmt.Errorf("search %q: %w", query, err)
	}
	c.state.SetSearch(query, recipe.SummariesFromDTO(dtos))
	c.logger.Debug("search loaded", zap.String("query", query), zap.Int("results", len(dtos)))
	return nil
}

// ControlPagination moves the results to page and returns it.
func (c *Controller) ControlPagination(page int) []recipe.Summary {
	return c.state.ResultsPage(page)
}

// ControlServings rescales the current recipe.
func (c *Controller) ControlServings(servings int) error {
	if err := c.state.UpdateServings(servings); err != nil {
		return fmt.Errorf("update servings: %w", err)
	}
	return nil
}

// ControlToggleBookmark bookmarks the current recipe, or removes the
// bookmark if it is already set.
func (c *Controller) ControlToggleBookmark(ctx context.Context) error {
	cur, ok := c.state.Recipe()
	if !ok {
		return state.ErrNoRecipe
	}
	var err error
	if cur.Bookmarked {
		err = c.state.DeleteBookmark(ctx, cur.ID)
	} else {
		err = c.state.AddBookmark(ctx, cur.Summary())
	}
	if err != nil {
		c.logger.Error("persist bookmarks failed", zap.String("id", cur.ID), zap.Error(err))
		return err
	}
	return nil
}

// ControlBookmarks rehydrates the bookmarks from local storage.
func (c *Controller) ControlBookmarks(ctx context.Context) error {
	if err := c.state.LoadBookmarks(ctx); err != nil {
		c.logger.Error("load bookmarks failed", zap.Error(err))
		return err
	}
	return nil
}

// ControlAddRecipe validates and uploads a user recipe, makes the stored
// result current and bookmarks it.
func (c *Controller) ControlAddRecipe(ctx context.Context, upload recipe.Upload) (recipe.Recipe, error) {
	draft, err := upload.Build()
	if err != nil {
		return recipe.Recipe{}, err
	}
	dto, err := c.source.CreateRecipe(ctx, draft.DTO())
	if err != nil {
		c.logger.Warn("upload recipe failed", zap.String("title", draft.Title), zap.Error(err))
		return recipe.Recipe{}, fmt.Errorf("upload recipe: %w", err)
	}
	created := recipe.FromDTO(dto)
	if created.ID == "" {
		return recipe.Recipe{}, errors.New("upload recipe: api returned no id")
	}
	c.state.SetRecipe(created)
	if err := c.state.AddBookmark(ctx, created.Summary()); err != nil {
		c.logger.Error("persist bookmarks failed", zap.String("id", created.ID), zap.Error(err))
		return recipe.Recipe{}, err
	}
	c.logger.Info("recipe uploaded", zap.String("id", created.ID), zap.String("title", created.Title))
	cur, _ := c.state.Recipe()
	return cur, nil
}
