package forkify

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

const defaultCacheSize = 64

// Ensure Cache implements RecipeSource at compile time.
var _ RecipeSource = (*Cache)(nil)

// Cache memoizes recipes by id in front of another RecipeSource. Concurrent
// loads of the same id share one upstream request. Searches are not cached.
type Cache struct {
	next    RecipeSource
	recipes *lru.Cache[string, RecipeDTO]
	group   singleflight.Group
}

// NewCache wraps next with an LRU of the given size (default 64).
func NewCache(next RecipeSource, size int) (*Cache, error) {
	if next == nil {
		return nil, fmt.Errorf("recipe source is nil")
	}
	if size <= 0 {
		size = defaultCacheSize
	}
	recipes, err := lru.New[string, RecipeDTO](size)
	if err != nil {
		return nil, fmt.Errorf("create recipe cache: %w", err)
	}
	return &Cache{next: next, recipes: recipes}, nil
}

// Search passes through to the wrapped source.
func (c *Cache) Search(ctx context.Context, query string) ([]SummaryDTO, error) {
	return c.next.Search(ctx, query)
}

// Recipe returns the cached recipe or loads it once. The shared load is not
// cancelled with the caller that started it; each caller stops waiting when
// its own ctx is done, and the client timeout bounds the load itself.
func (c *Cache) Recipe(ctx context.Context, id string) (RecipeDTO, error) {
	if dto, ok := c.recipes.Get(id); ok {
		return cloneRecipe(dto), nil
	}
	loadCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(id, func() (any, error) {
		dto, err := c.next.Recipe(loadCtx, id)
		if err != nil {
			return RecipeDTO{}, err
		}
		c.recipes.Add(id, dto)
		return dto, nil
	})
	select {
	case <-ctx.Done():
		return RecipeDTO{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return RecipeDTO{}, res.Err
		}
		return cloneRecipe(res.Val.(RecipeDTO)), nil
	}
}

// CreateRecipe uploads through the wrapped source and seeds the cache with
// the stored result.
func (c *Cache) CreateRecipe(ctx context.Context, recipe RecipeDTO) (RecipeDTO, error) {
	created, err := c.next.CreateRecipe(ctx, recipe)
	if err != nil {
		return RecipeDTO{}, err
	}
	if created.ID != "" {
		c.recipes.Add(created.ID, created)
	}
	return cloneRecipe(created), nil
}

// Len reports the number of cached recipes.
func (c *Cache) Len() int {
	return c.recipes.Len()
}

func cloneRecipe(dto RecipeDTO) RecipeDTO {
	if dto.Ingredients == nil {
		return dto
	}
	ings := make([]IngredientDTO, len(dto.Ingredients))
	for i, ing := range dto.Ingredients {
		if ing.Quantity != nil {
			q := *ing.Quantity
			ing.Quantity = &q
		}
		ings[i] = ing
	}
	dto.Ingredients = ings
	return dto
}
