package forkify

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreAnyFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreAnyFunction("net/http.(*persistConn).writeLoop"),
	)
}

type countingSource struct {
	recipeCalls atomic.Int32
	gate        chan struct{}
	err         error
}

func (s *countingSource) Search(ctx context.Context, query string) ([]SummaryDTO, error) {
	return []SummaryDTO{{ID: "s1", Title: query}}, nil
}

func (s *countingSource) Recipe(ctx context.Context, id string) (RecipeDTO, error) {
	s.recipeCalls.Add(1)
	if s.gate != nil {
		<-s.gate
	}
	if err := ctx.Err(); err != nil {
		return RecipeDTO{}, err
	}
	if s.err != nil {
		return RecipeDTO{}, s.err
	}
	q := 1.5
	return RecipeDTO{ID: id, Servings: 4, Ingredients: []IngredientDTO{{Quantity: &q, Description: "butter"}}}, nil
}

func (s *countingSource) CreateRecipe(ctx context.Context, recipe RecipeDTO) (RecipeDTO, error) {
	recipe.ID = "created"
	return recipe, nil
}

func TestCache_MemoizesAndReturnsCopies(t *testing.T) {
	src := &countingSource{}
	cache, err := NewCache(src, 2)
	require.NoError(t, err)

	first, err := cache.Recipe(context.Background(), "r1")
	require.NoError(t, err)
	*first.Ingredients[0].Quantity = 99

	second, err := cache.Recipe(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, int32(1), src.recipeCalls.Load())
	assert.Equal(t, 1.5, *second.Ingredients[0].Quantity, "cached recipe must not be mutated through a returned copy")
}

func TestCache_CollapsesConcurrentLoads(t *testing.T) {
	src := &countingSource{gate: make(chan struct{})}
	cache, err := NewCache(src, 4)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := cache.Recipe(context.Background(), "same")
			assert.NoError(t, err)
		}()
	}
	// Give the goroutines time to join the in-flight call.
	time.Sleep(50 * time.Millisecond)
	close(src.gate)
	wg.Wait()

	assert.Equal(t, int32(1), src.recipeCalls.Load())
}

func TestCache_CancelledCallerDoesNotFailOthers(t *testing.T) {
	src := &countingSource{gate: make(chan struct{})}
	cache, err := NewCache(src, 4)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := cache.Recipe(ctx, "same")
		firstErr <- err
	}()
	require.Eventually(t, func() bool { return src.recipeCalls.Load() == 1 }, time.Second, 5*time.Millisecond)

	type result struct {
		dto RecipeDTO
		err error
	}
	second := make(chan result, 1)
	go func() {
		dto, err := cache.Recipe(context.Background(), "same")
		second <- result{dto, err}
	}()
	// Give the second caller time to join the in-flight load.
	time.Sleep(50 * time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	close(src.gate)
	got := <-second
	require.NoError(t, got.err)
	assert.Equal(t, "same", got.dto.ID)
	assert.Equal(t, int32(1), src.recipeCalls.Load())
	assert.Equal(t, 1, cache.Len())
}

func TestCache_ErrorsAreNotCached(t *testing.T) {
	src := &countingSource{err: errors.New("boom")}
	cache, err := NewCache(src, 4)
	require.NoError(t, err)

	_, err = cache.Recipe(context.Background(), "r1")
	require.Error(t, err)
	_, err = cache.Recipe(context.Background(), "r1")
	require.Error(t, err)
	assert.Equal(t, int32(2), src.recipeCalls.Load())
	assert.Equal(t, 0, cache.Len())
}

func TestCache_CreateSeedsCache(t *testing.T) {
	src := &countingSource{}
	cache, err := NewCache(src, 4)
	require.NoError(t, err)

	created, err := cache.CreateRecipe(context.Background(), RecipeDTO{Title: "Mine"})
	require.NoError(t, err)
	assert.Equal(t, "created", created.ID)

	got, err := cache.Recipe(context.Background(), "created")
	require.NoError(t, err)
	assert.Equal(t, "Mine", got.Title)
	assert.Equal(t, int32(0), src.recipeCalls.Load())
}

func TestNewCache_RejectsNilSource(t *testing.T) {
	_, err := NewCache(nil, 4)
	require.Error(t, err)
}
