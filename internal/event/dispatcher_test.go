package event

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_RoutesByKindInOrder(t *testing.T) {
	d := NewDispatcher(nil)
	var calls []string

	d.Subscribe(KindSearchSubmitted, func(_ context.Context, ev Event) error {
		calls = append(calls, "first:"+ev.(SearchSubmitted).Query)
		return nil
	})
	d.Subscribe(KindSearchSubmitted, func(_ context.Context, ev Event) error {
		calls = append(calls, "second")
		return nil
	})
	d.Subscribe(KindPageRequested, func(context.Context, Event) error {
		calls = append(calls, "page")
		return nil
	})

	require.NoError(t, d.Dispatch(context.Background(), SearchSubmitted{Query: "pizza"}))
	assert.Equal(t, []string{"first:pizza", "second"}, calls)
}

func TestDispatcher_UnsubscribeRemovesOnlyThatHandler(t *testing.T) {
	d := NewDispatcher(nil)
	var a, b int

	unsubA := d.Subscribe(KindBookmarkToggled, func(context.Context, Event) error { a++; return nil })
	d.Subscribe(KindBookmarkToggled, func(context.Context, Event) error { b++; return nil })
	require.Equal(t, 2, d.Subscribed(KindBookmarkToggled))

	unsubA()
	unsubA()
	require.Equal(t, 1, d.Subscribed(KindBookmarkToggled))

	require.NoError(t, d.Dispatch(context.Background(), BookmarkToggled{}))
	assert.Equal(t, 0, a)
	assert.Equal(t, 1, b)
}

func TestDispatcher_JoinsErrorsAndRecoversPanics(t *testing.T) {
	d := NewDispatcher(nil)
	boom := errors.New("boom")
	var ran bool

	d.Subscribe(KindRecipeRequested, func(context.Context, Event) error { return boom })
	d.Subscribe(KindRecipeRequested, func(context.Context, Event) error { panic("kaput") })
	d.Subscribe(KindRecipeRequested, func(context.Context, Event) error { ran = true; return nil })

	err := d.Dispatch(context.Background(), RecipeRequested{ID: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.True(t, strings.Contains(err.Error(), "kaput"))
	assert.True(t, ran, "handlers after a failing one still run")
}

func TestDispatcher_UnhandledAndNilEvents(t *testing.T) {
	d := NewDispatcher(nil)
	assert.NoError(t, d.Dispatch(context.Background(), BookmarksRequested{}))
	assert.Error(t, d.Dispatch(context.Background(), nil))
}
