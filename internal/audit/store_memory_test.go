package audit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryStoreListRecent(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	for _, msg := range []string{"one", "two", "three"} {
		require.NoError(t, store.Append(ctx, NewEvent(CategorySystem, "", msg, nil)))
	}

	recent, err := store.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "two", recent[0].Message)
	assert.Equal(t, "three", recent[1].Message)

	all, err := store.ListRecent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestInMemoryStoreListByTenant(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, NewEvent(CategoryAuthentication, "demo-pd", "Login gate passed", nil)))
	require.NoError(t, store.Append(ctx, NewEvent(CategoryOnboarding, "alpha-sheriff", "blocked", nil)))
	require.NoError(t, store.Append(ctx, NewEvent(CategoryOnboarding, "", "no tenant resolved", nil)))

	events, err := store.ListByTenant(ctx, "demo-pd")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Login gate passed", events[0].Message)
}

func TestInMemoryStoreEvictsOldest(t *testing.T) {
	store := NewInMemoryStoreWithCapacity(2)
	ctx := context.Background()

	for _, msg := range []string{"one", "two", "three"} {
		require.NoError(t, store.Append(ctx, NewEvent(CategorySystem, "", msg, nil)))
	}

	recent, err := store.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "two", recent[0].Message)
}
