package audit

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStoreAppend(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisStore(client, "dutywire:audit")
	ctx := context.Background()

	event := NewEvent(CategoryOnboarding, "demo-pd", "blocked", map[string]string{
		"organization_key": "DEMO-PD",
		"email":            "officer@other.example",
	})
	require.NoError(t, store.Append(ctx, event))

	entries, err := client.XRange(ctx, "dutywire:audit", "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, entries, 1)

	values := entries[0].Values
	assert.Equal(t, event.ID.String(), values["id"])
	assert.Equal(t, "onboarding", values["category"])
	assert.Equal(t, "demo-pd", values["tenant_id"])
	assert.Equal(t, "blocked", values["message"])
	assert.Contains(t, values["metadata"], "DEMO-PD")
}
