package audit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderEnqueues(t *testing.T) {
	recorder := NewRecorder(4, nil)

	recorder.Record(context.Background(), NewEvent(CategoryOnboarding, "demo-pd", "blocked", nil))

	select {
	case event := <-recorder.Inbox():
		assert.Equal(t, CategoryOnboarding, event.Category)
		assert.Equal(t, "demo-pd", event.TenantID)
	default:
		t.Fatal("expected an event on the inbox")
	}
	assert.Zero(t, recorder.Dropped())
}

func TestRecorderNeverBlocksWhenFull(t *testing.T) {
	recorder := NewRecorder(1, nil)
	ctx := context.Background()

	// Fill the buffer, then keep recording; the extra events must be dropped
	// without blocking the caller.
	recorder.Record(ctx, NewEvent(CategorySystem, "", "first", nil))
	recorder.Record(ctx, NewEvent(CategorySystem, "", "second", nil))
	recorder.Record(ctx, NewEvent(CategorySystem, "", "third", nil))

	assert.Equal(t, uint64(2), recorder.Dropped())

	event := <-recorder.Inbox()
	assert.Equal(t, "first", event.Message)
}

func TestRecorderClampsBufferSize(t *testing.T) {
	recorder := NewRecorder(0, nil)
	recorder.Record(context.Background(), NewEvent(CategorySystem, "", "fits", nil))
	require.Zero(t, recorder.Dropped())
}
