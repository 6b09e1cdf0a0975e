package audit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyStore fails the first append, then recovers.
type flakyStore struct {
	mu       sync.Mutex
	failures int
	appended []Event
}

func (f *flakyStore) Append(_ context.Context, event Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failures > 0 {
		f.failures--
		return errors.New("sink unavailable")
	}
	f.appended = append(f.appended, event)
	return nil
}

func (f *flakyStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.appended)
}

func TestWorkerDrainsInbox(t *testing.T) {
	store := &flakyStore{}
	recorder := NewRecorder(8, nil)
	worker := NewWorker(store, recorder.Inbox(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	recorder.Record(ctx, NewEvent(CategoryAuthentication, "demo-pd", "Login gate passed", nil))
	recorder.Record(ctx, NewEvent(CategoryOnboarding, "", "blocked", nil))

	require.Eventually(t, func() bool { return store.count() == 2 },
		time.Second, 5*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestWorkerSurvivesStoreFailures(t *testing.T) {
	store := &flakyStore{failures: 1}
	recorder := NewRecorder(8, nil)
	worker := NewWorker(store, recorder.Inbox(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = worker.Run(ctx) }()

	recorder.Record(ctx, NewEvent(CategorySystem, "", "lost to the failure", nil))
	recorder.Record(ctx, NewEvent(CategorySystem, "", "delivered", nil))

	require.Eventually(t, func() bool { return store.count() == 1 },
		time.Second, 5*time.Millisecond)

	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Equal(t, "delivered", store.appended[0].Message)
}
