package audit

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// Recorder is the non-blocking enqueue half of the audit pipeline. Events go
// onto a bounded channel drained by a Worker; when the channel is full the
// event is dropped and counted rather than blocking the caller.
type Recorder struct {
	inbox   chan Event
	logger  *slog.Logger
	dropped atomic.Uint64
}

// NewRecorder creates a recorder with the given buffer size. Size must be at
// least 1; undersized values are clamped.
func NewRecorder(size int, logger *slog.Logger) *Recorder {
	if size < 1 {
		size = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{inbox: make(chan Event, size), logger: logger}
}

// Record enqueues the event without blocking. A full inbox drops the event;
// the drop is logged and counted, never surfaced to the caller.
func (r *Recorder) Record(ctx context.Context, event Event) {
	select {
	case r.inbox <- event:
	default:
		r.dropped.Add(1)
		r.logger.WarnContext(ctx, "audit inbox full, event dropped",
			"category", string(event.Category),
			"tenant_id", event.TenantID,
			"dropped_total", r.dropped.Load())
	}
}

// Inbox exposes the receive side for a Worker.
func (r *Recorder) Inbox() <-chan Event {
	return r.inbox
}

// Dropped returns the number of events discarded because the inbox was full.
func (r *Recorder) Dropped() uint64 {
	return r.dropped.Load()
}
