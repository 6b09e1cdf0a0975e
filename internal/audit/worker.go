package audit

import (
	"context"
	"log/slog"
)

// Worker consumes audit events from a channel and persists them. Store
// failures are logged and swallowed: audit delivery is best-effort and must
// never take the pipeline down with it.
type Worker struct {
	store  Store
	inbox  <-chan Event
	logger *slog.Logger
}

func NewWorker(store Store, inbox <-chan Event, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{store: store, inbox: inbox, logger: logger}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.store.Append(ctx, event); err != nil {
				w.logger.ErrorContext(ctx, "audit append failed",
					"error", err,
					"category", string(event.Category),
					"tenant_id", event.TenantID)
			}
		}
	}
}
