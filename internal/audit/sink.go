package audit

import "context"

// Sink accepts fire-and-forget audit events. Implementations must return
// promptly: callers on the sign-in path never wait for delivery, and a sink
// failure is never surfaced to them.
type Sink interface {
	Record(ctx context.Context, event Event)
}

// Store persists audit events. Delivery is best-effort and asynchronous;
// ordering across events is not guaranteed.
type Store interface {
	Append(ctx context.Context, event Event) error
}
