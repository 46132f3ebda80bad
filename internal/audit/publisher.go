package audit

import (
	"context"
	"sync"
	"time"

	"sesaco/pkg/requestcontext"
)

// Publisher is the sink for audit events. Emit must not block request
// handling on broker availability; implementations buffer or drop with a log
// line instead of failing the business operation.
type Publisher interface {
	Emit(ctx context.Context, event Event) error
}

// Emit fills in the request-scoped timestamp when the caller leaves it zero.
func Emit(ctx context.Context, p Publisher, event Event) error {
	if p == nil {
		return nil
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	return p.Emit(ctx, event)
}

// MemoryRecorder keeps events in memory. Used in tests and when no brokers
// are configured.
type MemoryRecorder struct {
	mu     sync.Mutex
	events []Event
}

func NewMemoryRecorder() *MemoryRecorder {
	return &MemoryRecorder{}
}

func (r *MemoryRecorder) Emit(_ context.Context, event Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	r.events = append(r.events, event)
	return nil
}

// Events returns a copy of everything recorded so far.
func (r *MemoryRecorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}
