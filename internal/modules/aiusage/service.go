package aiusage

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Service records model invocations and reports aggregates.
type Service struct {
	store Store
	now   func() time.Time
}

// NewService creates a Service backed by the given Store.
func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Record stores one invocation. Store failures are logged, never returned.
func (s *Service) Record(ctx context.Context, endpoint, outcome string, latency time.Duration) {
	e := Entry{
		ID:        uuid.NewString(),
		Endpoint:  endpoint,
		Outcome:   outcome,
		LatencyMS: latency.Milliseconds(),
		CreatedAt: s.now().UTC(),
	}
	if err := s.store.Insert(ctx, e); err != nil {
		slog.WarnContext(ctx, "record ai usage failed", "endpoint", endpoint, "outcome", outcome, "error", err)
	}
}

// Summary aggregates entries recorded within the last window. A non-positive window means all time.
func (s *Service) Summary(ctx context.Context, window time.Duration) (Summary, error) {
	var since time.Time
	if window > 0 {
		since = s.now().UTC().Add(-window)
	}
	return s.store.Summarize(ctx, since)
}
