package planning

import (
	"context"
	"sync"
	"time"

	"tripcraft/internal/ai"
)

// stubProvider is a test double for ai.Provider returning canned replies in order.
type stubProvider struct {
	mu       sync.Mutex
	replies  []string
	err      error
	calls    int
	prompts  []string
	history  []ai.Message
	lastConf ai.GenerationConfig
}

func (s *stubProvider) Generate(_ context.Context, prompt string, history []ai.Message, cfg ai.GenerationConfig) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.prompts = append(s.prompts, prompt)
	s.history = history
	s.lastConf = cfg
	if s.err != nil {
		return "", s.err
	}
	if len(s.replies) == 0 {
		return "", nil
	}
	reply := s.replies[0]
	if len(s.replies) > 1 {
		s.replies = s.replies[1:]
	}
	return reply, nil
}

type usageEntry struct {
	endpoint string
	outcome  string
}

type stubRecorder struct {
	mu      sync.Mutex
	entries []usageEntry
}

func (r *stubRecorder) Record(_ context.Context, endpoint, outcome string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, usageEntry{endpoint: endpoint, outcome: outcome})
}

func validRequest() TripRequest {
	return TripRequest{
		Location:        "Lisbon",
		Date:            "2025-06-01",
		TripType:        StringList{"Beach", "Culinary"},
		Duration:        DaysOf(3),
		Budget:          "Moderate",
		TravelCompanion: "Couple",
	}
}
