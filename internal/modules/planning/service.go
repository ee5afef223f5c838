// README: Plan generation orchestration: validate, prompt, invoke, sanitize, recover.
package planning

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"tripcraft/internal/ai"
)

// Endpoint names used when recording model usage.
const (
	EndpointPlans           = "plans"
	EndpointRecommendations = "recommendations"
)

// UsageRecorder receives one entry per model invocation. Implementations must not fail the request.
type UsageRecorder interface {
	Record(ctx context.Context, endpoint, outcome string, latency time.Duration)
}

type noopRecorder struct{}

func (noopRecorder) Record(context.Context, string, string, time.Duration) {}

// Service turns trip requests into plans. It keeps no per-request state and is safe for concurrent use.
type Service struct {
	provider ai.Provider
	usage    UsageRecorder
	newID    func() string
	now      func() time.Time
}

// NewService builds a Service. usage may be nil.
func NewService(provider ai.Provider, usage UsageRecorder) *Service {
	if usage == nil {
		usage = noopRecorder{}
	}
	return &Service{
		provider: provider,
		usage:    usage,
		newID:    uuid.NewString,
		now:      time.Now,
	}
}

// GeneratePlan validates req, asks the model for a plan and recovers a TripPlan
// from whatever text comes back. Unparseable text yields a fallback plan with
// OutcomeFallback and a nil error. A failed model call returns *ProviderError.
func (s *Service) GeneratePlan(ctx context.Context, req TripRequest) (Result, error) {
	details, err := req.Normalize()
	if err != nil {
		return Result{}, err
	}

	text, latency, err := s.invoke(ctx, EndpointPlans, BuildPrompt(details))
	if err != nil {
		return Result{}, err
	}

	id := s.newID()
	if plan, ok := parsePlan(text); ok {
		plan[KeyTripID] = id
		delete(plan, KeyRawResponse)
		if missing := plan.MissingKeys(); len(missing) > 0 {
			slog.WarnContext(ctx, "plan response missing keys", "trip_id", id, "missing", missing)
		}
		s.usage.Record(ctx, EndpointPlans, string(OutcomeParsed), latency)
		return Result{Plan: plan, Outcome: OutcomeParsed}, nil
	}

	slog.WarnContext(ctx, "plan response is not a JSON object, returning fallback plan",
		"trip_id", id, "raw_length", len(text))
	s.usage.Record(ctx, EndpointPlans, string(OutcomeFallback), latency)
	return Result{Plan: fallbackPlan(id, details, text), Outcome: OutcomeFallback}, nil
}

// Recommend sends a free-form prompt and returns the recommendations recovered
// from the reply: the parsed JSON list when possible, otherwise its non-empty lines.
func (s *Service) Recommend(ctx context.Context, prompt string) ([]any, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, &ValidationError{Fields: []string{"prompt"}}
	}

	text, latency, err := s.invoke(ctx, EndpointRecommendations, prompt)
	if err != nil {
		return nil, err
	}

	items, outcome := parseRecommendations(text)
	s.usage.Record(ctx, EndpointRecommendations, string(outcome), latency)
	return items, nil
}

// invoke calls the provider with the seed history and returns sanitized text.
func (s *Service) invoke(ctx context.Context, endpoint, prompt string) (string, time.Duration, error) {
	start := s.now()
	raw, err := s.provider.Generate(ctx, prompt, SeedHistory(), GenerationConfig())
	latency := s.now().Sub(start)
	if err != nil {
		slog.ErrorContext(ctx, "llm call failed", "endpoint", endpoint, "error", err, "latency_ms", latency.Milliseconds())
		s.usage.Record(ctx, endpoint, string(OutcomeProviderError), latency)
		return "", latency, &ProviderError{Err: err}
	}
	slog.DebugContext(ctx, "llm call finished", "endpoint", endpoint, "latency_ms", latency.Milliseconds())
	return ai.CleanJSONString(raw), latency, nil
}
