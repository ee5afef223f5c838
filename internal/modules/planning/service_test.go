package planning

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"tripcraft/internal/ai"
)

const modelPlan = `{
  "tripId": "model-chosen-id",
  "tripDetails": {"location": "Lisbon", "startDate": "2025-06-01", "tripType": ["Beach", "Culinary"], "duration": 3},
  "hotelOptions": [{"hotelName": "Casa Azul", "price": "120 EUR", "rating": 4.5}],
  "itinerary": {"day1": {"theme": "Old town", "plan": [{"placeName": "Alfama", "duration": "3 hours"}]}},
  "transportationOptions": [],
  "diningSuggestions": [{"restaurantName": "Tasca"}],
  "budgetEstimate": {"total": "900 EUR"},
  "additionalTips": ["Wear comfortable shoes"]
}`

func decodeObject(t *testing.T, text string) map[string]any {
	t.Helper()
	v, err := decodeJSON(text)
	require.NoError(t, err)
	return v.(map[string]any)
}

func TestGeneratePlan_ValidationMakesNoProviderCalls(t *testing.T) {
	for _, field := range []string{"location", "date", "duration"} {
		t.Run(field, func(t *testing.T) {
			provider := &stubProvider{replies: []string{modelPlan}}
			svc := NewService(provider, nil)

			req := validRequest()
			switch field {
			case "location":
				req.Location = ""
			case "date":
				req.Date = ""
			case "duration":
				req.Duration = Days{}
			}

			_, err := svc.GeneratePlan(context.Background(), req)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.Equal(t, 0, provider.calls)
		})
	}
}

func TestGeneratePlan_RoundTripReplacesTripID(t *testing.T) {
	provider := &stubProvider{replies: []string{modelPlan}}
	svc := NewService(provider, nil)

	res, err := svc.GeneratePlan(context.Background(), validRequest())
	require.NoError(t, err)
	require.Equal(t, OutcomeParsed, res.Outcome)
	require.False(t, res.Degraded())

	id := res.Plan.ID()
	require.NotEqual(t, "model-chosen-id", id)
	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	require.Equal(t, uuid.Version(4), parsed.Version())

	want := decodeObject(t, modelPlan)
	want[KeyTripID] = id
	require.Equal(t, want, map[string]any(res.Plan))
	_, hasRaw := res.Plan.RawResponse()
	require.False(t, hasRaw)
}

func TestGeneratePlan_ParsedPlanDropsModelRawResponse(t *testing.T) {
	reply := decodeObject(t, modelPlan)
	reply[KeyRawResponse] = "model says hi"
	body, err := json.Marshal(reply)
	require.NoError(t, err)

	svc := NewService(&stubProvider{replies: []string{string(body)}}, nil)
	res, err := svc.GeneratePlan(context.Background(), validRequest())
	require.NoError(t, err)
	require.Equal(t, OutcomeParsed, res.Outcome)
	_, hasRaw := res.Plan.RawResponse()
	require.False(t, hasRaw)
	require.NotContains(t, res.Plan, KeyRawResponse)
	require.Empty(t, res.Plan.MissingKeys())
}

func TestGeneratePlan_FencedResponseParsesLikeBare(t *testing.T) {
	fenced := &stubProvider{replies: []string{"```json\n" + modelPlan + "\n```"}}
	bare := &stubProvider{replies: []string{modelPlan}}

	a, err := NewService(fenced, nil).GeneratePlan(context.Background(), validRequest())
	require.NoError(t, err)
	b, err := NewService(bare, nil).GeneratePlan(context.Background(), validRequest())
	require.NoError(t, err)

	delete(a.Plan, KeyTripID)
	delete(b.Plan, KeyTripID)
	require.Equal(t, b.Plan, a.Plan)
	require.Equal(t, OutcomeParsed, a.Outcome)
}

func TestGeneratePlan_FallbackShape(t *testing.T) {
	rec := &stubRecorder{}
	svc := NewService(&stubProvider{replies: []string{"not json at all"}}, rec)

	res, err := svc.GeneratePlan(context.Background(), validRequest())
	require.NoError(t, err)
	require.Equal(t, OutcomeFallback, res.Outcome)
	require.True(t, res.Degraded())

	plan := res.Plan
	require.Equal(t, []any{}, plan[KeyHotelOptions])
	require.Equal(t, []any{}, plan[KeyTransportationOptions])
	require.Equal(t, []any{}, plan[KeyDiningSuggestions])
	require.Equal(t, []any{}, plan[KeyAdditionalTips])
	require.Equal(t, map[string]any{}, plan[KeyItinerary])
	require.Equal(t, map[string]any{}, plan[KeyBudgetEstimate])

	raw, ok := plan.RawResponse()
	require.True(t, ok)
	require.Equal(t, "not json at all", raw)

	_, err = uuid.Parse(plan.ID())
	require.NoError(t, err)

	details := plan[KeyTripDetails].(map[string]any)
	require.Equal(t, "Lisbon", details["location"])
	require.Equal(t, "2025-06-01", details["startDate"])
	require.Equal(t, []any{"Beach", "Culinary"}, details["tripType"])
	require.Equal(t, []any{}, details["interests"])
	require.Equal(t, 3, details["duration"])

	require.Equal(t, []usageEntry{{EndpointPlans, string(OutcomeFallback)}}, rec.entries)
}

func TestGeneratePlan_FallbackWrapsScalarInterests(t *testing.T) {
	var req TripRequest
	body := `{"location":"Oslo","date":"2025-01-10","tripType":"Nature Retreat","duration":2,"interests":"fjords"}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	res, err := NewService(&stubProvider{replies: []string{"oops"}}, nil).GeneratePlan(context.Background(), req)
	require.NoError(t, err)
	details := res.Plan[KeyTripDetails].(map[string]any)
	require.Equal(t, []any{"fjords"}, details["interests"])
	require.Equal(t, []any{"Nature Retreat"}, details["tripType"])
}

func TestGeneratePlan_NonObjectJSONFallsBack(t *testing.T) {
	for _, reply := range []string{`[1, 2, 3]`, `"just a string"`, `null`, `{"a": 1} trailing`} {
		t.Run(reply, func(t *testing.T) {
			res, err := NewService(&stubProvider{replies: []string{reply}}, nil).GeneratePlan(context.Background(), validRequest())
			require.NoError(t, err)
			require.Equal(t, OutcomeFallback, res.Outcome)
			raw, _ := res.Plan.RawResponse()
			require.Equal(t, reply, raw)
		})
	}
}

func TestGeneratePlan_ProviderError(t *testing.T) {
	boom := errors.New("quota exceeded")
	rec := &stubRecorder{}
	svc := NewService(&stubProvider{err: boom}, rec)

	res, err := svc.GeneratePlan(context.Background(), validRequest())
	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	require.ErrorIs(t, err, boom)
	require.Nil(t, res.Plan)
	require.Equal(t, []usageEntry{{EndpointPlans, string(OutcomeProviderError)}}, rec.entries)
}

func TestGeneratePlan_UniqueIDsStableDetails(t *testing.T) {
	replyA := `{"tripId": "x", "tripDetails": {"location": "Lisbon"}, "hotelOptions": [{"hotelName": "A"}]}`
	replyB := `{"tripId": "x", "tripDetails": {"location": "Lisbon"}, "hotelOptions": [{"hotelName": "B"}, {"hotelName": "C"}]}`
	svc := NewService(&stubProvider{replies: []string{replyA, replyB}}, nil)

	first, err := svc.GeneratePlan(context.Background(), validRequest())
	require.NoError(t, err)
	second, err := svc.GeneratePlan(context.Background(), validRequest())
	require.NoError(t, err)

	require.NotEqual(t, first.Plan.ID(), second.Plan.ID())
	require.Equal(t, first.Plan[KeyTripDetails], second.Plan[KeyTripDetails])
	require.NotEqual(t, first.Plan[KeyHotelOptions], second.Plan[KeyHotelOptions])
}

func TestGeneratePlan_SendsSeedHistoryAndConfig(t *testing.T) {
	provider := &stubProvider{replies: []string{modelPlan}}
	_, err := NewService(provider, nil).GeneratePlan(context.Background(), validRequest())
	require.NoError(t, err)

	require.Len(t, provider.history, 2)
	require.Equal(t, ai.RoleUser, provider.history[0].Role)
	require.Equal(t, ai.RoleModel, provider.history[1].Role)
	require.Equal(t, SeedHistory(), provider.history)

	cfg := provider.lastConf
	require.Equal(t, float32(1.0), cfg.Temperature)
	require.Equal(t, float32(0.95), cfg.TopP)
	require.Equal(t, int32(40), cfg.TopK)
	require.Equal(t, int32(8192), cfg.MaxOutputTokens)
	require.Equal(t, ai.MIMETypeJSON, cfg.ResponseMIMEType)

	require.Contains(t, provider.prompts[0], "Lisbon")
}

func TestRecommend_LineSplitFallback(t *testing.T) {
	rec := &stubRecorder{}
	svc := NewService(&stubProvider{replies: []string{"Paris\n\nTokyo\n"}}, rec)

	items, err := svc.Recommend(context.Background(), "where should I go?")
	require.NoError(t, err)
	require.Equal(t, []any{"Paris", "Tokyo"}, items)
	require.Equal(t, []usageEntry{{EndpointRecommendations, string(OutcomeLines)}}, rec.entries)
}

func TestRecommend_ParsedJSON(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  []any
	}{
		{"array", "```json\n[\"Rome\", {\"name\": \"Florence\"}]\n```", []any{"Rome", map[string]any{"name": "Florence"}}},
		{"wrapped", `{"recommendations": ["Bali"]}`, []any{"Bali"}},
		{"other object", `{"city": "Porto"}`, []any{map[string]any{"city": "Porto"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(&stubProvider{replies: []string{tt.reply}}, nil)
			items, err := svc.Recommend(context.Background(), "ideas")
			require.NoError(t, err)
			require.Equal(t, tt.want, items)
		})
	}
}

func TestRecommend_EmptyPrompt(t *testing.T) {
	provider := &stubProvider{}
	_, err := NewService(provider, nil).Recommend(context.Background(), "  ")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, 0, provider.calls)
}

func TestRecommend_ProviderError(t *testing.T) {
	_, err := NewService(&stubProvider{err: errors.New("network down")}, nil).Recommend(context.Background(), "ideas")
	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
}
