// README: Recovery strategies for model output: JSON object, fallback plan, line split.
package planning

import (
	"encoding/json"
	"errors"
	"io"
	"strings"
)

var errTrailingData = errors.New("unexpected data after JSON value")

// decodeJSON parses exactly one JSON value, keeping numbers as json.Number so
// parsed plans re-encode byte-for-byte equivalent.
func decodeJSON(text string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errTrailingData
	}
	return v, nil
}

// parsePlan accepts sanitized text only when it is a single JSON object.
func parsePlan(text string) (TripPlan, bool) {
	v, err := decodeJSON(text)
	if err != nil {
		return nil, false
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	return TripPlan(obj), true
}

// fallbackPlan builds the renderable plan returned when the model text is not a JSON object.
func fallbackPlan(id string, details TripDetails, raw string) TripPlan {
	plan := make(TripPlan, len(PlanSchema)+1)
	for _, f := range PlanSchema {
		plan[f.Key] = f.Empty()
	}
	plan[KeyTripID] = id
	plan[KeyTripDetails] = details.Record()
	plan[KeyRawResponse] = raw
	return plan
}

// parseRecommendations returns the recommendation list and which strategy produced it.
func parseRecommendations(text string) ([]any, Outcome) {
	v, err := decodeJSON(text)
	if err != nil {
		return splitLines(text), OutcomeLines
	}
	switch val := v.(type) {
	case []any:
		return val, OutcomeParsed
	case map[string]any:
		if list, ok := val["recommendations"].([]any); ok {
			return list, OutcomeParsed
		}
	}
	return []any{v}, OutcomeParsed
}

func splitLines(text string) []any {
	out := []any{}
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
