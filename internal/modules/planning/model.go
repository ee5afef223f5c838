// README: Trip planning data model, outcomes and typed errors.
package planning

import (
	"fmt"
	"strings"
)

// TripDetails is the normalized form of a TripRequest. It is what the prompt is
// rendered from and what a fallback plan echoes back as tripDetails.
type TripDetails struct {
	Location            string   `json:"location"`
	StartDate           string   `json:"startDate"`
	TripType            []string `json:"tripType"`
	Duration            int      `json:"duration"`
	Budget              string   `json:"budget"`
	TravelCompanion     string   `json:"travelCompanion"`
	Interests           []string `json:"interests"`
	Activities          []string `json:"activities"`
	DietaryPreferences  string   `json:"dietaryPreferences"`
	Transportation      string   `json:"transportation"`
	AccommodationType   string   `json:"accommodationType"`
	SpecialRequirements string   `json:"specialRequirements"`
}

// Record converts the details into the open document shape used inside a TripPlan.
func (d TripDetails) Record() map[string]any {
	return map[string]any{
		"location":            d.Location,
		"startDate":           d.StartDate,
		"tripType":            toAnySlice(d.TripType),
		"duration":            d.Duration,
		"budget":              d.Budget,
		"travelCompanion":     d.TravelCompanion,
		"interests":           toAnySlice(d.Interests),
		"activities":          toAnySlice(d.Activities),
		"dietaryPreferences":  d.DietaryPreferences,
		"transportation":      d.Transportation,
		"accommodationType":   d.AccommodationType,
		"specialRequirements": d.SpecialRequirements,
	}
}

// HasTripType reports whether name is one of the selected trip types.
func (d TripDetails) HasTripType(name string) bool {
	for _, t := range d.TripType {
		if t == name {
			return true
		}
	}
	return false
}

// TripPlan is the itinerary document returned to the client. Its keys follow
// PlanSchema; values are kept exactly as decoded so nothing the model produced is lost.
type TripPlan map[string]any

// ID returns the server-assigned trip id.
func (p TripPlan) ID() string {
	id, _ := p[KeyTripID].(string)
	return id
}

// RawResponse returns the unparsed model output carried by a fallback plan.
func (p TripPlan) RawResponse() (string, bool) {
	raw, ok := p[KeyRawResponse].(string)
	return raw, ok
}

// MissingKeys lists the PlanSchema top-level keys absent from the plan.
func (p TripPlan) MissingKeys() []string {
	var missing []string
	for _, f := range PlanSchema {
		if _, ok := p[f.Key]; !ok {
			missing = append(missing, f.Key)
		}
	}
	return missing
}

// Outcome tells callers which recovery path produced a result.
type Outcome string

const (
	// OutcomeParsed means the model returned a JSON object.
	OutcomeParsed Outcome = "parsed"
	// OutcomeFallback means the model text could not be parsed and a default plan was built.
	OutcomeFallback Outcome = "fallback"
	// OutcomeLines means recommendations were recovered by splitting text into lines.
	OutcomeLines Outcome = "lines"
	// OutcomeProviderError means the model call itself failed.
	OutcomeProviderError Outcome = "provider_error"
)

// Result is a successfully produced plan, possibly degraded.
type Result struct {
	Plan    TripPlan
	Outcome Outcome
}

// Degraded reports whether the plan is a fallback built without model structure.
func (r Result) Degraded() bool {
	return r.Outcome == OutcomeFallback
}

// ValidationError is returned when a request lacks required fields. No model call is made.
type ValidationError struct {
	Fields []string
	Reason string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Reason
	}
	if e.Reason == "" {
		return "missing required fields: " + strings.Join(e.Fields, ", ")
	}
	return fmt.Sprintf("%s: %s", strings.Join(e.Fields, ", "), e.Reason)
}

// ProviderError wraps a failed LLM call (network, auth, quota). It is terminal for the request.
type ProviderError struct {
	Err error
}

func (e *ProviderError) Error() string {
	return "llm provider: " + e.Err.Error()
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func toAnySlice(in []string) []any {
	out := make([]any, 0, len(in))
	for _, s := range in {
		out = append(out, s)
	}
	return out
}
