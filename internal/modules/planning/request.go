package planning

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Defaults applied to optional TripRequest fields.
const (
	DefaultDietaryPreferences  = "None"
	DefaultTransportation      = "Mixed"
	DefaultAccommodationType   = "Hotel"
	DefaultSpecialRequirements = "None"
)

// TripRequest is the trip-preference form as submitted by the client.
// Loosely typed fields (tripType, interests, activities, duration) accept the
// shapes the front end sends and are coerced by Normalize.
type TripRequest struct {
	Location            string     `json:"location"`
	Date                string     `json:"date"`
	TripType            StringList `json:"tripType"`
	Duration            Days       `json:"duration"`
	Budget              string     `json:"budget"`
	TravelCompanion     string     `json:"travelCompanion"`
	Interests           StringList `json:"interests"`
	Activities          StringList `json:"activities"`
	DietaryPreferences  string     `json:"dietaryPreferences"`
	Transportation      string     `json:"transportation"`
	AccommodationType   string     `json:"accommodationType"`
	SpecialRequirements string     `json:"specialRequirements"`
}

// Normalize validates the required fields and applies defaults.
// It returns a *ValidationError when location, date or duration is missing or falsy.
func (r TripRequest) Normalize() (TripDetails, error) {
	location := strings.TrimSpace(r.Location)
	date := strings.TrimSpace(r.Date)

	var missing []string
	if location == "" {
		missing = append(missing, "location")
	}
	if date == "" {
		missing = append(missing, "date")
	}
	if r.Duration.IsZero() {
		missing = append(missing, "duration")
	}
	if len(missing) > 0 {
		return TripDetails{}, &ValidationError{Fields: missing}
	}

	days, err := r.Duration.Int()
	if err != nil {
		return TripDetails{}, &ValidationError{Fields: []string{"duration"}, Reason: err.Error()}
	}

	return TripDetails{
		Location:            location,
		StartDate:           date,
		TripType:            r.TripType.Values(),
		Duration:            days,
		Budget:              strings.TrimSpace(r.Budget),
		TravelCompanion:     strings.TrimSpace(r.TravelCompanion),
		Interests:           r.Interests.Values(),
		Activities:          r.Activities.Values(),
		DietaryPreferences:  orDefault(r.DietaryPreferences, DefaultDietaryPreferences),
		Transportation:      orDefault(r.Transportation, DefaultTransportation),
		AccommodationType:   orDefault(r.AccommodationType, DefaultAccommodationType),
		SpecialRequirements: orDefault(r.SpecialRequirements, DefaultSpecialRequirements),
	}, nil
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}

// StringList accepts either a JSON string or an array of strings.
// A bare non-empty string becomes a one-element list.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*l = nil
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = StringList{s}
		return nil
	}
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return errors.New("expected a string or an array of strings")
	}
	*l = items
	return nil
}

// Values returns the trimmed, non-empty entries. The result is never nil.
func (l StringList) Values() []string {
	out := make([]string, 0, len(l))
	for _, s := range l {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Days holds the trip length as submitted: a JSON number or a numeric string.
type Days struct {
	raw string
}

// DaysOf builds a Days value from an integer.
func DaysOf(n int) Days {
	return Days{raw: strconv.Itoa(n)}
}

func (d *Days) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		d.raw = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		d.raw = strings.TrimSpace(s)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return errors.New("duration must be a number")
		}
		d.raw = n.String()
	}
	return nil
}

func (d Days) MarshalJSON() ([]byte, error) {
	if n, err := d.Int(); err == nil {
		return []byte(strconv.Itoa(n)), nil
	}
	return json.Marshal(d.raw)
}

// IsZero reports whether the value is absent or falsy (empty, 0).
func (d Days) IsZero() bool {
	if d.raw == "" {
		return true
	}
	f, err := strconv.ParseFloat(d.raw, 64)
	return err == nil && f == 0
}

// Int coerces the value to a positive whole number of days.
func (d Days) Int() (int, error) {
	f, err := strconv.ParseFloat(d.raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("must be a number, got %q", d.raw)
	}
	if f <= 0 {
		return 0, errors.New("must be a positive number of days")
	}
	if f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, errors.New("must be a whole number of days")
	}
	return int(f), nil
}
