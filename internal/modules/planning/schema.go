// README: Canonical TripPlan schema. The prompt template and the parser's expectations both derive from PlanSchema.
package planning

import (
	"encoding/json"
	"strings"
)

// Top-level TripPlan keys.
const (
	KeyTripID                = "tripId"
	KeyTripDetails           = "tripDetails"
	KeyHotelOptions          = "hotelOptions"
	KeyItinerary             = "itinerary"
	KeyTransportationOptions = "transportationOptions"
	KeyDiningSuggestions     = "diningSuggestions"
	KeyBudgetEstimate        = "budgetEstimate"
	KeyAdditionalTips        = "additionalTips"
	// KeyRawResponse only appears on fallback plans.
	KeyRawResponse = "rawResponse"
)

// Kind describes the JSON shape of a schema field.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindStrings // array of strings
	KindObject
	KindObjects // array of objects
	KindDays    // object keyed by day label ("day1", "day2", ...)
)

// Field is one node of the schema tree.
type Field struct {
	Key    string
	Kind   Kind
	Hint   string
	Fields []Field
}

var activitySchema = []Field{
	{Key: "placeName", Kind: KindString, Hint: "Name of the place or activity"},
	{Key: "placeDetails", Kind: KindString, Hint: "Short description"},
	{Key: "timeAllocation", Kind: KindString, Hint: "e.g. 09:00 - 11:00"},
	{Key: "ticketPricing", Kind: KindString, Hint: "Cost or Free"},
	{Key: "duration", Kind: KindString, Hint: "e.g. 2 hours"},
}

// PlanSchema is the single description of the TripPlan document the model is asked to return.
var PlanSchema = []Field{
	{Key: KeyTripID, Kind: KindString, Hint: "unique-trip-id"},
	{Key: KeyTripDetails, Kind: KindObject, Fields: []Field{
		{Key: "location", Kind: KindString, Hint: "Destination"},
		{Key: "startDate", Kind: KindString, Hint: "YYYY-MM-DD"},
		{Key: "tripType", Kind: KindStrings, Hint: "Trip type"},
		{Key: "duration", Kind: KindNumber},
		{Key: "budget", Kind: KindString, Hint: "Cheap | Moderate | Luxury"},
		{Key: "travelCompanion", Kind: KindString, Hint: "Solo | Couple | Family | Friends"},
		{Key: "interests", Kind: KindStrings, Hint: "Interest"},
		{Key: "activities", Kind: KindStrings, Hint: "Activity"},
		{Key: "dietaryPreferences", Kind: KindString, Hint: "Dietary preference"},
		{Key: "transportation", Kind: KindString, Hint: "Preferred transportation"},
		{Key: "accommodationType", Kind: KindString, Hint: "Accommodation type"},
		{Key: "specialRequirements", Kind: KindString, Hint: "Special requirements"},
	}},
	{Key: KeyHotelOptions, Kind: KindObjects, Fields: []Field{
		{Key: "hotelName", Kind: KindString, Hint: "Hotel name"},
		{Key: "hotelAddress", Kind: KindString, Hint: "Full address"},
		{Key: "price", Kind: KindString, Hint: "Price per night"},
		{Key: "rating", Kind: KindNumber},
		{Key: "description", Kind: KindString, Hint: "Short description"},
		{Key: "amenities", Kind: KindStrings, Hint: "Amenity"},
	}},
	{Key: KeyItinerary, Kind: KindDays, Fields: []Field{
		{Key: "theme", Kind: KindString, Hint: "Title of the day"},
		{Key: "plan", Kind: KindObjects, Fields: activitySchema},
	}},
	{Key: KeyTransportationOptions, Kind: KindObjects, Fields: []Field{
		{Key: "mode", Kind: KindString, Hint: "Transport mode"},
		{Key: "details", Kind: KindString, Hint: "Route or operator"},
		{Key: "cost", Kind: KindString, Hint: "Estimated cost"},
		{Key: "duration", Kind: KindString, Hint: "Travel time"},
	}},
	{Key: KeyDiningSuggestions, Kind: KindObjects, Fields: []Field{
		{Key: "restaurantName", Kind: KindString, Hint: "Restaurant name"},
		{Key: "cuisine", Kind: KindString, Hint: "Cuisine"},
		{Key: "priceRange", Kind: KindString, Hint: "Price range"},
		{Key: "dietaryOptions", Kind: KindStrings, Hint: "Dietary option"},
		{Key: "address", Kind: KindString, Hint: "Address"},
	}},
	{Key: KeyBudgetEstimate, Kind: KindObject, Fields: []Field{
		{Key: "accommodation", Kind: KindString, Hint: "Amount"},
		{Key: "transportation", Kind: KindString, Hint: "Amount"},
		{Key: "food", Kind: KindString, Hint: "Amount"},
		{Key: "activities", Kind: KindString, Hint: "Amount"},
		{Key: "total", Kind: KindString, Hint: "Amount"},
	}},
	{Key: KeyAdditionalTips, Kind: KindStrings, Hint: "Safety or local customs tip"},
}

// Template renders the schema as an indented JSON example for the prompt.
func Template() string {
	var b strings.Builder
	writeObject(&b, PlanSchema, 0)
	return b.String()
}

// Empty returns the value a fallback plan uses for a field of this kind.
func (f Field) Empty() any {
	switch f.Kind {
	case KindStrings, KindObjects:
		return []any{}
	case KindObject, KindDays:
		return map[string]any{}
	case KindNumber:
		return 0
	default:
		return ""
	}
}

func writeObject(b *strings.Builder, fields []Field, depth int) {
	b.WriteString("{\n")
	for i, f := range fields {
		indent(b, depth+1)
		b.WriteString(quote(f.Key))
		b.WriteString(": ")
		writeValue(b, f, depth+1)
		if i < len(fields)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	indent(b, depth)
	b.WriteByte('}')
}

func writeValue(b *strings.Builder, f Field, depth int) {
	switch f.Kind {
	case KindNumber:
		b.WriteByte('0')
	case KindStrings:
		b.WriteString("[" + quote(f.Hint) + "]")
	case KindObject:
		writeObject(b, f.Fields, depth)
	case KindObjects:
		b.WriteString("[\n")
		indent(b, depth+1)
		writeObject(b, f.Fields, depth+1)
		b.WriteByte('\n')
		indent(b, depth)
		b.WriteByte(']')
	case KindDays:
		b.WriteString("{\n")
		indent(b, depth+1)
		b.WriteString(quote("day1") + ": ")
		writeObject(b, f.Fields, depth+1)
		b.WriteByte('\n')
		indent(b, depth)
		b.WriteByte('}')
	default:
		b.WriteString(quote(f.Hint))
	}
}

func indent(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
}

func quote(s string) string {
	out, _ := json.Marshal(s)
	return string(out)
}
