// README: Renders normalized trip details into the plan-generation prompt.
package planning

import (
	"fmt"
	"strings"
)

// Trip types that switch on extra prompt sections.
const (
	TripTypeCulinary      = "Culinary"
	TripTypeFestival      = "Festival & Events"
	TripTypeNatureRetreat = "Nature Retreat"
)

// BuildPrompt renders details into the instruction sent to the model.
// Output depends only on details.
func BuildPrompt(d TripDetails) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Generate a detailed travel plan for a trip to %s.\n\n", d.Location)
	b.WriteString("Trip parameters:\n")
	fmt.Fprintf(&b, "- Location: %s\n", d.Location)
	fmt.Fprintf(&b, "- Start Date: %s\n", d.StartDate)
	fmt.Fprintf(&b, "- Trip Type: %s\n", strings.Join(d.TripType, ", "))
	fmt.Fprintf(&b, "- Duration: %d days\n", d.Duration)
	fmt.Fprintf(&b, "- Budget: %s\n", d.Budget)
	fmt.Fprintf(&b, "- Travel Companion: %s\n", d.TravelCompanion)
	fmt.Fprintf(&b, "- Interests: %s\n", strings.Join(d.Interests, ", "))
	fmt.Fprintf(&b, "- Activities: %s\n", strings.Join(d.Activities, ", "))
	fmt.Fprintf(&b, "- Dietary Preferences: %s\n", d.DietaryPreferences)
	fmt.Fprintf(&b, "- Transportation: %s\n", d.Transportation)
	fmt.Fprintf(&b, "- Accommodation Type: %s\n", d.AccommodationType)
	fmt.Fprintf(&b, "- Special Requirements: %s\n\n", d.SpecialRequirements)

	b.WriteString("Requirements:\n")
	n := 0
	req := func(format string, args ...any) {
		n++
		fmt.Fprintf(&b, "%d. ", n)
		fmt.Fprintf(&b, format, args...)
		b.WriteByte('\n')
	}
	req("Hotel options matching the %s accommodation type and %s budget, with name, address, price, rating and a short description.", d.AccommodationType, d.Budget)
	req("A daily itinerary for all %d days. Each day has a title and a list of activities; each activity has a name, description, time allocation, cost and duration.", d.Duration)
	req("Transportation options for getting around, preferring %s, with estimated cost and duration.", d.Transportation)
	req("Dining suggestions that respect the dietary preference: %s.", d.DietaryPreferences)
	if d.HasTripType(TripTypeCulinary) {
		req("Food tours and local culinary experiences, with what each tour covers and its cost.")
	}
	if d.HasTripType(TripTypeFestival) {
		req("Festival and event schedules during the travel dates, with venues and ticket information.")
	}
	if d.HasTripType(TripTypeNatureRetreat) {
		req("Eco-friendly accommodation options and nature activities close to them.")
	}
	req("A budget breakdown by category: accommodation, transportation, food, activities and total.")
	req("General safety tips and local customs travelers should know.")

	b.WriteString("\nReturn only JSON in exactly this format, keeping every key name and nesting level:\n")
	b.WriteString(Template())
	return b.String()
}
