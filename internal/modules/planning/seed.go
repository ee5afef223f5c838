package planning

import "tripcraft/internal/ai"

// seedHistory primes the chat toward answering with JSON. It is the same for every request.
var seedHistory = []ai.Message{
	{
		Role: ai.RoleUser,
		Text: "Generate a travel plan for a 1 day trip to Las Vegas for a couple on a cheap budget. " +
			"Respond in JSON with hotel options, a daily itinerary, dining suggestions and a budget estimate.",
	},
	{
		Role: ai.RoleModel,
		Text: `{"hotelOptions": [], "itinerary": {"day1": {"theme": "Exploring the Strip", "plan": []}}, ` +
			`"diningSuggestions": [], "budgetEstimate": {}, "additionalTips": []}`,
	},
}

// planConfig is the generation config shared by plan and recommendation calls.
var planConfig = ai.GenerationConfig{
	Temperature:      1.0,
	TopP:             0.95,
	TopK:             40,
	MaxOutputTokens:  8192,
	ResponseMIMEType: ai.MIMETypeJSON,
}

// SeedHistory returns a copy of the fixed two-turn seed exchange.
func SeedHistory() []ai.Message {
	out := make([]ai.Message, len(seedHistory))
	copy(out, seedHistory)
	return out
}

// GenerationConfig returns the fixed generation parameters.
func GenerationConfig() ai.GenerationConfig {
	return planConfig
}
