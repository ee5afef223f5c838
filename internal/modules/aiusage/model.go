package aiusage

import "time"

// Entry is one recorded model invocation.
type Entry struct {
	ID        string    `json:"id"`
	Endpoint  string    `json:"endpoint"`
	Outcome   string    `json:"outcome"`
	LatencyMS int64     `json:"latencyMs"`
	CreatedAt time.Time `json:"createdAt"`
}

// Summary aggregates entries recorded at or after Since.
type Summary struct {
	Since      time.Time      `json:"since"`
	Total      int            `json:"total"`
	ByOutcome  map[string]int `json:"byOutcome"`
	ByEndpoint map[string]int `json:"byEndpoint"`
}

func newSummary(since time.Time) Summary {
	return Summary{Since: since, ByOutcome: map[string]int{}, ByEndpoint: map[string]int{}}
}

func (s *Summary) add(endpoint, outcome string, n int) {
	s.Total += n
	s.ByOutcome[outcome] += n
	s.ByEndpoint[endpoint] += n
}
