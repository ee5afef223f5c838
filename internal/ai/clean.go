package ai

import (
	"regexp"
	"strings"
)

var (
	openingFence = regexp.MustCompile("(?i)^\\s*`{3,}(?:json)?")
	closingFence = regexp.MustCompile("`{3,}\\s*$")
)

// CleanJSONString removes markdown code fences (```json ... ```) wrapping the
// input and trims surrounding whitespace. Backticks inside the payload are kept.
// Applying it twice is the same as once.
func CleanJSONString(input string) string {
	out := strings.TrimSpace(input)
	for {
		next := strings.TrimSpace(closingFence.ReplaceAllString(openingFence.ReplaceAllString(out, ""), ""))
		if next == out {
			return out
		}
		out = next
	}
}
