package ai

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCleanJSONString(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"upper tag", "```JSON\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  \n```json\n{\"a\":1}\n```\n\n", `{"a":1}`},
		{"no closing fence", "```json\n{\"a\":1}", `{"a":1}`},
		{"prose untouched", "not json at all", "not json at all"},
		{"backticks inside value", "```json\n{\"tip\":\"type ```ls``` in shell\"}\n```", "{\"tip\":\"type ```ls``` in shell\"}"},
		{"nested fences", "```json\n```json\n{\"a\":1}\n```\n```", `{"a":1}`},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, CleanJSONString(tc.input))
		})
	}
}

func TestCleanJSONStringIdempotent(t *testing.T) {
	inputs := []string{
		"```json\n{\"a\":1}\n```",
		"````json\n[1,2]\n````",
		"Paris\n\nTokyo\n",
		"```json\n```\n[1]\n```\n```",
	}
	for _, in := range inputs {
		once := CleanJSONString(in)
		require.Equal(t, once, CleanJSONString(once), "input %q", in)
	}
}
