package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "lowercases and trims",
			input:    "  Acme Robotics  ",
			expected: "acme robotics",
		},
		{
			name:     "strips punctuation",
			input:    "Acme-Robotics, Intl.",
			expected: "acme robotics intl",
		},
		{
			name:     "strips single legal suffix",
			input:    "Acme Robotics, Inc.",
			expected: "acme robotics",
		},
		{
			name:     "strips stacked legal suffixes",
			input:    "Acme Robotics Co Ltd",
			expected: "acme robotics",
		},
		{
			name:     "keeps suffix when it is the whole name",
			input:    "Inc",
			expected: "inc",
		},
		{
			name:     "collapses internal whitespace",
			input:    "Acme    Robotics",
			expected: "acme robotics",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "punctuation only",
			input:    "---",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeName(tt.input))
		})
	}
}
