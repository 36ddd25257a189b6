package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "nil slice",
			input:    nil,
			expected: nil,
		},
		{
			name:     "trims whitespace",
			input:    []string{"  HS-7 declaration ", "EPA form 3520-1"},
			expected: []string{"HS-7 declaration", "EPA form 3520-1"},
		},
		{
			name:     "removes duplicates preserving order",
			input:    []string{"smog check", "HS-7 declaration", "smog check"},
			expected: []string{"smog check", "HS-7 declaration"},
		},
		{
			name:     "removes empty strings",
			input:    []string{"smog check", "", "  "},
			expected: []string{"smog check"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DedupeAndTrim(tt.input))
		})
	}
}
