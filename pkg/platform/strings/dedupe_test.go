package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompact(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{name: "nil", input: nil, expected: []string{}},
		{name: "blanks only", input: []string{"", "  ", "\t"}, expected: []string{}},
		{
			name:     "trims and keeps first",
			input:    []string{" CC-MAIN-2025-13 ", "CC-MAIN-2025-08", "CC-MAIN-2025-13"},
			expected: []string{"CC-MAIN-2025-13", "CC-MAIN-2025-08"},
		},
		{
			name:     "case sensitive",
			input:    []string{"GPTBot", "gptbot"},
			expected: []string{"GPTBot", "gptbot"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Compact(tt.input))
		})
	}
}

func TestCompactFold(t *testing.T) {
	got := CompactFold([]string{"GPTBot", " gptbot ", "", "ChatGPT-User", "CHATGPT-USER"})
	assert.Equal(t, []string{"GPTBot", "ChatGPT-User"}, got)
}
