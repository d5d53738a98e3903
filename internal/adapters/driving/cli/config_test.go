package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		expected string
	}{
		{
			name:     "empty key",
			key:      "",
			expected: "(not set)",
		},
		{
			name:     "short key fully masked",
			key:      "sk-12345",
			expected: "****",
		},
		{
			name:     "long key keeps ends",
			key:      "sk-abcdefghijklmnop",
			expected: "sk-a...mnop",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, maskAPIKey(tt.key))
		})
	}
}
