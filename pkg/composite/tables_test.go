package composite

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchema_ExtractTables(t *testing.T) {
	schema := DefaultSchema()

	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "candidate only",
			input:    "pdm_candidates.snr > 10",
			expected: []string{"pdm_candidates"},
		},
		{
			name:     "header only",
			input:    "headers.nchan > 0",
			expected: []string{"headers"},
		},
		{
			name:     "single rating alias",
			input:    "rat12.value",
			expected: []string{"rat12"},
		},
		{
			name:     "mixed sources sorted",
			input:    "rat12.value * pdm_candidates.snr / headers.nchan",
			expected: []string{"headers", "pdm_candidates", "rat12"},
		},
		{
			name:     "duplicate alias deduplicated",
			input:    "rat5.value + rat5.value * rat3.value",
			expected: []string{"rat3", "rat5"},
		},
		{
			name:     "empty input",
			input:    "",
			expected: []string{},
		},
		{
			name:     "tautology filter",
			input:    "1",
			expected: []string{},
		},
		{
			name:     "ratings table name is not an alias",
			input:    "SELECT 1 FROM ratings",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, schema.ExtractTables(tt.input))
		})
	}
}

func TestSchema_ExtractTables_Deterministic(t *testing.T) {
	schema := DefaultSchema()
	input := "rat7.value - rat3.value + headers.nchan * pdm_candidates.snr"

	first := schema.ExtractTables(input)
	second := schema.ExtractTables(input)

	assert.Equal(t, first, second)
	assert.Equal(t, []string{"headers", "pdm_candidates", "rat3", "rat7"}, first)
}
