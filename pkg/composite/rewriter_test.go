package composite

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchema_Rewrite(t *testing.T) {
	schema := DefaultSchema()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "candidate field",
			input:    "c{snr}",
			expected: "pdm_candidates.snr",
		},
		{
			name:     "header field",
			input:    "h{nchan}",
			expected: "headers.nchan",
		},
		{
			name:     "rating reference",
			input:    "r{12}",
			expected: "rat12.value",
		},
		{
			name:     "mixed expression",
			input:    "c{snr} * r{12} / h{nchan}",
			expected: "pdm_candidates.snr * rat12.value / headers.nchan",
		},
		{
			name:     "surrounding literals untouched",
			input:    "log(c{snr} + 1.5) / (r{3} - r{7})",
			expected: "log(pdm_candidates.snr + 1.5) / (rat3.value - rat7.value)",
		},
		{
			name:     "no shorthand is a no-op",
			input:    "pdm_candidates.snr > 10",
			expected: "pdm_candidates.snr > 10",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "repeated rating id rewrites every occurrence",
			input:    "r{5} + r{5}",
			expected: "rat5.value + rat5.value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, schema.Rewrite(tt.input))
		})
	}
}

func TestSchema_Rewrite_Idempotent(t *testing.T) {
	schema := DefaultSchema()

	inputs := []string{
		"c{snr} * r{12}",
		"h{nchan} > 0",
		"c{period} / h{tsamp} + r{0} - r{42}",
		"already.canonical + 1",
	}

	for _, input := range inputs {
		once := schema.Rewrite(input)
		twice := schema.Rewrite(once)
		assert.Equal(t, once, twice, "rewrite must be idempotent for %q", input)
	}
}

func TestSchema_Rewrite_Total(t *testing.T) {
	schema := DefaultSchema()

	canonical := schema.Rewrite("c{snr} * r{12} / h{nchan} + c{dm} - r{3}")

	assert.NotContains(t, canonical, "c{")
	assert.NotContains(t, canonical, "h{")
	assert.NotRegexp(t, `r\{[0-9]+\}`, canonical)
}

func TestSchema_Rewrite_CustomSchema(t *testing.T) {
	schema := &Schema{
		CandidateTable:    "cands",
		HeaderTable:       "obs",
		RatingAliasPrefix: "rt",
	}
	schema.SetDefaults()

	assert.Equal(t, "cands.snr + rt9.value * obs.nbits", schema.Rewrite("c{snr} + r{9} * h{nbits}"))
}
