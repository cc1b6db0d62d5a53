// Package composite implements the composite-rating expression compiler:
// shorthand rewriting, table extraction, and SQL query assembly.
package composite

import (
	"errors"
	"strconv"
)

// Static errors for configuration validation
var (
	ErrEvaluatorRequired = errors.New("evaluator identity is required")
)

// Schema describes the relational layout the compiler targets. All names are
// treated as opaque identifiers; the compiler never validates that the
// referenced fields exist.
type Schema struct {
	CandidateTable      string `yaml:"candidateTable" default:"pdm_candidates"`
	CandidateIDColumn   string `yaml:"candidateIdColumn" default:"pdm_cand_id"`
	HeaderTable         string `yaml:"headerTable" default:"headers"`
	HeaderIDColumn      string `yaml:"headerIdColumn" default:"header_id"`
	RatingTable         string `yaml:"ratingTable" default:"ratings"`
	RatingAliasPrefix   string `yaml:"ratingAliasPrefix" default:"rat"`
	ClassificationTable string `yaml:"classificationTable" default:"pdm_classifications"`

	// ClassTypeID restricts classification joins to one classification
	// scheme; Evaluator restricts them to one human's rankings.
	ClassTypeID int    `yaml:"classTypeId" default:"1"`
	Evaluator   string `yaml:"evaluator" default:"PL"`

	// RealSourcePattern is the LIKE pattern matching real-sky source names.
	// Test and simulated sources use a different naming prefix.
	RealSourcePattern string `yaml:"realSourcePattern" default:"G%"`
}

// Validate checks if the schema configuration is valid
func (s *Schema) Validate() error {
	if s.Evaluator == "" {
		return ErrEvaluatorRequired
	}

	return nil
}

// SetDefaults sets default values for the schema configuration
func (s *Schema) SetDefaults() {
	if s.CandidateTable == "" {
		s.CandidateTable = "pdm_candidates"
	}

	if s.CandidateIDColumn == "" {
		s.CandidateIDColumn = "pdm_cand_id"
	}

	if s.HeaderTable == "" {
		s.HeaderTable = "headers"
	}

	if s.HeaderIDColumn == "" {
		s.HeaderIDColumn = "header_id"
	}

	if s.RatingTable == "" {
		s.RatingTable = "ratings"
	}

	if s.RatingAliasPrefix == "" {
		s.RatingAliasPrefix = "rat"
	}

	if s.ClassificationTable == "" {
		s.ClassificationTable = "pdm_classifications"
	}

	if s.ClassTypeID == 0 {
		s.ClassTypeID = 1
	}

	if s.Evaluator == "" {
		s.Evaluator = "PL"
	}

	if s.RealSourcePattern == "" {
		s.RealSourcePattern = "G%"
	}
}

// DefaultSchema returns a schema populated with the survey defaults.
func DefaultSchema() *Schema {
	s := &Schema{}
	s.SetDefaults()

	return s
}

// RatingAlias returns the join alias used for a rating id. The mapping is
// injective: distinct ids always produce distinct aliases.
func (s *Schema) RatingAlias(id int) string {
	return s.RatingAliasPrefix + strconv.Itoa(id)
}
