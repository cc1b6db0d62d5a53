package composite

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// CompositeColumn is the output column name every built query selects the
// expression as. The trailing HAVING clause filters on the same name.
const CompositeColumn = "composite_rating"

// DefaultWhere is the tautological filter clause used when the caller
// supplies none.
const DefaultWhere = "1"

// Options control the optional restrictions applied to a built query.
type Options struct {
	// Where is a canonical boolean predicate limiting which candidates are
	// used. Empty means DefaultWhere (all candidates).
	Where string
	// ExcludeTestSources keeps only candidates whose header source name
	// matches the real-source naming pattern.
	ExcludeTestSources bool
	// Classifications limits results to candidates carrying one of these
	// human-assigned classification codes.
	Classifications []int
}

// Builder assembles composite-rating queries against a fixed schema. It is
// stateless between calls: every Build produces a fresh query from its
// inputs alone.
type Builder struct {
	schema *Schema
}

// NewBuilder creates a query builder for the given schema.
func NewBuilder(schema *Schema) *Builder {
	return &Builder{schema: schema}
}

// Schema returns the schema the builder compiles against.
func (b *Builder) Schema() *Schema {
	return b.schema
}

// Build assembles the complete query computing the composite rating
// described by the canonical expression. The join set is exactly the set of
// sources referenced by the expression and the filter clause, plus the
// header table when ExcludeTestSources needs it and the classification
// table when classification codes are given. Joins are emitted in sorted
// order, one per source, and the query unconditionally ends with a HAVING
// clause discarding null composite values.
//
// No semantic validation happens here: malformed user input is only caught
// when the store rejects the assembled query.
func (b *Builder) Build(canonicalExpr string, opts Options) string {
	s := b.schema

	where := opts.Where
	if where == "" {
		where = DefaultWhere
	}

	tables := b.requiredTables(canonicalExpr, where, opts)

	clauses := []string{
		fmt.Sprintf("SELECT %s AS %s FROM %s", canonicalExpr, CompositeColumn, s.CandidateTable),
	}

	for _, table := range tables {
		if join := b.joinClause(table); join != "" {
			clauses = append(clauses, join)
		}
	}

	clauses = append(clauses, "WHERE "+where)

	if opts.ExcludeTestSources {
		clauses = append(clauses, fmt.Sprintf("AND %s.source_name LIKE '%s'", s.HeaderTable, s.RealSourcePattern))
	}

	if len(opts.Classifications) > 0 {
		clauses = append(clauses, fmt.Sprintf("AND %s.rank IN (%s)", s.ClassificationTable, joinInts(opts.Classifications)))
	}

	clauses = append(clauses, fmt.Sprintf("HAVING %s IS NOT NULL", CompositeColumn))

	return strings.Join(clauses, " ")
}

// requiredTables merges the table sets of the expression and the filter
// clause, adds any sources forced by the options, and returns the union in
// sorted order with no duplicates.
func (b *Builder) requiredTables(canonicalExpr, where string, opts Options) []string {
	seen := make(map[string]struct{})
	for _, table := range b.schema.ExtractTables(canonicalExpr) {
		seen[table] = struct{}{}
	}

	for _, table := range b.schema.ExtractTables(where) {
		seen[table] = struct{}{}
	}

	if opts.ExcludeTestSources {
		seen[b.schema.HeaderTable] = struct{}{}
	}

	if len(opts.Classifications) > 0 {
		seen[b.schema.ClassificationTable] = struct{}{}
	}

	tables := make([]string, 0, len(seen))
	for table := range seen {
		tables = append(tables, table)
	}

	sort.Strings(tables)

	return tables
}

// joinClause emits the single join clause for one source. The candidate
// table is the FROM table and needs no join.
func (b *Builder) joinClause(table string) string {
	s := b.schema

	switch {
	case table == s.CandidateTable:
		return ""
	case table == s.HeaderTable:
		return fmt.Sprintf("LEFT JOIN %s ON %s.%s = %s.%s",
			s.HeaderTable,
			s.HeaderTable, s.HeaderIDColumn,
			s.CandidateTable, s.HeaderIDColumn)
	case table == s.ClassificationTable:
		return fmt.Sprintf("LEFT JOIN %s ON %s.%s = %s.%s AND %s.pdm_class_type_id = %d AND %s.who = '%s'",
			s.ClassificationTable,
			s.CandidateTable, s.CandidateIDColumn,
			s.ClassificationTable, s.CandidateIDColumn,
			s.ClassificationTable, s.ClassTypeID,
			s.ClassificationTable, s.Evaluator)
	case strings.HasPrefix(table, s.RatingAliasPrefix):
		id := strings.TrimPrefix(table, s.RatingAliasPrefix)
		return fmt.Sprintf("LEFT JOIN %s AS %s ON %s.%s = %s.%s AND %s.rating_id = %s",
			s.RatingTable, table,
			table, s.CandidateIDColumn,
			s.CandidateTable, s.CandidateIDColumn,
			table, id)
	default:
		return ""
	}
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}

	return strings.Join(parts, ",")
}
