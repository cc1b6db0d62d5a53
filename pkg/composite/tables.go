package composite

import (
	"regexp"
	"sort"
	"strings"
)

// ExtractTables scans a canonical expression or filter clause and returns
// the distinct relational sources it touches: the candidate table, the
// header table, and one alias per distinct rating id. The result is sorted
// lexicographically and deduplicated so that equal inputs always yield the
// identical sequence, which keeps generated query text diff-stable.
func (s *Schema) ExtractTables(canonical string) []string {
	seen := make(map[string]struct{})

	if strings.Contains(canonical, s.CandidateTable+".") {
		seen[s.CandidateTable] = struct{}{}
	}

	if strings.Contains(canonical, s.HeaderTable+".") {
		seen[s.HeaderTable] = struct{}{}
	}

	aliasPattern := regexp.MustCompile(`\b` + regexp.QuoteMeta(s.RatingAliasPrefix) + `[0-9]+\.`)
	for _, match := range aliasPattern.FindAllString(canonical, -1) {
		seen[strings.TrimSuffix(match, ".")] = struct{}{}
	}

	tables := make([]string, 0, len(seen))
	for table := range seen {
		tables = append(tables, table)
	}

	sort.Strings(tables)

	return tables
}
