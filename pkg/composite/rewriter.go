package composite

import "regexp"

// Shorthand reference shapes. These are lexically disjoint from the dotted
// canonical forms they rewrite to, so the passes never re-match their own
// output and Rewrite is idempotent.
var (
	candidateRef = regexp.MustCompile(`c\{([^}]*)\}`)
	headerRef    = regexp.MustCompile(`h\{([^}]*)\}`)
	ratingRef    = regexp.MustCompile(`r\{([0-9]+)\}`)
)

// Rewrite translates composite-rating shorthand into canonical dotted table
// references:
//
//	c{field} => <candidate table>.field
//	h{field} => <header table>.field
//	r{id}    => <rating alias id>.value
//
// The rewrite is purely textual. Surrounding literal text (operators,
// parentheses, SQL functions) is left untouched and no field names are
// validated; unknown fields surface later as a query failure from the store.
func (s *Schema) Rewrite(expr string) string {
	out := candidateRef.ReplaceAllString(expr, s.CandidateTable+".$1")
	out = headerRef.ReplaceAllString(out, s.HeaderTable+".$1")
	out = ratingRef.ReplaceAllStringFunc(out, func(ref string) string {
		id := ratingRef.FindStringSubmatch(ref)[1]
		return s.RatingAliasPrefix + id + ".value"
	})

	return out
}
