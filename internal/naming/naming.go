// Package naming derives the canonical logical name of a data file.
//
// Source files may carry a date suffix (ratings_20240721.csv); the canonical
// name strips it back to the mapping key (ratings.csv). Files without a date
// token are already canonical.
package naming

import "regexp"

// dateToken matches an underscore followed by exactly 8 digits, the
// date-suffix convention used by upstream exports (_YYYYMMDD).
var dateToken = regexp.MustCompile(`_\d{8}`)

// Canonical returns the canonical name for a file basename.
//
// If the name contains a date token, everything from the first token through
// the original extension is dropped and ".csv" is restored:
//
//	Canonical("ratings_20240721.csv") == "ratings.csv"
//	Canonical("movies.csv") == "movies.csv"
//
// Pure and total; idempotent by construction (a canonical name has no date
// token left to strip). Only the first match governs.
func Canonical(name string) string {
	loc := dateToken.FindStringIndex(name)
	if loc == nil {
		return name
	}
	return name[:loc[0]] + ".csv"
}
