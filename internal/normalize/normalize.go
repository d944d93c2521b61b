// Package normalize canonicalizes truck plate identifiers and categorical
// text before any cross-source matching. Every join in the engine assumes
// plates have been through Plate and category values through Text.
package normalize

import (
	"regexp"
	"strings"
)

var (
	plateSeparators = regexp.MustCompile(`[ ._:;/\\-]+`)
	invisibleRunes  = regexp.MustCompile("[​-‍︀-️]")
	whitespaceRuns  = regexp.MustCompile(`\s+`)
)

// Plate canonicalizes a truck plate string: uppercase, trimmed, any run of
// separator characters collapsed to a single hyphen, leading and trailing
// hyphens stripped. Idempotent, so it is safe to apply at every boundary.
// Plates arrive hand-typed across four independent forms ("3a 1111",
// "3A.1111", "3A-1111") and must land on one key.
func Plate(raw string) string {
	s := strings.ToUpper(strings.TrimSpace(raw))
	s = plateSeparators.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Text strips zero-width spaces, joiners and variation selectors and
// collapses internal whitespace to single spaces. Spreadsheet exports inject
// invisible code points that silently break exact-match category lookups.
func Text(raw string) string {
	s := invisibleRunes.ReplaceAllString(raw, "")
	s = whitespaceRuns.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
