package textutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

var deaccent = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// StripDiacritics removes combining marks from a string, so "ecológica"
// becomes "ecologica". Falls back to the input on transform failure.
func StripDiacritics(s string) string {
	out, _, err := transform.String(deaccent, s)
	if err != nil {
		return s
	}
	return out
}

// Normalize lowers, de-accents, trims and collapses inner whitespace into
// single spaces. This is the canonical form header cells are matched in.
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = StripDiacritics(s)
	s = strings.TrimSpace(s)
	s = whitespaceRegex.ReplaceAllString(s, " ")
	return s
}

// ContainsAny reports whether the normalized form of `s` contains any of the
// given fragments. Fragments are expected to already be normalized.
func ContainsAny(s string, fragments []string) bool {
	s = Normalize(s)
	for _, f := range fragments {
		if strings.Contains(s, f) {
			return true
		}
	}
	return false
}
