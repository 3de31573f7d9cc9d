// Package parse holds the two field parsers used by table extraction: a
// locale-ambiguous date parser and a price parser for comma-decimal text.
// Both are pure and report failure instead of erroring.
package parse

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var dayFirstPattern = regexp.MustCompile(`(\d{1,2})[/\-.](\d{1,2})[/\-.](\d{4})`)
var canonicalPattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// Date canonicalizes a date token to YYYY-MM-DD. Two shapes are accepted:
// D/M/YYYY (also with "-" or "." separators), read day-first as published by
// the Spanish lonjas, and an already-canonical YYYY-MM-DD, passed through.
// Anything else reports false.
func Date(s string) (string, bool) {
	if s == "" {
		return "", false
	}
	if groups := dayFirstPattern.FindStringSubmatch(s); groups != nil {
		day, _ := strconv.Atoi(groups[1])
		month, _ := strconv.Atoi(groups[2])
		return fmt.Sprintf("%s-%02d-%02d", groups[3], month, day), true
	}
	if match := canonicalPattern.FindString(s); match != "" {
		return match, true
	}
	return "", false
}

// Bounds is the plausibility window for a parsed price, in €/kg. Values
// outside it are treated as mis-parsed unrelated numbers (years, page
// numbers) and rejected.
type Bounds struct {
	Min float64
	Max float64
}

// DefaultBounds covers almond per-kilogram prices on the Spanish market.
// Tune through configuration when pointing at other commodities.
var DefaultBounds = Bounds{Min: 1, Max: 15}

func (b Bounds) orDefault() Bounds {
	if b.Min == 0 && b.Max == 0 {
		return DefaultBounds
	}
	return b
}

// Price parses a locale-formatted price cell using DefaultBounds.
func Price(s string) (float64, bool) {
	return PriceIn(s, DefaultBounds)
}

// PriceIn strips currency symbols and whitespace, reads the comma as the
// decimal separator and validates the result against the given bounds.
// Prices are assumed to never carry thousands separators.
func PriceIn(s string, bounds Bounds) (float64, bool) {
	bounds = bounds.orDefault()

	cleaned := strings.Map(func(r rune) rune {
		if r == '€' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	cleaned = strings.Replace(cleaned, ",", ".", 1)
	if cleaned == "" {
		return 0, false
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	if value < bounds.Min || value > bounds.Max {
		return 0, false
	}
	return value, true
}
