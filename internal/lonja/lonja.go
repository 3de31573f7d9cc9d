// Package lonja holds the domain model for Spanish almond price markets:
// the market and variety enumerations, the header classifier used by table
// extraction, and the Observation data point.
package lonja

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/franruiloz-lab/precios-almendra/lib/textutil"

	"github.com/antzucaro/matchr"
)

// Market identifies one of the regional exchanges ("lonjas") we track.
type Market string

const (
	Albacete Market = "albacete"
	Murcia   Market = "murcia"
	Reus     Market = "reus"
	Cordoba  Market = "cordoba"
)

// Markets returns the fixed set of tracked markets, in display order.
func Markets() []Market {
	return []Market{Albacete, Murcia, Reus, Cordoba}
}

func ParseMarket(s string) (Market, error) {
	m := Market(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Markets() {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown market: %q", s)
}

// Variety identifies a named almond cultivar with its own price series.
type Variety string

const (
	Comuna    Variety = "comuna"
	Marcona   Variety = "marcona"
	Largueta  Variety = "largueta"
	Guara     Variety = "guara"
	Ferragnes Variety = "ferragnes"
	Ecologica Variety = "ecologica"
	Belona    Variety = "belona"
	Lauranne  Variety = "lauranne"
	Soleta    Variety = "soleta"
)

// PrimaryVarieties returns the four varieties every dashboard view renders.
// Secondary varieties are still recognized and recorded by the pipeline.
func PrimaryVarieties() []Variety {
	return []Variety{Comuna, Marcona, Largueta, Guara}
}

type synonym struct {
	fragment string
	variety  Variety
}

// Normalized header fragments mapped to canonical varieties. Order matters:
// the first fragment contained in a header wins. Extending recognition to a
// new spelling is a one-line addition here.
var synonyms = []synonym{
	{"comuna", Comuna},
	{"marcona", Marcona},
	{"largueta", Largueta},
	{"guara", Guara},
	{"ferragnes", Ferragnes},
	{"ferraganes", Ferragnes},
	{"ecologica", Ecologica},
	{"belona", Belona},
	{"lauranne", Lauranne},
	{"soleta", Soleta},
}

// fuzzyThreshold is the Jaro-Winkler similarity above which a header token
// is accepted as a misspelled variety name.
const fuzzyThreshold = 0.93

var tokenSplit = regexp.MustCompile(`[^a-z0-9]+`)

// ClassifyHeader maps a raw header cell to a canonical variety. Matching is
// done on the normalized text: exact fragment containment first, then a
// fuzzy pass over individual tokens to absorb source-side typos.
func ClassifyHeader(header string) (Variety, bool) {
	normalized := textutil.Normalize(header)
	if normalized == "" {
		return "", false
	}

	for _, s := range synonyms {
		if strings.Contains(normalized, s.fragment) {
			return s.variety, true
		}
	}

	best := Variety("")
	bestSim := fuzzyThreshold
	for _, token := range tokenSplit.Split(normalized, -1) {
		// short tokens produce spurious high similarities
		if len(token) < 5 {
			continue
		}
		for _, s := range synonyms {
			sim := matchr.JaroWinkler(token, s.fragment, false)
			if sim > bestSim {
				best = s.variety
				bestSim = sim
			}
		}
	}
	if best != "" {
		return best, true
	}
	return "", false
}

var numericDatePattern = regexp.MustCompile(`\d{1,2}/\d{1,2}`)

// IsDateHeader reports whether a header cell labels the date column.
func IsDateHeader(header string) bool {
	normalized := textutil.Normalize(header)
	return strings.Contains(normalized, "fecha") ||
		strings.Contains(normalized, "date") ||
		numericDatePattern.MatchString(normalized)
}

// Observation is one scraped data point: the prices published by a market
// on a given trading date. Prices only carries varieties actually present
// in the source row and is never empty.
type Observation struct {
	Date   string              `json:"date"` // canonical YYYY-MM-DD
	Market Market              `json:"market"`
	Prices map[Variety]float64 `json:"prices"`
}
