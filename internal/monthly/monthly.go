// Package monthly collapses a market's historical entries into the bounded
// per-month series the dashboard charts: at most one representative entry
// per calendar month, windowed to the most recent twelve.
package monthly

import (
	"sort"
	"strings"

	"github.com/franruiloz-lab/precios-almendra/internal/lonja"
	"github.com/franruiloz-lab/precios-almendra/internal/record"
)

// Window is the number of month buckets kept, newest inclusive.
const Window = 12

// Series is the reduced view for one market. Keys, Labels and every Prices
// slice are index-aligned, oldest month first. A nil price means the variety
// had no data that month.
type Series struct {
	Keys   []string // YYYY-MM
	Labels []string // display form, e.g. "Feb 26"
	Prices map[lonja.Variety][]*float64
}

// Reduce derives a market's monthly series from the historical record. Pure:
// the record is only read. Within a month the entry with the greatest date
// wins; dates are zero-padded so string comparison is date comparison.
func Reduce(rec *record.Record, market lonja.Market) Series {
	out := Series{Prices: map[lonja.Variety][]*float64{}}
	if rec == nil {
		return out
	}
	hist := rec.Markets[market]
	if hist == nil {
		return out
	}

	latest := map[string]record.Entry{}
	for _, entry := range hist.Entries {
		if len(entry.Date) < 7 {
			continue
		}
		key := entry.Date[:7]
		if current, ok := latest[key]; !ok || entry.Date > current.Date {
			latest[key] = entry
		}
	}

	keys := make([]string, 0, len(latest))
	for key := range latest {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	if len(keys) > Window {
		keys = keys[len(keys)-Window:]
	}

	out.Keys = keys
	out.Labels = make([]string, len(keys))
	for i, key := range keys {
		out.Labels[i] = Label(key)
	}

	for _, variety := range lonja.PrimaryVarieties() {
		values := make([]*float64, len(keys))
		for i, key := range keys {
			if price, ok := latest[key].Prices[variety]; ok {
				p := price
				values[i] = &p
			}
		}
		out.Prices[variety] = values
	}

	return out
}

var monthNames = map[string]string{
	"01": "Ene", "02": "Feb", "03": "Mar", "04": "Abr",
	"05": "May", "06": "Jun", "07": "Jul", "08": "Ago",
	"09": "Sep", "10": "Oct", "11": "Nov", "12": "Dic",
}

// Label renders a YYYY-MM month key as the short Spanish display form used
// by the charts ("2026-02" → "Feb 26"). Unrecognized keys pass through.
func Label(key string) string {
	year, month, ok := strings.Cut(key, "-")
	if !ok || len(year) != 4 {
		return key
	}
	name, ok := monthNames[month]
	if !ok {
		return key
	}
	return name + " " + year[2:]
}
