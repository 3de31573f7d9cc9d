// Package record owns the persisted historical price ledger: one document
// holding every deduplicated observation per market, newest first. The merge
// engine here is the only writer; everything else treats the record as
// read-only.
package record

import (
	"slices"
	"strings"
	"time"

	"github.com/franruiloz-lab/precios-almendra/internal/lonja"
)

// Source labels where the record's data was scraped from.
const Source = "SynergyNuts UPCT"

// Entry is the price set a market published on one trading date.
type Entry struct {
	Date   string                    `json:"date"`
	Prices map[lonja.Variety]float64 `json:"prices"`
}

// MarketHistory is a market's entries in descending date order, at most one
// per date. Dates are sparse, not daily.
type MarketHistory struct {
	Entries []Entry `json:"entries"`
}

// Record is the interchange document persisted between runs.
type Record struct {
	LastUpdate time.Time                       `json:"lastUpdate"`
	Source     string                          `json:"source"`
	Markets    map[lonja.Market]*MarketHistory `json:"markets"`
}

// New returns an empty record with every known market initialized.
func New(now time.Time) *Record {
	markets := map[lonja.Market]*MarketHistory{}
	for _, m := range lonja.Markets() {
		markets[m] = &MarketHistory{}
	}
	return &Record{
		LastUpdate: now,
		Source:     Source,
		Markets:    markets,
	}
}

// Merge folds a batch of freshly scraped observations into the record and
// returns it. Entries are upserted by exact date: incoming variety prices
// overwrite matching keys, varieties only present in the stored entry are
// preserved. New dates are appended and each touched market is re-sorted
// newest first. A nil record starts from empty.
//
// Re-applying the same batch is a no-op, and the result does not depend on
// the order of observations unless the batch itself carries conflicting
// values for the same (date, variety), in which case the last one wins.
func Merge(existing *Record, batch []lonja.Observation, now time.Time) *Record {
	rec := existing
	if rec == nil {
		rec = New(now)
	}
	rec.LastUpdate = now
	if rec.Source == "" {
		rec.Source = Source
	}
	if rec.Markets == nil {
		rec.Markets = map[lonja.Market]*MarketHistory{}
	}

	touched := map[lonja.Market]bool{}
	for _, obs := range batch {
		hist := rec.Markets[obs.Market]
		if hist == nil {
			hist = &MarketHistory{}
			rec.Markets[obs.Market] = hist
		}
		touched[obs.Market] = true

		idx := slices.IndexFunc(hist.Entries, func(e Entry) bool {
			return e.Date == obs.Date
		})
		if idx >= 0 {
			if hist.Entries[idx].Prices == nil {
				hist.Entries[idx].Prices = map[lonja.Variety]float64{}
			}
			for variety, price := range obs.Prices {
				hist.Entries[idx].Prices[variety] = price
			}
			continue
		}

		prices := make(map[lonja.Variety]float64, len(obs.Prices))
		for variety, price := range obs.Prices {
			prices[variety] = price
		}
		hist.Entries = append(hist.Entries, Entry{Date: obs.Date, Prices: prices})
	}

	for market := range touched {
		slices.SortFunc(rec.Markets[market].Entries, func(a, b Entry) int {
			return strings.Compare(b.Date, a.Date)
		})
	}

	return rec
}
