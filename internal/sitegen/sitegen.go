// Package sitegen serializes the historical record into the static assets
// the dashboard consumes. Assets are regenerated wholesale from the record
// on every run; the generated file is never read back or patched in place.
package sitegen

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/franruiloz-lab/precios-almendra/internal/lonja"
	"github.com/franruiloz-lab/precios-almendra/internal/monthly"
	"github.com/franruiloz-lab/precios-almendra/internal/record"
)

// Frontend reduces the record into the per-market structure the charts
// read: a "meses" label array plus one index-aligned price array per
// primary variety, nulls marking months without data. Markets with no live
// entries fall back to the injected default record; markets absent from
// both are omitted.
func Frontend(rec *record.Record, fallback *record.Record) map[string]any {
	out := map[string]any{}

	for _, market := range lonja.Markets() {
		src := rec
		if !hasEntries(rec, market) {
			if !hasEntries(fallback, market) {
				continue
			}
			src = fallback
		}

		series := monthly.Reduce(src, market)
		if len(series.Keys) == 0 {
			continue
		}

		view := map[string]any{"meses": series.Labels}
		for _, variety := range lonja.PrimaryVarieties() {
			values := make([]any, len(series.Labels))
			for i, price := range series.Prices[variety] {
				if price != nil {
					values[i] = *price
				}
			}
			view[string(variety)] = values
		}
		out[string(market)] = view
	}

	return out
}

func hasEntries(rec *record.Record, market lonja.Market) bool {
	return rec != nil && rec.Markets[market] != nil && len(rec.Markets[market].Entries) > 0
}

// WriteDataJS renders the prerendered data asset consumed by the site.
// Embedding the data directly in the script keeps the dashboard indexable
// without a runtime fetch.
func WriteDataJS(path string, rec *record.Record, fallback *record.Record) error {
	payload, err := json.MarshalIndent(Frontend(rec, fallback), "", "    ")
	if err != nil {
		return err
	}

	lastUpdate := time.Now()
	if rec != nil {
		lastUpdate = rec.LastUpdate
	}

	var buf bytes.Buffer
	buf.WriteString("// Fichero generado por precios-cli, no editar a mano.\n\n")
	fmt.Fprintf(&buf, "const PRECIO_HISTORICO = %s;\n\n", payload)
	fmt.Fprintf(&buf, "const PRECIO_LAST_UPDATE = %q;\n", FormatDateES(lastUpdate))

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

var spanishMonths = []string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// FormatDateES renders a date in the long Spanish form shown on the site,
// e.g. "5 de marzo de 2026".
func FormatDateES(t time.Time) string {
	return fmt.Sprintf("%d de %s de %d", t.Day(), spanishMonths[t.Month()-1], t.Year())
}
