// Package extract locates price tables in raw lonja HTML and turns their
// rows into observations. Table layout is inferred from header text: one
// date column anchors each row, every recognized variety header maps its
// column to a canonical variety.
package extract

import (
	"context"
	"log/slog"
	"strings"

	"github.com/franruiloz-lab/precios-almendra/internal/lonja"
	"github.com/franruiloz-lab/precios-almendra/internal/parse"
	"github.com/franruiloz-lab/precios-almendra/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("internal/extract")

type Options struct {
	// Bounds overrides the price plausibility window. Zero value keeps
	// parse.DefaultBounds.
	Bounds parse.Bounds
}

// Observations extracts every usable price row from the page. It is a pure
// function of its inputs and returns an empty batch when no table matches;
// a data table skipped because its headers are unrecognized is an accepted
// heuristic miss, not an error. Cross-table duplicates are left to the
// merge step.
func Observations(ctx context.Context, htmlText string, market lonja.Market, opts Options) []lonja.Observation {
	ctx, span := tracer.Start(ctx, "Observations")
	defer span.End()
	span.SetAttributes(attribute.String("market", string(market)))

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlText))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse html")
		slog.WarnContext(ctx, "failed to parse page html", "market", market, "err", err)
		return nil
	}

	var out []lonja.Observation
	doc.Find("table").Each(func(tableIdx int, table *goquery.Selection) {
		rows := tableObservations(ctx, table, market, opts.Bounds)
		if rows == nil {
			slog.DebugContext(ctx, "skipping unrecognized table", "market", market, "table", tableIdx)
			return
		}
		out = append(out, rows...)
	})

	span.SetAttributes(attribute.Int("observations", len(out)))
	return out
}

// tableObservations returns nil when the table carries neither a date header
// nor a known variety header.
func tableObservations(ctx context.Context, table *goquery.Selection, market lonja.Market, bounds parse.Bounds) []lonja.Observation {
	headers := htmlutil.CellTexts(table.Find("thead th, thead td, tr:first-child th, tr:first-child td"))

	hasDate := false
	dateCol := -1
	varietyCols := map[int]lonja.Variety{}
	for idx, header := range headers {
		if lonja.IsDateHeader(header) {
			hasDate = true
			if dateCol == -1 {
				dateCol = idx
			}
		}
		if variety, ok := lonja.ClassifyHeader(header); ok {
			varietyCols[idx] = variety
		}
	}
	if !hasDate && len(varietyCols) == 0 {
		return nil
	}
	// no recognizable date header: assume the leading column carries dates
	if dateCol == -1 {
		dateCol = 0
	}

	out := []lonja.Observation{}
	table.Find("tr").Each(func(rowIdx int, row *goquery.Selection) {
		if rowIdx == 0 && row.Find("th").Length() > 0 {
			return
		}

		cells := htmlutil.CellTexts(row.Find("td, th"))
		if len(cells) < 2 || dateCol >= len(cells) {
			return
		}

		// rows without a parseable date contribute nothing, dates
		// anchor the series
		date, ok := parse.Date(cells[dateCol])
		if !ok {
			slog.DebugContext(ctx, "dropping row with unparseable date", "market", market, "cell", cells[dateCol])
			return
		}

		prices := map[lonja.Variety]float64{}
		for col, variety := range varietyCols {
			if col >= len(cells) {
				continue
			}
			if value, ok := parse.PriceIn(cells[col], bounds); ok {
				prices[variety] = value
			}
		}
		if len(prices) == 0 {
			return
		}

		out = append(out, lonja.Observation{
			Date:   date,
			Market: market,
			Prices: prices,
		})
	})

	return out
}
