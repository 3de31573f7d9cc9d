// Package scrape drives one batch run: fetch every market's page, extract
// observations and report a per-market summary. Market failures are
// isolated; one dead lonja never aborts the others.
package scrape

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/franruiloz-lab/precios-almendra/internal/extract"
	"github.com/franruiloz-lab/precios-almendra/internal/lonja"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("internal/scrape")

// Fetcher returns raw markup for a source URL or a fetch failure.
type Fetcher interface {
	Page(ctx context.Context, url string) (string, error)
}

// Source binds a market to the page its prices are published on.
type Source struct {
	Market lonja.Market
	Url    string
}

// DefaultSources lists the SynergyNuts UPCT lonja pages.
func DefaultSources() []Source {
	return []Source{
		{lonja.Albacete, "https://synergynuts.upct.es/precio-almendra/lonja-albacete/"},
		{lonja.Murcia, "https://synergynuts.upct.es/precio-almendra/lonja-murcia/"},
		{lonja.Reus, "https://synergynuts.upct.es/precio-almendra/lonja-reus/"},
		{lonja.Cordoba, "https://synergynuts.upct.es/precio-almendra/lonja-cordoba/"},
	}
}

// MarketResult is one market's outcome within a run.
type MarketResult struct {
	Market lonja.Market
	Count  int
	Err    error
}

// Summary reports a whole run. Total == 0 with no errors still counts as
// the "no data obtained" terminal condition, surfaced to the operator.
type Summary struct {
	Results []MarketResult
	Total   int
}

func (s Summary) NoData() bool {
	return s.Total == 0
}

// Run scrapes every source concurrently and returns the combined batch plus
// the run summary. Results are ordered by market for determinism.
func Run(ctx context.Context, fetcher Fetcher, sources []Source, opts extract.Options) ([]lonja.Observation, Summary) {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()

	var batch []lonja.Observation
	var summary Summary
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, src := range sources {
		wg.Add(1)
		go func(src Source) {
			defer wg.Done()

			obs, err := scrapeMarket(ctx, fetcher, src, opts)

			mu.Lock()
			defer mu.Unlock()
			batch = append(batch, obs...)
			summary.Results = append(summary.Results, MarketResult{
				Market: src.Market,
				Count:  len(obs),
				Err:    err,
			})
			summary.Total += len(obs)
		}(src)
	}
	wg.Wait()

	slices.SortFunc(summary.Results, func(a, b MarketResult) int {
		return strings.Compare(string(a.Market), string(b.Market))
	})
	slices.SortFunc(batch, func(a, b lonja.Observation) int {
		if c := strings.Compare(string(a.Market), string(b.Market)); c != 0 {
			return c
		}
		return strings.Compare(a.Date, b.Date)
	})

	span.SetAttributes(attribute.Int("total", summary.Total))
	return batch, summary
}

func scrapeMarket(ctx context.Context, fetcher Fetcher, src Source, opts extract.Options) ([]lonja.Observation, error) {
	html, err := fetcher.Page(ctx, src.Url)
	if err != nil {
		slog.WarnContext(ctx, "failed to fetch market page", "market", src.Market, "url", src.Url, "err", err)
		return nil, err
	}

	obs := extract.Observations(ctx, html, src.Market, opts)
	slog.InfoContext(ctx, "scraped market", "market", src.Market, "records", len(obs))
	return obs, nil
}
