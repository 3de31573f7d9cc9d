package scrape

import (
	"context"
	"fmt"
	"testing"

	"github.com/franruiloz-lab/precios-almendra/internal/extract"
	"github.com/franruiloz-lab/precios-almendra/internal/lonja"
	"github.com/franruiloz-lab/precios-almendra/lib/telemetry"

	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	pages map[string]string
}

func (f fakeFetcher) Page(ctx context.Context, url string) (string, error) {
	html, ok := f.pages[url]
	if !ok {
		return "", fmt.Errorf("fetch %s: http 503", url)
	}
	return html, nil
}

const albaceteHTML = `<table>
	<thead><tr><th>Fecha</th><th>Comuna</th><th>Marcona</th></tr></thead>
	<tbody>
		<tr><td>01/03/2026</td><td>5,20</td><td>7,00</td></tr>
		<tr><td>05/03/2026</td><td>5,30</td><td>—</td></tr>
	</tbody>
</table>`

const murciaHTML = `<table>
	<thead><tr><th>Fecha</th><th>Guara</th></tr></thead>
	<tbody><tr><td>02/03/2026</td><td>5,65</td></tr></tbody>
</table>`

func TestRunIsolatesMarketFailures(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:scrape")
	defer cleanup()

	sources := []Source{
		{lonja.Albacete, "http://upct.test/albacete"},
		{lonja.Murcia, "http://upct.test/murcia"},
		{lonja.Reus, "http://upct.test/reus"}, // not served, fetch fails
	}
	fetcher := fakeFetcher{pages: map[string]string{
		"http://upct.test/albacete": albaceteHTML,
		"http://upct.test/murcia":   murciaHTML,
	}}

	batch, summary := Run(context.Background(), fetcher, sources, extract.Options{})
	require.Equal(t, 3, summary.Total)
	require.Len(t, batch, 3)
	require.False(t, summary.NoData())

	require.Len(t, summary.Results, 3)
	// results sorted by market name: albacete, murcia, reus
	require.Equal(t, lonja.Albacete, summary.Results[0].Market)
	require.Equal(t, 2, summary.Results[0].Count)
	require.NoError(t, summary.Results[0].Err)

	require.Equal(t, lonja.Murcia, summary.Results[1].Market)
	require.Equal(t, 1, summary.Results[1].Count)

	require.Equal(t, lonja.Reus, summary.Results[2].Market)
	require.Equal(t, 0, summary.Results[2].Count)
	require.Error(t, summary.Results[2].Err)
}

func TestRunNoData(t *testing.T) {
	sources := []Source{{lonja.Albacete, "http://upct.test/albacete"}}
	fetcher := fakeFetcher{pages: map[string]string{}}

	batch, summary := Run(context.Background(), fetcher, sources, extract.Options{})
	require.Empty(t, batch)
	require.True(t, summary.NoData())
}

func TestRunBatchIsDeterministicallyOrdered(t *testing.T) {
	sources := []Source{
		{lonja.Murcia, "http://upct.test/murcia"},
		{lonja.Albacete, "http://upct.test/albacete"},
	}
	fetcher := fakeFetcher{pages: map[string]string{
		"http://upct.test/albacete": albaceteHTML,
		"http://upct.test/murcia":   murciaHTML,
	}}

	batch, _ := Run(context.Background(), fetcher, sources, extract.Options{})
	require.Len(t, batch, 3)
	require.Equal(t, lonja.Albacete, batch[0].Market)
	require.Equal(t, "2026-03-01", batch[0].Date)
	require.Equal(t, lonja.Albacete, batch[1].Market)
	require.Equal(t, "2026-03-05", batch[1].Date)
	require.Equal(t, lonja.Murcia, batch[2].Market)
}
