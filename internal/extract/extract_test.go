package extract

import (
	"context"
	"testing"

	"github.com/franruiloz-lab/precios-almendra/internal/lonja"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestObservationsTwoRowTable(t *testing.T) {
	html := `<html><body>
	<table>
		<thead><tr><th>Fecha</th><th>Comuna</th><th>Marcona</th></tr></thead>
		<tbody>
			<tr><td>01/03/2026</td><td>5,20</td><td>7,00</td></tr>
			<tr><td>05/03/2026</td><td>5,30</td><td>—</td></tr>
		</tbody>
	</table>
	</body></html>`

	got := Observations(context.Background(), html, lonja.Albacete, Options{})
	expect := []lonja.Observation{
		{
			Date:   "2026-03-01",
			Market: lonja.Albacete,
			Prices: map[lonja.Variety]float64{lonja.Comuna: 5.20, lonja.Marcona: 7.00},
		},
		{
			// the dash fails price parsing but the row survives on comuna
			Date:   "2026-03-05",
			Market: lonja.Albacete,
			Prices: map[lonja.Variety]float64{lonja.Comuna: 5.30},
		},
	}
	diff := cmp.Diff(expect, got)
	require.Empty(t, diff)
}

func TestObservationsHeaderlessTableUsesFirstRow(t *testing.T) {
	html := `<table>
		<tr><td>Fecha</td><td>Largueta</td></tr>
		<tr><td>10/01/2026</td><td>6,05</td></tr>
	</table>`

	got := Observations(context.Background(), html, lonja.Reus, Options{})
	require.Len(t, got, 1)
	require.Equal(t, "2026-01-10", got[0].Date)
	require.Equal(t, map[lonja.Variety]float64{lonja.Largueta: 6.05}, got[0].Prices)
}

func TestObservationsSkipsUnrelatedTables(t *testing.T) {
	html := `<table>
		<tr><th>Nombre</th><th>Región</th></tr>
		<tr><td>Albacete</td><td>Castilla-La Mancha</td></tr>
	</table>`

	got := Observations(context.Background(), html, lonja.Albacete, Options{})
	require.Empty(t, got)
}

func TestObservationsDropsRowsWithoutDate(t *testing.T) {
	html := `<table>
		<thead><tr><th>Fecha</th><th>Guara</th></tr></thead>
		<tbody>
			<tr><td>sin cotización</td><td>5,70</td></tr>
			<tr><td>20/02/2026</td><td>5,75</td></tr>
		</tbody>
	</table>`

	got := Observations(context.Background(), html, lonja.Murcia, Options{})
	require.Len(t, got, 1)
	require.Equal(t, "2026-02-20", got[0].Date)
}

func TestObservationsDropsRowsWithNoParsedPrices(t *testing.T) {
	html := `<table>
		<thead><tr><th>Fecha</th><th>Comuna</th></tr></thead>
		<tbody><tr><td>20/02/2026</td><td>n/d</td></tr></tbody>
	</table>`

	got := Observations(context.Background(), html, lonja.Murcia, Options{})
	require.Empty(t, got)
}

func TestObservationsMultipleTables(t *testing.T) {
	html := `
	<table>
		<thead><tr><th>Fecha</th><th>Comuna</th></tr></thead>
		<tbody><tr><td>01/02/2026</td><td>5,40</td></tr></tbody>
	</table>
	<table>
		<thead><tr><th>Fecha</th><th>Ecológica</th></tr></thead>
		<tbody><tr><td>01/02/2026</td><td>8,10</td></tr></tbody>
	</table>`

	got := Observations(context.Background(), html, lonja.Cordoba, Options{})
	require.Len(t, got, 2)
	require.Equal(t, map[lonja.Variety]float64{lonja.Comuna: 5.40}, got[0].Prices)
	require.Equal(t, map[lonja.Variety]float64{lonja.Ecologica: 8.10}, got[1].Prices)
}

func TestObservationsRejectsImplausiblePrices(t *testing.T) {
	html := `<table>
		<thead><tr><th>Fecha</th><th>Comuna</th><th>Marcona</th></tr></thead>
		<tbody><tr><td>01/02/2026</td><td>2026</td><td>7,10</td></tr></tbody>
	</table>`

	got := Observations(context.Background(), html, lonja.Albacete, Options{})
	require.Len(t, got, 1)
	require.Equal(t, map[lonja.Variety]float64{lonja.Marcona: 7.10}, got[0].Prices)
}
