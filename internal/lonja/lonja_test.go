package lonja

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseMarket(t *testing.T) {
	m, err := ParseMarket(" Albacete ")
	require.NoError(t, err)
	require.Equal(t, Albacete, m)

	_, err = ParseMarket("madrid")
	require.Error(t, err)
}

func TestClassifyHeader(t *testing.T) {
	cases := []struct {
		header string
		expect Variety
		ok     bool
	}{
		{"Comuna", Comuna, true},
		{"Comunas", Comuna, true},
		{"Precio Marcona (€/kg)", Marcona, true},
		{"LARGUETA", Largueta, true},
		{"Ecológica", Ecologica, true},
		{"Ferraganes", Ferragnes, true},
		{"Fecha", "", false},
		{"Cotización", "", false},
		{"", "", false},
		// typo absorbed by the fuzzy pass
		{"Marconna", Marcona, true},
	}
	for _, c := range cases {
		got, ok := ClassifyHeader(c.header)
		require.Equal(t, c.ok, ok, "header %q", c.header)
		if c.ok {
			require.Equal(t, c.expect, got, "header %q", c.header)
		}
	}
}

func TestIsDateHeader(t *testing.T) {
	require.True(t, IsDateHeader("Fecha"))
	require.True(t, IsDateHeader("Date"))
	require.True(t, IsDateHeader("12/05"))
	require.False(t, IsDateHeader("Comuna"))
	require.False(t, IsDateHeader("Precio"))
}
