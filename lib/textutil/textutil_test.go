package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStripDiacritics(t *testing.T) {
	cases := map[string]string{
		"ecológica": "ecologica",
		"Córdoba":   "Cordoba",
		"comuna":    "comuna",
		"":          "",
	}
	for in, expect := range cases {
		require.Equal(t, expect, StripDiacritics(in))
	}
}

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"  Ecológica \t":   "ecologica",
		"Precio  Comuna\n": "precio comuna",
		"FECHA":            "fecha",
		"Marcona (€/kg)":   "marcona (€/kg)",
	}
	for in, expect := range cases {
		require.Equal(t, expect, Normalize(in))
	}
}

func TestContainsAny(t *testing.T) {
	require.True(t, ContainsAny("Precio Comuna", []string{"comuna", "marcona"}))
	require.False(t, ContainsAny("Fecha", []string{"comuna", "marcona"}))
}
