package parse

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDate(t *testing.T) {
	cases := []struct {
		in     string
		expect string
		ok     bool
	}{
		{"05/02/2026", "2026-02-05", true},
		{"5/2/2026", "2026-02-05", true},
		{"05-02-2026", "2026-02-05", true},
		{"05.02.2026", "2026-02-05", true},
		{"2026-02-05", "2026-02-05", true},
		{"Jueves 05/02/2026", "2026-02-05", true},
		{"not-a-date", "", false},
		{"", "", false},
		{"2026", "", false},
	}
	for _, c := range cases {
		got, ok := Date(c.in)
		require.Equal(t, c.ok, ok, "input %q", c.in)
		require.Equal(t, c.expect, got, "input %q", c.in)
	}
}

func TestPrice(t *testing.T) {
	cases := []struct {
		in     string
		expect float64
		ok     bool
	}{
		{"5,50 €", 5.5, true},
		{"5.50", 5.5, true},
		{"5", 5, true},
		{"1", 1, true},
		{"15", 15, true},
		{"150", 0, false}, // out of plausible range
		{"0,80", 0, false},
		{"abc", 0, false},
		{"—", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		got, ok := Price(c.in)
		require.Equal(t, c.ok, ok, "input %q", c.in)
		require.Equal(t, c.expect, got, "input %q", c.in)
	}
}

func TestPriceInCustomBounds(t *testing.T) {
	got, ok := PriceIn("150", Bounds{Min: 100, Max: 200})
	require.True(t, ok)
	require.Equal(t, 150.0, got)

	_, ok = PriceIn("5,50", Bounds{Min: 100, Max: 200})
	require.False(t, ok)
}
