package alert

import (
	"math/big"
	"testing"
)

func TestFormatUnits(t *testing.T) {
	eth := func(s string) *big.Int {
		v, ok := new(big.Int).SetString(s, 10)
		if !ok {
			t.Fatalf("bad fixture %q", s)
		}
		return v
	}

	cases := []struct {
		amount   *big.Int
		decimals uint8
		want     string
	}{
		{nil, 18, "0"},
		{big.NewInt(0), 18, "0"},
		{eth("1000000000000000000"), 18, "1"},
		{eth("1500000000000000000"), 18, "1.5"},
		{eth("1"), 18, "0.000000000000000001"},
		{big.NewInt(1_234_567), 6, "1.234567"},
		{big.NewInt(1_230_000), 6, "1.23"},
		{big.NewInt(42), 0, "42"},
	}

	for _, tc := range cases {
		if got := FormatUnits(tc.amount, tc.decimals); got != tc.want {
			t.Fatalf("FormatUnits(%v, %d) = %q, want %q", tc.amount, tc.decimals, got, tc.want)
		}
	}
}

func TestFormatGwei(t *testing.T) {
	if got := FormatGwei(big.NewInt(25_500_000_000)); got != "25.5" {
		t.Fatalf("FormatGwei = %q, want 25.5", got)
	}
	if got := FormatGwei(nil); got != "" {
		t.Fatalf("nil wei must render empty, got %q", got)
	}
}
