package amm

import (
	"math/big"
	"testing"

	"swapScope/internal/model"
)

func TestAmountOutV2Exact(t *testing.T) {
	got := AmountOutV2(big.NewInt(1000), big.NewInt(1_000_000), big.NewInt(2_000_000))

	// floor(1000*997*2000000 / (1000000*1000 + 1000*997))
	want := new(big.Int).Mul(big.NewInt(1000*997), big.NewInt(2_000_000))
	den := new(big.Int).Add(big.NewInt(1_000_000_000), big.NewInt(997_000))
	want.Div(want, den)

	if got.Cmp(want) != 0 {
		t.Fatalf("amountOut mismatch: %s != %s", got, want)
	}
	if got.Cmp(big.NewInt(1992)) != 0 {
		t.Fatalf("amountOut mismatch: %s != 1992", got)
	}
}

func TestAmountOutV2ZeroOperands(t *testing.T) {
	cases := [][3]*big.Int{
		{big.NewInt(0), big.NewInt(10), big.NewInt(10)},
		{big.NewInt(10), big.NewInt(0), big.NewInt(10)},
		{big.NewInt(10), big.NewInt(10), big.NewInt(0)},
		{nil, big.NewInt(10), big.NewInt(10)},
	}
	for i, c := range cases {
		if out := AmountOutV2(c[0], c[1], c[2]); out.Sign() != 0 {
			t.Fatalf("case %d: expected zero output, got %s", i, out)
		}
	}
}

func TestAmountOutV2LargeAmounts(t *testing.T) {
	// 10^18 in against 1000*10^18 / 2_000_000*10^6 reserves; the
	// intermediate numerator exceeds 256 bits of headroom comfortably.
	amountIn, _ := new(big.Int).SetString("1000000000000000000", 10)
	reserveIn, _ := new(big.Int).SetString("1000000000000000000000", 10)
	reserveOut, _ := new(big.Int).SetString("2000000000000", 10)

	got := AmountOutV2(amountIn, reserveIn, reserveOut)

	withFee := new(big.Int).Mul(amountIn, big.NewInt(997))
	num := new(big.Int).Mul(withFee, reserveOut)
	den := new(big.Int).Mul(reserveIn, big.NewInt(1000))
	den.Add(den, withFee)
	want := num.Div(num, den)

	if got.Cmp(want) != 0 {
		t.Fatalf("amountOut mismatch: %s != %s", got, want)
	}
	if got.Sign() <= 0 || got.Cmp(reserveOut) >= 0 {
		t.Fatalf("amountOut out of range: %s", got)
	}
}

func TestPriceImpactBps(t *testing.T) {
	if bps := PriceImpactBps(big.NewInt(1_000_000), big.NewInt(1_000_000)); bps != 0 {
		t.Fatalf("no move should be 0 bps, got %d", bps)
	}

	// 0.5% sqrt-price move, price ratio 1.005^2 = 1.010025, rounds to
	// 100 bps.
	if bps := PriceImpactBps(big.NewInt(1_000_000), big.NewInt(1_005_000)); bps != 100 {
		t.Fatalf("expected 100 bps, got %d", bps)
	}

	// Doubling the sqrt price quadruples the price; clamped at 10000.
	if bps := PriceImpactBps(big.NewInt(1_000_000), big.NewInt(2_000_000)); bps != 10_000 {
		t.Fatalf("expected clamp at 10000 bps, got %d", bps)
	}

	// Downward moves count the same as upward moves.
	if bps := PriceImpactBps(big.NewInt(1_005_000), big.NewInt(1_000_000)); bps == 0 {
		t.Fatalf("downward move must produce impact")
	}

	if bps := PriceImpactBps(big.NewInt(0), big.NewInt(5)); bps != 0 {
		t.Fatalf("zero before-price must yield 0 bps")
	}
	if bps := PriceImpactBps(nil, big.NewInt(5)); bps != 0 {
		t.Fatalf("nil before-price must yield 0 bps")
	}
}

func TestOrientReserves(t *testing.T) {
	snap := model.ReserveSnapshot{
		Pair:     "0xpair",
		Reserve0: big.NewInt(111),
		Reserve1: big.NewInt(222),
		Token0:   "0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2",
		Token1:   "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48",
	}

	in, out, ok := OrientReserves(snap, "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2")
	if !ok || in.Cmp(big.NewInt(111)) != 0 || out.Cmp(big.NewInt(222)) != 0 {
		t.Fatalf("token0 orientation wrong: %v %v %v", in, out, ok)
	}

	in, out, ok = OrientReserves(snap, snap.Token1)
	if !ok || in.Cmp(big.NewInt(222)) != 0 || out.Cmp(big.NewInt(111)) != 0 {
		t.Fatalf("token1 orientation wrong: %v %v %v", in, out, ok)
	}

	if _, _, ok := OrientReserves(snap, "0x6b175474e89094c44da98b954eedeac495271d0f"); ok {
		t.Fatalf("foreign token must not orient")
	}
}
