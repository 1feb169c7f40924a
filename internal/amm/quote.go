package amm

import (
	"math/big"
	"strings"

	"swapScope/internal/model"
)

var (
	feeNumerator   = big.NewInt(997)
	feeDenominator = big.NewInt(1000)

	// Fixed-point scale for the sqrt-price ratio in price impact math.
	impactScale     = new(big.Int).Exp(big.NewInt(10), big.NewInt(12), nil)
	impactHalfScale = new(big.Int).Div(impactScale, big.NewInt(2))
	bpsPerUnit      = big.NewInt(10_000)
	maxImpactBps    = big.NewInt(10_000)
)

// AmountOutV2 computes the constant-product exact-in output with the fixed
// 0.30% fee:
//
//	floor(amountIn*997*reserveOut / (reserveIn*1000 + amountIn*997))
//
// All arithmetic is exact big.Int; a nil or zero operand yields zero.
func AmountOutV2(amountIn, reserveIn, reserveOut *big.Int) *big.Int {
	if amountIn == nil || reserveIn == nil || reserveOut == nil {
		return new(big.Int)
	}
	if amountIn.Sign() == 0 || reserveIn.Sign() == 0 || reserveOut.Sign() == 0 {
		return new(big.Int)
	}

	amountInWithFee := new(big.Int).Mul(amountIn, feeNumerator)
	numerator := new(big.Int).Mul(amountInWithFee, reserveOut)
	denominator := new(big.Int).Mul(reserveIn, feeDenominator)
	denominator.Add(denominator, amountInWithFee)
	return numerator.Div(numerator, denominator)
}

// PriceImpactBps derives the price movement in basis points from the sqrt
// prices before and after a simulated trade. The price ratio is the square
// of the sqrt-price ratio; both are carried in 10^12 fixed point so the
// whole computation stays in integers. Result is clamped to 10000.
func PriceImpactBps(sqrtBefore, sqrtAfter *big.Int) uint32 {
	if sqrtBefore == nil || sqrtBefore.Sign() == 0 || sqrtAfter == nil {
		return 0
	}

	ratio := new(big.Int).Mul(sqrtAfter, impactScale)
	ratio.Div(ratio, sqrtBefore)

	squared := new(big.Int).Mul(ratio, ratio)
	squared.Div(squared, impactScale)

	diff := new(big.Int).Sub(squared, impactScale)
	diff.Abs(diff)

	bps := new(big.Int).Mul(diff, bpsPerUnit)
	bps.Add(bps, impactHalfScale)
	bps.Div(bps, impactScale)

	if bps.Cmp(maxImpactBps) > 0 {
		return 10_000
	}
	return uint32(bps.Uint64())
}

// OrientReserves resolves which reserve backs the input token by comparing
// the token address against the snapshot's token0, case-insensitively.
// ok is false when the token belongs to neither side of the pair.
func OrientReserves(snap model.ReserveSnapshot, tokenIn string) (reserveIn, reserveOut *big.Int, ok bool) {
	switch {
	case strings.EqualFold(tokenIn, snap.Token0):
		return snap.Reserve0, snap.Reserve1, true
	case strings.EqualFold(tokenIn, snap.Token1):
		return snap.Reserve1, snap.Reserve0, true
	default:
		return nil, nil, false
	}
}
