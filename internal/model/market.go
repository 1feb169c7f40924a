package model

import "math/big"

// ReserveSnapshot is the live state of a V2 pair at read time.
// Token0/Token1 define which reserve belongs to which token; callers must
// resolve direction by comparing addresses, never by path position.
type ReserveSnapshot struct {
	Pair     string   `json:"pair"`
	Reserve0 *big.Int `json:"reserve0"`
	Reserve1 *big.Int `json:"reserve1"`
	Token0   string   `json:"token0"`
	Token1   string   `json:"token1"`
}

// PoolState is the pre-trade state of a V3 pool.
type PoolState struct {
	SqrtPriceX96 *big.Int `json:"sqrt_price_x96"`
	Tick         int32    `json:"tick"`
	Liquidity    *big.Int `json:"liquidity"`
}

// QuoteResult is the simulated outcome of a V3 exact-in trade.
type QuoteResult struct {
	Pool            string   `json:"pool"`
	AmountOut       *big.Int `json:"amount_out"`
	SqrtPriceBefore *big.Int `json:"sqrt_price_before"`
	SqrtPriceAfter  *big.Int `json:"sqrt_price_after"`
	TicksCrossed    int32    `json:"ticks_crossed"`
	PriceImpactBps  uint32   `json:"price_impact_bps"`
}
