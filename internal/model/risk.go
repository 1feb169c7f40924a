package model

import "math/big"

// RiskLevel is the categorical sandwich-risk bucket.
type RiskLevel string

const (
	RiskMinimal  RiskLevel = "MINIMAL"
	RiskLow      RiskLevel = "LOW"
	RiskModerate RiskLevel = "MODERATE"
	RiskHigh     RiskLevel = "HIGH"
)

// RiskAssessment is the scored exposure of one pending swap.
//
// Percent-shaped signals are carried in basis points so that scoring and
// serialization stay in integer arithmetic end to end; 125 bps == 1.25%.
// Optional fields are nil when the swap kind does not produce them.
type RiskAssessment struct {
	Score int       `json:"score"`
	Level RiskLevel `json:"level"`

	ExpectedOut     *big.Int `json:"expected_out,omitempty"`
	PriceImpactBps  *uint32  `json:"price_impact_bps,omitempty"`
	TicksCrossed    *int32   `json:"ticks_crossed,omitempty"`
	PoolShareBps    *uint32  `json:"pool_share_bps,omitempty"`
	UserSlippageBps *uint32  `json:"user_slippage_bps,omitempty"`
}
