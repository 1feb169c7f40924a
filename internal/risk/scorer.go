package risk

import "swapScope/internal/model"

// Signals carries the per-swap inputs to scoring. Every field is in basis
// points except TicksCrossed; a nil field means the signal does not apply
// to the swap's venue and contributes nothing.
type Signals struct {
	PoolShareBps    *uint32
	UserSlippageBps *uint32
	PriceImpactBps  *uint32
	TicksCrossed    *int32
}

// Score folds the available signals into a bounded score. Each signal
// contributes by tier; missing signals contribute zero. The total is
// capped at 100.
func Score(sig Signals) int {
	score := 0

	if sig.PoolShareBps != nil {
		switch share := *sig.PoolShareBps; {
		case share > 500:
			score += 40
		case share > 200:
			score += 25
		case share > 100:
			score += 15
		}
	}

	if sig.UserSlippageBps != nil {
		switch slip := *sig.UserSlippageBps; {
		case slip > 500:
			score += 35
		case slip > 200:
			score += 20
		case slip > 100:
			score += 10
		}
	}

	if sig.PriceImpactBps != nil {
		switch impact := *sig.PriceImpactBps; {
		case impact > 200:
			score += 35
		case impact > 100:
			score += 20
		case impact > 50:
			score += 10
		}
	}

	if sig.TicksCrossed != nil {
		switch ticks := *sig.TicksCrossed; {
		case ticks > 3:
			score += 20
		case ticks > 1:
			score += 10
		}
	}

	if score > 100 {
		score = 100
	}
	return score
}

// LevelForScore maps a score to its categorical bucket.
func LevelForScore(score int) model.RiskLevel {
	switch {
	case score < 15:
		return model.RiskMinimal
	case score < 35:
		return model.RiskLow
	case score < 65:
		return model.RiskModerate
	default:
		return model.RiskHigh
	}
}

// minimal is the assessment used whenever required upstream data is
// unavailable. Absence of information never escalates risk.
func minimal() model.RiskAssessment {
	return model.RiskAssessment{Score: 0, Level: model.RiskMinimal}
}
