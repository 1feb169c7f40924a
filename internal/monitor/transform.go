package monitor

import (
	"math/big"
	"time"

	"swapScope/internal/alert"
	"swapScope/internal/model"
)

// buildAlertRecord flattens a decoded swap and its assessment into the
// sink record. Amounts are rendered as exact decimal strings scaled by
// token decimals.
func buildAlertRecord(tx model.PendingTx, swap model.Swap, assessment model.RiskAssessment, inMeta, outMeta model.TokenMeta, gasPrice *big.Int, now time.Time) model.AlertRecord {
	record := model.AlertRecord{
		TxHash:    tx.Hash,
		From:      tx.From,
		Router:    swap.Kind,
		Venue:     swap.Venue,
		Method:    swap.Method,
		TokenIn:   swap.TokenIn(),
		TokenOut:  swap.TokenOut(),
		SymbolIn:  inMeta.Symbol,
		SymbolOut: outMeta.Symbol,

		Score:           assessment.Score,
		Level:           assessment.Level,
		PriceImpactBps:  assessment.PriceImpactBps,
		TicksCrossed:    assessment.TicksCrossed,
		PoolShareBps:    assessment.PoolShareBps,
		UserSlippageBps: assessment.UserSlippageBps,

		CreatedAt: now.UTC().Format(time.RFC3339),
	}

	if amountIn := swap.SpendAmount(); amountIn != nil {
		record.AmountIn = alert.FormatUnits(amountIn, inMeta.Decimals)
	}
	if minOut := swap.DeclaredMinOut(); minOut != nil {
		record.MinOut = alert.FormatUnits(minOut, outMeta.Decimals)
	}
	if assessment.ExpectedOut != nil {
		record.ExpectedOut = alert.FormatUnits(assessment.ExpectedOut, outMeta.Decimals)
	}
	if gasPrice != nil {
		record.GasPriceGwei = alert.FormatGwei(gasPrice)
	}

	return record
}

// parseBig parses a decimal string into a big.Int; empty or malformed
// input yields nil.
func parseBig(s string) *big.Int {
	if s == "" {
		return nil
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil
	}
	return v
}
