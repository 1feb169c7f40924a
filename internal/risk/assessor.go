package risk

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"swapScope/internal/amm"
	"swapScope/internal/model"
)

// Assessor scores a decoded swap against live pool state. All failures to
// obtain upstream data resolve to the minimal assessment; Assess never
// returns an error.
type Assessor struct {
	deriver  *amm.PairDeriver
	reserves amm.ReserveReader
	oracle   amm.QuoteOracle
	logger   *zap.Logger
}

// NewAssessor builds an Assessor from its collaborators.
func NewAssessor(deriver *amm.PairDeriver, reserves amm.ReserveReader, oracle amm.QuoteOracle, logger *zap.Logger) *Assessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assessor{deriver: deriver, reserves: reserves, oracle: oracle, logger: logger}
}

// Assess dispatches on the swap's venue. Universal-router swaps carry the
// venue of their decoded sub-call, so they route through the same two
// paths as direct router traffic.
func (a *Assessor) Assess(ctx context.Context, swap model.Swap) model.RiskAssessment {
	switch swap.Venue {
	case model.RouterV2:
		return a.assessV2(ctx, swap)
	case model.RouterV3:
		return a.assessV3(ctx, swap)
	default:
		return minimal()
	}
}

func (a *Assessor) assessV2(ctx context.Context, swap model.Swap) model.RiskAssessment {
	if len(swap.Tokens) < 2 {
		return minimal()
	}
	amountIn := swap.SpendAmount()
	if amountIn == nil || amountIn.Sign() <= 0 {
		return minimal()
	}

	tokenIn := swap.TokenIn()
	pair := a.deriver.PairAddress(common.HexToAddress(tokenIn), common.HexToAddress(swap.TokenOut()))

	snap, err := a.reserves.Reserves(ctx, pair)
	if err != nil {
		a.logger.Debug("reserve read failed",
			zap.String("pair", pair.Hex()),
			zap.Error(err))
		return minimal()
	}

	reserveIn, reserveOut, ok := amm.OrientReserves(snap, tokenIn)
	if !ok {
		return minimal()
	}

	expectedOut := amm.AmountOutV2(amountIn, reserveIn, reserveOut)

	var poolShare *uint32
	if reserveIn != nil && reserveIn.Sign() > 0 {
		poolShare = ratioBps(amountIn, reserveIn)
	}
	slippage := slippageBps(expectedOut, swap.DeclaredMinOut())

	score := Score(Signals{PoolShareBps: poolShare, UserSlippageBps: slippage})
	return model.RiskAssessment{
		Score:           score,
		Level:           LevelForScore(score),
		ExpectedOut:     expectedOut,
		PoolShareBps:    poolShare,
		UserSlippageBps: slippage,
	}
}

func (a *Assessor) assessV3(ctx context.Context, swap model.Swap) model.RiskAssessment {
	if len(swap.Tokens) < 2 || len(swap.Fees) < 1 {
		return minimal()
	}
	amountIn := swap.SpendAmount()
	if amountIn == nil || amountIn.Sign() <= 0 {
		return minimal()
	}

	// Only the first hop is simulated; multi-hop exposure beyond it is
	// not scored.
	quote, _, err := a.oracle.QuoteExactIn(ctx,
		common.HexToAddress(swap.TokenIn()),
		common.HexToAddress(swap.TokenOut()),
		swap.Fees[0], amountIn)
	if err != nil {
		a.logger.Debug("quote failed",
			zap.String("token_in", swap.TokenIn()),
			zap.String("token_out", swap.TokenOut()),
			zap.Error(err))
		return minimal()
	}

	slippage := slippageBps(quote.AmountOut, swap.DeclaredMinOut())
	impact := quote.PriceImpactBps
	ticks := quote.TicksCrossed

	score := Score(Signals{
		UserSlippageBps: slippage,
		PriceImpactBps:  &impact,
		TicksCrossed:    &ticks,
	})
	return model.RiskAssessment{
		Score:           score,
		Level:           LevelForScore(score),
		ExpectedOut:     quote.AmountOut,
		PriceImpactBps:  &impact,
		TicksCrossed:    &ticks,
		UserSlippageBps: slippage,
	}
}

// slippageBps returns (expectedOut - minOut) / expectedOut in basis
// points, or nil when the shortfall is not positive or expectedOut is
// zero. A zero declared floor means no tolerance was expressed, and a
// floor above the simulated output means the trade would revert, not
// that it is exposed.
func slippageBps(expectedOut, minOut *big.Int) *uint32 {
	if expectedOut == nil || expectedOut.Sign() <= 0 || minOut == nil || minOut.Sign() == 0 {
		return nil
	}
	diff := new(big.Int).Sub(expectedOut, minOut)
	if diff.Sign() <= 0 {
		return nil
	}
	return ratioBps(diff, expectedOut)
}

// ratioBps computes num/den in basis points, saturating at uint32 range.
func ratioBps(num, den *big.Int) *uint32 {
	bps := new(big.Int).Mul(num, big.NewInt(10_000))
	bps.Div(bps, den)
	v := uint32(^uint32(0))
	if bps.IsUint64() && bps.Uint64() <= uint64(^uint32(0)) {
		v = uint32(bps.Uint64())
	}
	return &v
}
