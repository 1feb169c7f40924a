package amm

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"swapScope/internal/dex"
	"swapScope/internal/model"
)

// Mainnet V3 deployments.
var (
	V3FactoryAddress = common.HexToAddress("0x1F98431c8aD98523631AE4a59f267346ea31F984")
	QuoterV2Address  = common.HexToAddress("0x61fFE014bA17989E743c5F6cB21bF9697530B21e")
)

// ErrNoPool reports that the factory knows no pool for the pair and fee
// tier. Callers treat it like any other unavailable-data failure.
var ErrNoPool = errors.New("no pool for token pair and fee tier")

// QuoteOracle simulates a V3 exact-in trade against live pool state.
type QuoteOracle interface {
	QuoteExactIn(ctx context.Context, tokenIn, tokenOut common.Address, fee uint32, amountIn *big.Int) (model.QuoteResult, model.PoolState, error)
}

// QuoteExactInputSingleParams mirrors the Quoter V2 input tuple.
type QuoteExactInputSingleParams struct {
	TokenIn           common.Address
	TokenOut          common.Address
	AmountIn          *big.Int
	Fee               *big.Int
	SqrtPriceLimitX96 *big.Int
}

// V3Quoter resolves the pool via the factory, reads its pre-trade state
// and delegates the trade simulation to the Quoter V2 contract. Tick-level
// simulation is not done locally: it needs the full tick bitmap.
type V3Quoter struct {
	caller  ContractCaller
	factory common.Address
	quoter  common.Address
	logger  *zap.Logger
}

// NewV3Quoter builds a quoter; zero addresses fall back to the mainnet
// factory and Quoter V2 deployments.
func NewV3Quoter(caller ContractCaller, factory, quoter common.Address, logger *zap.Logger) *V3Quoter {
	if factory == (common.Address{}) {
		factory = V3FactoryAddress
	}
	if quoter == (common.Address{}) {
		quoter = QuoterV2Address
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &V3Quoter{caller: caller, factory: factory, quoter: quoter, logger: logger}
}

// QuoteExactIn returns the simulated quote and the pool's pre-trade state.
// Price impact is recomputed locally from the sqrt prices rather than
// trusted from the oracle.
func (q *V3Quoter) QuoteExactIn(ctx context.Context, tokenIn, tokenOut common.Address, fee uint32, amountIn *big.Int) (model.QuoteResult, model.PoolState, error) {
	pool, err := q.getPool(ctx, tokenIn, tokenOut, fee)
	if err != nil {
		return model.QuoteResult{}, model.PoolState{}, err
	}

	state, err := q.poolState(ctx, pool)
	if err != nil {
		return model.QuoteResult{}, model.PoolState{}, err
	}

	quoterABI, err := dex.QuoterV2ABI()
	if err != nil {
		return model.QuoteResult{}, model.PoolState{}, fmt.Errorf("parse quoter abi: %w", err)
	}

	values, err := callMethod(ctx, q.caller, q.quoter, quoterABI, "quoteExactInputSingle", QuoteExactInputSingleParams{
		TokenIn:           tokenIn,
		TokenOut:          tokenOut,
		AmountIn:          amountIn,
		Fee:               new(big.Int).SetUint64(uint64(fee)),
		SqrtPriceLimitX96: new(big.Int),
	})
	if err != nil {
		return model.QuoteResult{}, model.PoolState{}, err
	}
	if len(values) < 3 {
		return model.QuoteResult{}, model.PoolState{}, fmt.Errorf("unexpected quote values: %d", len(values))
	}

	amountOut, err := asBigInt(values[0])
	if err != nil {
		return model.QuoteResult{}, model.PoolState{}, fmt.Errorf("amountOut: %w", err)
	}
	sqrtAfter, err := asBigInt(values[1])
	if err != nil {
		return model.QuoteResult{}, model.PoolState{}, fmt.Errorf("sqrtPriceX96After: %w", err)
	}
	ticksBig, err := asBigInt(values[2])
	if err != nil {
		return model.QuoteResult{}, model.PoolState{}, fmt.Errorf("ticksCrossed: %w", err)
	}

	result := model.QuoteResult{
		Pool:            lowerAddr(pool),
		AmountOut:       amountOut,
		SqrtPriceBefore: new(big.Int).Set(state.SqrtPriceX96),
		SqrtPriceAfter:  sqrtAfter,
		TicksCrossed:    int32(ticksBig.Int64()),
		PriceImpactBps:  PriceImpactBps(state.SqrtPriceX96, sqrtAfter),
	}
	return result, state, nil
}

func (q *V3Quoter) getPool(ctx context.Context, tokenA, tokenB common.Address, fee uint32) (common.Address, error) {
	factoryABI, err := dex.V3FactoryABI()
	if err != nil {
		return common.Address{}, fmt.Errorf("parse factory abi: %w", err)
	}

	values, err := callMethod(ctx, q.caller, q.factory, factoryABI, "getPool",
		tokenA, tokenB, new(big.Int).SetUint64(uint64(fee)))
	if err != nil {
		return common.Address{}, err
	}
	pool, err := asAddress(values[0])
	if err != nil {
		return common.Address{}, fmt.Errorf("getPool: %w", err)
	}
	if pool == (common.Address{}) {
		return common.Address{}, ErrNoPool
	}
	return pool, nil
}

func (q *V3Quoter) poolState(ctx context.Context, pool common.Address) (model.PoolState, error) {
	poolABI, err := dex.V3PoolABI()
	if err != nil {
		return model.PoolState{}, fmt.Errorf("parse pool abi: %w", err)
	}

	values, err := callMethod(ctx, q.caller, pool, poolABI, "slot0")
	if err != nil {
		return model.PoolState{}, err
	}
	if len(values) < 2 {
		return model.PoolState{}, fmt.Errorf("unexpected slot0 values: %d", len(values))
	}
	sqrtPrice, err := asBigInt(values[0])
	if err != nil {
		return model.PoolState{}, fmt.Errorf("sqrtPriceX96: %w", err)
	}
	tickBig, err := asBigInt(values[1])
	if err != nil {
		return model.PoolState{}, fmt.Errorf("tick: %w", err)
	}
	tick, err := int24FromBig(tickBig)
	if err != nil {
		return model.PoolState{}, fmt.Errorf("tick: %w", err)
	}

	values, err = callMethod(ctx, q.caller, pool, poolABI, "liquidity")
	if err != nil {
		return model.PoolState{}, err
	}
	liquidity, err := asBigInt(values[0])
	if err != nil {
		return model.PoolState{}, fmt.Errorf("liquidity: %w", err)
	}

	return model.PoolState{
		SqrtPriceX96: sqrtPrice,
		Tick:         tick,
		Liquidity:    liquidity,
	}, nil
}
