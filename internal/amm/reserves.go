package amm

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"swapScope/internal/dex"
	"swapScope/internal/model"
)

// ContractCaller is the read-only chain surface the quote layer needs.
// *chain.Client satisfies it.
type ContractCaller interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

// ReserveReader reads live V2 pair state.
type ReserveReader interface {
	Reserves(ctx context.Context, pair common.Address) (model.ReserveSnapshot, error)
}

// PairReader loads V2 pair reserves over RPC.
type PairReader struct {
	caller ContractCaller
	logger *zap.Logger
}

// NewPairReader builds a PairReader.
func NewPairReader(caller ContractCaller, logger *zap.Logger) *PairReader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PairReader{caller: caller, logger: logger}
}

// Reserves fetches token0, token1 and getReserves for the pair at the
// latest block.
func (r *PairReader) Reserves(ctx context.Context, pair common.Address) (model.ReserveSnapshot, error) {
	pairABI, err := dex.V2PairABI()
	if err != nil {
		return model.ReserveSnapshot{}, fmt.Errorf("parse pair abi: %w", err)
	}

	values, err := callMethod(ctx, r.caller, pair, pairABI, "token0")
	if err != nil {
		return model.ReserveSnapshot{}, err
	}
	token0, err := asAddress(values[0])
	if err != nil {
		return model.ReserveSnapshot{}, fmt.Errorf("token0: %w", err)
	}

	values, err = callMethod(ctx, r.caller, pair, pairABI, "token1")
	if err != nil {
		return model.ReserveSnapshot{}, err
	}
	token1, err := asAddress(values[0])
	if err != nil {
		return model.ReserveSnapshot{}, fmt.Errorf("token1: %w", err)
	}

	values, err = callMethod(ctx, r.caller, pair, pairABI, "getReserves")
	if err != nil {
		return model.ReserveSnapshot{}, err
	}
	if len(values) < 2 {
		return model.ReserveSnapshot{}, fmt.Errorf("unexpected getReserves values: %d", len(values))
	}
	reserve0, err := asBigInt(values[0])
	if err != nil {
		return model.ReserveSnapshot{}, fmt.Errorf("reserve0: %w", err)
	}
	reserve1, err := asBigInt(values[1])
	if err != nil {
		return model.ReserveSnapshot{}, fmt.Errorf("reserve1: %w", err)
	}

	return model.ReserveSnapshot{
		Pair:     lowerAddr(pair),
		Reserve0: reserve0,
		Reserve1: reserve1,
		Token0:   lowerAddr(token0),
		Token1:   lowerAddr(token1),
	}, nil
}

func callMethod(ctx context.Context, caller ContractCaller, to common.Address, parsed abi.ABI, method string, args ...interface{}) ([]interface{}, error) {
	data, err := parsed.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}
	msg := ethereum.CallMsg{To: &to, Data: data}
	resp, err := caller.CallContract(ctx, msg, nil)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", method, err)
	}
	values, err := parsed.Unpack(method, resp)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", method, err)
	}
	return values, nil
}
