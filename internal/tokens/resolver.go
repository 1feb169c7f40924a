package tokens

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"swapScope/internal/amm"
	"swapScope/internal/dex"
	"swapScope/internal/model"
)

// Resolver loads ERC20 metadata over RPC and memoizes it. Resolution never
// fails: tokens whose calls revert get placeholder metadata with 18
// decimals, which is also cached so a broken token is probed once.
type Resolver struct {
	caller amm.ContractCaller
	cache  *MetaCache
	logger *zap.Logger
}

// NewResolver builds a Resolver; a nil cache gets a fresh one.
func NewResolver(caller amm.ContractCaller, cache *MetaCache, logger *zap.Logger) *Resolver {
	if cache == nil {
		cache = NewMetaCache()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{caller: caller, cache: cache, logger: logger}
}

// Resolve returns metadata for the token address, hitting the chain only
// on a cache miss.
func (r *Resolver) Resolve(ctx context.Context, token common.Address) model.TokenMeta {
	if meta, ok := r.cache.Get(token); ok {
		return meta
	}

	meta, err := r.fetch(ctx, token)
	if err != nil {
		r.logger.Debug("token metadata fetch failed",
			zap.String("token", token.Hex()),
			zap.Error(err))
		meta = model.TokenMeta{
			Address:  strings.ToLower(token.Hex()),
			Decimals: 18,
			Symbol:   "???",
			Name:     "Unknown",
		}
	}
	r.cache.Set(token, meta)
	return meta
}

func (r *Resolver) fetch(ctx context.Context, token common.Address) (model.TokenMeta, error) {
	meta := model.TokenMeta{Address: strings.ToLower(token.Hex())}

	stringABI, err := dex.ERC20StringABI()
	if err != nil {
		return meta, fmt.Errorf("parse erc20 string abi: %w", err)
	}
	bytes32ABI, err := dex.ERC20Bytes32ABI()
	if err != nil {
		return meta, fmt.Errorf("parse erc20 bytes32 abi: %w", err)
	}

	call := func(method string, parsed abi.ABI) ([]interface{}, error) {
		data, err := parsed.Pack(method)
		if err != nil {
			return nil, fmt.Errorf("pack %s: %w", method, err)
		}
		msg := ethereum.CallMsg{To: &token, Data: data}
		resp, err := r.caller.CallContract(ctx, msg, nil)
		if err != nil {
			return nil, fmt.Errorf("call %s: %w", method, err)
		}
		values, err := parsed.Unpack(method, resp)
		if err != nil {
			return nil, fmt.Errorf("unpack %s: %w", method, err)
		}
		return values, nil
	}

	values, err := call("decimals", stringABI)
	if err != nil {
		return meta, err
	}
	decimals, err := asUint8(values[0])
	if err != nil {
		return meta, err
	}
	meta.Decimals = decimals

	// Some early tokens return bytes32 for symbol/name; try the string
	// shape first and fall back.
	if values, err := call("symbol", stringABI); err == nil {
		if symbol, ok := values[0].(string); ok {
			meta.Symbol = symbol
		}
	} else if values, err := call("symbol", bytes32ABI); err == nil {
		if symbol, ok := bytes32ToString(values[0]); ok {
			meta.Symbol = symbol
		}
	} else {
		r.logger.Debug("symbol call failed", zap.String("token", token.Hex()), zap.Error(err))
	}
	if meta.Symbol == "" {
		meta.Symbol = "???"
	}

	if values, err := call("name", stringABI); err == nil {
		if name, ok := values[0].(string); ok {
			meta.Name = name
		}
	} else if values, err := call("name", bytes32ABI); err == nil {
		if name, ok := bytes32ToString(values[0]); ok {
			meta.Name = name
		}
	} else {
		r.logger.Debug("name call failed", zap.String("token", token.Hex()), zap.Error(err))
	}

	return meta, nil
}

func bytes32ToString(value interface{}) (string, bool) {
	switch v := value.(type) {
	case [32]byte:
		return string(bytes.TrimRight(v[:], "\x00")), true
	case []byte:
		return string(bytes.TrimRight(v, "\x00")), true
	default:
		return "", false
	}
}

func asUint8(value interface{}) (uint8, error) {
	switch v := value.(type) {
	case uint8:
		return v, nil
	case uint16:
		return uint8(v), nil
	case uint32:
		return uint8(v), nil
	case uint64:
		return uint8(v), nil
	default:
		return 0, fmt.Errorf("unsupported uint8 type %T", value)
	}
}
