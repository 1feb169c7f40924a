package dex

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"swapScope/internal/model"
)

// V2Decoder decodes swap calls against the V2 router.
//
// The SupportingFeeOnTransferTokens variants map to the same fields as
// their plain counterparts. For ETH-input methods the attached transaction
// value stands in for amountIn (or amountInMax for swapETHForExactTokens),
// since the input amount is not part of the argument list.
type V2Decoder struct {
	router abi.ABI
}

// NewV2Decoder builds a V2 router calldata decoder.
func NewV2Decoder() (*V2Decoder, error) {
	router, err := V2RouterABI()
	if err != nil {
		return nil, err
	}
	return &V2Decoder{router: router}, nil
}

func (d *V2Decoder) Kind() model.RouterKind { return model.RouterV2 }

// Decode attempts to match data against the known V2 swap methods.
func (d *V2Decoder) Decode(data []byte, value *big.Int) (model.Swap, bool) {
	method, argData, ok := methodByData(d.router, data)
	if !ok {
		return model.Swap{}, false
	}

	values, err := method.Inputs.Unpack(argData)
	if err != nil {
		return model.Swap{}, false
	}

	swap := model.Swap{
		Kind:   model.RouterV2,
		Venue:  model.RouterV2,
		Method: method.Name,
	}

	switch method.Name {
	case "swapExactTokensForTokens",
		"swapExactTokensForTokensSupportingFeeOnTransferTokens",
		"swapExactTokensForETH",
		"swapExactTokensForETHSupportingFeeOnTransferTokens":
		amountIn, ok0 := asAmount(values, 0)
		amountOutMin, ok1 := asAmount(values, 1)
		path, ok2 := asAddressSlice(values, 2)
		if !ok0 || !ok1 || !ok2 {
			return model.Swap{}, false
		}
		swap.AmountIn = amountIn
		swap.AmountOutMin = amountOutMin
		swap.Tokens = lowerPath(path)

	case "swapExactETHForTokens",
		"swapExactETHForTokensSupportingFeeOnTransferTokens":
		amountOutMin, ok0 := asAmount(values, 0)
		path, ok1 := asAddressSlice(values, 1)
		if !ok0 || !ok1 {
			return model.Swap{}, false
		}
		swap.AmountIn = valueOrZero(value)
		swap.AmountOutMin = amountOutMin
		swap.Tokens = lowerPath(path)

	case "swapTokensForExactTokens", "swapTokensForExactETH":
		amountOut, ok0 := asAmount(values, 0)
		amountInMax, ok1 := asAmount(values, 1)
		path, ok2 := asAddressSlice(values, 2)
		if !ok0 || !ok1 || !ok2 {
			return model.Swap{}, false
		}
		swap.AmountOut = amountOut
		swap.AmountInMax = amountInMax
		swap.Tokens = lowerPath(path)

	case "swapETHForExactTokens":
		amountOut, ok0 := asAmount(values, 0)
		path, ok1 := asAddressSlice(values, 1)
		if !ok0 || !ok1 {
			return model.Swap{}, false
		}
		swap.AmountOut = amountOut
		swap.AmountInMax = valueOrZero(value)
		swap.Tokens = lowerPath(path)

	default:
		return model.Swap{}, false
	}

	if len(swap.Tokens) < 2 {
		return model.Swap{}, false
	}
	return swap, true
}

func asAmount(values []interface{}, i int) (*big.Int, bool) {
	if i >= len(values) {
		return nil, false
	}
	v, ok := values[i].(*big.Int)
	if !ok || v == nil {
		return nil, false
	}
	return new(big.Int).Set(v), true
}

func asAddressSlice(values []interface{}, i int) ([]common.Address, bool) {
	if i >= len(values) {
		return nil, false
	}
	v, ok := values[i].([]common.Address)
	if !ok {
		return nil, false
	}
	return v, true
}

func valueOrZero(value *big.Int) *big.Int {
	if value == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(value)
}
