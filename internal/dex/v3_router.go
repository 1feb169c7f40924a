package dex

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"swapScope/internal/model"
)

// ExactInputSingleParams mirrors the V3 router exactInputSingle tuple.
type ExactInputSingleParams struct {
	TokenIn           common.Address
	TokenOut          common.Address
	Fee               *big.Int
	Recipient         common.Address
	Deadline          *big.Int
	AmountIn          *big.Int
	AmountOutMinimum  *big.Int
	SqrtPriceLimitX96 *big.Int
}

// ExactInputParams mirrors the V3 router exactInput tuple.
type ExactInputParams struct {
	Path             []byte
	Recipient        common.Address
	Deadline         *big.Int
	AmountIn         *big.Int
	AmountOutMinimum *big.Int
}

// ExactOutputSingleParams mirrors the V3 router exactOutputSingle tuple.
type ExactOutputSingleParams struct {
	TokenIn           common.Address
	TokenOut          common.Address
	Fee               *big.Int
	Recipient         common.Address
	Deadline          *big.Int
	AmountOut         *big.Int
	AmountInMaximum   *big.Int
	SqrtPriceLimitX96 *big.Int
}

// ExactOutputParams mirrors the V3 router exactOutput tuple.
type ExactOutputParams struct {
	Path            []byte
	Recipient       common.Address
	Deadline        *big.Int
	AmountOut       *big.Int
	AmountInMaximum *big.Int
}

// V3Decoder decodes swap calls against the V3 swap router. Multi-hop
// paths go through the packed path codec; exact-output paths are
// re-canonicalized so the Swap always reads input->output.
type V3Decoder struct {
	router abi.ABI
}

// NewV3Decoder builds a V3 router calldata decoder.
func NewV3Decoder() (*V3Decoder, error) {
	router, err := V3RouterABI()
	if err != nil {
		return nil, err
	}
	return &V3Decoder{router: router}, nil
}

func (d *V3Decoder) Kind() model.RouterKind { return model.RouterV3 }

// Decode attempts to match data against the four V3 swap methods.
func (d *V3Decoder) Decode(data []byte, _ *big.Int) (model.Swap, bool) {
	method, argData, ok := methodByData(d.router, data)
	if !ok {
		return model.Swap{}, false
	}

	values, err := method.Inputs.Unpack(argData)
	if err != nil || len(values) != 1 {
		return model.Swap{}, false
	}

	swap := model.Swap{
		Kind:   model.RouterV3,
		Venue:  model.RouterV3,
		Method: method.Name,
	}

	switch method.Name {
	case "exactInputSingle":
		p, ok := convertParams[ExactInputSingleParams](values[0])
		if !ok {
			return model.Swap{}, false
		}
		swap.Tokens = []string{lowerHex(p.TokenIn), lowerHex(p.TokenOut)}
		swap.Fees = []uint32{feeTier(p.Fee)}
		swap.AmountIn = copyBig(p.AmountIn)
		swap.AmountOutMin = copyBig(p.AmountOutMinimum)

	case "exactInput":
		p, ok := convertParams[ExactInputParams](values[0])
		if !ok {
			return model.Swap{}, false
		}
		tokens, fees, ok := DecodePath(p.Path, false)
		if !ok {
			return model.Swap{}, false
		}
		swap.Tokens = tokens
		swap.Fees = fees
		swap.AmountIn = copyBig(p.AmountIn)
		swap.AmountOutMin = copyBig(p.AmountOutMinimum)

	case "exactOutputSingle":
		p, ok := convertParams[ExactOutputSingleParams](values[0])
		if !ok {
			return model.Swap{}, false
		}
		swap.Tokens = []string{lowerHex(p.TokenIn), lowerHex(p.TokenOut)}
		swap.Fees = []uint32{feeTier(p.Fee)}
		swap.AmountOut = copyBig(p.AmountOut)
		swap.AmountInMax = copyBig(p.AmountInMaximum)

	case "exactOutput":
		p, ok := convertParams[ExactOutputParams](values[0])
		if !ok {
			return model.Swap{}, false
		}
		tokens, fees, ok := DecodePath(p.Path, true)
		if !ok {
			return model.Swap{}, false
		}
		swap.Tokens = tokens
		swap.Fees = fees
		swap.AmountOut = copyBig(p.AmountOut)
		swap.AmountInMax = copyBig(p.AmountInMaximum)

	default:
		return model.Swap{}, false
	}

	return swap, true
}

// convertParams bridges the anonymous struct produced by abi unpacking to
// the typed params. ConvertType panics on layout mismatch, which for this
// decoder is just another decode-miss.
func convertParams[T any](value interface{}) (out T, ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	out, ok = abi.ConvertType(value, out).(T)
	return out, ok
}

func feeTier(fee *big.Int) uint32 {
	if fee == nil || !fee.IsUint64() {
		return 0
	}
	return uint32(fee.Uint64())
}
