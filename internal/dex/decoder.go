package dex

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"swapScope/internal/model"
)

// Decoder maps raw calldata to a canonical Swap. A false return is a
// decode-miss: the data does not match this router family. Wrong decoder
// and corrupt calldata both resolve to "no swap".
type Decoder interface {
	Kind() model.RouterKind
	Decode(data []byte, value *big.Int) (model.Swap, bool)
}

// TxDecoder classifies a transaction destination and runs the matching
// calldata decoder.
type TxDecoder struct {
	registry  *Registry
	v2        *V2Decoder
	v3        *V3Decoder
	universal *UniversalDecoder
}

// NewTxDecoder builds the full decoder set over the given registry.
func NewTxDecoder(registry *Registry) (*TxDecoder, error) {
	v2, err := NewV2Decoder()
	if err != nil {
		return nil, err
	}
	v3, err := NewV3Decoder()
	if err != nil {
		return nil, err
	}
	universal, err := NewUniversalDecoder(v3, v2)
	if err != nil {
		return nil, err
	}
	return &TxDecoder{registry: registry, v2: v2, v3: v3, universal: universal}, nil
}

// Decode resolves the router for the destination and decodes the calldata.
// Unknown destination or unmatched calldata returns ok == false.
func (d *TxDecoder) Decode(to common.Address, data []byte, value *big.Int) (model.Swap, bool) {
	kind, ok := d.registry.Classify(to)
	if !ok {
		return model.Swap{}, false
	}
	switch kind {
	case model.RouterV2:
		return d.v2.Decode(data, value)
	case model.RouterV3:
		return d.v3.Decode(data, value)
	case model.RouterUniversal:
		return d.universal.Decode(data, value)
	default:
		return model.Swap{}, false
	}
}

// methodByData resolves the called method from the 4-byte selector.
func methodByData(router abi.ABI, data []byte) (*abi.Method, []byte, bool) {
	if len(data) < 4 {
		return nil, nil, false
	}
	method, err := router.MethodById(data[:4])
	if err != nil || method == nil {
		return nil, nil, false
	}
	return method, data[4:], true
}

func lowerHex(addr common.Address) string {
	return strings.ToLower(addr.Hex())
}

func lowerPath(addrs []common.Address) []string {
	out := make([]string, 0, len(addrs))
	for _, addr := range addrs {
		out = append(out, lowerHex(addr))
	}
	return out
}

func copyBig(v *big.Int) *big.Int {
	if v == nil {
		return nil
	}
	return new(big.Int).Set(v)
}
