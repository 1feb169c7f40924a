package dex

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"

	"swapScope/internal/model"
)

// UniversalDecoder decodes execute(commands, inputs[]) batches. Each input
// payload is an opaque sub-call; the decoder runs an ordered strategy list
// (V3 first, then V2) over every payload and reports the first success,
// re-tagged as a universal-router swap with the sub-call's pool family in
// Venue.
//
// Known limitation: batches carrying more than one independent swap are
// reported by their first decodable sub-call only.
type UniversalDecoder struct {
	router     abi.ABI
	strategies []Decoder
}

// NewUniversalDecoder builds a universal-router decoder over the given
// sub-call strategies, tried in order.
func NewUniversalDecoder(strategies ...Decoder) (*UniversalDecoder, error) {
	router, err := UniversalRouterABI()
	if err != nil {
		return nil, err
	}
	return &UniversalDecoder{router: router, strategies: strategies}, nil
}

func (d *UniversalDecoder) Kind() model.RouterKind { return model.RouterUniversal }

// Decode matches either execute overload and scans the input payloads.
// A batch with no decodable sub-call is a decode-miss.
func (d *UniversalDecoder) Decode(data []byte, value *big.Int) (model.Swap, bool) {
	method, argData, ok := methodByData(d.router, data)
	if !ok || method.RawName != "execute" {
		return model.Swap{}, false
	}

	values, err := method.Inputs.Unpack(argData)
	if err != nil || len(values) < 2 {
		return model.Swap{}, false
	}
	inputs, ok := values[1].([][]byte)
	if !ok {
		return model.Swap{}, false
	}

	for _, input := range inputs {
		for _, strategy := range d.strategies {
			sub, ok := strategy.Decode(input, value)
			if !ok {
				continue
			}
			sub.Kind = model.RouterUniversal
			sub.Venue = strategy.Kind()
			return sub, true
		}
	}
	return model.Swap{}, false
}
