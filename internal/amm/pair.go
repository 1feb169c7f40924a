package amm

import (
	"bytes"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Mainnet V2 factory deployment parameters.
var (
	V2FactoryAddress = common.HexToAddress("0x5C69bEe701ef814a2B6a3EDD4B1652CB9cc5aA6f")
	V2InitCodeHash   = common.HexToHash("0x96e8ac4277198ff8b6f785478aa9a39f403cb768dd02cbee326c3e7da348845f")
)

// PairDeriver computes CREATE2 pair addresses offline, without touching
// the chain. Factory and init code hash default to the mainnet deployment.
type PairDeriver struct {
	factory      common.Address
	initCodeHash common.Hash
}

// NewPairDeriver builds a deriver; zero-valued arguments fall back to the
// mainnet factory parameters.
func NewPairDeriver(factory common.Address, initCodeHash common.Hash) *PairDeriver {
	d := &PairDeriver{factory: factory, initCodeHash: initCodeHash}
	if d.factory == (common.Address{}) {
		d.factory = V2FactoryAddress
	}
	if d.initCodeHash == (common.Hash{}) {
		d.initCodeHash = V2InitCodeHash
	}
	return d
}

// PairAddress derives the pool address for a token pair. The result is
// symmetric in its arguments: tokens are sorted before hashing.
func (d *PairDeriver) PairAddress(tokenA, tokenB common.Address) common.Address {
	token0, token1 := sortTokens(tokenA, tokenB)

	salt := crypto.Keccak256(append(token0.Bytes(), token1.Bytes()...))

	payload := make([]byte, 0, 1+common.AddressLength+2*common.HashLength)
	payload = append(payload, 0xff)
	payload = append(payload, d.factory.Bytes()...)
	payload = append(payload, salt...)
	payload = append(payload, d.initCodeHash.Bytes()...)

	digest := crypto.Keccak256(payload)
	return common.BytesToAddress(digest[12:])
}

func sortTokens(a, b common.Address) (common.Address, common.Address) {
	if bytes.Compare(a.Bytes(), b.Bytes()) < 0 {
		return a, b
	}
	return b, a
}
