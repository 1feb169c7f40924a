package amm

import (
	"bytes"
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"

	"swapScope/internal/dex"
)

// fakePair answers the three pair calls; a zero value fails all of them.
type fakePair struct {
	token0   common.Address
	token1   common.Address
	reserve0 *big.Int
	reserve1 *big.Int
}

func (f fakePair) CallContract(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	if f.reserve0 == nil {
		return nil, errors.New("execution reverted")
	}

	pairABI, err := dex.V2PairABI()
	if err != nil {
		return nil, err
	}
	switch {
	case bytes.Equal(msg.Data, pairABI.Methods["token0"].ID):
		return pairABI.Methods["token0"].Outputs.Pack(f.token0)
	case bytes.Equal(msg.Data, pairABI.Methods["token1"].ID):
		return pairABI.Methods["token1"].Outputs.Pack(f.token1)
	case bytes.Equal(msg.Data, pairABI.Methods["getReserves"].ID):
		return pairABI.Methods["getReserves"].Outputs.Pack(f.reserve0, f.reserve1, uint32(1_700_000_000))
	default:
		return nil, errors.New("unexpected call")
	}
}

func TestPairReaderReserves(t *testing.T) {
	pair := common.HexToAddress("0xB4e16d0168e52d35CaCD2c6185b44281Ec28C9Dc")
	reader := NewPairReader(fakePair{
		token0:   usdcAddr,
		token1:   wethAddr,
		reserve0: big.NewInt(123),
		reserve1: big.NewInt(456),
	}, nil)

	snap, err := reader.Reserves(context.Background(), pair)
	if err != nil {
		t.Fatalf("reserves: %v", err)
	}
	if snap.Pair != "0xb4e16d0168e52d35cacd2c6185b44281ec28c9dc" {
		t.Fatalf("pair not lowercased: %s", snap.Pair)
	}
	if snap.Token0 != "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48" || snap.Token1 != "0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2" {
		t.Fatalf("token order wrong: %s / %s", snap.Token0, snap.Token1)
	}
	if snap.Reserve0.Cmp(big.NewInt(123)) != 0 || snap.Reserve1.Cmp(big.NewInt(456)) != 0 {
		t.Fatalf("reserves wrong: %s / %s", snap.Reserve0, snap.Reserve1)
	}
}

func TestPairReaderFailure(t *testing.T) {
	reader := NewPairReader(fakePair{}, nil)
	if _, err := reader.Reserves(context.Background(), common.Address{}); err == nil {
		t.Fatal("expected error from reverting pair")
	}
}
