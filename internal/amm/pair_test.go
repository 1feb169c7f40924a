package amm

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

var (
	wethAddr = common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2")
	usdcAddr = common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48")
	daiAddr  = common.HexToAddress("0x6B175474E89094C44Da98b954EedeAC495271d0F")
)

func TestPairAddressMainnetVector(t *testing.T) {
	deriver := NewPairDeriver(common.Address{}, common.Hash{})

	// Canonical mainnet USDC/WETH pair.
	want := common.HexToAddress("0xB4e16d0168e52d35CaCD2c6185b44281Ec28C9Dc")
	got := deriver.PairAddress(wethAddr, usdcAddr)
	if got != want {
		t.Fatalf("pair address mismatch: %s != %s", got.Hex(), want.Hex())
	}
}

func TestPairAddressSymmetry(t *testing.T) {
	deriver := NewPairDeriver(common.Address{}, common.Hash{})

	pairs := [][2]common.Address{
		{wethAddr, usdcAddr},
		{usdcAddr, daiAddr},
		{daiAddr, wethAddr},
	}
	for _, pair := range pairs {
		ab := deriver.PairAddress(pair[0], pair[1])
		ba := deriver.PairAddress(pair[1], pair[0])
		if ab != ba {
			t.Fatalf("derivation not symmetric for %s/%s: %s != %s",
				pair[0].Hex(), pair[1].Hex(), ab.Hex(), ba.Hex())
		}
	}
}

func TestPairAddressDependsOnFactory(t *testing.T) {
	mainnet := NewPairDeriver(common.Address{}, common.Hash{})
	other := NewPairDeriver(common.HexToAddress("0x1111111111111111111111111111111111111111"), V2InitCodeHash)

	if mainnet.PairAddress(wethAddr, usdcAddr) == other.PairAddress(wethAddr, usdcAddr) {
		t.Fatalf("different factories must derive different addresses")
	}
}
