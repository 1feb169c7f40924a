package dex

import (
	"math/big"
	"reflect"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"swapScope/internal/model"
)

var (
	testWETH = common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2")
	testUSDC = common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48")
	testDAI  = common.HexToAddress("0x6B175474E89094C44Da98b954EedeAC495271d0F")

	testRecipient = common.HexToAddress("0x4444444444444444444444444444444444444444")
	testDeadline  = big.NewInt(1_900_000_000)
)

func packV2(t *testing.T, method string, args ...interface{}) []byte {
	t.Helper()
	router, err := V2RouterABI()
	if err != nil {
		t.Fatalf("abi parse: %v", err)
	}
	data, err := router.Pack(method, args...)
	if err != nil {
		t.Fatalf("pack %s: %v", method, err)
	}
	return data
}

func TestV2DecodeExactIn(t *testing.T) {
	decoder, err := NewV2Decoder()
	if err != nil {
		t.Fatalf("decoder: %v", err)
	}

	amountIn := big.NewInt(1_000_000)
	amountOutMin := big.NewInt(900_000)
	path := []common.Address{testWETH, testUSDC}

	for _, method := range []string{
		"swapExactTokensForTokens",
		"swapExactTokensForETH",
		"swapExactTokensForTokensSupportingFeeOnTransferTokens",
		"swapExactTokensForETHSupportingFeeOnTransferTokens",
	} {
		data := packV2(t, method, amountIn, amountOutMin, path, testRecipient, testDeadline)

		swap, ok := decoder.Decode(data, nil)
		if !ok {
			t.Fatalf("%s: decode miss", method)
		}
		if swap.Kind != model.RouterV2 || swap.Venue != model.RouterV2 {
			t.Fatalf("%s: kind mismatch: %+v", method, swap)
		}
		if swap.Method != method {
			t.Fatalf("method mismatch: %s", swap.Method)
		}
		if swap.AmountIn.Cmp(amountIn) != 0 || swap.AmountOutMin.Cmp(amountOutMin) != 0 {
			t.Fatalf("%s: amounts mismatch: %+v", method, swap)
		}
		if swap.AmountOut != nil || swap.AmountInMax != nil {
			t.Fatalf("%s: exact-out fields set on exact-in swap", method)
		}
		if !reflect.DeepEqual(swap.Tokens, lowerPath(path)) {
			t.Fatalf("%s: path mismatch: %v", method, swap.Tokens)
		}
		if len(swap.Fees) != 0 {
			t.Fatalf("%s: fees must be empty for v2", method)
		}
	}
}

func TestV2DecodeETHInputUsesTxValue(t *testing.T) {
	decoder, err := NewV2Decoder()
	if err != nil {
		t.Fatalf("decoder: %v", err)
	}

	amountOutMin := big.NewInt(500)
	path := []common.Address{testWETH, testDAI}
	value := big.NewInt(1_234_567)

	data := packV2(t, "swapExactETHForTokens", amountOutMin, path, testRecipient, testDeadline)
	swap, ok := decoder.Decode(data, value)
	if !ok {
		t.Fatalf("decode miss")
	}
	if swap.AmountIn.Cmp(value) != 0 {
		t.Fatalf("amountIn should be tx value: %s", swap.AmountIn)
	}

	data = packV2(t, "swapETHForExactTokens", big.NewInt(42), path, testRecipient, testDeadline)
	swap, ok = decoder.Decode(data, value)
	if !ok {
		t.Fatalf("decode miss")
	}
	if swap.AmountInMax.Cmp(value) != 0 {
		t.Fatalf("amountInMax should be tx value: %s", swap.AmountInMax)
	}
	if swap.AmountOut.Cmp(big.NewInt(42)) != 0 {
		t.Fatalf("amountOut mismatch: %s", swap.AmountOut)
	}
}

func TestV2DecodeExactOut(t *testing.T) {
	decoder, err := NewV2Decoder()
	if err != nil {
		t.Fatalf("decoder: %v", err)
	}

	amountOut := big.NewInt(777)
	amountInMax := big.NewInt(888)
	path := []common.Address{testDAI, testWETH}

	for _, method := range []string{"swapTokensForExactTokens", "swapTokensForExactETH"} {
		data := packV2(t, method, amountOut, amountInMax, path, testRecipient, testDeadline)
		swap, ok := decoder.Decode(data, nil)
		if !ok {
			t.Fatalf("%s: decode miss", method)
		}
		if swap.AmountOut.Cmp(amountOut) != 0 || swap.AmountInMax.Cmp(amountInMax) != 0 {
			t.Fatalf("%s: amounts mismatch: %+v", method, swap)
		}
		if swap.AmountIn != nil || swap.AmountOutMin != nil {
			t.Fatalf("%s: exact-in fields set on exact-out swap", method)
		}
	}
}

func TestV2DecodeMiss(t *testing.T) {
	decoder, err := NewV2Decoder()
	if err != nil {
		t.Fatalf("decoder: %v", err)
	}

	if _, ok := decoder.Decode(nil, nil); ok {
		t.Fatalf("expected miss on empty data")
	}
	if _, ok := decoder.Decode([]byte{0xde, 0xad, 0xbe, 0xef}, nil); ok {
		t.Fatalf("expected miss on unknown selector")
	}

	// Valid selector, truncated arguments.
	data := packV2(t, "swapExactTokensForTokens",
		big.NewInt(1), big.NewInt(1),
		[]common.Address{testWETH, testUSDC}, testRecipient, testDeadline)
	if _, ok := decoder.Decode(data[:8], nil); ok {
		t.Fatalf("expected miss on truncated calldata")
	}
}
