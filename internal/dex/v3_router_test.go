package dex

import (
	"math/big"
	"reflect"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"swapScope/internal/model"
)

func packV3(t *testing.T, method string, params interface{}) []byte {
	t.Helper()
	router, err := V3RouterABI()
	if err != nil {
		t.Fatalf("abi parse: %v", err)
	}
	data, err := router.Pack(method, params)
	if err != nil {
		t.Fatalf("pack %s: %v", method, err)
	}
	return data
}

func TestV3DecodeExactInputSingle(t *testing.T) {
	decoder, err := NewV3Decoder()
	if err != nil {
		t.Fatalf("decoder: %v", err)
	}

	data := packV3(t, "exactInputSingle", ExactInputSingleParams{
		TokenIn:           testWETH,
		TokenOut:          testUSDC,
		Fee:               big.NewInt(500),
		Recipient:         testRecipient,
		Deadline:          testDeadline,
		AmountIn:          big.NewInt(1_000_000),
		AmountOutMinimum:  big.NewInt(990_000),
		SqrtPriceLimitX96: big.NewInt(0),
	})

	swap, ok := decoder.Decode(data, nil)
	if !ok {
		t.Fatalf("decode miss")
	}
	if swap.Kind != model.RouterV3 || swap.Venue != model.RouterV3 {
		t.Fatalf("kind mismatch: %+v", swap)
	}
	if swap.Method != "exactInputSingle" {
		t.Fatalf("method mismatch: %s", swap.Method)
	}
	want := []string{lowerHex(testWETH), lowerHex(testUSDC)}
	if !reflect.DeepEqual(swap.Tokens, want) {
		t.Fatalf("tokens mismatch: %v", swap.Tokens)
	}
	if !reflect.DeepEqual(swap.Fees, []uint32{500}) {
		t.Fatalf("fees mismatch: %v", swap.Fees)
	}
	if swap.AmountIn.Cmp(big.NewInt(1_000_000)) != 0 || swap.AmountOutMin.Cmp(big.NewInt(990_000)) != 0 {
		t.Fatalf("amounts mismatch: %+v", swap)
	}
}

func TestV3DecodeExactInputMultiHop(t *testing.T) {
	decoder, err := NewV3Decoder()
	if err != nil {
		t.Fatalf("decoder: %v", err)
	}

	path, err := EncodePath([]common.Address{testWETH, testUSDC, testDAI}, []uint32{500, 3000})
	if err != nil {
		t.Fatalf("encode path: %v", err)
	}

	data := packV3(t, "exactInput", ExactInputParams{
		Path:             path,
		Recipient:        testRecipient,
		Deadline:         testDeadline,
		AmountIn:         big.NewInt(123),
		AmountOutMinimum: big.NewInt(45),
	})

	swap, ok := decoder.Decode(data, nil)
	if !ok {
		t.Fatalf("decode miss")
	}
	wantTokens := []string{lowerHex(testWETH), lowerHex(testUSDC), lowerHex(testDAI)}
	if !reflect.DeepEqual(swap.Tokens, wantTokens) {
		t.Fatalf("tokens mismatch: %v", swap.Tokens)
	}
	if !reflect.DeepEqual(swap.Fees, []uint32{500, 3000}) {
		t.Fatalf("fees mismatch: %v", swap.Fees)
	}
}

func TestV3DecodeExactOutputReversesPath(t *testing.T) {
	decoder, err := NewV3Decoder()
	if err != nil {
		t.Fatalf("decoder: %v", err)
	}

	// Exact-output paths are encoded output-first on the wire.
	path, err := EncodePath([]common.Address{testDAI, testUSDC, testWETH}, []uint32{3000, 500})
	if err != nil {
		t.Fatalf("encode path: %v", err)
	}

	data := packV3(t, "exactOutput", ExactOutputParams{
		Path:            path,
		Recipient:       testRecipient,
		Deadline:        testDeadline,
		AmountOut:       big.NewInt(1000),
		AmountInMaximum: big.NewInt(2000),
	})

	swap, ok := decoder.Decode(data, nil)
	if !ok {
		t.Fatalf("decode miss")
	}
	wantTokens := []string{lowerHex(testWETH), lowerHex(testUSDC), lowerHex(testDAI)}
	if !reflect.DeepEqual(swap.Tokens, wantTokens) {
		t.Fatalf("path not canonicalized: %v", swap.Tokens)
	}
	if !reflect.DeepEqual(swap.Fees, []uint32{500, 3000}) {
		t.Fatalf("fees not canonicalized: %v", swap.Fees)
	}
	if swap.AmountOut.Cmp(big.NewInt(1000)) != 0 || swap.AmountInMax.Cmp(big.NewInt(2000)) != 0 {
		t.Fatalf("amounts mismatch: %+v", swap)
	}
	if swap.AmountIn != nil || swap.AmountOutMin != nil {
		t.Fatalf("exact-in fields set on exact-out swap")
	}
}

func TestV3DecodeExactOutputSingle(t *testing.T) {
	decoder, err := NewV3Decoder()
	if err != nil {
		t.Fatalf("decoder: %v", err)
	}

	data := packV3(t, "exactOutputSingle", ExactOutputSingleParams{
		TokenIn:           testUSDC,
		TokenOut:          testWETH,
		Fee:               big.NewInt(10000),
		Recipient:         testRecipient,
		Deadline:          testDeadline,
		AmountOut:         big.NewInt(55),
		AmountInMaximum:   big.NewInt(66),
		SqrtPriceLimitX96: big.NewInt(0),
	})

	swap, ok := decoder.Decode(data, nil)
	if !ok {
		t.Fatalf("decode miss")
	}
	if swap.Tokens[0] != lowerHex(testUSDC) || swap.Tokens[1] != lowerHex(testWETH) {
		t.Fatalf("tokens mismatch: %v", swap.Tokens)
	}
	if swap.Fees[0] != 10000 {
		t.Fatalf("fee mismatch: %v", swap.Fees)
	}
}

func TestV3DecodeMiss(t *testing.T) {
	decoder, err := NewV3Decoder()
	if err != nil {
		t.Fatalf("decoder: %v", err)
	}
	if _, ok := decoder.Decode([]byte{1, 2, 3}, nil); ok {
		t.Fatalf("expected miss on short data")
	}

	// V2 calldata must not decode as V3.
	v2data := packV2(t, "swapExactTokensForTokens",
		big.NewInt(1), big.NewInt(1),
		[]common.Address{testWETH, testUSDC}, testRecipient, testDeadline)
	if _, ok := decoder.Decode(v2data, nil); ok {
		t.Fatalf("expected miss on v2 calldata")
	}
}
