package model

import "math/big"

// RouterKind identifies a supported router family.
type RouterKind string

const (
	RouterV2        RouterKind = "v2"
	RouterV3        RouterKind = "v3"
	RouterUniversal RouterKind = "universal"
)

// Swap is the canonical form of a decoded pending swap.
//
// Kind records which router carried the call; Venue records which pool
// family will execute it. The two differ only for universal-router
// transactions, whose sub-calls target either V2 or V3 pools. Venue is set
// explicitly by the decoder and is never inferred from len(Fees).
type Swap struct {
	Kind   RouterKind `json:"kind"`
	Venue  RouterKind `json:"venue"`
	Method string     `json:"method"`

	// Tokens is the hop path in input->output order, lowercase hex,
	// always length >= 2. Fees carries one fee tier per hop for V3
	// venues and is empty for V2 venues (fee is fixed at 0.30%).
	Tokens []string `json:"tokens"`
	Fees   []uint32 `json:"fees,omitempty"`

	// Exactly one of {AmountIn, AmountInMax} and one of
	// {AmountOutMin, AmountOut} is non-nil, per exact-in/exact-out.
	AmountIn     *big.Int `json:"amount_in,omitempty"`
	AmountInMax  *big.Int `json:"amount_in_max,omitempty"`
	AmountOutMin *big.Int `json:"amount_out_min,omitempty"`
	AmountOut    *big.Int `json:"amount_out,omitempty"`
}

// TokenIn returns the input token of the path.
func (s Swap) TokenIn() string {
	if len(s.Tokens) == 0 {
		return ""
	}
	return s.Tokens[0]
}

// TokenOut returns the output token of the path.
func (s Swap) TokenOut() string {
	if len(s.Tokens) == 0 {
		return ""
	}
	return s.Tokens[len(s.Tokens)-1]
}

// SpendAmount returns the declared input amount: AmountIn for exact-in
// swaps, otherwise the AmountInMax spend bound. Nil if neither is set.
func (s Swap) SpendAmount() *big.Int {
	if s.AmountIn != nil {
		return s.AmountIn
	}
	return s.AmountInMax
}

// DeclaredMinOut returns the trader's output floor: AmountOutMin for
// exact-in swaps, the exact AmountOut otherwise. Nil if neither is set.
func (s Swap) DeclaredMinOut() *big.Int {
	if s.AmountOutMin != nil {
		return s.AmountOutMin
	}
	return s.AmountOut
}
