package model

// AlertRecord is the flattened (swap, assessment) pair handed to sinks.
// Big amounts are decimal strings so the record survives JSON and SQL
// without precision loss.
type AlertRecord struct {
	TxHash       string     `json:"tx_hash"`
	From         string     `json:"from"`
	Router       RouterKind `json:"router"`
	Venue        RouterKind `json:"venue"`
	Method       string     `json:"method"`
	TokenIn      string     `json:"token_in"`
	TokenOut     string     `json:"token_out"`
	SymbolIn     string     `json:"symbol_in"`
	SymbolOut    string     `json:"symbol_out"`
	AmountIn     string     `json:"amount_in,omitempty"`
	MinOut       string     `json:"min_out,omitempty"`
	ExpectedOut  string     `json:"expected_out,omitempty"`
	GasPriceGwei string     `json:"gas_price_gwei,omitempty"`

	Score           int       `json:"score"`
	Level           RiskLevel `json:"level"`
	PriceImpactBps  *uint32   `json:"price_impact_bps,omitempty"`
	TicksCrossed    *int32    `json:"ticks_crossed,omitempty"`
	PoolShareBps    *uint32   `json:"pool_share_bps,omitempty"`
	UserSlippageBps *uint32   `json:"user_slippage_bps,omitempty"`

	CreatedAt string `json:"created_at"`
}
