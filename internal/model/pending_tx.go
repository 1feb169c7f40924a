package model

import (
	"encoding/json"
)

// PendingTx is the normalized representation of a mempool transaction,
// both for live processing and for JSONL capture/replay. Value and
// GasPrice are decimal strings, Data is 0x-prefixed hex.
type PendingTx struct {
	Hash     string `json:"hash"`
	From     string `json:"from"`
	To       string `json:"to"`
	Data     string `json:"data"`
	Value    string `json:"value"`
	GasPrice string `json:"gas_price"`
	SeenAt   string `json:"seen_at"`
}

// MarshalJSON ensures PendingTx is encoded with stable field names.
func (tx PendingTx) MarshalJSON() ([]byte, error) {
	type Alias PendingTx
	return json.Marshal(Alias(tx))
}

// UnmarshalJSON decodes a PendingTx from JSON.
func (tx *PendingTx) UnmarshalJSON(data []byte) error {
	type Alias PendingTx
	var a Alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*tx = PendingTx(a)
	return nil
}
