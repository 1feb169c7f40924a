package alert

import (
	"math/big"
	"strings"
)

// FormatUnits renders a raw token amount as a decimal string scaled by
// the token's decimals, with trailing zeros trimmed. Nil renders as "0".
func FormatUnits(amount *big.Int, decimals uint8) string {
	if amount == nil || amount.Sign() == 0 {
		return "0"
	}

	unit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	whole, frac := new(big.Int).QuoRem(new(big.Int).Set(amount), unit, new(big.Int))

	if frac.Sign() == 0 {
		return whole.String()
	}

	digits := frac.String()
	for len(digits) < int(decimals) {
		digits = "0" + digits
	}
	digits = strings.TrimRight(digits, "0")
	return whole.String() + "." + digits
}

// FormatGwei renders a wei amount in gwei.
func FormatGwei(wei *big.Int) string {
	if wei == nil {
		return ""
	}
	return FormatUnits(wei, 9)
}
