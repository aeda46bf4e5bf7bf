package chain

import (
	"math/big"
	"strings"
)

// FormatUnits renders raw as a decimal number with the given number of
// fractional digits, trimming trailing zeros ("1500000000000000000", 18 -> "1.5")
func FormatUnits(raw *big.Int, decimals uint8) string {
	if raw == nil {
		return "0"
	}
	if decimals == 0 {
		return raw.String()
	}

	neg := raw.Sign() < 0
	abs := new(big.Int).Abs(raw)
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	whole, frac := new(big.Int).QuoRem(abs, scale, new(big.Int))

	out := whole.String()
	if frac.Sign() != 0 {
		digits := frac.String()
		digits = strings.Repeat("0", int(decimals)-len(digits)) + digits
		out += "." + strings.TrimRight(digits, "0")
	}
	if neg {
		out = "-" + out
	}
	return out
}
