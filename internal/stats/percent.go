package stats

import "github.com/shopspring/decimal"

const ratePrecision = 2

var hundred = decimal.NewFromInt(100)

// Percentage returns num/den*100 rounded half away from zero to two
// decimals. The division is exact, so only the final ratio is rounded.
func Percentage(num, den int) float64 {
	if den == 0 {
		return 0
	}
	v := decimal.NewFromInt(int64(num)).
		Mul(hundred).
		DivRound(decimal.NewFromInt(int64(den)), ratePrecision)
	f, _ := v.Float64()
	return f
}
