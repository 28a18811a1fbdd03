package pricing

import "github.com/shopspring/decimal"

var (
	five    = decimal.NewFromInt(5)
	half    = decimal.RequireFromString("0.5")
	hundred = decimal.NewFromInt(100)
)

// shareScale is the number of decimal places kept for intermediate proportional shares.
const shareScale = 10

// roundCents rounds half away from zero to two decimal places.
func roundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// ceilToFive rounds up to the next multiple of 5.
func ceilToFive(d decimal.Decimal) decimal.Decimal {
	return d.Div(five).Ceil().Mul(five)
}
