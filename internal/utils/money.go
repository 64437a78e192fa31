package utils

import "github.com/shopspring/decimal"

// Round2 rounds to cents
func Round2(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// Money rounds a float amount to cents
func Money(f float64) float64 {
	return Round2(decimal.NewFromFloat(f))
}

// SumMoney adds amounts without float drift
func SumMoney(amounts ...float64) float64 {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(decimal.NewFromFloat(a))
	}
	return Round2(total)
}

// Percent returns part/total*100 rounded to two places, zero when total is zero
func Percent(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	return Round2(decimal.NewFromFloat(part).Div(decimal.NewFromFloat(total)).Mul(decimal.NewFromInt(100)))
}
