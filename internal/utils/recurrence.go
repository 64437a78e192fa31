package utils

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	FrequencyOneTime   = "one-time"
	FrequencyDaily     = "daily"
	FrequencyWeekly    = "weekly"
	FrequencyMonthly   = "monthly"
	FrequencyQuarterly = "quarterly"
	FrequencyYearly    = "yearly"
)

// maxOccurrences bounds NextAfter for very old start dates with a daily frequency
const maxOccurrences = 100000

// NextDate applies one frequency step to from. Month arithmetic follows time.AddDate,
// so 2024-01-31 + 1 month is 2024-03-02. The second result is false for one-time
// or unknown frequencies.
func NextDate(frequency string, from time.Time) (time.Time, bool) {
	from = from.UTC()
	switch frequency {
	case FrequencyDaily:
		return from.AddDate(0, 0, 1), true
	case FrequencyWeekly:
		return from.AddDate(0, 0, 7), true
	case FrequencyMonthly:
		return from.AddDate(0, 1, 0), true
	case FrequencyQuarterly:
		return from.AddDate(0, 3, 0), true
	case FrequencyYearly:
		return from.AddDate(1, 0, 0), true
	}
	return time.Time{}, false
}

// NextAfter steps from forward until the result is strictly after now
func NextAfter(frequency string, from, now time.Time) (time.Time, bool) {
	next, ok := NextDate(frequency, from)
	if !ok {
		return time.Time{}, false
	}
	for i := 0; !next.After(now) && i < maxOccurrences; i++ {
		next, _ = NextDate(frequency, next)
	}
	return next, true
}

// IsRecurring reports whether frequency describes a repeating schedule
func IsRecurring(frequency string) bool {
	_, ok := NextDate(frequency, time.Time{})
	return ok
}

// MonthlyFactor converts an amount paid at frequency into a monthly equivalent
func MonthlyFactor(frequency string) decimal.Decimal {
	switch frequency {
	case FrequencyDaily:
		return decimal.NewFromInt(30)
	case FrequencyWeekly:
		return decimal.NewFromInt(52).Div(decimal.NewFromInt(12))
	case FrequencyMonthly:
		return decimal.NewFromInt(1)
	case FrequencyQuarterly:
		return decimal.NewFromInt(1).Div(decimal.NewFromInt(3))
	case FrequencyYearly:
		return decimal.NewFromInt(1).Div(decimal.NewFromInt(12))
	}
	return decimal.Zero
}

// MonthlyAmount normalizes amount to a per-month figure rounded to cents
func MonthlyAmount(amount float64, frequency string) float64 {
	return Round2(decimal.NewFromFloat(amount).Mul(MonthlyFactor(frequency)))
}

// StartOfMonth returns midnight UTC on the first day of t's month
func StartOfMonth(t time.Time) time.Time {
	y, m, _ := t.UTC().Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}
