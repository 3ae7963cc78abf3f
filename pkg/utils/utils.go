package utils

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var hundred = decimal.NewFromInt(100)

// PercentOf returns value * rate without rounding.
func PercentOf(value, rate decimal.Decimal) decimal.Decimal {
	return value.Mul(rate)
}

// RoundCurrency rounds to 2 decimal places for display
func RoundCurrency(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// FormatBRL renders an amount the way the dashboard shows it, e.g. "R$ 1.234,50".
func FormatBRL(d decimal.Decimal) string {
	p := message.NewPrinter(language.BrazilianPortuguese)
	f, _ := RoundCurrency(d).Float64()
	return p.Sprintf("R$ %.2f", f)
}

// PercentChange returns (current - previous) / previous * 100, rounded to
// 2 places. A zero previous value yields 100 when current grew and 0 otherwise.
func PercentChange(previous, current decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		if current.IsPositive() {
			return hundred
		}
		return decimal.Zero
	}
	return current.Sub(previous).Div(previous).Mul(hundred).Round(2)
}

// MonthStart returns midnight of the first day of t's month
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// SameMonth reports whether a and b fall in the same calendar month.
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// PeriodRange resolves a report preset to a [from, to) range relative to now.
// ok is false for "all" and for unknown presets.
func PeriodRange(period string, now time.Time) (from, to time.Time, ok bool) {
	start := MonthStart(now)
	switch period {
	case "thisMonth":
		return start, start.AddDate(0, 1, 0), true
	case "lastMonth":
		return start.AddDate(0, -1, 0), start, true
	case "last3Months":
		return start.AddDate(0, -3, 0), now, true
	case "last6Months":
		return start.AddDate(0, -6, 0), now, true
	case "thisYear":
		yearStart := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		return yearStart, yearStart.AddDate(1, 0, 0), true
	}
	return time.Time{}, time.Time{}, false
}
