package utils

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPercentChange(t *testing.T) {
	tests := []struct {
		name     string
		previous decimal.Decimal
		current  decimal.Decimal
		expected decimal.Decimal
	}{
		{
			name:     "growth",
			previous: decimal.NewFromInt(1000),
			current:  decimal.NewFromInt(1500),
			expected: decimal.NewFromInt(50),
		},
		{
			name:     "drop",
			previous: decimal.NewFromInt(400),
			current:  decimal.NewFromInt(100),
			expected: decimal.NewFromInt(-75),
		},
		{
			name:     "no previous revenue",
			previous: decimal.Zero,
			current:  decimal.NewFromInt(10),
			expected: decimal.NewFromInt(100),
		},
		{
			name:     "nothing at all",
			previous: decimal.Zero,
			current:  decimal.Zero,
			expected: decimal.Zero,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := PercentChange(tt.previous, tt.current)
			assert.True(t, result.Equal(tt.expected),
				"Expected %v, but got %v", tt.expected, result)
		})
	}
}

func TestPeriodRange(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		period   string
		wantFrom time.Time
		wantTo   time.Time
		wantOK   bool
	}{
		{
			name:     "this month",
			period:   "thisMonth",
			wantFrom: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			wantTo:   time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
			wantOK:   true,
		},
		{
			name:     "last month",
			period:   "lastMonth",
			wantFrom: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			wantTo:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			wantOK:   true,
		},
		{
			name:     "last three months",
			period:   "last3Months",
			wantFrom: time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC),
			wantTo:   now,
			wantOK:   true,
		},
		{
			name:     "this year",
			period:   "thisYear",
			wantFrom: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			wantTo:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			wantOK:   true,
		},
		{
			name:   "all periods",
			period: "all",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to, ok := PeriodRange(tt.period, now)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantFrom, from)
				assert.Equal(t, tt.wantTo, to)
			}
		})
	}
}

func TestFormatBRL(t *testing.T) {
	out := FormatBRL(decimal.RequireFromString("1234.5"))
	assert.Contains(t, out, "R$")
	assert.Contains(t, out, "50")
}

func TestRoundCurrency(t *testing.T) {
	assert.True(t, RoundCurrency(decimal.RequireFromString("2.345")).Equal(decimal.RequireFromString("2.35")))
	assert.True(t, RoundCurrency(decimal.RequireFromString("-30")).Equal(decimal.NewFromInt(-30)))
}
