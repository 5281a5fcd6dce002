package statement

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTransactionStart(t *testing.T) {
	tests := []struct {
		name string
		line string
		want bool
	}{
		{"two dates", "11/20/2025 11/25/2025 AAPL Apple Inc Buy", true},
		{"two dates only", "11/20/2025 11/25/2025", true},
		{"one date", "11/20/2025 AAPL Apple Inc Buy", false},
		{"no dates", "AAPL Apple Inc Buy", false},
		{"date second", "AAPL 11/20/2025 11/25/2025", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isTransactionStart(tt.line))
		})
	}
}

func TestAccountNumber(t *testing.T) {
	num, ok := accountNumber("Brokerage Account — 12345678")
	assert.True(t, ok)
	assert.Equal(t, "12345678", num)

	// Hyphen renderings of the dash are accepted too.
	num, ok = accountNumber("Brokerage Account - 87654321")
	assert.True(t, ok)
	assert.Equal(t, "87654321", num)

	_, ok = accountNumber("Brokerage Account — 1234")
	assert.False(t, ok)
	_, ok = accountNumber("Account — 12345678")
	assert.False(t, ok)
}

func TestIsTickerLine(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"DIA", true},
		{"SPY", true},
		{"GOOGL", true},
		{"BRK B", true},
		{"BRK.B", true},
		{"TOOLONG", false},
		{"dia", false},
		{"DIA ETF", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isTickerLine(tt.line), "line %q", tt.line)
	}
}

func TestLineShapes(t *testing.T) {
	assert.True(t, isDateShaped("03/15/2024\t01/02/2023\tSell First In"))
	assert.False(t, isDateShaped("18.097 $5,000.00"))

	assert.True(t, isQuantityShaped("18.097 $5,000.00 $7,722.51"))
	assert.True(t, isQuantityShaped("5.0 $2,500.00"))
	assert.False(t, isQuantityShaped("03/15/2024 01/02/2023"))
	assert.False(t, isQuantityShaped("First Out"))

	assert.True(t, isAdjustmentLine("+$12.34"))
	assert.True(t, isAdjustmentLine("-$0.55 wash sale adjustment"))
	assert.False(t, isAdjustmentLine("$12.34"))
	assert.False(t, isAdjustmentLine("12.34"))
}

func TestIsBoilerplate(t *testing.T) {
	assert.True(t, isBoilerplate("Page 3 of 12"))
	assert.True(t, isBoilerplate("(continued)"))
	assert.True(t, isBoilerplate("This statement is provided for your records."))
	assert.False(t, isBoilerplate("11/20/2025 11/25/2025 AAPL Apple Inc Buy"))
}

func TestIsFootnoteLine(t *testing.T) {
	assert.True(t, isFootnoteLine("* Wash sale adjustment applied to basis"))
	assert.True(t, isFootnoteLine("Wash sale: loss disallowed"))
	assert.True(t, isFootnoteLine("Loss disallowed under IRS rules"))
	assert.False(t, isFootnoteLine("03/15/2024 01/02/2023 Sell"))
	assert.False(t, isFootnoteLine(""))
}

func TestTokenPredicates(t *testing.T) {
	assert.True(t, isCurrencyToken("$150.0000"))
	assert.True(t, isCurrencyToken("-$1,500.00"))
	assert.True(t, isCurrencyToken("$-1,500.00"))
	assert.False(t, isCurrencyToken("1,500.00"))

	assert.True(t, isNumericToken("10"))
	assert.True(t, isNumericToken("18.097"))
	assert.True(t, isNumericToken("-3"))
	assert.False(t, isNumericToken("$10"))

	assert.True(t, isPlaceholderToken("—"))
	assert.True(t, isPlaceholderToken("-"))
	assert.False(t, isPlaceholderToken("0"))
}
