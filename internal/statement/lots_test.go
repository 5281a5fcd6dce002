package statement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/statement-sifter/internal/testutil"
)

func TestClassifyLot(t *testing.T) {
	tests := []struct {
		name   string
		window []string
		want   LotLayout
		ok     bool
	}{
		{
			name: "normal 3-line",
			window: []string{
				"03/15/2024\t01/02/2023\tSell First In",
				"First Out",
				"18.097 $5,000.00 $7,722.51\t$100.00 $200.00 $300.00",
			},
			want: LayoutNormal3,
			ok:   true,
		},
		{
			name: "normal 4-line",
			window: []string{
				"03/15/2024\t01/02/2023\tSell Specific",
				"Identification with",
				"extra method text",
				"2.0 $1,000.00 $1,200.00\t$30.00 $170.00 $200.00",
			},
			want: LayoutNormal4,
			ok:   true,
		},
		{
			name: "inverted 3-line",
			window: []string{
				"5.0 $2,000.00 $2,500.00 $50.00 $450.00 $500.00",
				"03/01/2024 06/15/2023",
				"Sell First In First Out",
			},
			want: LayoutInverted3,
			ok:   true,
		},
		{
			name: "no known shape",
			window: []string{
				"not a lot",
				"still not a lot",
				"nope",
			},
			ok: false,
		},
		{
			name:   "too short",
			window: []string{"03/15/2024\t01/02/2023\tSell"},
			ok:     false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout, ok := classifyLot(tt.window)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, layout)
			}
		})
	}
}

func TestGainsParserEmbeddedArrangement(t *testing.T) {
	lines := testutil.Document(
		testutil.Lines(testutil.AccountHeader("12345678")),
		testutil.SymbolSummary("DIA", "SPDR Dow Jones Industrial Average ETF", "18.097", "7,722.51"),
		testutil.Lines(
			"03/15/2024\t01/02/2023\tSell First In",
			"First Out",
			"18.097 $5,000.00 $7,722.51\t$100.00 $200.00 $300.00",
		),
	)

	result := NewGainsParser().Parse(lines)

	require.Len(t, result.Groups, 1)
	group := result.Groups[0]
	require.Len(t, group.Lots, 1)
	assert.Equal(t, "18.097", group.Quantity.String())

	lot := group.Lots[0]
	assert.Equal(t, "03/15/2024", lot.DateSold)
	assert.Equal(t, "01/02/2023", lot.DateAcquired)
	assert.Equal(t, "Sell", lot.Event)
	assert.Equal(t, "First In First Out", lot.CostBasisMethod)
	assert.Equal(t, "$5,000.00", lot.TotalCost)
	assert.Equal(t, "$7,722.51", lot.Proceeds)
	assert.Equal(t, "$100.00", lot.ShortTermGain)
	assert.Equal(t, "$200.00", lot.LongTermGain)
	assert.Equal(t, "$300.00", lot.TotalGain)

	require.Len(t, result.Tracker.Securities, 1)
	assert.Equal(t, "DIA", result.Tracker.Securities[0].Symbol)
}

func TestGainsParserLotDetailsArrangementSkipsFootnotes(t *testing.T) {
	lines := testutil.Document(
		testutil.Lines(testutil.AccountHeader("12345678")),
		testutil.SymbolSummary("SPY", "SPDR S&P 500 ETF Trust", "5.0", "2,500.00"),
		testutil.Lines(
			"Lot Details",
			"* Wash sale adjustment applied to basis",
			"Loss disallowed under IRS rules",
			"5.0 $2,000.00 $2,500.00 $50.00 $450.00 $500.00",
			"03/01/2024 06/15/2023",
			"Sell First In First Out",
		),
	)

	result := NewGainsParser().Parse(lines)

	require.Len(t, result.Groups, 1)
	group := result.Groups[0]
	require.Len(t, group.Lots, 1)
	assert.Equal(t, "5", group.Quantity.String())

	lot := group.Lots[0]
	assert.Equal(t, "03/01/2024", lot.DateSold)
	assert.Equal(t, "06/15/2023", lot.DateAcquired)
	assert.Equal(t, "Sell", lot.Event)
	assert.Equal(t, "First In First Out", lot.CostBasisMethod)
	assert.Equal(t, "$2,000.00", lot.TotalCost)
}

func TestGainsParserAdjustmentEmbeddedMidLot(t *testing.T) {
	lines := testutil.Document(
		testutil.Lines(testutil.AccountHeader("12345678")),
		testutil.SymbolSummary("DIA", "SPDR Dow Jones Industrial Average ETF", "18.097", "7,722.51"),
		testutil.Lines(
			"03/15/2024\t01/02/2023\tSell First In",
			"+$12.34",
			"First Out",
			"18.097 $5,000.00 $7,722.51\t$100.00 $200.00 $300.00",
		),
	)

	result := NewGainsParser().Parse(lines)

	// The adjustment is skipped in place: it neither breaks the surrounding
	// lot nor produces a lot of its own.
	require.Len(t, result.Groups, 1)
	require.Len(t, result.Groups[0].Lots, 1)
	assert.Equal(t, "First In First Out", result.Groups[0].Lots[0].CostBasisMethod)
	assert.Equal(t, "18.097", result.Groups[0].Quantity.String())
}

func TestGainsParserMixedLayoutsInOneSection(t *testing.T) {
	lines := testutil.Document(
		testutil.Lines(testutil.AccountHeader("12345678")),
		testutil.SymbolSummary("VTI", "Vanguard Total Stock Market ETF", "15.0", "3,800.00"),
		testutil.Lines(
			// Layout is classified per lot, not per section.
			"03/15/2024\t01/02/2023\tSell First In",
			"First Out",
			"10.0 $2,000.00 $2,500.00\t$100.00 $400.00 $500.00",
			"5.0 $1,000.00 $1,300.00 $50.00 $250.00 $300.00",
			"03/20/2024 02/10/2023",
			"Sell First In First Out",
		),
	)

	result := NewGainsParser().Parse(lines)

	require.Len(t, result.Groups, 1)
	group := result.Groups[0]
	require.Len(t, group.Lots, 2)
	assert.Equal(t, "15", group.Quantity.String())
	assert.Equal(t, "01/02/2023", group.Lots[0].DateAcquired)
	assert.Equal(t, "02/10/2023", group.Lots[1].DateAcquired)
}

func TestGainsParserStopsAtNextSymbolHeader(t *testing.T) {
	lines := testutil.Document(
		testutil.Lines(testutil.AccountHeader("12345678")),
		testutil.SymbolSummary("DIA", "SPDR Dow Jones Industrial Average ETF", "18.097", "7,722.51"),
		testutil.Lines(
			"03/15/2024\t01/02/2023\tSell First In",
			"First Out",
			"18.097 $5,000.00 $7,722.51\t$100.00 $200.00 $300.00",
		),
		testutil.SymbolSummary("SPY", "SPDR S&P 500 ETF Trust", "5.0", "2,500.00"),
		testutil.Lines(
			"5.0 $2,000.00 $2,500.00 $50.00 $450.00 $500.00",
			"03/01/2024 06/15/2023",
			"Sell First In First Out",
		),
	)

	result := NewGainsParser().Parse(lines)

	require.Len(t, result.Groups, 2)
	assert.Equal(t, "18.097", result.Groups[0].Quantity.String())
	assert.Equal(t, "5", result.Groups[1].Quantity.String())
	require.Len(t, result.Tracker.Securities, 2)
}

func TestGainsParserOpenLotWithoutDateSold(t *testing.T) {
	lines := testutil.Document(
		testutil.Lines(testutil.AccountHeader("12345678")),
		testutil.SymbolSummary("VTI", "Vanguard Total Stock Market ETF", "3.0", "760.00"),
		testutil.Lines(
			"01/02/2023\tBuy First In",
			"First Out",
			"3.0 $700.00 —\t— — —",
		),
	)

	result := NewGainsParser().Parse(lines)

	require.Len(t, result.Groups, 1)
	lot := result.Groups[0].Lots[0]
	assert.Empty(t, lot.DateSold)
	assert.Equal(t, "01/02/2023", lot.DateAcquired)
	assert.Equal(t, "Buy", lot.Event)
}
