package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/statement-sifter/internal/model"
)

func sampleTransaction() model.CanonicalTransaction {
	return model.CanonicalTransaction{
		AccountNumber:      "12345678",
		TradeDate:          "2025-11-25",
		SettlementDate:     "2025-11-20",
		TransactionType:    "Buy",
		InvestmentName:     "Apple Inc",
		Symbol:             "AAPL",
		Shares:             "10.00000",
		SharePrice:         "150.00",
		PrincipalAmount:    "-1505.00",
		CommissionsAndFees: "5.00",
		NetAmount:          "-1500.00",
		AccruedInterest:    "0.0",
		AccountType:        "CASH",
	}
}

func TestWriteCSVHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	assert.Equal(t,
		"Account Number,Trade Date,Settlement Date,Transaction Type,Transaction Description,Investment Name,Symbol,Shares,Share Price,Principal Amount,Commissions and Fees,Net Amount,Accrued Interest,Account Type,\n",
		buf.String())
}

func TestWriteCSVRow(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []model.CanonicalTransaction{sampleTransaction()}))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t,
		"12345678,2025-11-25,2025-11-20,Buy,,Apple Inc,AAPL,10.00000,150.00,-1505.00,5.00,-1500.00,0.0,CASH,",
		lines[1])
}

func TestWriteCSVEscapesFields(t *testing.T) {
	rec := sampleTransaction()
	rec.InvestmentName = `Fund "Growth", Class A`

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []model.CanonicalTransaction{rec}))

	assert.Contains(t, buf.String(), `"Fund ""Growth"", Class A"`)
}

func TestCSVRoundTrip(t *testing.T) {
	records := []model.CanonicalTransaction{sampleTransaction()}
	records[0].InvestmentName = "Vanguard Total, Stock Market ETF"

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, records))

	got, err := ReadCSV(&buf)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, records[0], got[0])
}

func TestReadCSVRejectsForeignHeader(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("Date,Amount\n2025-11-20,10\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "header")
}

func TestReadCSVEmptyInput(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	require.Error(t, err)
}
