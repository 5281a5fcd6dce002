package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/Veraticus/statement-sifter/internal/model"
)

// ReadCSV parses a canonical CSV back into transactions. It is the round-trip
// partner of WriteCSV: normalize, emit and re-read reproduces equivalent
// records.
func ReadCSV(r io.Reader) ([]model.CanonicalTransaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // rows carry a trailing empty column

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read canonical CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("canonical CSV is empty")
	}

	if err := checkHeader(rows[0]); err != nil {
		return nil, err
	}

	records := make([]model.CanonicalTransaction, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) < 14 {
			return nil, fmt.Errorf("row %d: expected 14 columns, got %d", i+2, len(row))
		}
		records = append(records, model.CanonicalTransaction{
			AccountNumber:          row[0],
			TradeDate:              row[1],
			SettlementDate:         row[2],
			TransactionType:        row[3],
			TransactionDescription: row[4],
			InvestmentName:         row[5],
			Symbol:                 row[6],
			Shares:                 row[7],
			SharePrice:             row[8],
			PrincipalAmount:        row[9],
			CommissionsAndFees:     row[10],
			NetAmount:              row[11],
			AccruedInterest:        row[12],
			AccountType:            row[13],
		})
	}
	return records, nil
}

func checkHeader(row []string) error {
	want := strings.Split(strings.TrimSuffix(Header, ","), ",")
	if len(row) < len(want) {
		return fmt.Errorf("header has %d columns, want at least %d", len(row), len(want))
	}
	for i, name := range want {
		if row[i] != name {
			return fmt.Errorf("header column %d is %q, want %q", i+1, row[i], name)
		}
	}
	return nil
}
