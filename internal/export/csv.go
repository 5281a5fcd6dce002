package export

import (
	"bufio"
	"io"
	"strings"

	"github.com/Veraticus/statement-sifter/internal/model"
)

// Header is the canonical CSV header, emitted verbatim. The trailing comma is
// part of the format: every row carries a final empty column.
const Header = "Account Number,Trade Date,Settlement Date,Transaction Type,Transaction Description,Investment Name,Symbol,Shares,Share Price,Principal Amount,Commissions and Fees,Net Amount,Accrued Interest,Account Type,"

// WriteCSV emits canonical transactions in the canonical CSV format. The
// emitter is hand-rolled rather than encoding/csv because the format pins an
// exact header (trailing comma included) and quotes only fields that need it.
func WriteCSV(w io.Writer, records []model.CanonicalTransaction) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(Header + "\n"); err != nil {
		return err
	}
	for i := range records {
		if _, err := bw.WriteString(formatRow(&records[i]) + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func formatRow(t *model.CanonicalTransaction) string {
	fields := []string{
		t.AccountNumber,
		t.TradeDate,
		t.SettlementDate,
		t.TransactionType,
		t.TransactionDescription,
		t.InvestmentName,
		t.Symbol,
		t.Shares,
		t.SharePrice,
		t.PrincipalAmount,
		t.CommissionsAndFees,
		t.NetAmount,
		t.AccruedInterest,
		t.AccountType,
	}
	escaped := make([]string, len(fields))
	for i, f := range fields {
		escaped[i] = escapeField(f)
	}
	// Trailing comma matches the header's final empty column.
	return strings.Join(escaped, ",") + ","
}

// escapeField wraps a field in quotes when it contains a comma, quote or
// newline, doubling any internal quotes.
func escapeField(s string) string {
	if !strings.ContainsAny(s, ",\"\n") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
