// Package export canonicalizes parsed transaction records and emits the
// canonical CSV, which is also a valid input to the package's own reader.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/statement-sifter/internal/common"
	"github.com/Veraticus/statement-sifter/internal/model"
)

const (
	sourceDateLayout    = "01/02/2006"
	canonicalDateLayout = "2006-01-02"
)

// Normalize converts a raw transaction record to its canonical form. An
// unparsable date is fatal to the single record; callers log it and continue
// the batch.
func Normalize(rec model.TransactionRecord) (model.CanonicalTransaction, error) {
	settlement, err := normalizeDate(rec.SettlementDate)
	if err != nil {
		return model.CanonicalTransaction{}, fmt.Errorf("settlement date %q: %w", rec.SettlementDate, common.ErrInvalidDateFormat)
	}
	trade, err := normalizeDate(rec.TradeDate)
	if err != nil {
		return model.CanonicalTransaction{}, fmt.Errorf("trade date %q: %w", rec.TradeDate, common.ErrInvalidDateFormat)
	}

	net := normalizeCurrency(rec.Amount)
	commission := normalizeCurrency(rec.Commission)

	out := model.CanonicalTransaction{
		AccountNumber:      rec.AccountNumber,
		TradeDate:          trade,
		SettlementDate:     settlement,
		TransactionType:    rec.TransactionType,
		InvestmentName:     rec.InvestmentName,
		Symbol:             normalizeSymbol(rec.Symbol),
		Shares:             normalizeShares(rec.Shares),
		SharePrice:         normalizePrice(rec.Price),
		PrincipalAmount:    derivePrincipal(rec.TransactionType, rec.Amount, net, commission),
		CommissionsAndFees: commission,
		NetAmount:          net,
		AccruedInterest:    "0.0", // never present in source documents
		AccountType:        rec.AccountType,
	}
	return out, nil
}

// normalizeDate converts MM/DD/YYYY to YYYY-MM-DD.
func normalizeDate(s string) (string, error) {
	t, err := time.Parse(sourceDateLayout, strings.TrimSpace(s))
	if err != nil {
		return "", err
	}
	return t.Format(canonicalDateLayout), nil
}

// isAbsent reports whether a source value means "no value": empty, the
// em-dash placeholder, or its plain-hyphen rendering.
func isAbsent(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || s == "—" || s == "-" || s == "--"
}

// parseAmount parses a formatted currency or numeric string to a decimal.
func parseAmount(s string) (decimal.Decimal, bool) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// normalizeCurrency cleans a currency string to two decimals. Absent values
// and the broker's "Free" commission both mean zero.
func normalizeCurrency(s string) string {
	if isAbsent(s) || strings.EqualFold(strings.TrimSpace(s), "free") {
		return "0"
	}
	d, ok := parseAmount(s)
	if !ok {
		return "0"
	}
	return d.StringFixed(2)
}

// normalizePrice cleans a share price to two decimals. Unlike other currency
// fields an absent price maps to the empty string: a missing price is not a
// zero price.
func normalizePrice(s string) string {
	if isAbsent(s) {
		return ""
	}
	d, ok := parseAmount(s)
	if !ok {
		return ""
	}
	return d.StringFixed(2)
}

// normalizeShares formats a share count to five decimals; absent maps to zero.
func normalizeShares(s string) string {
	if isAbsent(s) {
		return "0.00000"
	}
	d, ok := parseAmount(s)
	if !ok {
		return "0.00000"
	}
	return d.StringFixed(5)
}

// normalizeSymbol maps the cash placeholder to the literal CASH symbol.
func normalizeSymbol(s string) string {
	if isAbsent(s) {
		return "CASH"
	}
	return s
}

// derivePrincipal computes the Principal Amount, the gross trade value before
// fees. Buys back the commission out of the net amount, sells add it back in,
// everything else passes the net amount through. Sign conventions captured
// from the source are preserved exactly.
func derivePrincipal(transactionType, rawAmount, net, commission string) string {
	if strings.TrimSpace(rawAmount) == "" {
		// No amount was captured at all; the identity key renders this as
		// the literal "undefined".
		return ""
	}
	n, ok := parseAmount(net)
	if !ok {
		return ""
	}
	c, okC := parseAmount(commission)
	if !okC {
		c = decimal.Zero
	}

	lower := strings.ToLower(transactionType)
	switch {
	case strings.Contains(lower, "buy"):
		return n.Sub(c).StringFixed(2)
	case strings.Contains(lower, "sell"):
		return n.Add(c).StringFixed(2)
	default:
		return n.StringFixed(2)
	}
}
