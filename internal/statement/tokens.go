// Package statement reconstructs structured records from reflowed brokerage
// statement text. The source documents have no stable schema: field boundaries
// shift with word-wrap, tables render in more than one row layout, and
// lot-detail sections carry no security identifier of their own. Everything in
// this package is a heuristic scanner over that input.
package statement

import (
	"regexp"
	"strings"
)

// Placeholder is the em-dash brokers print for an absent value.
const Placeholder = "—"

var (
	dateTokenRe     = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)
	datePrefixRe    = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}\b`)
	currencyRe      = regexp.MustCompile(`^-?\$-?[\d,]+(?:\.\d+)?$`)
	numericRe       = regexp.MustCompile(`^-?[\d,]+(?:\.\d+)?$`)
	adjustmentRe    = regexp.MustCompile(`^[+-]\$[\d,]+(?:\.\d+)?`)
	tickerLineRe    = regexp.MustCompile(`^[A-Z]{1,5}(?:[ .][A-Z])?$`)
	symbolTokenRe   = regexp.MustCompile(`^[A-Z]{1,10}$`)
	accountHeaderRe = regexp.MustCompile(`^Brokerage Account\s*[—–-]+\s*(\d{8})\b`)
	quantityLineRe  = regexp.MustCompile(`^([\d,]+(?:\.\d+)?)\s+\$`)
	numericLineRe   = regexp.MustCompile(`^[\d.,%$\s()-]+$`)
	pageFooterRe    = regexp.MustCompile(`(?i)^page\s+\d+\s+of\s+\d+`)
)

func isDateToken(tok string) bool     { return dateTokenRe.MatchString(tok) }
func isCurrencyToken(tok string) bool { return currencyRe.MatchString(tok) }
func isNumericToken(tok string) bool  { return numericRe.MatchString(tok) }

func isPlaceholderToken(tok string) bool {
	return tok == Placeholder || tok == "-" || tok == "--"
}

func isAccountTypeToken(tok string) bool {
	return tok == "CASH" || tok == "MARGIN"
}

// accountNumber extracts the 8-digit account number from a
// "Brokerage Account — NNNNNNNN" header line.
func accountNumber(line string) (string, bool) {
	m := accountHeaderRe.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// isTickerLine reports whether a line is exactly a 1-5 letter ticker,
// optionally with a single trailing class letter.
func isTickerLine(line string) bool {
	return tickerLineRe.MatchString(line)
}

// isDateShaped reports whether a line starts with an MM/DD/YYYY date.
func isDateShaped(line string) bool {
	return datePrefixRe.MatchString(line)
}

// isQuantityShaped reports whether a line starts with a decimal number
// followed by a dollar amount, the shape of lot quantity rows and symbol
// summary rows.
func isQuantityShaped(line string) bool {
	return quantityLineRe.MatchString(line)
}

// isAdjustmentLine reports whether a line is a wash-sale basis adjustment
// annotation, which begins with a signed dollar amount.
func isAdjustmentLine(line string) bool {
	return adjustmentRe.MatchString(line)
}

// isNumericLine reports whether a line is made up entirely of numbers,
// currency symbols and punctuation. Such lines can never be investment names.
func isNumericLine(line string) bool {
	return numericLineRe.MatchString(line)
}

// isTransactionStart reports whether a line begins a new transaction record:
// two date-like tokens separated by whitespace.
func isTransactionStart(line string) bool {
	fields := strings.Fields(line)
	return len(fields) >= 2 && isDateToken(fields[0]) && isDateToken(fields[1])
}

// isLotDetailsMarker recognizes the explicit section marker that introduces
// lot-detail rows in the second realized-gains arrangement.
func isLotDetailsMarker(line string) bool {
	return strings.Contains(strings.ToLower(line), "lot details")
}

// isFootnoteLine recognizes the wash-sale, disallowed-loss and informational
// footnotes that can precede a lot-details section. They are skipped without
// being consumed as data.
func isFootnoteLine(line string) bool {
	if line == "" {
		return false
	}
	if strings.HasPrefix(line, "*") || strings.HasPrefix(line, "†") {
		return true
	}
	lower := strings.ToLower(line)
	return strings.HasPrefix(lower, "wash sale") ||
		strings.Contains(lower, "disallowed") ||
		strings.HasPrefix(lower, "for informational purposes")
}

// isBoilerplate recognizes page footers, "continued" markers and disclosure
// text that interleave the statement body at page boundaries.
func isBoilerplate(line string) bool {
	if pageFooterRe.MatchString(line) {
		return true
	}
	lower := strings.ToLower(line)
	if strings.Contains(lower, "continued on next page") ||
		strings.Contains(lower, "continued from previous page") ||
		strings.HasPrefix(lower, "(continued") {
		return true
	}
	for _, prefix := range disclosurePrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

// disclosurePrefixes are the openings of the legal boilerplate paragraphs the
// broker repeats on every page.
var disclosurePrefixes = []string{
	"this statement is provided",
	"this information is not intended",
	"please review this statement",
	"please retain this statement",
	"securities products",
	"investment and insurance products",
}

// isColumnHeaderFragment recognizes the re-wrapped remnants of the activity
// table's own column header, which begin with the literal word "date".
func isColumnHeaderFragment(line string) bool {
	fields := strings.Fields(line)
	return len(fields) > 0 && strings.EqualFold(fields[0], "date")
}

// isSectionMarker reports whether a line is any kind of structural marker
// rather than data: an account header, a lot-details marker, boilerplate, or
// a table header fragment.
func isSectionMarker(line string) bool {
	if _, ok := accountNumber(line); ok {
		return true
	}
	return isLotDetailsMarker(line) || isBoilerplate(line) || isColumnHeaderFragment(line)
}
