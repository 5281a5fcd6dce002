package statement

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/statement-sifter/internal/model"
)

// Tracker threads account and symbol-summary state through a single in-order
// pass over a document's lines. Both report parsers fold every line through
// the same tracker, so later interpretation can depend on earlier account and
// symbol context.
type Tracker struct {
	Account    string
	Securities []*model.Security
	current    *model.Security
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Step folds line i into the tracker state. Lookahead reads later lines but
// never consumes them; the caller keeps advancing one line at a time.
func (t *Tracker) Step(lines []string, i int) {
	line := strings.TrimSpace(lines[i])

	if num, ok := accountNumber(line); ok {
		// A new account invalidates any prior symbol matching state.
		t.Account = num
		t.current = nil
		return
	}

	// Symbol lines before the first account header have no context to attach
	// to. That is an unmatched opportunity, never an error.
	if t.Account == "" || !isTickerLine(line) {
		return
	}

	sec := &model.Security{
		AccountNumber: t.Account,
		Symbol:        line,
	}
	nameIdx, qtyIdx := resolveSymbolBlock(lines, i)
	if nameIdx >= 0 {
		sec.Name = strings.TrimSpace(lines[nameIdx])
	}
	if qtyIdx >= 0 {
		if qty, ok := summaryQuantity(strings.TrimSpace(lines[qtyIdx])); ok {
			sec.ExpectedQuantity = qty
			sec.HasExpected = true
		}
	}
	t.Securities = append(t.Securities, sec)
	t.current = sec
}

// Current returns the most recently observed security, or nil.
func (t *Tracker) Current() *model.Security {
	return t.current
}

// Unmatched returns the securities that have not yet claimed a lot group.
func (t *Tracker) Unmatched() []*model.Security {
	var out []*model.Security
	for _, sec := range t.Securities {
		if !sec.Matched {
			out = append(out, sec)
		}
	}
	return out
}

// resolveSymbolBlock locates the lines that follow a ticker line at index i:
// the investment name (the first line within four that is non-numeric, longer
// than five characters and not a section marker) and, when the line directly
// after the name is quantity-shaped, the aggregate-quantity summary row.
// Either index is -1 when not found.
func resolveSymbolBlock(lines []string, i int) (nameIdx, qtyIdx int) {
	nameIdx, qtyIdx = -1, -1
	for j := i + 1; j <= i+4 && j < len(lines); j++ {
		cand := strings.TrimSpace(lines[j])
		if cand == "" || len(cand) <= 5 || isNumericLine(cand) || isSectionMarker(cand) {
			continue
		}
		nameIdx = j
		if j+1 < len(lines) && isQuantityShaped(strings.TrimSpace(lines[j+1])) {
			qtyIdx = j + 1
		}
		return nameIdx, qtyIdx
	}
	return nameIdx, qtyIdx
}

// summaryQuantity extracts the share quantity from a "<quantity> $<...>"
// summary row.
func summaryQuantity(line string) (decimal.Decimal, bool) {
	m := quantityLineRe.FindStringSubmatch(line)
	if m == nil {
		return decimal.Decimal{}, false
	}
	qty, err := decimal.NewFromString(strings.ReplaceAll(m[1], ",", ""))
	if err != nil {
		return decimal.Decimal{}, false
	}
	return qty, true
}
