package statement

import (
	"context"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/statement-sifter/internal/model"
)

// LotLayout enumerates the row layouts realized-gains tables render in.
// Layout is classified per lot, not per section: one section can mix layouts
// across page boundaries.
type LotLayout int

const (
	// LayoutNormal3 is dates first, method continuation, then the quantity row.
	LayoutNormal3 LotLayout = iota
	// LayoutNormal4 is LayoutNormal3 with the cost-basis method wrapped onto
	// an extra line, shifting the quantity row down by one.
	LayoutNormal4
	// LayoutInverted3 is quantity row first, then the dates, then the method.
	LayoutInverted3
)

// stride is the number of data lines one lot of this layout occupies.
func (l LotLayout) stride() int {
	switch l {
	case LayoutNormal4:
		return 4
	case LayoutNormal3, LayoutInverted3:
		return 3
	default:
		return 3
	}
}

// GainsParser reconstructs cost-basis lots from a realized-gains report.
// Lots appear in two arrangements: directly after a symbol summary block, or
// after an explicit "lot details" marker that footnote lines may precede.
type GainsParser struct{}

// NewGainsParser creates a new realized-gains parser.
func NewGainsParser() *GainsParser {
	return &GainsParser{}
}

// ScanResult is the raw output of one realized-gains scan, prior to
// reconciliation.
type ScanResult struct {
	Groups  []*model.LotGroup
	Tracker *Tracker
}

// ParseFile scans a realized-gains report for lot groups and symbol context.
func (p *GainsParser) ParseFile(ctx context.Context, r io.Reader) (*ScanResult, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}
	return p.Parse(lines), nil
}

// Parse walks the document in line order, feeding the shared tracker and
// collecting one LotGroup per contiguous run of parseable lots.
func (p *GainsParser) Parse(lines []string) *ScanResult {
	result := &ScanResult{Tracker: NewTracker()}

	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])
		result.Tracker.Step(lines, i)

		switch {
		case isLotDetailsMarker(line):
			// Footnotes between the marker and the first lot are skipped
			// without being consumed as data.
			j := i + 1
			for j < len(lines) && isFootnoteLine(strings.TrimSpace(lines[j])) {
				j++
			}
			group, next := scanLots(lines, j)
			if group != nil {
				result.Groups = append(result.Groups, group)
			}
			i = next
		case isTickerLine(line) && result.Tracker.Account != "":
			// First arrangement: lots embedded directly after the symbol
			// summary block, with no explicit marker.
			group, next := scanLots(lines, symbolBlockEnd(lines, i))
			if group != nil {
				result.Groups = append(result.Groups, group)
				i = next
			} else {
				i++
			}
		default:
			i++
		}
	}
	return result
}

// symbolBlockEnd returns the index of the first line after a ticker line's
// summary block (name row and optional quantity row).
func symbolBlockEnd(lines []string, i int) int {
	nameIdx, qtyIdx := resolveSymbolBlock(lines, i)
	switch {
	case qtyIdx >= 0:
		return qtyIdx + 1
	case nameIdx >= 0:
		return nameIdx + 1
	default:
		return i + 1
	}
}

// scanLots parses consecutive lots starting at index start. It stops at a new
// symbol header, a new section marker, or the first run of lines that fails
// every known layout shape. It returns the group (nil when no lots parsed)
// and the index of the line that terminated the scan.
func scanLots(lines []string, start int) (*model.LotGroup, int) {
	group := &model.LotGroup{Line: start + 1}
	i := start
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			i++
			continue
		}
		// Wash-sale basis adjustments are annotations, not lots: the pointer
		// advances by one line only, never by a full lot stride.
		if isAdjustmentLine(line) {
			i++
			continue
		}
		if isTickerLine(line) || isSectionMarker(line) {
			break
		}

		window, _ := lotWindow(lines, i, 4)
		layout, ok := classifyLot(window)
		if !ok {
			break
		}
		lot, ok := parseLot(window, layout)
		if !ok {
			break
		}
		group.Add(lot)
		_, i = lotWindow(lines, i, layout.stride())
	}
	if len(group.Lots) == 0 {
		return nil, i
	}
	return group, i
}

// lotWindow collects up to n forthcoming data lines with blank and adjustment
// lines filtered out, so an annotation embedded mid-lot does not break the
// surrounding lot.
func lotWindow(lines []string, start, n int) ([]string, int) {
	out := make([]string, 0, n)
	i := start
	for i < len(lines) && len(out) < n {
		line := strings.TrimSpace(lines[i])
		if line == "" || isAdjustmentLine(line) {
			i++
			continue
		}
		out = append(out, lines[i])
		i++
	}
	return out, i
}

// classifyLot decides which layout the lot beginning at window[0] uses.
// Normal layouts open with a date-shaped line; the inverted layout opens with
// the quantity row. Three- versus four-line is decided by where the quantity
// row lands.
func classifyLot(window []string) (LotLayout, bool) {
	if len(window) < 3 {
		return 0, false
	}
	first := strings.TrimSpace(window[0])
	switch {
	case isDateShaped(first):
		if isQuantityShaped(strings.TrimSpace(window[2])) {
			return LayoutNormal3, true
		}
		if len(window) >= 4 && isQuantityShaped(strings.TrimSpace(window[3])) {
			return LayoutNormal4, true
		}
		return 0, false
	case isQuantityShaped(first):
		if isDateShaped(strings.TrimSpace(window[1])) {
			return LayoutInverted3, true
		}
		return 0, false
	default:
		return 0, false
	}
}

// parseLot parses one lot from its window under the given layout. The switch
// is exhaustive over LotLayout; adding a layout without handling it here is a
// compile-time lint failure, not silent data loss.
func parseLot(window []string, layout LotLayout) (model.LotRecord, bool) {
	switch layout {
	case LayoutNormal3:
		return parseNormalLot(window[0], []string{window[1]}, window[2])
	case LayoutNormal4:
		return parseNormalLot(window[0], []string{window[1], window[2]}, window[3])
	case LayoutInverted3:
		return parseInvertedLot(window[0], window[1], window[2])
	default:
		return model.LotRecord{}, false
	}
}

// parseNormalLot handles the date-first layouts:
//
//	dateSold?  dateAcquired  <event> <method part 1>
//	<method continuation lines>
//	<quantity> <totalCost> <proceeds>  <shortTerm> <longTerm> <totalGain>
func parseNormalLot(dateLine string, methodLines []string, quantityLine string) (model.LotRecord, bool) {
	var lot model.LotRecord

	tokens := strings.Fields(dateLine)
	var dates []string
	for len(tokens) > 0 && len(dates) < 2 && isDateToken(tokens[0]) {
		dates = append(dates, tokens[0])
		tokens = tokens[1:]
	}
	switch len(dates) {
	case 2:
		lot.DateSold = dates[0]
		lot.DateAcquired = dates[1]
	case 1:
		lot.DateAcquired = dates[0]
	default:
		return lot, false
	}

	event, rest := splitLotEvent(tokens)
	lot.Event = event
	method := []string{strings.Join(rest, " ")}
	for _, ml := range methodLines {
		method = append(method, strings.TrimSpace(ml))
	}
	lot.CostBasisMethod = strings.TrimSpace(strings.Join(method, " "))

	if !parseQuantityRow(quantityLine, &lot) {
		return lot, false
	}
	return lot, true
}

// parseInvertedLot handles the quantity-first layout:
//
//	<quantity> <totalCost> <proceeds> <shortTerm> <longTerm> <totalGain>
//	dateSold?  dateAcquired
//	<event> <method>
func parseInvertedLot(quantityLine, dateLine, methodLine string) (model.LotRecord, bool) {
	var lot model.LotRecord

	if !parseQuantityRow(quantityLine, &lot) {
		return lot, false
	}

	var dates []string
	for _, tok := range strings.Fields(dateLine) {
		if isDateToken(tok) {
			dates = append(dates, tok)
		}
	}
	switch len(dates) {
	case 2:
		lot.DateSold = dates[0]
		lot.DateAcquired = dates[1]
	case 1:
		lot.DateAcquired = dates[0]
	default:
		return lot, false
	}

	event, rest := splitLotEvent(strings.Fields(methodLine))
	lot.Event = event
	lot.CostBasisMethod = strings.Join(rest, " ")
	return lot, true
}

// parseQuantityRow fills the quantity and the five money columns from a
// quantity row. Only the quantity is required; gain columns can be absent on
// open lots.
func parseQuantityRow(line string, lot *model.LotRecord) bool {
	tokens := strings.Fields(line)
	if len(tokens) == 0 || !isNumericToken(tokens[0]) {
		return false
	}
	qty, err := decimal.NewFromString(strings.ReplaceAll(tokens[0], ",", ""))
	if err != nil {
		return false
	}
	lot.Quantity = qty

	fields := []*string{&lot.TotalCost, &lot.Proceeds, &lot.ShortTermGain, &lot.LongTermGain, &lot.TotalGain}
	for i, tok := range tokens[1:] {
		if i >= len(fields) {
			break
		}
		*fields[i] = tok
	}
	return true
}

// splitLotEvent peels a lot event keyword off the front of tokens.
func splitLotEvent(tokens []string) (string, []string) {
	if len(tokens) == 0 {
		return "", tokens
	}
	if len(tokens) >= 2 && tokens[0] == "Cover" && tokens[1] == "Short" {
		return "Cover Short", tokens[2:]
	}
	switch tokens[0] {
	case "Sell", "Buy", "Dividend", "Reinvestment":
		return tokens[0], tokens[1:]
	}
	return "", tokens
}
