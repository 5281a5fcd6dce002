package statement

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/Veraticus/statement-sifter/internal/common"
	"github.com/Veraticus/statement-sifter/internal/model"
)

// ActivityParser reconstructs transaction records from an activity report.
// Records wrap across lines in the reflowed text, so the parser runs a small
// state machine: idle until a line opens with two dates, then accumulating
// until the next start line or a structural marker flushes the buffer.
type ActivityParser struct{}

// NewActivityParser creates a new activity-report parser.
func NewActivityParser() *ActivityParser {
	return &ActivityParser{}
}

// ActivityResult is the output of parsing one activity report.
type ActivityResult struct {
	Records  []model.TransactionRecord
	Warnings []Warning
}

// ParseFile parses an activity report and returns its transaction records.
func (p *ActivityParser) ParseFile(ctx context.Context, r io.Reader) (*ActivityResult, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}
	return p.Parse(lines)
}

// Parse reconstructs transaction records from ordered statement lines.
// Per-record failures become warnings; a record appearing before any account
// header is fatal to the whole document, since nothing can be attributed.
func (p *ActivityParser) Parse(lines []string) (*ActivityResult, error) {
	tracker := NewTracker()
	result := &ActivityResult{}

	var (
		buf          []string
		startLine    int
		accumulating bool
		fatal        error
	)

	flush := func() {
		if !accumulating {
			return
		}
		accumulating = false
		block := strings.Join(buf, " ")
		buf = nil

		rec := parseTransactionBlock(block)
		if rec == nil {
			result.Warnings = append(result.Warnings, Warning{
				Line:   startLine,
				Err:    common.ErrUnparsableRecord,
				Detail: truncate(block),
			})
			slog.Warn("Skipping unparsable transaction block",
				"line", startLine,
				"block", truncate(block))
			return
		}
		if tracker.Account == "" {
			fatal = fmt.Errorf("transaction at line %d: %w", startLine, common.ErrAccountNumberNotFound)
			return
		}
		rec.AccountNumber = tracker.Account
		rec.Line = startLine
		result.Records = append(result.Records, *rec)
	}

	for i := range lines {
		line := strings.TrimSpace(lines[i])

		// Markers flush before the tracker sees the line, so a record is
		// attributed to the account it was printed under, not the next one.
		if isFlushMarker(line) {
			flush()
			tracker.Step(lines, i)
		} else {
			tracker.Step(lines, i)
			switch {
			case line == "":
				// Blank lines are layout artifacts, not record boundaries.
			case isTransactionStart(line):
				flush()
				accumulating = true
				startLine = i + 1
				buf = append(buf, line)
			case accumulating:
				buf = append(buf, line)
			}
		}
		if fatal != nil {
			return nil, fatal
		}
	}
	flush()
	if fatal != nil {
		return nil, fatal
	}

	return result, nil
}

// isFlushMarker reports whether a line terminates any record being
// accumulated: page footers, disclosure boilerplate, the next account header,
// or a re-wrapped fragment of the table's own column header.
func isFlushMarker(line string) bool {
	if _, ok := accountNumber(line); ok {
		return true
	}
	return isBoilerplate(line) || isColumnHeaderFragment(line)
}

// wrappedAmountRe matches a currency amount whose final digit wrapped onto
// the next line: "$595.330 0" is really "$595.3300".
var wrappedAmountRe = regexp.MustCompile(`(\$[\d,]*\.\d+) (\d)(\s|$)`)

// repairWrappedAmounts re-joins trailing digits split off decimal currency
// amounts by word-wrap.
func repairWrappedAmounts(block string) string {
	return wrappedAmountRe.ReplaceAllString(block, "$1$2$3")
}

// wrapVocabulary lists the words the repairer is allowed to re-join when a
// wrap split off their final letter ("MARGI N" back to "MARGIN"). Restricting
// the join to known statement vocabulary keeps it from gluing legitimate
// single-letter tokens onto names.
var wrapVocabulary = map[string]bool{
	"CASH":         true,
	"MARGIN":       true,
	"FREE":         true,
	"BUY":          true,
	"SELL":         true,
	"DIVIDEND":     true,
	"REINVESTMENT": true,
	"INTEREST":     true,
	"TRANSFER":     true,
	"SWEEP":        true,
	"FUNDS":        true,
	"RECEIVED":     true,
	"ACTION":       true,
	"WITHDRAWAL":   true,
	"DEPOSIT":      true,
	"REDEMPTION":   true,
}

// repairBrokenWords merges a token with a following single-letter token when
// the joined word is known statement vocabulary.
func repairBrokenWords(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for i := 0; i < len(tokens); i++ {
		if i+1 < len(tokens) && len(tokens[i+1]) == 1 && len(tokens[i]) > 1 {
			joined := tokens[i] + tokens[i+1]
			if wrapVocabulary[strings.ToUpper(joined)] {
				out = append(out, joined)
				i++
				continue
			}
		}
		out = append(out, tokens[i])
	}
	return out
}

// parseTransactionBlock tokenizes one reconstructed transaction block by
// greedy left-to-right field extraction. It returns nil when no transaction
// type resolves; callers skip the block and continue the batch.
func parseTransactionBlock(block string) *model.TransactionRecord {
	tokens := strings.Fields(repairWrappedAmounts(block))
	tokens = repairBrokenWords(tokens)

	if len(tokens) < 3 || !isDateToken(tokens[0]) || !isDateToken(tokens[1]) {
		return nil
	}
	rec := &model.TransactionRecord{
		SettlementDate: tokens[0],
		TradeDate:      tokens[1],
	}
	rest := tokens[2:]
	i := 0

	// Symbol: an uppercase ticker or the cash placeholder.
	if i < len(rest) && (isPlaceholderToken(rest[i]) || symbolTokenRe.MatchString(rest[i])) {
		rec.Symbol = rest[i]
		i++
	}

	// Investment name: everything up to a recognized transaction type, or up
	// to an account-type token directly followed by a numeric or placeholder
	// token.
	var name []string
	for i < len(rest) {
		if _, n := matchTransactionType(rest[i:]); n > 0 {
			break
		}
		if isAccountTypeToken(rest[i]) && i+1 < len(rest) &&
			(isNumericToken(rest[i+1]) || isPlaceholderToken(rest[i+1])) {
			break
		}
		name = append(name, rest[i])
		i++
	}
	rec.InvestmentName = strings.Join(name, " ")

	if typ, n := matchTransactionType(rest[i:]); n > 0 {
		rec.TransactionType = typ
		i += n
	}

	if i < len(rest) && isAccountTypeToken(rest[i]) {
		rec.AccountType = rest[i]
		i++
	}

	if i < len(rest) && (isNumericToken(rest[i]) || isPlaceholderToken(rest[i])) {
		rec.Shares = rest[i]
		i++
	}

	if i < len(rest) && (isCurrencyToken(rest[i]) || isNumericToken(rest[i]) || isPlaceholderToken(rest[i])) {
		rec.Price = rest[i]
		i++
	}

	if i < len(rest) && (isCurrencyToken(rest[i]) || isNumericToken(rest[i]) ||
		strings.EqualFold(rest[i], "Free") || isPlaceholderToken(rest[i])) {
		rec.Commission = rest[i]
		i++
	}

	// Amount takes all remaining tokens, except that some layouts print the
	// account type after the amount rather than before the share count.
	remainder := rest[i:]
	if rec.AccountType == "" && len(remainder) > 0 && isAccountTypeToken(remainder[len(remainder)-1]) {
		rec.AccountType = remainder[len(remainder)-1]
		remainder = remainder[:len(remainder)-1]
	}
	rec.Amount = strings.Join(remainder, " ")

	if rec.TransactionType == "" {
		return nil
	}
	return rec
}

// simpleTypes are the single-token transaction types.
var simpleTypes = map[string]bool{
	"Buy":          true,
	"Sell":         true,
	"Dividend":     true,
	"Reinvestment": true,
	"Interest":     true,
	"Withdrawal":   true,
	"Deposit":      true,
	"Redemption":   true,
}

// typeContinuations extends a leading keyword into its fixed multi-word
// forms. Each rule receives the tokens after the keyword and returns the full
// type plus how many extra tokens it consumed; an empty type means the rule
// did not match.
var typeContinuations = map[string]func(rest []string) (string, int){
	"Funds": func(rest []string) (string, int) {
		if len(rest) > 0 && rest[0] == "Received" {
			return "Funds Received", 1
		}
		return "", 0
	},
	"Sweep": func(rest []string) (string, int) {
		if len(rest) > 0 && (rest[0] == "in" || rest[0] == "out") {
			return "Sweep " + rest[0], 1
		}
		return "", 0
	},
	"Corp": func(rest []string) (string, int) {
		if len(rest) == 0 || rest[0] != "Action" {
			return "", 0
		}
		paren, n := consumeParenthetical(rest[1:])
		if n > 0 {
			return "Corp Action " + paren, 1 + n
		}
		return "Corp Action", 1
	},
	"Transfer": func(rest []string) (string, int) {
		paren, n := consumeParenthetical(rest)
		if n > 0 {
			return "Transfer " + paren, n
		}
		return "Transfer", 0
	},
}

// matchTransactionType recognizes a transaction type at the head of tokens
// and returns it with the number of tokens consumed, or ("", 0).
func matchTransactionType(tokens []string) (string, int) {
	if len(tokens) == 0 {
		return "", 0
	}
	if cont, ok := typeContinuations[tokens[0]]; ok {
		if typ, n := cont(tokens[1:]); typ != "" {
			return typ, n + 1
		}
		return "", 0
	}
	if simpleTypes[tokens[0]] {
		return tokens[0], 1
	}
	return "", 0
}

// consumeParenthetical joins a "(...)" run of tokens, consuming through the
// first token that closes the parenthesis.
func consumeParenthetical(tokens []string) (string, int) {
	if len(tokens) == 0 || !strings.HasPrefix(tokens[0], "(") {
		return "", 0
	}
	for i, tok := range tokens {
		if strings.HasSuffix(tok, ")") {
			return strings.Join(tokens[:i+1], " "), i + 1
		}
	}
	return strings.Join(tokens, " "), len(tokens)
}
