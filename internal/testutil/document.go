// Package testutil builds synthetic statement documents for tests.
package testutil

import "fmt"

// AccountHeader renders the account header line for an 8-digit account.
func AccountHeader(account string) string {
	return fmt.Sprintf("Brokerage Account — %s", account)
}

// SymbolSummary renders the three-line symbol summary block: ticker,
// investment name, and the aggregate quantity row.
func SymbolSummary(symbol, name, quantity, value string) []string {
	return []string{
		symbol,
		name,
		fmt.Sprintf("%s $%s", quantity, value),
	}
}

// Document concatenates line groups into one ordered document.
func Document(groups ...[]string) []string {
	var lines []string
	for _, g := range groups {
		lines = append(lines, g...)
	}
	return lines
}

// Lines is a convenience wrapper for a literal group of lines.
func Lines(lines ...string) []string {
	return lines
}
