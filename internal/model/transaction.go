package model

import (
	"fmt"
)

// TransactionRecord is a single activity-report transaction exactly as
// reconstructed from the statement text. All numeric fields are kept as the
// formatted strings the broker printed; normalization happens downstream.
type TransactionRecord struct {
	AccountNumber   string
	SettlementDate  string // MM/DD/YYYY
	TradeDate       string // MM/DD/YYYY
	Symbol          string // ticker, or the broker's em-dash placeholder for cash
	InvestmentName  string
	TransactionType string
	AccountType     string // CASH or MARGIN, may be empty
	Shares          string
	Price           string
	Commission      string
	Amount          string
	Line            int // first source line of the reconstructed block
}

// CanonicalTransaction is the normalized form of a TransactionRecord, with
// every field in canonical output format: dates as YYYY-MM-DD, currency at
// two decimals, shares at five.
type CanonicalTransaction struct {
	AccountNumber          string
	TradeDate              string
	SettlementDate         string
	TransactionType        string
	TransactionDescription string // never present in source documents
	InvestmentName         string
	Symbol                 string
	Shares                 string
	SharePrice             string // empty when the statement printed no price
	PrincipalAmount        string // derived; empty when no amount was captured
	CommissionsAndFees     string
	NetAmount              string
	AccruedInterest        string // never present in source documents
	AccountType            string
}

// IdentityKey builds the composite key used to group duplicate candidates.
// Two distinct transactions can still collide on this key; collisions are
// resolved by field comparison, never by the key alone.
func (t *CanonicalTransaction) IdentityKey() string {
	principal := t.PrincipalAmount
	if principal == "" {
		principal = "undefined"
	}
	return fmt.Sprintf("%s-%s-%s-%s-%s-%s",
		t.AccountNumber,
		t.TradeDate,
		t.Symbol,
		t.TransactionType,
		t.Shares,
		principal)
}
