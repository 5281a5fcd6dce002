package model

import "github.com/shopspring/decimal"

// Security is one symbol-summary entry discovered by the context tracker:
// a ticker, its investment name, and the aggregate share quantity the
// statement reports for it. Matched flips to true exactly once, when a lot
// group is bound to the security, and never reverts.
type Security struct {
	AccountNumber    string
	Symbol           string
	Name             string
	ExpectedQuantity decimal.Decimal
	HasExpected      bool
	Matched          bool
}

// SecurityKey identifies a security within one statement for grouping output.
type SecurityKey struct {
	AccountNumber string
	Symbol        string
}
