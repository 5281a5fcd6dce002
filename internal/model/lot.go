package model

import "github.com/shopspring/decimal"

// LotRecord is one cost-basis tax lot from a realized-gains report.
// AccountNumber, Symbol and InvestmentName are filled in by reconciliation;
// lot-detail rows carry no security identifier of their own.
type LotRecord struct {
	AccountNumber   string
	Symbol          string
	InvestmentName  string
	DateSold        string // MM/DD/YYYY, empty for open lots
	DateAcquired    string // MM/DD/YYYY
	Event           string // Sell, Buy, Dividend, Reinvestment or Cover Short
	CostBasisMethod string
	Quantity        decimal.Decimal
	TotalCost       string
	Proceeds        string
	ShortTermGain   string
	LongTermGain    string
	TotalGain       string
}

// LotGroup is a contiguous run of lots discovered by one scan pass, prior to
// being attributed to a security. Quantity is the running sum of its lots.
type LotGroup struct {
	Lots     []LotRecord
	Quantity decimal.Decimal
	Line     int // 1-based line where the scan started
}

// Add appends a lot and folds its quantity into the group sum.
func (g *LotGroup) Add(lot LotRecord) {
	g.Lots = append(g.Lots, lot)
	g.Quantity = g.Quantity.Add(lot.Quantity)
}
