package statement

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/statement-sifter/internal/common"
	"github.com/Veraticus/statement-sifter/internal/model"
)

// DefaultTolerance is the maximum share-quantity difference allowed between
// a lot group's sum and a security's expected aggregate for the two to be
// considered the same position.
var DefaultTolerance = decimal.NewFromFloat(0.01)

// UnmatchedGroup describes a lot group no security claimed, for operator
// review. Groups are never discarded silently.
type UnmatchedGroup struct {
	Line     int
	Quantity decimal.Decimal
	BestDiff decimal.Decimal
	HasBest  bool // false when no unmatched security was available at all
}

// ReconcileResult is the outcome of binding lot groups to securities.
type ReconcileResult struct {
	Matched   map[model.SecurityKey][]model.LotRecord
	Unmatched []UnmatchedGroup
	Warnings  []Warning
}

// Reconcile assigns each lot group to the unmatched security whose expected
// aggregate quantity is nearest to the group's sum, accepting the assignment
// only when the difference is strictly under tolerance.
//
// Groups are processed strictly in document order and a claimed security is
// never released, so ties within tolerance resolve to whichever group arrives
// first. This is deterministic but not a globally optimal assignment; the
// quantity signal is all there is, since lot rows carry no security
// identifier once a page break separates them from their header.
func Reconcile(groups []*model.LotGroup, securities []*model.Security, tolerance decimal.Decimal) *ReconcileResult {
	result := &ReconcileResult{
		Matched: make(map[model.SecurityKey][]model.LotRecord),
	}

	for _, group := range groups {
		var (
			best     *model.Security
			bestDiff decimal.Decimal
		)
		for _, sec := range securities {
			if sec.Matched || !sec.HasExpected {
				continue
			}
			diff := sec.ExpectedQuantity.Sub(group.Quantity).Abs()
			if best == nil || diff.LessThan(bestDiff) {
				best = sec
				bestDiff = diff
			}
		}

		if best != nil && bestDiff.LessThan(tolerance) {
			best.Matched = true
			key := model.SecurityKey{AccountNumber: best.AccountNumber, Symbol: best.Symbol}
			for i := range group.Lots {
				group.Lots[i].AccountNumber = best.AccountNumber
				group.Lots[i].Symbol = best.Symbol
				group.Lots[i].InvestmentName = best.Name
			}
			result.Matched[key] = append(result.Matched[key], group.Lots...)
			continue
		}

		unmatched := UnmatchedGroup{Line: group.Line, Quantity: group.Quantity}
		if best != nil {
			unmatched.BestDiff = bestDiff
			unmatched.HasBest = true
		}
		result.Unmatched = append(result.Unmatched, unmatched)
		result.Warnings = append(result.Warnings, Warning{
			Line:   group.Line,
			Err:    common.ErrUnmatchedLotGroup,
			Detail: "summed quantity " + group.Quantity.String(),
		})
		slog.Warn("No security within tolerance for lot group",
			"line", group.Line,
			"quantity", group.Quantity.String(),
			"lots", len(group.Lots))
	}
	return result
}
