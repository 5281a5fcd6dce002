// Package service defines the contracts this system consumes from external
// collaborators. Text extraction from binary documents and persistence of
// parsed records live outside this repository; only their interfaces are
// specified here.
package service

import (
	"context"
	"io"

	"github.com/Veraticus/statement-sifter/internal/model"
)

// TextExtractor converts a binary statement document into the ordered UTF-8
// text lines the parsers consume. Tab characters must be preserved where the
// source table used them.
type TextExtractor interface {
	ExtractLines(ctx context.Context, r io.Reader) ([]string, error)
}

// TransactionStore persists canonical transactions.
type TransactionStore interface {
	SaveTransactions(ctx context.Context, records []model.CanonicalTransaction) error
}

// LotStore persists reconciled lot sets keyed by security.
type LotStore interface {
	SaveLots(ctx context.Context, lots map[model.SecurityKey][]model.LotRecord) error
}
