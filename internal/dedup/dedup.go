// Package dedup classifies identity-key collisions between canonical
// transactions as true duplicates (the same transaction captured twice) or
// false duplicates (distinct transactions colliding on the key).
package dedup

import (
	"log/slog"

	"github.com/Veraticus/statement-sifter/internal/model"
)

// Collision is a group of distinct transactions sharing one identity key.
// The key schema is insufficiently discriminating for these; they must be
// surfaced for review, never silently kept or dropped.
type Collision struct {
	Key     string
	Records []model.CanonicalTransaction
}

// Result is the outcome of deduplicating a batch.
type Result struct {
	// Records is the batch with true duplicates collapsed, in original order.
	Records []model.CanonicalTransaction
	// FalseDuplicates are key collisions between differing records; all of
	// their members are retained in Records.
	FalseDuplicates []Collision
	// Collapsed counts the true-duplicate copies removed.
	Collapsed int
}

// comparedFields extracts the field set used to tell true duplicates from
// false ones. The identity key alone never decides.
func comparedFields(t model.CanonicalTransaction) [6]string {
	return [6]string{
		t.SettlementDate,
		t.SharePrice,
		t.PrincipalAmount,
		t.NetAmount,
		t.CommissionsAndFees,
		t.TransactionDescription,
	}
}

// Deduplicate groups records by identity key and collapses each group whose
// members are identical across all compared fields to its first member.
// Groups with any differing member are retained whole and reported as false
// duplicates.
func Deduplicate(records []model.CanonicalTransaction) *Result {
	groups := make(map[string][]int, len(records))
	for i := range records {
		key := records[i].IdentityKey()
		groups[key] = append(groups[key], i)
	}

	drop := make([]bool, len(records))
	result := &Result{}

	// Iterate in record order so collision reports are deterministic.
	seen := make(map[string]bool, len(groups))
	for i := range records {
		key := records[i].IdentityKey()
		if seen[key] {
			continue
		}
		seen[key] = true

		indexes := groups[key]
		if len(indexes) < 2 {
			continue
		}

		first := comparedFields(records[indexes[0]])
		identical := true
		for _, idx := range indexes[1:] {
			if comparedFields(records[idx]) != first {
				identical = false
				break
			}
		}

		if identical {
			for _, idx := range indexes[1:] {
				drop[idx] = true
			}
			result.Collapsed += len(indexes) - 1
			slog.Debug("Collapsed true duplicates",
				"key", key,
				"copies", len(indexes))
			continue
		}

		collision := Collision{Key: key}
		for _, idx := range indexes {
			collision.Records = append(collision.Records, records[idx])
		}
		result.FalseDuplicates = append(result.FalseDuplicates, collision)
		slog.Warn("Identity key collision between differing transactions",
			"key", key,
			"records", len(indexes))
	}

	for i := range records {
		if !drop[i] {
			result.Records = append(result.Records, records[i])
		}
	}
	return result
}
