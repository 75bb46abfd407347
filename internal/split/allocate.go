// Package split computes per-friend shares of a receipt.
//
// Like the receipt parser, everything here is pure computation: no storage,
// no I/O, no error paths. A receipt with nothing assigned simply produces no
// shares.
package split

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/billbuddy/backend/internal/receipt"
)

var hundred = decimal.NewFromInt(100)

// Share is one friend's portion of the distributed total.
type Share struct {
	// Participant is the friend's identifier.
	Participant string

	// Amount is the total this friend owes across all items assigned to them.
	// Accumulated at full decimal precision; round only for display.
	Amount decimal.Decimal

	// Percent is Amount as a percentage of the distributed total,
	// or 0 when nothing was distributed.
	Percent float64
}

// DistributedTotal sums item totals over items that have at least one
// assigned friend. Unassigned items still count toward the receipt subtotal
// but are never distributed, so the two values can legitimately differ.
func DistributedTotal(items []receipt.LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		if len(item.Assigned) == 0 {
			continue
		}
		total = total.Add(item.Total())
	}
	return total
}

// Allocate divides each assigned item's cost equally among its assigned
// friends and aggregates the result per friend.
//
// Items with no assignment contribute nothing to anyone. The returned shares
// are ordered by participant identifier so output is stable for display and
// tests. The sum of all share amounts equals the distributed total.
func Allocate(items []receipt.LineItem) []Share {
	totals := make(map[string]decimal.Decimal)

	for _, item := range items {
		assigned := uniqueNames(item.Assigned)
		if len(assigned) == 0 {
			continue
		}
		perFriend := item.Total().Div(decimal.NewFromInt(int64(len(assigned))))
		for _, friend := range assigned {
			totals[friend] = totals[friend].Add(perFriend)
		}
	}

	distributed := DistributedTotal(items)

	shares := make([]Share, 0, len(totals))
	for friend, amount := range totals {
		share := Share{Participant: friend, Amount: amount}
		if distributed.IsPositive() {
			share.Percent = amount.Div(distributed).Mul(hundred).InexactFloat64()
		}
		shares = append(shares, share)
	}
	sort.Slice(shares, func(i, j int) bool {
		return shares[i].Participant < shares[j].Participant
	})

	return shares
}

// uniqueNames collapses duplicates while preserving first-seen order, since
// assignments are a set even when callers hand us a slice.
func uniqueNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := names[:0:0]
	for _, n := range names {
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
