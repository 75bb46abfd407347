package split

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/billbuddy/backend/internal/receipt"
)

// cent is the threshold under which balances are considered settled,
// matching the two-digit precision money is displayed with.
var cent = decimal.New(1, -2)

// PaidReceipt carries the slice of a receipt needed for balance math:
// who fronted the money and which items were assigned to whom.
type PaidReceipt struct {
	PayerID string
	Items   []receipt.LineItem
}

// Payment is a recorded transfer between two friends that settles debt.
type Payment struct {
	From   string
	To     string
	Amount decimal.Decimal
}

// FriendBalance is one friend's aggregate position across all receipts.
type FriendBalance struct {
	Name string

	// Paid is everything this friend fronted: receipt totals they covered
	// plus payments they made to settle up.
	Paid decimal.Decimal

	// Owed is everything allocated to this friend plus payments received.
	Owed decimal.Decimal

	// Net is Paid minus Owed. Positive means they are owed money.
	Net decimal.Decimal
}

// DebtEdge says From should pay To the given amount.
type DebtEdge struct {
	From   string
	To     string
	Amount decimal.Decimal
}

// Balances aggregates who fronted what and who owes what across receipts and
// recorded payments, then reduces the result to a small set of debt edges
// using greedy debtor/creditor matching.
//
// Receipts without a payer are skipped: there is nobody to credit.
func Balances(receipts []PaidReceipt, payments []Payment) ([]FriendBalance, []DebtEdge) {
	balances := make(map[string]*FriendBalance)
	ensure := func(name string) *FriendBalance {
		if b, ok := balances[name]; ok {
			return b
		}
		b := &FriendBalance{Name: name}
		balances[name] = b
		return b
	}

	for _, rec := range receipts {
		if rec.PayerID == "" {
			continue
		}

		shares := Allocate(rec.Items)
		if len(shares) == 0 {
			continue
		}

		ensure(rec.PayerID).Paid = balances[rec.PayerID].Paid.Add(DistributedTotal(rec.Items))

		for _, share := range shares {
			b := ensure(share.Participant)
			b.Owed = b.Owed.Add(share.Amount)
		}
	}

	for _, p := range payments {
		from := ensure(p.From)
		from.Paid = from.Paid.Add(p.Amount)
		to := ensure(p.To)
		to.Owed = to.Owed.Add(p.Amount)
	}

	names := make([]string, 0, len(balances))
	for name, b := range balances {
		b.Net = b.Paid.Sub(b.Owed)
		names = append(names, name)
	}
	sort.Strings(names)

	result := make([]FriendBalance, 0, len(names))
	var debtors, creditors []*FriendBalance
	for _, name := range names {
		b := balances[name]
		result = append(result, *b)
		switch {
		case b.Net.GreaterThanOrEqual(cent):
			creditors = append(creditors, b)
		case b.Net.LessThanOrEqual(cent.Neg()):
			debtors = append(debtors, b)
		}
	}

	return result, matchDebts(debtors, creditors)
}

// matchDebts pairs debtors with creditors greedily. Both slices arrive
// sorted by name, so the edge list is deterministic.
func matchDebts(debtors, creditors []*FriendBalance) []DebtEdge {
	remainingOwed := make(map[string]decimal.Decimal, len(debtors))
	for _, d := range debtors {
		remainingOwed[d.Name] = d.Net.Neg()
	}
	remainingDue := make(map[string]decimal.Decimal, len(creditors))
	for _, c := range creditors {
		remainingDue[c.Name] = c.Net
	}

	var edges []DebtEdge
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor, creditor := debtors[i].Name, creditors[j].Name

		amount := remainingOwed[debtor]
		if remainingDue[creditor].LessThan(amount) {
			amount = remainingDue[creditor]
		}

		if amount.GreaterThanOrEqual(cent) {
			edges = append(edges, DebtEdge{From: debtor, To: creditor, Amount: amount})
		}

		remainingOwed[debtor] = remainingOwed[debtor].Sub(amount)
		remainingDue[creditor] = remainingDue[creditor].Sub(amount)

		if remainingOwed[debtor].LessThan(cent) {
			i++
		}
		if remainingDue[creditor].LessThan(cent) {
			j++
		}
	}

	return edges
}
