package split

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/billbuddy/backend/internal/receipt"
)

func findBalance(t *testing.T, balances []FriendBalance, name string) FriendBalance {
	t.Helper()
	for _, b := range balances {
		if b.Name == name {
			return b
		}
	}
	t.Fatalf("no balance entry for %s in %+v", name, balances)
	return FriendBalance{}
}

func TestBalances(t *testing.T) {
	// Alex fronted a 30.00 dinner split evenly three ways: Bella and Charlie
	// each owe Alex 10.00.
	receipts := []PaidReceipt{
		{
			PayerID: "Alex",
			Items: []receipt.LineItem{
				item("Dinner", "30.00", 1, "Alex", "Bella", "Charlie"),
			},
		},
	}

	balances, edges := Balances(receipts, nil)

	alex := findBalance(t, balances, "Alex")
	if !alex.Net.Equal(decimal.RequireFromString("20")) {
		t.Errorf("Alex net = %s, want 20", alex.Net)
	}
	for _, name := range []string{"Bella", "Charlie"} {
		b := findBalance(t, balances, name)
		if !b.Net.Equal(decimal.RequireFromString("-10")) {
			t.Errorf("%s net = %s, want -10", name, b.Net)
		}
	}

	if len(edges) != 2 {
		t.Fatalf("got %d debt edges, want 2: %+v", len(edges), edges)
	}
	for _, e := range edges {
		if e.To != "Alex" {
			t.Errorf("edge %+v should point at Alex", e)
		}
		if !e.Amount.Equal(decimal.RequireFromString("10")) {
			t.Errorf("edge amount = %s, want 10", e.Amount)
		}
	}
}

func TestBalancesWithPayments(t *testing.T) {
	receipts := []PaidReceipt{
		{
			PayerID: "Alex",
			Items: []receipt.LineItem{
				item("Lunch", "20.00", 1, "Alex", "Bella"),
			},
		},
	}
	payments := []Payment{
		{From: "Bella", To: "Alex", Amount: decimal.RequireFromString("10.00")},
	}

	balances, edges := Balances(receipts, payments)

	for _, b := range balances {
		if !b.Net.IsZero() {
			t.Errorf("%s net = %s, want 0 after settling up", b.Name, b.Net)
		}
	}
	if len(edges) != 0 {
		t.Errorf("expected no debt edges after settlement, got %+v", edges)
	}
}

func TestBalancesSkipsReceiptsWithoutPayer(t *testing.T) {
	receipts := []PaidReceipt{
		{
			Items: []receipt.LineItem{
				item("Dinner", "30.00", 1, "Alex", "Bella"),
			},
		},
	}

	balances, edges := Balances(receipts, nil)
	if len(balances) != 0 || len(edges) != 0 {
		t.Errorf("payerless receipt should produce nothing, got %+v / %+v", balances, edges)
	}
}

func TestBalancesDeterministicEdgeOrder(t *testing.T) {
	// Two debtors, one creditor: edges come out sorted by debtor name.
	receipts := []PaidReceipt{
		{
			PayerID: "Mia",
			Items: []receipt.LineItem{
				item("Brunch", "30.00", 1, "Zoe", "Ben", "Mia"),
			},
		},
	}

	_, edges := Balances(receipts, nil)
	if len(edges) != 2 {
		t.Fatalf("got %d edges, want 2", len(edges))
	}
	if edges[0].From != "Ben" || edges[1].From != "Zoe" {
		t.Errorf("edges not ordered by debtor name: %+v", edges)
	}
}
