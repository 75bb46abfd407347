package api

import (
	"log/slog"
	"net/http"

	"github.com/billbuddy/backend/internal/middleware"
	"github.com/billbuddy/backend/internal/split"
)

type shareResponse struct {
	Participant string  `json:"participant"`
	Amount      string  `json:"amount"`
	Percent     float64 `json:"percent"`
}

type splitResponse struct {
	ReceiptID        string          `json:"receipt_id"`
	Shares           []shareResponse `json:"shares"`
	DistributedTotal string          `json:"distributed_total"`
	Subtotal         string          `json:"subtotal"`
}

type balanceResponse struct {
	Name string `json:"name"`
	Paid string `json:"paid"`
	Owed string `json:"owed"`
	Net  string `json:"net"`
}

type debtResponse struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount string `json:"amount"`
}

type balancesResponse struct {
	Balances []balanceResponse `json:"balances"`
	Debts    []debtResponse    `json:"debts"`
}

func (s *Server) handleSplitReceipt(w http.ResponseWriter, r *http.Request) {
	rec := s.ownedReceipt(w, r)
	if rec == nil {
		return
	}

	shares := split.Allocate(rec.Items)
	out := make([]shareResponse, 0, len(shares))
	for _, share := range shares {
		out = append(out, shareResponse{
			Participant: share.Participant,
			Amount:      share.Amount.StringFixed(2),
			Percent:     share.Percent,
		})
	}

	respondJSON(w, http.StatusOK, splitResponse{
		ReceiptID:        rec.ID,
		Shares:           out,
		DistributedTotal: split.DistributedTotal(rec.Items).StringFixed(2),
		Subtotal:         rec.Subtotal().StringFixed(2),
	})
}

func (s *Server) handleBalances(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())

	receipts, err := s.store.ListReceiptsByOwner(r.Context(), ownerID)
	if err != nil {
		slog.Error("Failed to list receipts", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to compute balances")
		return
	}
	settlements, err := s.store.ListSettlements(r.Context(), ownerID)
	if err != nil {
		slog.Error("Failed to list settlements", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to compute balances")
		return
	}

	paid := make([]split.PaidReceipt, 0, len(receipts))
	for _, rec := range receipts {
		paid = append(paid, split.PaidReceipt{PayerID: rec.PayerID, Items: rec.Items})
	}
	payments := make([]split.Payment, 0, len(settlements))
	for _, st := range settlements {
		payments = append(payments, split.Payment{From: st.FromName, To: st.ToName, Amount: st.Amount})
	}

	balances, debts := split.Balances(paid, payments)

	resp := balancesResponse{
		Balances: make([]balanceResponse, 0, len(balances)),
		Debts:    make([]debtResponse, 0, len(debts)),
	}
	for _, b := range balances {
		resp.Balances = append(resp.Balances, balanceResponse{
			Name: b.Name,
			Paid: b.Paid.StringFixed(2),
			Owed: b.Owed.StringFixed(2),
			Net:  b.Net.StringFixed(2),
		})
	}
	for _, d := range debts {
		resp.Debts = append(resp.Debts, debtResponse{
			From:   d.From,
			To:     d.To,
			Amount: d.Amount.StringFixed(2),
		})
	}

	respondJSON(w, http.StatusOK, resp)
}
