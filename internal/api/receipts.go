package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/billbuddy/backend/internal/middleware"
	"github.com/billbuddy/backend/internal/models"
	"github.com/billbuddy/backend/internal/receipt"
)

type parseRequest struct {
	Lines []string `json:"lines"`
}

type parseResponse struct {
	Items    []itemResponse `json:"items"`
	DateLine string         `json:"date_line,omitempty"`
	Subtotal string         `json:"subtotal"`
}

type itemResponse struct {
	ID        string   `json:"id,omitempty"`
	Name      string   `json:"name"`
	UnitPrice string   `json:"unit_price"`
	Quantity  int      `json:"quantity"`
	Assigned  []string `json:"assigned,omitempty"`
}

type itemRequest struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	UnitPrice string   `json:"unit_price"`
	Quantity  int      `json:"quantity"`
	Assigned  []string `json:"assigned"`
}

type receiptRequest struct {
	Title        string        `json:"title"`
	Items        []itemRequest `json:"items"`
	DateLine     string        `json:"date_line"`
	PayerID      string        `json:"payer_id"`
	Participants []string      `json:"participants"`
}

type receiptResponse struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Items        []itemResponse `json:"items"`
	DateLine     string         `json:"date_line,omitempty"`
	PayerID      string         `json:"payer_id,omitempty"`
	Participants []string       `json:"participants"`
	Subtotal     string         `json:"subtotal"`
	CreatedAt    int64          `json:"created_at"`
}

func toItemResponses(items []receipt.LineItem) []itemResponse {
	out := make([]itemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, itemResponse{
			ID:        item.ID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice.StringFixed(2),
			Quantity:  item.Quantity,
			Assigned:  item.Assigned,
		})
	}
	return out
}

func toReceiptResponse(rec *models.Receipt) receiptResponse {
	participants := rec.Participants
	if participants == nil {
		participants = []string{}
	}
	return receiptResponse{
		ID:           rec.ID,
		Title:        rec.Title,
		Items:        toItemResponses(rec.Items),
		DateLine:     rec.DateLine,
		PayerID:      rec.PayerID,
		Participants: participants,
		Subtotal:     rec.Subtotal().StringFixed(2),
		CreatedAt:    rec.CreatedAt,
	}
}

// parseItems validates and converts request items. Quantity defaults to 1;
// zero-priced items are legal (comped lines show up on real receipts).
func parseItems(items []itemRequest) ([]receipt.LineItem, error) {
	out := make([]receipt.LineItem, 0, len(items))
	for i, item := range items {
		if item.Name == "" {
			return nil, fmt.Errorf("item %d: name is required", i)
		}
		price, err := decimal.NewFromString(item.UnitPrice)
		if err != nil {
			return nil, fmt.Errorf("item %d: invalid unit_price %q", i, item.UnitPrice)
		}
		if price.IsNegative() {
			return nil, fmt.Errorf("item %d: unit_price must not be negative", i)
		}
		quantity := item.Quantity
		if quantity == 0 {
			quantity = 1
		}
		if quantity < 1 {
			return nil, fmt.Errorf("item %d: quantity must be at least 1", i)
		}
		out = append(out, receipt.LineItem{
			ID:        item.ID,
			Name:      item.Name,
			UnitPrice: price,
			Quantity:  quantity,
			Assigned:  item.Assigned,
		})
	}
	return out, nil
}

func (s *Server) handleParseReceipt(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	parsed := receipt.ParseLines(req.Lines)
	respondJSON(w, http.StatusOK, parseResponse{
		Items:    toItemResponses(parsed.Items),
		DateLine: parsed.DateLine,
		Subtotal: parsed.Subtotal().StringFixed(2),
	})
}

func (s *Server) handleCreateReceipt(w http.ResponseWriter, r *http.Request) {
	var req receiptRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	items, err := parseItems(req.Items)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec := &models.Receipt{
		OwnerID:      middleware.GetUserID(r.Context()),
		Title:        req.Title,
		Items:        items,
		DateLine:     req.DateLine,
		PayerID:      req.PayerID,
		Participants: req.Participants,
	}
	if err := s.store.CreateReceipt(r.Context(), rec); err != nil {
		slog.Error("Failed to create receipt", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to create receipt")
		return
	}

	respondJSON(w, http.StatusCreated, toReceiptResponse(rec))
}

func (s *Server) handleListReceipts(w http.ResponseWriter, r *http.Request) {
	receipts, err := s.store.ListReceiptsByOwner(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		slog.Error("Failed to list receipts", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to list receipts")
		return
	}

	out := make([]receiptResponse, 0, len(receipts))
	for _, rec := range receipts {
		out = append(out, toReceiptResponse(rec))
	}
	respondJSON(w, http.StatusOK, map[string][]receiptResponse{"receipts": out})
}

// ownedReceipt loads the receipt and enforces ownership. Unknown IDs and
// other users' receipts both come back as 404 so IDs cannot be probed.
func (s *Server) ownedReceipt(w http.ResponseWriter, r *http.Request) *models.Receipt {
	receiptID := chi.URLParam(r, "receiptID")
	rec, err := s.store.GetReceipt(r.Context(), receiptID)
	if err != nil || rec.OwnerID != middleware.GetUserID(r.Context()) {
		respondError(w, http.StatusNotFound, "receipt not found")
		return nil
	}
	return rec
}

func (s *Server) handleGetReceipt(w http.ResponseWriter, r *http.Request) {
	rec := s.ownedReceipt(w, r)
	if rec == nil {
		return
	}
	respondJSON(w, http.StatusOK, toReceiptResponse(rec))
}

func (s *Server) handleUpdateReceipt(w http.ResponseWriter, r *http.Request) {
	rec := s.ownedReceipt(w, r)
	if rec == nil {
		return
	}

	var req receiptRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	items, err := parseItems(req.Items)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec.Title = req.Title
	rec.Items = items
	rec.DateLine = req.DateLine
	rec.PayerID = req.PayerID
	rec.Participants = req.Participants

	if err := s.store.UpdateReceipt(r.Context(), rec); err != nil {
		slog.Error("Failed to update receipt", "receipt_id", rec.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to update receipt")
		return
	}

	respondJSON(w, http.StatusOK, toReceiptResponse(rec))
}

func (s *Server) handleDeleteReceipt(w http.ResponseWriter, r *http.Request) {
	rec := s.ownedReceipt(w, r)
	if rec == nil {
		return
	}

	if err := s.store.DeleteReceipt(r.Context(), rec.ID); err != nil {
		slog.Error("Failed to delete receipt", "receipt_id", rec.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to delete receipt")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
