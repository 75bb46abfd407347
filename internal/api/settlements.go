package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/billbuddy/backend/internal/middleware"
	"github.com/billbuddy/backend/internal/models"
)

type settlementRequest struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount string `json:"amount"`
	Note   string `json:"note"`
}

type settlementResponse struct {
	ID        string `json:"id"`
	From      string `json:"from"`
	To        string `json:"to"`
	Amount    string `json:"amount"`
	Note      string `json:"note,omitempty"`
	CreatedAt int64  `json:"created_at"`
}

func toSettlementResponse(st *models.Settlement) settlementResponse {
	return settlementResponse{
		ID:        st.ID,
		From:      st.FromName,
		To:        st.ToName,
		Amount:    st.Amount.StringFixed(2),
		Note:      st.Note,
		CreatedAt: st.CreatedAt,
	}
}

func (s *Server) handleListSettlements(w http.ResponseWriter, r *http.Request) {
	settlements, err := s.store.ListSettlements(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		slog.Error("Failed to list settlements", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to list settlements")
		return
	}

	out := make([]settlementResponse, 0, len(settlements))
	for _, st := range settlements {
		out = append(out, toSettlementResponse(st))
	}
	respondJSON(w, http.StatusOK, map[string][]settlementResponse{"settlements": out})
}

func (s *Server) handleCreateSettlement(w http.ResponseWriter, r *http.Request) {
	var req settlementRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	from := strings.TrimSpace(req.From)
	to := strings.TrimSpace(req.To)
	if from == "" || to == "" {
		respondError(w, http.StatusBadRequest, "from and to are required")
		return
	}
	if from == to {
		respondError(w, http.StatusBadRequest, "from and to must differ")
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || !amount.IsPositive() {
		respondError(w, http.StatusBadRequest, "amount must be a positive decimal string")
		return
	}

	st := &models.Settlement{
		OwnerID:  middleware.GetUserID(r.Context()),
		FromName: from,
		ToName:   to,
		Amount:   amount,
		Note:     req.Note,
	}
	if err := s.store.CreateSettlement(r.Context(), st); err != nil {
		slog.Error("Failed to create settlement", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to create settlement")
		return
	}

	respondJSON(w, http.StatusCreated, toSettlementResponse(st))
}
