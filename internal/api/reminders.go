package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/billbuddy/backend/internal/middleware"
	"github.com/billbuddy/backend/internal/models"
)

type reminderRequest struct {
	FriendName string `json:"friend_name"`
	Amount     string `json:"amount"`
	Note       string `json:"note"`
	DueAt      int64  `json:"due_at"`
}

type reminderResponse struct {
	ID         string `json:"id"`
	FriendName string `json:"friend_name"`
	Amount     string `json:"amount"`
	Note       string `json:"note,omitempty"`
	DueAt      int64  `json:"due_at"`
	SentAt     int64  `json:"sent_at,omitempty"`
}

func toReminderResponse(reminder *models.Reminder) reminderResponse {
	return reminderResponse{
		ID:         reminder.ID,
		FriendName: reminder.FriendName,
		Amount:     reminder.Amount.StringFixed(2),
		Note:       reminder.Note,
		DueAt:      reminder.DueAt,
		SentAt:     reminder.SentAt,
	}
}

func (s *Server) handleListReminders(w http.ResponseWriter, r *http.Request) {
	reminders, err := s.store.ListReminders(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		slog.Error("Failed to list reminders", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to list reminders")
		return
	}

	out := make([]reminderResponse, 0, len(reminders))
	for _, reminder := range reminders {
		out = append(out, toReminderResponse(reminder))
	}
	respondJSON(w, http.StatusOK, map[string][]reminderResponse{"reminders": out})
}

func (s *Server) handleCreateReminder(w http.ResponseWriter, r *http.Request) {
	var req reminderRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	friendName := strings.TrimSpace(req.FriendName)
	if friendName == "" {
		respondError(w, http.StatusBadRequest, "friend_name is required")
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || !amount.IsPositive() {
		respondError(w, http.StatusBadRequest, "amount must be a positive decimal string")
		return
	}
	if req.DueAt <= 0 {
		respondError(w, http.StatusBadRequest, "due_at must be a Unix timestamp")
		return
	}

	reminder := &models.Reminder{
		OwnerID:    middleware.GetUserID(r.Context()),
		FriendName: friendName,
		Amount:     amount,
		Note:       req.Note,
		DueAt:      req.DueAt,
	}
	if err := s.store.CreateReminder(r.Context(), reminder); err != nil {
		slog.Error("Failed to create reminder", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to create reminder")
		return
	}

	respondJSON(w, http.StatusCreated, toReminderResponse(reminder))
}
