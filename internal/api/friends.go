package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/billbuddy/backend/internal/middleware"
	"github.com/billbuddy/backend/internal/models"
)

type friendRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type friendResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	CreatedAt int64  `json:"created_at"`
}

func toFriendResponse(friend *models.Friend) friendResponse {
	return friendResponse{
		ID:        friend.ID,
		Name:      friend.Name,
		Email:     friend.Email,
		CreatedAt: friend.CreatedAt,
	}
}

func (s *Server) handleListFriends(w http.ResponseWriter, r *http.Request) {
	friends, err := s.store.ListFriends(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		slog.Error("Failed to list friends", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to list friends")
		return
	}

	out := make([]friendResponse, 0, len(friends))
	for _, friend := range friends {
		out = append(out, toFriendResponse(friend))
	}
	respondJSON(w, http.StatusOK, map[string][]friendResponse{"friends": out})
}

func (s *Server) handleAddFriend(w http.ResponseWriter, r *http.Request) {
	var req friendRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	ownerID := middleware.GetUserID(r.Context())

	// Names key item assignments, so duplicates would make splits ambiguous.
	existing, err := s.store.ListFriends(r.Context(), ownerID)
	if err != nil {
		slog.Error("Failed to list friends", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to add friend")
		return
	}
	for _, friend := range existing {
		if friend.Name == name {
			respondError(w, http.StatusConflict, "friend already exists")
			return
		}
	}

	friend := &models.Friend{
		OwnerID: ownerID,
		Name:    name,
		Email:   strings.TrimSpace(req.Email),
	}
	if err := s.store.AddFriend(r.Context(), friend); err != nil {
		slog.Error("Failed to add friend", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to add friend")
		return
	}

	respondJSON(w, http.StatusCreated, toFriendResponse(friend))
}

func (s *Server) handleRemoveFriend(w http.ResponseWriter, r *http.Request) {
	friendID := chi.URLParam(r, "friendID")
	ownerID := middleware.GetUserID(r.Context())

	if err := s.store.RemoveFriend(r.Context(), ownerID, friendID); err != nil {
		respondError(w, http.StatusNotFound, "friend not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
