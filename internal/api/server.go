// Package api exposes the backend over HTTP/JSON.
//
// All money values cross the wire as fixed-point decimal strings ("12.50"),
// never as floats. Handlers are thin: they decode, check ownership, call the
// store or the split engine, and encode.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/billbuddy/backend/internal/auth"
	"github.com/billbuddy/backend/internal/middleware"
	"github.com/billbuddy/backend/internal/storage"
)

// Server wires the HTTP handlers to their collaborators.
type Server struct {
	store         storage.Store
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
}

// NewServer creates a Server with the given dependencies.
func NewServer(store storage.Store, authenticator auth.Authenticator, jwtManager *auth.JWTManager) *Server {
	return &Server{
		store:         store,
		authenticator: authenticator,
		jwtManager:    jwtManager,
	}
}

// Router builds the full route tree including middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logging)
	r.Use(middleware.Metrics(routePattern))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)

		// Parsing works before sign-in so users can try the scanner first.
		r.With(middleware.OptionalAuth(s.jwtManager)).Post("/receipts/parse", s.handleParseReceipt)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(s.jwtManager))

			r.Post("/receipts", s.handleCreateReceipt)
			r.Get("/receipts", s.handleListReceipts)
			r.Get("/receipts/{receiptID}", s.handleGetReceipt)
			r.Put("/receipts/{receiptID}", s.handleUpdateReceipt)
			r.Delete("/receipts/{receiptID}", s.handleDeleteReceipt)
			r.Get("/receipts/{receiptID}/split", s.handleSplitReceipt)

			r.Get("/balances", s.handleBalances)

			r.Get("/friends", s.handleListFriends)
			r.Post("/friends", s.handleAddFriend)
			r.Delete("/friends/{friendID}", s.handleRemoveFriend)

			r.Get("/reminders", s.handleListReminders)
			r.Post("/reminders", s.handleCreateReminder)

			r.Get("/settlements", s.handleListSettlements)
			r.Post("/settlements", s.handleCreateSettlement)
		})
	})

	return r
}

// routePattern reports the matched chi pattern after routing, so metrics see
// "/api/receipts/{receiptID}" instead of one label per UUID.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}

func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
