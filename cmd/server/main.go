// Command server runs the BillBuddy backend: receipt parsing, bill splitting,
// balances, and reminders over HTTP/JSON.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/billbuddy/backend/internal/api"
	"github.com/billbuddy/backend/internal/auth"
	"github.com/billbuddy/backend/internal/config"
	"github.com/billbuddy/backend/internal/notify"
	"github.com/billbuddy/backend/internal/storage/sqlite"
	"github.com/billbuddy/backend/pkg/logging"
)

func main() {
	logging.Setup()

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to open database", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	authenticator := auth.NewPasswordAuthenticator(store)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenDuration)
	server := api.NewServer(store, authenticator, jwtManager)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dispatcher := notify.NewDispatcher(store, notify.LogSender{}, cfg.ReminderInterval)
	go dispatcher.Run(ctx)

	// h2c lets gRPC-style HTTP/2 clients connect without TLS; TLS termination
	// is the reverse proxy's job.
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           h2c.NewHandler(server.Router(), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server listening", "port", cfg.Port, "db", cfg.DBPath)
		errCh <- httpServer.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	case sig := <-quit:
		slog.Info("Shutting down", "signal", sig.String())
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}
