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

	"github.com/erazemk/stockroom/internal/artgalley"
	"github.com/erazemk/stockroom/internal/client"
	"github.com/erazemk/stockroom/internal/config"
	"github.com/erazemk/stockroom/internal/db"
	"github.com/erazemk/stockroom/internal/store"
	"github.com/erazemk/stockroom/internal/web"
)

// runServe runs the local web client.
func runServe(ctx context.Context, cfg config.Config, _ options, args []string) error {
	if len(args) > 0 {
		return usageError("unexpected argument: " + args[0])
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := db.EnsureSchema(database); err != nil {
		return fmt.Errorf("ensuring database schema: %w", err)
	}
	slog.Info("database ready", "path", cfg.DBPath)

	secret, err := store.SessionSigningKey(ctx, database)
	if err != nil {
		return err
	}

	inv := client.New(cfg.APIURL, cfg.Timeout)
	router, err := web.NewRouter(database, secret, inv)
	if err != nil {
		return fmt.Errorf("setting up web router: %w", err)
	}

	slog.Info("using inventory service", "url", inv.BaseURL(), "timeout", cfg.Timeout)
	return listen(cfg.Addr, web.LoggingMiddleware(router))
}

// runFakeAPI serves an in-memory inventory collection seeded with sample
// records.
func runFakeAPI(_ context.Context, cfg config.Config, _ options, args []string) error {
	if len(args) > 0 {
		return usageError("unexpected argument: " + args[0])
	}

	svc := artgalley.New(artgalley.SampleRecords()...)
	slog.Info("fake inventory service", "collection", artgalley.CollectionPath, "records", len(artgalley.SampleRecords()))
	return listen(cfg.Addr, web.LoggingMiddleware(svc.Handler()))
}

// listen serves handler on addr until SIGINT or SIGTERM.
func listen(addr string, handler http.Handler) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-quit
		slog.Info("shutdown signal received", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			slog.Error("server forced to shutdown", "error", err)
		}
	}()

	slog.Info("server started", "addr", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
