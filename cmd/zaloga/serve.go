package main

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/erazemk/zaloga/internal/api"
	"github.com/erazemk/zaloga/internal/docstore"
	"github.com/erazemk/zaloga/internal/metrics"
	"github.com/erazemk/zaloga/internal/store"
)

func cmdServe(opts options) error {
	backend, closeBackend, err := openBackend(opts.Config)
	if err != nil {
		return fmt.Errorf("opening %s backend: %w", opts.Backend, err)
	}
	defer closeBackend()

	var storeOpts []docstore.Option
	var m *metrics.Metrics
	if opts.MetricsEnabled {
		m = metrics.New()
		storeOpts = append(storeOpts, docstore.WithObserver(m))
	}

	orgDocs := store.NewOrganizationDocs(backend, storeOpts...)
	settings := store.NewSettings(store.NewSettingsDocs(backend, storeOpts...))
	ctx := context.Background()

	// Fail early on a corrupt organizations document instead of on the
	// first request.
	if _, err := orgDocs.View(ctx); err != nil {
		if errors.Is(err, docstore.ErrCorruptDocument) {
			return fmt.Errorf("%w (inspect it, then run `zaloga reset -confirm` to start over)", err)
		}
		return err
	}

	if err := ensureOperator(ctx, settings, opts.AdminUser); err != nil {
		return err
	}

	// Generated on first run and kept in the settings document.
	jwtSecret, err := settings.JWTSecret(ctx)
	if err != nil {
		return err
	}

	slog.Info("storage ready", "backend", opts.Backend, "location", location(opts.Config))

	deps := api.Deps{
		Organizations: store.NewOrganizations(orgDocs),
		Inventory:     store.NewInventory(orgDocs),
		Settings:      settings,
		JWTSecret:     jwtSecret,
	}
	if m != nil {
		deps.Metrics = m.Handler()
	}

	server := &http.Server{
		Addr:              opts.Addr,
		Handler:           api.LoggingMiddleware(api.NewRouter(deps)),
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

	slog.Info("server started", "addr", opts.Addr, "metrics", opts.MetricsEnabled)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	slog.Info("server stopped, closing storage")
	return nil
}

// ensureOperator creates the operator account on first run and prints its
// generated password.
func ensureOperator(ctx context.Context, settings *store.Settings, username string) error {
	op, err := settings.Operator(ctx)
	if err != nil {
		return err
	}
	if op != nil {
		return nil
	}

	password, err := generatePassword(16)
	if err != nil {
		return fmt.Errorf("generating password: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	if err := settings.SetOperator(ctx, username, string(hash)); err != nil {
		return fmt.Errorf("creating operator: %w", err)
	}

	printInitResult(username, password)
	return nil
}

// printInitResult prints the generated operator credentials to stdout.
func printInitResult(username, password string) {
	fmt.Println("Operator account created:")
	fmt.Printf("  Username: %s\n", username)
	fmt.Printf("  Password: %s\n", password)
	fmt.Println()
	fmt.Println("Save this password, it cannot be recovered.")
	fmt.Println("It can be changed after logging in.")
	fmt.Println()
}

// generatePassword creates a random password of the given length.
func generatePassword(length int) (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%&*"
	result := make([]byte, length)
	for i := range result {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		result[i] = charset[n.Int64()]
	}
	return string(result), nil
}
