package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/zaloga/internal/config"
	"github.com/erazemk/zaloga/internal/model"
	"github.com/erazemk/zaloga/internal/store"
)

func defaultConfig() config.Config {
	return config.Config{
		Backend:        config.BackendSQLite,
		DBPath:         "zaloga.sqlite3",
		DataDir:        "zaloga-data",
		Addr:           ":8080",
		AdminUser:      "Admin",
		MetricsEnabled: true,
	}
}

func TestParseFlags(t *testing.T) {
	opts, err := parseFlags("serve", []string{"-b", "file", "-data", "/tmp/z", "-a", ":9000", "-metrics=false"}, defaultConfig())
	require.NoError(t, err)
	assert.Equal(t, config.BackendFile, opts.Backend)
	assert.Equal(t, "/tmp/z", opts.DataDir)
	assert.Equal(t, ":9000", opts.Addr)
	assert.False(t, opts.MetricsEnabled)
	assert.Equal(t, "Admin", opts.AdminUser)
}

func TestParseFlagsErrors(t *testing.T) {
	_, err := parseFlags("serve", []string{"-h"}, defaultConfig())
	assert.ErrorIs(t, err, flag.ErrHelp)

	_, err = parseFlags("serve", []string{"extra"}, defaultConfig())
	assert.Error(t, err)

	_, err = parseFlags("serve", []string{"-backend", "postgres"}, defaultConfig())
	assert.Error(t, err)
}

func TestGeneratePassword(t *testing.T) {
	a, err := generatePassword(16)
	require.NoError(t, err)
	b, err := generatePassword(16)
	require.NoError(t, err)

	assert.Len(t, a, 16)
	assert.NotEqual(t, a, b)
	assert.GreaterOrEqual(t, len(a), model.MinPasswordLength)
}

func TestLevelRouter(t *testing.T) {
	var stdout, stderr bytes.Buffer
	logPath := filepath.Join(t.TempDir(), "zaloga.log")

	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	cleanup, err := setupLogger(logPath, &stdout, &stderr)
	require.NoError(t, err)
	slog.Info("hello", "k", "v")
	slog.Error("boom")
	slog.Debug("hidden")
	cleanup()

	assert.Contains(t, stdout.String(), "hello")
	assert.NotContains(t, stdout.String(), "boom")
	assert.Contains(t, stderr.String(), "boom")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
	assert.Contains(t, string(data), "boom")
	assert.NotContains(t, string(data), "hidden")
}

func fileOptions(t *testing.T) options {
	t.Helper()
	cfg := defaultConfig()
	cfg.Backend = config.BackendFile
	cfg.DataDir = t.TempDir()
	return options{Config: cfg}
}

func TestResetRequiresConfirm(t *testing.T) {
	opts := fileOptions(t)
	err := cmdReset(opts)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "-confirm"))
}

func TestResetReplacesCorruptDocument(t *testing.T) {
	opts := fileOptions(t)
	path := filepath.Join(opts.DataDir, store.OrganizationsDocument+".json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))

	opts.confirm = true
	require.NoError(t, cmdReset(opts))

	backend, closeBackend, err := openBackend(opts.Config)
	require.NoError(t, err)
	defer closeBackend()
	orgs, err := store.NewOrganizations(store.NewOrganizationDocs(backend)).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, orgs)
}

func TestExport(t *testing.T) {
	opts := fileOptions(t)

	backend, closeBackend, err := openBackend(opts.Config)
	require.NoError(t, err)
	orgs := store.NewOrganizations(store.NewOrganizationDocs(backend))
	_, err = orgs.Create(context.Background(), "Shop A", "EUR")
	require.NoError(t, err)
	closeBackend()

	opts.out = filepath.Join(t.TempDir(), "export.json")
	require.NoError(t, cmdExport(opts))

	data, err := os.ReadFile(opts.out)
	require.NoError(t, err)
	var exported []model.Organization
	require.NoError(t, json.Unmarshal(data, &exported))
	require.Len(t, exported, 1)
	assert.Equal(t, "Shop A", exported[0].Name)
	assert.Equal(t, "EUR", exported[0].Currency)
}

func TestEnsureOperatorRunsOnce(t *testing.T) {
	opts := fileOptions(t)
	backend, closeBackend, err := openBackend(opts.Config)
	require.NoError(t, err)
	defer closeBackend()

	settings := store.NewSettings(store.NewSettingsDocs(backend))
	ctx := context.Background()

	require.NoError(t, ensureOperator(ctx, settings, "Admin"))
	first, err := settings.Operator(ctx)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, "Admin", first.Username)

	require.NoError(t, ensureOperator(ctx, settings, "Other"))
	second, _ := settings.Operator(ctx)
	assert.Equal(t, first.PasswordHash, second.PasswordHash)
	assert.Equal(t, "Admin", second.Username)
}
