package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateAndRoutes(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "catalog.db")
	t.Setenv("FILMADMIN_DATABASE_PATH", dbPath)
	t.Setenv("GIN_MODE", "test")
	t.Setenv("FILMADMIN_LOG_LEVEL", "error")

	require.NoError(t, newApp().Run(context.Background(), []string{"filmadmin", "migrate"}))
	_, err := os.Stat(dbPath)
	require.NoError(t, err)

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	require.NoError(t, app.Run(context.Background(), []string{"filmadmin", "routes"}))

	assert.Contains(t, out.String(), "/api/movie/:id/genres")
	assert.Contains(t, out.String(), "/api/health")
}

func TestMissingConfigFileFallsBackToDefaults(t *testing.T) {
	t.Setenv("FILMADMIN_DATABASE_PATH", filepath.Join(t.TempDir(), "catalog.db"))
	t.Setenv("FILMADMIN_LOG_LEVEL", "error")

	err := newApp().Run(context.Background(), []string{"filmadmin", "--config", filepath.Join(t.TempDir(), "absent.yaml"), "migrate"})

	assert.NoError(t, err)
}

func TestInvalidConfig(t *testing.T) {
	t.Setenv("DATABASE_TYPE", "oracle")

	err := newApp().Run(context.Background(), []string{"filmadmin", "migrate"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
}
