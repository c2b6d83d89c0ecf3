package main

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/PANAMA-HIVE/Backend-Deploy/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: 5000, LogLevel: "info", ShutdownTimeoutSeconds: 1},
		Database: config.DatabaseConfig{
			URL:          "postgres://localhost/study",
			MaxOpenConns: 4,
			MaxIdleConns: 2,
		},
		Auth: config.AuthConfig{JWTSecret: strings.Repeat("s", 32), TokenLifetimeMinutes: 60},
		LLM:  config.LLMConfig{ModelName: config.DefaultModelName},
	}
}

func TestNewApplication(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	t.Run("wires services without an LLM key", func(t *testing.T) {
		app, err := newApplication(context.Background(), testConfig(), logger, db)
		require.NoError(t, err)

		assert.NotNil(t, app.tokenService)
		assert.NotNil(t, app.groupStore)
		assert.NotNil(t, app.groupService)
		assert.NotNil(t, app.generator)
		assert.NotNil(t, app.studyService)
		assert.NotNil(t, app.setupRouter())
	})

	t.Run("short jwt secret fails", func(t *testing.T) {
		cfg := testConfig()
		cfg.Auth.JWTSecret = "short"
		_, err := newApplication(context.Background(), cfg, logger, db)
		assert.Error(t, err)
	})

	t.Run("missing model name fails", func(t *testing.T) {
		cfg := testConfig()
		cfg.LLM.ModelName = ""
		_, err := newApplication(context.Background(), cfg, logger, db)
		assert.Error(t, err)
	})

	t.Run("cleanup closes the database", func(t *testing.T) {
		mock.ExpectClose()
		app := &application{config: testConfig(), logger: logger, db: db}
		app.cleanup()
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestConfigurePool(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	configurePool(db, config.DatabaseConfig{MaxOpenConns: 7, MaxIdleConns: 3})
	assert.Equal(t, 7, db.Stats().MaxOpenConnections)
}
