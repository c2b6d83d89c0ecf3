package postgres

import (
	"bytes"
	"context"
	"io/fs"
	"log/slog"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations(t *testing.T) {
	files, err := fs.Glob(migrationsFS, "migrations/*.sql")
	require.NoError(t, err)
	require.Len(t, files, 3)

	for _, name := range files {
		body, err := fs.ReadFile(migrationsFS, name)
		require.NoError(t, err)
		text := string(body)
		assert.True(t, strings.Contains(text, "-- +goose Up"), "%s lacks an Up section", name)
		assert.True(t, strings.Contains(text, "-- +goose Down"), "%s lacks a Down section", name)
	}
}

func TestMigrate_UnknownCommand(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	err = Migrate(context.Background(), db, "sideways", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown migration command "sideways"`)
	require.NoError(t, mock.ExpectationsWereMet(), "no SQL for an unknown command")
}

func TestGooseLogger(t *testing.T) {
	var buf bytes.Buffer
	l := gooseLogger{logger: slog.New(slog.NewJSONHandler(&buf, nil))}

	l.Printf("applied %d migrations", 3)
	l.Fatalf("failed: %s", "boom")

	out := buf.String()
	assert.Contains(t, out, `"msg":"applied 3 migrations"`)
	assert.Contains(t, out, `"level":"ERROR"`)
	assert.Contains(t, out, "failed: boom")
}
