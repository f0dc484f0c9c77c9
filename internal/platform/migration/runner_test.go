// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration_test

import (
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/data"
	"github.com/taibuivan/folio/internal/platform/migration"
)

func TestPgx5URL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@db:5432/folio", migration.Pgx5URL("postgres://u:p@db:5432/folio"))
	assert.Equal(t, "pgx5://u:p@db:5432/folio", migration.Pgx5URL("postgresql://u:p@db:5432/folio"))
	assert.Equal(t, "pgx5://u:p@db/folio", migration.Pgx5URL("pgx5://u:p@db/folio"))
}

func TestSource_Embedded(t *testing.T) {
	migrations, err := fs.Sub(data.Migrations, "migrations")
	require.NoError(t, err)

	source, err := migration.Source(migrations)
	require.NoError(t, err)
	defer source.Close()

	first, err := source.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)

	up, _, err := source.ReadUp(first)
	require.NoError(t, err)
	defer up.Close()
	down, _, err := source.ReadDown(first)
	require.NoError(t, err)
	defer down.Close()
}

func TestEmbedded_LevelsStartAtZero(t *testing.T) {
	up, err := fs.ReadFile(data.Migrations, "migrations/000001_init.up.sql")
	require.NoError(t, err)

	schema := string(up)
	assert.Contains(t, schema, "DEFAULT 0 CHECK (level >= 0)")
	assert.Contains(t, schema, "DEFAULT 0 CHECK (requiredlevel >= 0)")
	assert.NotContains(t, schema, "level >= 1")
}

func TestSource_NoMigrations(t *testing.T) {
	source, err := migration.Source(fstest.MapFS{"README.md": {Data: []byte("nothing here")}})
	require.NoError(t, err)
	defer source.Close()

	_, err = source.First()
	assert.Error(t, err)
}
