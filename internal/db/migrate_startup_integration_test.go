package db_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	dbfs "github.com/garnizeh/jobly/db"
	"github.com/garnizeh/jobly/internal/config"
	"github.com/garnizeh/jobly/internal/db"
	"github.com/stretchr/testify/require"
)

// TestMigrateOnStart_FileDatabase runs the startup path the server takes when
// migrate_on_start is set, against a file database in a temporary directory.
func TestMigrateOnStart_FileDatabase(t *testing.T) {
	ctx := context.Background()
	t.Setenv("JOBLY_ENV", "development")

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	cfgY := "addr: \":0\"\n" +
		"database_driver: sqlite\n" +
		"database_dsn: '" + dbPath + "'\n" +
		"migrate_on_start: true\n"
	cfgPath := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgY), 0o644))

	cfg, err := config.LoadConfig(cfgPath)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	require.True(t, cfg.MigrateOnStart)

	dbCtx, dbCancel := context.WithTimeout(ctx, cfg.APITimeout)
	defer dbCancel()

	d, err := db.New(dbCtx, cfg.DatabaseDriver, cfg.DatabaseDSN)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(dbCtx, d, dbfs.Files))
	require.NoError(t, d.Close())

	_, err = os.Stat(dbPath)
	require.NoError(t, err, "expected database file to exist")

	// reopening must find the schema already in place
	d, err = db.New(dbCtx, cfg.DatabaseDriver, cfg.DatabaseDSN)
	require.NoError(t, err)
	defer d.Close()
	require.NoError(t, db.Migrate(dbCtx, d, dbfs.Files))
	require.Equal(t, 1, count(t, d, `SELECT COUNT(1) FROM schema_migrations`))
}
