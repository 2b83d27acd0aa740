package db_test

import (
	"context"
	"testing"
	"time"

	"github.com/garnizeh/jobly/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMemory(t *testing.T) *db.DB {
	t.Helper()
	d, err := db.New(context.Background(), "sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	return d
}

func TestNew_Close_GetConn(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	d, err := db.New(ctx, "sqlite", ":memory:")
	require.NoError(t, err)
	assert.NotNil(t, d.GetConn())
	assert.Equal(t, db.SQLite, d.Dialect())
	require.NoError(t, d.Ping(ctx))
	require.NoError(t, d.Close())
}

func TestNew_UnsupportedDriver(t *testing.T) {
	_, err := db.New(context.Background(), "mysql", "whatever")
	require.Error(t, err)
}

func TestExec_QueryRow(t *testing.T) {
	ctx := context.Background()
	d := openMemory(t)

	_, err := d.Exec(ctx, `CREATE TABLE items (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT)`)
	require.NoError(t, err)

	res, err := d.Exec(ctx, `INSERT INTO items (name) VALUES (?)`, "foo")
	require.NoError(t, err)
	lastID, err := res.LastInsertId()
	require.NoError(t, err)
	require.NotZero(t, lastID)

	var name string
	require.NoError(t, d.QueryRow(ctx, `SELECT name FROM items WHERE id = ?`, lastID).Scan(&name))
	assert.Equal(t, "foo", name)

	rows, err := d.QueryRows(ctx, `SELECT name FROM items`)
	require.NoError(t, err)
	defer rows.Close()
	var n int
	for rows.Next() {
		n++
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, 1, n)
}

func TestNew_EnablesForeignKeys(t *testing.T) {
	d := openMemory(t)

	var on int
	require.NoError(t, d.QueryRow(context.Background(), `PRAGMA foreign_keys`).Scan(&on))
	assert.Equal(t, 1, on)
}

func TestRebind_SQLiteUnchanged(t *testing.T) {
	d := openMemory(t)
	q := `SELECT * FROM t WHERE a = ? AND b = ?`
	assert.Equal(t, q, d.Rebind(q))
}
