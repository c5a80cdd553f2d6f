package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRebindPostgres(t *testing.T) {
	assert.Equal(t,
		"SELECT * FROM users WHERE id = $1 AND role = $2",
		rebind(DriverPostgres, "SELECT * FROM users WHERE id = ? AND role = ?"))
}

func TestRebindLeavesSQLiteAlone(t *testing.T) {
	q := "SELECT * FROM users WHERE id = ?"
	assert.Equal(t, q, rebind(DriverSQLite, q))
}

func TestRebindSkipsQuotedLiterals(t *testing.T) {
	assert.Equal(t,
		"SELECT '?' AS q FROM t WHERE a = $1",
		rebind(DriverPostgres, "SELECT '?' AS q FROM t WHERE a = ?"))
}

func TestOpenSQLiteAndInitSchema(t *testing.T) {
	db, err := Open(":memory:")
	require.NoError(t, err)
	defer db.Close()
	assert.Equal(t, DriverSQLite, db.Driver())

	ctx := context.Background()
	require.NoError(t, db.InitSchema(ctx))
	// Idempotent on a second run.
	require.NoError(t, db.InitSchema(ctx))

	id, err := db.InsertContext(ctx,
		"INSERT INTO venues (name) VALUES (?)", "Willow Park")
	require.NoError(t, err)
	assert.Positive(t, id)

	var name string
	require.NoError(t, db.QueryRowContext(ctx,
		"SELECT name FROM venues WHERE id = ?", id).Scan(&name))
	assert.Equal(t, "Willow Park", name)
}

func TestTxRollback(t *testing.T) {
	db, err := Open(":memory:")
	require.NoError(t, err)
	defer db.Close()
	ctx := context.Background()
	require.NoError(t, db.InitSchema(ctx))

	tx, err := db.BeginTx(ctx)
	require.NoError(t, err)
	_, err = tx.InsertContext(ctx, "INSERT INTO venues (name) VALUES (?)", "Ghost Field")
	require.NoError(t, err)
	require.NoError(t, tx.Rollback())

	var n int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM venues").Scan(&n))
	assert.Zero(t, n)
}
