// Package database provides a thin storage port over either PostgreSQL or
// SQLite. Repositories write queries with `?` placeholders; the port rebinds
// them to the $n syntax when the PostgreSQL backend is active and normalizes
// insert-id reporting between the two drivers.
package database

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // postgres driver
	_ "modernc.org/sqlite"             // sqlite driver (cgo-free)
)

// Driver identifies the active backend.
type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
)

// DB wraps a *sql.DB together with the dialect it speaks. All repository
// code goes through DB (or Tx) so the placeholder translation never leaks
// into call sites.
type DB struct {
	sql    *sql.DB
	driver Driver
}

// Open connects to the backend selected by databaseURL: postgres:// and
// postgresql:// URLs open a PostgreSQL pool, anything else is treated as a
// SQLite file path. The connection is verified with a short ping.
func Open(databaseURL string) (*DB, error) {
	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		db, err := sql.Open("pgx", databaseURL)
		if err != nil {
			return nil, err
		}
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(30 * time.Minute)
		if err := ping(db); err != nil {
			return nil, err
		}
		return &DB{sql: db, driver: DriverPostgres}, nil
	}

	path := databaseURL
	if path == "" {
		path = "festival.db"
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// A single writer keeps modernc/sqlite free of SQLITE_BUSY surprises.
	db.SetMaxOpenConns(1)
	if err := ping(db); err != nil {
		return nil, err
	}
	for _, pragma := range []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			return nil, err
		}
	}
	return &DB{sql: db, driver: DriverSQLite}, nil
}

func ping(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return db.PingContext(ctx)
}

// Driver reports which backend is active.
func (d *DB) Driver() Driver { return d.driver }

// Close releases the underlying pool.
func (d *DB) Close() error { return d.sql.Close() }

// Ping verifies the connection, bounded by ctx.
func (d *DB) Ping(ctx context.Context) error { return d.sql.PingContext(ctx) }

// QueryContext runs a multi-row query after placeholder rebinding.
func (d *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return d.sql.QueryContext(ctx, rebind(d.driver, query), args...)
}

// QueryRowContext runs a single-row query after placeholder rebinding.
func (d *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return d.sql.QueryRowContext(ctx, rebind(d.driver, query), args...)
}

// ExecContext runs a statement after placeholder rebinding.
func (d *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return d.sql.ExecContext(ctx, rebind(d.driver, query), args...)
}

// InsertContext executes an INSERT and returns the generated row id. SQLite
// reports it through LastInsertId; PostgreSQL has no equivalent, so the
// statement is extended with RETURNING id and scanned instead.
func (d *DB) InsertContext(ctx context.Context, query string, args ...any) (int64, error) {
	return insert(ctx, d.sql, d.driver, query, args...)
}

// BeginTx starts a transaction whose statements get the same placeholder
// rebinding as the pool.
func (d *DB) BeginTx(ctx context.Context) (*Tx, error) {
	tx, err := d.sql.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &Tx{tx: tx, driver: d.driver}, nil
}

// Tx mirrors DB for statements running inside a transaction.
type Tx struct {
	tx     *sql.Tx
	driver Driver
}

func (t *Tx) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return t.tx.QueryContext(ctx, rebind(t.driver, query), args...)
}

func (t *Tx) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return t.tx.QueryRowContext(ctx, rebind(t.driver, query), args...)
}

func (t *Tx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return t.tx.ExecContext(ctx, rebind(t.driver, query), args...)
}

func (t *Tx) InsertContext(ctx context.Context, query string, args ...any) (int64, error) {
	return insert(ctx, t.tx, t.driver, query, args...)
}

func (t *Tx) Commit() error   { return t.tx.Commit() }
func (t *Tx) Rollback() error { return t.tx.Rollback() }

// Executor is the subset of DB and Tx that repository helpers accept when a
// statement may run either standalone or inside a transaction.
type Executor interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	InsertContext(ctx context.Context, query string, args ...any) (int64, error)
}

type sqlExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func insert(ctx context.Context, ex sqlExecutor, driver Driver, query string, args ...any) (int64, error) {
	if driver == DriverPostgres {
		var id int64
		q := strings.TrimRight(strings.TrimSpace(rebind(driver, query)), ";")
		err := ex.QueryRowContext(ctx, q+" RETURNING id", args...).Scan(&id)
		return id, err
	}
	res, err := ex.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// rebind translates `?` placeholders to `$1..$n` for the PostgreSQL dialect.
// Question marks inside single-quoted SQL literals are left alone.
func rebind(driver Driver, query string) string {
	if driver != DriverPostgres || !strings.ContainsRune(query, '?') {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	inLiteral := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'':
			inLiteral = !inLiteral
			b.WriteByte(c)
		case c == '?' && !inLiteral:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
