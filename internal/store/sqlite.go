package store

import (
	"context"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Handle owns the single open connection to the SQLite database. It has no
// internal synchronization: callers must serialize access and fully consume
// one statement before issuing another.
type Handle struct {
	db *sqlx.DB
}

// Open opens (or creates) the database at path and enables WAL mode and
// foreign keys. Pass ":memory:" for an ephemeral database.
func Open(path string) (*Handle, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, &ConnectionError{Path: path, Err: err}
	}

	// One connection, one statement at a time. The pool must never hand out
	// a second connection: that would silently break :memory: databases and
	// the single-writer contract alike.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, &ConnectionError{Path: path, Err: err}
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, &ConnectionError{Path: path, Err: err}
	}

	return &Handle{db: db}, nil
}

// Exec runs a statement with no parameters and no interesting result rows
// (DDL, transaction control). Multiple semicolon-separated statements are
// allowed.
func (h *Handle) Exec(ctx context.Context, stmt string) error {
	if _, err := h.db.ExecContext(ctx, stmt); err != nil {
		return &ExecutionError{Stmt: stmt, Err: err}
	}
	return nil
}

// Prepare compiles a parameterized statement. The caller owns the returned
// handle and must Close it.
func (h *Handle) Prepare(ctx context.Context, stmt string) (*sqlx.Stmt, error) {
	st, err := h.db.PreparexContext(ctx, stmt)
	if err != nil {
		return nil, &PrepareError{Stmt: stmt, Err: err}
	}
	return st, nil
}

// Begin starts a transaction on the connection.
func (h *Handle) Begin(ctx context.Context) (*sqlx.Tx, error) {
	tx, err := h.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, &ExecutionError{Stmt: "BEGIN", Err: err}
	}
	return tx, nil
}

// Close releases the native connection. Safe to call more than once.
func (h *Handle) Close() error {
	if h.db == nil {
		return nil
	}
	err := h.db.Close()
	h.db = nil
	return err
}
