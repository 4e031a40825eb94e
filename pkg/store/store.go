// Package store persists diary records and list items in a SQLite file.
//
// A Store is a single session: writes open a transaction lazily and keep it
// open until Commit or Rollback. Reads go through the open transaction when
// there is one, so staged changes are visible to the session that made them.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// ErrConflict is returned when a write violates a uniqueness constraint.
var ErrConflict = errors.New("store: record already exists")

type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store is the diary's relational store.
type Store struct {
	db   *sql.DB
	path string
	tx   *sql.Tx
	log  *log.Entry
}

// Open opens (creating if needed) the database file at path and migrates it.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure data directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}
	// One connection: the session's transaction owns it while open.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: open database: %w", err)
	}
	if err := Migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &Store{
		db:   db,
		path: path,
		log:  log.WithField("db", path),
	}
	s.log.Debug("store opened")
	return s, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close rolls back any uncommitted changes and closes the database.
func (s *Store) Close() error {
	if s.tx != nil {
		if err := s.tx.Rollback(); err != nil {
			s.log.WithError(err).Warn("rollback on close failed")
		}
		s.tx = nil
	}
	return s.db.Close()
}

// InTransaction reports whether uncommitted changes may be pending.
func (s *Store) InTransaction() bool {
	return s.tx != nil
}

// Commit makes all staged changes permanent. Committing with nothing staged
// is a no-op.
func (s *Store) Commit(_ context.Context) error {
	if s.tx == nil {
		return nil
	}
	tx := s.tx
	s.tx = nil
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit: %w", err)
	}
	s.log.Debug("committed")
	return nil
}

// Rollback discards all staged changes.
func (s *Store) Rollback(_ context.Context) error {
	if s.tx == nil {
		return nil
	}
	tx := s.tx
	s.tx = nil
	if err := tx.Rollback(); err != nil {
		return fmt.Errorf("store: rollback: %w", err)
	}
	s.log.Debug("rolled back")
	return nil
}

// session returns the open transaction, beginning one if needed.
func (s *Store) session(ctx context.Context) (*sql.Tx, error) {
	if s.tx != nil {
		return s.tx, nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("store: begin: %w", err)
	}
	s.tx = tx
	return tx, nil
}

func (s *Store) reader() queryer {
	if s.tx != nil {
		return s.tx
	}
	return s.db
}

func isConstraint(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
