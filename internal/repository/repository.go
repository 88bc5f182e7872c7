package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"neptis/internal/errs"
	"neptis/internal/repository/migrations"
)

// Repository is the local store. Writes are serialized through a single
// connection.
type Repository struct {
	db  *sql.DB
	now func() time.Time
}

func New(dbPath string) (*Repository, error) {
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_timeout=5000&_foreign_keys=on", dbPath)
	if dbPath == ":memory:" {
		dsn = "file::memory:?_foreign_keys=on"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errs.E(errs.Storage, "repository.open", fmt.Errorf("failed to open database: %w", err))
	}

	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, errs.E(errs.Storage, "repository.open", fmt.Errorf("failed to enable foreign keys: %w", err))
	}

	if err := migrations.MigrateUp(db); err != nil {
		db.Close()
		return nil, errs.E(errs.Storage, "repository.open", fmt.Errorf("failed to initialize schema: %w", err))
	}

	return &Repository{db: db, now: time.Now}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

// withTx runs fn inside a transaction, rolling back on error.
func (r *Repository) withTx(ctx context.Context, op string, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr(op, fmt.Errorf("failed to begin transaction: %w", err))
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return storageErr(op, fmt.Errorf("failed to commit: %w", err))
	}
	return nil
}

// storageErr classifies engine errors into the store's error kinds.
func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var kindErr *errs.Error
	if errors.As(err, &kindErr) {
		return err
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return errs.E(errs.Conflict, op, err)
		case sqlite3.ErrConstraintForeignKey:
			return errs.E(errs.NotFound, op, fmt.Errorf("referenced row does not exist: %w", err))
		}
	}
	return errs.E(errs.Storage, op, err)
}

func notFound(op, format string, args ...any) error {
	return errs.Errorf(errs.NotFound, op, format, args...)
}

func utc(t time.Time) time.Time {
	return t.UTC()
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time.UTC()
	return &t
}

func requireAffected(res sql.Result, op, format string, args ...any) error {
	n, err := res.RowsAffected()
	if err != nil {
		return storageErr(op, err)
	}
	if n == 0 {
		return notFound(op, format, args...)
	}
	return nil
}
