// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"embed"
	"errors"
	"fmt"

	_ "github.com/danielhkuo/fieldwork/db/migrations"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.go
var embedMigrations embed.FS

// Supported database types
const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrStatusConflict    = errors.New("status conflict")
	ErrUnsupportedDBType = errors.New("unsupported database type")
)

// Repository wraps the connection pool and implements every store
// used by the HTTP handlers.
type Repository struct {
	dbConn *sqlx.DB
}

// NewRepository wraps an open connection
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{dbConn: db}
}

// Close terminates the database connection
func (repo *Repository) Close() error {
	if err := repo.dbConn.Close(); err != nil {
		return fmt.Errorf("closing repo: %w", err)
	}
	return nil
}

// Ping verifies the connection is alive
func (repo *Repository) Ping() error {
	return repo.dbConn.Ping()
}

// Open connects to the database and applies all pending migrations.
// Safe to call against an already migrated database.
func Open(dbType, url string) (*sqlx.DB, error) {
	var dialect goose.Dialect
	switch dbType {
	case TypeSQLite:
		dialect = goose.DialectSQLite3
	case TypePostgres:
		dialect = goose.DialectPostgres
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDBType, dbType)
	}

	db, err := sqlx.Connect(dbType, url)
	if err != nil {
		return nil, fmt.Errorf("connecting to db: %w", err)
	}

	if dbType == TypeSQLite {
		// SQLite allows a single writer; foreign keys are off by default
		db.SetMaxOpenConns(1)
		if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enabling foreign keys: %w", err)
		}
	}

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(string(dialect)); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting dialect for migrations: %w", err)
	}

	if err := goose.Up(db.DB, "migrations"); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying migrations: %w", err)
	}

	return db, nil
}

// checkAffected maps a zero-row update or delete to ErrNotFound
func checkAffected(res interface{ RowsAffected() (int64, error) }, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("fetching rows affected: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
