// Package repository provides database access layer.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	_ "github.com/lib/pq"              // registers the "postgres" driver
)

// Options configures the connection pool.
type Options struct {
	Driver       string
	MaxOpenConns int
	MaxIdleConns int
}

// Repository provides database access methods.
type Repository struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

// New opens a connection pool with the given driver and verifies it.
func New(ctx context.Context, databaseURL string, opts Options) (*Repository, error) {
	driver := opts.Driver
	if driver == "" {
		driver = "pgx"
	}

	db, err := sql.Open(driver, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		db.SetMaxIdleConns(opts.MaxIdleConns)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return NewWithDB(db), nil
}

// NewWithDB wraps an already opened *sql.DB.
func NewWithDB(db *sql.DB) *Repository {
	return &Repository{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Ping checks database connectivity.
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Close closes the database connection pool.
func (r *Repository) Close() error {
	return r.db.Close()
}

// DB returns the underlying connection pool.
// Use sparingly - prefer adding methods to Repository.
func (r *Repository) DB() *sql.DB {
	return r.db
}
