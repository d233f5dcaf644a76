// Package storage opens the local SQLite database, applies migrations, and
// hands out the repositories built on top of it.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/ahmetk3436/Daiyly-sub000/internal/client/migrations"
	"github.com/ahmetk3436/Daiyly-sub000/internal/client/repositories/cache"
	"github.com/ahmetk3436/Daiyly-sub000/internal/client/repositories/credentials"
	"github.com/ahmetk3436/Daiyly-sub000/internal/client/repositories/ledger"
)

// Repositories bundles the local stores sharing one database handle.
type Repositories struct {
	Credentials credentials.Store
	Ledger      ledger.Repository
	Cache       cache.Store
	DB          *sql.DB
}

// RunMigrations brings the schema up to date using the embedded migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens (or creates) the database at dsn, migrates it, and
// returns the repositories.
func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Repositories{
		Credentials: credentials.NewSQLiteStore(db),
		Ledger:      ledger.NewSQLiteRepository(db),
		Cache:       cache.NewSQLiteStore(db),
		DB:          db,
	}, nil
}

// Close releases the underlying database handle.
func (r *Repositories) Close() error {
	return r.DB.Close()
}
