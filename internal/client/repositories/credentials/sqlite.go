package credentials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ahmetk3436/Daiyly-sub000/internal/client/models"
	"github.com/ahmetk3436/Daiyly-sub000/internal/dbx"
)

// SQLiteStore implements Store on a single-row credentials table.
type SQLiteStore struct {
	db dbx.DBTX
}

// NewSQLiteStore returns a SQLiteStore bound to the given DBTX.
func NewSQLiteStore(db dbx.DBTX) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Read(ctx context.Context) (models.TokenPair, bool, error) {
	var pair models.TokenPair
	err := s.db.QueryRowContext(ctx,
		`SELECT access, refresh FROM credentials WHERE id = 1`).
		Scan(&pair.Access, &pair.Refresh)
	if errors.Is(err, sql.ErrNoRows) {
		return models.TokenPair{}, false, nil
	}
	if err != nil {
		return models.TokenPair{}, false, fmt.Errorf("failed to read credentials: %w", err)
	}
	return pair, true, nil
}

// Write upserts the single row, replacing both tokens together.
func (s *SQLiteStore) Write(ctx context.Context, pair models.TokenPair) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO credentials (id, access, refresh) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET access = excluded.access, refresh = excluded.refresh
	`, pair.Access, pair.Refresh)
	if err != nil {
		return fmt.Errorf("failed to write credentials: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM credentials`)
	if err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	return nil
}
