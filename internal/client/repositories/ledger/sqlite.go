package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/ahmetk3436/Daiyly-sub000/internal/client/models"
	"github.com/ahmetk3436/Daiyly-sub000/internal/common"
	"github.com/ahmetk3436/Daiyly-sub000/internal/dbx"
)

// SQLiteRepository implements Repository on the shared client database.
// Insertion order is the rowid order of the guest_entries table.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given database.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Append(ctx context.Context, e *models.GuestEntry) error {
	tags, err := json.Marshal(e.Tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}
	query := `INSERT INTO guest_entries
			(id, mood_emoji, mood_score, content, card_color, tags, created_at, local_date)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		e.ID, e.MoodEmoji, e.MoodScore, e.Content, e.CardColor, tags,
		e.CreatedAt.UTC().Format(time.RFC3339Nano), e.LocalDate)
	if err != nil {
		return fmt.Errorf("failed to append guest entry: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Update(ctx context.Context, e *models.GuestEntry) error {
	tags, err := json.Marshal(e.Tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}
	query := `UPDATE guest_entries
			SET mood_emoji = ?, mood_score = ?, content = ?, card_color = ?, tags = ?
			WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		e.MoodEmoji, e.MoodScore, e.Content, e.CardColor, tags, e.ID)
	if err != nil {
		return fmt.Errorf("failed to update guest entry: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra != 1 {
		return common.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.GuestEntry, error) {
	query := `SELECT id, mood_emoji, mood_score, content, card_color, tags, created_at, local_date
			FROM guest_entries ORDER BY rowid`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select guest entries: %w", err)
	}
	defer rows.Close()

	var result []models.GuestEntry
	for rows.Next() {
		var item models.GuestEntry
		var tags []byte
		var createdAt string
		if err := rows.Scan(&item.ID, &item.MoodEmoji, &item.MoodScore, &item.Content,
			&item.CardColor, &tags, &createdAt, &item.LocalDate); err != nil {
			return nil, err
		}
		if len(tags) > 0 {
			if err := json.Unmarshal(tags, &item.Tags); err != nil {
				return nil, fmt.Errorf("failed to decode tags: %w", err)
			}
		}
		if item.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) Remove(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}
	query := `DELETE FROM guest_entries WHERE id IN (` + placeholders + `)`
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to remove guest entries: %w", err)
	}
	return nil
}

// Clear wipes the entries and the usage counter together, so a failure cannot
// leave a counter counting records that no longer exist.
func (r *SQLiteRepository) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM guest_entries`); err != nil {
			return fmt.Errorf("failed to clear guest entries: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM guest_usage`); err != nil {
			return fmt.Errorf("failed to reset guest usage: %w", err)
		}
		return nil
	})
}

func (r *SQLiteRepository) UsageCount(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(count), 0) FROM guest_usage`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to read guest usage: %w", err)
	}
	return n, nil
}

func (r *SQLiteRepository) IncrementUsage(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO guest_usage (id, count) VALUES (1, 1)
		ON CONFLICT(id) DO UPDATE SET count = count + 1
	`)
	if err != nil {
		return fmt.Errorf("failed to increment guest usage: %w", err)
	}
	return nil
}
