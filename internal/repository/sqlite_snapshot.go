package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SQLiteSnapshotRepo implements SnapshotRepo over a single snapshots table.
type SQLiteSnapshotRepo struct {
	db *sql.DB
}

// NewSQLiteSnapshotRepo creates a new SQLiteSnapshotRepo.
func NewSQLiteSnapshotRepo(db *sql.DB) *SQLiteSnapshotRepo {
	return &SQLiteSnapshotRepo{db: db}
}

func (r *SQLiteSnapshotRepo) Save(ctx context.Context, key string, blob []byte) error {
	query := `INSERT INTO snapshots (key, blob, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET blob = excluded.blob, updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query, key, string(blob), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("saving snapshot %q: %w", key, err)
	}
	return nil
}

func (r *SQLiteSnapshotRepo) Load(ctx context.Context, key string) ([]byte, error) {
	var blob string
	err := r.db.QueryRowContext(ctx, `SELECT blob FROM snapshots WHERE key = ?`, key).Scan(&blob)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("snapshot %q: %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("loading snapshot %q: %w", key, err)
	}
	return []byte(blob), nil
}

func (r *SQLiteSnapshotRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM snapshots WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleting snapshot %q: %w", key, err)
	}
	return nil
}
