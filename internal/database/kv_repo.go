package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/dhanushperumalla/ai-post-generator/internal/storage"
)

// KVRepository implements storage.Store on top of the kv_entries table
type KVRepository struct {
	db *DB
}

var (
	_ storage.Store         = (*KVRepository)(nil)
	_ storage.StatsReporter = (*KVRepository)(nil)
)

func NewKVRepository(db *DB) *KVRepository {
	return &KVRepository{db: db}
}

// Get retrieves the value stored under key
func (r *KVRepository) Get(ctx context.Context, key string) (string, error) {
	query := `SELECT value FROM kv_entries WHERE key = $1`

	var value string
	err := r.db.Pool.QueryRow(ctx, query, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", storage.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get entry: %w", err)
	}

	return value, nil
}

// Set inserts or replaces the value stored under key
func (r *KVRepository) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO kv_entries (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`

	if _, err := r.db.Pool.Exec(ctx, query, key, value, time.Now()); err != nil {
		return fmt.Errorf("failed to set entry: %w", err)
	}

	return nil
}

// Remove deletes key; removing an absent key is not an error
func (r *KVRepository) Remove(ctx context.Context, key string) error {
	query := `DELETE FROM kv_entries WHERE key = $1`

	if _, err := r.db.Pool.Exec(ctx, query, key); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	return nil
}

// DeleteOlderThan prunes entries not written since cutoff
func (r *KVRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `DELETE FROM kv_entries WHERE updated_at < $1`

	result, err := r.db.Pool.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune entries: %w", err)
	}

	return result.RowsAffected(), nil
}

func (r *KVRepository) Ping(ctx context.Context) error {
	return r.db.Health(ctx)
}

func (r *KVRepository) Stats() map[string]any {
	return r.db.Stats()
}

func (r *KVRepository) Close() error {
	r.db.Close()
	return nil
}
