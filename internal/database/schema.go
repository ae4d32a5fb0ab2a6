package database

import "context"

// CreateTables creates the key-value table used as the session store
func (db *DB) CreateTables(ctx context.Context) error {
	db.logger.Info("Creating database tables...")

	kvTable := `
	CREATE TABLE IF NOT EXISTS kv_entries (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_kv_entries_updated ON kv_entries(updated_at DESC);
	`

	if _, err := db.Pool.Exec(ctx, kvTable); err != nil {
		return err
	}

	db.logger.Info("✅ All tables created successfully")
	return nil
}
