package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Pool sizing used when Options leaves a bound at zero
const (
	DefaultMaxConns = 10
	DefaultMinConns = 2
)

// Options configures the connection pool
type Options struct {
	URL      string
	MaxConns int32
	MinConns int32
	Logger   *zap.Logger
}

// DB owns the pgx pool behind the postgres store
type DB struct {
	Pool   *pgxpool.Pool
	logger *zap.Logger
}

// poolConfig parses the URL and applies the pool bounds
func poolConfig(opts Options) (*pgxpool.Config, error) {
	config, err := pgxpool.ParseConfig(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database URL: %w", err)
	}

	config.MaxConns = opts.MaxConns
	if config.MaxConns <= 0 {
		config.MaxConns = DefaultMaxConns
	}
	config.MinConns = opts.MinConns
	if config.MinConns <= 0 {
		config.MinConns = DefaultMinConns
	}
	if config.MinConns > config.MaxConns {
		return nil, fmt.Errorf("min connections %d exceed max connections %d", config.MinConns, config.MaxConns)
	}
	return config, nil
}

// NewDB opens the pool and checks that the server answers
func NewDB(ctx context.Context, opts Options) (*DB, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	config, err := poolConfig(opts)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	logger.Info("✅ Database connected",
		zap.Int32("max_conns", config.MaxConns),
		zap.Int32("min_conns", config.MinConns),
	)

	return &DB{Pool: pool, logger: logger}, nil
}

func (db *DB) Close() {
	db.Pool.Close()
	db.logger.Info("Database connection closed")
}

func (db *DB) Health(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}

// Stats snapshots pool usage. A pool with every connection acquired is
// where a slow health check usually comes from.
func (db *DB) Stats() map[string]any {
	stat := db.Pool.Stat()
	return map[string]any{
		"backend":        "postgres",
		"total_conns":    stat.TotalConns(),
		"idle_conns":     stat.IdleConns(),
		"acquired_conns": stat.AcquiredConns(),
		"max_conns":      stat.MaxConns(),
		"exhausted":      stat.AcquiredConns() >= stat.MaxConns(),
	}
}
