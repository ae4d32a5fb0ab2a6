package storage

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("key not found")
	ErrIndexOutOfRange = errors.New("saved post index out of range")
)

// Store is string-keyed, string-valued persistence.
// Implementations must be safe for concurrent use. Last write wins.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

// StatsReporter is implemented by backends that can describe their own
// occupancy or connection pool for the health endpoint.
type StatsReporter interface {
	Stats() map[string]any
}

// StorageError marks a best-effort persistence failure
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
