package storage

import (
	"context"
	"encoding/json"
	"errors"
)

// GetJSON reads key and decodes it into T. Absent keys return ErrNotFound.
func GetJSON[T any](ctx context.Context, s Store, key string) (T, error) {
	var out T

	raw, err := s.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return out, ErrNotFound
		}
		return out, &StorageError{Op: "get", Key: key, Err: err}
	}

	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return out, &StorageError{Op: "decode", Key: key, Err: err}
	}

	return out, nil
}

// SetJSON encodes v and replaces whatever is stored under key
func SetJSON[T any](ctx context.Context, s Store, key string, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return &StorageError{Op: "encode", Key: key, Err: err}
	}

	if err := s.Set(ctx, key, string(data)); err != nil {
		return &StorageError{Op: "set", Key: key, Err: err}
	}

	return nil
}
