package storage

import "context"

// ScopedStore prefixes every key so several sessions can share one backend
type ScopedStore struct {
	inner  Store
	prefix string
}

// Scoped returns a view of s where key k is stored as "<prefix>:<k>"
func Scoped(s Store, prefix string) *ScopedStore {
	return &ScopedStore{inner: s, prefix: prefix}
}

func (s *ScopedStore) key(k string) string {
	return s.prefix + ":" + k
}

func (s *ScopedStore) Get(ctx context.Context, key string) (string, error) {
	return s.inner.Get(ctx, s.key(key))
}

func (s *ScopedStore) Set(ctx context.Context, key, value string) error {
	return s.inner.Set(ctx, s.key(key), value)
}

func (s *ScopedStore) Remove(ctx context.Context, key string) error {
	return s.inner.Remove(ctx, s.key(key))
}

func (s *ScopedStore) Ping(ctx context.Context) error {
	return s.inner.Ping(ctx)
}

// Close is a no-op; the shared backend is closed by its owner
func (s *ScopedStore) Close() error {
	return nil
}
