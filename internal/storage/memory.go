package storage

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
)

const (
	DefaultMemoryEntries = 100000
	defaultMemoryTTL     = 24 * time.Hour
)

var _ StatsReporter = (*MemoryStore)(nil)

// ErrEvicted marks an entry dropped for capacity before its TTL ran out
var ErrEvicted = errors.New("evicted before expiry")

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryStore keeps entries in process memory. An entry expires once it has
// been neither read nor written for the TTL. When the store is full the least
// recently used entry is dropped and a warning is logged.
type MemoryStore struct {
	// mu keeps a read refresh from overwriting a concurrent write
	mu       sync.Mutex
	cache    *expirable.LRU[string, memoryEntry]
	size     int
	ttl      time.Duration
	logger   *zap.Logger
	removing sync.Map
	closing  atomic.Bool
	evicted  atomic.Int64
}

func NewMemoryStore(size int, ttl time.Duration, logger *zap.Logger) *MemoryStore {
	if size <= 0 {
		size = DefaultMemoryEntries
	}
	if ttl <= 0 {
		ttl = defaultMemoryTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &MemoryStore{size: size, ttl: ttl, logger: logger}
	m.cache = expirable.NewLRU[string, memoryEntry](size, m.onEvict, ttl)
	return m
}

// onEvict runs for every removal; only capacity evictions are reported
func (m *MemoryStore) onEvict(key string, entry memoryEntry) {
	if m.closing.Load() {
		return
	}
	if _, ok := m.removing.Load(key); ok {
		return
	}
	if !time.Now().Before(entry.expiresAt) {
		return
	}
	m.evicted.Add(1)
	m.logger.Warn("⚠️ Memory store full, dropped entry",
		zap.Error(&StorageError{Op: "evict", Key: key, Err: ErrEvicted}),
		zap.Int("capacity", m.size),
	)
}

func (m *MemoryStore) entry(value string) memoryEntry {
	return memoryEntry{value: value, expiresAt: time.Now().Add(m.ttl)}
}

// Get returns the value and restarts its TTL
func (m *MemoryStore) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.cache.Get(key)
	if !ok {
		return "", ErrNotFound
	}
	m.cache.Add(key, m.entry(e.value))
	return e.value, nil
}

func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cache.Add(key, m.entry(value))
	return nil
}

func (m *MemoryStore) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.removing.Store(key, struct{}{})
	m.cache.Remove(key)
	m.removing.Delete(key)
	return nil
}

func (m *MemoryStore) Ping(context.Context) error {
	return nil
}

func (m *MemoryStore) Close() error {
	m.closing.Store(true)
	m.cache.Purge()
	return nil
}

// Len returns the number of live entries
func (m *MemoryStore) Len() int {
	return m.cache.Len()
}

// Evicted returns how many entries were dropped for capacity
func (m *MemoryStore) Evicted() int64 {
	return m.evicted.Load()
}

// Stats reports occupancy for the health endpoint
func (m *MemoryStore) Stats() map[string]any {
	return map[string]any{
		"backend":  "memory",
		"entries":  m.Len(),
		"capacity": m.size,
		"evicted":  m.Evicted(),
	}
}
