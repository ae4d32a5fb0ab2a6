package generation

import (
	"errors"
	"sync"

	"golang.org/x/sync/semaphore"
)

var ErrBusy = errors.New("a generation is already in progress")

// BusyGuard allows at most one in-flight generation per session
type BusyGuard struct {
	mu    sync.Mutex
	slots map[string]*semaphore.Weighted
}

func NewBusyGuard() *BusyGuard {
	return &BusyGuard{slots: make(map[string]*semaphore.Weighted)}
}

// Acquire marks the session busy. The returned release func must be deferred.
func (g *BusyGuard) Acquire(sessionID string) (func(), error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	sem, ok := g.slots[sessionID]
	if !ok {
		sem = semaphore.NewWeighted(1)
		g.slots[sessionID] = sem
	}
	if !sem.TryAcquire(1) {
		return nil, ErrBusy
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			defer g.mu.Unlock()
			sem.Release(1)
			delete(g.slots, sessionID)
		})
	}, nil
}

// Busy reports whether the session currently has a generation in flight
func (g *BusyGuard) Busy(sessionID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.slots[sessionID]
	return ok
}
