package service

import (
	"context"
	"sync"
)

// ExportedSavingGuard is an exported alias so _test packages can test the guard.
type ExportedSavingGuard = savingGuard

// ─────────────────────────────────────────────────────────────
// savingGuard — prevents double-submission of gateway calls
// ─────────────────────────────────────────────────────────────

// savingGuard ensures only one save/publish per store is in flight at a
// time. A second submission while one is pending is rejected rather than
// queued: the user re-attempts after the first completes.
type savingGuard struct {
	mu       sync.Mutex
	inFlight map[string]struct{}
	wg       sync.WaitGroup
}

// TryLock attempts to mark storeID as saving. Returns true if successful.
// Returns false if a save for that store is already in flight.
func (g *savingGuard) TryLock(storeID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.inFlight == nil {
		g.inFlight = make(map[string]struct{})
	}
	if _, ok := g.inFlight[storeID]; ok {
		return false // already saving
	}
	g.inFlight[storeID] = struct{}{}
	g.wg.Add(1)
	return true
}

// Unlock releases the store. Must be called after TryLock returns true,
// on completion or failure.
func (g *savingGuard) Unlock(storeID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.inFlight, storeID)
	g.wg.Done()
}

// WaitAll blocks until all in-flight saves complete or ctx is cancelled.
// Used for graceful shutdown.
func (g *savingGuard) WaitAll(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		g.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
	}
}
