package service

import "sync"

// InflightGuard rejects a user action while an identical one is still
// outstanding, so rapid repeated clicks cannot issue overlapping upstream
// requests. Keys are scoped per session credential and action name. The
// guard is process-local: every session is served by this one process.
type InflightGuard struct {
	mu     sync.Mutex
	active map[string]struct{}
}

func NewInflightGuard() *InflightGuard {
	return &InflightGuard{active: make(map[string]struct{})}
}

// TryAcquire claims the key, reporting false if it is already held.
func (g *InflightGuard) TryAcquire(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.active[key]; busy {
		return false
	}
	g.active[key] = struct{}{}
	return true
}

// Release frees the key. Releasing an unheld key is a no-op.
func (g *InflightGuard) Release(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.active, key)
}
