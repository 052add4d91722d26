package status

import (
	"sync"
	"sync/atomic"
)

// Metric keys shared by the core and the spectator feed
const (
	Casts            = "game.casts"
	Bites            = "game.bites"
	Reels            = "game.reels"
	Catches          = "game.catches"
	Escapes          = "game.escapes"
	Frames           = "engine.frames"
	ContentRequests  = "content.requests"
	ContentFallbacks = "content.fallbacks"
	ContentStale     = "content.stale"
	Spectators       = "network.spectators"
	SpectatorDrops   = "network.drops"
)

// Registry is the central counter facade
// Components cache pointers during construction; hot paths write the atomics directly
// Registration takes the lock; cached pointer access is lock-free
type Registry struct {
	mu       sync.RWMutex
	counters map[string]*atomic.Int64
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		counters: make(map[string]*atomic.Int64),
	}
}

// Counter returns the cached counter for key, creating it on first use
// A nil registry yields a private throwaway
func (r *Registry) Counter(key string) *atomic.Int64 {
	if r == nil {
		return new(atomic.Int64)
	}

	r.mu.RLock()
	c, ok := r.counters[key]
	r.mu.RUnlock()
	if ok {
		return c
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.counters[key]; ok {
		return c
	}
	c = new(atomic.Int64)
	r.counters[key] = c
	return c
}

// Len returns the number of registered counters
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.counters)
}

// Snapshot copies every counter into a plain map for display and JSON
func (r *Registry) Snapshot() map[string]int64 {
	if r == nil {
		return map[string]int64{}
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]int64, len(r.counters))
	for key, c := range r.counters {
		out[key] = c.Load()
	}
	return out
}
