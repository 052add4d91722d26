package content

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/pixel-angler/core"
	"github.com/lixenwraith/pixel-angler/fish"
	"github.com/lixenwraith/pixel-angler/status"
)

// prefetched is a generation result tagged with the episode that requested it
type prefetched struct {
	generation uint64
	result     Result
}

// Prefetcher runs one speculative generation per episode off the game loop
// Begin, Take and Cancel are called from the loop goroutine; only the fetch runs elsewhere
type Prefetcher struct {
	generator *Generator
	rng       fish.Source
	timeout   time.Duration

	generation atomic.Uint64
	result     atomic.Pointer[prefetched]
	cancel     context.CancelFunc
	wg         sync.WaitGroup

	stale *atomic.Int64
}

// NewPrefetcher creates a prefetcher drawing tiers from rng
func NewPrefetcher(generator *Generator, rng fish.Source, timeout time.Duration, reg *status.Registry) *Prefetcher {
	return &Prefetcher{
		generator: generator,
		rng:       rng,
		timeout:   timeout,
		stale:     reg.Counter(status.ContentStale),
	}
}

// Begin draws the episode's tier locally and starts its fetch, dropping any earlier one
func (p *Prefetcher) Begin() fish.Tier {
	p.Cancel()
	gen := p.generation.Load()
	tier := fish.Draw(p.rng)

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	p.cancel = cancel

	p.wg.Add(1)
	core.Go(func() {
		defer p.wg.Done()
		defer cancel()

		if !p.publish(gen, p.generator.Generate(ctx, tier)) {
			p.stale.Add(1)
		}
	})
	return tier
}

// publish stores res for episode gen unless that episode has ended or a newer result is in place
// The compare-and-swap keeps a late writer from replacing a result stored after its check
func (p *Prefetcher) publish(gen uint64, res Result) bool {
	next := &prefetched{generation: gen, result: res}
	for {
		cur := p.result.Load()
		if p.generation.Load() != gen || (cur != nil && cur.generation > gen) {
			return false
		}
		if p.result.CompareAndSwap(cur, next) {
			return true
		}
	}
}

// Take returns the current episode's result, or the fallback if it has not resolved
// Never blocks
func (p *Prefetcher) Take() Result {
	r := p.result.Load()
	if r == nil || r.generation != p.generation.Load() {
		return fallbackResult(ErrNotReady)
	}
	return r.result
}

// Ready reports whether the current episode's fetch has resolved
func (p *Prefetcher) Ready() bool {
	r := p.result.Load()
	return r != nil && r.generation == p.generation.Load()
}

// Cancel invalidates the in-flight fetch; a late result is discarded
// Idempotent
func (p *Prefetcher) Cancel() {
	p.generation.Add(1)
	p.result.Store(nil)
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

// Wait blocks until every launched fetch goroutine has returned
func (p *Prefetcher) Wait() {
	p.wg.Wait()
}
