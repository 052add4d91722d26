package content

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/lixenwraith/pixel-angler/fish"
	"github.com/lixenwraith/pixel-angler/status"
)

// stubService returns a fixed reply and records the requested tier
type stubService struct {
	text  string
	err   error
	calls int
	last  Request
}

func (s *stubService) Name() string { return "stub" }

func (s *stubService) Generate(ctx context.Context, req Request) (string, error) {
	s.calls++
	s.last = req
	return s.text, s.err
}

// blockingService waits for release or cancellation
type blockingService struct {
	release chan string
}

func (s *blockingService) Name() string { return "blocking" }

func (s *blockingService) Generate(ctx context.Context, req Request) (string, error) {
	select {
	case text := <-s.release:
		return text, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func rareTier(t *testing.T) fish.Tier {
	t.Helper()
	tier, ok := fish.TierOf(fish.RarityRare)
	if !ok {
		t.Fatal("rare tier missing")
	}
	return tier
}

const validRare = `{"name":"Moon Carp","rarity":"Rare","weight":12.5,"description":"Glows at night.","color":"#33ccff","price":900}`

func TestGenerateValid(t *testing.T) {
	reg := status.NewRegistry()
	svc := &stubService{text: validRare}
	g := NewGenerator(svc, reg, quietLogger())

	res := g.Generate(context.Background(), rareTier(t))
	if res.Fallback || res.Err != nil {
		t.Fatalf("unexpected fallback: %v", res.Err)
	}
	if res.Catch.Name != "Moon Carp" || res.Catch.Price != 900 {
		t.Errorf("catch = %+v", res.Catch)
	}
	if svc.last.Tier.Rarity != fish.RarityRare {
		t.Errorf("requested rarity = %v, want Rare", svc.last.Tier.Rarity)
	}
	if got := reg.Counter(status.ContentRequests).Load(); got != 1 {
		t.Errorf("requests = %d, want 1", got)
	}
	if got := reg.Counter(status.ContentFallbacks).Load(); got != 0 {
		t.Errorf("fallbacks = %d, want 0", got)
	}
}

func TestGenerateFallbacks(t *testing.T) {
	tests := []struct {
		name string
		text string
		err  error
	}{
		{"service error", "", errors.New("quota exceeded")},
		{"empty body", "   ", nil},
		{"malformed json", `{"name":`, nil},
		{"wrong rarity", `{"name":"X","rarity":"Legendary","weight":1,"description":"d","color":"#000000","price":900}`, nil},
		{"lowercase rarity", `{"name":"X","rarity":"rare","weight":1,"description":"d","color":"#000000","price":900}`, nil},
		{"price above band", `{"name":"X","rarity":"Rare","weight":1,"description":"d","color":"#000000","price":1801}`, nil},
		{"bad color", `{"name":"X","rarity":"Rare","weight":1,"description":"d","color":"blue","price":900}`, nil},
		{"zero weight", `{"name":"X","rarity":"Rare","weight":0,"description":"d","color":"#000000","price":900}`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := status.NewRegistry()
			g := NewGenerator(&stubService{text: tt.text, err: tt.err}, reg, quietLogger())

			res := g.Generate(context.Background(), rareTier(t))
			if !res.Fallback {
				t.Fatalf("expected fallback, got %+v", res.Catch)
			}
			if res.Err == nil {
				t.Error("fallback without cause")
			}
			if res.Catch != fish.Fallback() {
				t.Errorf("catch = %+v, want fallback", res.Catch)
			}
			if got := reg.Counter(status.ContentFallbacks).Load(); got != 1 {
				t.Errorf("fallbacks = %d, want 1", got)
			}
		})
	}
}

func TestGenerateWithoutService(t *testing.T) {
	g := NewGenerator(nil, nil, quietLogger())
	res := g.Generate(context.Background(), rareTier(t))
	if !res.Fallback || !errors.Is(res.Err, ErrNoService) {
		t.Errorf("result = %+v, want fallback with ErrNoService", res)
	}
}

func TestGenerateStripsFences(t *testing.T) {
	g := NewGenerator(&stubService{text: "```json\n" + validRare + "\n```"}, nil, quietLogger())
	res := g.Generate(context.Background(), rareTier(t))
	if res.Fallback {
		t.Fatalf("fenced document rejected: %v", res.Err)
	}
}

func TestPrefetchTakeBeforeReady(t *testing.T) {
	svc := &blockingService{release: make(chan string)}
	p := NewPrefetcher(NewGenerator(svc, nil, quietLogger()), rand.New(rand.NewPCG(1, 2)), time.Second, nil)

	p.Begin()
	start := time.Now()
	res := p.Take()
	if time.Since(start) > 50*time.Millisecond {
		t.Error("Take blocked")
	}
	if !res.Fallback || !errors.Is(res.Err, ErrNotReady) {
		t.Errorf("result = %+v, want not-ready fallback", res)
	}

	p.Cancel()
	p.Wait()
}

func TestPrefetchResolves(t *testing.T) {
	svc := &stubService{text: validRare}
	p := NewPrefetcher(NewGenerator(svc, nil, quietLogger()), fixedSource(0.8), time.Second, nil)

	tier := p.Begin()
	if tier.Rarity != fish.RarityRare {
		t.Fatalf("drawn tier = %v, want Rare", tier.Rarity)
	}
	p.Wait()

	if !p.Ready() {
		t.Fatal("fetch not ready after Wait")
	}
	res := p.Take()
	if res.Fallback {
		t.Fatalf("unexpected fallback: %v", res.Err)
	}
	if res.Catch.Rarity != tier.Rarity {
		t.Errorf("rarity = %v, want %v", res.Catch.Rarity, tier.Rarity)
	}
}

func TestPrefetchCancelDiscardsLateResult(t *testing.T) {
	reg := status.NewRegistry()
	svc := &blockingService{release: make(chan string, 1)}
	p := NewPrefetcher(NewGenerator(svc, nil, quietLogger()), fixedSource(0.8), time.Second, reg)

	p.Begin()
	p.Cancel()
	svc.release <- validRare
	p.Wait()

	if p.Ready() {
		t.Error("cancelled fetch reported ready")
	}
	if res := p.Take(); !res.Fallback {
		t.Errorf("stale result leaked: %+v", res.Catch)
	}
}

func TestPrefetchNewEpisodeIgnoresPrevious(t *testing.T) {
	reg := status.NewRegistry()
	svc := &blockingService{release: make(chan string, 2)}
	p := NewPrefetcher(NewGenerator(svc, nil, quietLogger()), fixedSource(0.8), time.Second, reg)

	p.Begin()
	p.Begin()
	svc.release <- validRare
	svc.release <- validRare
	p.Wait()

	if got := reg.Counter(status.ContentStale).Load(); got != 1 {
		t.Errorf("stale = %d, want 1", got)
	}
	res := p.Take()
	if res.Fallback || res.Catch.Name != "Moon Carp" {
		t.Errorf("result = %+v, want current episode's catch", res)
	}
	p.Cancel()
}

func TestPrefetchTimeoutFallsBack(t *testing.T) {
	svc := &blockingService{release: make(chan string)}
	p := NewPrefetcher(NewGenerator(svc, nil, quietLogger()), fixedSource(0.1), 10*time.Millisecond, nil)

	p.Begin()
	p.Wait()

	if !p.Ready() {
		t.Fatal("timed out fetch should resolve to fallback")
	}
	res := p.Take()
	if !res.Fallback || !errors.Is(res.Err, context.DeadlineExceeded) {
		t.Errorf("result = %+v, want deadline fallback", res)
	}
}

// fixedSource always returns the same uniform value
type fixedSource float64

func (f fixedSource) Float64() float64 { return float64(f) }

func TestPrefetchLateWriterKeepsNewerResult(t *testing.T) {
	p := NewPrefetcher(NewGenerator(nil, nil, quietLogger()), fixedSource(0.8), time.Second, nil)
	older := Result{Catch: fish.Fallback(), Fallback: true}
	newer := Result{Catch: fish.Generated{Name: "Moon Carp", Rarity: fish.RarityRare, Weight: 12.5, Color: "#33ccff", Price: 900}}

	p.generation.Store(7)
	if !p.publish(7, newer) {
		t.Fatal("current episode's result rejected")
	}

	// an earlier episode's writer that passed its check before the newer store
	p.generation.Store(6)
	if p.publish(6, older) {
		t.Error("older result replaced a newer one")
	}
	p.generation.Store(7)
	if res := p.Take(); res.Fallback || res.Catch.Name != "Moon Carp" {
		t.Errorf("result = %+v, want newer catch", res)
	}

	p.generation.Store(8)
	if p.publish(7, older) {
		t.Error("ended episode published")
	}
}
