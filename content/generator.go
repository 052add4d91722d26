package content

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/lixenwraith/pixel-angler/fish"
	"github.com/lixenwraith/pixel-angler/status"
)

// Result is the outcome of one generation attempt
// Catch is always usable; Fallback marks a substituted catch and Err carries the cause
type Result struct {
	Catch    fish.Generated
	Fallback bool
	Err      error
}

// fallbackResult wraps the fixed fallback catch with its cause
func fallbackResult(err error) Result {
	return Result{Catch: fish.Fallback(), Fallback: true, Err: err}
}

// Generator asks the content service for one catch of a drawn tier and validates it
// A nil service always yields the fallback
type Generator struct {
	service Service
	logger  *slog.Logger

	requests  *atomic.Int64
	fallbacks *atomic.Int64
}

// NewGenerator creates a generator; service may be nil
func NewGenerator(service Service, reg *status.Registry, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		service:   service,
		logger:    logger,
		requests:  reg.Counter(status.ContentRequests),
		fallbacks: reg.Counter(status.ContentFallbacks),
	}
}

// Generate performs a single attempt without retry
func (g *Generator) Generate(ctx context.Context, tier fish.Tier) Result {
	if g.service == nil {
		g.fallbacks.Add(1)
		return fallbackResult(ErrNoService)
	}

	g.requests.Add(1)
	text, err := g.service.Generate(ctx, Request{Tier: tier})
	if err != nil {
		return g.fallback(tier, fmt.Errorf("%s: %w", g.service.Name(), err))
	}

	catch, err := Decode(text)
	if err != nil {
		return g.fallback(tier, err)
	}
	if err := fish.Validate(catch, tier); err != nil {
		return g.fallback(tier, err)
	}

	g.logger.Debug("catch generated", "name", catch.Name, "rarity", catch.Rarity, "price", catch.Price)
	return Result{Catch: catch}
}

func (g *Generator) fallback(tier fish.Tier, err error) Result {
	g.fallbacks.Add(1)
	g.logger.Warn("content generation failed, using fallback", "rarity", tier.Rarity, "error", err)
	return fallbackResult(err)
}
