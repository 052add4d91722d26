package content

import (
	"context"
	"errors"

	"github.com/lixenwraith/pixel-angler/fish"
)

var (
	// ErrNoService marks a generator running without credentials or endpoint
	ErrNoService = errors.New("content service not configured")
	// ErrEmptyResponse is returned when the service answers without a body
	ErrEmptyResponse = errors.New("content service returned empty response")
	// ErrNotReady is reported when a catch is taken before the fetch resolved
	ErrNotReady = errors.New("content fetch not resolved")
)

// Request constrains generation to a locally drawn tier
type Request struct {
	Tier fish.Tier
}

// Service produces the raw JSON text of one generated catch
// Implementations must honor ctx cancellation
type Service interface {
	Name() string
	Generate(ctx context.Context, req Request) (string, error)
}
