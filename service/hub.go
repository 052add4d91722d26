package service

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"
)

// Hub owns the registered services and drives their lifecycle in dependency order
type Hub struct {
	mu      sync.RWMutex
	byName  map[string]Service
	order   []string // resolved by InitAll, reset by Register
	running []string // started services, stopped in reverse
	logger  *slog.Logger
}

// NewHub creates an empty hub; a nil logger uses slog.Default
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{byName: make(map[string]Service), logger: logger}
}

// Register adds svc under its Name; duplicate names are rejected
func (h *Hub) Register(svc Service) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	name := svc.Name()
	if _, dup := h.byName[name]; dup {
		return fmt.Errorf("service already registered: %s", name)
	}
	h.byName[name] = svc
	h.order = nil
	return nil
}

// Get looks a service up by name
func (h *Hub) Get(name string) (Service, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	svc, ok := h.byName[name]
	return svc, ok
}

// MustGet returns the named service as T and panics when it is absent or of another type
func MustGet[T any](h *Hub, name string) T {
	svc, ok := h.Get(name)
	if !ok {
		panic(fmt.Sprintf("service not found: %s", name))
	}
	typed, ok := svc.(T)
	if !ok {
		panic(fmt.Sprintf("service %s: type mismatch, got %T", name, svc))
	}
	return typed
}

// InitAll resolves the order and initializes each service with args[name]
// A failure stops the services initialized so far, newest first
func (h *Hub) InitAll(args map[string][]any) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.order == nil {
		order, err := h.resolve()
		if err != nil {
			return err
		}
		h.order = order
	}

	for i, name := range h.order {
		if err := h.byName[name].Init(args[name]...); err != nil {
			h.stopReverse(h.order[:i])
			return fmt.Errorf("service %s init failed: %w", name, err)
		}
	}
	return nil
}

// StartAll starts services in order; a failure stops the ones already running
func (h *Hub) StartAll() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.order == nil {
		return errors.New("StartAll called before InitAll")
	}

	for i, name := range h.order {
		if err := h.byName[name].Start(); err != nil {
			h.stopReverse(h.order[:i])
			h.running = nil
			return fmt.Errorf("service %s start failed: %w", name, err)
		}
		h.running = h.order[:i+1]
	}
	return nil
}

// StopAll stops running services newest first; stop errors are logged, not returned
func (h *Hub) StopAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.stopReverse(h.running)
	h.running = nil
}

func (h *Hub) stopReverse(names []string) {
	for _, name := range slices.Backward(names) {
		if err := h.byName[name].Stop(); err != nil {
			h.logger.Warn("service stop failed", "service", name, "error", err)
		}
	}
}

// resolve orders services so dependencies come first
// Each pass takes every service whose dependencies are placed, in name order, keeping runs reproducible
func (h *Hub) resolve() ([]string, error) {
	pending := make(map[string]int, len(h.byName))
	waiters := make(map[string][]string)
	for name, svc := range h.byName {
		deps := svc.Dependencies()
		for _, dep := range deps {
			if _, ok := h.byName[dep]; !ok {
				return nil, fmt.Errorf("service %s depends on unregistered service: %s", name, dep)
			}
			waiters[dep] = append(waiters[dep], name)
		}
		pending[name] = len(deps)
	}

	order := make([]string, 0, len(h.byName))
	for len(order) < len(h.byName) {
		var layer []string
		for name, n := range pending {
			if n == 0 {
				layer = append(layer, name)
			}
		}
		if len(layer) == 0 {
			return nil, errors.New("circular dependency detected in services")
		}
		slices.Sort(layer)
		for _, name := range layer {
			delete(pending, name)
			for _, w := range waiters[name] {
				pending[w]--
			}
		}
		order = append(order, layer...)
	}
	return order, nil
}

// Names lists the registered services alphabetically
func (h *Hub) Names() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return slices.Sorted(maps.Keys(h.byName))
}
