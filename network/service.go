package network

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/lixenwraith/pixel-angler/core"
)

// Service wraps the spectator HTTP server as a hub-managed service
type Service struct {
	src    Sources
	config *Config
	logger *slog.Logger

	mu         sync.Mutex
	server     *http.Server
	listener   net.Listener
	spectators *spectatorHandler
	served     chan struct{}

	disabled atomic.Bool
	running  atomic.Bool
}

// NewService creates a spectator service (disabled until Init receives a config)
func NewService(src Sources, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		src:    src,
		config: DefaultConfig(),
		logger: logger,
	}
	s.disabled.Store(true)
	return s
}

// Name implements service.Service
func (s *Service) Name() string {
	return "network"
}

// Dependencies implements service.Service
func (s *Service) Dependencies() []string {
	return nil
}

// Init implements service.Service
// args[0]: *Config (optional, nil keeps the server disabled)
func (s *Service) Init(args ...any) error {
	if len(args) == 0 {
		return nil
	}
	cfg, ok := args[0].(*Config)
	if !ok || cfg == nil {
		return nil
	}
	if cfg.Address == "" {
		return fmt.Errorf("network: empty address")
	}
	s.config = cfg
	s.disabled.Store(false)
	return nil
}

// Start implements service.Service
func (s *Service) Start() error {
	if s.disabled.Load() || s.running.Load() {
		return nil
	}

	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return fmt.Errorf("network: listen %s: %w", s.config.Address, err)
	}

	router, spectators := newRouter(s.src, s.config, s.logger)
	srv := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
	}
	served := make(chan struct{})

	s.mu.Lock()
	s.server, s.listener, s.spectators, s.served = srv, ln, spectators, served
	s.mu.Unlock()
	s.running.Store(true)

	core.Go(func() {
		defer close(served)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("spectator server stopped", "error", err)
		}
	})
	s.logger.Info("spectator server listening", "addr", ln.Addr().String())
	return nil
}

// Stop implements service.Service
func (s *Service) Stop() error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}

	s.mu.Lock()
	srv, spectators, served := s.server, s.spectators, s.served
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	// Hijacked websocket connections are not tracked by Shutdown
	spectators.closeAll()
	err := srv.Shutdown(ctx)
	if err != nil {
		srv.Close()
	}
	<-served
	return err
}

// Addr returns the bound address, empty when not running
func (s *Service) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running.Load() || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Spectators returns the number of connected websocket clients
func (s *Service) Spectators() int {
	s.mu.Lock()
	spectators := s.spectators
	s.mu.Unlock()
	if spectators == nil {
		return 0
	}
	return spectators.count()
}

// IsRunning returns true while the server accepts connections
func (s *Service) IsRunning() bool {
	return s.running.Load()
}
