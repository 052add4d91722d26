package network

import "time"

// Config holds spectator server configuration
type Config struct {
	// Address to bind; port 0 picks a free port
	Address string

	// BroadcastInterval throttles snapshot delivery per spectator
	BroadcastInterval time.Duration

	// Timing
	WriteTimeout      time.Duration
	PongTimeout       time.Duration
	PingInterval      time.Duration
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration

	// SendBuffer is the per-spectator snapshot queue; overflow drops the oldest
	SendBuffer int

	// ReadLimit caps inbound frame size; spectators only send control frames
	ReadLimit int64
}

// DefaultConfig returns loopback defaults at 15 snapshots per second
func DefaultConfig() *Config {
	return &Config{
		Address:           "127.0.0.1:8787",
		BroadcastInterval: time.Second / 15,
		WriteTimeout:      2 * time.Second,
		PongTimeout:       30 * time.Second,
		PingInterval:      20 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   2 * time.Second,
		SendBuffer:        4,
		ReadLimit:         512,
	}
}
