package network

import (
	"github.com/lixenwraith/pixel-angler/engine"
)

// ProtocolVersion is stamped on every frame sent to spectators
const ProtocolVersion = 1

// Frame types
const (
	FrameHello    = "hello"
	FrameSnapshot = "snapshot"
)

// Frame is the websocket envelope
type Frame struct {
	Ver      int              `json:"ver"`
	Type     string           `json:"type"`
	Interval int64            `json:"intervalMs,omitempty"`
	Snapshot *engine.Snapshot `json:"snapshot,omitempty"`
}

// errorBody is the JSON error payload of the REST endpoints
type errorBody struct {
	Error string `json:"error"`
}
