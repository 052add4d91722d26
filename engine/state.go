package engine

import (
	"fmt"

	"github.com/lixenwraith/pixel-angler/constant"
)

// State is the minigame phase; exactly one holds at any time
type State uint8

const (
	StateIdle State = iota
	StateCasting
	StateWaiting
	StateBiting
	StateReeling
	StateCaught
	StateEscaped
)

var stateNames = [...]string{
	StateIdle:    "IDLE",
	StateCasting: "CASTING",
	StateWaiting: "WAITING",
	StateBiting:  "BITING",
	StateReeling: "REELING",
	StateCaught:  "CAUGHT",
	StateEscaped: "ESCAPED",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// MarshalText encodes the state by name for the spectator feed
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name written by MarshalText
func (s *State) UnmarshalText(text []byte) error {
	for i, name := range stateNames {
		if name == string(text) {
			*s = State(i)
			return nil
		}
	}
	return fmt.Errorf("unknown state %q", text)
}

// Feedback returns the status line for the state
func (s State) Feedback() string {
	switch s {
	case StateCasting:
		return constant.FeedbackCasting
	case StateWaiting:
		return constant.FeedbackWaiting
	case StateBiting:
		return constant.FeedbackBiting
	case StateReeling:
		return constant.FeedbackReeling
	case StateCaught:
		return constant.FeedbackCaught
	case StateEscaped:
		return constant.FeedbackEscaped
	default:
		return constant.FeedbackIdle
	}
}

// Overlay is a non-gameplay panel; any open overlay blocks casting
type Overlay uint8

const (
	OverlayNone Overlay = iota
	OverlayInventory
	OverlayShop
	OverlaySellShop
)

var overlayNames = [...]string{
	OverlayNone:      "none",
	OverlayInventory: "inventory",
	OverlayShop:      "shop",
	OverlaySellShop:  "sell",
}

func (o Overlay) String() string {
	if int(o) < len(overlayNames) {
		return overlayNames[o]
	}
	return fmt.Sprintf("Overlay(%d)", uint8(o))
}

// MarshalText encodes the overlay by name
func (o Overlay) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText decodes an overlay name written by MarshalText
func (o *Overlay) UnmarshalText(text []byte) error {
	for i, name := range overlayNames {
		if name == string(text) {
			*o = Overlay(i)
			return nil
		}
	}
	return fmt.Errorf("unknown overlay %q", text)
}
