package render

import (
	"github.com/lixenwraith/pixel-angler/economy"
	"github.com/lixenwraith/pixel-angler/engine"
	"github.com/lixenwraith/pixel-angler/gear"
)

// RenderContext provides frame state for renderers, passed by value
type RenderContext struct {
	Snap    engine.Snapshot
	Ledger  economy.State
	Catalog *gear.Catalog

	// Muted and Message decorate the status bar
	Muted   bool
	Message string

	// Stats is shown in the status bar when non-nil
	Stats map[string]int64

	// Screen dimensions, filled by the orchestrator
	ScreenWidth  int
	ScreenHeight int

	// Scene area excludes the status bar and, while reeling, the minigame column
	SceneWidth  int
	SceneHeight int
}
