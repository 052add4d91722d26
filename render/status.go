package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/pixel-angler/engine"
)

// StatusRenderer draws the bottom bar: feedback, gold, equipped rod and optional counters
type StatusRenderer struct{}

// Render implements SystemRenderer
func (r *StatusRenderer) Render(ctx RenderContext, s tcell.Screen) {
	y := ctx.ScreenHeight - 1
	w := ctx.ScreenWidth
	base := tcell.StyleDefault.Background(RgbStatusBg).Foreground(RgbStatusBar)
	fillRect(s, 0, y, w, 1, ' ', base)

	feedback := ctx.Snap.Feedback
	if ctx.Message != "" {
		feedback = ctx.Message
	}
	fbStyle := base.Bold(true)
	if ctx.Snap.State == engine.StateBiting {
		fbStyle = fbStyle.Foreground(RgbBite)
	}
	x := drawText(s, 1, y, fbStyle, feedback)

	x = drawText(s, x+2, y, base.Foreground(RgbGold), fmt.Sprintf("Gold: %d", ctx.Ledger.Balance))

	rod := ctx.Catalog.Resolve(ctx.Snap.GearID)
	x = drawText(s, x+2, y, base.Foreground(HexColor(rod.Color, RgbStatusBar)), rod.Name)

	x = drawText(s, x+2, y, base.Foreground(RgbMuted), fmt.Sprintf("Fish: %d", len(ctx.Ledger.Inventory)))

	if ctx.Muted {
		x = drawText(s, x+2, y, base.Foreground(RgbMuted), "[muted]")
	}

	if ctx.Stats != nil {
		stats := formatStats(ctx.Stats)
		start := max(x+2, w-len(stats)-1)
		drawText(s, start, y, base.Foreground(RgbMuted), stats)
	}
}

func formatStats(stats map[string]int64) string {
	keys := make([]string, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		name := k
		if idx := strings.LastIndexByte(k, '.'); idx >= 0 {
			name = k[idx+1:]
		}
		fmt.Fprintf(&b, "%s=%d", name, stats[k])
	}
	return b.String()
}
