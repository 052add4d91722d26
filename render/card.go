package render

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/pixel-angler/constant"
	"github.com/lixenwraith/pixel-angler/engine"
)

// CatchCardRenderer shows the landed fish with keep/sell prompts
type CatchCardRenderer struct{}

// IsVisible implements VisibilityToggle
func (r *CatchCardRenderer) IsVisible(ctx RenderContext) bool {
	return ctx.Snap.State == engine.StateCaught && ctx.Snap.Catch != nil
}

// Render implements SystemRenderer
func (r *CatchCardRenderer) Render(ctx RenderContext, s tcell.Screen) {
	f := ctx.Snap.Catch
	w := min(constant.CardWidth, ctx.SceneWidth)
	inner := w - 4

	desc := wrap(f.Description, inner)
	h := 8 + len(desc)
	x := (ctx.SceneWidth - w) / 2
	y := max(0, (ctx.SceneHeight-h)/2)

	base := tcell.StyleDefault.Background(RgbBackground).Foreground(RgbStatusBar)
	drawBox(s, x, y, w, h, base.Foreground(RarityColor(f.Rarity)), "CAUGHT!")

	row := y + 1
	s.SetContent(x+2, row, tcell.RuneDiamond, nil, base.Foreground(HexColor(f.Color, RgbReelFish)))
	drawText(s, x+4, row, base.Bold(true), truncate(f.Name, inner-2))
	row++
	drawText(s, x+2, row, base.Foreground(RarityColor(f.Rarity)), f.Rarity.String())
	row++
	drawText(s, x+2, row, base, fmt.Sprintf("Weight: %.1f lbs", f.Weight))
	row++
	drawText(s, x+2, row, base.Foreground(RgbGold), fmt.Sprintf("Value: %d gold", f.Price))
	row++
	for _, line := range desc {
		drawText(s, x+2, row, base.Italic(true).Foreground(RgbMuted), line)
		row++
	}
	if ctx.Snap.CatchFallback {
		drawText(s, x+2, row, base.Foreground(RgbMuted), "(offline catch)")
	}
	row++
	drawText(s, x+2, row, base.Bold(true), "[k] Keep   [x] Sell")
}

// wrap splits text on spaces into lines no wider than width
func wrap(text string, width int) []string {
	if width <= 0 {
		return nil
	}
	var lines []string
	var cur strings.Builder
	for _, word := range strings.Fields(text) {
		word = truncate(word, width)
		if cur.Len() > 0 && len([]rune(cur.String()))+1+len([]rune(word)) > width {
			lines = append(lines, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(word)
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}

func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 0 {
		return ""
	}
	if len(r) <= width {
		return s
	}
	if width == 1 {
		return string(r[:1])
	}
	return string(r[:width-1]) + "…"
}
