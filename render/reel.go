package render

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/pixel-angler/constant"
	"github.com/lixenwraith/pixel-angler/physics"
)

// ReelRenderer draws the vertical minigame: track, bar, fish and progress meter
type ReelRenderer struct{}

// IsVisible implements VisibilityToggle
func (r *ReelRenderer) IsVisible(ctx RenderContext) bool {
	return ctx.Snap.Reel != nil
}

// Render implements SystemRenderer
func (r *ReelRenderer) Render(ctx RenderContext, s tcell.Screen) {
	view := ctx.Snap.Reel
	x0 := ctx.SceneWidth
	h := ctx.SceneHeight
	if h < 6 {
		return
	}

	bg := tcell.StyleDefault.Background(RgbBackground)
	fillRect(s, x0, 0, constant.ReelColumnWidth, h, ' ', bg)
	drawText(s, x0+1, 0, bg.Foreground(RgbStatusBar).Bold(true), "REEL")

	top, bottom := 2, h-2
	trackX := x0 + 2
	meterX := x0 + 6
	border := bg.Foreground(RgbBorder)
	drawBox(s, trackX-1, top-1, 3, bottom-top+3, border, "")
	drawBox(s, meterX-1, top-1, 3, bottom-top+3, border, "")

	rows := bottom - top + 1
	toRow := func(pos float64) int {
		return bottom - int(math.Round(pos/constant.ReelSpan*float64(rows-1)))
	}

	track := bg.Foreground(RgbTrack)
	for y := top; y <= bottom; y++ {
		s.SetContent(trackX, y, tcell.RuneBoard, nil, track)
	}

	rod := ctx.Catalog.Resolve(ctx.Snap.GearID)
	barColor := HexColor(rod.Color, RgbBarHit)
	if view.Overlap {
		barColor = RgbBarHit
	}
	bar := physics.SpanAt(view.BarPos, view.BarWidth)
	barStyle := bg.Foreground(barColor)
	for y := toRow(bar.Hi); y <= toRow(bar.Lo); y++ {
		if y >= top && y <= bottom {
			s.SetContent(trackX, y, tcell.RuneBlock, nil, barStyle)
		}
	}

	fishRow := toRow(view.FishPos)
	s.SetContent(trackX, fishRow, tcell.RuneDiamond, nil, bg.Foreground(RgbReelFish).Bold(true))

	filled := int(math.Round(view.Progress / 100 * float64(rows)))
	meter := bg.Foreground(meterColor(view.Progress))
	for i := 0; i < filled; i++ {
		s.SetContent(meterX, bottom-i, tcell.RuneBlock, nil, meter)
	}

	drawText(s, x0+1, h-1, bg.Foreground(RgbStatusBar), fmt.Sprintf("%3.0f%%", view.Progress))
}

func meterColor(progress float64) tcell.Color {
	switch {
	case progress > 50:
		return RgbMeterHigh
	case progress > constant.ShakeProgressThreshold:
		return RgbMeterMid
	default:
		return RgbMeterLow
	}
}
