package render

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/pixel-angler/constant"
	"github.com/lixenwraith/pixel-angler/engine"
	"github.com/lixenwraith/pixel-angler/physics"
)

// SceneRenderer draws sky, water, dock, rod, line and bobber
type SceneRenderer struct{}

// Render implements SystemRenderer
func (r *SceneRenderer) Render(ctx RenderContext, s tcell.Screen) {
	w, h := ctx.SceneWidth, ctx.SceneHeight
	if w <= 0 || h <= 0 {
		return
	}
	snap := ctx.Snap
	offset := shakeOffset(snap)
	tick := int(snap.Time.UnixMilli() / 250)

	skyStyle := tcell.StyleDefault.Background(RgbSky)
	waterStyle := tcell.StyleDefault.Background(RgbWater).Foreground(RgbWave)

	_, waterRow := project(physics.Point{Y: constant.WaterLevel}, w, h)
	fillRect(s, 0, 0, w, waterRow, ' ', skyStyle)
	for y := waterRow; y < h; y++ {
		for x := 0; x < w; x++ {
			ch := ' '
			if (x+offset+y*3+tick)%constant.WaveSpacing == 0 {
				ch = '~'
			}
			s.SetContent(x, y, ch, nil, waterStyle)
		}
	}

	pivot, tip := rodGeometry(snap)
	px, py := project(pivot, w, h)
	tx, ty := project(tip, w, h)
	px += offset
	tx += offset

	// Dock runs from the left edge to just under the angler
	dockStyle := tcell.StyleDefault.Background(RgbSky).Foreground(RgbDock)
	dockRow := max(py+1, 0)
	for x := 0; x <= px && x < w; x++ {
		s.SetContent(x, dockRow, '=', nil, dockStyle)
	}
	s.SetContent(px-1, py, '@', nil, tcell.StyleDefault.Background(RgbSky).Foreground(RgbAngler).Bold(true))

	rod := ctx.Catalog.Resolve(snap.GearID)
	rodStyle := tcell.StyleDefault.Background(RgbSky).Foreground(HexColor(rod.Color, RgbDock)).Bold(true)
	drawSegment(s, px, py, tx, ty, segmentRune(tip.X-pivot.X, tip.Y-pivot.Y), rodStyle)

	bob := snap.Bobber
	bx, by := project(bob, w, h)
	bx += offset

	r.drawLine(s, ctx, tip, bob, offset)

	bobStyle := tcell.StyleDefault.Background(cellBackground(by, waterRow)).Foreground(RgbBobber).Bold(true)
	s.SetContent(bx, by, 'o', nil, bobStyle)

	if snap.State == engine.StateBiting {
		alert := tcell.StyleDefault.Background(cellBackground(by-1, waterRow)).Foreground(RgbBite).Bold(true)
		if tick%2 == 0 {
			alert = alert.Blink(true)
		}
		s.SetContent(bx, by-1, '!', nil, alert)
	}
}

// drawLine samples a quadratic curve from the rod tip to the bobber, sagging by LineSag
func (r *SceneRenderer) drawLine(s tcell.Screen, ctx RenderContext, from, to physics.Point, offset int) {
	w, h := ctx.SceneWidth, ctx.SceneHeight
	_, waterRow := project(physics.Point{Y: constant.WaterLevel}, w, h)
	ctrl := physics.Point{
		X: (from.X + to.X) / 2,
		Y: (from.Y+to.Y)/2 + ctx.Snap.LineSag,
	}

	lastX, lastY := -1, -1
	for i := 1; i < constant.LineSamples; i++ {
		t := float64(i) / constant.LineSamples
		u := 1 - t
		p := physics.Point{
			X: u*u*from.X + 2*u*t*ctrl.X + t*t*to.X,
			Y: u*u*from.Y + 2*u*t*ctrl.Y + t*t*to.Y,
		}
		x, y := project(p, w, h)
		x += offset
		if x == lastX && y == lastY {
			continue
		}
		lastX, lastY = x, y
		style := tcell.StyleDefault.Background(cellBackground(y, waterRow)).Foreground(RgbLine)
		s.SetContent(x, y, '.', nil, style)
	}
}

// rodGeometry returns the fixed pivot and the tip at the snapshot's rod angle
// The relaxed tip coincides with the line anchor
func rodGeometry(snap engine.Snapshot) (pivot, tip physics.Point) {
	relaxed := constant.RodAngleRelaxed * math.Pi / 180
	pivot = physics.Point{
		X: snap.RodTip.X - constant.RodLength*math.Cos(relaxed),
		Y: snap.RodTip.Y - constant.RodLength*math.Sin(relaxed),
	}
	angle := snap.RodAngle * math.Pi / 180
	tip = physics.Point{
		X: pivot.X + constant.RodLength*math.Cos(angle),
		Y: pivot.Y + constant.RodLength*math.Sin(angle),
	}
	return pivot, tip
}

func shakeOffset(snap engine.Snapshot) int {
	if !snap.Shake {
		return 0
	}
	if (snap.Time.UnixMilli()/constant.ShakePeriod.Milliseconds())%2 == 0 {
		return 1
	}
	return -1
}

func cellBackground(y, waterRow int) tcell.Color {
	if y >= waterRow {
		return RgbWater
	}
	return RgbSky
}
