package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/pixel-angler/constant"
)

type rendererEntry struct {
	renderer SystemRenderer
	priority RenderPriority
	index    int // registration order for stable sort
}

// RenderOrchestrator coordinates the render pipeline
type RenderOrchestrator struct {
	screen    tcell.Screen
	renderers []rendererEntry
	regCount  int
}

// NewRenderOrchestrator creates an empty pipeline drawing to screen
func NewRenderOrchestrator(screen tcell.Screen) *RenderOrchestrator {
	return &RenderOrchestrator{
		screen:    screen,
		renderers: make([]rendererEntry, 0, 8),
	}
}

// NewDefaultOrchestrator registers every game layer
func NewDefaultOrchestrator(screen tcell.Screen) *RenderOrchestrator {
	o := NewRenderOrchestrator(screen)
	o.Register(&SceneRenderer{}, PriorityScene)
	o.Register(&ReelRenderer{}, PriorityReel)
	o.Register(&CatchCardRenderer{}, PriorityCard)
	o.Register(&StatusRenderer{}, PriorityUI)
	o.Register(&OverlayRenderer{}, PriorityOverlay)
	return o
}

// Register adds a renderer at the specified priority. Maintains sorted order via insertion sort
func (o *RenderOrchestrator) Register(r SystemRenderer, priority RenderPriority) {
	entry := rendererEntry{
		renderer: r,
		priority: priority,
		index:    o.regCount,
	}
	o.regCount++

	pos := len(o.renderers)
	for i, e := range o.renderers {
		if priority < e.priority || (priority == e.priority && entry.index < e.index) {
			pos = i
			break
		}
	}

	o.renderers = append(o.renderers, rendererEntry{})
	copy(o.renderers[pos+1:], o.renderers[pos:])
	o.renderers[pos] = entry
}

// Resize forces a full repaint after the terminal changed size
func (o *RenderOrchestrator) Resize() {
	o.screen.Sync()
}

// RenderFrame executes the pipeline: clear, render all, show
func (o *RenderOrchestrator) RenderFrame(ctx RenderContext) {
	w, h := o.screen.Size()
	ctx.ScreenWidth, ctx.ScreenHeight = w, h
	ctx.SceneWidth = w
	if ctx.Snap.Reel != nil {
		ctx.SceneWidth = max(0, w-constant.ReelColumnWidth)
	}
	ctx.SceneHeight = max(0, h-constant.StatusBarHeight)

	o.screen.Clear()

	if w < constant.MinScreenWidth || h < constant.MinScreenHeight {
		drawText(o.screen, 0, 0, tcell.StyleDefault.Foreground(RgbStatusBar), "Terminal too small")
		o.screen.Show()
		return
	}

	for _, entry := range o.renderers {
		if vt, ok := entry.renderer.(VisibilityToggle); ok && !vt.IsVisible(ctx) {
			continue
		}
		entry.renderer.Render(ctx, o.screen)
	}

	o.screen.Show()
}
