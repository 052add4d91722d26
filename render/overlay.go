package render

import (
	"fmt"
	"slices"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/pixel-angler/constant"
	"github.com/lixenwraith/pixel-angler/engine"
	"github.com/lixenwraith/pixel-angler/fish"
)

// OverlayRenderer draws the inventory, gear shop and sell shop panels
type OverlayRenderer struct{}

// IsVisible implements VisibilityToggle
func (r *OverlayRenderer) IsVisible(ctx RenderContext) bool {
	return ctx.Snap.Overlay != engine.OverlayNone
}

// Render implements SystemRenderer
func (r *OverlayRenderer) Render(ctx RenderContext, s tcell.Screen) {
	w := min(constant.OverlayWidth, ctx.ScreenWidth-2)
	h := max(6, ctx.ScreenHeight-4)
	x := (ctx.ScreenWidth - w) / 2
	y := 1
	base := tcell.StyleDefault.Background(RgbBackground).Foreground(RgbStatusBar)

	switch ctx.Snap.Overlay {
	case engine.OverlayInventory:
		drawBox(s, x, y, w, h, base.Foreground(RgbBorder), "INVENTORY")
		r.drawFishList(s, ctx, x, y, w, h, base, false)
		drawText(s, x+2, y+h-2, base.Foreground(RgbGold),
			fmt.Sprintf("Total value: %d gold", fish.TotalValue(ctx.Ledger.Inventory)))
	case engine.OverlaySellShop:
		drawBox(s, x, y, w, h, base.Foreground(RgbBorder), "SELL FISH")
		r.drawFishList(s, ctx, x, y, w, h, base, true)
		drawText(s, x+2, y+h-2, base.Foreground(RgbGold),
			fmt.Sprintf("[a] Sell all for %d gold", fish.TotalValue(ctx.Ledger.Inventory)))
	case engine.OverlayShop:
		drawBox(s, x, y, w, h, base.Foreground(RgbBorder), "GEAR SHOP")
		r.drawShop(s, ctx, x, y, w, h, base)
	}
	drawText(s, x+w-12, y+h-1, base.Foreground(RgbMuted), " [q] Close ")
}

// drawFishList lists in catch order; numbered rows are sellable via digit keys
func (r *OverlayRenderer) drawFishList(s tcell.Screen, ctx RenderContext, x, y, w, h int, base tcell.Style, numbered bool) {
	inv := ctx.Ledger.Inventory
	if len(inv) == 0 {
		drawText(s, x+2, y+2, base.Foreground(RgbMuted), "No fish yet. Go cast a line!")
		return
	}
	rows := h - 4
	for i, f := range inv {
		if i >= rows {
			drawText(s, x+2, y+h-3, base.Foreground(RgbMuted), fmt.Sprintf("... and %d more", len(inv)-i))
			break
		}
		row := y + 1 + i
		col := x + 2
		if numbered && i < 9 {
			col = drawText(s, col, row, base.Bold(true), fmt.Sprintf("%d. ", i+1))
		} else if numbered {
			col += 3
		}
		s.SetContent(col, row, tcell.RuneDiamond, nil, base.Foreground(HexColor(f.Color, RgbReelFish)))
		col = drawText(s, col+2, row, base, truncate(f.Name, w-36))
		col = drawText(s, max(col+1, x+w-30), row, base.Foreground(RarityColor(f.Rarity)), f.Rarity.String())
		drawText(s, max(col+1, x+w-15), row, base.Foreground(RgbGold), fmt.Sprintf("%6d gold", f.Price))
	}
}

func (r *OverlayRenderer) drawShop(s tcell.Screen, ctx RenderContext, x, y, w, h int, base tcell.Style) {
	drawText(s, x+2, y+1, base.Foreground(RgbGold), fmt.Sprintf("Gold: %d", ctx.Ledger.Balance))
	row := y + 3
	for i, g := range ctx.Catalog.All() {
		if row >= y+h-2 {
			break
		}
		col := drawText(s, x+2, row, base.Bold(true), fmt.Sprintf("%d. ", i+1))
		col = drawText(s, col, row, base.Foreground(HexColor(g.Color, RgbStatusBar)).Bold(true), g.Name)

		tag := fmt.Sprintf("%d gold", g.Price)
		tagStyle := base.Foreground(RgbGold)
		switch {
		case g.ID == ctx.Ledger.EquippedGearID:
			tag, tagStyle = "[equipped]", base.Foreground(RgbBarHit)
		case slices.Contains(ctx.Ledger.OwnedGearIDs, g.ID):
			tag, tagStyle = "[owned]", base.Foreground(RgbMuted)
		case g.Price > ctx.Ledger.Balance:
			tagStyle = base.Foreground(RgbMeterLow)
		}
		drawText(s, max(col+1, x+w-14), row, tagStyle, tag)
		row++
		if row < y+h-2 {
			drawText(s, x+5, row, base.Foreground(RgbMuted), truncate(g.Description, w-7))
			row++
		}
		if row < y+h-2 {
			drawText(s, x+5, row, base.Foreground(RgbMuted),
				fmt.Sprintf("bar %.0f  gain %.1f  stability %.2f", g.BarWidth, g.CatchGain, g.Stability))
			row += 2
		}
	}
}
