package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/pixel-angler/fish"
)

// Scene palette
var (
	RgbSky        = tcell.NewRGBColor(30, 41, 82)    // Night blue
	RgbWater      = tcell.NewRGBColor(23, 64, 140)   // Deep blue
	RgbWave       = tcell.NewRGBColor(96, 165, 250)  // Light blue ripple
	RgbDock       = tcell.NewRGBColor(120, 72, 32)   // Brown planks
	RgbAngler     = tcell.NewRGBColor(250, 204, 21)  // Yellow hat
	RgbLine       = tcell.NewRGBColor(200, 200, 200) // Light gray
	RgbBobber     = tcell.NewRGBColor(239, 68, 68)   // Red
	RgbBite       = tcell.NewRGBColor(255, 255, 0)   // Bright yellow alert
	RgbBackground = tcell.NewRGBColor(26, 27, 38)    // Panel background

	RgbTrack     = tcell.NewRGBColor(60, 60, 80)
	RgbBarHit    = tcell.NewRGBColor(34, 197, 94) // Green while covering the fish
	RgbReelFish  = tcell.NewRGBColor(251, 146, 60)
	RgbMeterHigh = tcell.NewRGBColor(34, 197, 94)
	RgbMeterMid  = tcell.NewRGBColor(234, 179, 8)
	RgbMeterLow  = tcell.NewRGBColor(239, 68, 68)

	RgbStatusBar = tcell.NewRGBColor(255, 255, 255)
	RgbStatusBg  = tcell.NewRGBColor(40, 42, 54)
	RgbGold      = tcell.NewRGBColor(255, 215, 0)
	RgbMuted     = tcell.NewRGBColor(150, 150, 150)
	RgbBorder    = tcell.NewRGBColor(180, 180, 180)
)

var rarityColors = [...]tcell.Color{
	fish.RarityCommon:    tcell.NewRGBColor(200, 200, 200),
	fish.RarityUncommon:  tcell.NewRGBColor(74, 222, 128),
	fish.RarityRare:      tcell.NewRGBColor(96, 165, 250),
	fish.RarityLegendary: tcell.NewRGBColor(251, 191, 36),
	fish.RarityMythical:  tcell.NewRGBColor(244, 114, 182),
	fish.RaritySecret:    tcell.NewRGBColor(168, 85, 247),
}

// RarityColor returns the label color for a rarity
func RarityColor(r fish.Rarity) tcell.Color {
	if int(r) < len(rarityColors) {
		return rarityColors[r]
	}
	return RgbStatusBar
}

// HexColor parses #rrggbb, returning fallback for anything else
func HexColor(hex string, fallback tcell.Color) tcell.Color {
	if len(hex) != 7 || hex[0] != '#' {
		return fallback
	}
	c := tcell.GetColor(hex)
	if c == tcell.ColorDefault {
		return fallback
	}
	return c
}
