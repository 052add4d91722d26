package render

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/pixel-angler/physics"
)

// drawText writes a single line clipped to the screen, returning the column after the last rune
func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) int {
	w, h := s.Size()
	if y < 0 || y >= h {
		return x
	}
	for _, r := range text {
		if x >= w {
			break
		}
		if x >= 0 {
			s.SetContent(x, y, r, nil, style)
		}
		x++
	}
	return x
}

// fillRect paints a rectangle with a single rune
func fillRect(s tcell.Screen, x, y, w, h int, r rune, style tcell.Style) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			s.SetContent(col, row, r, nil, style)
		}
	}
}

// drawBox draws a single-line border with a title and clears the interior
func drawBox(s tcell.Screen, x, y, w, h int, style tcell.Style, title string) {
	if w < 2 || h < 2 {
		return
	}
	fillRect(s, x+1, y+1, w-2, h-2, ' ', style)
	for col := x + 1; col < x+w-1; col++ {
		s.SetContent(col, y, tcell.RuneHLine, nil, style)
		s.SetContent(col, y+h-1, tcell.RuneHLine, nil, style)
	}
	for row := y + 1; row < y+h-1; row++ {
		s.SetContent(x, row, tcell.RuneVLine, nil, style)
		s.SetContent(x+w-1, row, tcell.RuneVLine, nil, style)
	}
	s.SetContent(x, y, tcell.RuneULCorner, nil, style)
	s.SetContent(x+w-1, y, tcell.RuneURCorner, nil, style)
	s.SetContent(x, y+h-1, tcell.RuneLLCorner, nil, style)
	s.SetContent(x+w-1, y+h-1, tcell.RuneLRCorner, nil, style)
	if title != "" {
		drawText(s, x+2, y, style.Bold(true), " "+title+" ")
	}
}

// project maps a scene percent point to a cell inside a w x h area
func project(p physics.Point, w, h int) (int, int) {
	x := int(math.Round(p.X / 100 * float64(w-1)))
	y := int(math.Round(p.Y / 100 * float64(h-1)))
	return x, y
}

// segmentRune picks an ASCII stroke for a segment direction
func segmentRune(dx, dy float64) rune {
	if dx == 0 && dy == 0 {
		return '.'
	}
	angle := math.Atan2(-dy, dx) * 180 / math.Pi
	if angle < 0 {
		angle += 180
	}
	switch {
	case angle < 22.5 || angle >= 157.5:
		return '-'
	case angle < 67.5:
		return '/'
	case angle < 112.5:
		return '|'
	default:
		return '\\'
	}
}

// drawSegment rasterizes a straight stroke between two cells (Bresenham)
func drawSegment(s tcell.Screen, x0, y0, x1, y1 int, r rune, style tcell.Style) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		s.SetContent(x0, y0, r, nil, style)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
