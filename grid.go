package main

import (
	"image"
	"math"
)

// intPoint is a pixel coordinate on the preview framebuffer.
type intPoint struct {
	x int
	y int
}

// clampCoord constrains v to lie within the inclusive [lo, hi] range.
func clampCoord(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// panelRects splits a w×h canvas into n tiles laid out in cols columns,
// row-major, each inset by panelMargin with room left for a title line.
func panelRects(w, h, n, cols int) []image.Rectangle {
	if n <= 0 || cols <= 0 {
		return nil
	}
	if cols > n {
		cols = n
	}
	rows := (n + cols - 1) / cols
	cw, ch := w/cols, h/rows
	rects := make([]image.Rectangle, n)
	for i := range rects {
		x0 := (i % cols) * cw
		y0 := (i / cols) * ch
		rects[i] = image.Rect(
			x0+panelMargin,
			y0+panelMargin+panelTitleHeight,
			x0+cw-panelMargin,
			y0+ch-panelMargin,
		)
	}
	return rects
}

// plotMapper maps data coordinates into a panel rectangle.
type plotMapper struct {
	rect       image.Rectangle
	xMin, xMax float64
	yLimit     float64
}

// toScreen converts (x, y) to a pixel inside rect; y is clipped to ±yLimit.
func (m plotMapper) toScreen(x, y float64) intPoint {
	w := float64(m.rect.Dx() - 1)
	h := float64(m.rect.Dy() - 1)
	fx := 0.0
	if m.xMax > m.xMin {
		fx = (x - m.xMin) / (m.xMax - m.xMin)
	}
	fy := (m.yLimit - y) / (2 * m.yLimit)
	px := m.rect.Min.X + int(math.Round(fx*w))
	py := m.rect.Min.Y + int(math.Round(fy*h))
	return intPoint{
		x: clampCoord(px, m.rect.Min.X, m.rect.Max.X-1),
		y: clampCoord(py, m.rect.Min.Y, m.rect.Max.Y-1),
	}
}
