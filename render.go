package main

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"SWR/internal/render"
)

var (
	backgroundColor = color.RGBA{16, 16, 24, 255}
	axisColor       = color.RGBA{70, 70, 90, 255}
	forwardColor    = color.RGBA{80, 140, 255, 255}
	reflectedColor  = color.RGBA{255, 80, 80, 255}
	totalColor      = color.RGBA{240, 240, 240, 255}
	envelopeColor   = color.RGBA{150, 150, 150, 255}
	probeColor      = color.RGBA{255, 210, 0, 255}
)

// Draw renders every panel into the framebuffer, uploads it, then prints the
// titles and the optional debug overlay on top.
func (g *Game) Draw(screen *ebiten.Image) {
	g.clear(backgroundColor)
	if !g.hasFrame {
		screen.WritePixels(g.pixels)
		ebitenutil.DebugPrint(screen, "warming up...")
		return
	}

	xs := g.comp.Grid().Positions()
	for i, pf := range g.frame.Panels {
		if i >= len(g.rects) {
			break
		}
		m := plotMapper{rect: g.rects[i], xMin: g.cfg.XMin, xMax: g.cfg.XMax, yLimit: g.settings.YLimit}
		g.drawAxes(m)
		if !math.IsInf(pf.EnvMax[0], 0) {
			g.drawSeries(m, xs, pf.EnvMax, envelopeColor, true)
			g.drawSeries(m, xs, pf.EnvMin, envelopeColor, true)
		}
		g.drawSeries(m, xs, pf.Forward, forwardColor, false)
		g.drawSeries(m, xs, pf.Reflected, reflectedColor, false)
		g.drawSeries(m, xs, pf.Total, totalColor, false)
		if g.audioStream != nil && i == g.probePanel {
			top := m.toScreen(g.settings.ProbeX, g.settings.YLimit)
			bottom := m.toScreen(g.settings.ProbeX, -g.settings.YLimit)
			g.drawLine(top.x, top.y, bottom.x, bottom.y, probeColor, false)
		}
	}
	screen.WritePixels(g.pixels)

	for i, pf := range g.frame.Panels {
		if i >= len(g.rects) {
			break
		}
		r := g.rects[i]
		ebitenutil.DebugPrintAt(screen, render.PanelTitle(pf), r.Min.X, r.Min.Y-panelTitleHeight)
	}

	if *debugFlag {
		fps := ebiten.ActualFPS()
		tps := ebiten.ActualTPS()
		if tps < 0 {
			tps = 0
		}
		tickMS := g.lastTickDuration.Seconds() * 1000
		t := g.frame.Tick
		debugMsg := fmt.Sprintf("FPS: %.1f\nTPS: %.1f (speed %dx, +/-)\n%s frame %d t=%.3f\nTick: %.2f ms",
			fps, tps, g.speed, t.Phase, t.Frame, t.Time, tickMS)
		if g.paused {
			debugMsg += "\npaused"
		}
		ebitenutil.DebugPrint(screen, debugMsg)
	}
}

// Layout reports the logical screen size used by Ebiten.
func (g *Game) Layout(_, _ int) (int, int) { return g.width, g.height }

func (g *Game) clear(c color.RGBA) {
	for i := 0; i < len(g.pixels); i += 4 {
		g.pixels[i] = c.R
		g.pixels[i+1] = c.G
		g.pixels[i+2] = c.B
		g.pixels[i+3] = c.A
	}
}

func (g *Game) set(x, y int, c color.RGBA) {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return
	}
	base := (y*g.width + x) * 4
	g.pixels[base] = c.R
	g.pixels[base+1] = c.G
	g.pixels[base+2] = c.B
	g.pixels[base+3] = c.A
}

// drawAxes outlines the panel and draws the y = 0 line.
func (g *Game) drawAxes(m plotMapper) {
	r := m.rect
	g.drawRect(r, axisColor)
	zl := m.toScreen(m.xMin, 0)
	zr := m.toScreen(m.xMax, 0)
	g.drawLine(zl.x, zl.y, zr.x, zr.y, axisColor, true)
}

func (g *Game) drawRect(r image.Rectangle, c color.RGBA) {
	x1, y1 := r.Max.X-1, r.Max.Y-1
	g.drawLine(r.Min.X, r.Min.Y, x1, r.Min.Y, c, false)
	g.drawLine(x1, r.Min.Y, x1, y1, c, false)
	g.drawLine(x1, y1, r.Min.X, y1, c, false)
	g.drawLine(r.Min.X, y1, r.Min.X, r.Min.Y, c, false)
}

// drawSeries joins consecutive samples with line segments.
func (g *Game) drawSeries(m plotMapper, xs, ys []float64, c color.RGBA, dashed bool) {
	if len(xs) == 0 || len(xs) != len(ys) {
		return
	}
	prev := m.toScreen(xs[0], ys[0])
	for i := 1; i < len(xs); i++ {
		p := m.toScreen(xs[i], ys[i])
		g.drawLine(prev.x, prev.y, p.x, p.y, c, dashed)
		prev = p
	}
}

// drawLine plots a line segment using Bresenham's integer algorithm. Dashed
// lines use a fixed on/off pattern measured from the segment start.
func (g *Game) drawLine(x0, y0, x1, y1 int, clr color.RGBA, dashed bool) {
	dx := int(math.Abs(float64(x1 - x0)))
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -int(math.Abs(float64(y1 - y0)))
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for step := 0; ; step++ {
		if !dashed || step%(envelopeDashOn+envelopeDashOff) < envelopeDashOn {
			g.set(x0, y0, clr)
		}
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}
