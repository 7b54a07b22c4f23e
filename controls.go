package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// handleControls processes preview hotkeys. Escape and Q end the run.
func (g *Game) handleControls() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract) {
		g.adjustSpeed(-speedStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyKPAdd) {
		g.adjustSpeed(speedStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		dir := 1
		if ebiten.IsKeyPressed(ebiten.KeyShift) {
			dir = -1
		}
		if err := g.cycleProbe(dir); err != nil {
			return err
		}
	}
	return nil
}

// adjustSpeed clamps the ticks-per-update delta within bounds.
func (g *Game) adjustSpeed(delta int) {
	g.speed = clampCoord(g.speed+delta, minSpeed, maxSpeed)
}

// cycleProbe moves the probe tone to the next or previous panel.
func (g *Game) cycleProbe(dir int) error {
	n := len(g.cfg.VSWR)
	if n == 0 {
		return nil
	}
	return g.setProbePanel(((g.probePanel+dir)%n + n) % n)
}
