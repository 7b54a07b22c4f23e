package main

import "time"

// Runtime constants for the preview window, exporter and audio path. Run
// parameters themselves come from internal/config.
const (
	windowTitle         = "Standing Waves"
	defaultServeAddr    = ":8080"
	defaultSpeed        = 1
	speedStep           = 1
	minSpeed            = 1
	maxSpeed            = 16
	progressLogEvery    = 25
	panelMargin         = 8
	panelTitleHeight    = 16
	envelopeDashOn      = 4
	envelopeDashOff     = 3
	audioBufferDuration = 80 * time.Millisecond
	pcm16MaxValue       = 32767
	pcm16MinValue       = -32768
	audioBytesPerFrame  = 4
)
