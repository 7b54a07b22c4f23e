package main

import (
	"errors"
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"

	"SWR/internal/config"
	"SWR/internal/log"
	"SWR/internal/swr"
)

// Game drives the live preview: one compositor tick per speed step each
// Update, drawn into a CPU framebuffer, with an optional probe tone.
type Game struct {
	comp     *swr.Compositor
	cfg      swr.Config
	settings config.Settings
	frame    swr.Frame
	hasFrame bool

	width  int
	height int
	rects  []image.Rectangle
	pixels []byte

	paused           bool
	speed            int
	probePanel       int
	lastTickDuration time.Duration

	audioCtx    *audio.Context
	audioStream *probeAudioStream
	audioPlayer *audio.Player
}

// newGame constructs a preview for cfg sized by settings.
func newGame(settings config.Settings, cfg swr.Config) (*Game, error) {
	comp, err := swr.NewCompositor(cfg)
	if err != nil {
		return nil, err
	}
	g := &Game{
		comp:       comp,
		cfg:        cfg,
		settings:   settings,
		width:      settings.Width,
		height:     settings.Height,
		rects:      panelRects(settings.Width, settings.Height, len(cfg.VSWR), settings.Columns),
		pixels:     make([]byte, settings.Width*settings.Height*4),
		speed:      defaultSpeed,
		probePanel: clampCoord(*probePanelFlag, 0, len(cfg.VSWR)-1),
	}
	if *enableAudioFlag {
		ctx := audio.NewContext(settings.SampleRate)
		g.audioCtx = ctx
		g.audioStream = newProbeAudioStream()
		if err := g.setProbePanel(g.probePanel); err != nil {
			return nil, err
		}
		if player, err := ctx.NewPlayer(g.audioStream); err != nil {
			log.Warn("audio player creation failed", "err", err)
		} else {
			g.audioPlayer = player
			g.audioPlayer.SetBufferSize(audioBufferDuration)
			g.audioPlayer.Play()
		}
	}
	return g, nil
}

// Update advances the compositor by speed ticks unless paused.
func (g *Game) Update() error {
	if err := g.handleControls(); err != nil {
		return err
	}
	if g.paused {
		return nil
	}
	start := time.Now()
	for i := 0; i < g.speed; i++ {
		f, err := g.comp.Tick()
		if err != nil {
			return err
		}
		if f.Tick.Entered {
			log.Info("envelope frozen, entering display loop", "warmup_frames", g.cfg.WarmupFrames)
		}
		g.frame = f
		g.hasFrame = true
	}
	g.lastTickDuration = time.Since(start)
	return nil
}

// setProbePanel points the probe tone at panel i.
func (g *Game) setProbePanel(i int) error {
	g.probePanel = i
	if g.audioStream == nil {
		return nil
	}
	tone, err := probeTone(g.settings, g.cfg, i)
	if err != nil {
		return err
	}
	g.audioStream.SetSource(tone)
	return nil
}

// Close stops audio playback.
func (g *Game) Close() {
	if g.audioPlayer != nil {
		if err := g.audioPlayer.Close(); err != nil {
			log.Debug("audio player close", "err", err)
		}
	}
}

func runPreview(settings config.Settings, cfg swr.Config) error {
	g, err := newGame(settings, cfg)
	if err != nil {
		return err
	}
	defer g.Close()

	ebiten.SetWindowSize(settings.Width, settings.Height)
	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetTPS(settings.FPS)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
