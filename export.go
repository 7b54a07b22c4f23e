package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gopxl/beep"

	"SWR/internal/config"
	"SWR/internal/log"
	"SWR/internal/render"
	"SWR/internal/sonify"
	"SWR/internal/swr"
)

// newRenderer builds the figure renderer for a fresh compositor.
func newRenderer(settings config.Settings, comp *swr.Compositor) (*render.Renderer, error) {
	return render.NewRenderer(comp.Grid(), render.Options{
		Width:   settings.Width,
		Height:  settings.Height,
		Columns: settings.Columns,
		YLimit:  settings.YLimit,
	})
}

// progressSink logs every progressLogEvery frames before handing the frame on.
func progressSink(next swr.FrameSink, total int) swr.FrameSink {
	n := 0
	return swr.FrameSinkFunc(func(f swr.Frame) error {
		n++
		if n%progressLogEvery == 0 || n == total {
			log.Debug("rendered frame", "n", n, "total", total, "phase", f.Tick.Phase)
		}
		return next.WriteFrame(f)
	})
}

func exportTotal(cfg swr.Config, displayFrames int) int {
	if *includeWarmupFlag {
		return cfg.WarmupFrames + displayFrames
	}
	return displayFrames
}

// writeGIF renders a complete looping GIF of the run to w.
func writeGIF(w io.Writer, settings config.Settings, cfg swr.Config) error {
	comp, err := swr.NewCompositor(cfg)
	if err != nil {
		return err
	}
	r, err := newRenderer(settings, comp)
	if err != nil {
		return err
	}
	gw := render.NewGIFWriter(r, settings.FrameDelay())
	total := exportTotal(cfg, settings.DisplayFrames)
	if err := swr.Drive(comp, progressSink(gw, total), settings.DisplayFrames, *includeWarmupFlag); err != nil {
		return err
	}
	return gw.Encode(w)
}

func runExport(settings config.Settings, cfg swr.Config) error {
	start := time.Now()
	switch settings.Format {
	case config.FormatGIF:
		f, err := os.Create(settings.Output)
		if err != nil {
			return err
		}
		bw := bufio.NewWriter(f)
		if err := writeGIF(bw, settings, cfg); err != nil {
			f.Close()
			return err
		}
		if err := bw.Flush(); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	case config.FormatMJPEG:
		comp, err := swr.NewCompositor(cfg)
		if err != nil {
			return err
		}
		r, err := newRenderer(settings, comp)
		if err != nil {
			return err
		}
		mw, err := render.NewMJPEGWriter(settings.Output, r, settings.FPS)
		if err != nil {
			return err
		}
		total := exportTotal(cfg, settings.DisplayFrames)
		if err := swr.Drive(comp, progressSink(mw, total), settings.DisplayFrames, *includeWarmupFlag); err != nil {
			mw.Close()
			return err
		}
		if err := mw.Close(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: unknown format %q", swr.ErrInvalidParameter, settings.Format)
	}
	log.Info("wrote animation", "path", settings.Output, "format", settings.Format,
		"frames", exportTotal(cfg, settings.DisplayFrames), "took", time.Since(start))
	return nil
}

// probeTone builds the probe streamer for one panel of cfg.
func probeTone(settings config.Settings, cfg swr.Config, panel int) (*sonify.ProbeTone, error) {
	if panel < 0 || panel >= len(cfg.VSWR) {
		return nil, fmt.Errorf("%w: probe panel %d outside [0, %d)", swr.ErrInvalidParameter, panel, len(cfg.VSWR))
	}
	gamma, err := swr.Gamma(cfg.VSWR[panel])
	if err != nil {
		return nil, err
	}
	return sonify.NewProbeTone(beep.SampleRate(settings.SampleRate), settings.CarrierHz, settings.ProbeX, cfg.Wave, gamma)
}

// runWAV writes the probe tone for the length of the display loop.
func runWAV(settings config.Settings, cfg swr.Config, path string, panel int) error {
	tone, err := probeTone(settings, cfg, panel)
	if err != nil {
		return err
	}
	d := time.Duration(settings.DisplayFrames) * time.Second / time.Duration(settings.FPS)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := sonify.WriteWAV(f, tone, beep.SampleRate(settings.SampleRate), d); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Info("wrote probe tone", "path", path, "panel", panel, "vswr", cfg.VSWR[panel], "x", settings.ProbeX, "duration", d)
	return nil
}
