package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"SWR/internal/config"
	"SWR/internal/log"
	"SWR/internal/server"
	"SWR/internal/swr"
	"SWR/internal/tui"
)

func main() {
	flag.Parse()
	log.Init(*logLevelFlag)

	if err := run(); err != nil {
		log.Error("run failed", "err", err)
		os.Exit(1)
	}
}

func run() error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	if *printConfigFlag != "" {
		return settings.Encode(os.Stdout, *printConfigFlag)
	}

	cfg, err := settings.RunConfig()
	if err != nil {
		return err
	}
	if !cfg.CoversCycle() {
		log.Warn("warm-up shorter than one wave period, envelope will be incomplete",
			"warmup_frames", cfg.WarmupFrames, "frames_per_cycle", cfg.FramesPerCycle)
	}

	if *cpuProfileFlag != "" {
		stop, err := startCPUProfile(*cpuProfileFlag)
		if err != nil {
			return fmt.Errorf("cpu profile: %w", err)
		}
		defer stop()
		log.Info("CPU profiling enabled", "path", *cpuProfileFlag)
	}

	if *wavFlag != "" {
		return runWAV(settings, cfg, *wavFlag, *probePanelFlag)
	}

	log.Info("starting", "mode", *modeFlag, "panels", len(cfg.VSWR), "run", log.RunID())
	switch *modeFlag {
	case "export":
		return runExport(settings, cfg)
	case "preview":
		return runPreview(settings, cfg)
	case "tui":
		comp, err := swr.NewCompositor(cfg)
		if err != nil {
			return err
		}
		return tui.Run(comp, settings.FPS, settings.YLimit)
	case "serve":
		return runServe(settings, cfg)
	default:
		return fmt.Errorf("%w: unknown mode %q", swr.ErrInvalidParameter, *modeFlag)
	}
}

// loadSettings starts from the defaults, applies the config file if any, then
// explicitly set flags, and validates the result.
func loadSettings() (config.Settings, error) {
	settings := config.Default()
	if *configFlag != "" {
		loaded, err := config.Load(*configFlag)
		if err != nil {
			return config.Settings{}, err
		}
		settings = loaded
		log.Debug("loaded settings", "path", *configFlag)
	}
	applyFlags(&settings)
	if err := settings.Validate(); err != nil {
		return config.Settings{}, err
	}
	return settings, nil
}

// applyFlags copies flags the user actually set onto s.
func applyFlags(s *config.Settings) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "vswr":
			s.VSWR = config.ParseVSWRList(*vswrFlag)
		case "amplitude":
			s.Amplitude = *amplitudeFlag
		case "frequency":
			s.Frequency = *frequencyFlag
		case "wavelength":
			s.Wavelength = *wavelengthFlag
		case "samples":
			s.Samples = *samplesFlag
		case "warmup":
			s.WarmupFrames = *warmupFlag
		case "frames-per-cycle":
			s.FramesPerCycle = *framesPerCycleFlag
		case "frames":
			s.DisplayFrames = *displayFramesFlag
		case "fps":
			s.FPS = *fpsFlag
		case "out":
			s.Output = *outputFlag
		case "format":
			s.Format = *formatFlag
		case "width":
			s.Width = *widthFlag
		case "height":
			s.Height = *heightFlag
		case "probe-x":
			s.ProbeX = *probeXFlag
		}
	})
}

func runServe(settings config.Settings, cfg swr.Config) error {
	comp, err := swr.NewCompositor(cfg)
	if err != nil {
		return err
	}
	srv, err := server.New(comp, server.Options{
		FPS:           settings.FPS,
		DisplayFrames: settings.DisplayFrames,
		Animation: func() ([]byte, error) {
			var buf bytes.Buffer
			if err := writeGIF(&buf, settings, cfg); err != nil {
				return nil, err
			}
			return buf.Bytes(), nil
		},
	})
	if err != nil {
		return err
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigs
		log.Info("shutting down")
		if err := srv.Shutdown(); err != nil {
			log.Warn("shutdown", "err", err)
		}
	}()

	log.Info("listening", "addr", *addrFlag)
	return srv.Listen(*addrFlag)
}
