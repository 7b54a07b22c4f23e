package main

import "flag"

// Command-line flags. Run parameters override the config file only when set
// explicitly; see applyFlags.
var (
	// configFlag points at an optional TOML or YAML settings file.
	configFlag = flag.String("config", "", "settings file (.toml, .yaml or .yml)")

	// modeFlag selects the frame consumer.
	modeFlag = flag.String("mode", "export", "export | preview | tui | serve")

	vswrFlag           = flag.String("vswr", "", "comma-separated VSWR values, e.g. inf,5,3,1")
	amplitudeFlag      = flag.Float64("amplitude", 0, "forward wave amplitude")
	frequencyFlag      = flag.Float64("frequency", 0, "wave frequency (Hz)")
	wavelengthFlag     = flag.Float64("wavelength", 0, "wavelength")
	samplesFlag        = flag.Int("samples", 0, "spatial samples per panel")
	warmupFlag         = flag.Int("warmup", 0, "warm-up frames used to build the envelope")
	framesPerCycleFlag = flag.Int("frames-per-cycle", 0, "frames per wave period")
	displayFramesFlag  = flag.Int("frames", 0, "display frames to export")
	fpsFlag            = flag.Int("fps", 0, "frames per second")
	outputFlag         = flag.String("out", "", "animation output path")
	formatFlag         = flag.String("format", "", "gif | mjpeg")
	widthFlag          = flag.Int("width", 0, "figure width in pixels")
	heightFlag         = flag.Int("height", 0, "figure height in pixels")
	probeXFlag         = flag.Float64("probe-x", 0, "probe position for audio")

	// includeWarmupFlag also exports the warm-up frames, useful to watch the envelope grow.
	includeWarmupFlag = flag.Bool("include-warmup", false, "export warm-up frames before the loop")

	// addrFlag is the listen address in serve mode.
	addrFlag = flag.String("addr", defaultServeAddr, "listen address for serve mode")

	// wavFlag writes the probe tone of one panel as a WAV file and exits.
	wavFlag = flag.String("wav", "", "write the probe tone to this WAV file")

	// probePanelFlag picks the panel the probe listens to.
	probePanelFlag = flag.Int("probe-panel", 0, "panel index for the probe tone")

	// enableAudioFlag plays the probe tone in preview mode.
	enableAudioFlag = flag.Bool("enable-audio", false, "play the probe tone in preview mode")

	// debugFlag enables the FPS and tick overlay in preview mode.
	debugFlag = flag.Bool("debug", false, "show FPS and tick overlay")

	// cpuProfileFlag writes a CPU profile for the whole run.
	cpuProfileFlag = flag.String("cpuprofile", "", "write a CPU profile to this path")

	logLevelFlag    = flag.String("log-level", "info", "debug | info | warn | error")
	printConfigFlag = flag.String("print-config", "", "print the effective settings as toml or yaml and exit")
)
