// Package config loads run settings from TOML or YAML files and turns them
// into a validated swr.Config.
package config

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"SWR/internal/swr"
)

// Output formats understood by the exporter.
const (
	FormatGIF   = "gif"
	FormatMJPEG = "mjpeg"
)

// Settings is everything a run needs: the numeric core plus the renderer,
// audio and export knobs. Unset keys in a file keep their defaults.
type Settings struct {
	// VSWR holds numbers or strings such as "inf"; files may mix both.
	VSWR []any `toml:"vswr" yaml:"vswr"`

	Amplitude  float64 `toml:"amplitude" yaml:"amplitude"`
	Frequency  float64 `toml:"frequency" yaml:"frequency"`
	Wavelength float64 `toml:"wavelength" yaml:"wavelength"`

	XMin    float64 `toml:"x_min" yaml:"x_min"`
	XMax    float64 `toml:"x_max" yaml:"x_max"`
	Samples int     `toml:"samples" yaml:"samples"`

	WarmupFrames   int `toml:"warmup_frames" yaml:"warmup_frames"`
	FramesPerCycle int `toml:"frames_per_cycle" yaml:"frames_per_cycle"`
	DisplayFrames  int `toml:"display_frames" yaml:"display_frames"`
	FPS            int `toml:"fps" yaml:"fps"`

	Output  string  `toml:"output" yaml:"output"`
	Format  string  `toml:"format" yaml:"format"`
	Width   int     `toml:"width" yaml:"width"`
	Height  int     `toml:"height" yaml:"height"`
	Columns int     `toml:"columns" yaml:"columns"`
	YLimit  float64 `toml:"y_limit" yaml:"y_limit"`

	ProbeX     float64 `toml:"probe_x" yaml:"probe_x"`
	CarrierHz  float64 `toml:"carrier_hz" yaml:"carrier_hz"`
	SampleRate int     `toml:"sample_rate" yaml:"sample_rate"`
}

// Default returns the settings of the reference animation: six panels from
// an open line down to a matched load, two warm-up cycles, 200 frames at 20 fps.
func Default() Settings {
	return Settings{
		VSWR:           []any{"inf", 5, 4, 3, 2, 1},
		Amplitude:      1,
		Frequency:      1,
		Wavelength:     1,
		XMin:           0,
		XMax:           2,
		Samples:        200,
		WarmupFrames:   100,
		FramesPerCycle: 50,
		DisplayFrames:  200,
		FPS:            20,
		Output:         "swr_animation.gif",
		Format:         FormatGIF,
		Width:          1200,
		Height:         600,
		Columns:        3,
		YLimit:         2,
		ProbeX:         0.5,
		CarrierHz:      440,
		SampleRate:     44100,
	}
}

// Load reads path on top of Default. The decoder is chosen by extension:
// .toml, or .yaml/.yml.
func Load(path string) (Settings, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, err
	}
	s := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(raw, &s)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &s)
	default:
		return Settings{}, fmt.Errorf("config %q: unsupported extension %q", path, ext)
	}
	if err != nil {
		return Settings{}, fmt.Errorf("decoding %q: %w", path, err)
	}
	return s, nil
}

// Encode writes s in the given format ("toml" or "yaml").
func (s Settings) Encode(w io.Writer, format string) error {
	var (
		out []byte
		err error
	)
	switch strings.ToLower(format) {
	case "toml":
		var buf bytes.Buffer
		err = toml.NewEncoder(&buf).Encode(s)
		out = buf.Bytes()
	case "yaml", "yml":
		out, err = yaml.Marshal(s)
	default:
		return fmt.Errorf("unsupported config format %q", format)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// ParseVSWRList splits a comma-separated flag value such as "inf,5,3".
func ParseVSWRList(s string) []any {
	var out []any
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// VSWRValues converts the loosely typed VSWR entries.
func (s Settings) VSWRValues() ([]swr.VSWR, error) {
	out := make([]swr.VSWR, 0, len(s.VSWR))
	for i, raw := range s.VSWR {
		v, err := toVSWR(raw)
		if err != nil {
			return nil, fmt.Errorf("vswr[%d]: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func toVSWR(raw any) (swr.VSWR, error) {
	switch v := raw.(type) {
	case string:
		return swr.ParseVSWR(v)
	case float64:
		if math.IsInf(v, 1) {
			return swr.Infinite, nil
		}
		return swr.VSWR(v), nil
	case float32:
		return toVSWR(float64(v))
	case int:
		return swr.VSWR(v), nil
	case int64:
		return swr.VSWR(v), nil
	case uint64:
		return swr.VSWR(v), nil
	case swr.VSWR:
		return v, nil
	default:
		return 0, fmt.Errorf("%w: unsupported vswr value %v (%T)", swr.ErrInvalidParameter, raw, raw)
	}
}

// RunConfig builds and validates the core configuration.
func (s Settings) RunConfig() (swr.Config, error) {
	values, err := s.VSWRValues()
	if err != nil {
		return swr.Config{}, err
	}
	cfg := swr.Config{
		VSWR: values,
		Wave: swr.WaveParams{
			Amplitude:  s.Amplitude,
			Frequency:  s.Frequency,
			Wavelength: s.Wavelength,
		},
		XMin:           s.XMin,
		XMax:           s.XMax,
		Samples:        s.Samples,
		WarmupFrames:   s.WarmupFrames,
		FramesPerCycle: s.FramesPerCycle,
	}
	if err := cfg.Validate(); err != nil {
		return swr.Config{}, err
	}
	return cfg, nil
}

// Validate checks the core config and every output knob.
func (s Settings) Validate() error {
	if _, err := s.RunConfig(); err != nil {
		return err
	}
	checks := []struct {
		name string
		ok   bool
	}{
		{"display_frames must be positive", s.DisplayFrames > 0},
		{"fps must be positive", s.FPS > 0},
		{"width must be positive", s.Width > 0},
		{"height must be positive", s.Height > 0},
		{"columns must be positive", s.Columns > 0},
		{"y_limit must be positive", s.YLimit > 0},
		{"carrier_hz must be positive", s.CarrierHz > 0},
		{"sample_rate must be positive", s.SampleRate > 0},
		{"probe_x must lie inside [x_min, x_max]", s.ProbeX >= s.XMin && s.ProbeX <= s.XMax},
	}
	for _, c := range checks {
		if !c.ok {
			return fmt.Errorf("%w: %s", swr.ErrInvalidParameter, c.name)
		}
	}
	switch s.Format {
	case FormatGIF, FormatMJPEG:
	default:
		return fmt.Errorf("%w: unknown format %q", swr.ErrInvalidParameter, s.Format)
	}
	return nil
}

// FrameDelay returns the per-frame delay in GIF units of 10 ms.
func (s Settings) FrameDelay() int {
	d := 100 / s.FPS
	if d < 1 {
		d = 1
	}
	return d
}
