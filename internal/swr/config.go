package swr

import (
	"fmt"
)

// Config is the complete, immutable description of a run.
type Config struct {
	VSWR           []VSWR     `json:"vswr"`
	Wave           WaveParams `json:"wave"`
	XMin           float64    `json:"x_min"`
	XMax           float64    `json:"x_max"`
	Samples        int        `json:"samples"`
	WarmupFrames   int        `json:"warmup_frames"`
	FramesPerCycle int        `json:"frames_per_cycle"`
}

// Validate checks every field and returns the first violation.
func (c Config) Validate() error {
	if len(c.VSWR) == 0 {
		return fmt.Errorf("%w: at least one vswr value is required", ErrInvalidParameter)
	}
	for i, v := range c.VSWR {
		if _, err := Gamma(v); err != nil {
			return fmt.Errorf("panel %d: %w", i, err)
		}
	}
	if err := c.Wave.Validate(); err != nil {
		return err
	}
	if _, err := NewGrid(c.XMin, c.XMax, c.Samples); err != nil {
		return err
	}
	_, err := NewScheduler(c.WarmupFrames, c.FramesPerCycle, c.Wave.Frequency)
	return err
}

// CoversCycle reports whether warm-up spans at least one full temporal
// period. Shorter warm-ups under-estimate the envelope; this is not corrected.
func (c Config) CoversCycle() bool {
	return c.WarmupFrames >= c.FramesPerCycle
}

// TimeStep returns Δt, the simulated time between ticks.
func (c Config) TimeStep() float64 {
	return 1 / (c.Wave.Frequency * float64(c.FramesPerCycle))
}

// Clone returns a copy that shares no slices with c.
func (c Config) Clone() Config {
	out := c
	out.VSWR = append([]VSWR(nil), c.VSWR...)
	return out
}
