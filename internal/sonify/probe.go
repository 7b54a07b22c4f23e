// Package sonify turns the total wave at a fixed probe position into sound:
// an audible carrier whose amplitude follows the wave, so standing-wave
// nodes fall silent and antinodes swell.
package sonify

import (
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"

	"SWR/internal/swr"
)

// ProbeTone is a beep.Streamer. It plays forever; wrap it with beep.Take to
// bound it.
type ProbeTone struct {
	sr      beep.SampleRate
	carrier float64
	x       float64
	params  swr.WaveParams
	gamma   float64
	peak    float64
	gain    float64
	pos     int
}

// NewProbeTone listens at position x on a line with reflection magnitude
// gamma. Output is normalized so the loudest possible antinode reaches gain.
func NewProbeTone(sr beep.SampleRate, carrierHz, x float64, params swr.WaveParams, gamma float64) (*ProbeTone, error) {
	if sr <= 0 {
		return nil, fmt.Errorf("%w: sample rate %d", swr.ErrInvalidParameter, sr)
	}
	if carrierHz <= 0 || carrierHz >= float64(sr)/2 {
		return nil, fmt.Errorf("%w: carrier %v Hz outside (0, %d)", swr.ErrInvalidParameter, carrierHz, int(sr)/2)
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if gamma < 0 || gamma > 1 {
		return nil, fmt.Errorf("%w: gamma %v outside [0, 1]", swr.ErrInvalidParameter, gamma)
	}
	return &ProbeTone{
		sr:      sr,
		carrier: carrierHz,
		x:       x,
		params:  params,
		gamma:   gamma,
		peak:    params.Amplitude * (1 + gamma),
		gain:    0.5,
	}, nil
}

// Stream fills samples with the modulated carrier, both channels equal.
func (p *ProbeTone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(p.pos) / float64(p.sr)
		level := swr.TotalAt(p.x, t, p.params, p.gamma) / p.peak
		sample := p.gain * level * math.Sin(2*math.Pi*p.carrier*t)
		samples[i][0] = sample
		samples[i][1] = sample
		p.pos++
	}
	return len(samples), true
}

// Err always returns nil.
func (p *ProbeTone) Err() error {
	return nil
}

// Elapsed returns how much audio has been streamed.
func (p *ProbeTone) Elapsed() time.Duration {
	return p.sr.D(p.pos)
}
