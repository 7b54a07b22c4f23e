package sonify

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"SWR/internal/swr"
)

var unitWave = swr.WaveParams{Amplitude: 1, Frequency: 1, Wavelength: 1}

func TestProbeToneRange(t *testing.T) {
	rate := beep.SampleRate(44100)
	for _, gamma := range []float64{0, 0.5, 1} {
		p, err := NewProbeTone(rate, 440, 0, unitWave, gamma)
		if err != nil {
			t.Fatalf("NewProbeTone: %v", err)
		}
		samples := make([][2]float64, 4410)
		n, ok := p.Stream(samples)
		if !ok || n != len(samples) {
			t.Fatalf("Stream = %d, %v", n, ok)
		}
		for i := 0; i < n; i++ {
			if math.Abs(samples[i][0]) > 0.5+1e-12 || samples[i][0] != samples[i][1] {
				t.Fatalf("gamma=%v sample %d = %v", gamma, i, samples[i])
			}
		}
		if p.Err() != nil {
			t.Errorf("Err() = %v", p.Err())
		}
		if p.Elapsed() != 100*time.Millisecond {
			t.Errorf("Elapsed() = %v, want 100ms", p.Elapsed())
		}
	}
}

func TestProbeToneSilentAtNode(t *testing.T) {
	// With full reflection x = λ/4 never moves.
	p, err := NewProbeTone(beep.SampleRate(8000), 440, 0.25, unitWave, 1)
	if err != nil {
		t.Fatalf("NewProbeTone: %v", err)
	}
	samples := make([][2]float64, 8000)
	p.Stream(samples)
	for i, s := range samples {
		if math.Abs(s[0]) > 1e-9 {
			t.Fatalf("sample %d = %v at a node", i, s[0])
		}
	}
}

func TestProbeToneLoudAtAntinode(t *testing.T) {
	p, err := NewProbeTone(beep.SampleRate(8000), 440, 0, unitWave, 1)
	if err != nil {
		t.Fatalf("NewProbeTone: %v", err)
	}
	samples := make([][2]float64, 8000)
	p.Stream(samples)
	peak := 0.0
	for _, s := range samples {
		peak = math.Max(peak, math.Abs(s[0]))
	}
	if peak < 0.4 {
		t.Errorf("antinode peak = %v, want close to 0.5", peak)
	}
}

func TestNewProbeToneRejects(t *testing.T) {
	rate := beep.SampleRate(8000)
	cases := []struct {
		name    string
		sr      beep.SampleRate
		carrier float64
		gamma   float64
	}{
		{"zero rate", 0, 440, 0.5},
		{"carrier above nyquist", rate, 5000, 0.5},
		{"negative gamma", rate, 440, -0.1},
		{"gamma above one", rate, 440, 1.5},
	}
	for _, tc := range cases {
		if _, err := NewProbeTone(tc.sr, tc.carrier, 0, unitWave, tc.gamma); !errors.Is(err, swr.ErrInvalidParameter) {
			t.Errorf("%s: error = %v", tc.name, err)
		}
	}
}

func TestWriteWAV(t *testing.T) {
	rate := beep.SampleRate(8000)
	p, err := NewProbeTone(rate, 440, 0, unitWave, 0.5)
	if err != nil {
		t.Fatalf("NewProbeTone: %v", err)
	}
	path := filepath.Join(t.TempDir(), "probe.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := WriteWAV(f, p, rate, 250*time.Millisecond); err != nil {
		t.Fatalf("WriteWAV: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	// 44-byte header plus 2000 frames of 4 bytes.
	if string(raw[:4]) != "RIFF" || string(raw[8:12]) != "WAVE" {
		t.Fatalf("missing RIFF/WAVE header")
	}
	if len(raw) != 44+2000*4 {
		t.Errorf("file size = %d, want %d", len(raw), 44+2000*4)
	}
	if err := WriteWAV(f, p, rate, 0); err == nil {
		t.Error("expected error for zero duration")
	}
}
