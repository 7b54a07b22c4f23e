package swr

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// FrameSample holds one panel's waveforms at one instant.
type FrameSample struct {
	Forward   []float64 `json:"forward"`
	Reflected []float64 `json:"reflected"`
	Total     []float64 `json:"total"`
}

// ForwardAt is A·cos(kx − ωt), the wave travelling toward the load.
func ForwardAt(x, t float64, p WaveParams) float64 {
	return p.Amplitude * math.Cos(p.K()*x-p.Omega()*t)
}

// ReflectedAt is Γ·A·cos(kx + ωt). Phase shift on reflection is not modelled.
func ReflectedAt(x, t float64, p WaveParams, gamma float64) float64 {
	return gamma * p.Amplitude * math.Cos(p.K()*x+p.Omega()*t)
}

// TotalAt is the superposition of the forward and reflected waves at x.
func TotalAt(x, t float64, p WaveParams, gamma float64) float64 {
	return ForwardAt(x, t, p) + ReflectedAt(x, t, p, gamma)
}

// Sample evaluates the three waveforms over the whole grid at time t.
// It allocates fresh slices and never touches its inputs.
func Sample(g Grid, t float64, p WaveParams, gamma float64) FrameSample {
	n := g.Len()
	s := FrameSample{
		Forward:   make([]float64, n),
		Reflected: make([]float64, n),
		Total:     make([]float64, n),
	}
	for i, x := range g.xs {
		s.Forward[i] = ForwardAt(x, t, p)
		s.Reflected[i] = ReflectedAt(x, t, p, gamma)
	}
	floats.AddTo(s.Total, s.Forward, s.Reflected)
	return s
}
