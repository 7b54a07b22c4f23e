package swr

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// WaveParams describes the forward sinusoid. All fields must be positive.
type WaveParams struct {
	Amplitude  float64 `json:"amplitude"`
	Frequency  float64 `json:"frequency"`
	Wavelength float64 `json:"wavelength"`
}

// Omega returns the angular frequency 2πf.
func (p WaveParams) Omega() float64 { return 2 * math.Pi * p.Frequency }

// K returns the wavenumber 2π/λ.
func (p WaveParams) K() float64 { return 2 * math.Pi / p.Wavelength }

// Validate rejects non-positive or non-finite values.
func (p WaveParams) Validate() error {
	if err := positive("amplitude", p.Amplitude); err != nil {
		return err
	}
	if err := positive("frequency", p.Frequency); err != nil {
		return err
	}
	return positive("wavelength", p.Wavelength)
}

func positive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidParameter, name, v)
	}
	return nil
}

// Grid is the shared, read-only set of sample positions.
type Grid struct {
	xs []float64
}

// NewGrid spaces n positions evenly over [xMin, xMax], endpoints included.
func NewGrid(xMin, xMax float64, n int) (Grid, error) {
	if n <= 0 {
		return Grid{}, fmt.Errorf("%w: grid needs at least one sample, got %d", ErrInvalidParameter, n)
	}
	if math.IsNaN(xMin) || math.IsNaN(xMax) || math.IsInf(xMin, 0) || math.IsInf(xMax, 0) || xMax <= xMin {
		return Grid{}, fmt.Errorf("%w: grid span [%v, %v] is empty", ErrInvalidParameter, xMin, xMax)
	}
	xs := make([]float64, n)
	if n == 1 {
		xs[0] = xMin
	} else {
		floats.Span(xs, xMin, xMax)
	}
	return Grid{xs: xs}, nil
}

// Len returns the number of sample positions.
func (g Grid) Len() int { return len(g.xs) }

// At returns position i.
func (g Grid) At(i int) float64 { return g.xs[i] }

// Positions returns a copy of the sample positions.
func (g Grid) Positions() []float64 {
	out := make([]float64, len(g.xs))
	copy(out, g.xs)
	return out
}

// Nearest returns the index of the grid position closest to x.
func (g Grid) Nearest(x float64) int {
	best := 0
	for i, xi := range g.xs {
		if math.Abs(xi-x) < math.Abs(g.xs[best]-x) {
			best = i
		}
	}
	return best
}
