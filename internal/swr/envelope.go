package swr

import (
	"fmt"
	"math"
)

// Envelope tracks the running elementwise extremes of a panel's total wave.
// It only grows while warming up and is read-only once frozen.
type Envelope struct {
	max    []float64
	min    []float64
	frames int
	frozen bool
}

// NewEnvelope returns an empty envelope for n grid positions. Until the first
// Update, max is -Inf and min is +Inf everywhere.
func NewEnvelope(n int) *Envelope {
	e := &Envelope{
		max: make([]float64, n),
		min: make([]float64, n),
	}
	for i := range e.max {
		e.max[i] = math.Inf(-1)
		e.min[i] = math.Inf(1)
	}
	return e
}

// Update folds total into the envelope. The reduction is elementwise max/min,
// so the final result does not depend on the order of updates. A rejected
// update leaves the envelope unchanged.
func (e *Envelope) Update(total []float64) error {
	if e.frozen {
		return fmt.Errorf("%w: envelope is frozen", ErrInvalidState)
	}
	if len(total) != len(e.max) {
		return fmt.Errorf("%w: total has %d samples, envelope has %d", ErrInvalidParameter, len(total), len(e.max))
	}
	for i, v := range total {
		if v > e.max[i] {
			e.max[i] = v
		}
		if v < e.min[i] {
			e.min[i] = v
		}
	}
	e.frames++
	return nil
}

// Freeze ends accumulation. Calling it again has no effect.
func (e *Envelope) Freeze() { e.frozen = true }

// Frozen reports whether Freeze has been called.
func (e *Envelope) Frozen() bool { return e.frozen }

// Frames returns how many totals have been folded in.
func (e *Envelope) Frames() int { return e.frames }

// Len returns the number of grid positions covered.
func (e *Envelope) Len() int { return len(e.max) }

// Bounds returns copies of the running maximum and minimum.
func (e *Envelope) Bounds() (upper, lower []float64) {
	upper = make([]float64, len(e.max))
	lower = make([]float64, len(e.min))
	copy(upper, e.max)
	copy(lower, e.min)
	return upper, lower
}
