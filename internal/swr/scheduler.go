package swr

import "fmt"

// Phase is the scheduler state.
type Phase int

const (
	// PhaseWarmup accumulates envelopes without displaying frames.
	PhaseWarmup Phase = iota
	// PhaseDisplay loops the steady-state animation indefinitely.
	PhaseDisplay
)

func (p Phase) String() string {
	switch p {
	case PhaseWarmup:
		return "warmup"
	case PhaseDisplay:
		return "display"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// MarshalText lets Phase appear by name in JSON.
func (p Phase) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// Tick is one step of the schedule.
type Tick struct {
	// Index counts every tick since the start of the run.
	Index int `json:"index"`
	// Frame counts ticks within the current phase.
	Frame int     `json:"frame"`
	Phase Phase   `json:"phase"`
	Time  float64 `json:"time"`
	// Entered is set on the first display tick only.
	Entered bool `json:"entered,omitempty"`
}

// Scheduler drives the warm-up/display state machine. It has no terminal
// state; display ticks repeat with period framesPerCycle.
type Scheduler struct {
	warmup         int
	framesPerCycle int
	dt             float64

	remaining int
	phase     Phase
	index     int
	frame     int
}

// NewScheduler builds a scheduler whose time step makes framesPerCycle ticks
// span exactly one period of a wave at frequency.
func NewScheduler(warmupFrames, framesPerCycle int, frequency float64) (*Scheduler, error) {
	if warmupFrames <= 0 {
		return nil, fmt.Errorf("%w: warm-up frames must be positive, got %d", ErrInvalidParameter, warmupFrames)
	}
	if framesPerCycle <= 0 {
		return nil, fmt.Errorf("%w: frames per cycle must be positive, got %d", ErrInvalidParameter, framesPerCycle)
	}
	if err := positive("frequency", frequency); err != nil {
		return nil, err
	}
	return &Scheduler{
		warmup:         warmupFrames,
		framesPerCycle: framesPerCycle,
		dt:             1 / (frequency * float64(framesPerCycle)),
		remaining:      warmupFrames,
		phase:          PhaseWarmup,
	}, nil
}

// Next advances the machine by one tick.
func (s *Scheduler) Next() Tick {
	if s.phase == PhaseWarmup && s.remaining == 0 {
		s.phase = PhaseDisplay
		s.frame = 0
	}
	var t Tick
	switch s.phase {
	case PhaseWarmup:
		t = Tick{Index: s.index, Frame: s.frame, Phase: PhaseWarmup, Time: s.WarmupTime(s.frame)}
		s.remaining--
	default:
		t = Tick{Index: s.index, Frame: s.frame, Phase: PhaseDisplay, Time: s.DisplayTime(s.frame), Entered: s.frame == 0}
	}
	s.index++
	s.frame++
	return t
}

// WarmupTime maps warm-up frame m to m·Δt.
func (s *Scheduler) WarmupTime(m int) float64 { return float64(m) * s.dt }

// DisplayTime maps display frame j to a time within one period, continuing
// from where warm-up stopped.
func (s *Scheduler) DisplayTime(j int) float64 {
	m := (s.warmup + j) % s.framesPerCycle
	if m < 0 {
		m += s.framesPerCycle
	}
	return float64(m) * s.dt
}

// Phase reports the current state. It switches to PhaseDisplay on the first
// tick after warm-up runs out.
func (s *Scheduler) Phase() Phase { return s.phase }

// Remaining returns the warm-up ticks still to run.
func (s *Scheduler) Remaining() int { return s.remaining }

// Step returns Δt.
func (s *Scheduler) Step() float64 { return s.dt }

// WarmupFrames returns the configured warm-up length.
func (s *Scheduler) WarmupFrames() int { return s.warmup }

// FramesPerCycle returns the display period in ticks.
func (s *Scheduler) FramesPerCycle() int { return s.framesPerCycle }
