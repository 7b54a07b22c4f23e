package swr

import "fmt"

// Panel is one VSWR value with its cached Gamma and its own envelope.
type Panel struct {
	ID    int
	VSWR  VSWR
	Gamma float64

	env *Envelope
}

// PanelFrame is what a renderer needs to draw one panel for one tick.
type PanelFrame struct {
	ID    int     `json:"id"`
	VSWR  VSWR    `json:"vswr"`
	Gamma float64 `json:"gamma"`
	Phase Phase   `json:"phase"`
	FrameSample
	EnvMax []float64 `json:"env_max"`
	EnvMin []float64 `json:"env_min"`
}

// Frame is the composed output of one tick, panels in configuration order.
type Frame struct {
	Tick   Tick         `json:"tick"`
	Panels []PanelFrame `json:"panels"`
}

// Compositor fans every tick out to all configured panels. It is not safe
// for concurrent use except for FrameAt once warm-up has finished.
type Compositor struct {
	cfg    Config
	grid   Grid
	sched  *Scheduler
	panels []*Panel
	frozen bool
}

// NewCompositor validates cfg and prepares every panel. No frame is computed.
func NewCompositor(cfg Config) (*Compositor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	grid, err := NewGrid(cfg.XMin, cfg.XMax, cfg.Samples)
	if err != nil {
		return nil, err
	}
	sched, err := NewScheduler(cfg.WarmupFrames, cfg.FramesPerCycle, cfg.Wave.Frequency)
	if err != nil {
		return nil, err
	}
	c := &Compositor{
		cfg:    cfg.Clone(),
		grid:   grid,
		sched:  sched,
		panels: make([]*Panel, len(cfg.VSWR)),
	}
	for i, v := range cfg.VSWR {
		gamma, err := Gamma(v)
		if err != nil {
			return nil, fmt.Errorf("panel %d: %w", i, err)
		}
		c.panels[i] = &Panel{ID: i, VSWR: v, Gamma: gamma, env: NewEnvelope(grid.Len())}
	}
	return c, nil
}

// Tick advances the schedule and returns every panel's frame. Warm-up ticks
// fold each total into its panel's envelope; the last warm-up tick freezes
// all envelopes.
func (c *Compositor) Tick() (Frame, error) {
	if c == nil || c.sched == nil {
		return Frame{}, fmt.Errorf("%w: compositor is not configured", ErrInvalidState)
	}
	tick := c.sched.Next()
	samples := make([]FrameSample, len(c.panels))
	for i, p := range c.panels {
		samples[i] = Sample(c.grid, tick.Time, c.cfg.Wave, p.Gamma)
	}
	if tick.Phase == PhaseWarmup {
		for i, p := range c.panels {
			if err := p.env.Update(samples[i].Total); err != nil {
				return Frame{}, fmt.Errorf("panel %d: %w", p.ID, err)
			}
		}
		if c.sched.Remaining() == 0 {
			c.freeze()
		}
	}
	return c.compose(tick, samples), nil
}

// Warmup runs every remaining warm-up tick, leaving envelopes frozen.
func (c *Compositor) Warmup() error {
	if c == nil || c.sched == nil {
		return fmt.Errorf("%w: compositor is not configured", ErrInvalidState)
	}
	for c.sched.Phase() == PhaseWarmup && c.sched.Remaining() > 0 {
		if _, err := c.Tick(); err != nil {
			return err
		}
	}
	return nil
}

// FrameAt computes display frame j directly. It only reads frozen state, so
// it matches the j-th display tick and may be called concurrently.
func (c *Compositor) FrameAt(j int) (Frame, error) {
	if c == nil || c.sched == nil || !c.frozen {
		return Frame{}, fmt.Errorf("%w: envelopes are not frozen yet", ErrInvalidState)
	}
	if j < 0 {
		return Frame{}, fmt.Errorf("%w: display frame %d is negative", ErrInvalidParameter, j)
	}
	tick := Tick{
		Index:   c.sched.WarmupFrames() + j,
		Frame:   j,
		Phase:   PhaseDisplay,
		Time:    c.sched.DisplayTime(j),
		Entered: j == 0,
	}
	samples := make([]FrameSample, len(c.panels))
	for i, p := range c.panels {
		samples[i] = Sample(c.grid, tick.Time, c.cfg.Wave, p.Gamma)
	}
	return c.compose(tick, samples), nil
}

func (c *Compositor) freeze() {
	if c.frozen {
		return
	}
	for _, p := range c.panels {
		p.env.Freeze()
	}
	c.frozen = true
}

func (c *Compositor) compose(tick Tick, samples []FrameSample) Frame {
	f := Frame{Tick: tick, Panels: make([]PanelFrame, len(c.panels))}
	for i, p := range c.panels {
		upper, lower := p.env.Bounds()
		f.Panels[i] = PanelFrame{
			ID:          p.ID,
			VSWR:        p.VSWR,
			Gamma:       p.Gamma,
			Phase:       tick.Phase,
			FrameSample: samples[i],
			EnvMax:      upper,
			EnvMin:      lower,
		}
	}
	return f
}

// Frozen reports whether warm-up has completed.
func (c *Compositor) Frozen() bool { return c.frozen }

// Config returns a copy of the run configuration.
func (c *Compositor) Config() Config { return c.cfg.Clone() }

// Grid returns the shared sample positions.
func (c *Compositor) Grid() Grid { return c.grid }

// WarmupFrames returns the configured warm-up length.
func (c *Compositor) WarmupFrames() int { return c.sched.WarmupFrames() }

// Remaining returns how many warm-up ticks are still to run.
func (c *Compositor) Remaining() int { return c.sched.Remaining() }

// Panels returns a snapshot of the panel set without envelopes.
func (c *Compositor) Panels() []Panel {
	out := make([]Panel, len(c.panels))
	for i, p := range c.panels {
		out[i] = Panel{ID: p.ID, VSWR: p.VSWR, Gamma: p.Gamma}
	}
	return out
}

// Envelope returns the live envelope of panel id, or nil if id is unknown.
func (c *Compositor) Envelope(id int) *Envelope {
	if id < 0 || id >= len(c.panels) {
		return nil
	}
	return c.panels[id].env
}
