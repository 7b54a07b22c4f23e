package swr

import "fmt"

// FrameSink consumes composed frames, typically to render them.
type FrameSink interface {
	WriteFrame(Frame) error
}

// FrameSinkFunc adapts a function to FrameSink.
type FrameSinkFunc func(Frame) error

// WriteFrame calls f.
func (f FrameSinkFunc) WriteFrame(fr Frame) error { return f(fr) }

// Drive runs c through warm-up and then displayFrames display ticks, handing
// frames to sink. Warm-up frames are only forwarded when includeWarmup is set;
// either way the envelopes are frozen on return.
func Drive(c *Compositor, sink FrameSink, displayFrames int, includeWarmup bool) error {
	if displayFrames < 0 {
		return fmt.Errorf("%w: display frames must not be negative, got %d", ErrInvalidParameter, displayFrames)
	}
	if c == nil || c.sched == nil {
		return fmt.Errorf("%w: compositor is not configured", ErrInvalidState)
	}
	if includeWarmup {
		for !c.Frozen() {
			if err := tickInto(c, sink); err != nil {
				return err
			}
		}
	} else if err := c.Warmup(); err != nil {
		return err
	}
	for shown := 0; shown < displayFrames; shown++ {
		if err := tickInto(c, sink); err != nil {
			return err
		}
	}
	return nil
}

func tickInto(c *Compositor, sink FrameSink) error {
	f, err := c.Tick()
	if err != nil {
		return err
	}
	if err := sink.WriteFrame(f); err != nil {
		return fmt.Errorf("frame %d: %w", f.Tick.Index, err)
	}
	return nil
}
