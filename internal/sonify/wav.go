package sonify

import (
	"fmt"
	"io"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

// WriteWAV encodes d of s as 16-bit stereo PCM.
func WriteWAV(w io.WriteSeeker, s beep.Streamer, sr beep.SampleRate, d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("wav duration must be positive, got %v", d)
	}
	format := beep.Format{SampleRate: sr, NumChannels: 2, Precision: 2}
	if err := wav.Encode(w, beep.Take(sr.N(d), s), format); err != nil {
		return fmt.Errorf("encoding wav: %w", err)
	}
	return nil
}
