package main

import (
	"sync"

	"github.com/gopxl/beep"
)

// probeAudioStream adapts a beep.Streamer to the 16-bit little-endian
// stereo io.Reader the ebiten audio player expects. The source can be
// swapped while playing.
type probeAudioStream struct {
	mu  sync.Mutex
	src beep.Streamer
	buf [][2]float64
}

func newProbeAudioStream() *probeAudioStream {
	return &probeAudioStream{}
}

// SetSource replaces the streamer being played. nil plays silence.
func (s *probeAudioStream) SetSource(src beep.Streamer) {
	s.mu.Lock()
	s.src = src
	s.mu.Unlock()
}

func (s *probeAudioStream) Read(p []byte) (int, error) {
	// Ensure we generate whole stereo frames (4 bytes per frame).
	frames := len(p) / audioBytesPerFrame
	if frames == 0 {
		return 0, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if cap(s.buf) < frames {
		s.buf = make([][2]float64, frames)
	}
	buf := s.buf[:frames]
	n := 0
	if s.src != nil {
		n, _ = s.src.Stream(buf)
	}
	for i := n; i < frames; i++ {
		buf[i] = [2]float64{}
	}

	for i, frame := range buf {
		l := pcm16(frame[0])
		r := pcm16(frame[1])
		o := i * audioBytesPerFrame
		p[o] = byte(l)
		p[o+1] = byte(l >> 8)
		p[o+2] = byte(r)
		p[o+3] = byte(r >> 8)
	}
	return frames * audioBytesPerFrame, nil
}

func (s *probeAudioStream) Close() error {
	return nil
}

func pcm16(v float64) int16 {
	x := int(v * pcm16MaxValue)
	return int16(clampCoord(x, pcm16MinValue, pcm16MaxValue))
}
