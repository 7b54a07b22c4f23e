package main

import (
	"bytes"
	"encoding/binary"
	"flag"
	"image/gif"
	"os"
	"path/filepath"
	"testing"

	"github.com/gopxl/beep"

	"SWR/internal/config"
	"SWR/internal/swr"
)

func smallSettings() config.Settings {
	s := config.Default()
	s.VSWR = []any{"inf", 1.0}
	s.Samples = 21
	s.WarmupFrames = 10
	s.FramesPerCycle = 10
	s.DisplayFrames = 3
	s.Width = 480
	s.Height = 240
	s.Columns = 2
	return s
}

func TestPanelRects(t *testing.T) {
	rects := panelRects(300, 200, 5, 3)
	if len(rects) != 5 {
		t.Fatalf("got %d rects, want 5", len(rects))
	}
	if rects[0].Min.X != panelMargin || rects[0].Min.Y != panelMargin+panelTitleHeight {
		t.Errorf("first rect origin %v", rects[0].Min)
	}
	// Fourth panel starts the second row.
	if rects[3].Min.X != rects[0].Min.X || rects[3].Min.Y <= rects[0].Max.Y {
		t.Errorf("row layout wrong: %v vs %v", rects[3], rects[0])
	}
	if got := panelRects(100, 100, 0, 3); got != nil {
		t.Errorf("empty layout = %v", got)
	}
}

func TestPlotMapperClips(t *testing.T) {
	rects := panelRects(200, 200, 1, 1)
	m := plotMapper{rect: rects[0], xMin: 0, xMax: 2, yLimit: 2}
	top := m.toScreen(0, 2)
	if top.x != m.rect.Min.X || top.y != m.rect.Min.Y {
		t.Errorf("top-left = %+v, want %v", top, m.rect.Min)
	}
	far := m.toScreen(5, -10)
	if far.x != m.rect.Max.X-1 || far.y != m.rect.Max.Y-1 {
		t.Errorf("clipped point = %+v, want %v", far, m.rect.Max)
	}
}

func TestPCM16Clamps(t *testing.T) {
	cases := []struct {
		in   float64
		want int16
	}{
		{0, 0},
		{1, pcm16MaxValue},
		{2, pcm16MaxValue},
		{-2, pcm16MinValue},
	}
	for _, c := range cases {
		if got := pcm16(c.in); got != c.want {
			t.Errorf("pcm16(%v) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestProbeAudioStreamRead(t *testing.T) {
	s := newProbeAudioStream()
	p := make([]byte, 18)
	n, err := s.Read(p)
	if err != nil || n != 16 {
		t.Fatalf("Read = %d, %v; want 16 whole frames", n, err)
	}
	for _, b := range p[:n] {
		if b != 0 {
			t.Fatal("nil source should be silent")
		}
	}

	s.SetSource(beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			samples[i] = [2]float64{0.5, -0.5}
		}
		return len(samples), true
	}))
	if _, err := s.Read(p); err != nil {
		t.Fatal(err)
	}
	l := int16(binary.LittleEndian.Uint16(p[0:]))
	r := int16(binary.LittleEndian.Uint16(p[2:]))
	if l <= 0 || r >= 0 {
		t.Errorf("channels = %d, %d", l, r)
	}
}

func TestApplyFlags(t *testing.T) {
	defer func() {
		flag.Set("fps", "0")
		flag.Set("vswr", "")
	}()
	if err := flag.Set("fps", "7"); err != nil {
		t.Fatal(err)
	}
	if err := flag.Set("vswr", "inf,2"); err != nil {
		t.Fatal(err)
	}
	s := config.Default()
	applyFlags(&s)
	if s.FPS != 7 {
		t.Errorf("FPS = %d, want 7", s.FPS)
	}
	values, err := s.VSWRValues()
	if err != nil {
		t.Fatal(err)
	}
	if len(values) != 2 || !values[0].IsInfinite() || values[1] != 2 {
		t.Errorf("VSWR = %v", values)
	}
	// Untouched flags keep the defaults.
	if s.Samples != config.Default().Samples {
		t.Errorf("Samples = %d", s.Samples)
	}
}

func TestWriteGIF(t *testing.T) {
	s := smallSettings()
	cfg, err := s.RunConfig()
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := writeGIF(&buf, s, cfg); err != nil {
		t.Fatal(err)
	}
	anim, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(anim.Image) != s.DisplayFrames {
		t.Errorf("frames = %d, want %d", len(anim.Image), s.DisplayFrames)
	}
}

func TestRunExportRejectsUnknownFormat(t *testing.T) {
	s := smallSettings()
	s.Format = "webm"
	cfg, err := s.RunConfig()
	if err != nil {
		t.Fatal(err)
	}
	if err := runExport(s, cfg); err == nil {
		t.Fatal("expected error")
	}
}

func TestRunWAV(t *testing.T) {
	s := smallSettings()
	s.SampleRate = 8000
	s.CarrierHz = 440
	cfg, err := s.RunConfig()
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "probe.wav")
	if err := runWAV(s, cfg, path, 1); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	// 3 frames at 20 fps is 150 ms: 1200 stereo 16-bit frames plus header.
	if want := int64(44 + 1200*4); info.Size() != want {
		t.Errorf("size = %d, want %d", info.Size(), want)
	}
	if err := runWAV(s, cfg, path, 5); err == nil {
		t.Error("expected error for out-of-range panel")
	}
}

func TestProgressSinkForwards(t *testing.T) {
	n := 0
	sink := progressSink(swr.FrameSinkFunc(func(swr.Frame) error {
		n++
		return nil
	}), 2)
	for i := 0; i < 2; i++ {
		if err := sink.WriteFrame(swr.Frame{}); err != nil {
			t.Fatal(err)
		}
	}
	if n != 2 {
		t.Errorf("forwarded %d frames, want 2", n)
	}
}

func TestDrawLineDashed(t *testing.T) {
	g := &Game{width: 20, height: 1, pixels: make([]byte, 20*4)}
	g.drawLine(0, 0, 19, 0, totalColor, true)
	lit := 0
	for x := 0; x < 20; x++ {
		if g.pixels[x*4] == totalColor.R {
			lit++
		}
	}
	// 20 px in a 4-on/3-off pattern.
	if lit != 12 {
		t.Errorf("lit = %d, want 12", lit)
	}
	g.set(-1, 5, totalColor) // out of bounds is ignored
}

func TestAdjustSpeedClamps(t *testing.T) {
	g := &Game{speed: defaultSpeed}
	g.adjustSpeed(-10)
	if g.speed != minSpeed {
		t.Errorf("speed = %d, want %d", g.speed, minSpeed)
	}
	g.adjustSpeed(100)
	if g.speed != maxSpeed {
		t.Errorf("speed = %d, want %d", g.speed, maxSpeed)
	}
}

func TestCycleProbeWraps(t *testing.T) {
	cfg := swr.Config{VSWR: []swr.VSWR{swr.Infinite, 3, 1}}
	g := &Game{cfg: cfg}
	if err := g.cycleProbe(-1); err != nil {
		t.Fatal(err)
	}
	if g.probePanel != 2 {
		t.Errorf("probePanel = %d, want 2", g.probePanel)
	}
	if err := g.cycleProbe(1); err != nil {
		t.Fatal(err)
	}
	if g.probePanel != 0 {
		t.Errorf("probePanel = %d, want 0", g.probePanel)
	}
}
