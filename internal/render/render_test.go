package render

import (
	"bytes"
	"errors"
	"image/gif"
	"os"
	"path/filepath"
	"testing"

	"SWR/internal/swr"
)

func testCompositor(t *testing.T) *swr.Compositor {
	t.Helper()
	c, err := swr.NewCompositor(swr.Config{
		VSWR:           []swr.VSWR{swr.Infinite, 3},
		Wave:           swr.WaveParams{Amplitude: 1, Frequency: 1, Wavelength: 1},
		XMin:           0,
		XMax:           2,
		Samples:        60,
		WarmupFrames:   10,
		FramesPerCycle: 10,
	})
	if err != nil {
		t.Fatalf("NewCompositor: %v", err)
	}
	return c
}

func testRenderer(t *testing.T, c *swr.Compositor) *Renderer {
	t.Helper()
	r, err := NewRenderer(c.Grid(), Options{Width: 480, Height: 240, Columns: 2, YLimit: 2})
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	return r
}

func TestPanelTitle(t *testing.T) {
	tests := []struct {
		pf   swr.PanelFrame
		want string
	}{
		{swr.PanelFrame{VSWR: swr.Infinite, Gamma: 1}, "VSWR = ∞ (Γ = 1)"},
		{swr.PanelFrame{VSWR: 3, Gamma: 0.5}, "VSWR = 3: Γ = 0.50"},
		{swr.PanelFrame{VSWR: 1, Gamma: 0}, "VSWR = 1: Γ = 0.00"},
	}
	for _, tt := range tests {
		if got := PanelTitle(tt.pf); got != tt.want {
			t.Errorf("PanelTitle(%v) = %q, want %q", tt.pf.VSWR, got, tt.want)
		}
	}
}

func TestNewRendererRejects(t *testing.T) {
	g, _ := swr.NewGrid(0, 1, 10)
	if _, err := NewRenderer(g, Options{Width: 0, Height: 10, YLimit: 1}); !errors.Is(err, swr.ErrInvalidParameter) {
		t.Errorf("zero width error = %v", err)
	}
	if _, err := NewRenderer(g, Options{Width: 10, Height: 10}); !errors.Is(err, swr.ErrInvalidParameter) {
		t.Errorf("zero y limit error = %v", err)
	}
}

func TestRenderSize(t *testing.T) {
	c := testCompositor(t)
	r := testRenderer(t, c)
	f, err := c.Tick()
	if err != nil {
		t.Fatalf("Tick: %v", err)
	}
	img, err := r.Render(f)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if img.Bounds().Dx() != 480 || img.Bounds().Dy() != 240 {
		t.Errorf("image bounds = %v, want 480x240", img.Bounds())
	}
	if _, err := r.Render(swr.Frame{}); !errors.Is(err, swr.ErrInvalidParameter) {
		t.Errorf("empty frame error = %v", err)
	}
}

func TestGIFLoopsForever(t *testing.T) {
	c := testCompositor(t)
	r := testRenderer(t, c)
	gw := NewGIFWriter(r, 5)
	if err := swr.Drive(c, gw, 4, false); err != nil {
		t.Fatalf("Drive: %v", err)
	}
	if gw.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", gw.Len())
	}
	var buf bytes.Buffer
	if err := gw.Encode(&buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatalf("DecodeAll: %v", err)
	}
	if len(decoded.Image) != 4 {
		t.Errorf("decoded %d frames, want 4", len(decoded.Image))
	}
	if decoded.LoopCount != 0 {
		t.Errorf("LoopCount = %d, want 0", decoded.LoopCount)
	}
	for i, d := range decoded.Delay {
		if d != 5 {
			t.Errorf("delay[%d] = %d, want 5", i, d)
		}
	}
}

func TestMJPEGWriter(t *testing.T) {
	c := testCompositor(t)
	r := testRenderer(t, c)
	path := filepath.Join(t.TempDir(), "out.avi")
	mw, err := NewMJPEGWriter(path, r, 20)
	if err != nil {
		t.Fatalf("NewMJPEGWriter: %v", err)
	}
	if err := swr.Drive(c, mw, 3, false); err != nil {
		t.Fatalf("Drive: %v", err)
	}
	if mw.Len() != 3 {
		t.Errorf("Len() = %d, want 3", mw.Len())
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(raw) < 12 || string(raw[:4]) != "RIFF" || string(raw[8:12]) != "AVI " {
		t.Errorf("output is not an AVI file (%d bytes)", len(raw))
	}
}
