package render

import (
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"

	"SWR/internal/swr"
)

// GIFWriter collects rendered frames into an endlessly looping GIF.
// It implements swr.FrameSink.
type GIFWriter struct {
	r     *Renderer
	delay int
	anim  gif.GIF
}

// NewGIFWriter returns a writer that shows each frame for delay × 10 ms.
func NewGIFWriter(r *Renderer, delay int) *GIFWriter {
	if delay < 1 {
		delay = 1
	}
	return &GIFWriter{r: r, delay: delay, anim: gif.GIF{LoopCount: 0}}
}

// WriteFrame renders f and appends it to the animation.
func (g *GIFWriter) WriteFrame(f swr.Frame) error {
	img, err := g.r.Render(f)
	if err != nil {
		return err
	}
	g.anim.Image = append(g.anim.Image, toPaletted(img))
	g.anim.Delay = append(g.anim.Delay, g.delay)
	return nil
}

// Len returns the number of frames collected so far.
func (g *GIFWriter) Len() int { return len(g.anim.Image) }

// Encode writes the whole animation to w.
func (g *GIFWriter) Encode(w io.Writer) error {
	return gif.EncodeAll(w, &g.anim)
}

func toPaletted(img image.Image) *image.Paletted {
	b := img.Bounds()
	pal := image.NewPaletted(b, palette.Plan9)
	draw.Draw(pal, b, img, b.Min, draw.Src)
	return pal
}
