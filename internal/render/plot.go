// Package render draws composed frames as multi-panel figures and encodes
// them into looping animations.
package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"SWR/internal/swr"
)

const dpi = 96

var (
	forwardColor   = color.RGBA{R: 31, G: 90, B: 220, A: 255}
	reflectedColor = color.RGBA{R: 220, G: 40, B: 40, A: 255}
	totalColor     = color.RGBA{A: 255}
	envelopeColor  = color.RGBA{R: 90, G: 90, B: 90, A: 160}
)

// Options controls figure geometry.
type Options struct {
	Width   int // pixels
	Height  int // pixels
	Columns int
	YLimit  float64
}

// Renderer turns frames into images. Panels are tiled row-major in
// configuration order.
type Renderer struct {
	xs   []float64
	opts Options
}

// NewRenderer returns a renderer for frames sampled on grid.
func NewRenderer(grid swr.Grid, opts Options) (*Renderer, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("%w: image size %dx%d", swr.ErrInvalidParameter, opts.Width, opts.Height)
	}
	if opts.Columns <= 0 {
		opts.Columns = 1
	}
	if opts.YLimit <= 0 {
		return nil, fmt.Errorf("%w: y limit %v", swr.ErrInvalidParameter, opts.YLimit)
	}
	return &Renderer{xs: grid.Positions(), opts: opts}, nil
}

// Bounds returns the size of every rendered image.
func (r *Renderer) Bounds() image.Rectangle {
	return image.Rect(0, 0, r.opts.Width, r.opts.Height)
}

// PanelTitle labels a panel by its VSWR and reflection magnitude.
func PanelTitle(pf swr.PanelFrame) string {
	if pf.VSWR.IsInfinite() {
		return "VSWR = ∞ (Γ = 1)"
	}
	return fmt.Sprintf("VSWR = %v: Γ = %.2f", pf.VSWR, pf.Gamma)
}

// Render draws every panel of f onto a white RGBA image.
func (r *Renderer) Render(f swr.Frame) (image.Image, error) {
	if len(f.Panels) == 0 {
		return nil, fmt.Errorf("%w: frame has no panels", swr.ErrInvalidParameter)
	}
	cols := r.opts.Columns
	if cols > len(f.Panels) {
		cols = len(f.Panels)
	}
	rows := (len(f.Panels) + cols - 1) / cols

	w := vg.Length(r.opts.Width) * vg.Inch / dpi
	h := vg.Length(r.opts.Height) * vg.Inch / dpi
	c := vgimg.NewWith(
		vgimg.UseWH(w, h),
		vgimg.UseDPI(dpi),
		vgimg.UseBackgroundColor(color.White),
	)
	dc := draw.New(c)
	tiles := draw.Tiles{
		Rows: rows,
		Cols: cols,
		PadX: vg.Points(6),
		PadY: vg.Points(6),
	}
	for i, pf := range f.Panels {
		p, err := r.panelPlot(pf)
		if err != nil {
			return nil, fmt.Errorf("panel %d: %w", pf.ID, err)
		}
		p.Draw(tiles.At(dc, i%cols, i/cols))
	}
	return c.Image(), nil
}

func (r *Renderer) panelPlot(pf swr.PanelFrame) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = PanelTitle(pf)
	stylePlot(p)
	p.Add(plotter.NewGrid())

	series := []struct {
		label  string
		ys     []float64
		clr    color.Color
		dashed bool
	}{
		{"Forward", pf.Forward, forwardColor, false},
		{"Reflected", pf.Reflected, reflectedColor, false},
		{"Total", pf.Total, totalColor, false},
		{"Envelope", pf.EnvMax, envelopeColor, true},
		{"", pf.EnvMin, envelopeColor, true},
	}
	for _, s := range series {
		if !finite(s.ys) {
			// Envelope before its first update.
			continue
		}
		line, err := plotter.NewLine(r.xys(s.ys))
		if err != nil {
			return nil, err
		}
		line.LineStyle.Color = s.clr
		line.LineStyle.Width = vg.Points(1.2)
		if s.dashed {
			line.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
		}
		p.Add(line)
		if s.label != "" {
			p.Legend.Add(s.label, line)
		}
	}
	p.Legend.Top = true
	p.Legend.TextStyle.Font.Size = vg.Points(7)

	p.X.Min, p.X.Max = r.xs[0], r.xs[len(r.xs)-1]
	p.Y.Min, p.Y.Max = -r.opts.YLimit, r.opts.YLimit
	return p, nil
}

func (r *Renderer) xys(ys []float64) plotter.XYs {
	pts := make(plotter.XYs, len(ys))
	for i := range ys {
		pts[i].X = r.xs[i]
		pts[i].Y = ys[i]
	}
	return pts
}

func stylePlot(p *plot.Plot) {
	p.Title.TextStyle.Font.Size = vg.Points(10)
	p.Title.Padding = vg.Points(4)
	p.X.Tick.Label.Font.Size = vg.Points(7)
	p.Y.Tick.Label.Font.Size = vg.Points(7)
	p.X.Padding = vg.Points(2)
	p.Y.Padding = vg.Points(2)
}

func finite(ys []float64) bool {
	if len(ys) == 0 {
		return false
	}
	for _, y := range ys {
		if math.IsInf(y, 0) || math.IsNaN(y) {
			return false
		}
	}
	return true
}
