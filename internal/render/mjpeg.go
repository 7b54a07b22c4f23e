package render

import (
	"bytes"
	"fmt"
	"image/jpeg"

	"github.com/icza/mjpeg"

	"SWR/internal/swr"
)

// MJPEGWriter streams rendered frames into an MJPEG AVI file. Unlike
// GIFWriter it holds only one frame in memory at a time.
type MJPEGWriter struct {
	r       *Renderer
	aw      mjpeg.AviWriter
	quality int
	buf     bytes.Buffer
	frames  int
}

// NewMJPEGWriter creates path and prepares it for frames at fps.
func NewMJPEGWriter(path string, r *Renderer, fps int) (*MJPEGWriter, error) {
	b := r.Bounds()
	aw, err := mjpeg.New(path, int32(b.Dx()), int32(b.Dy()), int32(fps))
	if err != nil {
		return nil, fmt.Errorf("creating %q: %w", path, err)
	}
	return &MJPEGWriter{r: r, aw: aw, quality: 90}, nil
}

// WriteFrame renders f, JPEG-encodes it and appends it to the video.
func (m *MJPEGWriter) WriteFrame(f swr.Frame) error {
	img, err := m.r.Render(f)
	if err != nil {
		return err
	}
	m.buf.Reset()
	if err := jpeg.Encode(&m.buf, img, &jpeg.Options{Quality: m.quality}); err != nil {
		return fmt.Errorf("encoding jpeg: %w", err)
	}
	if err := m.aw.AddFrame(m.buf.Bytes()); err != nil {
		return err
	}
	m.frames++
	return nil
}

// Len returns the number of frames written.
func (m *MJPEGWriter) Len() int { return m.frames }

// Close finalizes the AVI index and closes the file.
func (m *MJPEGWriter) Close() error {
	return m.aw.Close()
}
