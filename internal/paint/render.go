package paint

import (
	"image"
	"image/color"
	"image/draw"

	"PaintBoard/internal/state"
)

var _ state.Painter = (*Renderer)(nil)

// Renderer repaints a canvas surface. It keeps one scratch mask the size
// of the surface and is not safe for concurrent use; the canvas lock
// serializes calls.
type Renderer struct {
	driver Driver
	mask   *image.Alpha
}

func NewRenderer(d Driver) *Renderer {
	return &Renderer{driver: d}
}

// Paint fills dst with the background and draws every stroke in order, so
// later strokes cover earlier ones where they overlap.
func (r *Renderer) Paint(dst *image.RGBA, background color.RGBA, strokes []state.Stroke) {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)
	if r.mask == nil || r.mask.Bounds() != dst.Bounds() {
		r.mask = image.NewAlpha(dst.Bounds())
	}
	for i := range strokes {
		r.paintStroke(dst, &strokes[i])
	}
}

func (r *Renderer) paintStroke(dst *image.RGBA, s *state.Stroke) {
	if len(s.Path) == 0 || s.Width <= 0 {
		return
	}
	area := s.Bounds()
	if s.Blurred {
		area = area.Pad(float32(blurExtent(s.BlurRadius())))
	}
	rect := area.Image().Intersect(dst.Bounds())
	if rect.Empty() {
		return
	}

	// Only rect is cleared: the stroke cannot reach outside it, and stale
	// coverage elsewhere is never read.
	draw.Draw(r.mask, rect, image.Transparent, image.Point{}, draw.Src)
	r.driver.Mask(r.mask, s.Path, float64(s.Width))
	if s.Blurred {
		applyMaskFilter(r.mask, rect, s.BlurRadius(), s.Blur)
	}
	draw.DrawMask(dst, rect, image.NewUniform(s.Color), image.Point{}, r.mask, rect.Min, draw.Over)
}
