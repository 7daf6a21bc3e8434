package paint

import (
	"image"
	"image/color"
	"image/draw"

	"PaintBoard/internal/state"

	"github.com/fogleman/gg"
	"golang.org/x/image/math/fixed"
)

var _ Driver = (*GGDriver)(nil)

// GGDriver strokes paths with a fogleman/gg context and copies its alpha
// channel into the mask.
type GGDriver struct {
	dc *gg.Context
}

func NewGGDriver() *GGDriver {
	return &GGDriver{}
}

func (d *GGDriver) Mask(dst *image.Alpha, p state.Path, width float64) {
	b := dst.Bounds()
	if d.dc == nil || d.dc.Width() != b.Dx() || d.dc.Height() != b.Dy() {
		d.dc = gg.NewContext(b.Dx(), b.Dy())
	}
	dc := d.dc
	dc.SetColor(color.Transparent)
	dc.Clear()

	dc.SetColor(color.Black)
	dc.SetLineWidth(width)
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)
	if r := p.Bounds(); len(p) > 0 && r.MinX == r.MaxX && r.MinY == r.MaxY {
		// gg drops zero-length subpaths, caps included.
		dc.DrawCircle(float64(r.MinX), float64(r.MinY), width/2)
		dc.Fill()
	} else {
		p.AddTo(ggAdder{dc})
		dc.Stroke()
	}

	draw.Draw(dst, b, dc.AsMask(), image.Point{}, draw.Over)
}

// ggAdder feeds fixed-point path commands to a gg.Context.
type ggAdder struct{ dc *gg.Context }

func (a ggAdder) Start(p fixed.Point26_6) { a.dc.MoveTo(unfix(p)) }
func (a ggAdder) Line(p fixed.Point26_6)  { a.dc.LineTo(unfix(p)) }

func (a ggAdder) QuadBezier(b, c fixed.Point26_6) {
	x1, y1 := unfix(b)
	x2, y2 := unfix(c)
	a.dc.QuadraticTo(x1, y1, x2, y2)
}

func (a ggAdder) Stop(bool) {}

func unfix(p fixed.Point26_6) (float64, float64) {
	return float64(p.X) / 64, float64(p.Y) / 64
}
