package paint

import (
	"image"
	"image/color"

	"PaintBoard/internal/state"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

var _ Driver = (*RasterDriver)(nil) // assert interface conformance

// RasterDriver strokes paths with a rasterx.Dasher scanning into the mask.
type RasterDriver struct {
	dst     *image.Alpha
	scanner *rasterx.ScannerGV
	dasher  *rasterx.Dasher // rebuilt only when the target mask changes
}

func NewRasterDriver() *RasterDriver {
	return &RasterDriver{}
}

func (d *RasterDriver) Mask(dst *image.Alpha, p state.Path, width float64) {
	if d.dst != dst {
		b := dst.Bounds()
		d.scanner = rasterx.NewScannerGV(b.Dx(), b.Dy(), dst, b)
		d.dasher = rasterx.NewDasher(b.Dx(), b.Dy(), d.scanner)
		d.dst = dst
	}

	d.dasher.Clear()
	d.dasher.SetWinding(true)
	d.dasher.SetStroke(
		fixed.Int26_6(width*64), fixed.Int26_6(4*64),
		rasterx.RoundCap, rasterx.RoundCap, rasterx.RoundGap, rasterx.Round,
		nil, 0,
	)
	d.scanner.SetColor(color.Opaque)

	p.AddTo(d.dasher)
	d.dasher.Draw()
}
