package state

import (
	"image"
	"math"
)

// Rect is an axis-aligned area of the canvas in surface units.
type Rect struct {
	MinX, MinY float32
	MaxX, MaxY float32
}

func (r Rect) extend(p Point) Rect {
	if p.X < r.MinX {
		r.MinX = p.X
	}
	if p.X > r.MaxX {
		r.MaxX = p.X
	}
	if p.Y < r.MinY {
		r.MinY = p.Y
	}
	if p.Y > r.MaxY {
		r.MaxY = p.Y
	}
	return r
}

// Pad grows the rectangle by d on every side.
func (r Rect) Pad(d float32) Rect {
	return Rect{MinX: r.MinX - d, MinY: r.MinY - d, MaxX: r.MaxX + d, MaxY: r.MaxY + d}
}

// Image converts r to whole pixels, rounding outwards.
func (r Rect) Image() image.Rectangle {
	return image.Rect(
		int(math.Floor(float64(r.MinX))), int(math.Floor(float64(r.MinY))),
		int(math.Ceil(float64(r.MaxX))), int(math.Ceil(float64(r.MaxY))),
	)
}

// Bounds returns the area a stroke can paint: its path box padded by half
// the brush width plus one pixel of antialiasing.
func (s Stroke) Bounds() Rect {
	return s.Path.Bounds().Pad(float32(s.Width)/2 + 1)
}
