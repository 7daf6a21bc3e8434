// Package paint implements the canvas redraw: stroke outlines are
// rasterized into coverage masks by a Driver, optionally passed through a
// blur mask filter, and composited over the surface in z-order.
package paint

import (
	"fmt"
	"image"
	"strings"

	"PaintBoard/internal/state"
)

// Driver rasterizes stroked paths. Implementations only need stroking
// knowledge: colors, blur and compositing are handled by the Renderer.
type Driver interface {
	// Mask strokes p with round caps and joins at the given width and
	// composites the coverage over dst.
	Mask(dst *image.Alpha, p state.Path, width float64)
}

const (
	BackendRasterx = "rasterx"
	BackendGG      = "gg"
)

// NewDriver returns the driver registered under name.
func NewDriver(name string) (Driver, error) {
	switch strings.ToLower(name) {
	case BackendRasterx, "":
		return NewRasterDriver(), nil
	case BackendGG:
		return NewGGDriver(), nil
	}
	return nil, fmt.Errorf("paint: unknown backend %q", name)
}
