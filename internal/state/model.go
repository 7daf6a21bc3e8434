package state

import (
	"fmt"
	"image/color"
	"strings"
	"time"
)

type Point struct{ X, Y float32 }

// BlurKind selects the mask filter style applied to a blurred stroke's edge.
type BlurKind uint8

const (
	BlurNormal BlurKind = iota // blur inside and outside the stroke
	BlurInner                  // blur inside, nothing outside
	BlurOuter                  // nothing inside, blur outside
	BlurSolid                  // solid inside, blur outside
)

func (k BlurKind) String() string {
	switch k {
	case BlurNormal:
		return "normal"
	case BlurInner:
		return "inner"
	case BlurOuter:
		return "outer"
	case BlurSolid:
		return "solid"
	default:
		return fmt.Sprintf("BlurKind(%d)", uint8(k))
	}
}

func (k BlurKind) valid() bool { return k <= BlurSolid }

// ParseBlurKind maps a menu label to its BlurKind.
func ParseBlurKind(s string) (BlurKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "normal":
		return BlurNormal, nil
	case "inner":
		return BlurInner, nil
	case "outer":
		return BlurOuter, nil
	case "solid":
		return BlurSolid, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidBlurKind, s)
}

// Tool holds the settings applied to the next stroke created.
type Tool struct {
	Color   color.RGBA
	Width   int
	Blurred bool
	Blur    BlurKind
}

// Stroke is one recorded gesture from press to release. Color, Width and
// the blur settings are copied from the active Tool when the stroke begins
// and never change afterwards.
type Stroke struct {
	ID      string
	Path    Path
	Color   color.RGBA
	Width   int
	Blurred bool
	Blur    BlurKind
	Time    time.Time
}

// Points returns the anchor points of the stroke's smoothed path.
func (s Stroke) Points() []Point { return s.Path.Points() }

// BlurRadius is the mask filter radius used when the stroke is blurred.
func (s Stroke) BlurRadius() float64 { return float64(s.Width) }

func (s Stroke) clone() Stroke {
	s.Path = append(Path(nil), s.Path...)
	return s
}

type OpType string

const (
	OpBeginStroke  OpType = "begin_stroke"
	OpExtendStroke OpType = "extend_stroke"
	OpEndStroke    OpType = "end_stroke"
	OpUndo         OpType = "undo"
	OpClear        OpType = "clear"
	OpTool         OpType = "tool"
)

// Op describes a change to the canvas. Observers use it to schedule a
// redraw; Revision increases by one for every published Op.
type Op struct {
	Type     OpType
	StrokeID string // empty for OpClear and OpTool
	Revision uint64
}
