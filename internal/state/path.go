package state

import (
	"fmt"
	"strings"

	"golang.org/x/image/math/fixed"
)

// Adder accumulates path commands. rasterx.Dasher satisfies it directly.
type Adder interface {
	// Start starts a new curve at the given point.
	Start(a fixed.Point26_6)
	// Line adds a line segment to the path
	Line(b fixed.Point26_6)
	// QuadBezier adds a quadratic bezier curve to the path
	QuadBezier(b, c fixed.Point26_6)
	// Stop ends the current curve, closing it if closeLoop is true
	Stop(closeLoop bool)
}

// Operation is one command of a smoothed stroke path.
type Operation interface {
	addTo(a Adder)
	// end is the point the pen rests on after the operation.
	end() fixed.Point26_6
}

type MoveTo fixed.Point26_6

type LineTo fixed.Point26_6

// QuadTo holds the control point followed by the end point.
type QuadTo [2]fixed.Point26_6

func (op MoveTo) addTo(a Adder) { a.Start(fixed.Point26_6(op)) }
func (op LineTo) addTo(a Adder) { a.Line(fixed.Point26_6(op)) }
func (op QuadTo) addTo(a Adder) { a.QuadBezier(op[0], op[1]) }

func (op MoveTo) end() fixed.Point26_6 { return fixed.Point26_6(op) }
func (op LineTo) end() fixed.Point26_6 { return fixed.Point26_6(op) }
func (op QuadTo) end() fixed.Point26_6 { return op[1] }

// Path is the smoothed outline of a stroke. A finished stroke path always
// starts with a MoveTo and ends with a LineTo.
type Path []Operation

// Start starts a new curve at the given point.
func (p *Path) Start(a fixed.Point26_6) {
	*p = append(*p, MoveTo(a))
}

// Line adds a linear segment to the current curve.
func (p *Path) Line(b fixed.Point26_6) {
	*p = append(*p, LineTo(b))
}

// QuadBezier adds a quadratic segment to the current curve.
func (p *Path) QuadBezier(b, c fixed.Point26_6) {
	*p = append(*p, QuadTo{b, c})
}

// AddTo replays the path into q and stops the curve.
func (p Path) AddTo(q Adder) {
	if len(p) == 0 {
		return
	}
	for _, op := range p {
		op.addTo(q)
	}
	q.Stop(false)
}

// Points returns the pen position after each operation, in drawing order.
func (p Path) Points() []Point {
	pts := make([]Point, len(p))
	for i, op := range p {
		pts[i] = fromFixed(op.end())
	}
	return pts
}

// Bounds returns the box enclosing every anchor and control point.
// Quadratic segments never leave the hull of their points, so the box
// encloses the whole curve.
func (p Path) Bounds() Rect {
	var r Rect
	for i, op := range p {
		pts := []fixed.Point26_6{op.end()}
		if q, ok := op.(QuadTo); ok {
			pts = append(pts, q[0])
		}
		for j, fp := range pts {
			pt := fromFixed(fp)
			if i == 0 && j == 0 {
				r = Rect{MinX: pt.X, MinY: pt.Y, MaxX: pt.X, MaxY: pt.Y}
				continue
			}
			r = r.extend(pt)
		}
	}
	return r
}

// String returns an SVG-like representation of the path.
func (p Path) String() string {
	chunks := make([]string, len(p))
	for i, op := range p {
		switch op := op.(type) {
		case MoveTo:
			chunks[i] = fmt.Sprintf("M%4.3f,%4.3f", float32(op.X)/64, float32(op.Y)/64)
		case LineTo:
			chunks[i] = fmt.Sprintf("L%4.3f,%4.3f", float32(op.X)/64, float32(op.Y)/64)
		case QuadTo:
			chunks[i] = fmt.Sprintf("Q%4.3f,%4.3f,%4.3f,%4.3f", float32(op[0].X)/64, float32(op[0].Y)/64,
				float32(op[1].X)/64, float32(op[1].Y)/64)
		}
	}
	return strings.Join(chunks, " ")
}

func toFixed(x, y float32) fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)}
}

func fromFixed(p fixed.Point26_6) Point {
	return Point{X: float32(p.X) / 64, Y: float32(p.Y) / 64}
}
