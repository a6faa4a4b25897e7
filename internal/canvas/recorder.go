package canvas

import (
	"image/color"

	"github.com/gogpu/gg"
)

// OpKind identifies a recorded drawing call.
type OpKind int

const (
	OpClear OpKind = iota
	OpCircle
	OpLine
	OpPolygon
)

func (k OpKind) String() string {
	switch k {
	case OpClear:
		return "clear"
	case OpCircle:
		return "circle"
	case OpLine:
		return "line"
	case OpPolygon:
		return "polygon"
	}
	return "unknown"
}

// Op is one drawing call with its points already mapped to physical pixels.
type Op struct {
	Kind   OpKind
	Points []gg.Point
	// Size is the radius for circles and the stroke width for lines and
	// polygons. Clears carry the two rectangle corners in Points.
	Size  float64
	Color color.Color
}

// Recorder is an in-memory Canvas that remembers every call. It is used by
// tests and by hosts that want to inspect a frame without rasterising it.
type Recorder struct {
	TransformStack
	width, height int
	Ops           []Op
}

func NewRecorder() *Recorder {
	return &Recorder{TransformStack: NewTransformStack()}
}

func (r *Recorder) SetBufferSize(width, height int) {
	r.width, r.height = width, height
	// Like an HTML canvas, resizing the buffer resets the context state.
	r.TransformStack = NewTransformStack()
}

func (r *Recorder) BufferSize() (int, int) { return r.width, r.height }

func (r *Recorder) ClearRect(x, y, w, h float64) {
	x0, y0 := r.Apply(x, y)
	x1, y1 := r.Apply(x+w, y+h)
	r.Ops = append(r.Ops, Op{Kind: OpClear, Points: []gg.Point{gg.Pt(x0, y0), gg.Pt(x1, y1)}})
}

func (r *Recorder) FillCircle(x, y, radius float64, col color.Color) {
	px, py := r.Apply(x, y)
	r.Ops = append(r.Ops, Op{Kind: OpCircle, Points: []gg.Point{gg.Pt(px, py)}, Size: radius * r.ScaleFactor(), Color: col})
}

func (r *Recorder) StrokeLine(x1, y1, x2, y2, width float64, col color.Color) {
	ax, ay := r.Apply(x1, y1)
	bx, by := r.Apply(x2, y2)
	r.Ops = append(r.Ops, Op{Kind: OpLine, Points: []gg.Point{gg.Pt(ax, ay), gg.Pt(bx, by)}, Size: width * r.ScaleFactor(), Color: col})
}

func (r *Recorder) StrokePolygon(pts []gg.Point, width float64, col color.Color) {
	mapped := make([]gg.Point, len(pts))
	for i, p := range pts {
		x, y := r.Apply(p.X, p.Y)
		mapped[i] = gg.Pt(x, y)
	}
	r.Ops = append(r.Ops, Op{Kind: OpPolygon, Points: mapped, Size: width * r.ScaleFactor(), Color: col})
}

// Count returns how many recorded calls have the given kind.
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Reset drops recorded calls but keeps the buffer size and transform.
func (r *Recorder) Reset() { r.Ops = r.Ops[:0] }
