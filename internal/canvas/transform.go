package canvas

import "github.com/gogpu/gg"

// TransformStack implements the transform half of Canvas. Backends embed it
// and map points through Matrix before rasterising.
type TransformStack struct {
	m     gg.Matrix
	stack []gg.Matrix
}

// NewTransformStack starts at identity.
func NewTransformStack() TransformStack {
	return TransformStack{m: gg.Identity(), stack: make([]gg.Matrix, 0, 8)}
}

func (t *TransformStack) SetTransform(m gg.Matrix) { t.m = m }
func (t *TransformStack) Transform() gg.Matrix     { return t.m }

func (t *TransformStack) Save() { t.stack = append(t.stack, t.m) }

// Restore pops the last saved transform; an unbalanced Restore is ignored.
func (t *TransformStack) Restore() {
	if len(t.stack) == 0 {
		return
	}
	t.m = t.stack[len(t.stack)-1]
	t.stack = t.stack[:len(t.stack)-1]
}

func (t *TransformStack) Translate(x, y float64) { t.m = t.m.Multiply(gg.Translate(x, y)) }
func (t *TransformStack) Rotate(angle float64)   { t.m = t.m.Multiply(gg.Rotate(angle)) }
func (t *TransformStack) Scale(x, y float64)     { t.m = t.m.Multiply(gg.Scale(x, y)) }

// Apply maps a point from user space into physical pixels.
func (t *TransformStack) Apply(x, y float64) (float64, float64) {
	p := t.m.TransformPoint(gg.Pt(x, y))
	return p.X, p.Y
}

// ScaleFactor approximates the uniform scale of the current transform, used
// to size radii and stroke widths.
func (t *TransformStack) ScaleFactor() float64 {
	v := t.m.TransformVector(gg.Pt(1, 0))
	return v.Length()
}
