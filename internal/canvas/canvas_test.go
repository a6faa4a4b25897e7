package canvas

import (
	"image/color"
	"math"
	"testing"

	"github.com/gogpu/gg"
	"github.com/stretchr/testify/assert"
)

func TestParseColor(t *testing.T) {
	got := ParseColor("#f97316b3")
	assert.Equal(t, color.NRGBA{R: 0xf9, G: 0x73, B: 0x16, A: 0xb3}, got)

	got = ParseColor("#ffffff")
	assert.Equal(t, uint8(0xff), got.A)
}

func TestTransformStackSaveRestore(t *testing.T) {
	ts := NewTransformStack()
	ts.SetTransform(gg.Scale(2, 2))
	ts.Save()
	ts.Translate(10, 5)

	x, y := ts.Apply(1, 1)
	assert.InDelta(t, 22, x, 1e-9)
	assert.InDelta(t, 12, y, 1e-9)

	ts.Restore()
	x, y = ts.Apply(1, 1)
	assert.InDelta(t, 2, x, 1e-9)
	assert.InDelta(t, 2, y, 1e-9)

	// Unbalanced restore keeps the current transform.
	ts.Restore()
	assert.Equal(t, gg.Scale(2, 2), ts.Transform())
}

func TestTransformStackRotate(t *testing.T) {
	ts := NewTransformStack()
	ts.Translate(100, 100)
	ts.Rotate(math.Pi / 2)

	x, y := ts.Apply(10, 0)
	assert.InDelta(t, 100, x, 1e-9)
	assert.InDelta(t, 110, y, 1e-9)
	assert.InDelta(t, 1, ts.ScaleFactor(), 1e-9)
}

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	r.SetBufferSize(200, 100)
	r.SetTransform(gg.Scale(2, 2))

	r.ClearRect(0, 0, 100, 50)
	r.FillCircle(10, 10, 2, color.White)
	r.StrokeLine(0, 0, 5, 5, 0.5, color.White)
	r.StrokePolygon([]gg.Point{gg.Pt(0, 0), gg.Pt(1, 0), gg.Pt(1, 1)}, 1, color.White)

	w, h := r.BufferSize()
	assert.Equal(t, 200, w)
	assert.Equal(t, 100, h)
	assert.Equal(t, 1, r.Count(OpClear))
	assert.Equal(t, 1, r.Count(OpCircle))
	assert.Equal(t, 1, r.Count(OpLine))
	assert.Equal(t, 1, r.Count(OpPolygon))

	circle := r.Ops[1]
	assert.Equal(t, gg.Pt(20, 20), circle.Points[0])
	assert.InDelta(t, 4, circle.Size, 1e-9)
	assert.Equal(t, gg.Pt(200, 100), r.Ops[0].Points[1])

	r.Reset()
	assert.Empty(t, r.Ops)
	assert.Equal(t, "polygon", OpPolygon.String())
}

func TestRecorderResizeResetsTransform(t *testing.T) {
	r := NewRecorder()
	r.SetTransform(gg.Scale(3, 3))
	r.SetBufferSize(10, 10)
	assert.True(t, r.Transform().IsIdentity())
}
