package game

import (
	"image"
	"image/color"

	"github.com/gogpu/gg"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/wave-background/internal/canvas"
)

// Canvas draws into an offscreen ebiten image sized to the physical buffer.
type Canvas struct {
	canvas.TransformStack
	img           *ebiten.Image
	width, height int
}

var _ canvas.Canvas = (*Canvas)(nil)

func NewCanvas() *Canvas {
	return &Canvas{TransformStack: canvas.NewTransformStack()}
}

func (c *Canvas) SetBufferSize(width, height int) {
	c.TransformStack = canvas.NewTransformStack()
	if width <= 0 || height <= 0 {
		return
	}
	if c.img != nil && width == c.width && height == c.height {
		c.img.Clear()
		return
	}
	if c.img != nil {
		c.img.Deallocate()
	}
	c.img = ebiten.NewImage(width, height)
	c.width, c.height = width, height
}

func (c *Canvas) BufferSize() (int, int) { return c.width, c.height }

// Image returns the offscreen buffer, or nil before the first resize.
func (c *Canvas) Image() *ebiten.Image { return c.img }

func (c *Canvas) ClearRect(x, y, w, h float64) {
	if c.img == nil {
		return
	}
	x0, y0 := c.Apply(x, y)
	x1, y1 := c.Apply(x+w, y+h)
	r := image.Rect(int(x0), int(y0), int(x1), int(y1)).Canon()
	if c.img.Bounds().In(r) {
		c.img.Clear()
		return
	}
	if sub, ok := c.img.SubImage(r).(*ebiten.Image); ok {
		sub.Clear()
	}
}

func (c *Canvas) FillCircle(x, y, r float64, col color.Color) {
	if c.img == nil {
		return
	}
	px, py := c.Apply(x, y)
	vector.DrawFilledCircle(c.img, float32(px), float32(py), float32(r*c.ScaleFactor()), col, true)
}

func (c *Canvas) StrokeLine(x1, y1, x2, y2, width float64, col color.Color) {
	if c.img == nil {
		return
	}
	ax, ay := c.Apply(x1, y1)
	bx, by := c.Apply(x2, y2)
	vector.StrokeLine(c.img, float32(ax), float32(ay), float32(bx), float32(by), float32(width*c.ScaleFactor()), col, true)
}

func (c *Canvas) StrokePolygon(pts []gg.Point, width float64, col color.Color) {
	if c.img == nil || len(pts) < 2 {
		return
	}
	sw := float32(width * c.ScaleFactor())
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		ax, ay := c.Apply(a.X, a.Y)
		bx, by := c.Apply(b.X, b.Y)
		vector.StrokeLine(c.img, float32(ax), float32(ay), float32(bx), float32(by), sw, col, true)
	}
}
