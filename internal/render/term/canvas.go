// Package term draws the background into a terminal. Each cell stands for a
// CellWidth x CellHeight block of device pixels.
package term

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/gogpu/gg"

	"github.com/iburimskiy/wave-background/internal/canvas"
)

const (
	CellWidth  = 8
	CellHeight = 16

	particleRune   = '●'
	connectionRune = '·'
	shapeRune      = '*'
)

type cell struct {
	r     rune
	style tcell.Style
}

// Canvas buffers a frame as terminal cells; Present copies it to the screen.
type Canvas struct {
	canvas.TransformStack
	screen     tcell.Screen
	width      int
	height     int
	cols, rows int
	cells      []cell
	background tcell.Color
}

var _ canvas.Canvas = (*Canvas)(nil)

func NewCanvas(screen tcell.Screen) *Canvas {
	return &Canvas{
		TransformStack: canvas.NewTransformStack(),
		screen:         screen,
		background:     tcell.ColorBlack,
	}
}

func (c *Canvas) SetBufferSize(width, height int) {
	c.TransformStack = canvas.NewTransformStack()
	c.width, c.height = max(width, 0), max(height, 0)
	c.cols = (c.width + CellWidth - 1) / CellWidth
	c.rows = (c.height + CellHeight - 1) / CellHeight
	c.cells = make([]cell, c.cols*c.rows)
}

func (c *Canvas) BufferSize() (int, int) { return c.width, c.height }

// Grid reports the cell grid dimensions.
func (c *Canvas) Grid() (cols, rows int) { return c.cols, c.rows }

func (c *Canvas) ClearRect(x, y, w, h float64) {
	x0, y0 := c.Apply(x, y)
	x1, y1 := c.Apply(x+w, y+h)
	c0, r0 := c.cellAt(math.Min(x0, x1), math.Min(y0, y1))
	c1, r1 := c.cellAt(math.Max(x0, x1)-1, math.Max(y0, y1)-1)
	for row := max(r0, 0); row <= min(r1, c.rows-1); row++ {
		for col := max(c0, 0); col <= min(c1, c.cols-1); col++ {
			c.cells[row*c.cols+col] = cell{}
		}
	}
}

func (c *Canvas) FillCircle(x, y, _ float64, clr color.Color) {
	px, py := c.Apply(x, y)
	col, row := c.cellAt(px, py)
	c.plot(col, row, particleRune, clr)
}

func (c *Canvas) StrokeLine(x1, y1, x2, y2, _ float64, clr color.Color) {
	ax, ay := c.Apply(x1, y1)
	bx, by := c.Apply(x2, y2)
	c.line(ax, ay, bx, by, connectionRune, clr)
}

func (c *Canvas) StrokePolygon(pts []gg.Point, _ float64, clr color.Color) {
	if len(pts) < 2 {
		return
	}
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		ax, ay := c.Apply(a.X, a.Y)
		bx, by := c.Apply(b.X, b.Y)
		c.line(ax, ay, bx, by, shapeRune, clr)
	}
}

// Rune returns the rune buffered at a cell, or 0 when empty.
func (c *Canvas) Rune(col, row int) rune {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return 0
	}
	return c.cells[row*c.cols+col].r
}

// Present writes the buffered frame to the screen and shows it.
func (c *Canvas) Present() {
	bg := tcell.StyleDefault.Background(c.background)
	for row := 0; row < c.rows; row++ {
		for col := 0; col < c.cols; col++ {
			cl := c.cells[row*c.cols+col]
			if cl.r == 0 {
				c.screen.SetContent(col, row, ' ', nil, bg)
				continue
			}
			c.screen.SetContent(col, row, cl.r, nil, cl.style)
		}
	}
	c.screen.Show()
}

func (c *Canvas) cellAt(px, py float64) (int, int) {
	return int(math.Floor(px / CellWidth)), int(math.Floor(py / CellHeight))
}

func (c *Canvas) plot(col, row int, r rune, clr color.Color) {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return
	}
	c.cells[row*c.cols+col] = cell{r: r, style: c.style(clr)}
}

// line walks the cells between two device points with Bresenham's algorithm.
func (c *Canvas) line(ax, ay, bx, by float64, r rune, clr color.Color) {
	x0, y0 := c.cellAt(ax, ay)
	x1, y1 := c.cellAt(bx, by)
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		c.plot(x0, y0, r, clr)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// style blends the colour over the black background, since terminals have
// no per-cell alpha.
func (c *Canvas) style(clr color.Color) tcell.Style {
	n := color.NRGBAModel.Convert(clr).(color.NRGBA)
	a := float64(n.A) / 255
	// Faint strokes would vanish entirely; keep a floor so they stay visible.
	a = math.Max(a, 0.35)
	fg := tcell.NewRGBColor(int32(float64(n.R)*a), int32(float64(n.G)*a), int32(float64(n.B)*a))
	return tcell.StyleDefault.Foreground(fg).Background(c.background)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
