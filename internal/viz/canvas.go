package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/chewxy/math32"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a braille grid. It also implements physics.Surface, mapping
// world units to dots by Scale (world units per dot).
type Canvas struct {
	Width, Height int
	Scale         float32
	Grid          [][]rune

	hot [][]bool
	pen bool
}

func NewCanvas(w, h int, scale float32) *Canvas {
	c := &Canvas{Scale: scale}
	c.Resize(w, h)
	return c
}

// Resize reallocates the grid to w x h cells and clears it.
func (c *Canvas) Resize(w, h int) {
	c.Width, c.Height = w, h
	c.Grid = make([][]rune, h)
	c.hot = make([][]bool, h)
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.hot[i] = make([]bool, w)
	}
	c.Clear()
}

// WorldSize is the extent of the canvas in world units.
func (c *Canvas) WorldSize() (float32, float32) {
	return float32(c.Width*2) * c.Scale, float32(c.Height*4) * c.Scale
}

// CellToWorld returns the world position at the centre of a cell.
func (c *Canvas) CellToWorld(col, row int) (float32, float32) {
	return (float32(col*2) + 1) * c.Scale, (float32(row*4) + 2) * c.Scale
}

// SetPen marks every dot drawn from now on as highlighted.
func (c *Canvas) SetPen(hot bool) { c.pen = hot }

// Set sets a pixel at (x, y) where x,y are in "sub-pixel" coordinates.
// The canvas size in sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	subX := x % 2
	subY := y % 4

	c.Grid[row][col] |= rune(pixelMap[subY][subX])
	if c.pen {
		c.hot[row][col] = true
	}
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.hot[i][j] = false
		}
	}
	c.pen = false
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) FillRect(left, top, width, height float32) {
	x0, x1 := c.span(left, left+width, c.Width*2)
	y0, y1 := c.span(top, top+height, c.Height*4)
	x0, x1 = max(x0, 0), min(x1, c.Width*2-1)
	y0, y1 = max(y0, 0), min(y1, c.Height*4-1)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			c.Set(x, y)
		}
	}
}

func (c *Canvas) StrokeRect(left, top, width, height float32) {
	x0, x1 := c.span(left, left+width, c.Width*2)
	y0, y1 := c.span(top, top+height, c.Height*4)
	c.DrawLine(x0, y0, x1, y0)
	c.DrawLine(x1, y0, x1, y1)
	c.DrawLine(x1, y1, x0, y1)
	c.DrawLine(x0, y1, x0, y0)
}

// span converts a world interval to an inclusive dot range. Degenerate
// intervals still cover one dot. Ends are clamped to one dot past either
// side of [0, limit) so off-canvas edges stay invisible.
func (c *Canvas) span(a, b float32, limit int) (int, int) {
	clamp := func(v float32) int {
		return int(math32.Max(-1, math32.Min(v, float32(limit))))
	}
	lo := clamp(math32.Floor(a / c.Scale))
	hi := clamp(math32.Ceil(b/c.Scale) - 1)
	if hi < lo {
		hi = lo
	}
	return lo, hi
}
