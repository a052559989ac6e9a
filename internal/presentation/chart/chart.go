// Package chart rasterises (x, y) series into terminal lines using braille
// dots, two columns by four rows per cell.
package chart

import (
	"math"
	"strings"

	"github.com/penwyp/go-battery-monitor/internal/core/viewport"
	"github.com/penwyp/go-battery-monitor/internal/util"
)

// XLabelCount is the number of evenly spaced time labels under a chart
const XLabelCount = 5

const (
	dotsPerCellX = 2
	dotsPerCellY = 4
	brailleBase  = 0x2800
)

// braille dot bits indexed by [row][col] within a cell
var dotBits = [dotsPerCellY][dotsPerCellX]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Options describes the plot area and axes
type Options struct {
	Width  int // plot cells, excluding the y axis gutter
	Height int // plot rows, excluding the x axis
	XMin   float64
	XMax   float64
	YMin   float64
	YMax   float64
	YTicks []float64
	// XLabel formats an x position, e.g. as a clock time
	XLabel func(x float64) string
	// YLabel formats a tick value
	YLabel func(y float64) string
	Color  string
}

// Render draws the series as a connected line. Points outside the bounds
// are clipped; an empty series produces an empty plot area.
func Render(points []viewport.Point, opts Options) []string {
	if opts.Width < 1 {
		opts.Width = 1
	}
	if opts.Height < 1 {
		opts.Height = 1
	}

	c := newCanvas(opts.Width, opts.Height)
	var prevX, prevY int
	for i, p := range points {
		x, y := opts.project(p)
		if i == 0 {
			c.set(x, y)
		} else {
			c.line(prevX, prevY, x, y)
		}
		prevX, prevY = x, y
	}

	gutter := opts.GutterWidth()
	tickRows := opts.tickRows()

	lines := make([]string, 0, opts.Height+2)
	for row := 0; row < opts.Height; row++ {
		label := ""
		if tick, ok := tickRows[row]; ok {
			label = opts.formatY(tick)
		}
		body := c.row(row)
		if opts.Color != "" {
			body = util.Colorize(opts.Color, body)
		}
		lines = append(lines, padLeft(label, gutter)+" ┤"+body)
	}

	lines = append(lines, strings.Repeat(" ", gutter)+" └"+strings.Repeat("─", opts.Width))
	lines = append(lines, strings.Repeat(" ", gutter+2)+opts.xLabelRow())
	return lines
}

// XLabelPositions returns the x values of the evenly spaced axis labels
func XLabelPositions(start, end float64) []float64 {
	step := (end - start) / float64(XLabelCount-1)
	xs := make([]float64, XLabelCount)
	for i := range xs {
		xs[i] = start + step*float64(i)
	}
	return xs
}

// PowerBounds computes y bounds that always include zero with a margin
// around the visible data
func PowerBounds(points []viewport.Point) (float64, float64) {
	if len(points) == 0 {
		return -0.5, 0.5
	}
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	margin := math.Abs(maxY-minY)*0.1 + 0.5
	return math.Min(minY-margin, -0.5), math.Max(maxY+margin, 0.5)
}

func (o Options) project(p viewport.Point) (int, int) {
	dotsX := o.Width*dotsPerCellX - 1
	dotsY := o.Height*dotsPerCellY - 1

	fx := 0.0
	if span := o.XMax - o.XMin; span > 0 {
		fx = (p.X - o.XMin) / span
	}
	fy := 0.0
	if span := o.YMax - o.YMin; span > 0 {
		fy = (o.YMax - p.Y) / span
	}
	return clampDot(fx, dotsX), clampDot(fy, dotsY)
}

// clampDot keeps out-of-range and NaN positions one dot outside the canvas
// so lines toward them stay bounded
func clampDot(f float64, max int) int {
	if math.IsNaN(f) {
		return -1
	}
	v := math.Round(f * float64(max))
	if v < -1 {
		return -1
	}
	if v > float64(max+1) {
		return max + 1
	}
	return int(v)
}

func (o Options) formatY(v float64) string {
	if o.YLabel != nil {
		return o.YLabel(v)
	}
	return ""
}

// GutterWidth is the width of the y label column
func (o Options) GutterWidth() int {
	w := 1
	for _, t := range o.YTicks {
		if lw := util.GetDisplayWidth(o.formatY(t)); lw > w {
			w = lw
		}
	}
	return w
}

// tickRows maps each tick to the plot row it falls on; later ticks do not
// overwrite earlier ones
func (o Options) tickRows() map[int]float64 {
	rows := make(map[int]float64, len(o.YTicks))
	span := o.YMax - o.YMin
	for _, t := range o.YTicks {
		row := 0
		if span > 0 {
			row = int(math.Round((o.YMax - t) / span * float64(o.Height-1)))
		}
		if row < 0 || row >= o.Height {
			continue
		}
		if _, taken := rows[row]; !taken {
			rows[row] = t
		}
	}
	return rows
}

func (o Options) xLabelRow() string {
	if o.XLabel == nil {
		return ""
	}
	cells := []rune(strings.Repeat(" ", o.Width))
	lastEnd := -1
	for i, x := range XLabelPositions(o.XMin, o.XMax) {
		label := []rune(o.XLabel(x))
		if len(label) == 0 {
			continue
		}
		center := i * (o.Width - 1) / (XLabelCount - 1)
		start := center - len(label)/2
		if start < 0 {
			start = 0
		}
		if start+len(label) > o.Width {
			start = o.Width - len(label)
		}
		if start <= lastEnd || start < 0 {
			continue
		}
		copy(cells[start:], label)
		lastEnd = start + len(label)
	}
	return strings.TrimRight(string(cells), " ")
}

// canvas is a grid of braille cells
type canvas struct {
	width  int
	height int
	cells  [][]rune
}

func newCanvas(width, height int) *canvas {
	cells := make([][]rune, height)
	for i := range cells {
		cells[i] = make([]rune, width)
	}
	return &canvas{width: width, height: height, cells: cells}
}

func (c *canvas) set(x, y int) {
	if x < 0 || y < 0 || x >= c.width*dotsPerCellX || y >= c.height*dotsPerCellY {
		return
	}
	c.cells[y/dotsPerCellY][x/dotsPerCellX] |= dotBits[y%dotsPerCellY][x%dotsPerCellX]
}

// line draws between two dots with Bresenham's algorithm
func (c *canvas) line(x0, y0, x1, y1 int) {
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
		c.set(x0, y0)
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

func (c *canvas) row(r int) string {
	var b strings.Builder
	for _, bits := range c.cells[r] {
		if bits == 0 {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(brailleBase + bits)
	}
	return b.String()
}

func padLeft(s string, width int) string {
	if w := util.GetDisplayWidth(s); w < width {
		return strings.Repeat(" ", width-w) + s
	}
	return s
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
