// Package term paints graphics commands onto a grid of terminal cells.
//
// A cell is about twice as tall as it is wide, so the canvas exposes a
// logical surface of Cols x 2*Rows units: one unit per column and two per
// row. Circles drawn in logical units come out round on screen.
package term

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/go-drift/tickring/pkg/graphics"
)

// cellAspect is the logical height of one terminal row.
const cellAspect = 2

type cell struct {
	glyph rune
	color graphics.Color
	set   bool
}

// Canvas implements graphics.Canvas over a character grid.
type Canvas struct {
	cols, rows int
	cells      []cell
	styles     map[graphics.Color]lipgloss.Style
}

// NewCanvas creates a blank grid of cols x rows cells.
func NewCanvas(cols, rows int) *Canvas {
	cols, rows = max(cols, 0), max(rows, 0)
	return &Canvas{
		cols:   cols,
		rows:   rows,
		cells:  make([]cell, cols*rows),
		styles: make(map[graphics.Color]lipgloss.Style),
	}
}

// Size implements graphics.Canvas in logical units.
func (c *Canvas) Size() graphics.Size {
	return graphics.Size{Width: float64(c.cols), Height: float64(c.rows * cellAspect)}
}

// Clear implements graphics.Canvas. Terminal backgrounds are left to the
// terminal, so the color is ignored and every cell becomes blank.
func (c *Canvas) Clear(graphics.Color) {
	clear(c.cells)
}

// DrawLine implements graphics.Canvas. The segment is sampled at half-cell
// steps and each touched cell gets a glyph matching the line direction.
func (c *Canvas) DrawLine(start, end graphics.Offset, paint graphics.Paint) {
	glyph := lineGlyph(end.X-start.X, (end.Y-start.Y)/cellAspect)
	steps := int(math.Ceil(start.Distance(end)*2)) + 1
	for i := range steps {
		t := 0.0
		if steps > 1 {
			t = float64(i) / float64(steps-1)
		}
		c.plot(start.X+(end.X-start.X)*t, start.Y+(end.Y-start.Y)*t, glyph, paint.Color, true)
	}
}

// DrawCircle implements graphics.Canvas. Circles are outlined with dots and
// never overwrite cells already drawn.
func (c *Canvas) DrawCircle(center graphics.Offset, radius float64, paint graphics.Paint) {
	if radius <= 0 {
		return
	}
	steps := int(math.Ceil(2*math.Pi*radius)) * 2
	for i := range steps {
		p := center.Polar(radius, 2*math.Pi*float64(i)/float64(steps))
		c.plot(p.X, p.Y, '·', paint.Color, false)
	}
}

func (c *Canvas) plot(x, y float64, glyph rune, color graphics.Color, overwrite bool) {
	col := int(math.Floor(x))
	row := int(math.Floor(y / cellAspect))
	if col < 0 || col >= c.cols || row < 0 || row >= c.rows {
		return
	}
	idx := row*c.cols + col
	if c.cells[idx].set && !overwrite {
		return
	}
	c.cells[idx] = cell{glyph: glyph, color: color, set: true}
}

// lineGlyph picks a character for a segment with the given on-screen
// direction.
func lineGlyph(dx, dy float64) rune {
	angle := math.Atan2(dy, dx)
	if angle < 0 {
		angle += math.Pi
	}
	switch {
	case angle < math.Pi/8 || angle >= 7*math.Pi/8:
		return '─'
	case angle < 3*math.Pi/8:
		return '╲'
	case angle < 5*math.Pi/8:
		return '│'
	default:
		return '╱'
	}
}

// Glyph returns the rune at a cell, or ' ' when blank or out of range.
func (c *Canvas) Glyph(col, row int) rune {
	if col < 0 || col >= c.cols || row < 0 || row >= c.rows {
		return ' '
	}
	if cl := c.cells[row*c.cols+col]; cl.set {
		return cl.glyph
	}
	return ' '
}

// ColorAt returns the color of a cell and whether it was drawn.
func (c *Canvas) ColorAt(col, row int) (graphics.Color, bool) {
	if col < 0 || col >= c.cols || row < 0 || row >= c.rows {
		return 0, false
	}
	cl := c.cells[row*c.cols+col]
	return cl.color, cl.set
}

// Plain returns the grid without styling, one line per row.
func (c *Canvas) Plain() string {
	var sb strings.Builder
	for row := range c.rows {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for col := range c.cols {
			sb.WriteRune(c.Glyph(col, row))
		}
	}
	return sb.String()
}

// Render returns the grid with each run of same-colored cells styled by
// lipgloss.
func (c *Canvas) Render() string {
	var sb strings.Builder
	for row := range c.rows {
		if row > 0 {
			sb.WriteByte('\n')
		}
		var run strings.Builder
		var runColor graphics.Color
		runSet := false
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runSet {
				sb.WriteString(c.style(runColor).Render(run.String()))
			} else {
				sb.WriteString(run.String())
			}
			run.Reset()
		}
		for col := range c.cols {
			cl := c.cells[row*c.cols+col]
			if cl.set != runSet || (cl.set && cl.color != runColor) {
				flush()
				runSet, runColor = cl.set, cl.color
			}
			if cl.set {
				run.WriteRune(cl.glyph)
			} else {
				run.WriteByte(' ')
			}
		}
		flush()
	}
	return sb.String()
}

func (c *Canvas) style(color graphics.Color) lipgloss.Style {
	if s, ok := c.styles[color]; ok {
		return s
	}
	s := lipgloss.NewStyle().Foreground(TermColor(color))
	c.styles[color] = s
	return s
}

// TermColor converts a color to a lipgloss color, dropping alpha.
func TermColor(color graphics.Color) lipgloss.Color {
	r, g, b, _ := color.Components()
	return lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", r, g, b))
}
