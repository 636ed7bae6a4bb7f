package widgets

import (
	"math"

	"github.com/go-drift/tickring/pkg/graphics"
)

// tickBaseAngle places tick 0 at 12 o'clock (3π/2 from the positive x-axis
// in screen coordinates).
const tickBaseAngle = 3 * math.Pi / 2

// TickGeometry positions a ring of ticks.
type TickGeometry struct {
	// Center is the ring center in canvas coordinates.
	Center graphics.Offset
	// Radius is the distance from Center to the outer end of each tick.
	Radius float64
	// TickLength is the radial length of each tick; the inner end sits at
	// Radius - TickLength.
	TickLength float64
	// StrokeWidth is the line width used for each tick.
	StrokeWidth float64
}

// TickColors selects the paint color of each tick.
type TickColors struct {
	Completed graphics.Color
	Pending   graphics.Color
}

// TickSegment is one tick ready to be stroked.
type TickSegment struct {
	Index     int
	Start     graphics.Offset
	End       graphics.Offset
	Completed bool
	Color     graphics.Color
}

// TickRing computes the tick segments for a progress value.
//
// Tick i sits at angle 3π/2 + (i/tickCount)·2π, running radially from
// Radius-TickLength to Radius. It is completed iff i/tickCount < progress,
// so a tick exactly on the progress boundary stays pending. Progress
// outside [0, 1] saturates: below 0 nothing is completed, above 1
// everything is. A tickCount of zero or less yields no segments.
func TickRing(progress float64, tickCount int, geometry TickGeometry, colors TickColors) []TickSegment {
	if tickCount <= 0 {
		return nil
	}
	inner := geometry.Radius - geometry.TickLength
	segments := make([]TickSegment, tickCount)
	for i := range tickCount {
		fraction := float64(i) / float64(tickCount)
		angle := tickBaseAngle + fraction*2*math.Pi
		completed := fraction < progress
		color := colors.Pending
		if completed {
			color = colors.Completed
		}
		segments[i] = TickSegment{
			Index:     i,
			Start:     geometry.Center.Polar(inner, angle),
			End:       geometry.Center.Polar(geometry.Radius, angle),
			Completed: completed,
			Color:     color,
		}
	}
	return segments
}

// CompletedTicks returns how many ticks TickRing marks completed.
func CompletedTicks(progress float64, tickCount int) int {
	if tickCount <= 0 || progress <= 0 {
		return 0
	}
	// Ticks 0..k-1 are completed where k is the smallest index with
	// k/tickCount >= progress.
	n := 0
	for i := range tickCount {
		if float64(i)/float64(tickCount) < progress {
			n++
		} else {
			break
		}
	}
	return n
}

// GeometryForSize lays out a ring inside a box of the given size: centered,
// with the outer tick ends inset by half the stroke width. Ticks are drawn
// at half the style's stroke width.
func GeometryForSize(size graphics.Size, style TickStyle) TickGeometry {
	return TickGeometry{
		Center:      size.Center(),
		Radius:      size.ShortestSide()/2 - style.StrokeWidth/2,
		TickLength:  style.TickLength,
		StrokeWidth: style.StrokeWidth / 2,
	}
}

// PaintTickRing strokes each segment onto canvas with butt caps.
func PaintTickRing(canvas graphics.Canvas, segments []TickSegment, strokeWidth float64) {
	for _, seg := range segments {
		canvas.DrawLine(seg.Start, seg.End, graphics.StrokePaint(seg.Color, strokeWidth))
	}
}
