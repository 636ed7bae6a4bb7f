// Package raster paints graphics commands into an in-memory RGBA image.
//
// Shapes are scan-converted with golang.org/x/image/vector and composited
// over the existing pixels, so a tick ring can be rendered to PNG without a
// GPU or platform view.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/vector"

	"github.com/go-drift/tickring/pkg/graphics"
)

// circleSegments is the polygon resolution used for circles and round caps.
const circleSegments = 64

// Canvas implements graphics.Canvas over an *image.RGBA.
type Canvas struct {
	img *image.RGBA
	z   *vector.Rasterizer
}

// NewCanvas allocates a transparent canvas of the given pixel size.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
		z:   vector.NewRasterizer(width, height),
	}
}

// Image returns the backing image.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Size implements graphics.Canvas.
func (c *Canvas) Size() graphics.Size {
	b := c.img.Bounds()
	return graphics.Size{Width: float64(b.Dx()), Height: float64(b.Dy())}
}

// Clear implements graphics.Canvas.
func (c *Canvas) Clear(col graphics.Color) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(toNRGBA(col)), image.Point{}, draw.Src)
}

// DrawLine implements graphics.Canvas. Lines are always stroked; the paint
// style is ignored. Zero-length lines draw nothing.
func (c *Canvas) DrawLine(start, end graphics.Offset, paint graphics.Paint) {
	length := start.Distance(end)
	if length == 0 || paint.StrokeWidth <= 0 {
		return
	}
	half := paint.StrokeWidth / 2
	dx, dy := (end.X-start.X)/length, (end.Y-start.Y)/length
	nx, ny := -dy*half, dx*half

	if paint.Cap == graphics.CapSquare {
		start = graphics.Offset{X: start.X - dx*half, Y: start.Y - dy*half}
		end = graphics.Offset{X: end.X + dx*half, Y: end.Y + dy*half}
	}

	c.begin()
	c.moveTo(start.X+nx, start.Y+ny)
	c.lineTo(end.X+nx, end.Y+ny)
	c.lineTo(end.X-nx, end.Y-ny)
	c.lineTo(start.X-nx, start.Y-ny)
	c.z.ClosePath()
	if paint.Cap == graphics.CapRound {
		c.polygon(start, half, false)
		c.polygon(end, half, false)
	}
	c.fill(paint.Color)
}

// DrawCircle implements graphics.Canvas. Stroked circles are drawn as an
// annulus centered on radius.
func (c *Canvas) DrawCircle(center graphics.Offset, radius float64, paint graphics.Paint) {
	if radius <= 0 {
		return
	}
	c.begin()
	switch paint.Style {
	case graphics.PaintStyleStroke:
		if paint.StrokeWidth <= 0 {
			return
		}
		half := paint.StrokeWidth / 2
		c.polygon(center, radius+half, false)
		if inner := radius - half; inner > 0 {
			// Opposite winding cancels coverage inside the inner ring.
			c.polygon(center, inner, true)
		}
	default:
		c.polygon(center, radius, false)
	}
	c.fill(paint.Color)
}

// EncodePNG writes the canvas as a PNG image.
func (c *Canvas) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, c.img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func (c *Canvas) begin() {
	b := c.img.Bounds()
	c.z.Reset(b.Dx(), b.Dy())
	c.z.DrawOp = draw.Over
}

func (c *Canvas) fill(col graphics.Color) {
	c.z.Draw(c.img, c.img.Bounds(), image.NewUniform(toNRGBA(col)), image.Point{})
}

func (c *Canvas) moveTo(x, y float64) {
	c.z.MoveTo(float32(x), float32(y))
}

func (c *Canvas) lineTo(x, y float64) {
	c.z.LineTo(float32(x), float32(y))
}

func (c *Canvas) polygon(center graphics.Offset, radius float64, reverse bool) {
	step := 2 * math.Pi / circleSegments
	if reverse {
		step = -step
	}
	p := center.Polar(radius, 0)
	c.moveTo(p.X, p.Y)
	for i := 1; i < circleSegments; i++ {
		p = center.Polar(radius, float64(i)*step)
		c.lineTo(p.X, p.Y)
	}
	c.z.ClosePath()
}

func toNRGBA(col graphics.Color) color.NRGBA {
	r, g, b, a := col.Components()
	return color.NRGBA{R: r, G: g, B: b, A: a}
}
