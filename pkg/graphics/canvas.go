package graphics

// Canvas receives drawing commands.
//
// Implementations include the [PictureRecorder] canvas, the rasterizer in
// package raster, and terminal hosts.
type Canvas interface {
	// Clear fills the entire canvas with the given color.
	Clear(color Color)

	// DrawLine draws a line segment with the provided paint.
	DrawLine(start, end Offset, paint Paint)

	// DrawCircle draws a circle with the provided paint.
	DrawCircle(center Offset, radius float64, paint Paint)

	// Size returns the canvas size.
	Size() Size
}
