// Package widgets provides the tick-mark progress indicator.
//
// A [TickProgressIndicator] draws a ring of radial tick marks that fills
// clockwise from 12 o'clock as its progress goes from 0 to 1. Progress is
// driven by an [animation.ProgressAnimator], so one indicator has at most
// one transition in flight.
//
// # Styling
//
// Configure the ring through the Style field, a plain struct literal:
//
//	ind := widgets.NewTickProgressIndicator(scheduler)
//	ind.Style = widgets.TickStyle{
//	    TickCount:          60,
//	    StrokeWidth:        8,
//	    TickLength:         12,
//	    CompletedTickColor: graphics.ColorGreen,
//	    PendingTickColor:   graphics.ColorGray,
//	}
//
// Start from [DefaultTickStyle] to change only a few fields.
//
// # Painting
//
// Paint draws onto any [graphics.Canvas]. The geometry is recomputed from
// the canvas size on every call, so the same indicator can be painted into
// a PNG rasterizer or a terminal grid. The pure layout lives in [TickRing],
// which has no state and can be tested without a canvas.
//
// # Lifecycle
//
// Always call Dispose when the indicator is no longer shown. It cancels
// the running transition without calling its completion callback and
// releases the scheduler registration.
package widgets
