package widgets

import (
	"time"

	"github.com/go-drift/tickring/pkg/animation"
	"github.com/go-drift/tickring/pkg/graphics"
)

// TickStyle configures how a [TickProgressIndicator] paints. Every field is
// read on each paint, so the style may be changed at any time.
type TickStyle struct {
	// TickCount is the number of ticks around the ring. Zero or less paints
	// no ticks.
	TickCount int

	// StrokeWidth insets the ring from the bounds by half its value; ticks
	// are stroked at half of it.
	StrokeWidth float64

	// TickLength is the radial length of each tick.
	TickLength float64

	// CircleColor strokes the track circle when ShowTrack is set.
	CircleColor graphics.Color

	// CompletedTickColor paints ticks behind the progress boundary.
	CompletedTickColor graphics.Color

	// PendingTickColor paints the remaining ticks.
	PendingTickColor graphics.Color

	// ShowTrack draws a hairline circle in CircleColor under the ticks.
	ShowTrack bool
}

// DefaultTickStyle returns 90 ticks, stroke width 10, tick length 10,
// blue circle, green completed ticks and gray pending ticks.
func DefaultTickStyle() TickStyle {
	return TickStyle{
		TickCount:          90,
		StrokeWidth:        10,
		TickLength:         10,
		CircleColor:        graphics.ColorBlue,
		CompletedTickColor: graphics.ColorGreen,
		PendingTickColor:   graphics.ColorGray,
	}
}

// TickProgressIndicator is a circular ring of tick marks that fills
// clockwise from 12 o'clock as progress goes from 0 to 1.
//
// The host owns the frame loop: it steps the scheduler behind the ticker
// provider once per frame and calls Paint whenever OnNeedsPaint fires.
//
//	ind := widgets.NewTickProgressIndicator(nil)
//	ind.OnNeedsPaint = host.Invalidate
//	ind.SetProgress(1, 2*time.Second, func() { fmt.Println("done") })
//
// Call Dispose before dropping the indicator so no ticker stays registered.
type TickProgressIndicator struct {
	// Style is read on every paint.
	Style TickStyle

	// OnNeedsPaint is called whenever the progress value changes.
	OnNeedsPaint func()

	animator    *animation.ProgressAnimator
	unsubscribe func()
	needsPaint  bool
}

// NewTickProgressIndicator creates an indicator at progress 0 with the
// default style. Tickers come from provider; nil uses the default scheduler.
func NewTickProgressIndicator(provider animation.TickerProvider) *TickProgressIndicator {
	ind := &TickProgressIndicator{
		Style:      DefaultTickStyle(),
		animator:   animation.NewProgressAnimator(provider),
		needsPaint: true,
	}
	ind.unsubscribe = ind.animator.AddListener(ind.markNeedsPaint)
	return ind
}

// Value returns the current progress.
func (t *TickProgressIndicator) Value() float64 {
	return t.animator.Value()
}

// SetValue sets the progress immediately and requests a repaint.
func (t *TickProgressIndicator) SetValue(v float64) {
	t.animator.SetValue(v)
}

// SetProgress animates from the current progress to target over duration.
// An in-flight animation is replaced and its onComplete never fires. A
// duration of zero or less jumps to target and calls onComplete right away.
func (t *TickProgressIndicator) SetProgress(target float64, duration time.Duration, onComplete func()) {
	t.animator.AnimateTo(target, duration, onComplete)
}

// CancelProgress stops the animation where it is without calling
// onComplete. Safe to call repeatedly.
func (t *TickProgressIndicator) CancelProgress() {
	t.animator.Cancel()
}

// PauseProgress freezes the animation so ResumeProgress can finish it.
func (t *TickProgressIndicator) PauseProgress() bool {
	return t.animator.Pause()
}

// ResumeProgress continues a paused animation over its remaining time.
func (t *TickProgressIndicator) ResumeProgress() bool {
	return t.animator.Resume()
}

// RemainingDuration returns the time left in the active animation, or 0.
func (t *TickProgressIndicator) RemainingDuration() time.Duration {
	return t.animator.Remaining()
}

// Status returns the animation state.
func (t *TickProgressIndicator) Status() animation.AnimatorStatus {
	return t.animator.Status()
}

// NeedsPaint reports whether progress changed since the last Paint.
func (t *TickProgressIndicator) NeedsPaint() bool {
	return t.needsPaint
}

func (t *TickProgressIndicator) markNeedsPaint() {
	t.needsPaint = true
	if t.OnNeedsPaint != nil {
		t.OnNeedsPaint()
	}
}

// Segments returns the ticks Paint would draw for a box of the given size.
func (t *TickProgressIndicator) Segments(size graphics.Size) []TickSegment {
	return TickRing(
		t.animator.Value(),
		t.Style.TickCount,
		GeometryForSize(size, t.Style),
		TickColors{Completed: t.Style.CompletedTickColor, Pending: t.Style.PendingTickColor},
	)
}

// Paint draws the indicator into a box of the given size at the canvas
// origin. An empty size paints nothing.
func (t *TickProgressIndicator) Paint(canvas graphics.Canvas, size graphics.Size) {
	t.needsPaint = false
	if size.IsEmpty() {
		return
	}
	geometry := GeometryForSize(size, t.Style)
	if t.Style.ShowTrack && geometry.Radius > 0 {
		canvas.DrawCircle(geometry.Center, geometry.Radius, graphics.StrokePaint(t.Style.CircleColor, 1))
	}
	PaintTickRing(canvas, t.Segments(size), geometry.StrokeWidth)
}

// Dispose cancels any animation and detaches from the animator.
func (t *TickProgressIndicator) Dispose() {
	t.animator.Cancel()
	if t.unsubscribe != nil {
		t.unsubscribe()
		t.unsubscribe = nil
	}
	t.OnNeedsPaint = nil
}
