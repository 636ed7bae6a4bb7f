package animation

import (
	"fmt"
	"time"
)

// AnimatorStatus represents the current state of a [ProgressAnimator].
//
// The status follows this state machine:
//
//	          AnimateTo()                Pause()
//	Idle ─────────────────► Animating ─────────► Paused
//	 ▲                        │    ▲                │
//	 │  completion / Cancel() │    └── Resume() ────┘
//	 └────────────────────────┘
//
// AnimateTo from any state restarts from the current value. Cancel from
// Paused returns to Idle.
type AnimatorStatus int

const (
	// AnimatorIdle means no session is active.
	AnimatorIdle AnimatorStatus = iota
	// AnimatorAnimating means a session is registered with the scheduler.
	AnimatorAnimating
	// AnimatorPaused means a session was frozen by Pause and can be resumed.
	AnimatorPaused
)

// String returns a human-readable representation of the animator status.
func (s AnimatorStatus) String() string {
	switch s {
	case AnimatorIdle:
		return "idle"
	case AnimatorAnimating:
		return "animating"
	case AnimatorPaused:
		return "paused"
	default:
		return fmt.Sprintf("AnimatorStatus(%d)", int(s))
	}
}

// session is one in-flight transition. The start time lives on the ticker.
type session struct {
	from       float64
	to         float64
	duration   time.Duration
	onComplete func()
}

// checkpoint is what Pause keeps so Resume can finish the transition.
type checkpoint struct {
	to         float64
	remaining  time.Duration
	onComplete func()
}

// ProgressAnimator drives a progress value linearly toward a target over a
// duration, one scheduler frame at a time.
//
// At most one session is active. Starting a new one stops the previous
// ticker and drops its completion callback, so progress is never driven
// twice. The animator is not safe for concurrent use; call it from the
// goroutine that steps the scheduler.
//
// Always call Dispose when done to release the frame registration.
type ProgressAnimator struct {
	provider TickerProvider

	value   float64
	status  AnimatorStatus
	ticker  *Ticker
	current session
	paused  *checkpoint

	listeners       map[int]func()
	statusListeners map[int]func(AnimatorStatus)
	nextListenerID  int
}

// NewProgressAnimator creates an idle animator at value 0.
// Tickers come from provider; nil uses the default scheduler.
func NewProgressAnimator(provider TickerProvider) *ProgressAnimator {
	if provider == nil {
		provider = defaultScheduler
	}
	return &ProgressAnimator{
		provider:        provider,
		listeners:       make(map[int]func()),
		statusListeners: make(map[int]func(AnimatorStatus)),
	}
}

// Value returns the current progress value.
func (a *ProgressAnimator) Value() float64 {
	return a.value
}

// SetValue writes the progress value immediately and notifies listeners.
// An active session keeps running and overwrites the value on its next frame.
func (a *ProgressAnimator) SetValue(v float64) {
	a.value = v
	a.notifyListeners()
}

// AnimateTo starts a transition from the current value to target.
//
// Any in-flight or paused session is replaced and its onComplete never fires.
// A duration of zero or less jumps straight to target and calls onComplete
// before AnimateTo returns.
func (a *ProgressAnimator) AnimateTo(target float64, duration time.Duration, onComplete func()) {
	a.stopTicker()
	a.paused = nil

	if duration <= 0 {
		a.current = session{}
		a.value = target
		a.notifyListeners()
		a.setStatus(AnimatorIdle)
		if onComplete != nil {
			onComplete()
		}
		return
	}

	a.current = session{
		from:       a.value,
		to:         target,
		duration:   duration,
		onComplete: onComplete,
	}
	a.ticker = a.provider.CreateTicker(a.tick)
	a.ticker.Start()
	a.setStatus(AnimatorAnimating)
}

func (a *ProgressAnimator) tick(elapsed time.Duration) {
	ratio := float64(elapsed) / float64(a.current.duration)
	ratio = min(max(ratio, 0), 1)

	a.value = a.current.from + (a.current.to-a.current.from)*ratio
	ticker := a.ticker
	a.notifyListeners()

	// A listener replaced or cancelled this session.
	if a.ticker != ticker {
		return
	}
	if ratio >= 1 {
		onComplete := a.current.onComplete
		a.stopTicker()
		a.current = session{}
		a.setStatus(AnimatorIdle)
		if onComplete != nil {
			onComplete()
		}
	}
}

// Cancel stops the animation at the current value without calling the
// completion callback. A paused session is discarded too. Safe to call
// when idle.
func (a *ProgressAnimator) Cancel() {
	a.stopTicker()
	a.current = session{}
	a.paused = nil
	a.setStatus(AnimatorIdle)
}

// Pause freezes an animating session at its current value and keeps the
// target, remaining time and completion callback for Resume. Returns false
// if nothing was animating.
func (a *ProgressAnimator) Pause() bool {
	if a.status != AnimatorAnimating {
		return false
	}
	cp := &checkpoint{
		to:         a.current.to,
		remaining:  a.Remaining(),
		onComplete: a.current.onComplete,
	}
	a.stopTicker()
	a.current = session{}
	a.paused = cp
	a.setStatus(AnimatorPaused)
	return true
}

// Resume continues a paused session from the frozen value toward the same
// target over the time that was remaining at Pause. Returns false if the
// animator was not paused.
func (a *ProgressAnimator) Resume() bool {
	if a.status != AnimatorPaused || a.paused == nil {
		return false
	}
	cp := a.paused
	a.AnimateTo(cp.to, cp.remaining, cp.onComplete)
	return true
}

// Remaining returns how long the active session still has to run.
// Returns 0 when idle or paused.
func (a *ProgressAnimator) Remaining() time.Duration {
	if a.ticker == nil || !a.ticker.IsActive() {
		return 0
	}
	return max(a.current.duration-a.ticker.Elapsed(), 0)
}

// Target returns the value the active or paused session is heading to.
// When idle it returns the current value.
func (a *ProgressAnimator) Target() float64 {
	switch a.status {
	case AnimatorAnimating:
		return a.current.to
	case AnimatorPaused:
		return a.paused.to
	default:
		return a.value
	}
}

// Status returns the current animator status.
func (a *ProgressAnimator) Status() AnimatorStatus {
	return a.status
}

// IsAnimating returns true while a session is registered with the scheduler.
func (a *ProgressAnimator) IsAnimating() bool {
	return a.status == AnimatorAnimating
}

// AddListener adds a callback that fires whenever the value changes.
// Returns an unsubscribe function.
func (a *ProgressAnimator) AddListener(fn func()) func() {
	id := a.nextListenerID
	a.nextListenerID++
	a.listeners[id] = fn
	return func() {
		delete(a.listeners, id)
	}
}

// AddStatusListener adds a callback that fires whenever the status changes.
// Returns an unsubscribe function.
func (a *ProgressAnimator) AddStatusListener(fn func(AnimatorStatus)) func() {
	id := a.nextListenerID
	a.nextListenerID++
	a.statusListeners[id] = fn
	return func() {
		delete(a.statusListeners, id)
	}
}

// Dispose cancels any session and drops all listeners.
func (a *ProgressAnimator) Dispose() {
	a.Cancel()
	a.listeners = make(map[int]func())
	a.statusListeners = make(map[int]func(AnimatorStatus))
}

func (a *ProgressAnimator) stopTicker() {
	if a.ticker != nil {
		a.ticker.Stop()
		a.ticker = nil
	}
}

func (a *ProgressAnimator) setStatus(status AnimatorStatus) {
	if a.status == status {
		return
	}
	a.status = status
	for _, listener := range a.statusListeners {
		listener(status)
	}
}

func (a *ProgressAnimator) notifyListeners() {
	for _, listener := range a.listeners {
		listener()
	}
}
