// Package animation drives frame-based progress animations.
//
// # Core Components
//
//   - [Scheduler]: the per-frame callback registry. The host calls
//     [Scheduler.Step] (or [StepTickers] for the default scheduler) once per
//     display refresh.
//
//   - [Ticker]: a single registration with a scheduler. Start registers it,
//     Stop removes it. While registered its callback receives the time elapsed
//     since Start on every step.
//
//   - [ProgressAnimator]: linear interpolation of a progress value from its
//     current position to a target over a duration, with completion callback,
//     cancellation, pause/resume, and remaining-time queries.
//
// # Basic Usage
//
//	a := animation.NewProgressAnimator(nil)
//	a.AddListener(func() { view.MarkNeedsPaint() })
//	a.AnimateTo(1.0, 2*time.Second, func() { log.Println("done") })
//
//	// Host frame loop
//	for animation.HasActiveTickers() {
//	    animation.StepTickers()
//	    waitForVSync()
//	}
package animation

import (
	"sync"
	"time"
)

// defaultScheduler backs the package-level ticker functions.
var defaultScheduler = NewScheduler(realClock{})

// Scheduler keeps the set of active tickers and advances them once per frame.
//
// A Scheduler and its tickers belong to one goroutine: start, stop and step
// them from the host's frame loop. The registry lock only makes read-only
// queries such as HasActiveTickers safe from elsewhere.
type Scheduler struct {
	mu      sync.Mutex
	clock   Clock
	tickers map[*Ticker]struct{}
	order   []*Ticker
}

// NewScheduler creates a scheduler reading time from c.
// A nil clock uses system time.
func NewScheduler(c Clock) *Scheduler {
	if c == nil {
		c = realClock{}
	}
	return &Scheduler{
		clock:   c,
		tickers: make(map[*Ticker]struct{}),
	}
}

// DefaultScheduler returns the scheduler used by [NewTicker] and [StepTickers].
func DefaultScheduler() *Scheduler {
	return defaultScheduler
}

func (s *Scheduler) setClock(c Clock) Clock {
	if c == nil {
		c = realClock{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.clock
	s.clock = c
	return prev
}

// Now returns the current time from the scheduler's clock.
func (s *Scheduler) Now() time.Time {
	s.mu.Lock()
	c := s.clock
	s.mu.Unlock()
	return c.Now()
}

// CreateTicker implements [TickerProvider].
func (s *Scheduler) CreateTicker(callback func(elapsed time.Duration)) *Ticker {
	return &Ticker{
		scheduler: s,
		callback:  callback,
	}
}

// Step advances all active tickers by one frame.
// This should be called once per frame from the host.
//
// Tickers started during a step are first invoked on the following step.
// Tickers stopped during a step, before their turn, are skipped.
func (s *Scheduler) Step() {
	s.mu.Lock()
	if len(s.order) == 0 {
		s.mu.Unlock()
		return
	}
	// Copy so callbacks may start and stop tickers without the lock held
	tickers := make([]*Ticker, len(s.order))
	copy(tickers, s.order)
	s.mu.Unlock()

	for _, ticker := range tickers {
		if ticker.IsActive() && ticker.callback != nil {
			ticker.callback(ticker.Elapsed())
		}
	}
}

// HasActiveTickers returns true if any tickers are registered.
func (s *Scheduler) HasActiveTickers() bool {
	return s.ActiveCount() > 0
}

// ActiveCount returns the number of registered tickers.
func (s *Scheduler) ActiveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

func (s *Scheduler) register(t *Ticker) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tickers[t]; ok {
		return
	}
	s.tickers[t] = struct{}{}
	s.order = append(s.order, t)
}

func (s *Scheduler) unregister(t *Ticker) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tickers[t]; !ok {
		return
	}
	delete(s.tickers, t)
	for i, other := range s.order {
		if other == t {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Ticker calls a callback on each frame while active.
//
// Ticker is the low-level timing primitive used by [ProgressAnimator].
// The callback receives the elapsed time since Start was called.
type Ticker struct {
	scheduler *Scheduler
	callback  func(elapsed time.Duration)
	isActive  bool
	start     time.Time
}

// NewTicker creates a new ticker on the default scheduler.
func NewTicker(callback func(elapsed time.Duration)) *Ticker {
	return defaultScheduler.CreateTicker(callback)
}

// Start activates the ticker and records the start time.
func (t *Ticker) Start() {
	if t.isActive {
		return
	}
	t.isActive = true
	t.start = t.scheduler.Now()
	t.scheduler.register(t)
}

// Stop deactivates the ticker. Stopping an inactive ticker is a no-op.
func (t *Ticker) Stop() {
	if !t.isActive {
		return
	}
	t.isActive = false
	t.scheduler.unregister(t)
}

// IsActive returns whether the ticker is currently running.
func (t *Ticker) IsActive() bool {
	return t.isActive
}

// Elapsed returns the time since the ticker started.
func (t *Ticker) Elapsed() time.Duration {
	if !t.isActive {
		return 0
	}
	return t.scheduler.Now().Sub(t.start)
}

// TickerProvider creates tickers.
type TickerProvider interface {
	CreateTicker(callback func(time.Duration)) *Ticker
}

// StepTickers advances all active tickers of the default scheduler.
func StepTickers() {
	defaultScheduler.Step()
}

// HasActiveTickers returns true if the default scheduler has active tickers.
func HasActiveTickers() bool {
	return defaultScheduler.HasActiveTickers()
}
