package testing

import (
	"errors"
	"time"

	"github.com/go-drift/tickring/pkg/animation"
)

// DefaultFrameInterval is one frame at 60Hz, rounded down.
const DefaultFrameInterval = 16 * time.Millisecond

// ErrSettleTimeout is returned when PumpUntilIdle exceeds its timeout.
var ErrSettleTimeout = errors.New("PumpUntilIdle timed out: tickers still active")

// FramePump steps a private scheduler on a fake clock. It implements
// [animation.TickerProvider] so it can be passed wherever a provider is
// expected.
type FramePump struct {
	clock     *FakeClock
	scheduler *animation.Scheduler
	interval  time.Duration
	frames    int
}

// NewFramePump creates a pump that advances by interval per frame.
// A non-positive interval uses DefaultFrameInterval.
func NewFramePump(interval time.Duration) *FramePump {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	clk := NewFakeClock()
	return &FramePump{
		clock:     clk,
		scheduler: animation.NewScheduler(clk),
		interval:  interval,
	}
}

// CreateTicker implements animation.TickerProvider.
func (p *FramePump) CreateTicker(callback func(time.Duration)) *animation.Ticker {
	return p.scheduler.CreateTicker(callback)
}

// Clock returns the fake clock driving the pump.
func (p *FramePump) Clock() *FakeClock {
	return p.clock
}

// Scheduler returns the scheduler stepped by the pump.
func (p *FramePump) Scheduler() *animation.Scheduler {
	return p.scheduler
}

// Frames returns how many frames have been stepped.
func (p *FramePump) Frames() int {
	return p.frames
}

// Pump steps one frame without advancing time.
func (p *FramePump) Pump() {
	p.frames++
	p.scheduler.Step()
}

// Advance moves the clock forward by d and steps one frame.
func (p *FramePump) Advance(d time.Duration) {
	p.clock.Advance(d)
	p.Pump()
}

// PumpFrames advances one interval and steps, n times.
func (p *FramePump) PumpFrames(n int) {
	for range n {
		p.Advance(p.interval)
	}
}

// PumpUntilIdle pumps frames until no tickers remain or timeout of fake
// time has passed. Returns ErrSettleTimeout if tickers are still active.
func (p *FramePump) PumpUntilIdle(timeout time.Duration) error {
	var elapsed time.Duration
	for elapsed < timeout {
		if !p.scheduler.HasActiveTickers() {
			return nil
		}
		p.Advance(p.interval)
		elapsed += p.interval
	}
	if p.scheduler.HasActiveTickers() {
		return ErrSettleTimeout
	}
	return nil
}
