package animation_test

import (
	"math"
	"testing"
	"time"

	"github.com/go-drift/tickring/pkg/animation"
	tickringtest "github.com/go-drift/tickring/pkg/testing"
)

const tolerance = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < tolerance
}

func TestProgressAnimator_LinearToCompletion(t *testing.T) {
	pump := tickringtest.NewFramePump(0)
	a := animation.NewProgressAnimator(pump)
	completions := 0

	a.AnimateTo(1.0, 2*time.Second, func() { completions++ })
	if a.Status() != animation.AnimatorAnimating {
		t.Fatalf("Status = %v, want animating", a.Status())
	}

	pump.Pump()
	if a.Value() != 0 {
		t.Errorf("value at t=0 = %v, want 0", a.Value())
	}

	pump.Advance(time.Second)
	if !approx(a.Value(), 0.5) {
		t.Errorf("value at t=1s = %v, want 0.5", a.Value())
	}
	if completions != 0 {
		t.Fatalf("completion fired early")
	}

	pump.Advance(time.Second)
	if a.Value() != 1.0 {
		t.Errorf("value at t=2s = %v, want 1", a.Value())
	}
	if completions != 1 {
		t.Errorf("completions = %d, want 1", completions)
	}
	if pump.Scheduler().HasActiveTickers() {
		t.Error("ticker should be deregistered after completion")
	}

	pump.PumpFrames(5)
	if completions != 1 {
		t.Errorf("completion fired again: %d", completions)
	}
	if a.Status() != animation.AnimatorIdle {
		t.Errorf("Status = %v, want idle", a.Status())
	}
}

func TestProgressAnimator_LateFrameClampsToTarget(t *testing.T) {
	pump := tickringtest.NewFramePump(0)
	a := animation.NewProgressAnimator(pump)
	a.SetValue(0.2)

	a.AnimateTo(0.8, time.Second, nil)
	pump.Advance(5 * time.Second)

	if a.Value() != 0.8 {
		t.Errorf("value = %v, want 0.8", a.Value())
	}
}

func TestProgressAnimator_Decreasing(t *testing.T) {
	pump := tickringtest.NewFramePump(0)
	a := animation.NewProgressAnimator(pump)
	a.SetValue(1)

	a.AnimateTo(0, 4*time.Second, nil)
	pump.Advance(time.Second)

	if !approx(a.Value(), 0.75) {
		t.Errorf("value = %v, want 0.75", a.Value())
	}
}

func TestProgressAnimator_RestartDropsPreviousCompletion(t *testing.T) {
	pump := tickringtest.NewFramePump(0)
	a := animation.NewProgressAnimator(pump)
	first, second := 0, 0

	a.AnimateTo(1, 2*time.Second, func() { first++ })
	pump.Advance(500 * time.Millisecond)
	mid := a.Value()
	if !approx(mid, 0.25) {
		t.Fatalf("value = %v, want 0.25", mid)
	}

	a.AnimateTo(0.5, time.Second, func() { second++ })
	if pump.Scheduler().ActiveCount() != 1 {
		t.Fatalf("ActiveCount = %d, want exactly one session", pump.Scheduler().ActiveCount())
	}

	// The new session starts from the interrupted value.
	pump.Pump()
	if !approx(a.Value(), mid) {
		t.Errorf("restart jumped: value = %v, want %v", a.Value(), mid)
	}

	pump.Advance(500 * time.Millisecond)
	if !approx(a.Value(), 0.375) {
		t.Errorf("value = %v, want 0.375", a.Value())
	}

	if err := pump.PumpUntilIdle(5 * time.Second); err != nil {
		t.Fatal(err)
	}
	if first != 0 {
		t.Errorf("replaced session completion fired %d times", first)
	}
	if second != 1 {
		t.Errorf("new session completion fired %d times, want 1", second)
	}
	if a.Value() != 0.5 {
		t.Errorf("final value = %v, want 0.5", a.Value())
	}
}

func TestProgressAnimator_CancelFreezes(t *testing.T) {
	pump := tickringtest.NewFramePump(0)
	a := animation.NewProgressAnimator(pump)
	completions := 0

	a.AnimateTo(1, 2*time.Second, func() { completions++ })
	pump.Advance(500 * time.Millisecond)
	frozen := a.Value()

	a.Cancel()
	if a.Remaining() != 0 {
		t.Errorf("Remaining after cancel = %v, want 0", a.Remaining())
	}
	a.Cancel()

	pump.Advance(5 * time.Second)
	if a.Value() != frozen {
		t.Errorf("value moved after cancel: %v, want %v", a.Value(), frozen)
	}
	if completions != 0 {
		t.Errorf("completion fired after cancel")
	}
	if a.Status() != animation.AnimatorIdle {
		t.Errorf("Status = %v, want idle", a.Status())
	}
	if pump.Scheduler().HasActiveTickers() {
		t.Error("cancel should deregister the ticker")
	}
}

func TestProgressAnimator_CancelWhenIdle(t *testing.T) {
	a := animation.NewProgressAnimator(tickringtest.NewFramePump(0))
	a.Cancel()
	a.Cancel()
	if a.Value() != 0 || a.Status() != animation.AnimatorIdle {
		t.Errorf("idle cancel changed state: value=%v status=%v", a.Value(), a.Status())
	}
}

func TestProgressAnimator_Remaining(t *testing.T) {
	pump := tickringtest.NewFramePump(0)
	a := animation.NewProgressAnimator(pump)

	if a.Remaining() != 0 {
		t.Errorf("Remaining with no session = %v, want 0", a.Remaining())
	}

	a.AnimateTo(0.7, 5*time.Second, nil)
	if r := a.Remaining(); r <= 0 || r > 5*time.Second {
		t.Errorf("Remaining right after start = %v, want in (0, 5s]", r)
	}

	pump.Clock().Advance(2 * time.Second)
	if r := a.Remaining(); r != 3*time.Second {
		t.Errorf("Remaining at 2s = %v, want 3s", r)
	}

	pump.Clock().Advance(10 * time.Second)
	if r := a.Remaining(); r != 0 {
		t.Errorf("Remaining past the end = %v, want 0", r)
	}
}

func TestProgressAnimator_NonPositiveDurationJumps(t *testing.T) {
	for _, d := range []time.Duration{0, -time.Second} {
		pump := tickringtest.NewFramePump(0)
		a := animation.NewProgressAnimator(pump)
		completions := 0

		a.AnimateTo(0.6, d, func() { completions++ })

		if a.Value() != 0.6 {
			t.Errorf("duration %v: value = %v, want 0.6", d, a.Value())
		}
		if completions != 1 {
			t.Errorf("duration %v: completions = %d, want 1", d, completions)
		}
		if pump.Scheduler().HasActiveTickers() {
			t.Errorf("duration %v: no ticker should be registered", d)
		}
		if a.Status() != animation.AnimatorIdle {
			t.Errorf("duration %v: Status = %v, want idle", d, a.Status())
		}
	}
}

func TestProgressAnimator_PauseResume(t *testing.T) {
	pump := tickringtest.NewFramePump(0)
	a := animation.NewProgressAnimator(pump)
	completions := 0

	if a.Pause() {
		t.Error("Pause on idle animator should report false")
	}

	a.AnimateTo(1, 4*time.Second, func() { completions++ })
	pump.Advance(time.Second)

	if !a.Pause() {
		t.Fatal("Pause on animating animator should report true")
	}
	if a.Status() != animation.AnimatorPaused {
		t.Fatalf("Status = %v, want paused", a.Status())
	}
	if a.Target() != 1 {
		t.Errorf("Target while paused = %v, want 1", a.Target())
	}
	if a.Remaining() != 0 {
		t.Errorf("Remaining while paused = %v, want 0", a.Remaining())
	}

	pump.Advance(10 * time.Second)
	if !approx(a.Value(), 0.25) {
		t.Errorf("value moved while paused: %v", a.Value())
	}

	if !a.Resume() {
		t.Fatal("Resume should report true")
	}
	if a.Remaining() != 3*time.Second {
		t.Errorf("Remaining after resume = %v, want 3s", a.Remaining())
	}

	pump.Advance(1500 * time.Millisecond)
	if !approx(a.Value(), 0.625) {
		t.Errorf("value = %v, want 0.625", a.Value())
	}

	if err := pump.PumpUntilIdle(5 * time.Second); err != nil {
		t.Fatal(err)
	}
	if completions != 1 {
		t.Errorf("completions = %d, want 1", completions)
	}
	if a.Resume() {
		t.Error("Resume on idle animator should report false")
	}
}

func TestProgressAnimator_CancelDiscardsPause(t *testing.T) {
	pump := tickringtest.NewFramePump(0)
	a := animation.NewProgressAnimator(pump)
	completions := 0

	a.AnimateTo(1, time.Second, func() { completions++ })
	pump.Advance(100 * time.Millisecond)
	a.Pause()
	a.Cancel()

	if a.Resume() {
		t.Error("Resume after Cancel should report false")
	}
	if completions != 0 {
		t.Errorf("completions = %d, want 0", completions)
	}
}

func TestProgressAnimator_CompletionMayRestart(t *testing.T) {
	pump := tickringtest.NewFramePump(0)
	a := animation.NewProgressAnimator(pump)
	laps := 0

	var lap func()
	lap = func() {
		laps++
		if laps < 3 {
			a.SetValue(0)
			a.AnimateTo(1, 100*time.Millisecond, lap)
		}
	}
	a.AnimateTo(1, 100*time.Millisecond, lap)

	if err := pump.PumpUntilIdle(2 * time.Second); err != nil {
		t.Fatal(err)
	}
	if laps != 3 {
		t.Errorf("laps = %d, want 3", laps)
	}
}

func TestProgressAnimator_ListenerRestartOnFinalFrame(t *testing.T) {
	pump := tickringtest.NewFramePump(0)
	a := animation.NewProgressAnimator(pump)
	first, second := 0, 0

	restarted := false
	a.AddListener(func() {
		if !restarted && a.Value() >= 1 {
			restarted = true
			a.AnimateTo(0, 2*time.Second, func() { second++ })
		}
	})
	a.AnimateTo(1, time.Second, func() { first++ })
	pump.Advance(time.Second)

	if first != 0 {
		t.Errorf("replaced session completed %d times, want 0", first)
	}
	if second != 0 {
		t.Errorf("new session completed early %d times", second)
	}
	if a.Status() != animation.AnimatorAnimating {
		t.Errorf("Status = %v, want animating", a.Status())
	}
	if n := pump.Scheduler().ActiveCount(); n != 1 {
		t.Errorf("active tickers = %d, want 1", n)
	}
	if a.Target() != 0 {
		t.Errorf("Target = %v, want 0", a.Target())
	}

	pump.Advance(time.Second)
	if !approx(a.Value(), 0.5) {
		t.Errorf("value halfway through new session = %v, want 0.5", a.Value())
	}
	pump.Advance(time.Second)
	if second != 1 || a.Value() != 0 {
		t.Errorf("second = %d value = %v, want 1 and 0", second, a.Value())
	}
}

func TestProgressAnimator_ListenerCancelOnFinalFrame(t *testing.T) {
	pump := tickringtest.NewFramePump(0)
	a := animation.NewProgressAnimator(pump)
	completions := 0

	a.AddListener(func() {
		if a.Value() >= 1 {
			a.Cancel()
		}
	})
	a.AnimateTo(1, time.Second, func() { completions++ })
	pump.Advance(time.Second)

	if completions != 0 {
		t.Errorf("cancelled session completed %d times", completions)
	}
	if a.Status() != animation.AnimatorIdle || pump.Scheduler().HasActiveTickers() {
		t.Errorf("Status = %v, active = %v", a.Status(), pump.Scheduler().HasActiveTickers())
	}
}

func TestProgressAnimator_Listeners(t *testing.T) {
	pump := tickringtest.NewFramePump(0)
	a := animation.NewProgressAnimator(pump)

	changes := 0
	unsubscribe := a.AddListener(func() { changes++ })
	var statuses []animation.AnimatorStatus
	a.AddStatusListener(func(s animation.AnimatorStatus) { statuses = append(statuses, s) })

	a.SetValue(0.1)
	a.AnimateTo(0.2, 32*time.Millisecond, nil)
	pump.PumpFrames(2)

	if changes != 3 {
		t.Errorf("value notifications = %d, want 3", changes)
	}
	want := []animation.AnimatorStatus{animation.AnimatorAnimating, animation.AnimatorIdle}
	if len(statuses) != len(want) {
		t.Fatalf("statuses = %v, want %v", statuses, want)
	}
	for i := range want {
		if statuses[i] != want[i] {
			t.Errorf("status %d = %v, want %v", i, statuses[i], want[i])
		}
	}

	unsubscribe()
	a.SetValue(0.9)
	if changes != 3 {
		t.Errorf("unsubscribed listener still notified")
	}
}

func TestProgressAnimator_DisposeReleasesTicker(t *testing.T) {
	pump := tickringtest.NewFramePump(0)
	a := animation.NewProgressAnimator(pump)
	notified := false
	a.AddListener(func() { notified = true })

	a.AnimateTo(1, time.Second, nil)
	a.Dispose()
	pump.PumpFrames(3)

	if pump.Scheduler().HasActiveTickers() {
		t.Error("Dispose should deregister the ticker")
	}
	if notified {
		t.Error("disposed animator notified a listener")
	}
}

func TestAnimatorStatusString(t *testing.T) {
	tests := []struct {
		status animation.AnimatorStatus
		want   string
	}{
		{animation.AnimatorIdle, "idle"},
		{animation.AnimatorAnimating, "animating"},
		{animation.AnimatorPaused, "paused"},
		{animation.AnimatorStatus(7), "AnimatorStatus(7)"},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
