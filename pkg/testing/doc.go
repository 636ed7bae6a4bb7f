// Package testing provides helpers for deterministic animation and paint
// tests.
//
// # Animation Testing
//
// A [FramePump] owns a [FakeClock] and a scheduler bound to it. Hand the
// pump to the code under test as its ticker provider, then advance time:
//
//	func TestFade(t *testing.T) {
//	    pump := tickringtest.NewFramePump(16 * time.Millisecond)
//	    a := animation.NewProgressAnimator(pump)
//	    a.AnimateTo(1, time.Second, nil)
//
//	    pump.Advance(500 * time.Millisecond)
//	    // a.Value() is now 0.5
//
//	    if err := pump.PumpUntilIdle(2 * time.Second); err != nil {
//	        t.Fatal(err)
//	    }
//	}
//
// # Paint Testing
//
// [RecordOps] runs a paint function against a serializing canvas and
// returns the operations it issued:
//
//	ops := tickringtest.RecordOps(size, func(c graphics.Canvas) {
//	    indicator.Paint(c, size)
//	})
//	lines := tickringtest.FilterOps(ops, "drawLine")
package testing
