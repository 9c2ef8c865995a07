package gesture

import (
	"math"
	"testing"

	"github.com/astralplayer/gesturekit/internal/touch"
)

func newTestRecognizer() *MultiFingerRecognizer {
	return NewMultiFingerRecognizer(DefaultMultiFingerConfig())
}

func hasEvent(events []Event, typ Type) bool {
	for _, e := range events {
		if e.Type == typ {
			return true
		}
	}
	return false
}

func TestMultiFinger_RotateWithoutPinch(t *testing.T) {
	r := newTestRecognizer()

	r.HandleDown(down(1, 500, 500, 0))
	r.HandleDown(down(2, 700, 500, 10))

	// Rotate the second finger 20 degrees around the first at constant
	// distance: distance ratio 1.0, angle delta 20.
	rad := 20 * math.Pi / 180
	events := r.HandleMove(move(2, 500+200*math.Cos(rad), 500+200*math.Sin(rad), 50))

	if !hasEvent(events, TypeRotate) {
		t.Fatalf("expected rotate, got %+v", events)
	}
	if hasEvent(events, TypePinchZoom) {
		t.Error("constant distance must not report pinch")
	}
}

func TestMultiFinger_PinchWithoutRotate(t *testing.T) {
	r := newTestRecognizer()

	r.HandleDown(down(1, 500, 500, 0))
	r.HandleDown(down(2, 700, 500, 10))

	// Stretch along the same axis: distance ratio 1.5, angle delta 0.
	events := r.HandleMove(move(2, 800, 500, 50))

	if !hasEvent(events, TypePinchZoom) {
		t.Fatalf("expected pinch, got %+v", events)
	}
	if hasEvent(events, TypeRotate) {
		t.Error("zero angle delta must not report rotate")
	}

	// Scale factor is current/initial distance
	found := false
	for _, e := range events {
		if e.Type == TypePinchZoom {
			found = true
			if math.Abs(e.Value-1.5) > 0.01 {
				t.Errorf("expected scale factor 1.5, got %f", e.Value)
			}
		}
	}
	if !found {
		t.Fatal("missing pinch event")
	}
}

func TestMultiFinger_PinchAndRotateMayBothFire(t *testing.T) {
	r := newTestRecognizer()

	r.HandleDown(down(1, 500, 500, 0))
	r.HandleDown(down(2, 700, 500, 10))

	// Stretch and rotate at once
	rad := 25 * math.Pi / 180
	events := r.HandleMove(move(2, 500+320*math.Cos(rad), 500+320*math.Sin(rad), 50))

	if !hasEvent(events, TypePinchZoom) || !hasEvent(events, TypeRotate) {
		t.Errorf("expected both pinch and rotate, got %+v", events)
	}
}

func TestMultiFinger_SmallChangesBelowThreshold(t *testing.T) {
	r := newTestRecognizer()

	r.HandleDown(down(1, 500, 500, 0))
	r.HandleDown(down(2, 700, 500, 10))

	// 5% scale change and 5 degree rotation are both under threshold
	rad := 5 * math.Pi / 180
	events := r.HandleMove(move(2, 500+210*math.Cos(rad), 500+210*math.Sin(rad), 50))

	if len(events) != 0 {
		t.Errorf("sub-threshold changes should emit nothing, got %+v", events)
	}
}

func TestMultiFinger_ThreeToTwoRebaselinesPair(t *testing.T) {
	r := newTestRecognizer()

	r.HandleDown(down(1, 100, 500, 0))
	r.HandleDown(down(2, 200, 500, 10))
	r.HandleDown(down(3, 600, 500, 20))

	// Finger 1 lifts; the surviving pair is 2+3 at distance 400, not
	// the original 1+2 pair at distance 100.
	r.HandleUp(up(1, 100, 500, 30))

	events := r.HandleMove(move(2, 201, 500, 60))
	if hasEvent(events, TypePinchZoom) {
		t.Fatalf("stationary pair after a finger lift must not pinch, got %+v", events)
	}
	if hasEvent(events, TypeRotate) {
		t.Fatalf("stationary pair after a finger lift must not rotate, got %+v", events)
	}

	// A genuine pinch on the surviving pair still registers against
	// the fresh baseline.
	events = r.HandleMove(move(2, 400, 500, 100))
	if !hasEvent(events, TypePinchZoom) {
		t.Fatalf("expected pinch from surviving pair, got %+v", events)
	}
}

func TestMultiFinger_ThreeFingerSwipe(t *testing.T) {
	r := newTestRecognizer()

	r.HandleDown(down(1, 400, 500, 0))
	r.HandleDown(down(2, 500, 500, 5))
	r.HandleDown(down(3, 600, 500, 10))

	// Move all three fingers right by 200px
	var events []Event
	events = append(events, r.HandleMove(move(1, 600, 500, 50))...)
	events = append(events, r.HandleMove(move(2, 700, 500, 55))...)
	events = append(events, r.HandleMove(move(3, 800, 500, 60))...)

	if !hasEvent(events, TypeThreeFingerSwipeRight) {
		t.Fatalf("expected right swipe, got %+v", events)
	}

	// Lifting all fingers confirms the swipe
	events = nil
	events = append(events, r.HandleUp(up(1, 600, 500, 100))...)
	events = append(events, r.HandleUp(up(2, 700, 500, 105))...)
	events = append(events, r.HandleUp(up(3, 800, 500, 110))...)

	final := false
	for _, e := range events {
		if e.Type == TypeThreeFingerSwipeRight && e.Final {
			final = true
		}
	}
	if !final {
		t.Errorf("expected final swipe confirmation, got %+v", events)
	}
}

func TestMultiFinger_ThreeFingerSwipeLeft(t *testing.T) {
	r := newTestRecognizer()

	r.HandleDown(down(1, 600, 500, 0))
	r.HandleDown(down(2, 700, 500, 5))
	r.HandleDown(down(3, 800, 500, 10))

	var events []Event
	events = append(events, r.HandleMove(move(1, 400, 500, 50))...)
	events = append(events, r.HandleMove(move(2, 500, 500, 55))...)
	events = append(events, r.HandleMove(move(3, 600, 500, 60))...)

	if !hasEvent(events, TypeThreeFingerSwipeLeft) {
		t.Errorf("expected left swipe, got %+v", events)
	}
}

func TestMultiFinger_ThreeFingerTap(t *testing.T) {
	r := newTestRecognizer()

	r.HandleDown(down(1, 400, 500, 0))
	r.HandleDown(down(2, 500, 500, 5))
	r.HandleDown(down(3, 600, 500, 10))

	var events []Event
	events = append(events, r.HandleUp(up(1, 400, 500, 100))...)
	events = append(events, r.HandleUp(up(2, 500, 500, 110))...)
	events = append(events, r.HandleUp(up(3, 600, 500, 120))...)

	if !hasEvent(events, TypeThreeFingerTap) {
		t.Errorf("expected three-finger tap, got %+v", events)
	}
}

func TestMultiFinger_FourFingerTap(t *testing.T) {
	r := newTestRecognizer()

	for i := int64(1); i <= 4; i++ {
		r.HandleDown(down(i, float64(300+i*100), 500, i*5))
	}

	var events []Event
	for i := int64(1); i <= 4; i++ {
		events = append(events, r.HandleUp(up(i, float64(300+i*100), 500, 100+i*5))...)
	}

	if !hasEvent(events, TypeFourFingerTap) {
		t.Errorf("expected four-finger tap, got %+v", events)
	}
}

func TestMultiFinger_SlowReleaseIsNotATap(t *testing.T) {
	r := newTestRecognizer()

	r.HandleDown(down(1, 400, 500, 0))
	r.HandleDown(down(2, 500, 500, 5))
	r.HandleDown(down(3, 600, 500, 10))

	// Release after the tap window with no displacement
	var events []Event
	events = append(events, r.HandleUp(up(1, 400, 500, 500))...)
	events = append(events, r.HandleUp(up(2, 500, 500, 510))...)
	events = append(events, r.HandleUp(up(3, 600, 500, 520))...)

	if len(events) != 0 {
		t.Errorf("slow release should classify nothing, got %+v", events)
	}
}

func TestMultiFinger_ResetsWhenPointerCountReachesZero(t *testing.T) {
	r := newTestRecognizer()

	r.HandleDown(down(1, 400, 500, 0))
	r.HandleDown(down(2, 500, 500, 5))
	r.HandleUp(up(1, 400, 500, 100))
	r.HandleUp(up(2, 500, 500, 110))

	if r.Active() {
		t.Error("recognizer should be inactive after all fingers lift")
	}
	if r.FingerCount() != 0 {
		t.Errorf("expected 0 fingers, got %d", r.FingerCount())
	}
	if !r.State().Completed {
		t.Error("a normal release should mark the gesture completed")
	}
}

func TestMultiFinger_CancelIsNotCompleted(t *testing.T) {
	r := newTestRecognizer()

	r.HandleDown(down(1, 400, 500, 0))
	r.HandleDown(down(2, 500, 500, 5))
	r.HandleCancel(touch.PointerEvent{Kind: touch.EventCancel, PointerID: 1, Timestamp: 50})

	if r.Active() {
		t.Error("recognizer should be inactive after cancel")
	}
	if r.State().Completed {
		t.Error("a cancelled gesture must not be marked completed")
	}
}

func TestMultiFinger_Centroid(t *testing.T) {
	r := newTestRecognizer()

	r.HandleDown(down(1, 0, 0, 0))
	r.HandleDown(down(2, 100, 200, 5))

	c := r.Centroid()
	if c.X != 50 || c.Y != 100 {
		t.Errorf("expected centroid (50,100), got (%f,%f)", c.X, c.Y)
	}
}
