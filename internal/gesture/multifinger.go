package gesture

import (
	"math"

	"github.com/astralplayer/gesturekit/internal/touch"
)

// Multi-finger recognition defaults.
const (
	// DefaultPinchThreshold is the |scale-1| beyond which a pinch is
	// reported.
	DefaultPinchThreshold = 0.1
	// DefaultRotateThresholdDeg is the angle delta in degrees beyond
	// which a rotation is reported.
	DefaultRotateThresholdDeg = 15.0
	// DefaultMultiTapWindowMs is the maximum duration of an N-finger
	// tap.
	DefaultMultiTapWindowMs = 300
)

// MultiFingerConfig holds the thresholds for 2-4 finger recognition.
type MultiFingerConfig struct {
	PinchThreshold     float64
	RotateThresholdDeg float64
	// SwipeThreshold is the centroid displacement in px required for a
	// three-finger swipe.
	SwipeThreshold float64
	TapWindowMs    int64
}

// DefaultMultiFingerConfig returns the standard multi-finger thresholds
// for a baseline display.
func DefaultMultiFingerConfig() MultiFingerConfig {
	return MultiFingerConfig{
		PinchThreshold:     DefaultPinchThreshold,
		RotateThresholdDeg: DefaultRotateThresholdDeg,
		SwipeThreshold:     baseSwipeThresholdDp,
		TapWindowMs:        DefaultMultiTapWindowMs,
	}
}

// MultiFingerRecognizer tracks 2-4 simultaneous pointers and classifies
// pinch, rotate, N-finger tap and three-finger swipe patterns. It owns
// no timers; every decision is made synchronously inside a Handle call.
type MultiFingerRecognizer struct {
	cfg MultiFingerConfig

	pointers map[int64]touch.Point
	order    []int64

	startTs       int64
	startCentroid touch.Point
	maxFingers    int

	// Two-finger baseline captured when the second finger lands.
	initDist  float64
	initAngle float64

	// Latched swipe classification for three-finger gestures.
	swipeType Type

	state State
}

// NewMultiFingerRecognizer creates a recognizer with the given
// thresholds. Zero-valued fields fall back to defaults.
func NewMultiFingerRecognizer(cfg MultiFingerConfig) *MultiFingerRecognizer {
	def := DefaultMultiFingerConfig()
	if cfg.PinchThreshold <= 0 {
		cfg.PinchThreshold = def.PinchThreshold
	}
	if cfg.RotateThresholdDeg <= 0 {
		cfg.RotateThresholdDeg = def.RotateThresholdDeg
	}
	if cfg.SwipeThreshold <= 0 {
		cfg.SwipeThreshold = def.SwipeThreshold
	}
	if cfg.TapWindowMs <= 0 {
		cfg.TapWindowMs = def.TapWindowMs
	}
	return &MultiFingerRecognizer{
		cfg:      cfg,
		pointers: make(map[int64]touch.Point),
	}
}

// Active reports whether any pointers are currently tracked.
func (r *MultiFingerRecognizer) Active() bool {
	return len(r.pointers) > 0
}

// FingerCount returns the number of currently tracked pointers.
func (r *MultiFingerRecognizer) FingerCount() int {
	return len(r.pointers)
}

// State returns the live multi-finger gesture state.
func (r *MultiFingerRecognizer) State() State {
	return r.state
}

// Centroid returns the mean position of all tracked pointers.
func (r *MultiFingerRecognizer) Centroid() touch.Point {
	if len(r.pointers) == 0 {
		return touch.Point{}
	}
	var sx, sy float64
	var ts int64
	for _, id := range r.order {
		p := r.pointers[id]
		sx += p.X
		sy += p.Y
		if p.Timestamp > ts {
			ts = p.Timestamp
		}
	}
	n := float64(len(r.pointers))
	return touch.Point{X: sx / n, Y: sy / n, Timestamp: ts}
}

// HandleDown registers a pointer. When the second pointer lands, the
// two-finger distance and angle baselines are captured; the centroid
// baseline is refreshed on every finger-count change.
func (r *MultiFingerRecognizer) HandleDown(ev touch.PointerEvent) []Event {
	if _, known := r.pointers[ev.PointerID]; !known {
		r.order = append(r.order, ev.PointerID)
	}
	r.pointers[ev.PointerID] = ev.Point()

	if len(r.pointers) > r.maxFingers {
		r.maxFingers = len(r.pointers)
	}
	if r.startTs == 0 {
		r.startTs = ev.Timestamp
	}

	if len(r.pointers) == 2 {
		r.initDist, r.initAngle = r.pairMetrics()
	}
	// Re-baseline the centroid whenever the finger count changes so a
	// late third finger does not inherit two-finger displacement.
	r.startCentroid = r.Centroid()
	r.swipeType = TypeNone

	r.state = State{
		Active:      true,
		FingerCount: len(r.pointers),
		Origin:      r.startCentroid,
		ScaleFactor: 1.0,
	}
	return nil
}

// HandleMove updates a pointer position and runs the finger-count
// specific classification for the current frame.
func (r *MultiFingerRecognizer) HandleMove(ev touch.PointerEvent) []Event {
	if _, known := r.pointers[ev.PointerID]; !known {
		return nil
	}
	r.pointers[ev.PointerID] = ev.Point()
	r.state.FingerCount = len(r.pointers)

	switch len(r.pointers) {
	case 2:
		return r.classifyTwoFinger()
	case 3:
		return r.classifyThreeFinger()
	}
	return nil
}

// HandleUp removes a pointer. When the last finger lifts, the gesture
// is finalized: a quick release with no qualifying movement becomes an
// N-finger tap, a latched swipe is confirmed, and the recognizer resets
// entirely.
func (r *MultiFingerRecognizer) HandleUp(ev touch.PointerEvent) []Event {
	if _, known := r.pointers[ev.PointerID]; !known {
		return nil
	}
	delete(r.pointers, ev.PointerID)
	r.removeFromOrder(ev.PointerID)

	if len(r.pointers) > 0 {
		r.startCentroid = r.Centroid()
		// The surviving pair is a different pair than the one the
		// baseline was captured from.
		if len(r.pointers) == 2 {
			r.initDist, r.initAngle = r.pairMetrics()
		}
		r.state.FingerCount = len(r.pointers)
		return nil
	}

	events := r.finalize(ev.Timestamp)
	r.resetAll(true)
	return events
}

// HandleCancel drops all tracked pointers without emitting anything.
func (r *MultiFingerRecognizer) HandleCancel(ev touch.PointerEvent) {
	r.resetAll(false)
}

// Reset forces the recognizer back to the no-fingers state.
func (r *MultiFingerRecognizer) Reset() {
	r.resetAll(false)
}

// classifyTwoFinger checks pinch and rotate independently. Either,
// neither, or both may fire in one frame.
func (r *MultiFingerRecognizer) classifyTwoFinger() []Event {
	if r.initDist <= 0 {
		return nil
	}

	dist, angle := r.pairMetrics()
	scale := dist / r.initDist
	deltaAngle := normalizeAngle(angle - r.initAngle)

	var events []Event
	if math.Abs(scale-1) > r.cfg.PinchThreshold {
		r.state.Type = TypePinchZoom
		r.state.ScaleFactor = scale
		events = append(events, Event{Type: TypePinchZoom, Value: scale})
	}
	if math.Abs(deltaAngle) > r.cfg.RotateThresholdDeg {
		if r.state.Type != TypePinchZoom {
			r.state.Type = TypeRotate
		}
		r.state.RotationDeg = deltaAngle
		events = append(events, Event{Type: TypeRotate, Value: deltaAngle})
	}
	return events
}

// classifyThreeFinger latches a swipe direction once the centroid
// displacement crosses the threshold with a dominant horizontal sign.
func (r *MultiFingerRecognizer) classifyThreeFinger() []Event {
	c := r.Centroid()
	dx := c.X - r.startCentroid.X
	dy := c.Y - r.startCentroid.Y
	r.state.DX = dx
	r.state.DY = dy

	if math.Abs(dx) < r.cfg.SwipeThreshold || math.Abs(dx) < math.Abs(dy) {
		return nil
	}

	swipe := TypeThreeFingerSwipeRight
	if dx < 0 {
		swipe = TypeThreeFingerSwipeLeft
	}
	if r.swipeType == swipe {
		return nil // already latched this frame direction
	}
	r.swipeType = swipe
	r.state.Type = swipe
	return []Event{{Type: swipe, Value: dx}}
}

// finalize classifies the completed gesture when the last finger lifts.
func (r *MultiFingerRecognizer) finalize(ts int64) []Event {
	elapsed := ts - r.startTs

	switch {
	case r.swipeType != TypeNone:
		return []Event{{Type: r.swipeType, Value: r.state.DX, Final: true}}

	case r.state.Type == TypePinchZoom:
		return []Event{{Type: TypePinchZoom, Value: r.state.ScaleFactor, Final: true}}

	case r.state.Type == TypeRotate:
		return []Event{{Type: TypeRotate, Value: r.state.RotationDeg, Final: true}}

	case elapsed < r.cfg.TapWindowMs:
		switch r.maxFingers {
		case 3:
			return []Event{{Type: TypeThreeFingerTap, Final: true}}
		case 4:
			return []Event{{Type: TypeFourFingerTap, Final: true}}
		}
	}
	return nil
}

// pairMetrics returns the distance and angle (degrees) between the two
// oldest tracked pointers.
func (r *MultiFingerRecognizer) pairMetrics() (float64, float64) {
	if len(r.order) < 2 {
		return 0, 0
	}
	a := r.pointers[r.order[0]]
	b := r.pointers[r.order[1]]
	dx := b.X - a.X
	dy := b.Y - a.Y
	dist := math.Hypot(dx, dy)
	angle := math.Atan2(dy, dx) * 180 / math.Pi
	return dist, angle
}

func (r *MultiFingerRecognizer) removeFromOrder(id int64) {
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			return
		}
	}
}

// resetAll returns the recognizer to the no-fingers state the instant
// the pointer count reaches zero. A completed gesture is marked rather
// than silently dropped so UI collaborators can tell it from a cancel.
func (r *MultiFingerRecognizer) resetAll(completed bool) {
	r.pointers = make(map[int64]touch.Point)
	r.order = r.order[:0]
	r.startTs = 0
	r.startCentroid = touch.Point{}
	r.maxFingers = 0
	r.initDist = 0
	r.initAngle = 0
	r.swipeType = TypeNone
	r.state = State{Completed: completed}
}

// normalizeAngle wraps an angle delta into (-180, 180].
func normalizeAngle(deg float64) float64 {
	for deg > 180 {
		deg -= 360
	}
	for deg <= -180 {
		deg += 360
	}
	return deg
}
