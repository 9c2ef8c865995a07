package gesture

import (
	"math"

	"github.com/astralplayer/gesturekit/internal/touch"
)

// Single-finger timing thresholds (milliseconds).
const (
	// DefaultTapWindowMs is the maximum down-to-up time for a tap.
	DefaultTapWindowMs = 200
	// DefaultDoubleTapWindowMs is the maximum time between two taps in
	// the same zone for a double tap.
	DefaultDoubleTapWindowMs = 300
	// DefaultLongPressMs is the hold time before a long press begins.
	DefaultLongPressMs = 500
	// speedDragStepPx is the vertical drag distance that shifts the
	// long-press speed rate by half a step.
	speedDragStepPx = 100.0
)

// Velocity multiplier bounds for seek deltas: fast flicks earn
// proportionally larger seeks without unbounded scaling.
const (
	seekVelocityDivisor = 1000.0
	seekVelocityMin     = 0.5
	seekVelocityMax     = 3.0
)

// Thresholds holds the single-finger recognition thresholds. Distances
// are in px, already calibrated for the device.
type Thresholds struct {
	TapWindowMs       int64
	DoubleTapWindowMs int64
	LongPressMs       int64
	Slop              float64
	SeekPerPixelMs    float64
	Speed             SpeedConfig
}

// DefaultThresholds returns thresholds for a baseline 1.0-density
// display.
func DefaultThresholds() Thresholds {
	return Thresholds{
		TapWindowMs:       DefaultTapWindowMs,
		DoubleTapWindowMs: DefaultDoubleTapWindowMs,
		LongPressMs:       DefaultLongPressMs,
		Slop:              baseSlopDp,
		SeekPerPixelMs:    baseSeekPerPixelMs,
		Speed:             DefaultSpeedConfig(),
	}
}

// Phase is the internal lifecycle phase of the single-finger state
// machine.
type Phase int

const (
	// PhaseIdle means no touch sequence is active.
	PhaseIdle Phase = iota
	// PhaseTouchDown means a finger is down but not yet classified.
	PhaseTouchDown
	// PhaseSingleMove means the finger crossed the slop and drives a
	// continuous zone gesture.
	PhaseSingleMove
	// PhaseLongPress means the long-press threshold elapsed without
	// qualifying movement.
	PhaseLongPress
)

// Detector is the single-finger gesture state machine. It owns the
// lifecycle of one touch sequence: idle, down, classification into tap,
// long press or a continuous zone gesture, and an unconditional reset
// at the end. All processing is synchronous; the caller invokes one
// Handle method per raw event.
type Detector struct {
	th    Thresholds
	zones ZoneConfig

	vw, vh float64

	phase     Phase
	state     State
	pointerID int64
	downTs    int64
	origin    touch.Point
	maxDist   float64

	lastTapTs   int64
	lastTapZone Zone

	// speedBase is the last announced ladder level of the active long
	// press.
	speedBase float64

	buffer    *touch.Buffer
	predictor *touch.VelocityPredictor
	debouncer *Debouncer
}

// NewDetector creates a Detector using the given thresholds, zone
// layout and debounce configuration.
func NewDetector(th Thresholds, zones ZoneConfig, dc DebounceConfig) *Detector {
	buf := touch.NewBuffer(touch.DefaultDepth, touch.DefaultMaxAgeMs)
	pred := touch.NewVelocityPredictor(touch.DefaultWindowMs)
	if dc.DirectionThreshold <= 0 {
		dc.DirectionThreshold = th.Slop
	}
	return &Detector{
		th:        th,
		zones:     zones,
		buffer:    buf,
		predictor: pred,
		debouncer: NewDebouncer(dc, buf, pred),
	}
}

// SetViewport updates the viewport dimensions used for zone
// classification and level normalization.
func (d *Detector) SetViewport(w, h float64) {
	d.vw = w
	d.vh = h
}

// State returns the live gesture state snapshot.
func (d *Detector) State() State {
	return d.state
}

// Phase returns the current lifecycle phase.
func (d *Detector) Phase() Phase {
	return d.phase
}

// Buffer returns the touch sample buffer feeding velocity prediction
// and adaptive thresholds.
func (d *Detector) Buffer() *touch.Buffer {
	return d.buffer
}

// Debouncer returns the direction-change debouncer.
func (d *Detector) Debouncer() *Debouncer {
	return d.debouncer
}

// HandleDown starts a new touch sequence. A down with no usable
// viewport, or while another sequence is still active, degrades to a
// safe reset rather than corrupting state.
func (d *Detector) HandleDown(ev touch.PointerEvent) []Event {
	if d.phase != PhaseIdle {
		// Out-of-order input: reset and start over.
		d.reset(false)
	}

	zone := d.zones.Classify(ev.X, ev.Y, d.vw, d.vh)
	if zone == ZoneNone {
		// Degenerate viewport: stay idle, emit nothing.
		return nil
	}

	d.phase = PhaseTouchDown
	d.pointerID = ev.PointerID
	d.downTs = ev.Timestamp
	d.origin = ev.Point()
	d.maxDist = 0

	d.buffer.Clear()
	d.buffer.Add(d.origin)

	d.state = State{
		Active:      true,
		Zone:        zone,
		Type:        TypeNone,
		Origin:      d.origin,
		SpeedRate:   1.0,
		FingerCount: 1,
	}
	return nil
}

// HandleMove advances the state machine with a move sample. Moves for
// unknown pointers or with no active sequence are ignored.
func (d *Detector) HandleMove(ev touch.PointerEvent) []Event {
	if d.phase == PhaseIdle || ev.PointerID != d.pointerID {
		return nil
	}

	d.buffer.Add(ev.Point())

	dx := ev.X - d.origin.X
	dy := ev.Y - d.origin.Y
	dist := math.Hypot(dx, dy)
	if dist > d.maxDist {
		d.maxDist = dist
	}
	elapsed := ev.Timestamp - d.downTs

	d.state.DX = dx
	d.state.DY = dy

	switch d.phase {
	case PhaseTouchDown:
		if dist >= d.th.Slop {
			// Movement before the long-press threshold: classify by the
			// zone fixed at touch-down.
			d.phase = PhaseSingleMove
			switch d.state.Zone {
			case ZoneSeek:
				d.state.Type = TypeSeek
			case ZoneBrightness:
				d.state.Type = TypeBrightness
			case ZoneVolume:
				d.state.Type = TypeVolume
			}
			return d.updateMove(ev, dx, dy)
		}
		if elapsed >= d.th.LongPressMs {
			d.phase = PhaseLongPress
			d.state.Type = TypeLongPress
			d.state.LongPress = true
			d.state.SpeedRate = d.th.Speed.LevelFor(elapsed - d.th.LongPressMs)
			d.speedBase = d.state.SpeedRate
			return []Event{{Type: TypeLongPress, Zone: d.state.Zone, Value: d.state.SpeedRate}}
		}
		return nil

	case PhaseSingleMove:
		return d.updateMove(ev, dx, dy)

	case PhaseLongPress:
		return d.updateLongPress(ev, dy, elapsed)
	}
	return nil
}

// HandleUp completes the sequence and emits the confirmed gesture, then
// resets unconditionally.
func (d *Detector) HandleUp(ev touch.PointerEvent) []Event {
	if d.phase == PhaseIdle || ev.PointerID != d.pointerID {
		return nil
	}

	elapsed := ev.Timestamp - d.downTs
	var events []Event

	switch d.phase {
	case PhaseTouchDown:
		switch {
		case elapsed < d.th.TapWindowMs && d.maxDist < d.th.Slop:
			events = d.tap(ev.Timestamp)
		case elapsed >= d.th.LongPressMs && d.maxDist < d.th.Slop:
			// Held past the threshold with no intervening move events:
			// the long press both begins and ends here.
			events = []Event{{Type: TypeLongPress, Zone: d.state.Zone, Value: 1.0, Final: true}}
		}

	case PhaseSingleMove:
		events = []Event{d.finalMoveEvent()}

	case PhaseLongPress:
		// Release restores normal playback rate.
		events = []Event{{Type: TypeLongPress, Zone: d.state.Zone, Value: 1.0, Final: true}}
	}

	d.reset(true)
	return events
}

// HandleCancel resets the sequence without emitting anything. A cancel
// voids the whole in-flight sequence regardless of which pointer it
// names.
func (d *Detector) HandleCancel(ev touch.PointerEvent) {
	if d.phase == PhaseIdle {
		return
	}
	d.reset(false)
}

// Abort resets the single-finger sequence silently. Used when a second
// pointer lands and the sequence hands off to the multi-finger
// recognizer.
func (d *Detector) Abort() {
	if d.phase == PhaseIdle {
		return
	}
	d.reset(false)
}

// Reset forces the detector back to idle. Hosts call it on lifecycle
// events such as view detach.
func (d *Detector) Reset() {
	d.reset(false)
	d.lastTapTs = 0
	d.lastTapZone = ZoneNone
}

// tap emits a single tap, or upgrades to a double tap when a previous
// tap in the same zone is recent enough.
func (d *Detector) tap(ts int64) []Event {
	zone := d.state.Zone
	if d.lastTapTs > 0 && ts-d.lastTapTs <= d.th.DoubleTapWindowMs && zone == d.lastTapZone {
		d.lastTapTs = 0
		d.lastTapZone = ZoneNone
		return []Event{{Type: TypeDoubleTap, Zone: zone, Final: true}}
	}
	d.lastTapTs = ts
	d.lastTapZone = zone
	return []Event{{Type: TypeSingleTap, Zone: zone, Final: true}}
}

// updateMove recomputes the continuous deltas for a zone gesture and
// returns a progress event.
func (d *Detector) updateMove(ev touch.PointerEvent, dx, dy float64) []Event {
	switch d.state.Type {
	case TypeSeek:
		pred := d.predictor.Predict(d.buffer.Snapshot())
		mult := math.Abs(pred.VX) / seekVelocityDivisor
		if mult < seekVelocityMin {
			mult = seekVelocityMin
		}
		if mult > seekVelocityMax {
			mult = seekVelocityMax
		}
		d.state.SeekDeltaMs = d.th.SeekPerPixelMs * dx * mult

		res := d.debouncer.Process(ev.X, ev.Y, d.origin.X, d.origin.Y, ev.Timestamp)
		d.state.Direction = res.Direction
		d.state.Confidence = res.Confidence
		return []Event{{Type: TypeSeek, Zone: d.state.Zone, Value: d.state.SeekDeltaMs}}

	case TypeBrightness, TypeVolume:
		// Dragging up increases the level. Normalized by viewport
		// height so a full-height drag spans the whole range.
		delta := -dy / d.vh
		if delta > 1 {
			delta = 1
		}
		if delta < -1 {
			delta = -1
		}
		if d.state.Type == TypeBrightness {
			d.state.Brightness = delta
		} else {
			d.state.Volume = delta
		}
		return []Event{{Type: d.state.Type, Zone: d.state.Zone, Value: delta}}
	}
	return nil
}

// updateLongPress tracks vertical movement after a long press as a
// speed-control delta layered on the hold-time ladder. A ladder-level
// step additionally re-announces the long press at the new level, once
// per step rather than once per move.
func (d *Detector) updateLongPress(ev touch.PointerEvent, dy float64, elapsed int64) []Event {
	base := d.th.Speed.LevelFor(elapsed - d.th.LongPressMs)
	rate := base + (-dy/speedDragStepPx)*0.5

	levels := d.th.Speed.Levels
	if rate < levels[0] {
		rate = levels[0]
	}
	if rate > levels[len(levels)-1] {
		rate = levels[len(levels)-1]
	}

	d.state.SpeedRate = rate
	events := []Event{{Type: TypeSpeed, Zone: d.state.Zone, Value: rate}}
	if base != d.speedBase {
		d.speedBase = base
		events = append(events, Event{Type: TypeLongPress, Zone: d.state.Zone, Value: base})
	}
	return events
}

// finalMoveEvent builds the confirmed gesture event for a continuous
// zone gesture.
func (d *Detector) finalMoveEvent() Event {
	switch d.state.Type {
	case TypeSeek:
		return Event{Type: TypeSeek, Zone: d.state.Zone, Value: d.state.SeekDeltaMs, Final: true}
	case TypeBrightness:
		return Event{Type: TypeBrightness, Zone: d.state.Zone, Value: d.state.Brightness, Final: true}
	case TypeVolume:
		return Event{Type: TypeVolume, Zone: d.state.Zone, Value: d.state.Volume, Final: true}
	}
	return Event{Type: TypeNone}
}

// reset returns the machine to idle. The reset is unconditional and
// synchronous: no state leaks into the next gesture.
func (d *Detector) reset(completed bool) {
	d.phase = PhaseIdle
	d.pointerID = 0
	d.downTs = 0
	d.maxDist = 0
	d.origin = touch.Point{}
	d.state = State{Completed: completed}
	d.speedBase = 0
	d.buffer.Clear()
	d.debouncer.Reset()
}
