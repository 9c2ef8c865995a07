// Package feedback triggers haptic and audio feedback patterns for
// gesture lifecycle events. It is a pure consumer of the recognition
// pipeline: feedback never influences classification, and it is driven
// by lifecycle events only, never by raw per-pixel movement.
package feedback

import "fmt"

// Haptics is the platform capability for vibration feedback. Injected
// so the engine stays testable without a real device.
type Haptics interface {
	// Available reports whether the host has a usable vibrator.
	Available() bool
	// Vibrate plays a pattern of alternating on/off durations in
	// milliseconds, starting with an on pulse.
	Vibrate(pattern []int64) error
}

// Sound is the optional platform capability for audio cues.
type Sound interface {
	// Play plays a named cue. Unknown names are ignored.
	Play(name string) error
}

// Trigger identifies a gesture lifecycle event worth feedback.
type Trigger int

const (
	// TriggerGestureStart fires when a touch sequence begins tracking.
	TriggerGestureStart Trigger = iota
	// TriggerGestureConfirm fires when a gesture is confirmed.
	TriggerGestureConfirm
	// TriggerLongPressStart fires when the long-press threshold is
	// crossed.
	TriggerLongPressStart
	// TriggerMultiFinger fires when a multi-finger pattern is
	// recognized.
	TriggerMultiFinger
	// TriggerRecordingStart fires when gesture recording begins.
	TriggerRecordingStart
	// TriggerRecordingStop fires when gesture recording ends.
	TriggerRecordingStop
)

// String returns a human-readable name for the trigger.
func (t Trigger) String() string {
	switch t {
	case TriggerGestureStart:
		return "gesture_start"
	case TriggerGestureConfirm:
		return "gesture_confirm"
	case TriggerLongPressStart:
		return "long_press_start"
	case TriggerMultiFinger:
		return "multi_finger"
	case TriggerRecordingStart:
		return "recording_start"
	case TriggerRecordingStop:
		return "recording_stop"
	default:
		return fmt.Sprintf("unknown(%d)", int(t))
	}
}

// Pattern is one feedback response: a vibration pattern and an
// optional sound cue.
type Pattern struct {
	Vibration []int64
	Sound     string
}

// patternFor is the stateless trigger-to-pattern table.
func patternFor(t Trigger) Pattern {
	switch t {
	case TriggerGestureStart:
		return Pattern{Vibration: []int64{10}}
	case TriggerGestureConfirm:
		return Pattern{Vibration: []int64{20}}
	case TriggerLongPressStart:
		return Pattern{Vibration: []int64{30, 50, 30}}
	case TriggerMultiFinger:
		return Pattern{Vibration: []int64{15, 30, 15}}
	case TriggerRecordingStart:
		return Pattern{Vibration: []int64{40}, Sound: "record_start"}
	case TriggerRecordingStop:
		return Pattern{Vibration: []int64{40, 60, 40}, Sound: "record_stop"}
	default:
		return Pattern{}
	}
}

// Coordinator fans gesture lifecycle triggers out to the platform
// feedback capabilities. Missing capabilities are silently ignored;
// feedback failure is never an error the pipeline sees.
type Coordinator struct {
	haptics Haptics
	sound   Sound
}

// NewCoordinator creates a Coordinator. Either capability may be nil.
func NewCoordinator(h Haptics, s Sound) *Coordinator {
	return &Coordinator{haptics: h, sound: s}
}

// Fire plays the feedback pattern for a lifecycle trigger.
func (c *Coordinator) Fire(t Trigger) {
	p := patternFor(t)

	if c.haptics != nil && c.haptics.Available() && len(p.Vibration) > 0 {
		// Failure to vibrate is deliberately swallowed.
		_ = c.haptics.Vibrate(p.Vibration)
	}
	if c.sound != nil && p.Sound != "" {
		_ = c.sound.Play(p.Sound)
	}
}
