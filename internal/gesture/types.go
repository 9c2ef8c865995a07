package gesture

import (
	"fmt"

	"github.com/astralplayer/gesturekit/internal/touch"
)

// Type identifies a classified gesture.
type Type int

const (
	// TypeNone means no gesture has been classified.
	TypeNone Type = iota
	// TypeSingleTap is a quick down-up with negligible movement.
	TypeSingleTap
	// TypeDoubleTap is a second tap within the double-tap window in the
	// same zone.
	TypeDoubleTap
	// TypeLongPress is a hold past the long-press threshold with
	// negligible movement. Vertical movement after the threshold drives
	// playback-speed control.
	TypeLongPress
	// TypeSeek is a horizontal drag in the seek zone.
	TypeSeek
	// TypeBrightness is a vertical drag starting in the left band.
	TypeBrightness
	// TypeVolume is a vertical drag starting in the right band.
	TypeVolume
	// TypeSpeed is the speed adjustment carried by a long-press drag.
	TypeSpeed
	// TypePinchZoom is a two-finger distance change.
	TypePinchZoom
	// TypeRotate is a two-finger angle change.
	TypeRotate
	// TypeThreeFingerSwipeLeft is a three-finger horizontal swipe left.
	TypeThreeFingerSwipeLeft
	// TypeThreeFingerSwipeRight is a three-finger horizontal swipe right.
	TypeThreeFingerSwipeRight
	// TypeThreeFingerTap is a quick three-finger tap.
	TypeThreeFingerTap
	// TypeFourFingerTap is a quick four-finger tap.
	TypeFourFingerTap
	// TypeCustom is a user-recorded gesture matched by shape.
	TypeCustom
)

// String returns a human-readable name for the gesture type.
func (t Type) String() string {
	switch t {
	case TypeNone:
		return "none"
	case TypeSingleTap:
		return "single_tap"
	case TypeDoubleTap:
		return "double_tap"
	case TypeLongPress:
		return "long_press"
	case TypeSeek:
		return "seek"
	case TypeBrightness:
		return "brightness"
	case TypeVolume:
		return "volume"
	case TypeSpeed:
		return "speed"
	case TypePinchZoom:
		return "pinch_zoom"
	case TypeRotate:
		return "rotate"
	case TypeThreeFingerSwipeLeft:
		return "three_finger_swipe_left"
	case TypeThreeFingerSwipeRight:
		return "three_finger_swipe_right"
	case TypeThreeFingerTap:
		return "three_finger_tap"
	case TypeFourFingerTap:
		return "four_finger_tap"
	case TypeCustom:
		return "custom"
	default:
		return fmt.Sprintf("unknown(%d)", int(t))
	}
}

// ParseType converts a stored name back into a gesture Type.
func ParseType(s string) (Type, error) {
	for t := TypeNone; t <= TypeCustom; t++ {
		if t.String() == s {
			return t, nil
		}
	}
	return TypeNone, fmt.Errorf("unknown gesture type %q", s)
}

// State is the live snapshot of the current gesture, updated on every
// processed event. UI collaborators read it to render overlays. Exactly
// one State is active per physical touch sequence; it is reset
// unconditionally when the sequence ends.
type State struct {
	Active      bool            `json:"active"`
	Zone        Zone            `json:"zone"`
	Type        Type            `json:"type"`
	Origin      touch.Point     `json:"origin"`
	DX          float64         `json:"dx"`
	DY          float64         `json:"dy"`
	SeekDeltaMs float64         `json:"seekDeltaMs"`
	Brightness  float64         `json:"brightnessDelta"`
	Volume      float64         `json:"volumeDelta"`
	SpeedRate   float64         `json:"speedRate"`
	LongPress   bool            `json:"longPress"`
	Confidence  float64         `json:"confidence"`
	Direction   touch.Direction `json:"direction"`
	FingerCount int             `json:"fingerCount"`
	ScaleFactor float64         `json:"scaleFactor"`
	RotationDeg float64         `json:"rotationDeg"`
	// Completed marks a gesture that finished normally, as opposed to
	// one reset by a cancel. It survives one snapshot past the reset so
	// overlay clients can distinguish the two.
	Completed bool `json:"completed"`
}

// Event is one classified gesture occurrence produced by the state
// machine or the multi-finger recognizer. Value carries the payload
// relevant to the type: milliseconds for seek, a [-1,1] level delta for
// brightness/volume, a rate for speed, a scale factor for pinch, and
// degrees for rotate.
type Event struct {
	Type  Type
	Zone  Zone
	Value float64
	// Final marks the one event emitted when the gesture is confirmed,
	// as opposed to per-frame progress updates.
	Final bool
}
