// Package touch provides the raw touch input types for the gesturekit
// engine: timestamped pointer samples, pointer events, a bounded sample
// buffer, and windowed velocity prediction.
package touch

import "fmt"

// Point is a single timestamped touch sample. Points are immutable once
// recorded.
type Point struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Timestamp int64   `json:"timestamp"` // milliseconds
}

// EventKind identifies the kind of a pointer event.
type EventKind int

const (
	// EventDown is delivered when a finger first touches the surface.
	EventDown EventKind = iota
	// EventMove is delivered while a finger moves across the surface.
	EventMove
	// EventUp is delivered when a finger leaves the surface.
	EventUp
	// EventCancel is delivered when the platform aborts the touch
	// sequence (for example an interrupting system gesture). It must be
	// treated like EventUp for state-reset purposes, but no action is
	// emitted.
	EventCancel
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventDown:
		return "down"
	case EventMove:
		return "move"
	case EventUp:
		return "up"
	case EventCancel:
		return "cancel"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// PointerEvent is one raw pointer event from the windowing collaborator.
// PointerID correlates a down with its subsequent move/up events and is
// unique only for the lifetime of one finger-down-to-up sequence.
type PointerEvent struct {
	Kind      EventKind
	PointerID int64
	X         float64
	Y         float64
	Timestamp int64 // milliseconds
}

// Point returns the sample carried by the event.
func (e PointerEvent) Point() Point {
	return Point{X: e.X, Y: e.Y, Timestamp: e.Timestamp}
}

// Direction is a stable horizontal movement direction.
type Direction int

const (
	// DirectionNone means no confirmed horizontal direction.
	DirectionNone Direction = iota
	// DirectionLeft means movement toward negative X.
	DirectionLeft
	// DirectionRight means movement toward positive X.
	DirectionRight
)

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	case DirectionNone:
		return "none"
	default:
		return fmt.Sprintf("unknown(%d)", int(d))
	}
}
