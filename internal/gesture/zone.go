// Package gesture implements the gesture recognition pipeline: zone
// classification, the single-finger state machine, direction-change
// debouncing, multi-finger pattern recognition, and device calibration.
package gesture

import "fmt"

// Zone is the control zone a touch-down falls into. The zone is derived
// purely from the touch-down coordinates and the current viewport size,
// and never changes for the lifetime of a gesture.
type Zone int

const (
	// ZoneNone means the touch could not be assigned to a zone.
	ZoneNone Zone = iota
	// ZoneBrightness is the left band of the viewport.
	ZoneBrightness
	// ZoneVolume is the right band of the viewport.
	ZoneVolume
	// ZoneSeek is the middle band of the viewport.
	ZoneSeek
)

// String returns a human-readable name for the zone.
func (z Zone) String() string {
	switch z {
	case ZoneNone:
		return "none"
	case ZoneBrightness:
		return "brightness"
	case ZoneVolume:
		return "volume"
	case ZoneSeek:
		return "seek"
	default:
		return fmt.Sprintf("unknown(%d)", int(z))
	}
}

// ParseZone converts a stored name back into a Zone.
func ParseZone(s string) (Zone, error) {
	for z := ZoneNone; z <= ZoneSeek; z++ {
		if z.String() == s {
			return z, nil
		}
	}
	return ZoneNone, fmt.Errorf("unknown zone %q", s)
}

// Default zone band fractions.
const (
	// DefaultLeftFraction is the width fraction of the brightness band.
	DefaultLeftFraction = 0.20
	// DefaultRightFraction is the width fraction of the volume band.
	DefaultRightFraction = 0.20
)

// ZoneConfig holds the configurable horizontal band fractions used to
// split the viewport into control zones.
type ZoneConfig struct {
	LeftFraction  float64
	RightFraction float64
}

// DefaultZoneConfig returns the standard 20/60/20 split.
func DefaultZoneConfig() ZoneConfig {
	return ZoneConfig{
		LeftFraction:  DefaultLeftFraction,
		RightFraction: DefaultRightFraction,
	}
}

// Classify maps a touch origin to a control zone given the viewport
// dimensions. It is a pure function: deterministic, time-invariant, no
// side effects. Out-of-bounds coordinates clamp to the nearest band. A
// degenerate viewport yields ZoneNone.
func (c ZoneConfig) Classify(x, y, viewportW, viewportH float64) Zone {
	if viewportW <= 0 || viewportH <= 0 {
		return ZoneNone
	}

	// Clamp to the viewport so out-of-bounds touches land in the
	// nearest band.
	if x < 0 {
		x = 0
	}
	if x > viewportW {
		x = viewportW
	}

	switch {
	case x < viewportW*c.LeftFraction:
		return ZoneBrightness
	case x > viewportW*(1-c.RightFraction):
		return ZoneVolume
	default:
		return ZoneSeek
	}
}

// ClassifyZone classifies a touch origin with the default band split.
func ClassifyZone(x, y, viewportW, viewportH float64) Zone {
	return DefaultZoneConfig().Classify(x, y, viewportW, viewportH)
}
