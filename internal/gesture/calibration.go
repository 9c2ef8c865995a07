package gesture

import "fmt"

// Baseline calibration constants, expressed for a 1.0-density display
// 1080px wide.
const (
	baseSlopDp               = 10.0
	baseDirectionThresholdDp = 12.0
	baseSwipeThresholdDp     = 60.0
	baseSeekPerPixelMs       = 80.0
	referenceWidthPx         = 1080.0
)

// Params are the per-device scaled recognition parameters derived at
// startup from screen density and width.
type Params struct {
	// Slop is the movement distance in px below which a touch is still
	// a tap.
	Slop float64
	// DirectionThreshold is the minimum |dx| in px before a seek
	// direction is considered at all.
	DirectionThreshold float64
	// SwipeThreshold is the centroid displacement in px required for a
	// multi-finger swipe.
	SwipeThreshold float64
	// SeekPerPixelMs is the seek amount in milliseconds per pixel of
	// horizontal drag, before the velocity multiplier.
	SeekPerPixelMs float64
}

// Calibrate derives recognition parameters for a device. Density is the
// px-per-dp scale factor (1.0 for a baseline display); widthPx is the
// viewport width in pixels. Invalid inputs fail validation rather than
// producing parameters that would corrupt runtime behavior.
func Calibrate(density, widthPx float64) (Params, error) {
	if density <= 0 {
		return Params{}, fmt.Errorf("calibration: density must be positive, got %g", density)
	}
	if widthPx <= 0 {
		return Params{}, fmt.Errorf("calibration: width must be positive, got %g", widthPx)
	}

	// Distance thresholds scale with density so a "10dp" slop feels the
	// same on every screen. Seek sensitivity scales inversely with
	// width so a full-width drag covers a comparable range everywhere.
	widthScale := referenceWidthPx / widthPx

	return Params{
		Slop:               baseSlopDp * density,
		DirectionThreshold: baseDirectionThresholdDp * density,
		SwipeThreshold:     baseSwipeThresholdDp * density,
		SeekPerPixelMs:     baseSeekPerPixelMs * widthScale,
	}, nil
}

// SpeedConfig describes the playback-speed levels reachable through a
// long-press drag and the hold intervals that step between them.
type SpeedConfig struct {
	// Levels are the selectable playback rates, ascending.
	Levels []float64
	// HoldIntervalsMs are the cumulative hold durations at which the
	// active level steps up. Must be strictly increasing and one entry
	// shorter than Levels (the first level is active immediately).
	HoldIntervalsMs []int64
}

// DefaultSpeedConfig returns the standard speed ladder.
func DefaultSpeedConfig() SpeedConfig {
	return SpeedConfig{
		Levels:          []float64{1.0, 1.5, 2.0, 3.0},
		HoldIntervalsMs: []int64{800, 1600, 2400},
	}
}

// Validate checks the configuration for contradictions. It returns a
// descriptive error at configuration time so invalid thresholds never
// reach the recognition hot path.
func (c SpeedConfig) Validate() error {
	if len(c.Levels) == 0 {
		return fmt.Errorf("speed config: at least one speed level is required")
	}
	for i, l := range c.Levels {
		if l <= 0 {
			return fmt.Errorf("speed config: level %d must be positive, got %g", i, l)
		}
		if i > 0 && l <= c.Levels[i-1] {
			return fmt.Errorf("speed config: levels must be strictly ascending (level %d: %g <= %g)", i, l, c.Levels[i-1])
		}
	}
	if len(c.HoldIntervalsMs) != len(c.Levels)-1 {
		return fmt.Errorf("speed config: expected %d hold intervals for %d levels, got %d",
			len(c.Levels)-1, len(c.Levels), len(c.HoldIntervalsMs))
	}
	for i, iv := range c.HoldIntervalsMs {
		if iv <= 0 {
			return fmt.Errorf("speed config: hold interval %d must be positive, got %d", i, iv)
		}
		if i > 0 && iv <= c.HoldIntervalsMs[i-1] {
			return fmt.Errorf("speed config: hold intervals must be strictly increasing (interval %d: %d <= %d)", i, iv, c.HoldIntervalsMs[i-1])
		}
	}
	return nil
}

// LevelFor returns the speed level active after holding for the given
// duration.
func (c SpeedConfig) LevelFor(heldMs int64) float64 {
	level := c.Levels[0]
	for i, iv := range c.HoldIntervalsMs {
		if heldMs >= iv {
			level = c.Levels[i+1]
		}
	}
	return level
}
