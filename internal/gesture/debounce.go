package gesture

import (
	"math"
	"time"

	"github.com/astralplayer/gesturekit/internal/touch"
)

// Debouncer defaults.
const (
	// DefaultMinChangeIntervalMs rate-limits confirmed direction flips.
	DefaultMinChangeIntervalMs = 180
	// DefaultConfidenceThreshold is the combined confidence required to
	// confirm a direction change.
	DefaultConfidenceThreshold = 0.6
	// DefaultAdaptiveRecomputeEvery is how many processed samples pass
	// between adaptive threshold recomputations. The threshold is never
	// recomputed per-event, so it cannot oscillate.
	DefaultAdaptiveRecomputeEvery = 8
	// referenceAmplitudePx is the per-step movement amplitude at which
	// the adaptive threshold equals its base value.
	referenceAmplitudePx = 8.0
	// adaptiveMinScale and adaptiveMaxScale bound how far the adaptive
	// threshold may drift from its base value.
	adaptiveMinScale = 0.5
	adaptiveMaxScale = 2.5
	// agreementBonus is added to the predictor confidence when the raw
	// and predicted directions agree.
	agreementBonus = 0.25
	// disagreementPenalty scales the predictor confidence when the raw
	// and predicted directions conflict.
	disagreementPenalty = 0.5
)

// DebounceConfig holds the tunable anti-flicker parameters.
type DebounceConfig struct {
	// MinChangeIntervalMs is the minimum time between confirmed
	// direction changes, regardless of how often raw input flips.
	MinChangeIntervalMs int64
	// ConfidenceThreshold is the combined confidence a candidate
	// direction must reach to be confirmed.
	ConfidenceThreshold float64
	// DirectionThreshold is the base minimum |dx| in px before a raw
	// direction is read from the displacement sign.
	DirectionThreshold float64
	// RecomputeEvery is the number of processed samples between
	// adaptive threshold recomputations.
	RecomputeEvery int
}

// DefaultDebounceConfig returns the standard anti-flicker parameters.
func DefaultDebounceConfig() DebounceConfig {
	return DebounceConfig{
		MinChangeIntervalMs: DefaultMinChangeIntervalMs,
		ConfidenceThreshold: DefaultConfidenceThreshold,
		DirectionThreshold:  baseDirectionThresholdDp,
		RecomputeEvery:      DefaultAdaptiveRecomputeEvery,
	}
}

// DirectionChangeResult is the outcome of one debouncer step.
type DirectionChangeResult struct {
	Direction  touch.Direction
	Confidence float64
	// Changed is true only when a new direction was confirmed this
	// step.
	Changed bool
	// LatencyMs is the time between the raw event and its confirmation,
	// populated only on confirmed changes.
	LatencyMs int64
}

// Debouncer turns jittery horizontal movement into a stable seek
// direction. A direction change is confirmed only when three gates pass
// together: the candidate differs from the last confirmed direction,
// enough time has elapsed since the last confirmed change, and the
// combined raw+predicted confidence clears the threshold. The time gate
// deliberately trades a few milliseconds of latency for perceived
// stability.
type Debouncer struct {
	cfg       DebounceConfig
	buffer    *touch.Buffer
	predictor *touch.VelocityPredictor

	current       touch.Direction
	lastConfirmed touch.Direction
	lastChangeTs  int64

	threshold   float64
	sampleCount int

	now func() int64
}

// NewDebouncer creates a Debouncer reading velocity history from the
// given buffer. Zero-valued config fields fall back to defaults.
func NewDebouncer(cfg DebounceConfig, buf *touch.Buffer, predictor *touch.VelocityPredictor) *Debouncer {
	def := DefaultDebounceConfig()
	if cfg.MinChangeIntervalMs <= 0 {
		cfg.MinChangeIntervalMs = def.MinChangeIntervalMs
	}
	if cfg.ConfidenceThreshold <= 0 {
		cfg.ConfidenceThreshold = def.ConfidenceThreshold
	}
	if cfg.DirectionThreshold <= 0 {
		cfg.DirectionThreshold = def.DirectionThreshold
	}
	if cfg.RecomputeEvery <= 0 {
		cfg.RecomputeEvery = def.RecomputeEvery
	}
	return &Debouncer{
		cfg:       cfg,
		buffer:    buf,
		predictor: predictor,
		threshold: cfg.DirectionThreshold,
		now:       func() int64 { return time.Now().UnixMilli() },
	}
}

// Process evaluates one move sample against the current direction
// state. Vertical-dominant movement never produces a seek direction.
func (d *Debouncer) Process(curX, curY, startX, startY float64, timestampMs int64) DirectionChangeResult {
	dx := curX - startX
	dy := curY - startY

	// Vertical movement is never a seek direction.
	if math.Abs(dy) > math.Abs(dx) {
		return DirectionChangeResult{Direction: touch.DirectionNone}
	}

	d.sampleCount++
	if d.sampleCount%d.cfg.RecomputeEvery == 0 {
		d.recomputeThreshold()
	}

	// Raw direction from the displacement sign, gated by the adaptive
	// threshold.
	raw := touch.DirectionNone
	if dx <= -d.threshold {
		raw = touch.DirectionLeft
	} else if dx >= d.threshold {
		raw = touch.DirectionRight
	}
	if raw == touch.DirectionNone {
		return DirectionChangeResult{Direction: d.current, Confidence: 0}
	}

	// Windowed velocity estimate over recent history.
	pred := d.predictor.Predict(d.buffer.Snapshot())

	confidence := pred.Confidence
	if pred.Direction == raw {
		confidence += agreementBonus
		if confidence > 1 {
			confidence = 1
		}
	} else if pred.Direction != touch.DirectionNone {
		confidence *= disagreementPenalty
	}

	d.current = raw

	// Triple gate: candidate differs, interval elapsed, confidence
	// clears the bar.
	if raw == d.lastConfirmed {
		return DirectionChangeResult{Direction: raw, Confidence: confidence}
	}
	// The interval gate rate-limits flips; the initial confirmation of
	// a gesture is not a flip.
	if d.lastConfirmed != touch.DirectionNone && timestampMs-d.lastChangeTs < d.cfg.MinChangeIntervalMs {
		return DirectionChangeResult{Direction: d.lastConfirmed, Confidence: confidence}
	}
	if confidence < d.cfg.ConfidenceThreshold {
		return DirectionChangeResult{Direction: d.lastConfirmed, Confidence: confidence}
	}

	d.lastConfirmed = raw
	d.lastChangeTs = timestampMs

	return DirectionChangeResult{
		Direction:  raw,
		Confidence: confidence,
		Changed:    true,
		LatencyMs:  d.now() - timestampMs,
	}
}

// Direction returns the last confirmed direction.
func (d *Debouncer) Direction() touch.Direction {
	return d.lastConfirmed
}

// Threshold returns the current adaptive direction threshold in px.
func (d *Debouncer) Threshold() float64 {
	return d.threshold
}

// Reset clears direction state at gesture end. The adaptive threshold
// is kept: it models the user, not the gesture.
func (d *Debouncer) Reset() {
	d.current = touch.DirectionNone
	d.lastConfirmed = touch.DirectionNone
	d.lastChangeTs = 0
	d.sampleCount = 0
}

// recomputeThreshold scales the direction threshold by the observed
// movement amplitude: wide, fast movers get a wider dead zone, fine
// movers a narrower one.
func (d *Debouncer) recomputeThreshold() {
	amp := d.buffer.AverageAmplitude()
	if amp <= 0 {
		return
	}
	scale := amp / referenceAmplitudePx
	if scale < adaptiveMinScale {
		scale = adaptiveMinScale
	}
	if scale > adaptiveMaxScale {
		scale = adaptiveMaxScale
	}
	d.threshold = d.cfg.DirectionThreshold * scale
}
