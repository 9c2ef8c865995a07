package touch

import "math"

// Velocity prediction constants.
const (
	// DefaultWindowMs is the sliding window over which velocity is
	// estimated.
	DefaultWindowMs = 120
	// MinPredictionPoints is the minimum number of samples required for
	// a prediction. Fewer samples yield zero confidence.
	MinPredictionPoints = 2
	// directionDeadZone is the minimum horizontal speed (px/s) before a
	// direction is reported at all.
	directionDeadZone = 20.0
	// fullConfidenceSamples is the sample count at which the count
	// component of confidence saturates.
	fullConfidenceSamples = 6
)

// Prediction is a windowed velocity estimate with a direction and a
// [0,1] confidence score.
type Prediction struct {
	VX         float64 // horizontal velocity in px/s
	VY         float64 // vertical velocity in px/s
	Direction  Direction
	Confidence float64
}

// Speed returns the scalar speed of the prediction in px/s.
func (p Prediction) Speed() float64 {
	return hypot(p.VX, p.VY)
}

// VelocityPredictor estimates pointer velocity over a sliding time
// window of recent samples.
type VelocityPredictor struct {
	windowMs int64
}

// NewVelocityPredictor creates a predictor with the given window.
// Non-positive windows fall back to the default.
func NewVelocityPredictor(windowMs int64) *VelocityPredictor {
	if windowMs <= 0 {
		windowMs = DefaultWindowMs
	}
	return &VelocityPredictor{windowMs: windowMs}
}

// Predict computes displacement over time for the samples that fall
// inside the window ending at the newest sample. Insufficient history
// yields a zero-confidence prediction with DirectionNone, never an
// error.
//
// Confidence combines two signals:
//  1. Sample count: more samples in the window mean a steadier estimate.
//  2. Sign consistency: the fraction of per-step horizontal deltas that
//     agree with the overall direction. Jittery input scores low even
//     with many samples.
func (vp *VelocityPredictor) Predict(points []Point) Prediction {
	if len(points) < MinPredictionPoints {
		return Prediction{Direction: DirectionNone}
	}

	// Keep only samples within the window ending at the newest sample.
	newest := points[len(points)-1].Timestamp
	start := 0
	for start < len(points) && newest-points[start].Timestamp > vp.windowMs {
		start++
	}
	window := points[start:]
	if len(window) < MinPredictionPoints {
		return Prediction{Direction: DirectionNone}
	}

	first := window[0]
	last := window[len(window)-1]
	dt := last.Timestamp - first.Timestamp
	if dt <= 0 {
		// Duplicate or out-of-order timestamps: no usable estimate.
		return Prediction{Direction: DirectionNone}
	}

	seconds := float64(dt) / 1000.0
	vx := (last.X - first.X) / seconds
	vy := (last.Y - first.Y) / seconds

	dir := DirectionNone
	if vx <= -directionDeadZone {
		dir = DirectionLeft
	} else if vx >= directionDeadZone {
		dir = DirectionRight
	}

	// Count component of confidence.
	countConf := float64(len(window)) / fullConfidenceSamples
	if countConf > 1 {
		countConf = 1
	}

	// Sign-consistency component: what fraction of steps move the same
	// horizontal way as the overall displacement.
	consistency := signConsistency(window, last.X-first.X)

	conf := countConf * consistency
	if dir == DirectionNone {
		conf = 0
	}

	return Prediction{VX: vx, VY: vy, Direction: dir, Confidence: conf}
}

// signConsistency returns the fraction of consecutive steps whose
// horizontal delta agrees in sign with the total displacement. Steps
// with negligible movement count as agreeing.
func signConsistency(points []Point, totalDX float64) float64 {
	if len(points) < 2 {
		return 0
	}

	agree := 0
	steps := len(points) - 1
	for i := 1; i < len(points); i++ {
		dx := points[i].X - points[i-1].X
		if math.Abs(dx) < 0.5 || dx*totalDX >= 0 {
			agree++
		}
	}
	return float64(agree) / float64(steps)
}

// hypot is a local shorthand for math.Hypot.
func hypot(x, y float64) float64 {
	return math.Hypot(x, y)
}
