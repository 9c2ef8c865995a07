package action

import (
	"fmt"

	"github.com/astralplayer/gesturekit/internal/touch"
)

// Trainer averages repeated recordings of the same custom gesture into
// a single template path. Averaging several strokes smooths out the
// jitter of any one recording and tightens later matching.
type Trainer struct{}

// NewTrainer creates a new Trainer instance.
func NewTrainer() *Trainer {
	return &Trainer{}
}

// Train averages multiple recorded paths into a single template path.
// Paths of different lengths are resampled to the length of the first
// path before averaging. At least one path with two points is required.
func (t *Trainer) Train(samples [][]touch.Point) ([]touch.Point, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("no samples provided")
	}

	for i, path := range samples {
		if len(path) < minRecordedPoints {
			return nil, fmt.Errorf("sample %d has insufficient path points", i)
		}
	}

	targetLength := len(samples[0])
	averaged := make([]touch.Point, targetLength)

	resampled := make([][]touch.Point, len(samples))
	for i, path := range samples {
		resampled[i] = resamplePath(path, targetLength)
	}

	n := float64(len(samples))
	for i := 0; i < targetLength; i++ {
		var sumX, sumY float64
		for _, path := range resampled {
			sumX += path[i].X
			sumY += path[i].Y
		}
		averaged[i] = touch.Point{
			X: sumX / n,
			Y: sumY / n,
			// Timestamps from the first sample act as the reference
			// timing for the template.
			Timestamp: resampled[0][i].Timestamp,
		}
	}

	return averaged, nil
}

// resamplePath resamples a path to have exactly targetLength points
// using linear interpolation.
func resamplePath(path []touch.Point, targetLength int) []touch.Point {
	if len(path) == 0 {
		return nil
	}

	if len(path) == 1 || targetLength <= 1 {
		return []touch.Point{path[0]}
	}

	result := make([]touch.Point, targetLength)

	for i := 0; i < targetLength; i++ {
		t := float64(i) / float64(targetLength-1)
		pos := t * float64(len(path)-1)

		idx := int(pos)
		if idx >= len(path)-1 {
			idx = len(path) - 2
		}

		frac := pos - float64(idx)

		p1 := path[idx]
		p2 := path[idx+1]

		result[i] = touch.Point{
			X:         p1.X + frac*(p2.X-p1.X),
			Y:         p1.Y + frac*(p2.Y-p1.Y),
			Timestamp: p1.Timestamp + int64(frac*float64(p2.Timestamp-p1.Timestamp)),
		}
	}

	return result
}
