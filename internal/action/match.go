package action

import (
	"math"
	"sort"
	"sync"

	"github.com/astralplayer/gesturekit/internal/touch"
)

// DefaultMatchTolerance is the maximum normalized DTW distance for a
// custom gesture match.
const DefaultMatchTolerance = 0.25

// Match is one custom gesture matched against an input path.
type Match struct {
	Gesture  *CustomGesture
	Score    float64 // 0-1, higher is better
	Distance float64 // normalized DTW distance
}

// Matcher matches live touch paths against recorded custom gestures
// using dynamic time warping over normalized paths. Registration is
// infrequent; matching runs at gesture end on the hot path, bounded by
// the path buffer depth.
type Matcher struct {
	mu        sync.RWMutex
	gestures  []*CustomGesture
	tolerance float64
}

// NewMatcher creates a Matcher with the given tolerance. Non-positive
// tolerances fall back to the default.
func NewMatcher(tolerance float64) *Matcher {
	if tolerance <= 0 {
		tolerance = DefaultMatchTolerance
	}
	return &Matcher{tolerance: tolerance}
}

// Add registers a custom gesture for matching.
func (m *Matcher) Add(g *CustomGesture) {
	if g == nil {
		return
	}
	m.mu.Lock()
	m.gestures = append(m.gestures, g)
	m.mu.Unlock()
}

// Remove unregisters a gesture by ID.
func (m *Matcher) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, g := range m.gestures {
		if g.ID == id {
			m.gestures = append(m.gestures[:i], m.gestures[i+1:]...)
			return
		}
	}
}

// Lookup returns a registered gesture by name.
func (m *Matcher) Lookup(name string) *CustomGesture {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, g := range m.gestures {
		if g.Name == name {
			return g
		}
	}
	return nil
}

// Match finds custom gestures whose shape matches the input path,
// sorted by score descending. An empty path matches nothing.
func (m *Matcher) Match(path []touch.Point) []Match {
	if len(path) < minRecordedPoints {
		return nil
	}

	input := normalizePath(path)

	m.mu.RLock()
	gestures := m.gestures
	m.mu.RUnlock()

	var matches []Match
	for _, g := range gestures {
		if len(g.Points) < minRecordedPoints {
			continue
		}
		distance := dtwDistance(input, normalizePath(g.Points))
		if math.IsInf(distance, 1) || distance > m.tolerance {
			continue
		}
		matches = append(matches, Match{
			Gesture:  g,
			Score:    1.0 / (1.0 + distance),
			Distance: distance,
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}

// dtwDistance is the dynamic time warping distance between two paths,
// normalized by the longer path length. Empty paths are infinitely
// far apart.
func dtwDistance(a, b []touch.Point) float64 {
	n := len(a)
	m := len(b)
	if n == 0 || m == 0 {
		return math.Inf(1)
	}

	dtw := make([][]float64, n+1)
	for i := range dtw {
		dtw[i] = make([]float64, m+1)
		for j := range dtw[i] {
			dtw[i][j] = math.Inf(1)
		}
	}
	dtw[0][0] = 0

	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			cost := pointDistance(a[i-1], b[j-1])
			dtw[i][j] = cost + min3(dtw[i-1][j], dtw[i][j-1], dtw[i-1][j-1])
		}
	}

	longest := n
	if m > longest {
		longest = m
	}
	return dtw[n][m] / float64(longest)
}

// normalizePath scales path coordinates into the 0-1 range so shapes
// match regardless of where on screen they were drawn, or how large.
// Timestamps are preserved.
func normalizePath(path []touch.Point) []touch.Point {
	n := len(path)
	if n == 0 {
		return nil
	}
	if n == 1 {
		return []touch.Point{{Timestamp: path[0].Timestamp}}
	}

	minX, maxX := path[0].X, path[0].X
	minY, maxY := path[0].Y, path[0].Y
	for _, p := range path {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY

	out := make([]touch.Point, n)
	for i, p := range path {
		var nx, ny float64
		if rangeX > 0 {
			nx = (p.X - minX) / rangeX
		}
		if rangeY > 0 {
			ny = (p.Y - minY) / rangeY
		}
		out[i] = touch.Point{X: nx, Y: ny, Timestamp: p.Timestamp}
	}
	return out
}

func pointDistance(a, b touch.Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

func min3(a, b, c float64) float64 {
	if a <= b && a <= c {
		return a
	}
	if b <= c {
		return b
	}
	return c
}
