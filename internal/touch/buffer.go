package touch

// Buffer size constants.
const (
	// DefaultDepth is the maximum number of samples the buffer keeps.
	DefaultDepth = 20
	// DefaultMaxAgeMs is the maximum age of a sample relative to the
	// newest sample before it is evicted.
	DefaultMaxAgeMs = 500
)

// Buffer is a fixed-depth buffer of recent touch samples. The newest
// sample is always last. Old samples are evicted once the buffer exceeds
// its depth or once they age past the configured limit, so the buffer
// never grows unbounded.
type Buffer struct {
	points   []Point
	depth    int
	maxAgeMs int64
}

// NewBuffer creates a Buffer with the given depth and age limit.
// Non-positive values fall back to the defaults.
func NewBuffer(depth int, maxAgeMs int64) *Buffer {
	if depth <= 0 {
		depth = DefaultDepth
	}
	if maxAgeMs <= 0 {
		maxAgeMs = DefaultMaxAgeMs
	}
	return &Buffer{
		points:   make([]Point, 0, depth),
		depth:    depth,
		maxAgeMs: maxAgeMs,
	}
}

// Add appends a sample, evicting the oldest entries if the buffer is
// full or if they are older than the age limit relative to p.
func (b *Buffer) Add(p Point) {
	if len(b.points) >= b.depth {
		// Shift buffer left by 1, removing oldest point
		copy(b.points, b.points[1:])
		b.points = b.points[:b.depth-1]
	}
	b.points = append(b.points, p)
	b.evictStale(p.Timestamp)
}

// evictStale drops samples older than the age limit relative to now.
func (b *Buffer) evictStale(now int64) {
	cut := 0
	for cut < len(b.points) && now-b.points[cut].Timestamp > b.maxAgeMs {
		cut++
	}
	if cut > 0 {
		copy(b.points, b.points[cut:])
		b.points = b.points[:len(b.points)-cut]
	}
}

// Len returns the number of buffered samples.
func (b *Buffer) Len() int {
	return len(b.points)
}

// Last returns the newest sample, if any.
func (b *Buffer) Last() (Point, bool) {
	if len(b.points) == 0 {
		return Point{}, false
	}
	return b.points[len(b.points)-1], true
}

// Snapshot returns a copy of the buffered samples, oldest first. The
// copy is safe to read outside the touch-handling call path.
func (b *Buffer) Snapshot() []Point {
	out := make([]Point, len(b.points))
	copy(out, b.points)
	return out
}

// Clear removes all buffered samples.
func (b *Buffer) Clear() {
	b.points = b.points[:0]
}

// AverageAmplitude returns the mean distance between consecutive
// samples. It is used by the adaptive direction threshold to estimate
// how wide the user's movements are. Returns 0 with fewer than two
// samples.
func (b *Buffer) AverageAmplitude() float64 {
	if len(b.points) < 2 {
		return 0
	}
	var total float64
	for i := 1; i < len(b.points); i++ {
		dx := b.points[i].X - b.points[i-1].X
		dy := b.points[i].Y - b.points[i-1].Y
		total += hypot(dx, dy)
	}
	return total / float64(len(b.points)-1)
}
