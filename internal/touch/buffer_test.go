package touch

import "testing"

func TestBuffer_DepthEviction(t *testing.T) {
	b := NewBuffer(5, 10000)

	// Add more points than the depth allows
	for i := 0; i < 8; i++ {
		b.Add(Point{X: float64(i), Timestamp: int64(i * 10)})
	}

	if b.Len() != 5 {
		t.Fatalf("expected buffer length 5, got %d", b.Len())
	}

	// Oldest surviving point should be X=3 (points 0-2 evicted)
	snap := b.Snapshot()
	if snap[0].X != 3 {
		t.Errorf("expected oldest point X=3, got %f", snap[0].X)
	}
	if snap[len(snap)-1].X != 7 {
		t.Errorf("expected newest point X=7, got %f", snap[len(snap)-1].X)
	}
}

func TestBuffer_AgeEviction(t *testing.T) {
	b := NewBuffer(20, 500)

	b.Add(Point{X: 1, Timestamp: 0})
	b.Add(Point{X: 2, Timestamp: 100})
	b.Add(Point{X: 3, Timestamp: 700})

	// The point at t=0 is 700ms old relative to the newest sample and
	// must have been evicted. The point at t=100 is 600ms old, also out.
	if b.Len() != 1 {
		t.Fatalf("expected 1 point after age eviction, got %d", b.Len())
	}

	last, ok := b.Last()
	if !ok || last.X != 3 {
		t.Errorf("expected newest point X=3, got %+v ok=%v", last, ok)
	}
}

func TestBuffer_NeverGrowsUnbounded(t *testing.T) {
	b := NewBuffer(DefaultDepth, DefaultMaxAgeMs)

	for i := 0; i < 1000; i++ {
		b.Add(Point{X: float64(i), Timestamp: int64(i)})
	}

	if b.Len() > DefaultDepth {
		t.Errorf("buffer grew past depth: %d > %d", b.Len(), DefaultDepth)
	}
}

func TestBuffer_SnapshotIsCopy(t *testing.T) {
	b := NewBuffer(5, 10000)
	b.Add(Point{X: 1, Timestamp: 0})

	snap := b.Snapshot()
	snap[0].X = 99

	restored, _ := b.Last()
	if restored.X != 1 {
		t.Error("mutating a snapshot must not affect the buffer")
	}
}

func TestBuffer_Clear(t *testing.T) {
	b := NewBuffer(5, 10000)
	b.Add(Point{X: 1, Timestamp: 0})
	b.Add(Point{X: 2, Timestamp: 10})

	b.Clear()

	if b.Len() != 0 {
		t.Errorf("expected empty buffer after Clear, got %d points", b.Len())
	}
	if _, ok := b.Last(); ok {
		t.Error("Last should report no point after Clear")
	}
}

func TestBuffer_AverageAmplitude(t *testing.T) {
	b := NewBuffer(10, 10000)

	// Fewer than two points: amplitude is zero
	if amp := b.AverageAmplitude(); amp != 0 {
		t.Errorf("expected 0 amplitude for empty buffer, got %f", amp)
	}
	b.Add(Point{X: 0, Y: 0, Timestamp: 0})
	if amp := b.AverageAmplitude(); amp != 0 {
		t.Errorf("expected 0 amplitude for single point, got %f", amp)
	}

	// Two steps of 10px each: average is 10
	b.Add(Point{X: 10, Y: 0, Timestamp: 10})
	b.Add(Point{X: 20, Y: 0, Timestamp: 20})

	if amp := b.AverageAmplitude(); amp != 10 {
		t.Errorf("expected average amplitude 10, got %f", amp)
	}
}
