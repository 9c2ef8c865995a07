package action

import (
	"errors"
	"testing"

	"github.com/astralplayer/gesturekit/internal/touch"
)

func TestRecorder_CapturesRelativeTimestamps(t *testing.T) {
	r := NewRecorder()

	if err := r.Start("circle"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r.Record(touch.Point{X: 100, Y: 100, Timestamp: 5000})
	r.Record(touch.Point{X: 150, Y: 120, Timestamp: 5040})
	r.Record(touch.Point{X: 200, Y: 100, Timestamp: 5090})

	g, err := r.Stop()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if g.Name != "circle" {
		t.Errorf("expected name 'circle', got %q", g.Name)
	}
	if g.ID == "" {
		t.Error("expected a generated ID")
	}
	if len(g.Points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(g.Points))
	}

	// Timestamps are relative to recording start
	wantTs := []int64{0, 40, 90}
	for i, p := range g.Points {
		if p.Timestamp != wantTs[i] {
			t.Errorf("point %d: expected relative timestamp %d, got %d", i, wantTs[i], p.Timestamp)
		}
	}
}

func TestRecorder_StopLeavesActionUnbound(t *testing.T) {
	r := NewRecorder()

	r.Start("swipe-m")
	r.Record(touch.Point{X: 0, Y: 0, Timestamp: 0})
	r.Record(touch.Point{X: 50, Y: 50, Timestamp: 20})

	g, err := r.Stop()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Recording captures shape; binding assigns meaning later
	if g.Action.Kind != KindNone {
		t.Errorf("freshly recorded gesture should have no action, got %s", g.Action)
	}
}

func TestRecorder_DoubleStartFails(t *testing.T) {
	r := NewRecorder()

	r.Start("first")
	if err := r.Start("second"); !errors.Is(err, ErrAlreadyRecording) {
		t.Errorf("expected ErrAlreadyRecording, got %v", err)
	}
}

func TestRecorder_StopWithoutStartFails(t *testing.T) {
	r := NewRecorder()

	if _, err := r.Stop(); !errors.Is(err, ErrNotRecording) {
		t.Errorf("expected ErrNotRecording, got %v", err)
	}
}

func TestRecorder_EmptyRecordingFails(t *testing.T) {
	r := NewRecorder()

	r.Start("nothing")
	if _, err := r.Stop(); !errors.Is(err, ErrEmptyRecording) {
		t.Errorf("expected ErrEmptyRecording, got %v", err)
	}

	// The failed session is over; a new one can start
	if err := r.Start("again"); err != nil {
		t.Errorf("expected recorder to be reusable, got %v", err)
	}
}

func TestRecorder_RequiresName(t *testing.T) {
	r := NewRecorder()

	if err := r.Start(""); err == nil {
		t.Error("expected error for empty gesture name")
	}
}

func TestRecorder_IgnoresPointsWhenIdle(t *testing.T) {
	r := NewRecorder()

	r.Record(touch.Point{X: 1, Y: 1, Timestamp: 10})

	r.Start("shape")
	r.Record(touch.Point{X: 0, Y: 0, Timestamp: 100})
	r.Record(touch.Point{X: 10, Y: 10, Timestamp: 120})
	g, err := r.Stop()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(g.Points) != 2 {
		t.Errorf("points recorded while idle should be dropped, got %d points", len(g.Points))
	}
}
