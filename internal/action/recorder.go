package action

import (
	"errors"
	"fmt"
	"sync"

	"github.com/astralplayer/gesturekit/internal/touch"
	"github.com/google/uuid"
)

// Recording errors.
var (
	// ErrAlreadyRecording is returned when a recording session is
	// already in progress.
	ErrAlreadyRecording = errors.New("recording already in progress")
	// ErrNotRecording is returned when no recording session is active.
	ErrNotRecording = errors.New("no recording in progress")
	// ErrEmptyRecording is returned when a recording captured too few
	// points to be usable as a gesture shape.
	ErrEmptyRecording = errors.New("recording captured too few points")
)

// minRecordedPoints is the smallest path that still describes a shape.
const minRecordedPoints = 2

// CustomGesture is a user-recorded touch-point sequence with an
// optional bound action. Recording captures shape; binding assigns
// meaning. The two are deliberately decoupled so one recorded shape can
// be rebound without re-recording.
type CustomGesture struct {
	ID     string
	Name   string
	Points []touch.Point
	Action Action
}

// Recorder captures raw touch points into a named custom gesture.
// Point timestamps are stored relative to the recording start.
type Recorder struct {
	mu        sync.Mutex
	recording bool
	name      string
	startTs   int64
	points    []touch.Point
}

// NewRecorder creates an idle Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Recording reports whether a session is in progress.
func (r *Recorder) Recording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recording
}

// Start begins a recording session for a named gesture.
func (r *Recorder) Start(name string) error {
	if name == "" {
		return fmt.Errorf("recording: gesture name is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.recording {
		return ErrAlreadyRecording
	}
	r.recording = true
	r.name = name
	r.startTs = 0
	r.points = r.points[:0]
	return nil
}

// Record appends a touch point to the active session. Points recorded
// while no session is active are silently dropped.
func (r *Recorder) Record(p touch.Point) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.recording {
		return
	}
	if len(r.points) == 0 {
		r.startTs = p.Timestamp
	}
	r.points = append(r.points, touch.Point{
		X:         p.X,
		Y:         p.Y,
		Timestamp: p.Timestamp - r.startTs,
	})
}

// Stop finalizes the session into a CustomGesture with a fresh ID and
// an empty action. The caller binds an action separately.
func (r *Recorder) Stop() (*CustomGesture, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.recording {
		return nil, ErrNotRecording
	}
	r.recording = false

	if len(r.points) < minRecordedPoints {
		return nil, ErrEmptyRecording
	}

	points := make([]touch.Point, len(r.points))
	copy(points, r.points)

	return &CustomGesture{
		ID:     uuid.NewString(),
		Name:   r.name,
		Points: points,
		Action: Action{Kind: KindNone},
	}, nil
}
