package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/astralplayer/gesturekit/internal/action"
	"github.com/astralplayer/gesturekit/internal/engine"
	"github.com/astralplayer/gesturekit/internal/store"
)

// RecordingHandler handles POST /api/recording, starting and stopping a
// custom gesture recording session. A stopped recording is persisted
// and registered with the live matcher.
type RecordingHandler struct {
	engine *engine.Engine
	store  *store.Store
}

// NewRecordingHandler creates a new RecordingHandler. The store may be
// nil, in which case recordings live only in memory.
func NewRecordingHandler(e *engine.Engine, s *store.Store) *RecordingHandler {
	return &RecordingHandler{engine: e, store: s}
}

type recordingRequest struct {
	// Command is "start" or "stop".
	Command string `json:"command"`
	// Name names the gesture on start.
	Name string `json:"name,omitempty"`
}

// ServeHTTP implements the http.Handler interface.
func (h *RecordingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]bool{"recording": h.engine.Recording()})
		return
	case http.MethodPost:
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req recordingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	switch req.Command {
	case "start":
		h.start(w, req.Name)
	case "stop":
		h.stop(w)
	default:
		writeError(w, http.StatusBadRequest, "Command must be start or stop")
	}
}

func (h *RecordingHandler) start(w http.ResponseWriter, name string) {
	if err := h.engine.StartRecording(name); err != nil {
		if errors.Is(err, action.ErrAlreadyRecording) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"recording": true})
}

func (h *RecordingHandler) stop(w http.ResponseWriter) {
	g, err := h.engine.StopRecording()
	if err != nil {
		switch {
		case errors.Is(err, action.ErrNotRecording):
			writeError(w, http.StatusConflict, err.Error())
		case errors.Is(err, action.ErrEmptyRecording):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "Failed to stop recording")
		}
		return
	}

	stored := &store.CustomGesture{
		ID:         g.ID,
		Name:       g.Name,
		ActionKind: g.Action.Kind.String(),
		Tolerance:  action.DefaultMatchTolerance,
		Points:     make([]store.GesturePoint, len(g.Points)),
	}
	for i, p := range g.Points {
		stored.Points[i] = store.GesturePoint{Sequence: i, X: p.X, Y: p.Y, TimestampMs: p.Timestamp}
	}

	if h.store != nil {
		if err := h.store.Gestures().Create(stored); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to save gesture")
			return
		}
	}

	writeJSON(w, http.StatusCreated, toResponse(stored))
}
