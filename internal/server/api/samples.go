package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/astralplayer/gesturekit/internal/action"
	"github.com/astralplayer/gesturekit/internal/engine"
	"github.com/astralplayer/gesturekit/internal/store"
	"github.com/astralplayer/gesturekit/internal/touch"
)

// SamplesHandler handles POST /api/gestures/{id}/samples, retraining a
// custom gesture's template from an additional recording of the same
// stroke. The stored template and the new sample are averaged, so
// repeated samples converge on the user's habitual shape.
type SamplesHandler struct {
	store   *store.Store
	engine  *engine.Engine
	trainer *action.Trainer
}

// NewSamplesHandler creates a new SamplesHandler.
func NewSamplesHandler(s *store.Store, e *engine.Engine) *SamplesHandler {
	return &SamplesHandler{store: s, engine: e, trainer: action.NewTrainer()}
}

type samplesRequest struct {
	Points []pointPayload `json:"points"`
}

// ServeHTTP implements the http.Handler interface.
func (h *SamplesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Expected path: /api/gestures/{id}/samples
	path := strings.TrimPrefix(r.URL.Path, "/api/gestures/")
	id := strings.TrimSuffix(path, "/samples")
	if id == "" || id == path {
		writeError(w, http.StatusNotFound, "Unknown samples path")
		return
	}

	var req samplesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if len(req.Points) < 2 {
		writeError(w, http.StatusBadRequest, "A sample needs at least 2 points")
		return
	}

	g, err := h.store.Gestures().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Gesture not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get gesture")
		return
	}

	sample := make([]touch.Point, len(req.Points))
	for i, p := range req.Points {
		sample[i] = touch.Point{X: p.X, Y: p.Y, Timestamp: p.TimestampMs}
	}

	template := make([]touch.Point, len(g.Points))
	for i, p := range g.Points {
		template[i] = touch.Point{X: p.X, Y: p.Y, Timestamp: p.TimestampMs}
	}

	averaged, err := h.trainer.Train([][]touch.Point{template, sample})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	replacement := make([]store.GesturePoint, len(averaged))
	for i, p := range averaged {
		replacement[i] = store.GesturePoint{Sequence: i, X: p.X, Y: p.Y, TimestampMs: p.Timestamp}
	}
	if err := h.store.Gestures().ReplacePoints(g.ID, replacement); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to store retrained points")
		return
	}

	g, err = h.store.Gestures().GetByID(g.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reload gesture")
		return
	}

	// Swap the live matcher entry for the retrained template.
	h.engine.Matcher().Remove(g.ID)
	h.engine.Matcher().Add(toMatcherGesture(g))

	writeJSON(w, http.StatusOK, toResponse(g))
}
