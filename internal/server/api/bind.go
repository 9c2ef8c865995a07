package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/astralplayer/gesturekit/internal/action"
	"github.com/astralplayer/gesturekit/internal/engine"
	"github.com/astralplayer/gesturekit/internal/store"
)

// BindHandler handles POST /api/gestures/{id}/bind, assigning an action
// to a recorded custom gesture. Recording captures shape; binding
// assigns meaning.
type BindHandler struct {
	store  *store.Store
	engine *engine.Engine
}

// NewBindHandler creates a new BindHandler.
func NewBindHandler(s *store.Store, e *engine.Engine) *BindHandler {
	return &BindHandler{store: s, engine: e}
}

type bindRequest struct {
	ActionKind   string  `json:"actionKind"`
	ActionAmount float64 `json:"actionAmount"`
}

// ServeHTTP implements the http.Handler interface.
func (h *BindHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Expected path: /api/gestures/{id}/bind
	path := strings.TrimPrefix(r.URL.Path, "/api/gestures/")
	id := strings.TrimSuffix(path, "/bind")
	if id == "" || id == path {
		writeError(w, http.StatusNotFound, "Unknown bind path")
		return
	}

	var req bindRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if _, err := action.ParseKind(req.ActionKind); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
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

	g.ActionKind = req.ActionKind
	g.ActionAmount = req.ActionAmount
	if err := h.store.Gestures().Update(g); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update gesture")
		return
	}

	// Replace the live matcher entry so the binding applies without a
	// restart.
	h.engine.Matcher().Remove(g.ID)
	h.engine.Matcher().Add(toMatcherGesture(g))

	writeJSON(w, http.StatusOK, toResponse(g))
}
