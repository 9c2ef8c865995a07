// Package api provides HTTP API handlers for the GestureKit engine.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/astralplayer/gesturekit/internal/action"
	"github.com/astralplayer/gesturekit/internal/engine"
	"github.com/astralplayer/gesturekit/internal/store"
	"github.com/astralplayer/gesturekit/internal/touch"
)

// GestureHandler handles HTTP requests for custom gesture resources.
type GestureHandler struct {
	store  *store.Store
	engine *engine.Engine
}

// NewGestureHandler creates a new GestureHandler.
func NewGestureHandler(s *store.Store, e *engine.Engine) *GestureHandler {
	return &GestureHandler{store: s, engine: e}
}

// ServeHTTP implements the http.Handler interface and routes requests to appropriate methods.
func (h *GestureHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected paths: /api/gestures or /api/gestures/{id}
	path := strings.TrimPrefix(r.URL.Path, "/api/gestures")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request and response types

type pointPayload struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	TimestampMs int64   `json:"timestampMs"`
}

type createGestureRequest struct {
	Name      string         `json:"name"`
	Tolerance float64        `json:"tolerance"`
	Points    []pointPayload `json:"points"`
}

type gestureResponse struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	ActionKind   string         `json:"actionKind"`
	ActionAmount float64        `json:"actionAmount"`
	Tolerance    float64        `json:"tolerance"`
	Points       []pointPayload `json:"points"`
	CreatedAt    string         `json:"created_at"`
	UpdatedAt    string         `json:"updated_at"`
}

type listGesturesResponse struct {
	Gestures []gestureResponse `json:"gestures"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// toResponse converts a store.CustomGesture to a gestureResponse.
func toResponse(g *store.CustomGesture) gestureResponse {
	points := make([]pointPayload, len(g.Points))
	for i, p := range g.Points {
		points[i] = pointPayload{X: p.X, Y: p.Y, TimestampMs: p.TimestampMs}
	}
	return gestureResponse{
		ID:           g.ID,
		Name:         g.Name,
		ActionKind:   g.ActionKind,
		ActionAmount: g.ActionAmount,
		Tolerance:    g.Tolerance,
		Points:       points,
		CreatedAt:    g.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:    g.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// list handles GET /api/gestures and returns all custom gestures.
func (h *GestureHandler) list(w http.ResponseWriter, r *http.Request) {
	gestures, err := h.store.Gestures().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list gestures")
		return
	}

	response := listGesturesResponse{
		Gestures: make([]gestureResponse, 0, len(gestures)),
	}
	for _, g := range gestures {
		response.Gestures = append(response.Gestures, toResponse(g))
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/gestures/{id} and returns a single gesture.
func (h *GestureHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	g, err := h.store.Gestures().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Gesture not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get gesture")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(g))
}

// create handles POST /api/gestures and creates a gesture from an
// explicit point path, bypassing live recording.
func (h *GestureHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createGestureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}
	if len(req.Points) < 2 {
		writeError(w, http.StatusBadRequest, "At least two points are required")
		return
	}

	tolerance := req.Tolerance
	if tolerance == 0 {
		tolerance = action.DefaultMatchTolerance
	}

	g := &store.CustomGesture{
		ID:         uuid.New().String(),
		Name:       req.Name,
		ActionKind: action.KindNone.String(),
		Tolerance:  tolerance,
		Points:     make([]store.GesturePoint, len(req.Points)),
	}
	for i, p := range req.Points {
		g.Points[i] = store.GesturePoint{Sequence: i, X: p.X, Y: p.Y, TimestampMs: p.TimestampMs}
	}

	if err := h.store.Gestures().Create(g); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create gesture")
		return
	}

	h.engine.Matcher().Add(toMatcherGesture(g))

	writeJSON(w, http.StatusCreated, toResponse(g))
}

// delete handles DELETE /api/gestures/{id} and removes a gesture from
// both the store and the live matcher.
func (h *GestureHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	err := h.store.Gestures().Delete(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Gesture not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete gesture")
		return
	}

	h.engine.Matcher().Remove(id)

	w.WriteHeader(http.StatusNoContent)
}

// toMatcherGesture converts a stored gesture into the matcher's form.
func toMatcherGesture(g *store.CustomGesture) *action.CustomGesture {
	points := make([]touch.Point, len(g.Points))
	for i, p := range g.Points {
		points[i] = touch.Point{X: p.X, Y: p.Y, Timestamp: p.TimestampMs}
	}

	kind, err := action.ParseKind(g.ActionKind)
	if err != nil {
		kind = action.KindNone
	}
	a := action.Action{Kind: kind, Amount: g.ActionAmount}
	if kind == action.KindCustom {
		a.CustomID = g.ID
	}
	return &action.CustomGesture{
		ID:     g.ID,
		Name:   g.Name,
		Points: points,
		Action: a,
	}
}
