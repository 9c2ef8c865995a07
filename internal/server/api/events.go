package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/astralplayer/gesturekit/internal/engine"
	"github.com/astralplayer/gesturekit/internal/touch"
)

// EventsHandler accepts raw pointer events over HTTP and feeds them to
// the engine. It exists for hosts without a native input bridge and for
// exercising the pipeline end to end.
type EventsHandler struct {
	engine *engine.Engine
}

// NewEventsHandler creates a new EventsHandler for the given engine.
func NewEventsHandler(e *engine.Engine) *EventsHandler {
	return &EventsHandler{engine: e}
}

type pointerEventPayload struct {
	Kind      string  `json:"kind"`
	PointerID int64   `json:"pointerId"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Timestamp int64   `json:"timestamp"`
}

type eventsRequest struct {
	// Viewport, when present, updates the engine viewport before the
	// events are processed.
	ViewportW float64               `json:"viewportW,omitempty"`
	ViewportH float64               `json:"viewportH,omitempty"`
	Events    []pointerEventPayload `json:"events"`
}

type actionPayload struct {
	Kind     string  `json:"kind"`
	Amount   float64 `json:"amount"`
	CustomID string  `json:"customId,omitempty"`
}

type eventsResponse struct {
	Actions []actionPayload `json:"actions"`
}

// ServeHTTP implements the http.Handler interface.
func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req eventsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.ViewportW > 0 && req.ViewportH > 0 {
		h.engine.SetViewport(req.ViewportW, req.ViewportH)
	}

	response := eventsResponse{Actions: []actionPayload{}}
	for _, p := range req.Events {
		kind, err := parseEventKind(p.Kind)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		actions := h.engine.ProcessEvent(touch.PointerEvent{
			Kind:      kind,
			PointerID: p.PointerID,
			X:         p.X,
			Y:         p.Y,
			Timestamp: p.Timestamp,
		})
		for _, a := range actions {
			response.Actions = append(response.Actions, actionPayload{
				Kind:     a.Kind.String(),
				Amount:   a.Amount,
				CustomID: a.CustomID,
			})
		}
	}

	writeJSON(w, http.StatusOK, response)
}

func parseEventKind(s string) (touch.EventKind, error) {
	switch s {
	case "down":
		return touch.EventDown, nil
	case "move":
		return touch.EventMove, nil
	case "up":
		return touch.EventUp, nil
	case "cancel":
		return touch.EventCancel, nil
	default:
		return 0, fmt.Errorf("unknown event kind %q", s)
	}
}
