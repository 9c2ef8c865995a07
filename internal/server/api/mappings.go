package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/astralplayer/gesturekit/internal/action"
	"github.com/astralplayer/gesturekit/internal/engine"
	"github.com/astralplayer/gesturekit/internal/gesture"
	"github.com/astralplayer/gesturekit/internal/store"
)

// MappingHandler handles HTTP requests for gesture-to-action mapping
// overrides. Writes go to the store and the live mapper together so a
// restart reproduces the running configuration.
type MappingHandler struct {
	store  *store.Store
	engine *engine.Engine
}

// NewMappingHandler creates a new MappingHandler.
func NewMappingHandler(s *store.Store, e *engine.Engine) *MappingHandler {
	return &MappingHandler{store: s, engine: e}
}

// ServeHTTP implements the http.Handler interface and routes requests to appropriate methods.
func (h *MappingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected paths: /api/mappings or /api/mappings/{zone}/{type}
	path := strings.TrimPrefix(r.URL.Path, "/api/mappings")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPut:
			h.upsert(w, r)
		case http.MethodDelete:
			h.reset(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	parts := strings.Split(path, "/")
	if len(parts) != 2 {
		writeError(w, http.StatusNotFound, "Unknown mapping path")
		return
	}

	switch r.Method {
	case http.MethodDelete:
		h.delete(w, r, parts[0], parts[1])
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

type mappingPayload struct {
	Zone         string  `json:"zone"`
	GestureType  string  `json:"gestureType"`
	ActionKind   string  `json:"actionKind"`
	ActionAmount float64 `json:"actionAmount"`
}

type listMappingsResponse struct {
	Overrides []mappingPayload `json:"overrides"`
}

// parseKey validates the zone and gesture type names of a payload.
func parseKey(zone, gestureType string) (action.Key, error) {
	z, err := gesture.ParseZone(zone)
	if err != nil {
		return action.Key{}, err
	}
	t, err := gesture.ParseType(gestureType)
	if err != nil {
		return action.Key{}, err
	}
	return action.Key{Zone: z, Type: t}, nil
}

// list handles GET /api/mappings and returns the stored overrides.
func (h *MappingHandler) list(w http.ResponseWriter, r *http.Request) {
	overrides, err := h.store.Mappings().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list mappings")
		return
	}

	response := listMappingsResponse{
		Overrides: make([]mappingPayload, 0, len(overrides)),
	}
	for _, m := range overrides {
		response.Overrides = append(response.Overrides, mappingPayload{
			Zone:         m.Zone,
			GestureType:  m.GestureType,
			ActionKind:   m.ActionKind,
			ActionAmount: m.ActionAmount,
		})
	}

	writeJSON(w, http.StatusOK, response)
}

// upsert handles PUT /api/mappings and binds an action to a gesture.
func (h *MappingHandler) upsert(w http.ResponseWriter, r *http.Request) {
	var req mappingPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	key, err := parseKey(req.Zone, req.GestureType)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	kind, err := action.ParseKind(req.ActionKind)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	m := &store.MappingOverride{
		Zone:         req.Zone,
		GestureType:  req.GestureType,
		ActionKind:   req.ActionKind,
		ActionAmount: req.ActionAmount,
	}
	if err := h.store.Mappings().Upsert(m); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save mapping")
		return
	}

	h.engine.Mapper().SetOverride(key, action.Action{Kind: kind, Amount: req.ActionAmount})

	writeJSON(w, http.StatusOK, req)
}

// delete handles DELETE /api/mappings/{zone}/{type} and restores the
// built-in default for that slot.
func (h *MappingHandler) delete(w http.ResponseWriter, r *http.Request, zone, gestureType string) {
	key, err := parseKey(zone, gestureType)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.store.Mappings().Delete(zone, gestureType); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Mapping not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete mapping")
		return
	}

	h.engine.Mapper().ClearOverride(key)

	w.WriteHeader(http.StatusNoContent)
}

// reset handles DELETE /api/mappings and drops all overrides.
func (h *MappingHandler) reset(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Mappings().DeleteAll(); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset mappings")
		return
	}

	h.engine.Mapper().ResetDefaults()

	w.WriteHeader(http.StatusNoContent)
}
