package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/astralplayer/gesturekit/internal/engine"
	"github.com/astralplayer/gesturekit/internal/store"
)

func TestAPI_GestureWorkflow(t *testing.T) {
	// Setup
	tmpDir := t.TempDir()
	s, _ := store.New(filepath.Join(tmpDir, "test.db"))
	defer s.Close()

	e := engine.New(engine.Options{})
	e.SetViewport(1080, 1920)

	srv := New(Config{Store: s, Engine: e})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	client := ts.Client()

	// 1. Create a gesture from an explicit path
	createBody := `{
		"name": "corner",
		"points": [
			{"x": 400, "y": 400, "timestampMs": 0},
			{"x": 500, "y": 400, "timestampMs": 50},
			{"x": 600, "y": 400, "timestampMs": 100},
			{"x": 600, "y": 500, "timestampMs": 150},
			{"x": 600, "y": 600, "timestampMs": 200},
			{"x": 600, "y": 600, "timestampMs": 250}
		]
	}`
	resp, err := client.Post(ts.URL+"/api/gestures", "application/json", bytes.NewBufferString(createBody))
	if err != nil {
		t.Fatalf("POST /api/gestures error = %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("POST status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}

	var created struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	json.NewDecoder(resp.Body).Decode(&created)
	resp.Body.Close()

	if created.Name != "corner" {
		t.Errorf("created name = %s, want corner", created.Name)
	}

	// 2. Bind an action to it
	bindBody := `{"actionKind": "toggle_mute"}`
	resp, err = client.Post(ts.URL+"/api/gestures/"+created.ID+"/bind", "application/json", bytes.NewBufferString(bindBody))
	if err != nil {
		t.Fatalf("POST bind error = %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("bind status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	resp.Body.Close()

	// 3. Replay the shape through the events endpoint and expect the
	// bound action instead of the built-in seek.
	eventsBody := `{"events": [
		{"kind": "down", "pointerId": 1, "x": 400, "y": 400, "timestamp": 0},
		{"kind": "move", "pointerId": 1, "x": 500, "y": 400, "timestamp": 50},
		{"kind": "move", "pointerId": 1, "x": 600, "y": 400, "timestamp": 100},
		{"kind": "move", "pointerId": 1, "x": 600, "y": 500, "timestamp": 150},
		{"kind": "move", "pointerId": 1, "x": 600, "y": 600, "timestamp": 200},
		{"kind": "up",   "pointerId": 1, "x": 600, "y": 600, "timestamp": 250}
	]}`
	resp, err = client.Post(ts.URL+"/api/events", "application/json", bytes.NewBufferString(eventsBody))
	if err != nil {
		t.Fatalf("POST /api/events error = %v", err)
	}
	var result struct {
		Actions []struct {
			Kind string `json:"kind"`
		} `json:"actions"`
	}
	json.NewDecoder(resp.Body).Decode(&result)
	resp.Body.Close()

	if len(result.Actions) != 1 || result.Actions[0].Kind != "toggle_mute" {
		t.Fatalf("expected bound toggle_mute action, got %+v", result.Actions)
	}

	// 4. Delete it
	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/api/gestures/"+created.ID, nil)
	resp, _ = client.Do(req)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("DELETE status = %d, want %d", resp.StatusCode, http.StatusNoContent)
	}
	resp.Body.Close()

	// 5. Verify deleted
	resp, _ = client.Get(ts.URL + "/api/gestures/" + created.ID)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("GET after delete status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
	resp.Body.Close()
}

func TestAPI_HealthCheck(t *testing.T) {
	srv := New(Config{})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	resp, err := ts.Client().Get(ts.URL + "/api/health")
	if err != nil {
		t.Fatalf("GET /api/health error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var health struct {
		Status string `json:"status"`
		Uptime string `json:"uptime"`
	}
	json.NewDecoder(resp.Body).Decode(&health)

	if health.Status != "ok" {
		t.Errorf("status = %s, want ok", health.Status)
	}
}

func TestWS_StateBroadcast(t *testing.T) {
	e := engine.New(engine.Options{})
	e.SetViewport(1080, 1920)

	srv := New(Config{Engine: e})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/state"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("websocket dial error = %v", err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("websocket read error = %v", err)
	}

	var payload struct {
		State struct {
			Active bool `json:"active"`
		} `json:"state"`
		Timestamp int64 `json:"timestamp"`
	}
	if err := json.Unmarshal(msg, &payload); err != nil {
		t.Fatalf("failed to decode broadcast: %v", err)
	}
	if payload.Timestamp == 0 {
		t.Error("broadcast should carry a timestamp")
	}
}
