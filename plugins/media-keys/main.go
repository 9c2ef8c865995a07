// Package main provides a media key plugin for macOS.
// It translates playback actions into media key presses via
// AppleScript.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
)

// Request is one resolved action delivered by the plugin executor.
type Request struct {
	Action   string          `json:"action"`
	Amount   float64         `json:"amount"`
	CustomID string          `json:"customId,omitempty"`
	Config   json.RawMessage `json:"config,omitempty"`
}

// Response represents the output to the plugin executor.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// keyCodes maps playback actions to macOS media key codes.
// 100 is F8/Play-Pause, 101 is F9/Next, 98 is F7/Previous.
var keyCodes = map[string]int{
	"toggle_play_pause": 100,
	"next_track":        101,
	"prev_track":        98,
}

func main() {
	var req Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		writeErrorResponse(fmt.Sprintf("failed to decode request: %v", err))
		return
	}

	code, ok := keyCodes[req.Action]
	if !ok {
		writeErrorResponse(fmt.Sprintf("unknown action: %s", req.Action))
		return
	}

	if err := pressKey(code); err != nil {
		writeErrorResponse(fmt.Sprintf("action %s failed: %v", req.Action, err))
		return
	}

	writeSuccessResponse()
}

// pressKey sends a single media key press through System Events.
func pressKey(code int) error {
	script := fmt.Sprintf(`tell application "System Events"
	key code %d
end tell`, code)

	cmd := exec.Command("osascript", "-e", script)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, string(output))
	}
	return nil
}

// writeErrorResponse writes an error response to stdout.
func writeErrorResponse(errMsg string) {
	resp := Response{
		Success: false,
		Error:   errMsg,
	}
	json.NewEncoder(os.Stdout).Encode(resp)
}

// writeSuccessResponse writes a success response to stdout.
func writeSuccessResponse() {
	resp := Response{
		Success: true,
	}
	json.NewEncoder(os.Stdout).Encode(resp)
}
