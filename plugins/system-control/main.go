// Package main provides a system control plugin for macOS.
// It applies volume, brightness and mute actions via AppleScript and
// the brightness CLI.
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

// actionHandler applies one action kind to the host.
type actionHandler func(req *Request) error

// actionHandlers maps action kinds to their handler functions.
var actionHandlers = map[string]actionHandler{
	"set_volume":     setVolume,
	"set_brightness": setBrightness,
	"toggle_mute":    toggleMute,
	"screenshot":     screenshot,
}

func main() {
	var req Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		writeErrorResponse(fmt.Sprintf("failed to decode request: %v", err))
		return
	}

	handler, ok := actionHandlers[req.Action]
	if !ok {
		writeErrorResponse(fmt.Sprintf("unknown action: %s", req.Action))
		return
	}

	if err := handler(&req); err != nil {
		writeErrorResponse(fmt.Sprintf("action %s failed: %v", req.Action, err))
		return
	}

	writeSuccessResponse()
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

// runAppleScript executes an AppleScript command and returns any error.
func runAppleScript(script string) error {
	cmd := exec.Command("osascript", "-e", script)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, string(output))
	}
	return nil
}

// setVolume sets the system output volume. The amount is the absolute
// level in [0, 1].
func setVolume(req *Request) error {
	percent := int(clamp01(req.Amount) * 100)
	return runAppleScript(fmt.Sprintf("set volume output volume %d", percent))
}

// setBrightness sets the display brightness through the brightness
// CLI. The amount is the absolute level in [0, 1].
func setBrightness(req *Request) error {
	cmd := exec.Command("brightness", fmt.Sprintf("%.2f", clamp01(req.Amount)))
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, string(output))
	}
	return nil
}

// toggleMute flips the system mute state.
func toggleMute(*Request) error {
	return runAppleScript(`set volume output muted (not (output muted of (get volume settings)))`)
}

// screenshot captures the screen to the user's desktop.
func screenshot(*Request) error {
	cmd := exec.Command("screencapture", "-x", os.ExpandEnv("$HOME/Desktop/gesturekit-capture.png"))
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, string(output))
	}
	return nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
