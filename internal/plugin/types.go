// Package plugin forwards resolved control actions to host plugins,
// small external executables that translate actions such as volume or
// brightness changes into platform calls.
package plugin

import "encoding/json"

// Manifest describes a plugin's metadata and the action kinds it
// handles. Action names use the engine's storage names, for example
// "set_volume" or "toggle_play_pause".
type Manifest struct {
	Name         string          `json:"name"`
	Version      string          `json:"version"`
	Description  string          `json:"description"`
	Executable   string          `json:"executable"`
	Actions      []string        `json:"actions"`
	ConfigSchema json.RawMessage `json:"configSchema,omitempty"`
}

// Request is one resolved action sent to a plugin for execution.
type Request struct {
	Action   string          `json:"action"`
	Amount   float64         `json:"amount"`
	CustomID string          `json:"customId,omitempty"`
	Config   json.RawMessage `json:"config,omitempty"`
}

// Response represents the response from a plugin execution.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Plugin represents a discovered plugin with its manifest and location.
type Plugin struct {
	Manifest   Manifest
	Path       string
	Executable string
}

// Handles reports whether the plugin's manifest lists the action kind.
func (p *Plugin) Handles(kind string) bool {
	for _, a := range p.Manifest.Actions {
		if a == kind {
			return true
		}
	}
	return false
}
