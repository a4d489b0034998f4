// Package plugin provides plugin management and execution capabilities for the Mudra gesture recognition system.
package plugin

import "encoding/json"

// Manifest describes a plugin's metadata and capabilities.
type Manifest struct {
	Name         string          `json:"name"`
	Version      string          `json:"version"`
	Description  string          `json:"description"`
	Executable   string          `json:"executable"`
	Actions      []string        `json:"actions"`
	ConfigSchema json.RawMessage `json:"configSchema,omitempty"`
}

// Event is the triggering gesture detail forwarded to a plugin.
type Event struct {
	Type           string  `json:"type"`
	Handedness     string  `json:"handedness"`
	Confidence     float64 `json:"confidence"`
	X              float64 `json:"x"`
	Y              float64 `json:"y"`
	Direction      string  `json:"direction,omitempty"`
	Distance       float64 `json:"distance,omitempty"`
	DistanceChange float64 `json:"distanceChange,omitempty"`
	Timestamp      int64   `json:"timestamp"`
}

// Request represents a request sent to a plugin for execution.
type Request struct {
	Action string          `json:"action"`
	Event  Event           `json:"event"`
	Config json.RawMessage `json:"config"`
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

// Supports reports whether the plugin's manifest declares the action.
func (p *Plugin) Supports(action string) bool {
	for _, a := range p.Manifest.Actions {
		if a == action {
			return true
		}
	}
	return false
}
