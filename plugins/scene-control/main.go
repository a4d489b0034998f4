// Package main provides a scene control plugin.
// It forwards gesture-driven scene commands (zoom, physics toggle, object
// selection) as JSON messages to a scene host listening on a local socket.
package main

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"time"
)

const defaultAddr = "127.0.0.1:7521"

// Request represents the input from the plugin executor.
type Request struct {
	Action string          `json:"action"`
	Event  Event           `json:"event"`
	Config json.RawMessage `json:"config"`
}

// Event carries the gesture that triggered the action.
type Event struct {
	Type           string  `json:"type"`
	Handedness     string  `json:"handedness"`
	Confidence     float64 `json:"confidence"`
	X              float64 `json:"x"`
	Y              float64 `json:"y"`
	Direction      string  `json:"direction,omitempty"`
	DistanceChange float64 `json:"distanceChange,omitempty"`
	Timestamp      int64   `json:"timestamp"`
}

// Response represents the output to the plugin executor.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// SceneConfig defines the binding configuration for scene commands.
type SceneConfig struct {
	Addr string `json:"addr"` // scene host address, host:port
}

// Command is the message written to the scene host.
type Command struct {
	Command    string  `json:"command"`
	Amount     float64 `json:"amount,omitempty"`
	X          float64 `json:"x,omitempty"`
	Y          float64 `json:"y,omitempty"`
	Handedness string  `json:"handedness,omitempty"`
	Timestamp  int64   `json:"timestamp"`
}

func main() {
	var req Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		writeErrorResponse(fmt.Sprintf("failed to decode request: %v", err))
		return
	}

	cmd, err := buildCommand(&req)
	if err != nil {
		writeErrorResponse(err.Error())
		return
	}

	addr := defaultAddr
	if len(req.Config) > 0 {
		var c SceneConfig
		if err := json.Unmarshal(req.Config, &c); err != nil {
			writeErrorResponse(fmt.Sprintf("failed to parse config: %v", err))
			return
		}
		if c.Addr != "" {
			addr = c.Addr
		}
	}

	if err := sendCommand(addr, cmd); err != nil {
		writeErrorResponse(fmt.Sprintf("action %s failed: %v", req.Action, err))
		return
	}

	writeSuccessResponse()
}

// buildCommand maps a plugin action and its triggering gesture onto a scene
// command. Zoom amount comes from the gesture's separation change so a wider
// stretch zooms further.
func buildCommand(req *Request) (*Command, error) {
	cmd := &Command{
		Handedness: req.Event.Handedness,
		Timestamp:  req.Event.Timestamp,
	}

	switch req.Action {
	case "zoom-in", "zoom-out":
		cmd.Command = req.Action
		cmd.Amount = req.Event.DistanceChange
		if cmd.Amount < 0 {
			cmd.Amount = -cmd.Amount
		}
	case "toggle-physics":
		cmd.Command = "toggle-physics"
	case "reset-scene":
		cmd.Command = "reset-scene"
	case "select-object":
		cmd.Command = "select-object"
		cmd.X = req.Event.X
		cmd.Y = req.Event.Y
	default:
		return nil, fmt.Errorf("unknown action: %s", req.Action)
	}

	return cmd, nil
}

// sendCommand writes one JSON command to the scene host.
func sendCommand(addr string, cmd *Command) error {
	conn, err := net.DialTimeout("tcp", addr, 2*time.Second)
	if err != nil {
		return fmt.Errorf("scene host unreachable: %w", err)
	}
	defer conn.Close()

	conn.SetWriteDeadline(time.Now().Add(2 * time.Second))
	if err := json.NewEncoder(conn).Encode(cmd); err != nil {
		return fmt.Errorf("failed to send command: %w", err)
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
