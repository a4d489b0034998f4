package plugin

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

func TestPlugin_SceneControl_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	pluginDir := findPluginDir("scene-control")
	if pluginDir == "" {
		t.Skip("scene-control plugin not built")
	}
	if _, err := os.Stat(filepath.Join(pluginDir, "scene-control")); err != nil {
		t.Skip("scene-control binary not built")
	}

	mgr := NewManager(filepath.Dir(pluginDir))
	if err := mgr.Discover(); err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	plug, err := mgr.Get("scene-control")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	executor := NewExecutor(5 * time.Second)

	// An undeclared action must fail without touching the scene host.
	req := &Request{
		Action: "invalid-action",
		Event:  Event{Type: "CLAP", Handedness: "Both", Confidence: 0.9},
	}

	resp, err := executor.Execute(t.Context(), plug, req)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if resp.Success {
		t.Error("expected failure for invalid action")
	}
}

func TestPlugin_Keyboard_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	if runtime.GOOS != "darwin" {
		t.Skip("keyboard plugin only works on macOS")
	}

	pluginDir := findPluginDir("keyboard")
	if pluginDir == "" {
		t.Skip("keyboard plugin not built")
	}
	if _, err := os.Stat(filepath.Join(pluginDir, "keyboard")); err != nil {
		t.Skip("keyboard binary not built")
	}

	mgr := NewManager(filepath.Dir(pluginDir))
	mgr.Discover()

	plug, err := mgr.Get("keyboard")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	executor := NewExecutor(5 * time.Second)

	// Missing key in the binding config must fail cleanly.
	req := &Request{
		Action: "keystroke",
		Event:  Event{Type: "PINCH", Handedness: "Right", Confidence: 0.95},
		Config: json.RawMessage(`{"key": ""}`),
	}

	resp, err := executor.Execute(t.Context(), plug, req)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if resp.Success {
		t.Error("expected failure for empty key")
	}
}

func findPluginDir(name string) string {
	candidates := []string{
		filepath.Join("../../plugins", name),
		filepath.Join("../../../plugins", name),
	}

	for _, dir := range candidates {
		manifest := filepath.Join(dir, "plugin.json")
		if _, err := os.Stat(manifest); err == nil {
			return dir
		}
	}
	return ""
}
