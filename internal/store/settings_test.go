package store

import (
	"errors"
	"testing"
)

func TestSettings_SetAndGet(t *testing.T) {
	s := newTestStore(t)
	settings := s.Settings()

	if err := settings.Set("camera.index", "1"); err != nil {
		t.Fatalf("failed to set: %v", err)
	}

	value, err := settings.Get("camera.index")
	if err != nil {
		t.Fatalf("failed to get: %v", err)
	}
	if value != "1" {
		t.Errorf("value = %q, want %q", value, "1")
	}
}

func TestSettings_SetOverwrites(t *testing.T) {
	s := newTestStore(t)
	settings := s.Settings()

	settings.Set("camera.index", "0")
	if err := settings.Set("camera.index", "2"); err != nil {
		t.Fatalf("failed to overwrite: %v", err)
	}

	value, err := settings.Get("camera.index")
	if err != nil {
		t.Fatalf("failed to get: %v", err)
	}
	if value != "2" {
		t.Errorf("value = %q, want %q", value, "2")
	}
}

func TestSettings_GetMissing(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Settings().Get("no-such-key")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestSettings_Delete(t *testing.T) {
	s := newTestStore(t)
	settings := s.Settings()

	settings.Set("stale", "x")
	if err := settings.Delete("stale"); err != nil {
		t.Fatalf("failed to delete: %v", err)
	}
	if _, err := settings.Get("stale"); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted key still readable, err = %v", err)
	}

	if err := settings.Delete("stale"); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleting a missing key: err = %v, want ErrNotFound", err)
	}
}

func TestSettings_JSONRoundTrip(t *testing.T) {
	s := newTestStore(t)
	settings := s.Settings()

	type tunables struct {
		PinchThreshold float64 `json:"pinchThreshold"`
		DebounceMs     int64   `json:"debounceMs"`
	}

	in := tunables{PinchThreshold: 0.04, DebounceMs: 500}
	if err := settings.SetJSON("engine.config", in); err != nil {
		t.Fatalf("failed to set JSON: %v", err)
	}

	var out tunables
	if err := settings.GetJSON("engine.config", &out); err != nil {
		t.Fatalf("failed to get JSON: %v", err)
	}
	if out != in {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}

func TestSettings_GetJSONInvalid(t *testing.T) {
	s := newTestStore(t)
	settings := s.Settings()

	settings.Set("broken", "{not json")

	var out map[string]any
	if err := settings.GetJSON("broken", &out); err == nil {
		t.Error("expected an error for malformed JSON")
	}
}
