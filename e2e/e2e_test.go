package e2e

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/engine"
	"github.com/ayusman/mudra/internal/server"
	"github.com/ayusman/mudra/internal/store"
)

// TestE2E_CompleteWorkflow exercises the full application surface: a
// binding is created over the REST API, pinch landmarks flow through the
// engine, the recognized event lands in the store and is served back over
// the API, and config updates reach the running engine.
func TestE2E_CompleteWorkflow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test")
	}

	tmpDir := t.TempDir()

	s, err := store.New(filepath.Join(tmpDir, "data.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer s.Close()

	eng := engine.New(engine.DefaultConfig())
	defer eng.Close()

	application := app.New(app.Config{
		Store:     s,
		Engine:    eng,
		Camera:    capture.NewMockCamera(nil, true),
		PluginDir: filepath.Join(tmpDir, "plugins"),
	})
	application.SetDetector(detector.NewMockDetector())
	application.SetEnabled(true)

	srv := server.New(server.Config{Store: s, Engine: eng, Camera: application.Camera()})
	defer srv.Close()

	ts := httptest.NewServer(srv)
	defer ts.Close()

	client := ts.Client()

	t.Run("Health", func(t *testing.T) {
		resp, err := client.Get(ts.URL + "/api/health")
		if err != nil {
			t.Fatalf("health error = %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
		}
	})

	var bindingID string
	t.Run("CreateBinding", func(t *testing.T) {
		resp, err := client.Post(
			ts.URL+"/api/bindings",
			"application/json",
			strings.NewReader(`{"gesture_type": "PINCH", "handedness": "*", "plugin_name": "keyboard", "action_name": "keystroke"}`),
		)
		if err != nil {
			t.Fatalf("create binding error = %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusCreated)
		}

		var created struct {
			ID string `json:"id"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
			t.Fatalf("decode error = %v", err)
		}
		if created.ID == "" {
			t.Fatal("created binding has no ID")
		}
		bindingID = created.ID
	})

	t.Run("ListBindings", func(t *testing.T) {
		resp, err := client.Get(ts.URL + "/api/bindings")
		if err != nil {
			t.Fatalf("list bindings error = %v", err)
		}
		defer resp.Body.Close()

		var list struct {
			Bindings []struct {
				ID          string `json:"id"`
				GestureType string `json:"gesture_type"`
				PluginName  string `json:"plugin_name"`
			} `json:"bindings"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
			t.Fatalf("decode error = %v", err)
		}
		if len(list.Bindings) != 1 {
			t.Fatalf("got %d bindings, want 1", len(list.Bindings))
		}
		if list.Bindings[0].ID != bindingID {
			t.Errorf("binding ID = %s, want %s", list.Bindings[0].ID, bindingID)
		}
		if list.Bindings[0].GestureType != "PINCH" {
			t.Errorf("gesture_type = %s, want PINCH", list.Bindings[0].GestureType)
		}
	})

	t.Run("RecognizeAndServeEvent", func(t *testing.T) {
		// A steady pinching hand across enough frames emits one event,
		// which the app subscriber persists.
		hand := detector.PinchingHandLandmarks("Right", 0.5, 0.5, 0.03)
		base := time.UnixMilli(0)
		for i := 0; i < 6; i++ {
			in := engine.FrameInputFrom([]detector.HandLandmarks{hand})
			eng.ProcessFrame(in, base.Add(time.Duration(i*100)*time.Millisecond))
		}

		resp, err := client.Get(ts.URL + "/api/events")
		if err != nil {
			t.Fatalf("list events error = %v", err)
		}
		defer resp.Body.Close()

		var list struct {
			Events []struct {
				Type       string  `json:"type"`
				Handedness string  `json:"handedness"`
				Confidence float64 `json:"confidence"`
			} `json:"events"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
			t.Fatalf("decode error = %v", err)
		}
		if len(list.Events) != 1 {
			t.Fatalf("got %d events, want 1", len(list.Events))
		}
		if list.Events[0].Type != "PINCH" {
			t.Errorf("event type = %s, want PINCH", list.Events[0].Type)
		}
		if list.Events[0].Handedness != "Right" {
			t.Errorf("handedness = %s, want Right", list.Events[0].Handedness)
		}
	})

	t.Run("UpdateConfig", func(t *testing.T) {
		cfg := eng.Config()
		cfg.PinchThreshold = 0.03
		body, _ := json.Marshal(cfg)

		req, err := http.NewRequest(http.MethodPut, ts.URL+"/api/config", strings.NewReader(string(body)))
		if err != nil {
			t.Fatalf("new request error = %v", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			t.Fatalf("update config error = %v", err)
		}
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
		}
		if got := eng.Config().PinchThreshold; got != 0.03 {
			t.Errorf("engine PinchThreshold = %f, want 0.03", got)
		}
	})

	t.Run("DeleteBinding", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodDelete, ts.URL+"/api/bindings/"+bindingID, nil)
		if err != nil {
			t.Fatalf("new request error = %v", err)
		}

		resp, err := client.Do(req)
		if err != nil {
			t.Fatalf("delete binding error = %v", err)
		}
		resp.Body.Close()

		if resp.StatusCode != http.StatusNoContent {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusNoContent)
		}

		binding, err := s.Bindings().GetForGesture("PINCH", "Right")
		if err != nil {
			t.Fatalf("GetForGesture() error = %v", err)
		}
		if binding != nil {
			t.Error("binding still resolvable after delete")
		}
	})
}
