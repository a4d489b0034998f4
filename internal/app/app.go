// Package app wires the capture, detection, engine, storage and plugin
// layers into the running Mudra application.
package app

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/engine"
	"github.com/ayusman/mudra/internal/plugin"
	"github.com/ayusman/mudra/internal/store"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate while nobody is in front of the camera.
	IdleFPS = 5
	// ActiveFPS is the frame rate while presence is detected.
	ActiveFPS = 15
	// IdleTimeoutMs is how long presence must be absent before the
	// pipeline drops back to the idle rate.
	IdleTimeoutMs = 2000
	// PluginTimeout bounds a single plugin action execution.
	PluginTimeout = 5 * time.Second
)

// Config holds configuration options for the application.
type Config struct {
	Store          *store.Store
	Engine         *engine.Engine
	Camera         capture.Camera // optional, a device camera is opened when nil
	PluginDir      string
	CameraID       int
	PresenceThresh float64
}

// App owns the detection pipeline and routes recognized gestures to the
// event log, the plugin layer and any registered gesture callback.
type App struct {
	config     Config
	camera     capture.Camera
	presence   *capture.PresenceGate
	detector   detector.Detector
	engine     *engine.Engine
	pluginMgr  *plugin.Manager
	pluginExec *plugin.Executor

	onGesture func(engine.GestureEvent)
	subToken  string

	enabled bool
	mu      sync.RWMutex
	stopCh  chan struct{}
	done    sync.WaitGroup
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	threshold := config.PresenceThresh
	if threshold <= 0 {
		threshold = capture.DefaultPresenceThreshold
	}

	camera := config.Camera
	if camera == nil {
		camera = capture.NewCamera(config.CameraID)
	}

	eng := config.Engine
	if eng == nil {
		eng = engine.New(engine.DefaultConfig())
	}

	a := &App{
		config:     config,
		camera:     camera,
		presence:   capture.NewPresenceGate(threshold),
		engine:     eng,
		pluginMgr:  plugin.NewManager(config.PluginDir),
		pluginExec: plugin.NewExecutor(PluginTimeout),
		enabled:    false,
	}

	// Try MediaPipe first, fall back to mock detector
	if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = detector.NewMockDetector()
	}

	a.subToken = a.engine.Subscribe(a.handleGesture)

	return a
}

// SetEnabled enables or disables gesture recognition.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether gesture recognition is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector sets the hand detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// OnGesture registers a callback invoked for every recognized gesture,
// after persistence and action dispatch. Used for the tray display.
func (a *App) OnGesture(fn func(engine.GestureEvent)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onGesture = fn
}

// DiscoverPlugins scans the plugin directory and loads available plugins.
func (a *App) DiscoverPlugins() error {
	return a.pluginMgr.Discover()
}

// Start opens the camera and begins the detection pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}
	a.camera.SetFPS(IdleFPS)

	a.stopCh = make(chan struct{})
	a.done.Add(1)
	go a.runPipeline(a.stopCh)

	log.Println("Detection pipeline started")
	return nil
}

// Stop halts the detection pipeline and releases resources.
func (a *App) Stop() {
	a.mu.Lock()
	stopCh := a.stopCh
	a.stopCh = nil
	a.mu.Unlock()

	if stopCh != nil {
		close(stopCh)
		a.done.Wait()
	}

	a.engine.Unsubscribe(a.subToken)

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}
	a.presence.Close()

	a.mu.RLock()
	d := a.detector
	a.mu.RUnlock()
	if d != nil {
		if err := d.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	log.Println("Detection pipeline stopped")
}

// handleGesture is the engine bus subscriber: it logs the event to the
// store, dispatches any bound plugin action and notifies the gesture
// callback. Plugin execution runs on its own goroutine so a slow plugin
// never stalls frame processing.
func (a *App) handleGesture(ev engine.GestureEvent) {
	a.persistEvent(ev)

	go a.dispatchAction(ev)

	a.mu.RLock()
	fn := a.onGesture
	a.mu.RUnlock()
	if fn != nil {
		fn(ev)
	}
}

// persistEvent appends the gesture to the event log.
func (a *App) persistEvent(ev engine.GestureEvent) {
	if a.config.Store == nil {
		return
	}

	record := &store.Event{
		ID:             uuid.New().String(),
		Type:           string(ev.Type),
		Handedness:     string(ev.Handedness),
		Confidence:     ev.Confidence,
		PositionX:      ev.Position.X,
		PositionY:      ev.Position.Y,
		Direction:      string(ev.Direction),
		Distance:       ev.Distance,
		DistanceChange: ev.DistanceChange,
		TimestampMs:    ev.Timestamp,
	}
	if err := a.config.Store.Events().Insert(record); err != nil {
		log.Printf("Failed to persist %s event: %v", ev.Type, err)
	}
}

// dispatchAction resolves the binding for a gesture and executes the
// bound plugin action.
func (a *App) dispatchAction(ev engine.GestureEvent) {
	if a.config.Store == nil {
		return
	}

	binding, err := a.config.Store.Bindings().GetForGesture(string(ev.Type), string(ev.Handedness))
	if err != nil {
		log.Printf("Failed to resolve binding for %s: %v", ev.Type, err)
		return
	}
	if binding == nil || !binding.Enabled {
		return
	}

	p, err := a.pluginMgr.Get(binding.PluginName)
	if err != nil {
		log.Printf("Binding %s references unknown plugin %s: %v", binding.ID, binding.PluginName, err)
		return
	}

	req := &plugin.Request{
		Action: binding.ActionName,
		Event: plugin.Event{
			Type:           string(ev.Type),
			Handedness:     string(ev.Handedness),
			Confidence:     ev.Confidence,
			X:              ev.Position.X,
			Y:              ev.Position.Y,
			Direction:      string(ev.Direction),
			Distance:       ev.Distance,
			DistanceChange: ev.DistanceChange,
			Timestamp:      ev.Timestamp,
		},
		Config: binding.Config,
	}

	resp, err := a.pluginExec.Execute(context.Background(), p, req)
	if err != nil {
		log.Printf("Plugin %s action %s failed: %v", binding.PluginName, binding.ActionName, err)
		return
	}
	if !resp.Success {
		log.Printf("Plugin %s action %s rejected: %s", binding.PluginName, binding.ActionName, resp.Error)
	}
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// Engine returns the gesture engine.
func (a *App) Engine() *engine.Engine {
	return a.engine
}

// PresenceGate returns the presence gate instance.
func (a *App) PresenceGate() *capture.PresenceGate {
	return a.presence
}

// PluginManager returns the plugin manager.
func (a *App) PluginManager() *plugin.Manager {
	return a.pluginMgr
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}
