package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/engine"
	"github.com/ayusman/mudra/internal/server"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/tray"
)

const serverAddr = ":8080"

func main() {
	fmt.Println("Mudra - Hand Gesture Recognition")

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}

	dataDir := filepath.Join(homeDir, ".mudra")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	st, err := store.New(filepath.Join(dataDir, "mudra.db"))
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	eng := engine.New(loadEngineConfig(st))
	defer eng.Close()

	a := app.New(app.Config{
		Store:     st,
		Engine:    eng,
		CameraID:  loadCameraIndex(st),
		PluginDir: findPluginDir(dataDir),
	})

	if err := a.DiscoverPlugins(); err != nil {
		log.Printf("Plugin discovery failed: %v", err)
	}

	webDir := findWebDir(dataDir)
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	srv := server.New(server.Config{
		StaticDir: webDir,
		Store:     st,
		Camera:    a.Camera(),
		Engine:    eng,
	})
	defer srv.Close()

	go func() {
		fmt.Printf("Starting server on %s\n", serverAddr)
		if err := srv.ListenAndServe(serverAddr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	if err := a.Start(); err != nil {
		log.Fatalf("Failed to start detection pipeline: %v", err)
	}
	a.SetEnabled(true)

	t := tray.New()
	a.OnGesture(t.ShowGesture)
	t.OnToggle(a.SetEnabled)
	t.OnSettings(func() {
		openBrowser("http://localhost" + serverAddr)
	})
	t.OnQuit(func() {
		a.Stop()
	})

	// Blocks until quit is chosen from the menu.
	t.Run()
}

// loadEngineConfig reads persisted engine tunables, falling back to the
// defaults on first run.
func loadEngineConfig(st *store.Store) engine.Config {
	var cfg engine.Config
	err := st.Settings().GetJSON(store.SettingEngineConfig, &cfg)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("Failed to load engine config, using defaults: %v", err)
		}
		return engine.DefaultConfig()
	}
	return cfg
}

// loadCameraIndex reads the persisted camera device index, defaulting to 0.
func loadCameraIndex(st *store.Store) int {
	value, err := st.Settings().Get(store.SettingCameraIndex)
	if err != nil {
		return 0
	}
	index, err := strconv.Atoi(value)
	if err != nil || index < 0 {
		log.Printf("Ignoring invalid camera index setting %q", value)
		return 0
	}
	return index
}

// findPluginDir searches for the plugins directory in common locations.
func findPluginDir(dataDir string) string {
	for _, p := range []string{"plugins", "../plugins", filepath.Join(dataDir, "plugins")} {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			if abs, err := filepath.Abs(p); err == nil {
				return abs
			}
			return p
		}
	}
	return filepath.Join(dataDir, "plugins")
}

// findWebDir searches for the web directory in common locations.
// Returns the first existing directory or empty string if none found.
func findWebDir(dataDir string) string {
	for _, p := range []string{"web", "../web", "../../web"} {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			if abs, err := filepath.Abs(p); err == nil {
				return abs
			}
			return p
		}
	}

	homeWebDir := filepath.Join(dataDir, "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}
	return ""
}

// openBrowser opens the given URL in the default browser.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch {
	case fileExists("/usr/bin/open"):
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		log.Printf("Failed to open browser: %v", err)
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
