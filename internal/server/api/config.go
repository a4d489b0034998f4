package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/ayusman/mudra/internal/engine"
	"github.com/ayusman/mudra/internal/store"
)

// ConfigHandler exposes the engine tunables over HTTP. Updates are applied
// to the running engine and persisted so they survive a restart.
type ConfigHandler struct {
	engine *engine.Engine
	store  *store.Store
}

// NewConfigHandler creates a new ConfigHandler.
func NewConfigHandler(e *engine.Engine, s *store.Store) *ConfigHandler {
	return &ConfigHandler{engine: e, store: s}
}

// ServeHTTP handles GET and PUT requests to /api/config.
func (h *ConfigHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPut:
		h.update(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// get returns the engine's current tunables.
func (h *ConfigHandler) get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.engine.Config())
}

// update replaces the engine tunables. Fields left zero in the request fall
// back to their defaults.
func (h *ConfigHandler) update(w http.ResponseWriter, r *http.Request) {
	var cfg engine.Config
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	h.engine.SetConfig(cfg)
	applied := h.engine.Config()

	if h.store != nil {
		if err := h.store.Settings().SetJSON(store.SettingEngineConfig, applied); err != nil {
			// The engine is already reconfigured; persistence is best effort.
			log.Printf("config: failed to persist engine config: %v", err)
		}
	}

	writeJSON(w, http.StatusOK, applied)
}
