package handlers

import (
	"encoding/json"
	"net/http"

	"familyboard/config"
)

// ConfigHandler exposes the application config record.
type ConfigHandler struct {
	configManager *config.Manager
}

// NewConfigHandler creates a new config handler.
func NewConfigHandler(configManager *config.Manager) *ConfigHandler {
	return &ConfigHandler{configManager: configManager}
}

// Get returns the current configuration.
// GET /api/config
func (h *ConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	appCfg, err := h.configManager.Load()
	if err != nil {
		jsonError(w, "Failed to load config: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, appCfg)
}

// Update replaces the configuration wholesale; there are no partial updates.
// PUT /api/config
func (h *ConfigHandler) Update(w http.ResponseWriter, r *http.Request) {
	var appCfg config.AppConfig
	if err := json.NewDecoder(r.Body).Decode(&appCfg); err != nil {
		jsonError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.configManager.Save(&appCfg); err != nil {
		jsonError(w, "Failed to save config: "+err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, map[string]interface{}{
		"success": true,
	})
}
