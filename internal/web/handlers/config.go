package handlers

import (
	"net/http"

	"github.com/NickRemizov/face-review/internal/config"
)

// ConfigHandler exposes the presentation tunables to the front end.
type ConfigHandler struct {
	config *config.Config
}

// NewConfigHandler creates a new config handler.
func NewConfigHandler(cfg *config.Config) *ConfigHandler {
	return &ConfigHandler{config: cfg}
}

// ConfigResponse is the public subset of the configuration. Service URLs and
// tokens never leave the server.
type ConfigResponse struct {
	Palette       []string `json:"palette"`
	GalleryDomain string   `json:"gallery_domain,omitempty"`
}

// Get returns the public configuration.
func (h *ConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, ConfigResponse{
		Palette:       h.config.Presentation.Overlay.Palette,
		GalleryDomain: h.config.Gallery.Domain,
	})
}
