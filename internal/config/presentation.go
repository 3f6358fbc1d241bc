package config

import (
	"gopkg.in/yaml.v3"

	"github.com/NickRemizov/face-review/internal/framing"
)

// PresentationConfig carries the embedded rendering tunables: overlay colors,
// thumbnail framing and the audit reveal pace.
type PresentationConfig struct {
	Overlay OverlayConfig  `yaml:"overlay"`
	Framing framing.Params `yaml:"framing"`
	Audit   AuditConfig    `yaml:"audit"`
}

type OverlayConfig struct {
	Palette []string `yaml:"palette"` // "#RRGGBB" per entry
}

type AuditConfig struct {
	RevealIntervalMs int `yaml:"reveal_interval_ms"`
}

func loadPresentation() PresentationConfig {
	var p PresentationConfig
	if err := yaml.Unmarshal(presentationYAML, &p); err != nil {
		// This is an embedded file so this error should never happen in practice
		panic("failed to unmarshal embedded presentation.yaml: " + err.Error())
	}
	return p
}
