package config

import (
	_ "embed"
	"os"
	"strconv"
	"time"
)

//go:embed presentation.yaml
var presentationYAML []byte

type Config struct {
	Recognition  RecognitionConfig
	Gallery      GalleryConfig
	Web          WebConfig
	Presentation PresentationConfig
}

type RecognitionConfig struct {
	URL   string // face detection and clustering service
	Token string
}

type GalleryConfig struct {
	URL    string // persistence API of the gallery platform
	Token  string
	Domain string // public domain for generating photo links (e.g., https://gallery.example.com)
}

// PhotoURL returns an OSC 8 hyperlink for terminal emulators (iTerm2, etc.)
// Displays the photo id but makes it clickable to open the photo in the
// gallery. Returns empty string if Domain is not set.
func (c *GalleryConfig) PhotoURL(photoID string) string {
	if c.Domain == "" {
		return ""
	}
	url := c.Domain + "/photos/" + photoID
	// OSC 8 hyperlink format: \e]8;;URL\e\\TEXT\e]8;;\e\\
	return "\x1b]8;;" + url + "\x1b\\" + photoID + "\x1b]8;;\x1b\\"
}

type WebConfig struct {
	Host string // defaults to 0.0.0.0
	Port int    // defaults to 8080
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

func envString(key, defaultVal string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return defaultVal
}

func Load() *Config {
	return &Config{
		Recognition: RecognitionConfig{
			URL:   os.Getenv("RECOGNITION_URL"),
			Token: os.Getenv("RECOGNITION_TOKEN"),
		},
		Gallery: GalleryConfig{
			URL:    os.Getenv("GALLERY_API_URL"),
			Token:  os.Getenv("GALLERY_API_TOKEN"),
			Domain: os.Getenv("GALLERY_DOMAIN"),
		},
		Web: WebConfig{
			Host: envString("WEB_HOST", "0.0.0.0"),
			Port: envInt("WEB_PORT", 8080),
		},
		Presentation: loadPresentation(),
	}
}

// RevealInterval converts the configured reveal pace to a duration.
func (c *Config) RevealInterval() time.Duration {
	return time.Duration(c.Presentation.Audit.RevealIntervalMs) * time.Millisecond
}
