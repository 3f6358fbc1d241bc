package config

import (
	"os"
	"testing"
	"time"
)

func TestPhotoURL_EmptyDomain(t *testing.T) {
	cfg := GalleryConfig{
		Domain: "",
	}

	result := cfg.PhotoURL("photo123")

	if result != "" {
		t.Errorf("expected empty string for empty domain, got '%s'", result)
	}
}

func TestPhotoURL_ContainsPhotoID(t *testing.T) {
	cfg := GalleryConfig{
		Domain: "https://gallery.example.com",
	}

	id := "ph8abc123xyz"
	result := cfg.PhotoURL(id)

	// The visible text should be just the photo id.
	// OSC 8 format: \e]8;;URL\e\\TEXT\e]8;;\e\\
	found := false
	for i := 0; i < len(result)-len(id); i++ {
		if result[i:i+len(id)] == id {
			found = true
			break
		}
	}

	if !found {
		t.Errorf("expected result to contain photo id '%s'", id)
	}
}

func TestPhotoURL_CorrectFormat(t *testing.T) {
	cfg := GalleryConfig{
		Domain: "https://gallery.example.com",
	}

	result := cfg.PhotoURL("test123")

	startSeq := "\x1b]8;;"
	if len(result) < len(startSeq) || result[:len(startSeq)] != startSeq {
		t.Error("expected result to start with OSC 8 sequence '\\x1b]8;;'")
	}

	endSeq := "\x1b]8;;\x1b\\"
	if len(result) < len(endSeq) || result[len(result)-len(endSeq):] != endSeq {
		t.Error("expected result to end with OSC 8 close sequence")
	}
}

func TestLoad_ServiceConfig(t *testing.T) {
	t.Setenv("RECOGNITION_URL", "https://recognition.test.com")
	t.Setenv("RECOGNITION_TOKEN", "rec-token-123")
	t.Setenv("GALLERY_API_URL", "https://api.gallery.test.com")
	t.Setenv("GALLERY_API_TOKEN", "gal-token-456")
	t.Setenv("GALLERY_DOMAIN", "https://gallery.test.com")

	cfg := Load()

	if cfg.Recognition.URL != "https://recognition.test.com" {
		t.Errorf("expected recognition URL 'https://recognition.test.com', got '%s'", cfg.Recognition.URL)
	}

	if cfg.Recognition.Token != "rec-token-123" {
		t.Errorf("expected recognition token 'rec-token-123', got '%s'", cfg.Recognition.Token)
	}

	if cfg.Gallery.URL != "https://api.gallery.test.com" {
		t.Errorf("expected gallery URL 'https://api.gallery.test.com', got '%s'", cfg.Gallery.URL)
	}

	if cfg.Gallery.Token != "gal-token-456" {
		t.Errorf("expected gallery token 'gal-token-456', got '%s'", cfg.Gallery.Token)
	}

	if cfg.Gallery.Domain != "https://gallery.test.com" {
		t.Errorf("expected gallery domain 'https://gallery.test.com', got '%s'", cfg.Gallery.Domain)
	}
}

func TestLoad_DefaultWebConfig(t *testing.T) {
	os.Unsetenv("WEB_HOST")
	os.Unsetenv("WEB_PORT")

	cfg := Load()

	if cfg.Web.Host != "0.0.0.0" {
		t.Errorf("expected default host '0.0.0.0', got '%s'", cfg.Web.Host)
	}

	if cfg.Web.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Web.Port)
	}
}

func TestLoad_CustomWebPort(t *testing.T) {
	t.Setenv("WEB_PORT", "9090")

	cfg := Load()

	if cfg.Web.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Web.Port)
	}
}

func TestLoad_InvalidWebPort(t *testing.T) {
	t.Setenv("WEB_PORT", "invalid")

	cfg := Load()

	// Should fall back to default
	if cfg.Web.Port != 8080 {
		t.Errorf("expected default port 8080 for invalid input, got %d", cfg.Web.Port)
	}
}

func TestLoad_NegativeWebPort(t *testing.T) {
	t.Setenv("WEB_PORT", "-1")

	cfg := Load()

	if cfg.Web.Port != 8080 {
		t.Errorf("expected default port 8080 for negative input, got %d", cfg.Web.Port)
	}
}

func TestLoad_EmptyEnvVars(t *testing.T) {
	os.Unsetenv("RECOGNITION_URL")
	os.Unsetenv("GALLERY_API_URL")

	cfg := Load()

	// Should not panic, should return empty strings
	if cfg.Recognition.URL != "" {
		t.Errorf("expected empty recognition URL, got '%s'", cfg.Recognition.URL)
	}

	if cfg.Gallery.URL != "" {
		t.Errorf("expected empty gallery URL, got '%s'", cfg.Gallery.URL)
	}
}

func TestLoad_PresentationLoaded(t *testing.T) {
	cfg := Load()

	if len(cfg.Presentation.Overlay.Palette) != 6 {
		t.Errorf("expected 6 palette colors, got %d", len(cfg.Presentation.Overlay.Palette))
	}

	if cfg.Presentation.Overlay.Palette[0] != "#00D9FF" {
		t.Errorf("expected first palette color '#00D9FF', got '%s'", cfg.Presentation.Overlay.Palette[0])
	}

	f := cfg.Presentation.Framing
	if f.FaceHeightRatio != 0.25 {
		t.Errorf("expected face height ratio 0.25, got %f", f.FaceHeightRatio)
	}

	if f.MinScale != 1.0 || f.MaxScale != 3.5 {
		t.Errorf("expected scale clamp [1.0, 3.5], got [%f, %f]", f.MinScale, f.MaxScale)
	}

	if f.AnchorX != 0.5 || f.AnchorY != 0.25 {
		t.Errorf("expected anchor (0.5, 0.25), got (%f, %f)", f.AnchorX, f.AnchorY)
	}
}

func TestRevealInterval(t *testing.T) {
	cfg := Load()

	if got := cfg.RevealInterval(); got != 60*time.Millisecond {
		t.Errorf("expected reveal interval 60ms, got %v", got)
	}
}
