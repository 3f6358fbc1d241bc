package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/NickRemizov/face-review/internal/facecache"
	"github.com/NickRemizov/face-review/internal/faces"
	"github.com/NickRemizov/face-review/internal/geometry"
	"github.com/NickRemizov/face-review/internal/overlay"
)

// PhotoDownloader fetches original photo bytes from the gallery.
type PhotoDownloader interface {
	DownloadPhoto(ctx context.Context, photoID string) ([]byte, error)
}

// OverlayHandler renders photos with face boxes burned in and resolves
// click positions to faces.
type OverlayHandler struct {
	downloader PhotoDownloader
	cache      *facecache.Cache
	renderer   *overlay.Renderer
}

// NewOverlayHandler creates a new overlay handler.
func NewOverlayHandler(downloader PhotoDownloader, cache *facecache.Cache, renderer *overlay.Renderer) *OverlayHandler {
	return &OverlayHandler{
		downloader: downloader,
		cache:      cache,
		renderer:   renderer,
	}
}

// Render returns the photo as JPEG with every known face box drawn at the
// image's natural resolution. The optional "selected" query parameter
// emphasizes one face.
func (h *OverlayHandler) Render(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")
	if uid == "" {
		respondError(w, http.StatusBadRequest, "uid is required")
		return
	}

	fs, ok := h.cache.Faces(uid)
	if !ok {
		if err := h.cache.Hydrate(r.Context(), []string{uid}); err != nil {
			respondDomainError(w, err)
			return
		}
		fs, _ = h.cache.Faces(uid)
	}

	data, err := h.downloader.DownloadPhoto(r.Context(), uid)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	img, err := overlay.Decode(data)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, "photo is not a decodable image")
		return
	}

	canvas := h.renderer.Render(img, fs, r.URL.Query().Get("selected"))
	out, err := overlay.EncodeJPEG(canvas)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to encode overlay")
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.WriteHeader(http.StatusOK)
	w.Write(out)
}

// HitTestRequest represents a click position inside the photo container.
// Container and image sizes let the server undo the display fit before
// testing boxes, which live in image pixel space.
type HitTestRequest struct {
	X               float64          `json:"x"`
	Y               float64          `json:"y"`
	ContainerWidth  float64          `json:"container_width"`
	ContainerHeight float64          `json:"container_height"`
	ImageWidth      float64          `json:"image_width"`
	ImageHeight     float64          `json:"image_height"`
	Fit             geometry.FitMode `json:"fit"`
}

// HitTestResponse is the resolved face, if any.
type HitTestResponse struct {
	Hit  bool                `json:"hit"`
	Face *faces.DetectedFace `json:"face,omitempty"`
}

// HitTest maps a container click onto image coordinates and returns the first
// face whose box contains the point.
func (h *OverlayHandler) HitTest(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")
	if uid == "" {
		respondError(w, http.StatusBadRequest, "uid is required")
		return
	}

	var req HitTestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}

	fs, ok := h.cache.Faces(uid)
	if !ok {
		respondError(w, http.StatusNotFound, "photo not hydrated")
		return
	}

	point, inside := geometry.MapToImage(
		geometry.Point{X: req.X, Y: req.Y},
		geometry.Size{Width: req.ContainerWidth, Height: req.ContainerHeight},
		geometry.Size{Width: req.ImageWidth, Height: req.ImageHeight},
		req.Fit,
	)
	if !inside {
		respondJSON(w, http.StatusOK, HitTestResponse{})
		return
	}

	face, hit := overlay.FaceAt(point, fs)
	if !hit {
		respondJSON(w, http.StatusOK, HitTestResponse{})
		return
	}
	respondJSON(w, http.StatusOK, HitTestResponse{Hit: true, Face: &face})
}
