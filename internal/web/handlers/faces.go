package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/NickRemizov/face-review/internal/facecache"
	"github.com/NickRemizov/face-review/internal/faces"
	"github.com/NickRemizov/face-review/internal/persistence"
)

// FaceDetector runs face detection for one photo.
type FaceDetector interface {
	DetectFaces(ctx context.Context, photoID string) ([]faces.DetectedFace, error)
}

// FaceStore is the slice of the persistence client the face endpoints need.
type FaceStore interface {
	SaveFaces(ctx context.Context, photoID string, fs []faces.DetectedFace) ([]faces.DetectedFace, error)
	UpdateFace(ctx context.Context, faceID string, update persistence.FaceUpdate) (string, []faces.DetectedFace, error)
	DeleteFace(ctx context.Context, faceID string) (string, []faces.DetectedFace, error)
}

// FacesHandler handles face data endpoints. Every mutation routes its
// response through the cache so the gallery view stays consistent without a
// refetch.
type FacesHandler struct {
	detector FaceDetector
	store    FaceStore
	cache    *facecache.Cache
}

// NewFacesHandler creates a new faces handler.
func NewFacesHandler(detector FaceDetector, store FaceStore, cache *facecache.Cache) *FacesHandler {
	return &FacesHandler{
		detector: detector,
		store:    store,
		cache:    cache,
	}
}

// HydrateRequest represents a batch hydration request.
type HydrateRequest struct {
	PhotoIDs []string `json:"photo_ids"`
}

// Hydrate loads face data for a page of photos in one batch and returns the
// per-photo recognition stats.
func (h *FacesHandler) Hydrate(w http.ResponseWriter, r *http.Request) {
	var req HydrateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}
	if len(req.PhotoIDs) == 0 {
		respondError(w, http.StatusBadRequest, "no photos specified")
		return
	}

	if err := h.cache.Hydrate(r.Context(), req.PhotoIDs); err != nil {
		respondDomainError(w, err)
		return
	}

	stats := make(map[string]faces.PhotoStats, len(req.PhotoIDs))
	for _, id := range req.PhotoIDs {
		if s, ok := h.cache.Stats(id); ok {
			stats[id] = s
		}
	}
	respondJSON(w, http.StatusOK, stats)
}

// GetPhotoFaces returns the cached face list for one photo, hydrating on a
// cache miss.
func (h *FacesHandler) GetPhotoFaces(w http.ResponseWriter, r *http.Request) {
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
	if fs == nil {
		fs = []faces.DetectedFace{}
	}
	respondJSON(w, http.StatusOK, fs)
}

// GetPhotoStats returns the recognition summary for one photo.
func (h *FacesHandler) GetPhotoStats(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")
	if uid == "" {
		respondError(w, http.StatusBadRequest, "uid is required")
		return
	}

	stats, ok := h.cache.Stats(uid)
	if !ok {
		respondError(w, http.StatusNotFound, "photo not hydrated")
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

// AllStats returns the recognition summary for every hydrated photo, keyed by
// photo id. The gallery uses this to badge its thumbnails.
func (h *FacesHandler) AllStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.cache.AllStats())
}

// Detect runs face detection on one photo, persists the result and patches
// the cache with the stored face list.
func (h *FacesHandler) Detect(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")
	if uid == "" {
		respondError(w, http.StatusBadRequest, "uid is required")
		return
	}

	detected, err := h.detector.DetectFaces(r.Context(), uid)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	saved, err := h.store.SaveFaces(r.Context(), uid, detected)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	h.cache.Patch(uid, saved)
	log.Printf("detected %d faces on photo %s", len(saved), sanitizeForLog(uid))
	respondJSON(w, http.StatusOK, saved)
}

// FaceUpdateRequest represents the request body for updating a face. Only the
// fields present are touched.
type FaceUpdateRequest struct {
	PersonID *string `json:"person_id,omitempty"`
	Verified *bool   `json:"verified,omitempty"`
	Hidden   *bool   `json:"hidden,omitempty"`
	Excluded *bool   `json:"excluded,omitempty"`
}

// Update applies a partial update to one face (verify, assign, hide or
// exclude) and patches the cache with the photo's fresh face list.
func (h *FacesHandler) Update(w http.ResponseWriter, r *http.Request) {
	faceID := chi.URLParam(r, "id")
	if faceID == "" {
		respondError(w, http.StatusBadRequest, "id is required")
		return
	}

	var req FaceUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}
	if req.PersonID == nil && req.Verified == nil && req.Hidden == nil && req.Excluded == nil {
		respondError(w, http.StatusBadRequest, "no fields to update")
		return
	}

	update := persistence.FaceUpdate{
		PersonID: req.PersonID,
		Verified: req.Verified,
		Hidden:   req.Hidden,
		Excluded: req.Excluded,
	}

	photoID, list, err := h.store.UpdateFace(r.Context(), faceID, update)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	h.cache.Patch(photoID, list)
	respondJSON(w, http.StatusOK, list)
}

// Delete removes one face record and patches the cache with the photo's
// remaining faces.
func (h *FacesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	faceID := chi.URLParam(r, "id")
	if faceID == "" {
		respondError(w, http.StatusBadRequest, "id is required")
		return
	}

	photoID, list, err := h.store.DeleteFace(r.Context(), faceID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	h.cache.Patch(photoID, list)
	respondJSON(w, http.StatusOK, list)
}
