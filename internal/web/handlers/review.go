package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/NickRemizov/face-review/internal/facecache"
	"github.com/NickRemizov/face-review/internal/review"
)

// ReviewHandler owns the active review session. Only one session exists at a
// time; opening a new one while another is active is a conflict, so two
// browser tabs can never race over the same queue.
type ReviewHandler struct {
	recognition review.RecognitionService
	store       review.PersistenceService
	cache       *facecache.Cache

	mu      sync.Mutex
	current *review.Controller
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(rec review.RecognitionService, store review.PersistenceService, cache *facecache.Cache) *ReviewHandler {
	return &ReviewHandler{
		recognition: rec,
		store:       store,
		cache:       cache,
	}
}

// OpenSession starts a review session: one clustering call, then the queue is
// walked entirely in memory.
func (h *ReviewHandler) OpenSession(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	if h.current != nil {
		snap := h.current.Snapshot()
		if snap.State != review.StateIdle && snap.State != review.StateDone {
			h.mu.Unlock()
			respondError(w, http.StatusConflict, "a review session is already active")
			return
		}
		h.current.Close()
	}
	ctrl := review.NewController(h.recognition, h.store, h.cache, func() {
		log.Printf("review queue finished")
	})
	h.current = ctrl
	h.mu.Unlock()

	if err := ctrl.Open(r.Context()); err != nil {
		h.mu.Lock()
		if h.current == ctrl {
			h.current = nil
		}
		h.mu.Unlock()
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, ctrl.Snapshot())
}

// GetSession returns the current session snapshot.
func (h *ReviewHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	ctrl := h.session(w)
	if ctrl == nil {
		return
	}
	respondJSON(w, http.StatusOK, ctrl.Snapshot())
}

// CloseSession tears the active session down. Any submit still in flight has
// its result discarded.
func (h *ReviewHandler) CloseSession(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	ctrl := h.current
	h.current = nil
	h.mu.Unlock()

	if ctrl != nil {
		ctrl.Close()
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "closed"})
}

// Next moves to the next cluster.
func (h *ReviewHandler) Next(w http.ResponseWriter, r *http.Request) {
	h.navigate(w, func(c *review.Controller) error { return c.GoNext() })
}

// Previous moves to the previous cluster.
func (h *ReviewHandler) Previous(w http.ResponseWriter, r *http.Request) {
	h.navigate(w, func(c *review.Controller) error { return c.GoPrevious() })
}

func (h *ReviewHandler) navigate(w http.ResponseWriter, move func(*review.Controller) error) {
	ctrl := h.session(w)
	if ctrl == nil {
		return
	}
	if err := move(ctrl); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ctrl.Snapshot())
}

// RemoveFace drops one face from the current cluster's visible set.
func (h *ReviewHandler) RemoveFace(w http.ResponseWriter, r *http.Request) {
	faceID := chi.URLParam(r, "faceId")
	if faceID == "" {
		respondError(w, http.StatusBadRequest, "faceId is required")
		return
	}

	ctrl := h.session(w)
	if ctrl == nil {
		return
	}
	if err := ctrl.RemoveFaceFromCurrent(faceID); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ctrl.Snapshot())
}

// AssignRequest represents an assign request.
type AssignRequest struct {
	PersonID string `json:"person_id"`
}

// Assign attaches the current cluster's visible faces to a person.
func (h *ReviewHandler) Assign(w http.ResponseWriter, r *http.Request) {
	var req AssignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}

	ctrl := h.session(w)
	if ctrl == nil {
		return
	}
	if err := ctrl.AssignCurrentToPerson(r.Context(), req.PersonID); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ctrl.Snapshot())
}

// Reject discards the current cluster's visible faces.
func (h *ReviewHandler) Reject(w http.ResponseWriter, r *http.Request) {
	ctrl := h.session(w)
	if ctrl == nil {
		return
	}
	if err := ctrl.RejectCurrent(r.Context()); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ctrl.Snapshot())
}

// CreatePersonRequest represents a create-person request.
type CreatePersonRequest struct {
	Name string `json:"name"`
}

// CreatePerson creates a new person from the review panel and adds it to the
// assignable list.
func (h *ReviewHandler) CreatePerson(w http.ResponseWriter, r *http.Request) {
	var req CreatePersonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}

	ctrl := h.session(w)
	if ctrl == nil {
		return
	}
	person, err := ctrl.CreatePersonFromCurrent(r.Context(), req.Name)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, person)
}

// FilterPeople returns the session's assignable people matching the query.
func (h *ReviewHandler) FilterPeople(w http.ResponseWriter, r *http.Request) {
	ctrl := h.session(w)
	if ctrl == nil {
		return
	}
	respondJSON(w, http.StatusOK, ctrl.FilterPeople(r.URL.Query().Get("q")))
}

// Close tears down the active session if one exists. Used on server shutdown.
func (h *ReviewHandler) Close() {
	h.mu.Lock()
	ctrl := h.current
	h.current = nil
	h.mu.Unlock()
	if ctrl != nil {
		ctrl.Close()
	}
}

// session returns the active controller or writes a 404.
func (h *ReviewHandler) session(w http.ResponseWriter) *review.Controller {
	h.mu.Lock()
	ctrl := h.current
	h.mu.Unlock()
	if ctrl == nil {
		respondError(w, http.StatusNotFound, "no active review session")
		return nil
	}
	return ctrl
}
