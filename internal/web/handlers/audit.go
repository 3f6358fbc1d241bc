package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/NickRemizov/face-review/internal/audit"
)

// AuditHandler exposes the consistency audit view.
type AuditHandler struct {
	ctrl *audit.Controller
}

// NewAuditHandler creates a new audit handler.
func NewAuditHandler(ctrl *audit.Controller) *AuditHandler {
	return &AuditHandler{ctrl: ctrl}
}

// Run starts a fresh audit, replacing any report in progress.
func (h *AuditHandler) Run(w http.ResponseWriter, r *http.Request) {
	if err := h.ctrl.Run(r.Context()); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.ctrl.Snapshot())
}

// Get returns the current report snapshot: the revealed rows and the
// aggregate summary.
func (h *AuditHandler) Get(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.ctrl.Snapshot())
}

// FixPerson repairs one flagged person.
func (h *AuditHandler) FixPerson(w http.ResponseWriter, r *http.Request) {
	personID := chi.URLParam(r, "id")
	if personID == "" {
		respondError(w, http.StatusBadRequest, "id is required")
		return
	}

	if err := h.ctrl.FixPerson(r.Context(), personID); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.ctrl.Snapshot())
}

// FixAll repairs every flagged person and re-runs the audit.
func (h *AuditHandler) FixAll(w http.ResponseWriter, r *http.Request) {
	if err := h.ctrl.FixAll(r.Context()); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.ctrl.Snapshot())
}
