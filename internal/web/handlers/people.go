package handlers

import (
	"context"
	"net/http"

	"github.com/NickRemizov/face-review/internal/faces"
)

// PeopleLister fetches the person catalog from the gallery.
type PeopleLister interface {
	ListPeople(ctx context.Context) ([]faces.Person, error)
}

// PeopleHandler serves the person catalog.
type PeopleHandler struct {
	store PeopleLister
}

// NewPeopleHandler creates a new people handler.
func NewPeopleHandler(store PeopleLister) *PeopleHandler {
	return &PeopleHandler{store: store}
}

// List returns the people matching the optional "q" query, diacritic and
// case insensitive. Without a query the full catalog is returned.
func (h *PeopleHandler) List(w http.ResponseWriter, r *http.Request) {
	people, err := h.store.ListPeople(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, faces.FilterPeople(people, r.URL.Query().Get("q")))
}
