package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/NickRemizov/face-review/internal/framing"
	"github.com/NickRemizov/face-review/internal/geometry"
)

// FramingHandler computes face-centered thumbnail crops.
type FramingHandler struct {
	params framing.Params
}

// NewFramingHandler creates a framing handler with the given tunables.
func NewFramingHandler(params framing.Params) *FramingHandler {
	return &FramingHandler{params: params}
}

// FramingRequest represents one framing computation.
type FramingRequest struct {
	Box         geometry.Box `json:"box"`
	ImageWidth  int          `json:"image_width"`
	ImageHeight int          `json:"image_height"`
}

// FramingResponse wraps the computed framing. Framing is null when the box or
// dimensions are degenerate, which tells the front end to fall back to a
// plain centered crop.
type FramingResponse struct {
	Framing *framing.Framing `json:"framing"`
}

// Compute returns the zoom factor and background-position for one face box.
func (h *FramingHandler) Compute(w http.ResponseWriter, r *http.Request) {
	var req FramingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}

	f := framing.ComputeWith(h.params, req.Box, req.ImageWidth, req.ImageHeight)
	respondJSON(w, http.StatusOK, FramingResponse{Framing: f})
}
