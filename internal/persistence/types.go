package persistence

import (
	"github.com/NickRemizov/face-review/internal/faces"
	"github.com/NickRemizov/face-review/internal/geometry"
)

// wireFace is the loose face shape the persistence service returns. Mapped
// into the strict internal record at this boundary.
type wireFace struct {
	ID         string    `json:"id"`
	PhotoID    string    `json:"photo_id"`
	PersonID   string    `json:"person_id,omitempty"`
	PersonName string    `json:"person_name,omitempty"`
	BBox       []float64 `json:"bbox,omitempty"` // [x, y, w, h] in original image pixels
	DetScore   float64   `json:"det_score"`
	RecScore   float64   `json:"rec_score,omitempty"`
	Verified   bool      `json:"verified"`
	Hidden     bool      `json:"hidden"`
	Excluded   bool      `json:"excluded"`
}

// wirePhotoFaces is a photo id with its full current face list, returned by
// every mutating face call so callers can patch caches without re-fetching.
type wirePhotoFaces struct {
	PhotoID string     `json:"photo_id"`
	Faces   []wireFace `json:"faces"`
}

func mapFace(w wireFace) faces.DetectedFace {
	return faces.DetectedFace{
		ID:                    w.ID,
		PhotoID:               w.PhotoID,
		PersonID:              w.PersonID,
		PersonName:            w.PersonName,
		BoundingBox:           mapBBox(w.BBox),
		DetectionConfidence:   w.DetScore,
		RecognitionConfidence: w.RecScore,
		Verified:              w.Verified,
		HiddenByUser:          w.Hidden,
		Excluded:              w.Excluded,
	}
}

func mapFaceList(ws []wireFace) []faces.DetectedFace {
	out := make([]faces.DetectedFace, 0, len(ws))
	for _, w := range ws {
		out = append(out, mapFace(w))
	}
	return out
}

func mapPhotoFaces(pfs []wirePhotoFaces) map[string][]faces.DetectedFace {
	out := make(map[string][]faces.DetectedFace, len(pfs))
	for _, pf := range pfs {
		out[pf.PhotoID] = mapFaceList(pf.Faces)
	}
	return out
}

// mapBBox converts a loose [x, y, w, h] slice into a box, or nil when the
// value is missing or degenerate.
func mapBBox(b []float64) *geometry.Box {
	if len(b) != 4 {
		return nil
	}
	box := geometry.Box{X: b[0], Y: b[1], Width: b[2], Height: b[3]}
	if !box.Valid() {
		return nil
	}
	return &box
}
