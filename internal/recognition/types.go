package recognition

import (
	"github.com/NickRemizov/face-review/internal/faces"
	"github.com/NickRemizov/face-review/internal/geometry"
)

// wireFace is the loose response shape of the recognition service. Optional
// fields stay optional here; mapFaces converts into the strict internal
// record so nothing downstream branches on response shape.
type wireFace struct {
	ID         string    `json:"id"`
	PhotoID    string    `json:"photo_id,omitempty"`
	PersonID   string    `json:"person_id,omitempty"`
	PersonName string    `json:"person_name,omitempty"`
	BBox       []float64 `json:"bbox,omitempty"` // [x, y, w, h] in original image pixels
	DetScore   float64   `json:"det_score"`
	Similarity float64   `json:"similarity,omitempty"`
}

// wireCluster is one similarity group of unassigned faces.
type wireCluster struct {
	Faces []wireFace `json:"faces"`
}

// mapFaces converts wire faces into internal records. fallbackPhotoID fills
// the photo id when the service omits it (single-photo detection responses).
func mapFaces(ws []wireFace, fallbackPhotoID string) []faces.DetectedFace {
	out := make([]faces.DetectedFace, 0, len(ws))
	for _, w := range ws {
		photoID := w.PhotoID
		if photoID == "" {
			photoID = fallbackPhotoID
		}
		out = append(out, faces.DetectedFace{
			ID:                    w.ID,
			PhotoID:               photoID,
			PersonID:              w.PersonID,
			PersonName:            w.PersonName,
			BoundingBox:           mapBBox(w.BBox),
			DetectionConfidence:   w.DetScore,
			RecognitionConfidence: w.Similarity,
		})
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
