package persistence

import (
	"context"

	"github.com/NickRemizov/face-review/internal/faces"
	"github.com/NickRemizov/face-review/internal/transport"
)

// FaceUpdate carries the mutable fields of a face record. Nil fields are
// left unchanged by the service.
type FaceUpdate struct {
	PersonID *string `json:"person_id,omitempty"`
	Verified *bool   `json:"verified,omitempty"`
	Hidden   *bool   `json:"hidden,omitempty"`
	Excluded *bool   `json:"excluded,omitempty"`
}

// GetFacesForPhotos fetches the face lists for a batch of photo ids in one
// request. Photos unknown to the service are simply absent from the result.
func (c *Client) GetFacesForPhotos(ctx context.Context, photoIDs []string) (map[string][]faces.DetectedFace, error) {
	result, err := transport.Post[[]wirePhotoFaces](ctx, c.api, "faces/batch", map[string]any{
		"photo_ids": photoIDs,
	})
	if err != nil {
		return nil, err
	}
	return mapPhotoFaces(*result), nil
}

// SaveFaces persists freshly detected faces for one photo and returns the
// photo's resulting face list.
func (c *Client) SaveFaces(ctx context.Context, photoID string, fs []faces.DetectedFace) ([]faces.DetectedFace, error) {
	result, err := transport.Post[wirePhotoFaces](ctx, c.api, "photos/"+photoID+"/faces", map[string]any{
		"faces": fs,
	})
	if err != nil {
		return nil, err
	}
	return mapFaceList(result.Faces), nil
}

// UpdateFace applies a partial update to one face. Returns the id of the
// photo the face belongs to along with that photo's new face list, so the
// caller can patch its cache without a round-trip.
func (c *Client) UpdateFace(ctx context.Context, faceID string, update FaceUpdate) (string, []faces.DetectedFace, error) {
	result, err := transport.Put[wirePhotoFaces](ctx, c.api, "faces/"+faceID, update)
	if err != nil {
		return "", nil, err
	}
	return result.PhotoID, mapFaceList(result.Faces), nil
}

// DeleteFace removes one face record. Returns the owning photo id and the
// photo's remaining face list.
func (c *Client) DeleteFace(ctx context.Context, faceID string) (string, []faces.DetectedFace, error) {
	result, err := transport.Delete[wirePhotoFaces](ctx, c.api, "faces/"+faceID, nil)
	if err != nil {
		return "", nil, err
	}
	return result.PhotoID, mapFaceList(result.Faces), nil
}

// AssignFacesToPerson attaches the given faces to a person. When
// avatarFaceID is non-empty the service may also use that face as the
// person's avatar. Returns the new face lists of every photo the assignment
// touched, keyed by photo id.
func (c *Client) AssignFacesToPerson(ctx context.Context, personID string, faceIDs []string, avatarFaceID string) (map[string][]faces.DetectedFace, error) {
	body := map[string]any{
		"person_id": personID,
		"face_ids":  faceIDs,
	}
	if avatarFaceID != "" {
		body["avatar_face_id"] = avatarFaceID
	}
	result, err := transport.Post[[]wirePhotoFaces](ctx, c.api, "faces/assign", body)
	if err != nil {
		return nil, err
	}
	return mapPhotoFaces(*result), nil
}

// RejectFaces discards the given face records outright. Returns the new
// face lists of every photo touched, keyed by photo id.
func (c *Client) RejectFaces(ctx context.Context, faceIDs []string) (map[string][]faces.DetectedFace, error) {
	result, err := transport.Post[[]wirePhotoFaces](ctx, c.api, "faces/reject", map[string]any{
		"face_ids": faceIDs,
	})
	if err != nil {
		return nil, err
	}
	return mapPhotoFaces(*result), nil
}
