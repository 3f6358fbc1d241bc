// Package recognition is the client for the external face-recognition
// service: detection for a single photo and similarity clustering across the
// whole catalog. Detection, embedding and index internals live entirely on
// the service side; this client only consumes its HTTP API.
package recognition

import (
	"context"
	"fmt"

	"github.com/NickRemizov/face-review/internal/faces"
	"github.com/NickRemizov/face-review/internal/transport"
)

// Client talks to the recognition service.
type Client struct {
	api *transport.Client
}

// New creates a recognition client for the given base URL. The token is
// optional.
func New(rawURL, token string) (*Client, error) {
	api, err := transport.NewClient(rawURL, token)
	if err != nil {
		return nil, fmt.Errorf("recognition client: %w", err)
	}
	return &Client{api: api}, nil
}

// DetectFaces runs face detection on one photo and returns the detected
// faces with pixel-space bounding boxes. Faces matched against known people
// carry a person id and recognition confidence.
func (c *Client) DetectFaces(ctx context.Context, photoID string) ([]faces.DetectedFace, error) {
	result, err := transport.Post[[]wireFace](ctx, c.api, "detect", map[string]string{"photo_id": photoID})
	if err != nil {
		return nil, err
	}
	return mapFaces(*result, photoID), nil
}

// ClusterUnassigned asks the service to group the currently unassigned faces
// across the catalog by similarity. Cluster order is preserved exactly as
// returned; the review queue walks it front to back.
func (c *Client) ClusterUnassigned(ctx context.Context) ([]faces.Cluster, error) {
	result, err := transport.Post[[]wireCluster](ctx, c.api, "clusters", nil)
	if err != nil {
		return nil, err
	}

	clusters := make([]faces.Cluster, 0, len(*result))
	for _, wc := range *result {
		mapped := mapFaces(wc.Faces, "")
		if len(mapped) == 0 {
			continue
		}
		clusters = append(clusters, faces.Cluster{Faces: mapped})
	}
	return clusters, nil
}
