// Package persistence is the client for the gallery persistence service:
// face storage, person catalog, photo processing flags and the consistency
// audit. Schema and storage details belong to the service; this client
// depends only on the HTTP envelope and the field names it documents.
package persistence

import (
	"context"
	"fmt"

	"github.com/NickRemizov/face-review/internal/transport"
)

// Client talks to the persistence service.
type Client struct {
	api *transport.Client
}

// New creates a persistence client for the given base URL. The token is
// optional.
func New(rawURL, token string) (*Client, error) {
	api, err := transport.NewClient(rawURL, token)
	if err != nil {
		return nil, fmt.Errorf("persistence client: %w", err)
	}
	return &Client{api: api}, nil
}

// MarkPhotoProcessed flags a photo as reviewed so it drops out of the
// unprocessed queue. Callers treat this as best effort.
func (c *Client) MarkPhotoProcessed(ctx context.Context, photoID string) error {
	_, err := transport.Post[struct{}](ctx, c.api, "photos/"+photoID+"/processed", nil)
	return err
}

// DownloadPhoto fetches the full-resolution photo bytes for rendering.
func (c *Client) DownloadPhoto(ctx context.Context, photoID string) ([]byte, error) {
	return transport.GetBytes(ctx, c.api, "photos/"+photoID+"/download")
}
