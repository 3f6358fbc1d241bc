package persistence

import (
	"context"

	"github.com/NickRemizov/face-review/internal/faces"
	"github.com/NickRemizov/face-review/internal/transport"
)

// ListPeople returns the assignable people of the gallery catalog in the
// service's display order.
func (c *Client) ListPeople(ctx context.Context) ([]faces.Person, error) {
	result, err := transport.Get[[]faces.Person](ctx, c.api, "people")
	if err != nil {
		return nil, err
	}
	return *result, nil
}

// CreatePerson creates a new person, optionally seeding the avatar from a
// detected face.
func (c *Client) CreatePerson(ctx context.Context, name, avatarFaceID string) (*faces.Person, error) {
	body := map[string]string{"name": name}
	if avatarFaceID != "" {
		body["avatar_face_id"] = avatarFaceID
	}
	return transport.Post[faces.Person](ctx, c.api, "people", body)
}

// GetAutoAvatarSetting reads the global flag controlling whether a new
// person created during review automatically receives an avatar.
func (c *Client) GetAutoAvatarSetting(ctx context.Context) (bool, error) {
	result, err := transport.Get[struct {
		Enabled bool `json:"enabled"`
	}](ctx, c.api, "settings/auto-avatar")
	if err != nil {
		return false, err
	}
	return result.Enabled, nil
}
