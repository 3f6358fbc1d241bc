package review

import "github.com/NickRemizov/face-review/internal/faces"

// Snapshot is a read-only view of the session for rendering. It carries
// everything the review panel needs so the UI never reaches into the
// controller's internals.
type Snapshot struct {
	SessionID    string              `json:"session_id"`
	State        State               `json:"state"`
	ClusterCount int                 `json:"cluster_count"`
	Index        int                 `json:"index"`
	VisibleFaces []faces.DetectedFace `json:"visible_faces"`
	People       []faces.Person      `json:"people"`
	AutoAvatar   bool                `json:"auto_avatar"`
	LastError    string              `json:"last_error,omitempty"`
}

// Snapshot returns the current session view. The face slice is a copy; the
// caller may hold it across state changes.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	visible := c.visibleLocked()
	out := make([]faces.DetectedFace, len(visible))
	copy(out, visible)

	return Snapshot{
		SessionID:    c.id,
		State:        c.state,
		ClusterCount: len(c.clusters),
		Index:        c.index,
		VisibleFaces: out,
		People:       c.people,
		AutoAvatar:   c.autoAvatar,
		LastError:    c.lastError,
	}
}
