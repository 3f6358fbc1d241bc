// Package facecache keeps the per-gallery face summaries the grid and the
// tagging dialog render from. Entries are independent per photo id: bulk
// hydration fills the whole map in one batched request, and after a
// confirmed tagging operation exactly one photo's entry is patched locally
// with no network round-trip and no re-hydration of other photos.
package facecache

import (
	"context"
	"sync"

	"github.com/NickRemizov/face-review/internal/faces"
)

// Loader fetches face lists for a batch of photo ids. Satisfied by the
// persistence client.
type Loader interface {
	GetFacesForPhotos(ctx context.Context, photoIDs []string) (map[string][]faces.DetectedFace, error)
}

type entry struct {
	faces []faces.DetectedFace
	stats faces.PhotoStats
}

// Cache is the per-gallery face summary cache. Safe for concurrent readers
// and writers; writes land whole entries only, so a reader never observes a
// partially updated photo.
type Cache struct {
	mu      sync.RWMutex
	loader  Loader
	entries map[string]entry
}

// New creates an empty cache backed by the given loader.
func New(loader Loader) *Cache {
	return &Cache{
		loader:  loader,
		entries: make(map[string]entry),
	}
}

// Hydrate loads the face lists for all given photo ids in one batched
// request and writes them into the cache, one whole entry per photo. Photos
// the service omitted get an empty entry so their stats are well defined.
// On failure the cache is left exactly as it was.
func (c *Cache) Hydrate(ctx context.Context, photoIDs []string) error {
	if len(photoIDs) == 0 {
		return nil
	}

	loaded, err := c.loader.GetFacesForPhotos(ctx, photoIDs)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range photoIDs {
		c.entries[id] = newEntry(loaded[id])
	}
	return nil
}

// Patch replaces exactly one photo's face list with the server-confirmed
// value and recomputes that photo's stats. Other entries are untouched;
// hydration state of the rest of the gallery is irrelevant. Applying the
// same patch twice yields an identical entry.
func (c *Cache) Patch(photoID string, fs []faces.DetectedFace) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[photoID] = newEntry(fs)
}

// Remove drops the entries for the given photo ids, e.g. after photos are
// deleted from the gallery.
func (c *Cache) Remove(photoIDs []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range photoIDs {
		delete(c.entries, id)
	}
}

// Faces returns a copy of the cached face list for one photo. The second
// return value is false when the photo has never been hydrated or patched.
func (c *Cache) Faces(photoID string) ([]faces.DetectedFace, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[photoID]
	if !ok {
		return nil, false
	}
	out := make([]faces.DetectedFace, len(e.faces))
	copy(out, e.faces)
	return out, true
}

// Stats returns the derived recognition summary for one photo.
func (c *Cache) Stats(photoID string) (faces.PhotoStats, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[photoID]
	return e.stats, ok
}

// IsFullyVerified reports whether the photo has a non-empty face list with
// every entry verified. Unknown photos are not fully verified.
func (c *Cache) IsFullyVerified(photoID string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.entries[photoID].stats.FullyRecognized
}

// AllStats returns a snapshot of the per-photo stats for every cached photo.
func (c *Cache) AllStats() map[string]faces.PhotoStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]faces.PhotoStats, len(c.entries))
	for id, e := range c.entries {
		out[id] = e.stats
	}
	return out
}

func newEntry(fs []faces.DetectedFace) entry {
	owned := make([]faces.DetectedFace, len(fs))
	copy(owned, fs)
	return entry{faces: owned, stats: faces.ComputeStats(owned)}
}
