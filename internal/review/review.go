// Package review drives the cluster-by-cluster operator review of
// unassigned faces. A Controller is session-scoped state: created fresh for
// each review session, torn down on close, never shared between sessions.
// Clusters are consumed strictly in the order the clustering call returned
// them; navigation only moves an index over the in-memory array.
package review

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/NickRemizov/face-review/internal/facecache"
	"github.com/NickRemizov/face-review/internal/faces"
)

// State is the controller's lifecycle position.
type State string

// Controller states.
const (
	StateIdle       State = "idle"
	StateLoading    State = "loading_clusters"
	StateReviewing  State = "reviewing"
	StateSubmitting State = "submitting"
	StateDone       State = "done"
)

// RecognitionService is the slice of the recognition client the controller
// needs.
type RecognitionService interface {
	ClusterUnassigned(ctx context.Context) ([]faces.Cluster, error)
}

// PersistenceService is the slice of the persistence client the controller
// needs.
type PersistenceService interface {
	AssignFacesToPerson(ctx context.Context, personID string, faceIDs []string, avatarFaceID string) (map[string][]faces.DetectedFace, error)
	RejectFaces(ctx context.Context, faceIDs []string) (map[string][]faces.DetectedFace, error)
	MarkPhotoProcessed(ctx context.Context, photoID string) error
	ListPeople(ctx context.Context) ([]faces.Person, error)
	GetAutoAvatarSetting(ctx context.Context) (bool, error)
	CreatePerson(ctx context.Context, name, avatarFaceID string) (*faces.Person, error)
}

// Controller is the review-session state machine. All methods are safe for
// concurrent use; mutations are serialized and re-entrant submits are
// rejected with a StateError instead of queueing.
type Controller struct {
	id          string
	recognition RecognitionService
	store       PersistenceService
	cache       *facecache.Cache
	onDone      func()

	mu         sync.Mutex
	state      State
	clusters   []faces.Cluster
	index      int
	removed    map[string]struct{} // face ids removed at the current index
	resolved   map[int]struct{}    // cluster indexes already assigned or rejected
	people     []faces.Person
	autoAvatar bool
	lastError  string
	closed     bool
}

// NewController creates an idle controller for one review session. The
// completion callback is invoked once when the last cluster is resolved;
// it may be nil. The cache receives a patch for every photo a confirmed
// assign/reject touched.
func NewController(rec RecognitionService, store PersistenceService, cache *facecache.Cache, onDone func()) *Controller {
	return &Controller{
		id:          uuid.NewString(),
		recognition: rec,
		store:       store,
		cache:       cache,
		onDone:      onDone,
		state:       StateIdle,
		removed:     make(map[string]struct{}),
		resolved:    make(map[int]struct{}),
	}
}

// ID returns the session id.
func (c *Controller) ID() string {
	return c.id
}

// Open issues one clustering request and, on success, positions the session
// at the first cluster. The assignable-person list and the auto-avatar flag
// are loaded concurrently; their failure is logged but does not block the
// session. With nothing to review the session completes immediately.
func (c *Controller) Open(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateIdle {
		c.mu.Unlock()
		return &faces.StateError{Op: "open review session", State: string(c.state)}
	}
	c.state = StateLoading
	c.mu.Unlock()

	clusters, err := c.recognition.ClusterUnassigned(ctx)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil // session torn down while loading; discard the result
	}
	if err != nil {
		c.state = StateIdle
		c.lastError = err.Error()
		c.mu.Unlock()
		return err
	}

	c.clusters = clusters
	c.index = 0
	c.removed = make(map[string]struct{})
	c.resolved = make(map[int]struct{})
	c.lastError = ""

	var finished func()
	if len(clusters) == 0 {
		c.state = StateDone
		finished = c.onDone
	} else {
		c.state = StateReviewing
	}
	c.mu.Unlock()

	c.loadSessionData(ctx)

	if finished != nil {
		finished()
	}
	return nil
}

// loadSessionData fetches the person list and the auto-avatar flag in
// parallel. Both are conveniences for the operator; errors only get logged.
func (c *Controller) loadSessionData(ctx context.Context) {
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		people, err := c.store.ListPeople(ctx)
		if err != nil {
			log.Printf("review %s: could not load people: %v", c.id, err)
			return
		}
		c.mu.Lock()
		if !c.closed {
			c.people = people
		}
		c.mu.Unlock()
	}()

	go func() {
		defer wg.Done()
		enabled, err := c.store.GetAutoAvatarSetting(ctx)
		if err != nil {
			log.Printf("review %s: could not load auto-avatar setting: %v", c.id, err)
			return
		}
		c.mu.Lock()
		if !c.closed {
			c.autoAvatar = enabled
		}
		c.mu.Unlock()
	}()

	wg.Wait()
}

// RemoveFaceFromCurrent drops one face from the current cluster's visible
// set without leaving the cluster. The removal is local only and is undone
// whenever the index changes.
func (c *Controller) RemoveFaceFromCurrent(faceID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateReviewing {
		return &faces.StateError{Op: "remove face", State: string(c.state)}
	}
	if _, done := c.resolved[c.index]; done {
		return &faces.StateError{Op: "remove face", State: "cluster already resolved"}
	}
	for _, f := range c.clusters[c.index].Faces {
		if f.ID == faceID {
			c.removed[faceID] = struct{}{}
			return nil
		}
	}
	return &faces.ValidationError{Message: "face " + faceID + " is not part of the current cluster"}
}

// GoNext moves to the next cluster, bounded to the queue length. No network
// call is made; the removed set resets only if the index actually changes.
func (c *Controller) GoNext() error {
	return c.move(1)
}

// GoPrevious moves to the previous cluster, bounded to index 0.
func (c *Controller) GoPrevious() error {
	return c.move(-1)
}

func (c *Controller) move(delta int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateReviewing {
		return &faces.StateError{Op: "navigate", State: string(c.state)}
	}
	next := c.index + delta
	if next < 0 {
		next = 0
	}
	if next > len(c.clusters)-1 {
		next = len(c.clusters) - 1
	}
	if next != c.index {
		c.index = next
		c.removed = make(map[string]struct{})
	}
	return nil
}

// AssignCurrentToPerson attaches the current cluster's visible faces to the
// given person and advances the queue. On failure the controller stays at
// the same cluster with the removed set intact, so a failed submit can
// never look like a success.
func (c *Controller) AssignCurrentToPerson(ctx context.Context, personID string) error {
	if personID == "" {
		return &faces.ValidationError{Message: "person id is required"}
	}
	return c.submitCurrent(ctx, "assign", func(faceIDs []string, avatarFaceID string) (map[string][]faces.DetectedFace, error) {
		return c.store.AssignFacesToPerson(ctx, personID, faceIDs, avatarFaceID)
	})
}

// RejectCurrent discards the current cluster's visible faces outright and
// advances the queue.
func (c *Controller) RejectCurrent(ctx context.Context) error {
	return c.submitCurrent(ctx, "reject", func(faceIDs []string, _ string) (map[string][]faces.DetectedFace, error) {
		return c.store.RejectFaces(ctx, faceIDs)
	})
}

// submitCurrent runs one assign/reject round trip: validate the visible set,
// enter Submitting, send, then either advance or surface the error and stay.
func (c *Controller) submitCurrent(ctx context.Context, op string, send func(faceIDs []string, avatarFaceID string) (map[string][]faces.DetectedFace, error)) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return &faces.StateError{Op: op, State: "closed"}
	}
	if c.state == StateSubmitting {
		c.mu.Unlock()
		return &faces.StateError{Op: op, State: string(StateSubmitting)}
	}
	if c.state != StateReviewing {
		c.mu.Unlock()
		return &faces.StateError{Op: op, State: string(c.state)}
	}
	if _, done := c.resolved[c.index]; done {
		c.mu.Unlock()
		return &faces.StateError{Op: op, State: "cluster already resolved"}
	}

	visible := c.visibleLocked()
	if len(visible) == 0 {
		c.mu.Unlock()
		return &faces.ValidationError{Message: "current cluster has no visible faces"}
	}

	faceIDs := make([]string, len(visible))
	for i, f := range visible {
		faceIDs[i] = f.ID
	}
	// The default avatar candidate is always the first visible face.
	var avatarFaceID string
	if c.autoAvatar {
		avatarFaceID = visible[0].ID
	}
	photoIDs := faces.PhotoIDs(visible)
	c.state = StateSubmitting
	c.mu.Unlock()

	patches, err := send(faceIDs, avatarFaceID)

	c.mu.Lock()
	if c.closed {
		// Torn down while the submit was in flight: the network call may
		// have landed, but no local mutation follows.
		c.mu.Unlock()
		return nil
	}
	if err != nil {
		c.state = StateReviewing
		c.lastError = err.Error()
		c.mu.Unlock()
		return err
	}

	for photoID, list := range patches {
		c.cache.Patch(photoID, list)
	}

	c.lastError = ""
	c.resolved[c.index] = struct{}{}
	var finished func()
	if c.index+1 < len(c.clusters) {
		c.index++
		c.removed = make(map[string]struct{})
		c.state = StateReviewing
	} else {
		c.state = StateDone
		finished = c.onDone
	}
	c.mu.Unlock()

	// Best effort: flag every touched photo as processed. The fan-out runs
	// after the lock is released so session reads never wait on it; a
	// failure here is logged and never blocks advancing.
	for _, photoID := range photoIDs {
		if err := c.store.MarkPhotoProcessed(ctx, photoID); err != nil {
			log.Printf("review %s: could not mark photo %s processed: %v", c.id, photoID, err)
		}
	}

	if finished != nil {
		finished()
	}
	return nil
}

// CreatePersonFromCurrent creates a new person named after the operator's
// input, proposing the current cluster's first visible face as the avatar
// when the auto-avatar flag is on. The new person is appended to the
// assignable list.
func (c *Controller) CreatePersonFromCurrent(ctx context.Context, name string) (*faces.Person, error) {
	if name == "" {
		return nil, &faces.ValidationError{Message: "person name is required"}
	}

	c.mu.Lock()
	if c.state != StateReviewing {
		c.mu.Unlock()
		return nil, &faces.StateError{Op: "create person", State: string(c.state)}
	}
	var avatarFaceID string
	if visible := c.visibleLocked(); c.autoAvatar && len(visible) > 0 {
		avatarFaceID = visible[0].ID
	}
	c.mu.Unlock()

	person, err := c.store.CreatePerson(ctx, name, avatarFaceID)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if !c.closed {
		c.people = append(c.people, *person)
	}
	c.mu.Unlock()
	return person, nil
}

// FilterPeople returns the assignable people matching the query, diacritic
// and case insensitive.
func (c *Controller) FilterPeople(query string) []faces.Person {
	c.mu.Lock()
	people := c.people
	c.mu.Unlock()
	return faces.FilterPeople(people, query)
}

// Close tears the session down: all in-memory cluster state is discarded
// immediately, and any submit still in flight has its result ignored.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.clusters = nil
	c.removed = make(map[string]struct{})
	c.people = nil
	c.state = StateIdle
}

// visibleLocked returns the current cluster's faces minus the removed set,
// preserving original order. A cluster that has already been assigned or
// rejected has no visible faces; navigating back to it must not offer the
// same faces for a second submit. Caller holds c.mu.
func (c *Controller) visibleLocked() []faces.DetectedFace {
	if c.index < 0 || c.index >= len(c.clusters) {
		return nil
	}
	if _, done := c.resolved[c.index]; done {
		return nil
	}
	var out []faces.DetectedFace
	for _, f := range c.clusters[c.index].Faces {
		if _, gone := c.removed[f.ID]; !gone {
			out = append(out, f)
		}
	}
	return out
}
