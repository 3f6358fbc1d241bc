// Package audit drives the per-person consistency report. The full result
// list arrives in one call and is revealed into the displayed subset at a
// fixed pace, purely to avoid a layout jump when hundreds of rows render at
// once. The reveal is a presentation throttle only: server order is
// preserved and the underlying list is never reordered.
package audit

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/NickRemizov/face-review/internal/faces"
)

// Service is the slice of the persistence client the controller needs.
type Service interface {
	RunAudit(ctx context.Context) ([]faces.AuditResult, error)
	ClearPersonOutliers(ctx context.Context, personID string) (*faces.RepairResult, error)
}

// DefaultRevealInterval paces the row reveal. Presentation tunable.
const DefaultRevealInterval = 60 * time.Millisecond

// Controller owns one audit view. Safe for concurrent use.
type Controller struct {
	service  Service
	interval time.Duration

	mu        sync.Mutex
	runID     string
	results   []faces.AuditResult
	displayed int // revealed prefix length of results
	summary   faces.AuditSummary
	running   bool
	fixing    bool
	closed    bool
	gen       int // reveal generation; an orphaned ticker sees a stale gen and exits
	stop      chan struct{}
}

// NewController creates an audit controller. A non-positive interval falls
// back to the default pace.
func NewController(service Service, revealInterval time.Duration) *Controller {
	if revealInterval <= 0 {
		revealInterval = DefaultRevealInterval
	}
	return &Controller{service: service, interval: revealInterval}
}

// Run executes a full audit and starts revealing the rows. A fresh run
// unconditionally cancels any reveal still in progress; nothing of the
// previous report survives into the new one.
func (c *Controller) Run(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return &faces.StateError{Op: "run audit", State: "closed"}
	}
	if c.running {
		c.mu.Unlock()
		return &faces.StateError{Op: "run audit", State: "running"}
	}
	c.running = true
	c.stopRevealLocked()
	c.mu.Unlock()

	results, err := c.service.RunAudit(ctx)

	c.mu.Lock()
	c.running = false
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	if err != nil {
		c.mu.Unlock()
		return err
	}

	c.runID = uuid.NewString()
	c.results = results
	c.displayed = 0
	c.summary = faces.SummarizeAudit(results)
	c.startRevealLocked()
	c.mu.Unlock()
	return nil
}

// startRevealLocked launches the repeating reveal task: one row per tick
// until the whole report is displayed. Caller holds c.mu.
func (c *Controller) startRevealLocked() {
	if len(c.results) == 0 {
		return
	}
	c.gen++
	gen := c.gen
	stop := make(chan struct{})
	c.stop = stop

	go func() {
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				c.mu.Lock()
				if c.gen != gen || c.closed {
					c.mu.Unlock()
					return
				}
				c.displayed++
				done := c.displayed >= len(c.results)
				c.mu.Unlock()
				if done {
					return
				}
			}
		}
	}()
}

// stopRevealLocked cancels the reveal task if one is active. Caller holds
// c.mu. Bumping the generation makes a ticker that already fired a no-op.
func (c *Controller) stopRevealLocked() {
	c.gen++
	if c.stop != nil {
		close(c.stop)
		c.stop = nil
	}
}

// FixPerson repairs one person's outliers. On success exactly that row is
// updated, in both the full list and the displayed subset, and the summary
// counters move by the exact delta the repair call reported. On failure the
// report stays as displayed.
func (c *Controller) FixPerson(ctx context.Context, personID string) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return &faces.StateError{Op: "fix outliers", State: "closed"}
	}
	if c.fixing {
		c.mu.Unlock()
		return &faces.StateError{Op: "fix outliers", State: "fixing"}
	}
	if c.rowIndexLocked(personID) < 0 {
		c.mu.Unlock()
		return &faces.ValidationError{Message: "person " + personID + " is not part of the audit report"}
	}
	c.fixing = true
	c.mu.Unlock()

	result, err := c.service.ClearPersonOutliers(ctx, personID)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.fixing = false
	if c.closed {
		return nil
	}
	if err != nil {
		return err
	}

	idx := c.rowIndexLocked(personID)
	if idx < 0 {
		return nil // a fresh run replaced the report while fixing
	}

	row := &c.results[idx]
	hadProblems := row.HasProblems
	delta := result.ClearedCount

	row.OutlierCount -= delta
	if row.OutlierCount < 0 {
		row.OutlierCount = 0
	}
	row.ExcludedCount += delta
	row.HasProblems = row.OutlierCount > 0

	c.summary.TotalOutliers -= delta
	if c.summary.TotalOutliers < 0 {
		c.summary.TotalOutliers = 0
	}
	c.summary.TotalExcluded += delta
	if hadProblems && !row.HasProblems {
		c.summary.PeopleWithProblems--
	}
	return nil
}

// FixAll repairs every person the report flags and then re-runs the whole
// audit from scratch. No incremental merge: the fresh report replaces the
// old one entirely.
func (c *Controller) FixAll(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return &faces.StateError{Op: "fix all", State: "closed"}
	}
	if c.fixing {
		c.mu.Unlock()
		return &faces.StateError{Op: "fix all", State: "fixing"}
	}
	c.fixing = true
	var flagged []string
	for _, row := range c.results {
		if row.HasProblems {
			flagged = append(flagged, row.PersonID)
		}
	}
	c.mu.Unlock()

	var firstErr error
	for _, personID := range flagged {
		if _, err := c.service.ClearPersonOutliers(ctx, personID); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	c.mu.Lock()
	c.fixing = false
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return nil
	}
	if firstErr != nil {
		return firstErr
	}
	return c.Run(ctx)
}

// Close tears the view down and cancels the reveal task unconditionally, so
// no orphaned timer mutates state after teardown.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.stopRevealLocked()
	c.results = nil
	c.displayed = 0
}

// rowIndexLocked finds a person's row. Caller holds c.mu.
func (c *Controller) rowIndexLocked(personID string) int {
	for i, row := range c.results {
		if row.PersonID == personID {
			return i
		}
	}
	return -1
}

// Snapshot is the read-only audit view for rendering.
type Snapshot struct {
	RunID     string              `json:"run_id"`
	TotalRows int                 `json:"total_rows"`
	Displayed []faces.AuditResult `json:"displayed"`
	Summary   faces.AuditSummary  `json:"summary"`
	Complete  bool                `json:"complete"` // all rows revealed
	Fixing    bool                `json:"fixing"`
}

// Snapshot returns the currently displayed subset, the aggregate summary and
// the reveal progress. The row slice is a copy.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	shown := c.displayed
	if shown > len(c.results) {
		shown = len(c.results)
	}
	rows := make([]faces.AuditResult, shown)
	copy(rows, c.results[:shown])

	return Snapshot{
		RunID:     c.runID,
		TotalRows: len(c.results),
		Displayed: rows,
		Summary:   c.summary,
		Complete:  shown == len(c.results),
		Fixing:    c.fixing,
	}
}
