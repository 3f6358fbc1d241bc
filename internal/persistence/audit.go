package persistence

import (
	"context"

	"github.com/NickRemizov/face-review/internal/faces"
	"github.com/NickRemizov/face-review/internal/transport"
)

// RunAudit runs a full per-person consistency audit and returns the rows in
// the order the service produced them. That order is meaningful to the
// operator and must be preserved by callers.
func (c *Client) RunAudit(ctx context.Context) ([]faces.AuditResult, error) {
	result, err := transport.Post[[]faces.AuditResult](ctx, c.api, "audit/run", nil)
	if err != nil {
		return nil, err
	}
	return *result, nil
}

// ClearPersonOutliers repairs one person by excluding their outlier faces
// from similarity matching. The reported ClearedCount is the exact delta to
// apply to aggregate counters.
func (c *Client) ClearPersonOutliers(ctx context.Context, personID string) (*faces.RepairResult, error) {
	return transport.Post[faces.RepairResult](ctx, c.api, "people/"+personID+"/clear-outliers", nil)
}
