// Package faces holds the strict internal record types for the face-review
// workspace. External service responses have loosely structured shapes; the
// service clients map them into these records at the boundary so downstream
// code never branches on response shape.
package faces

import "github.com/NickRemizov/face-review/internal/geometry"

// DetectedFace is one face record as the workspace sees it. BoundingBox is
// nil when the service reported no usable box (missing or degenerate).
// Verified is the authoritative "this is correct" signal; confidence values
// are advisory once a face is verified.
type DetectedFace struct {
	ID                    string        `json:"id"`
	PhotoID               string        `json:"photo_id"`
	PersonID              string        `json:"person_id,omitempty"` // empty = unassigned
	PersonName            string        `json:"person_name,omitempty"`
	BoundingBox           *geometry.Box `json:"bounding_box,omitempty"`
	DetectionConfidence   float64       `json:"detection_confidence"`
	RecognitionConfidence float64       `json:"recognition_confidence"`
	Verified              bool          `json:"verified"`
	HiddenByUser          bool          `json:"hidden_by_user"`
	Excluded              bool          `json:"excluded"`
}

// Cluster is an ordered group of unassigned faces the similarity service
// believes belong to one unknown person. Clusters exist only for the
// duration of a review session and are never persisted.
type Cluster struct {
	Faces []DetectedFace `json:"faces"`
}

// PhotoIDs returns the distinct photo ids touched by the given faces,
// preserving first-seen order.
func PhotoIDs(fs []DetectedFace) []string {
	seen := make(map[string]struct{}, len(fs))
	var ids []string
	for _, f := range fs {
		if _, ok := seen[f.PhotoID]; ok {
			continue
		}
		seen[f.PhotoID] = struct{}{}
		ids = append(ids, f.PhotoID)
	}
	return ids
}

// Person is an assignable person from the gallery catalog.
type Person struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
	FaceCount int    `json:"face_count"`
}

// PhotoStats is the derived recognition summary for one photo.
type PhotoStats struct {
	Total           int  `json:"total"`
	Recognized      int  `json:"recognized"`
	FullyRecognized bool `json:"fully_recognized"`
}

// ComputeStats derives the recognition summary from a photo's face list.
// A photo is fully recognized iff the list is non-empty and every entry is
// verified.
func ComputeStats(fs []DetectedFace) PhotoStats {
	stats := PhotoStats{Total: len(fs)}
	allVerified := len(fs) > 0
	for _, f := range fs {
		if f.PersonID != "" {
			stats.Recognized++
		}
		if !f.Verified {
			allVerified = false
		}
	}
	stats.FullyRecognized = allVerified
	return stats
}

// AuditResult is one per-person row of a consistency audit report.
type AuditResult struct {
	PersonID        string `json:"person_id"`
	PersonName      string `json:"person_name"`
	FaceCount       int    `json:"face_count"`
	DescriptorCount int    `json:"descriptor_count"`
	OutlierCount    int    `json:"outlier_count"`
	ExcludedCount   int    `json:"excluded_count"`
	HasProblems     bool   `json:"has_problems"`
}

// AuditSummary aggregates an audit report across people.
type AuditSummary struct {
	TotalPeople        int `json:"total_people"`
	TotalFaces         int `json:"total_faces"`
	TotalOutliers      int `json:"total_outliers"`
	TotalExcluded      int `json:"total_excluded"`
	PeopleWithProblems int `json:"people_with_problems"`
}

// SummarizeAudit computes the aggregate summary for a full report.
func SummarizeAudit(rows []AuditResult) AuditSummary {
	var s AuditSummary
	s.TotalPeople = len(rows)
	for _, r := range rows {
		s.TotalFaces += r.FaceCount
		s.TotalOutliers += r.OutlierCount
		s.TotalExcluded += r.ExcludedCount
		if r.HasProblems {
			s.PeopleWithProblems++
		}
	}
	return s
}

// RepairResult is what the persistence service reports after clearing a
// person's outliers. ClearedCount is the exact number of faces moved from
// outlier to excluded; summary counters are adjusted by this delta, never
// recomputed from scratch.
type RepairResult struct {
	PersonID     string `json:"person_id"`
	ClearedCount int    `json:"cleared_count"`
}
