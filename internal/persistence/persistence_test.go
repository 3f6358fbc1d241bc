package persistence

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// newTestService starts a mock persistence service with the given endpoint
// handlers and returns a client pointed at it.
func newTestService(t *testing.T, handlers map[string]http.HandlerFunc) *Client {
	t.Helper()

	mux := http.NewServeMux()
	for pattern, handler := range handlers {
		mux.HandleFunc(pattern, handler)
	}
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	c, err := New(server.URL, "test-token")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func ok(data any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"success": true, "data": data})
	}
}

func TestGetFacesForPhotos(t *testing.T) {
	c := newTestService(t, map[string]http.HandlerFunc{
		"/faces/batch": ok([]map[string]any{
			{
				"photo_id": "p1",
				"faces": []map[string]any{
					{"id": "f1", "photo_id": "p1", "bbox": []float64{10, 20, 30, 40}, "det_score": 0.9, "verified": true},
					{"id": "f2", "photo_id": "p1", "bbox": []float64{0, 0, 0, 10}, "det_score": 0.5},
				},
			},
			{"photo_id": "p2", "faces": []map[string]any{}},
		}),
	})

	got, err := c.GetFacesForPhotos(context.Background(), []string{"p1", "p2"})
	if err != nil {
		t.Fatalf("GetFacesForPhotos: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d photos, want 2", len(got))
	}

	p1 := got["p1"]
	if len(p1) != 2 {
		t.Fatalf("p1 has %d faces, want 2", len(p1))
	}
	if p1[0].BoundingBox == nil || p1[0].BoundingBox.Width != 30 {
		t.Errorf("f1 bounding box = %+v, want width 30", p1[0].BoundingBox)
	}
	if !p1[0].Verified {
		t.Error("f1 should be verified")
	}
	// Degenerate bbox must map to an absent box, not a zero box.
	if p1[1].BoundingBox != nil {
		t.Errorf("f2 bounding box = %+v, want nil for degenerate bbox", p1[1].BoundingBox)
	}
	if fs := got["p2"]; len(fs) != 0 {
		t.Errorf("p2 has %d faces, want 0", len(fs))
	}
}

func TestUpdateFaceReturnsPatchedPhoto(t *testing.T) {
	c := newTestService(t, map[string]http.HandlerFunc{
		"/faces/f1": func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPut {
				t.Errorf("method = %s, want PUT", r.Method)
			}
			var update FaceUpdate
			if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
				t.Fatalf("decode update: %v", err)
			}
			if update.Verified == nil || !*update.Verified {
				t.Errorf("update = %+v, want verified=true", update)
			}
			ok(map[string]any{
				"photo_id": "p1",
				"faces":    []map[string]any{{"id": "f1", "photo_id": "p1", "verified": true}},
			})(w, r)
		},
	})

	verified := true
	photoID, list, err := c.UpdateFace(context.Background(), "f1", FaceUpdate{Verified: &verified})
	if err != nil {
		t.Fatalf("UpdateFace: %v", err)
	}
	if photoID != "p1" {
		t.Errorf("photoID = %q, want p1", photoID)
	}
	if len(list) != 1 || !list[0].Verified {
		t.Errorf("list = %+v, want one verified face", list)
	}
}

func TestAssignFacesToPerson(t *testing.T) {
	c := newTestService(t, map[string]http.HandlerFunc{
		"/faces/assign": func(w http.ResponseWriter, r *http.Request) {
			var body map[string]any
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body["person_id"] != "person-x" {
				t.Errorf("person_id = %v, want person-x", body["person_id"])
			}
			ids, _ := body["face_ids"].([]any)
			if len(ids) != 2 {
				t.Errorf("face_ids = %v, want exactly 2 ids", body["face_ids"])
			}
			ok([]map[string]any{
				{"photo_id": "p1", "faces": []map[string]any{{"id": "f1", "photo_id": "p1", "person_id": "person-x"}}},
				{"photo_id": "p2", "faces": []map[string]any{{"id": "f3", "photo_id": "p2", "person_id": "person-x"}}},
			})(w, r)
		},
	})

	got, err := c.AssignFacesToPerson(context.Background(), "person-x", []string{"f1", "f3"}, "f1")
	if err != nil {
		t.Fatalf("AssignFacesToPerson: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d photos, want 2", len(got))
	}
	if got["p1"][0].PersonID != "person-x" {
		t.Errorf("p1 face person = %q, want person-x", got["p1"][0].PersonID)
	}
}

func TestClearPersonOutliers(t *testing.T) {
	c := newTestService(t, map[string]http.HandlerFunc{
		"/people/person-y/clear-outliers": ok(map[string]any{"person_id": "person-y", "cleared_count": 4}),
	})

	got, err := c.ClearPersonOutliers(context.Background(), "person-y")
	if err != nil {
		t.Fatalf("ClearPersonOutliers: %v", err)
	}
	if got.ClearedCount != 4 {
		t.Errorf("ClearedCount = %d, want 4", got.ClearedCount)
	}
}

func TestGetAutoAvatarSetting(t *testing.T) {
	c := newTestService(t, map[string]http.HandlerFunc{
		"/settings/auto-avatar": ok(map[string]any{"enabled": true}),
	})

	enabled, err := c.GetAutoAvatarSetting(context.Background())
	if err != nil {
		t.Fatalf("GetAutoAvatarSetting: %v", err)
	}
	if !enabled {
		t.Error("enabled = false, want true")
	}
}
