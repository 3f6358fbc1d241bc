package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/NickRemizov/face-review/internal/facecache"
	"github.com/NickRemizov/face-review/internal/faces"
	"github.com/NickRemizov/face-review/internal/geometry"
)

// requestWithChiParams creates a request with chi URL parameters
func requestWithChiParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// parseJSONResponse parses a JSON response body into the target type
func parseJSONResponse(t *testing.T, recorder *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.Unmarshal(recorder.Body.Bytes(), target); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nBody: %s", err, recorder.Body.String())
	}
}

// assertStatusCode checks if the response has the expected status code
func assertStatusCode(t *testing.T, recorder *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if recorder.Code != expected {
		t.Errorf("expected status %d, got %d\nBody: %s", expected, recorder.Code, recorder.Body.String())
	}
}

// assertJSONError checks if the response is a JSON error with the expected message
func assertJSONError(t *testing.T, recorder *httptest.ResponseRecorder, expectedMessage string) {
	t.Helper()
	var result map[string]string
	if err := json.Unmarshal(recorder.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse error response: %v\nBody: %s", err, recorder.Body.String())
	}
	if result["error"] != expectedMessage {
		t.Errorf("expected error '%s', got '%s'", expectedMessage, result["error"])
	}
}

// fakeLoader backs a face cache with a fixed photo->faces map.
type fakeLoader struct {
	data map[string][]faces.DetectedFace
	err  error
}

func (f *fakeLoader) GetFacesForPhotos(ctx context.Context, photoIDs []string) (map[string][]faces.DetectedFace, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[string][]faces.DetectedFace)
	for _, id := range photoIDs {
		if fs, ok := f.data[id]; ok {
			out[id] = fs
		}
	}
	return out, nil
}

// newTestCache creates a cache backed by the given photo->faces map.
func newTestCache(data map[string][]faces.DetectedFace) *facecache.Cache {
	return facecache.New(&fakeLoader{data: data})
}

func boxFace(id, photoID string, box geometry.Box) faces.DetectedFace {
	return faces.DetectedFace{ID: id, PhotoID: photoID, BoundingBox: &box}
}
