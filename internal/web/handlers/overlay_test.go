package handlers

import (
	"context"
	"errors"
	"image/color"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/NickRemizov/face-review/internal/faces"
	"github.com/NickRemizov/face-review/internal/geometry"
	"github.com/NickRemizov/face-review/internal/overlay"
)

type fakeDownloader struct {
	data []byte
	err  error
}

func (f *fakeDownloader) DownloadPhoto(ctx context.Context, photoID string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.data, nil
}

func testPhotoJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	data, err := overlay.EncodeJPEG(imaging.New(w, h, color.NRGBA{R: 20, G: 20, B: 20, A: 255}))
	if err != nil {
		t.Fatalf("encoding test photo: %v", err)
	}
	return data
}

func TestRender_ReturnsJPEGAtNaturalSize(t *testing.T) {
	cache := newTestCache(map[string][]faces.DetectedFace{
		"p1": {boxFace("f1", "p1", geometry.Box{X: 10, Y: 10, Width: 40, Height: 40})},
	})
	h := NewOverlayHandler(&fakeDownloader{data: testPhotoJPEG(t, 160, 120)}, cache, overlay.NewRenderer(nil))

	req := httptest.NewRequest(http.MethodGet, "/photos/p1/overlay", nil)
	req = requestWithChiParams(req, map[string]string{"uid": "p1"})
	rec := httptest.NewRecorder()

	h.Render(rec, req)

	assertStatusCode(t, rec, http.StatusOK)
	if ct := rec.Header().Get("Content-Type"); ct != "image/jpeg" {
		t.Fatalf("content type = %s, want image/jpeg", ct)
	}

	img, err := overlay.Decode(rec.Body.Bytes())
	if err != nil {
		t.Fatalf("response is not a decodable image: %v", err)
	}
	if img.Bounds().Dx() != 160 || img.Bounds().Dy() != 120 {
		t.Errorf("rendered size = %v, want 160x120", img.Bounds())
	}
}

func TestRender_UndecodablePhoto(t *testing.T) {
	cache := newTestCache(map[string][]faces.DetectedFace{"p1": {}})
	h := NewOverlayHandler(&fakeDownloader{data: []byte("not an image")}, cache, overlay.NewRenderer(nil))

	req := httptest.NewRequest(http.MethodGet, "/photos/p1/overlay", nil)
	req = requestWithChiParams(req, map[string]string{"uid": "p1"})
	rec := httptest.NewRecorder()

	h.Render(rec, req)

	assertStatusCode(t, rec, http.StatusUnprocessableEntity)
}

func TestRender_DownloadFailure(t *testing.T) {
	cache := newTestCache(map[string][]faces.DetectedFace{"p1": {}})
	h := NewOverlayHandler(&fakeDownloader{err: errors.New("gone")}, cache, overlay.NewRenderer(nil))

	req := httptest.NewRequest(http.MethodGet, "/photos/p1/overlay", nil)
	req = requestWithChiParams(req, map[string]string{"uid": "p1"})
	rec := httptest.NewRecorder()

	h.Render(rec, req)

	assertStatusCode(t, rec, http.StatusInternalServerError)
}

func TestHitTest_ResolvesContainerClickToFace(t *testing.T) {
	cache := newTestCache(map[string][]faces.DetectedFace{
		"p1": {boxFace("f1", "p1", geometry.Box{X: 10, Y: 10, Width: 50, Height: 50})},
	})
	h := NewOverlayHandler(&fakeDownloader{}, cache, overlay.NewRenderer(nil))
	if err := cache.Hydrate(context.Background(), []string{"p1"}); err != nil {
		t.Fatalf("hydrate: %v", err)
	}

	// Square image in a 2x container: contain fit doubles coordinates.
	body := `{"x": 60, "y": 60, "container_width": 200, "container_height": 200,
		"image_width": 100, "image_height": 100, "fit": "contain"}`
	req := httptest.NewRequest(http.MethodPost, "/photos/p1/hittest", strings.NewReader(body))
	req = requestWithChiParams(req, map[string]string{"uid": "p1"})
	rec := httptest.NewRecorder()

	h.HitTest(rec, req)

	assertStatusCode(t, rec, http.StatusOK)

	var resp HitTestResponse
	parseJSONResponse(t, rec, &resp)
	if !resp.Hit || resp.Face == nil || resp.Face.ID != "f1" {
		t.Errorf("hit test = %+v, want f1", resp)
	}
}

func TestHitTest_MissOutsideBoxes(t *testing.T) {
	cache := newTestCache(map[string][]faces.DetectedFace{
		"p1": {boxFace("f1", "p1", geometry.Box{X: 10, Y: 10, Width: 50, Height: 50})},
	})
	h := NewOverlayHandler(&fakeDownloader{}, cache, overlay.NewRenderer(nil))
	if err := cache.Hydrate(context.Background(), []string{"p1"}); err != nil {
		t.Fatalf("hydrate: %v", err)
	}

	body := `{"x": 190, "y": 10, "container_width": 200, "container_height": 200,
		"image_width": 100, "image_height": 100, "fit": "contain"}`
	req := httptest.NewRequest(http.MethodPost, "/photos/p1/hittest", strings.NewReader(body))
	req = requestWithChiParams(req, map[string]string{"uid": "p1"})
	rec := httptest.NewRecorder()

	h.HitTest(rec, req)

	assertStatusCode(t, rec, http.StatusOK)

	var resp HitTestResponse
	parseJSONResponse(t, rec, &resp)
	if resp.Hit || resp.Face != nil {
		t.Errorf("hit test = %+v, want miss", resp)
	}
}

func TestHitTest_RequiresHydration(t *testing.T) {
	h := NewOverlayHandler(&fakeDownloader{}, newTestCache(nil), overlay.NewRenderer(nil))

	body := `{"x": 1, "y": 1, "container_width": 10, "container_height": 10,
		"image_width": 10, "image_height": 10, "fit": "contain"}`
	req := httptest.NewRequest(http.MethodPost, "/photos/p1/hittest", strings.NewReader(body))
	req = requestWithChiParams(req, map[string]string{"uid": "p1"})
	rec := httptest.NewRecorder()

	h.HitTest(rec, req)

	assertStatusCode(t, rec, http.StatusNotFound)
}
