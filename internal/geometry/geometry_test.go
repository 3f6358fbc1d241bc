package geometry

import (
	"math"
	"testing"
)

func TestIoU(t *testing.T) {
	tests := []struct {
		name     string
		a        Box
		b        Box
		expected float64
	}{
		{
			name:     "identical boxes",
			a:        Box{X: 0, Y: 0, Width: 10, Height: 10},
			b:        Box{X: 0, Y: 0, Width: 10, Height: 10},
			expected: 1.0,
		},
		{
			name:     "no overlap",
			a:        Box{X: 0, Y: 0, Width: 10, Height: 10},
			b:        Box{X: 20, Y: 20, Width: 10, Height: 10},
			expected: 0.0,
		},
		{
			name:     "touching edges",
			a:        Box{X: 0, Y: 0, Width: 10, Height: 10},
			b:        Box{X: 10, Y: 0, Width: 10, Height: 10},
			expected: 0.0,
		},
		{
			name:     "partial overlap",
			a:        Box{X: 0, Y: 0, Width: 10, Height: 10},
			b:        Box{X: 5, Y: 5, Width: 10, Height: 10},
			expected: 25.0 / 175.0, // intersection=25, union=100+100-25=175
		},
		{
			name:     "one inside other",
			a:        Box{X: 0, Y: 0, Width: 20, Height: 20},
			b:        Box{X: 5, Y: 5, Width: 10, Height: 10},
			expected: 100.0 / 400.0, // intersection=100, union=400 (larger box)
		},
		{
			name:     "degenerate first box",
			a:        Box{X: 0, Y: 0, Width: 0, Height: 10},
			b:        Box{X: 0, Y: 0, Width: 10, Height: 10},
			expected: 0.0,
		},
		{
			name:     "degenerate second box",
			a:        Box{X: 0, Y: 0, Width: 10, Height: 10},
			b:        Box{X: 5, Y: 5, Width: 10, Height: -1},
			expected: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IoU(tt.a, tt.b)
			if math.Abs(result-tt.expected) > 0.0001 {
				t.Errorf("IoU(%v, %v) = %v, want %v", tt.a, tt.b, result, tt.expected)
			}
			if result < 0 || result > 1 {
				t.Errorf("IoU(%v, %v) = %v, outside [0,1]", tt.a, tt.b, result)
			}

			// IoU must be symmetric for every input pair.
			reversed := IoU(tt.b, tt.a)
			if math.Abs(result-reversed) > 0.0001 {
				t.Errorf("IoU not symmetric: %v vs %v", result, reversed)
			}
		})
	}
}

func TestIoUSelf(t *testing.T) {
	boxes := []Box{
		{X: 0, Y: 0, Width: 1, Height: 1},
		{X: -50, Y: 30, Width: 120, Height: 7.5},
		{X: 1000, Y: 2000, Width: 333, Height: 444},
	}
	for _, b := range boxes {
		if got := IoU(b, b); math.Abs(got-1.0) > 0.0001 {
			t.Errorf("IoU(%v, %v) = %v, want 1", b, b, got)
		}
	}
}

func TestMapToImage(t *testing.T) {
	// Landscape 2000x1000 image in a 400x400 container.
	img := Size{Width: 2000, Height: 1000}
	container := Size{Width: 400, Height: 400}

	tests := []struct {
		name     string
		point    Point
		fit      FitMode
		expected Point
		ok       bool
	}{
		{
			// Contain: scale 0.2, rendered 400x200, vertical offset 100.
			name:     "contain center",
			point:    Point{X: 200, Y: 200},
			fit:      FitContain,
			expected: Point{X: 1000, Y: 500},
			ok:       true,
		},
		{
			name:     "contain top-left of rendered image",
			point:    Point{X: 0, Y: 100},
			fit:      FitContain,
			expected: Point{X: 0, Y: 0},
			ok:       true,
		},
		{
			name:  "contain letterbox bar",
			point: Point{X: 200, Y: 50},
			fit:   FitContain,
			ok:    false,
		},
		{
			// Cover: scale 0.4, rendered 800x400, horizontal offset -200.
			name:     "cover center",
			point:    Point{X: 200, Y: 200},
			fit:      FitCover,
			expected: Point{X: 1000, Y: 500},
			ok:       true,
		},
		{
			name:     "cover left edge of container",
			point:    Point{X: 0, Y: 0},
			fit:      FitCover,
			expected: Point{X: 500, Y: 0},
			ok:       true,
		},
		{
			name:  "outside container",
			point: Point{X: 450, Y: 200},
			fit:   FitContain,
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MapToImage(tt.point, container, img, tt.fit)
			if ok != tt.ok {
				t.Fatalf("MapToImage(%v) ok = %v, want %v", tt.point, ok, tt.ok)
			}
			if !ok {
				return
			}
			if math.Abs(got.X-tt.expected.X) > 0.0001 || math.Abs(got.Y-tt.expected.Y) > 0.0001 {
				t.Errorf("MapToImage(%v) = %v, want %v", tt.point, got, tt.expected)
			}
		})
	}
}

func TestMapToImageDegenerateSizes(t *testing.T) {
	if _, ok := MapToImage(Point{X: 1, Y: 1}, Size{}, Size{Width: 10, Height: 10}, FitContain); ok {
		t.Error("expected no match for degenerate container")
	}
	if _, ok := MapToImage(Point{X: 1, Y: 1}, Size{Width: 10, Height: 10}, Size{Width: 0, Height: 5}, FitCover); ok {
		t.Error("expected no match for degenerate image")
	}
}

func TestHitTest(t *testing.T) {
	boxes := []Box{
		{X: 0, Y: 0, Width: 100, Height: 100},
		{X: 50, Y: 50, Width: 100, Height: 100}, // overlaps first box
		{X: 300, Y: 300, Width: 50, Height: 50},
	}

	tests := []struct {
		name     string
		point    Point
		expected int
	}{
		{name: "inside first only", point: Point{X: 10, Y: 10}, expected: 0},
		{name: "overlap region resolves to first", point: Point{X: 75, Y: 75}, expected: 0},
		{name: "inside second only", point: Point{X: 120, Y: 120}, expected: 1},
		{name: "inside third", point: Point{X: 320, Y: 320}, expected: 2},
		{name: "no match", point: Point{X: 200, Y: 10}, expected: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HitTest(tt.point, boxes); got != tt.expected {
				t.Errorf("HitTest(%v) = %d, want %d", tt.point, got, tt.expected)
			}
		})
	}
}

func TestHitTestSkipsDegenerateBoxes(t *testing.T) {
	boxes := []Box{
		{X: 0, Y: 0, Width: 0, Height: 100},
		{X: 0, Y: 0, Width: 100, Height: 100},
	}
	if got := HitTest(Point{X: 10, Y: 10}, boxes); got != 1 {
		t.Errorf("HitTest = %d, want 1 (degenerate box must not match)", got)
	}
}
