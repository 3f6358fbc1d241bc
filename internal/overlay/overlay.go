// Package overlay renders a photo with its face bounding boxes and labels
// burned in. The canvas always matches the image's natural pixel dimensions,
// so boxes (already in natural-pixel coordinates) need no scaling at draw
// time; only the front end scales the result for display.
package overlay

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/NickRemizov/face-review/internal/faces"
	"github.com/NickRemizov/face-review/internal/geometry"
)

const (
	boxStrokeWidth      = 3
	selectedStrokeWidth = 5
	labelBarHeight      = 16
	labelPadding        = 4
)

// Renderer draws face overlays. The palette is indexed by the face's
// position in the list, so colors are stable across re-renders of the same
// face list.
type Renderer struct {
	palette       []color.NRGBA
	selectedColor color.NRGBA
	labelText     color.NRGBA
}

// NewRenderer creates a renderer with the given box palette. An empty
// palette falls back to DefaultPalette.
func NewRenderer(palette []color.NRGBA) *Renderer {
	if len(palette) == 0 {
		palette = DefaultPalette()
	}
	return &Renderer{
		palette:       palette,
		selectedColor: color.NRGBA{R: 0xFF, G: 0xFF, B: 0x00, A: 0xFF},
		labelText:     color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
	}
}

// Render draws the photo onto a canvas at its natural size, strokes every
// face box with its palette color, emphasizes the selected face, and draws
// a filled label bar above each assigned face showing the person's name plus
// a confidence percentage or a verified mark.
func (r *Renderer) Render(src image.Image, fs []faces.DetectedFace, selectedID string) *image.NRGBA {
	canvas := imaging.Clone(src)

	for i, f := range fs {
		if f.BoundingBox == nil {
			continue
		}
		box := *f.BoundingBox

		strokeColor := r.palette[i%len(r.palette)]
		width := boxStrokeWidth
		if selectedID != "" && f.ID == selectedID {
			strokeColor = r.selectedColor
			width = selectedStrokeWidth
		}
		strokeRect(canvas, box, strokeColor, width)

		if f.PersonID != "" {
			r.drawLabel(canvas, box, strokeColor, labelFor(f))
		}
	}
	return canvas
}

// labelFor builds the label bar text: person name plus either a verified
// mark or the recognition confidence as a percentage.
func labelFor(f faces.DetectedFace) string {
	name := f.PersonName
	if name == "" {
		name = f.PersonID
	}
	if f.Verified {
		return name + " (verified)"
	}
	return fmt.Sprintf("%s %.0f%%", name, f.RecognitionConfidence*100)
}

// drawLabel fills a bar directly above the box and draws the text into it.
// A box at the very top of the image gets the bar inside its upper edge.
func (r *Renderer) drawLabel(canvas *image.NRGBA, box geometry.Box, bg color.NRGBA, text string) {
	face := basicfont.Face7x13
	textWidth := font.MeasureString(face, text).Ceil()

	x0 := int(box.X)
	y0 := int(box.Y) - labelBarHeight
	if y0 < 0 {
		y0 = int(box.Y)
	}
	bar := image.Rect(x0, y0, x0+textWidth+2*labelPadding, y0+labelBarHeight)
	bar = bar.Intersect(canvas.Bounds())
	if bar.Empty() {
		return
	}
	draw.Draw(canvas, bar, &image.Uniform{C: bg}, image.Point{}, draw.Src)

	drawer := &font.Drawer{
		Dst:  canvas,
		Src:  &image.Uniform{C: r.labelText},
		Face: face,
		Dot:  fixed.P(x0+labelPadding, y0+labelBarHeight-labelPadding),
	}
	drawer.DrawString(text)
}

// strokeRect strokes the box outline with the given thickness, clamped to
// the canvas bounds.
func strokeRect(canvas *image.NRGBA, box geometry.Box, c color.NRGBA, width int) {
	x0, y0 := int(box.X), int(box.Y)
	x1, y1 := int(box.X+box.Width), int(box.Y+box.Height)

	fill := &image.Uniform{C: c}
	edges := []image.Rectangle{
		image.Rect(x0-width, y0-width, x1+width, y0), // top
		image.Rect(x0-width, y1, x1+width, y1+width), // bottom
		image.Rect(x0-width, y0, x0, y1),             // left
		image.Rect(x1, y0, x1+width, y1),             // right
	}
	for _, edge := range edges {
		edge = edge.Intersect(canvas.Bounds())
		if !edge.Empty() {
			draw.Draw(canvas, edge, fill, image.Point{}, draw.Src)
		}
	}
}

// FaceAt returns the first face whose box contains the image-space point,
// in list order. Faces without a box never match.
func FaceAt(p geometry.Point, fs []faces.DetectedFace) (faces.DetectedFace, bool) {
	boxes := make([]geometry.Box, len(fs))
	for i, f := range fs {
		if f.BoundingBox != nil {
			boxes[i] = *f.BoundingBox
		}
	}
	idx := geometry.HitTest(p, boxes)
	if idx < 0 {
		return faces.DetectedFace{}, false
	}
	return fs[idx], true
}

// Decode parses photo bytes into an image.
func Decode(data []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("could not decode photo: %w", err)
	}
	return img, nil
}

// EncodeJPEG serializes a rendered canvas for delivery to the browser.
func EncodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(90)); err != nil {
		return nil, fmt.Errorf("could not encode overlay: %w", err)
	}
	return buf.Bytes(), nil
}
