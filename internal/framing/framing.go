// Package framing computes the face-centered crop used by gallery thumbnails.
// The result is expressed as a CSS-style zoom factor plus background-position
// percentages, so the front end can apply it without any further math.
package framing

import "github.com/NickRemizov/face-review/internal/geometry"

// Params are the presentation tunables for thumbnail framing. The values are
// conventions chosen for headshot-style tiles, not derived constants.
type Params struct {
	FaceHeightRatio float64 `yaml:"face_height_ratio"` // target face height as a fraction of the tile
	MinScale        float64 `yaml:"min_scale"`         // never shrink below native size
	MaxScale        float64 `yaml:"max_scale"`         // never zoom past this factor
	AnchorX         float64 `yaml:"anchor_x"`          // horizontal anchor, fraction of the tile
	AnchorY         float64 `yaml:"anchor_y"`          // vertical anchor, fraction of the tile
}

// DefaultParams returns the standard gallery framing convention: face height
// at 25% of the tile, zoom clamped to [1.0, 3.5], face centered horizontally
// in the upper quarter of the tile.
func DefaultParams() Params {
	return Params{
		FaceHeightRatio: 0.25,
		MinScale:        1.0,
		MaxScale:        3.5,
		AnchorX:         0.5,
		AnchorY:         0.25,
	}
}

// Framing is a thumbnail crop: a uniform zoom factor and background-position
// percentages, both in [0, 100].
type Framing struct {
	Scale     float64 `json:"scale"`
	PositionX float64 `json:"position_x"`
	PositionY float64 `json:"position_y"`
}

// Compute returns the face-centered framing for one bounding box using the
// default parameters. See ComputeWith.
func Compute(box geometry.Box, imageWidth, imageHeight int) *Framing {
	return ComputeWith(DefaultParams(), box, imageWidth, imageHeight)
}

// ComputeWith returns the framing that places the face at the anchor point of
// a square thumbnail tile rendered in cover fit. Returns nil for a degenerate
// box or non-positive image dimensions.
//
// The tile pins one image axis to 100% and overflows the other, so the scale
// formula differs between landscape and portrait sources. The zoom is clamped
// to [MinScale, MaxScale] and the offset is clamped so the crop never reveals
// area outside the source image; an axis without overflow stays at 50%.
func ComputeWith(p Params, box geometry.Box, imageWidth, imageHeight int) *Framing {
	if !box.Valid() || imageWidth <= 0 || imageHeight <= 0 {
		return nil
	}

	iw := float64(imageWidth)
	ih := float64(imageHeight)
	landscape := iw >= ih

	// Face height as a fraction of the tile in the unzoomed cover render.
	// Landscape pins the vertical axis, portrait pins the horizontal one.
	var faceFrac float64
	if landscape {
		faceFrac = box.Height / ih
	} else {
		faceFrac = box.Height / iw
	}

	scale := p.FaceHeightRatio / faceFrac
	scale = min(max(scale, p.MinScale), p.MaxScale)

	// Rendered image size in tile units at the chosen zoom.
	var renderedW, renderedH float64
	if landscape {
		renderedH = scale
		renderedW = scale * iw / ih
	} else {
		renderedW = scale
		renderedH = scale * ih / iw
	}

	center := box.Center()
	return &Framing{
		Scale:     scale,
		PositionX: axisPosition(p.AnchorX, center.X/iw, renderedW),
		PositionY: axisPosition(p.AnchorY, center.Y/ih, renderedH),
	}
}

// axisPosition converts the desired anchor placement on one axis into a
// background-position percentage. rendered is the image extent in tile units;
// center is the face center as a fraction of the image.
func axisPosition(anchor, center, rendered float64) float64 {
	if rendered <= 1 {
		return 50 // no overflow on this axis
	}

	// Offset of the image edge that puts the face center at the anchor,
	// clamped so the tile stays fully covered by the image.
	offset := anchor - center*rendered
	offset = min(max(offset, 1-rendered), 0)

	// background-position p% aligns the p% point of the image with the p%
	// point of the tile: offset = p * (1 - rendered).
	return offset / (1 - rendered) * 100
}
