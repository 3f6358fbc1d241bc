package geometry

// FitMode describes how an image is fitted into its display container,
// mirroring the CSS object-fit values the gallery front end uses.
type FitMode string

// Supported fit modes.
const (
	FitContain FitMode = "contain" // whole image visible, letterboxed
	FitCover   FitMode = "cover"   // container filled, image cropped
)

// MapToImage converts a pointer location in container pixels to coordinates
// in the image's natural pixel space, accounting for the fit mode's uniform
// scale and centering offsets. The second return value is false when the
// point falls outside the rendered image rectangle (letterbox bars for
// contain) or outside the image itself, or when either size is degenerate.
func MapToImage(p Point, container, image Size, fit FitMode) (Point, bool) {
	if !container.valid() || !image.valid() {
		return Point{}, false
	}

	scaleX := container.Width / image.Width
	scaleY := container.Height / image.Height

	var scale float64
	switch fit {
	case FitCover:
		scale = max(scaleX, scaleY)
	default:
		scale = min(scaleX, scaleY)
	}

	renderedW := image.Width * scale
	renderedH := image.Height * scale

	// Rendered image is centered in the container. For cover the offsets
	// are negative and the crop hides the overflow.
	offsetX := (container.Width - renderedW) / 2
	offsetY := (container.Height - renderedH) / 2

	if p.X < offsetX || p.X > offsetX+renderedW ||
		p.Y < offsetY || p.Y > offsetY+renderedH {
		return Point{}, false
	}

	mapped := Point{
		X: (p.X - offsetX) / scale,
		Y: (p.Y - offsetY) / scale,
	}

	if mapped.X < 0 || mapped.X > image.Width || mapped.Y < 0 || mapped.Y > image.Height {
		return Point{}, false
	}

	return mapped, true
}
