package layout

import "errors"

// ErrNoHeaderImage is the fallback reason for an empty header path.
var ErrNoHeaderImage = errors.New("no header image given")

// HeaderKind distinguishes the first page header from the one repeated on later pages.
type HeaderKind string

const (
	HeaderFirst        HeaderKind = "first"
	HeaderContinuation HeaderKind = "continuation"
)

// HeaderSpec is a header image and the height of the band it occupies.
type HeaderSpec struct {
	Kind      HeaderKind `json:"kind"`
	ImagePath string     `json:"imagePath"`
	Height    float64    `json:"height"`
	Size      Size       `json:"size"`
}

// ResolveHeader probes a header image and computes its band height.
//
// The first page header spans the page width and takes its height from the image aspect ratio
// (or Geometry.FirstHeaderRatio when set). Continuation headers use the fixed compact height.
// An unreadable image falls back to Geometry.FallbackHeaderHeight and an empty path, so nothing
// is drawn.
func ResolveHeader(path string, kind HeaderKind, g Geometry, assets Assets) Resolved[HeaderSpec] {
	fallback := HeaderSpec{Kind: kind, Height: g.FallbackHeaderHeight}
	if path == "" {
		return Fallback(fallback, ErrNoHeaderImage)
	}
	if assets == nil {
		return Fallback(fallback, errors.New("no asset prober configured"))
	}
	probe := assets.ImageSize(path)
	if probe.IsFallback() {
		return Fallback(fallback, probe.Reason)
	}
	size := probe.Value
	if size.Width <= 0 || size.Height <= 0 {
		return Fallback(fallback, errors.New("header image has no pixels"))
	}
	spec := HeaderSpec{Kind: kind, ImagePath: path, Size: size}
	switch kind {
	case HeaderFirst:
		ratio := g.FirstHeaderRatio
		if ratio <= 0 {
			ratio = float64(size.Height) / float64(size.Width)
		}
		spec.Height = ratio * g.PageWidth
	default:
		spec.Height = g.ContinuationHeaderHeight
	}
	return OK(spec)
}

// headerBand places the header image at the top of the page, fitted into the band with its aspect ratio.
func headerBand(h Resolved[HeaderSpec], g Geometry) HeaderBand {
	spec := h.Value
	hb := HeaderBand{Kind: spec.Kind, Height: spec.Height, Fallback: h.ReasonString()}
	if h.IsFallback() {
		return hb
	}
	box := FitBox(Box{Width: g.PageWidth, Height: spec.Height}, spec.Size)
	hb.Image = &ImageBox{Path: spec.ImagePath, X: box.X, Y: box.Y, Width: box.Width, Height: box.Height}
	return hb
}
