package layout

import (
	"fmt"
	"math"
)

// GridColumns is the fixed number of cards per row.
const GridColumns = 3

// A4 page size in mm.
const (
	A4Width  = 210.0
	A4Height = 297.0
)

// Box is a rectangle relative to some origin (a card's top-left corner or the page).
type Box struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Geometry holds every constant of the catalog grid and card. Values are mm unless noted.
// Card-relative positions are measured from the card's top-left corner; baselines are y offsets.
type Geometry struct {
	PageWidth  float64
	PageHeight float64

	CardWidth  float64
	CardHeight float64
	Columns    [GridColumns]float64 // left edge of each grid column
	RowStep    float64

	// The first row's card top sits at headerHeight + StartOffset - CardHeight.
	FirstStartOffset        float64
	ContinuationStartOffset float64

	// Cards per page; 0 derives the capacity from the page height.
	FirstCapacity        int
	ContinuationCapacity int
	BottomMargin         float64

	// FirstHeaderRatio is height/width of the first header band; 0 uses the image's own aspect ratio.
	FirstHeaderRatio         float64
	ContinuationHeaderHeight float64
	FallbackHeaderHeight     float64

	BorderWidth float64

	Badge        Box
	CodeCenterX  float64 // relative to the badge's left edge
	CodeBaseline float64 // relative to the badge's top edge
	CodeSize     float64 // pt

	DescriptionBaseline float64
	DescriptionWidth    float64
	DescriptionSize     float64 // pt
	DescriptionLines    int
	DescriptionLeading  LineHeightSpec

	ImageBox            Box
	PlaceholderBaseline float64
	PlaceholderSize     float64 // pt
	PlaceholderLabel    string

	TableHeaderBaseline float64
	TableValueBaseline  float64
	TableSize           float64 // pt

	MarkerSize float64
}

// DefaultGeometry returns the tuned A4 catalog geometry.
func DefaultGeometry() Geometry {
	return Geometry{
		PageWidth:  A4Width,
		PageHeight: A4Height,

		CardWidth:  CM(6).ToMM(),
		CardHeight: CM(6).ToMM(),
		Columns:    [GridColumns]float64{CM(1.5).ToMM(), CM(8).ToMM(), CM(14.5).ToMM()},
		RowStep:    CM(6.5).ToMM(),

		FirstStartOffset:        CM(6).ToMM(),
		ContinuationStartOffset: CM(6.4).ToMM(),

		FirstCapacity:        9,
		ContinuationCapacity: 12,

		ContinuationHeaderHeight: 17,
		FallbackHeaderHeight:     40,

		BorderWidth: 1 * PtToMm,

		Badge:        Box{X: -0.5, Y: -0.5, Width: CM(3.8).ToMM(), Height: CM(0.8).ToMM()},
		CodeCenterX:  CM(4).ToMM() / 2.4,
		CodeBaseline: CM(0.8).ToMM() - CM(0.25).ToMM(),
		CodeSize:     13,

		DescriptionBaseline: CM(1.2).ToMM(),
		DescriptionWidth:    CM(6).ToMM() - CM(1.2).ToMM(),
		DescriptionSize:     9,
		DescriptionLines:    3,
		DescriptionLeading:  LineHeightSpec{Kind: LineHeightFactor, Factor: 0.9},

		ImageBox:            Box{X: CM(0.5).ToMM(), Y: CM(2.1).ToMM(), Width: CM(5).ToMM(), Height: CM(2.5).ToMM()},
		PlaceholderBaseline: CM(3.5).ToMM(),
		PlaceholderSize:     7,
		PlaceholderLabel:    "[Imagen no encontrada]",

		TableHeaderBaseline: CM(5.5).ToMM(),
		TableValueBaseline:  CM(5.9).ToMM(),
		TableSize:           9,

		MarkerSize: CM(0.6).ToMM(),
	}
}

// Validate rejects geometries the pager cannot work with.
func (g Geometry) Validate() error {
	switch {
	case g.PageWidth <= 0 || g.PageHeight <= 0:
		return fmt.Errorf("layout: invalid page size %gx%g", g.PageWidth, g.PageHeight)
	case g.CardWidth <= 0 || g.CardHeight <= 0:
		return fmt.Errorf("layout: invalid card size %gx%g", g.CardWidth, g.CardHeight)
	case g.RowStep <= 0:
		return fmt.Errorf("layout: row step must be positive, got %g", g.RowStep)
	case g.FirstCapacity < 0 || g.ContinuationCapacity < 0:
		return fmt.Errorf("layout: page capacity must not be negative")
	case g.DescriptionLines < 1:
		return fmt.Errorf("layout: description needs at least one line")
	}
	return nil
}

// PageStart returns the top of the first card row below a header of the given height.
func (g Geometry) PageStart(headerHeight, startOffset float64) float64 {
	return headerHeight + startOffset - g.CardHeight
}

// RowsFitting counts the card rows whose bottom edge stays within the page when the first row starts at startY.
func (g Geometry) RowsFitting(startY float64) int {
	limit := g.PageHeight - g.BottomMargin
	if startY+g.CardHeight > limit {
		return 0
	}
	return int(math.Floor((limit-startY-g.CardHeight)/g.RowStep+1e-9)) + 1
}

// capacity resolves a configured capacity; 0 derives it from the rows fitting below startY.
func (g Geometry) capacity(configured int, startY float64) int {
	if configured > 0 {
		return configured
	}
	rows := g.RowsFitting(startY)
	if rows < 1 {
		// keep making progress even when a single row overflows the page
		rows = 1
	}
	return rows * GridColumns
}

// FitBox scales an image of the given pixel size into box, preserving aspect ratio and centring it.
func FitBox(box Box, size Size) Box {
	if size.Width <= 0 || size.Height <= 0 || box.Width <= 0 || box.Height <= 0 {
		return box
	}
	scale := math.Min(box.Width/float64(size.Width), box.Height/float64(size.Height))
	w := float64(size.Width) * scale
	h := float64(size.Height) * scale
	return Box{
		X:      box.X + (box.Width-w)/2,
		Y:      box.Y + (box.Height-h)/2,
		Width:  w,
		Height: h,
	}
}
