package layout

// BuildOptions wires the collaborators the catalog layout needs.
type BuildOptions struct {
	Geometry Geometry
	Measurer Measurer
	Assets   Assets

	// Accent is shared read-only by every card of the document.
	Accent Color

	FirstHeader        string
	ContinuationHeader string
	BadgeImage         string

	Meta DocumentMeta
}

// FontStyle selects a face from the font registry.
type FontStyle string

const (
	FontRegular FontStyle = "regular"
	FontBold    FontStyle = "bold"
)

// Measurer reports the rendered width in mm of a single line of text at sizePt points.
type Measurer interface {
	TextWidth(text string, style FontStyle, sizePt float64) float64
}

// Size is an image size in pixels.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Assets probes images without drawing them. A fallback result means the image must not be drawn.
type Assets interface {
	ImageSize(path string) Resolved[Size]
}
