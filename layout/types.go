package layout

// This file defines the catalog layout result shared by layout, rendering and the debug JSON.
// All coordinates are page coordinates in mm with the origin at the top-left corner.

// Result holds the laid-out pages of one catalog.
type Result struct {
	Pages  []Page       `json:"pages"`
	Accent Color        `json:"accent"`
	Meta   DocumentMeta `json:"meta"`
}

// Color uses 0-255 RGB values.
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

var (
	Black = Color{}
	White = Color{R: 255, G: 255, B: 255}
)

// Page records the page size, its header band and the cards placed on it.
type Page struct {
	Number int        `json:"number"`
	Width  float64    `json:"width"`
	Height float64    `json:"height"`
	Header HeaderBand `json:"header"`
	Cards  []Card     `json:"cards"`
}

// HeaderBand is the full-width image band at the top of a page.
// Image is nil when the header image could not be read; Height then carries the fallback height.
type HeaderBand struct {
	Kind     HeaderKind `json:"kind"`
	Height   float64    `json:"height"`
	Image    *ImageBox  `json:"image,omitempty"`
	Fallback string     `json:"fallback,omitempty"`
}

// Card is one product's fully positioned visual unit.
type Card struct {
	Index       int       `json:"index"`
	Column      int       `json:"column"`
	Code        string    `json:"code"`
	Border      Rect      `json:"border"`
	Badge       Badge     `json:"badge"`
	CodeText    TextBox   `json:"codeText"`
	Description TextBox   `json:"description"`
	Image       *ImageBox `json:"image,omitempty"`
	Placeholder *TextBox  `json:"placeholder,omitempty"`
	Table       *TableBox `json:"table,omitempty"`
	Marker      Polygon   `json:"marker"`

	// Reasons for the fallbacks taken while composing the card, empty when the primary path was used.
	BadgeFallback string `json:"badgeFallback,omitempty"`
	ImageFallback string `json:"imageFallback,omitempty"`
}

// Badge is the background behind the product code: either an image asset or a solid rectangle.
type Badge struct {
	Image *ImageBox `json:"image,omitempty"`
	Fill  *Rect     `json:"fill,omitempty"`
}

// TextBox is a block of already wrapped lines.
// Y is the baseline of the first line; following baselines step down by LineHeight.
// FontSize is in pt, everything else in mm.
type TextBox struct {
	X          float64    `json:"x"`
	Y          float64    `json:"y"`
	Width      float64    `json:"width"`
	LineHeight float64    `json:"lineHeight"`
	Font       FontStyle  `json:"font"`
	FontSize   float64    `json:"fontSize"`
	Color      Color      `json:"color"`
	Align      string     `json:"align,omitempty"` // left/center/right, default left
	Lines      []TextLine `json:"lines"`
}

// TextLine is one wrapped line and its measured width.
type TextLine struct {
	Content string  `json:"content"`
	Width   float64 `json:"width"`
}

// ImageBox is the final placement of an image; aspect-ratio fitting has already been applied.
type ImageBox struct {
	Path   string  `json:"path"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// TableBox is the unit table: a header row of labels above a row of values, equal column widths.
type TableBox struct {
	X            float64   `json:"x"`
	Width        float64   `json:"width"`
	ColumnWidths []float64 `json:"columnWidths"`
	Header       []TextBox `json:"header"`
	Values       []TextBox `json:"values"`
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	StrokeColor *Color  `json:"strokeColor,omitempty"` // nil means no stroke
	StrokeWidth float64 `json:"strokeWidth"`
	FillColor   *Color  `json:"fillColor,omitempty"` // nil means no fill
}

// Point is a page coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Polygon is a closed, filled shape without stroke.
type Polygon struct {
	Points []Point `json:"points"`
	Fill   Color   `json:"fill"`
}

// DocumentMeta holds PDF metadata.
type DocumentMeta struct {
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Subject  string   `json:"subject"`
	Creator  string   `json:"creator"`
	Keywords []string `json:"keywords"`
}
