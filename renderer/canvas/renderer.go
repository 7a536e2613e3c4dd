package canvasrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/catalogo/fonts"
	"github.com/ByLCY/catalogo/layout"
	"github.com/ByLCY/catalogo/renderer"
)

// Renderer draws catalog layouts via github.com/tdewolff/canvas.
type Renderer struct {
	fonts    *fonts.Registry
	geometry layout.Geometry
	log      *slog.Logger

	// decoded images by path; a nil entry records a failed decode
	images map[string]image.Image
	// images that failed to decode during the last Render
	drawFallbacks int
}

var (
	_ renderer.Renderer = (*Renderer)(nil)
	_ layout.Measurer   = (*Renderer)(nil)
)

// Options configures the canvas renderer.
type Options struct {
	Fonts    *fonts.Registry // nil uses the built-in fonts
	Geometry layout.Geometry // used to place draw-time image placeholders
	Logger   *slog.Logger
}

// NewRenderer creates a renderer with the built-in fonts and the default geometry.
func NewRenderer() *Renderer {
	return NewRendererWithOptions(Options{})
}

// NewRendererWithOptions creates a renderer from opts, filling unset fields with defaults.
func NewRendererWithOptions(opts Options) *Renderer {
	if opts.Fonts == nil {
		opts.Fonts = fonts.Builtin()
	}
	if opts.Geometry.CardWidth == 0 {
		opts.Geometry = layout.DefaultGeometry()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Renderer{
		fonts:    opts.Fonts,
		geometry: opts.Geometry,
		log:      opts.Logger,
		images:   map[string]image.Image{},
	}
}

// TextWidth implements layout.Measurer with the renderer's own fonts, so measured and drawn
// widths agree.
func (r *Renderer) TextWidth(text string, style layout.FontStyle, sizePt float64) float64 {
	return r.fonts.TextWidth(text, style, sizePt)
}

// DrawFallbacks reports how many images of the last Render were replaced by a placeholder
// because they could not be decoded.
func (r *Renderer) DrawFallbacks() int { return r.drawFallbacks }

// Render renders the result into a PDF byte slice.
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("render: nil layout result")
	}
	if len(result.Pages) == 0 {
		return nil, fmt.Errorf("render: layout has no pages")
	}
	r.drawFallbacks = 0

	var buf bytes.Buffer
	writer := pdf.New(&buf, result.Pages[0].Width, result.Pages[0].Height, nil)
	r.applyMeta(writer, result.Meta)
	for i, page := range result.Pages {
		if i > 0 {
			writer.NewPage(page.Width, page.Height)
		}
		c := canvas.New(page.Width, page.Height)
		ctx := canvas.NewContext(c)
		ctx.SetCoordSystem(canvas.CartesianIV) // top-left origin, like the layout

		r.drawPage(ctx, page)
		c.RenderTo(writer)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) applyMeta(writer *pdf.PDF, meta layout.DocumentMeta) {
	if writer == nil {
		return
	}
	keywords := strings.Join(meta.Keywords, ", ")
	writer.SetInfo(meta.Title, meta.Subject, keywords, meta.Author, meta.Creator)
}

func (r *Renderer) drawPage(ctx *canvas.Context, page layout.Page) {
	if page.Header.Image != nil {
		if !r.drawImage(ctx, *page.Header.Image, false) {
			r.log.Warn("header image not drawn", "page", page.Number, "path", page.Header.Image.Path)
		}
	}
	for _, card := range page.Cards {
		r.drawCard(ctx, card)
	}
}

// drawCard paints a card's elements in composition order. Nothing here aborts the card.
func (r *Renderer) drawCard(ctx *canvas.Context, card layout.Card) {
	r.drawRect(ctx, card.Border)

	switch {
	case card.Badge.Image != nil:
		if !r.drawImage(ctx, *card.Badge.Image, true) {
			black := layout.Black
			b := card.Badge.Image
			r.drawRect(ctx, layout.Rect{X: b.X, Y: b.Y, Width: b.Width, Height: b.Height, FillColor: &black})
		}
	case card.Badge.Fill != nil:
		r.drawRect(ctx, *card.Badge.Fill)
	}
	r.drawTextBox(ctx, card.CodeText)
	r.drawTextBox(ctx, card.Description)

	if card.Image != nil {
		if !r.drawImage(ctx, *card.Image, false) {
			r.drawFallbacks++
			r.log.Warn("product image could not be drawn, using placeholder", "code", card.Code, "path", card.Image.Path)
			r.drawTextBox(ctx, *layout.PlaceholderFor(card, r.geometry, r))
		}
	} else if card.Placeholder != nil {
		r.drawTextBox(ctx, *card.Placeholder)
	}

	if card.Table != nil {
		for _, tb := range card.Table.Header {
			r.drawTextBox(ctx, tb)
		}
		for _, tb := range card.Table.Values {
			r.drawTextBox(ctx, tb)
		}
	}
	r.drawPolygon(ctx, card.Marker)
}

// drawTextBox draws each line on its baseline; Y is the first baseline.
func (r *Renderer) drawTextBox(ctx *canvas.Context, tb layout.TextBox) {
	if len(tb.Lines) == 0 {
		return
	}
	face := r.fonts.Face(tb.Font, tb.FontSize, colorFromLayout(tb.Color))
	textAlign, anchorX := alignAnchor(tb)
	baseline := tb.Y
	for _, line := range tb.Lines {
		ctx.DrawText(anchorX, baseline, canvas.NewTextLine(face, line.Content, textAlign))
		baseline += tb.LineHeight
	}
}

// alignAnchor maps a box alignment to the canvas alignment and the x the text hangs from.
func alignAnchor(tb layout.TextBox) (canvas.TextAlign, float64) {
	switch strings.ToLower(tb.Align) {
	case "center":
		return canvas.Center, tb.X + tb.Width/2
	case "right", "end":
		return canvas.Right, tb.X + tb.Width
	default:
		return canvas.Left, tb.X
	}
}

// drawImage draws img into its box and reports whether it could be decoded.
// With stretch the image is resampled to the box's aspect ratio first.
func (r *Renderer) drawImage(ctx *canvas.Context, box layout.ImageBox, stretch bool) bool {
	if box.Path == "" || box.Width <= 0 || box.Height <= 0 {
		return false
	}
	img := r.loadImage(box.Path)
	if img == nil {
		return false
	}
	if stretch {
		img = stretchTo(img, box.Width, box.Height)
	}
	dpmm := float64(img.Bounds().Dx()) / box.Width
	if dpmm <= 0 {
		dpmm = 1
	}
	ctx.DrawImage(box.X, box.Y, img, canvas.DPMM(dpmm))
	return true
}

func (r *Renderer) loadImage(path string) image.Image {
	if img, ok := r.images[path]; ok {
		return img
	}
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		r.log.Debug("decode image", "path", path, "err", err)
		img = nil
	}
	r.images[path] = img
	return img
}

// stretchTo resamples img so its pixel aspect ratio matches w:h.
func stretchTo(img image.Image, w, h float64) image.Image {
	px := img.Bounds().Dx()
	if px == 0 || img.Bounds().Dy() == 0 {
		return img
	}
	target := int(math.Round(float64(px) * h / w))
	if target < 1 {
		target = 1
	}
	if math.Abs(float64(target-img.Bounds().Dy())) <= 1 {
		return img
	}
	return imaging.Resize(img, px, target, imaging.Lanczos)
}

func (r *Renderer) drawRect(ctx *canvas.Context, rc layout.Rect) {
	if rc.FillColor != nil {
		ctx.SetFillColor(colorFromLayout(*rc.FillColor))
	} else {
		ctx.SetFillColor(color.RGBA{0, 0, 0, 0})
	}
	if rc.StrokeColor != nil && rc.StrokeWidth > 0 {
		ctx.SetStrokeColor(colorFromLayout(*rc.StrokeColor))
		ctx.SetStrokeWidth(rc.StrokeWidth)
	} else {
		ctx.SetStrokeColor(color.RGBA{0, 0, 0, 0})
		ctx.SetStrokeWidth(0)
	}
	ctx.DrawPath(rc.X, rc.Y, canvas.Rectangle(rc.Width, rc.Height))
}

func (r *Renderer) drawPolygon(ctx *canvas.Context, poly layout.Polygon) {
	if len(poly.Points) < 3 {
		return
	}
	origin := poly.Points[0]
	p := &canvas.Path{}
	p.MoveTo(0, 0)
	for _, pt := range poly.Points[1:] {
		p.LineTo(pt.X-origin.X, pt.Y-origin.Y)
	}
	p.Close()
	ctx.SetFillColor(colorFromLayout(poly.Fill))
	ctx.SetStrokeColor(color.RGBA{0, 0, 0, 0})
	ctx.SetStrokeWidth(0)
	ctx.DrawPath(origin.X, origin.Y, p)
}

func colorFromLayout(c layout.Color) color.Color {
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, 1.0)
}
