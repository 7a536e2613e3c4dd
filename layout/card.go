package layout

import (
	"errors"
)

// ErrNoImage is the fallback reason for a product without an image reference.
var ErrNoImage = errors.New("product has no image")

// CardEnv is everything ComposeCard needs besides the product itself.
type CardEnv struct {
	Geometry Geometry
	Fitter   *Fitter
	Assets   Assets
	Accent   Color
	// Badge is the probed badge asset; on fallback the badge is a solid black rectangle.
	Badge Resolved[string]
}

// ComposeCard lays out one product card with its top-left corner at (slot.X, slot.Y).
//
// Elements are produced in a fixed order: border, badge, code, description, image or
// placeholder, unit table, accent marker. Badge and image failures are recorded on the card
// and replaced by their fallbacks; nothing here returns an error.
func ComposeCard(slot Slot, p ProductRecord, env CardEnv) Card {
	g := env.Geometry
	x, y := slot.X, slot.Y
	black := Black

	card := Card{
		Index:  slot.Index,
		Column: slot.Column,
		Code:   p.Code,
		Border: Rect{
			X: x, Y: y, Width: g.CardWidth, Height: g.CardHeight,
			StrokeColor: &black, StrokeWidth: g.BorderWidth,
		},
	}

	// code badge
	badge := Box{X: x + g.Badge.X, Y: y + g.Badge.Y, Width: g.Badge.Width, Height: g.Badge.Height}
	if env.Badge.IsFallback() {
		card.Badge.Fill = &Rect{X: badge.X, Y: badge.Y, Width: badge.Width, Height: badge.Height, FillColor: &black}
		card.BadgeFallback = env.Badge.ReasonString()
	} else {
		// stretched to the badge box, no aspect-ratio preservation
		card.Badge.Image = &ImageBox{Path: env.Badge.Value, X: badge.X, Y: badge.Y, Width: badge.Width, Height: badge.Height}
	}
	card.CodeText = TextBox{
		X:        badge.X, // centred on badge.X + CodeCenterX
		Y:        badge.Y + g.CodeBaseline,
		Width:    2 * g.CodeCenterX,
		Font:     FontBold,
		FontSize: g.CodeSize,
		Color:    White,
		Align:    "center",
		Lines:    []TextLine{{Content: p.Code, Width: env.Fitter.m.TextWidth(p.Code, FontBold, g.CodeSize)}},
	}

	// description
	card.Description = TextBox{
		X:          x + (g.CardWidth-g.DescriptionWidth)/2,
		Y:          y + g.DescriptionBaseline,
		Width:      g.DescriptionWidth,
		LineHeight: g.DescriptionLeading.Resolve(PT(g.DescriptionSize), UnitMM),
		Font:       FontBold,
		FontSize:   g.DescriptionSize,
		Color:      Black,
		Align:      "center",
		Lines:      env.Fitter.Lines(p.Description, g.DescriptionWidth, FontBold, g.DescriptionSize, g.DescriptionLines),
	}

	// product image
	probe := probeImage(env.Assets, p.ImagePath)
	if probe.IsFallback() {
		card.ImageFallback = probe.ReasonString()
		card.Placeholder = placeholderBox(x, y, g, env.Fitter.m)
	} else {
		box := FitBox(Box{X: x + g.ImageBox.X, Y: y + g.ImageBox.Y, Width: g.ImageBox.Width, Height: g.ImageBox.Height}, probe.Value)
		card.Image = &ImageBox{Path: p.ImagePath, X: box.X, Y: box.Y, Width: box.Width, Height: box.Height}
	}

	// unit table
	card.Table = unitTable(x, y, g, p.UnitCells(), env.Fitter.m)

	// accent marker: right angle on the top-right corner
	right := x + g.CardWidth
	card.Marker = Polygon{
		Points: []Point{{X: right, Y: y}, {X: right - g.MarkerSize, Y: y}, {X: right, Y: y + g.MarkerSize}},
		Fill:   env.Accent,
	}
	return card
}

// PlaceholderFor returns the label drawn in place of a card's product image.
// The renderer uses it when an image that probed fine still fails to decode.
func PlaceholderFor(card Card, g Geometry, m Measurer) *TextBox {
	return placeholderBox(card.Border.X, card.Border.Y, g, m)
}

func placeholderBox(x, y float64, g Geometry, m Measurer) *TextBox {
	return &TextBox{
		X:        x,
		Y:        y + g.PlaceholderBaseline,
		Width:    g.CardWidth,
		Font:     FontRegular,
		FontSize: g.PlaceholderSize,
		Color:    Black,
		Align:    "center",
		Lines:    []TextLine{{Content: g.PlaceholderLabel, Width: m.TextWidth(g.PlaceholderLabel, FontRegular, g.PlaceholderSize)}},
	}
}

func probeImage(assets Assets, path string) Resolved[Size] {
	if path == "" {
		return Fallback(Size{}, ErrNoImage)
	}
	if assets == nil {
		return Fallback(Size{}, errors.New("no asset prober configured"))
	}
	return assets.ImageSize(path)
}

func unitTable(x, y float64, g Geometry, cells []UnitCell, m Measurer) *TableBox {
	if len(cells) == 0 {
		return nil
	}
	colWidth := g.CardWidth / float64(len(cells))
	table := &TableBox{X: x, Width: g.CardWidth}
	for i, cell := range cells {
		left := x + colWidth*float64(i)
		table.ColumnWidths = append(table.ColumnWidths, colWidth)
		table.Header = append(table.Header, cellBox(left, y+g.TableHeaderBaseline, colWidth, cell.Label, g.TableSize, m))
		table.Values = append(table.Values, cellBox(left, y+g.TableValueBaseline, colWidth, cell.Value, g.TableSize, m))
	}
	return table
}

func cellBox(x, baseline, width float64, content string, size float64, m Measurer) TextBox {
	return TextBox{
		X:        x,
		Y:        baseline,
		Width:    width,
		Font:     FontBold,
		FontSize: size,
		Color:    Black,
		Align:    "center",
		Lines:    []TextLine{{Content: content, Width: m.TextWidth(content, FontBold, size)}},
	}
}
