package layout

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func testEnv() CardEnv {
	opts := testOptions()
	return CardEnv{
		Geometry: opts.Geometry,
		Fitter:   NewFitter(opts.Measurer),
		Assets:   opts.Assets,
		Accent:   testAccent,
		Badge:    OK("badge.png"),
	}
}

func strPtr(s string) *string { return &s }

func TestUnitTableColumns(t *testing.T) {
	tests := []struct {
		name   string
		rec    ProductRecord
		labels []string
	}{
		{name: "none", rec: ProductRecord{}},
		{name: "blank values are absent", rec: ProductRecord{Unit: strPtr("  "), BulkUnit: strPtr("")}},
		{name: "unit only", rec: ProductRecord{Unit: strPtr("12")}, labels: []string{LabelUnit}},
		{name: "bulk and sale", rec: ProductRecord{BulkUnit: strPtr("6"), SaleUnit: strPtr("1")}, labels: []string{LabelBulkUnit, LabelSaleUnit}},
		{name: "all three in order", rec: ProductRecord{SaleUnit: strPtr("1"), Unit: strPtr("12"), BulkUnit: strPtr("6")}, labels: []string{LabelUnit, LabelBulkUnit, LabelSaleUnit}},
	}
	env := testEnv()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := ComposeCard(Slot{X: 15, Y: 80}, tt.rec, env)
			if len(tt.labels) == 0 {
				if card.Table != nil {
					t.Fatalf("expected no table, got %+v", card.Table)
				}
				return
			}
			if card.Table == nil {
				t.Fatalf("expected a table with %v", tt.labels)
			}
			if len(card.Table.Header) != len(tt.labels) || len(card.Table.Values) != len(tt.labels) {
				t.Fatalf("table has %d columns, want %d", len(card.Table.Header), len(tt.labels))
			}
			wantWidth := env.Geometry.CardWidth / float64(len(tt.labels))
			for i, label := range tt.labels {
				if got := card.Table.Header[i].Lines[0].Content; got != label {
					t.Fatalf("column %d label = %q, want %q", i, got, label)
				}
				if math.Abs(card.Table.ColumnWidths[i]-wantWidth) > 1e-9 {
					t.Fatalf("column %d width = %g, want %g", i, card.Table.ColumnWidths[i], wantWidth)
				}
				if card.Table.Values[i].Y <= card.Table.Header[i].Y {
					t.Fatalf("value row must sit below the header row")
				}
			}
		})
	}
}

func TestComposeCardEmptyImageUsesPlaceholder(t *testing.T) {
	card := ComposeCard(Slot{X: 15, Y: 80}, ProductRecord{Code: "A1", ImagePath: ""}, testEnv())
	if card.Image != nil {
		t.Fatalf("expected no image box, got %+v", card.Image)
	}
	if card.Placeholder == nil || card.Placeholder.Lines[0].Content != "[Imagen no encontrada]" {
		t.Fatalf("expected placeholder label, got %+v", card.Placeholder)
	}
	if card.ImageFallback != ErrNoImage.Error() {
		t.Fatalf("image fallback reason = %q", card.ImageFallback)
	}
}

func TestComposeCardMissingImageFile(t *testing.T) {
	card := ComposeCard(Slot{X: 15, Y: 80}, ProductRecord{Code: "A1", ImagePath: "img/none.png"}, testEnv())
	if card.Placeholder == nil || !strings.Contains(card.ImageFallback, "img/none.png") {
		t.Fatalf("missing file must fall back to the placeholder, got %+v / %q", card.Placeholder, card.ImageFallback)
	}
}

func TestComposeCardImageKeepsAspectRatio(t *testing.T) {
	g := DefaultGeometry()
	card := ComposeCard(Slot{X: 15, Y: 80}, ProductRecord{ImagePath: "img/p.png"}, testEnv())
	if card.Image == nil {
		t.Fatalf("expected an image box")
	}
	// a square image in a 50x25 box is 25x25, centred horizontally
	if card.Image.Width != g.ImageBox.Height || card.Image.Height != g.ImageBox.Height {
		t.Fatalf("image box = %+v", card.Image)
	}
	wantX := 15 + g.ImageBox.X + (g.ImageBox.Width-g.ImageBox.Height)/2
	if math.Abs(card.Image.X-wantX) > 1e-9 || math.Abs(card.Image.Y-(80+g.ImageBox.Y)) > 1e-9 {
		t.Fatalf("image box = %+v, want x=%g", card.Image, wantX)
	}
}

func TestComposeCardBadge(t *testing.T) {
	env := testEnv()
	card := ComposeCard(Slot{X: 15, Y: 80}, ProductRecord{Code: "X-9"}, env)
	if card.Badge.Image == nil || card.Badge.Fill != nil || card.BadgeFallback != "" {
		t.Fatalf("badge asset should be used, got %+v", card.Badge)
	}
	if card.CodeText.Color != White || card.CodeText.Font != FontBold || card.CodeText.Lines[0].Content != "X-9" {
		t.Fatalf("code text = %+v", card.CodeText)
	}

	env.Badge = Fallback("", ErrNoBadgeImage)
	card = ComposeCard(Slot{X: 15, Y: 80}, ProductRecord{Code: "X-9"}, env)
	if card.Badge.Image != nil || card.Badge.Fill == nil || *card.Badge.Fill.FillColor != Black {
		t.Fatalf("badge fallback should be a black rectangle, got %+v", card.Badge)
	}
	if card.Badge.Fill.Width != env.Geometry.Badge.Width || card.Badge.Fill.Height != env.Geometry.Badge.Height {
		t.Fatalf("fallback rectangle must cover the badge box, got %+v", card.Badge.Fill)
	}
	if !errors.Is(env.Badge.Reason, ErrNoBadgeImage) || card.BadgeFallback == "" {
		t.Fatalf("badge fallback reason not recorded")
	}
}

func TestComposeCardMarker(t *testing.T) {
	g := DefaultGeometry()
	card := ComposeCard(Slot{X: 80, Y: 100}, ProductRecord{}, testEnv())
	if card.Marker.Fill != testAccent {
		t.Fatalf("marker fill = %+v, want accent", card.Marker.Fill)
	}
	right := 80 + g.CardWidth
	want := []Point{{X: right, Y: 100}, {X: right - g.MarkerSize, Y: 100}, {X: right, Y: 100 + g.MarkerSize}}
	for i, p := range want {
		if math.Abs(card.Marker.Points[i].X-p.X) > 1e-9 || math.Abs(card.Marker.Points[i].Y-p.Y) > 1e-9 {
			t.Fatalf("marker point %d = %+v, want %+v", i, card.Marker.Points[i], p)
		}
	}
}

func TestComposeCardDescriptionBudget(t *testing.T) {
	card := ComposeCard(Slot{X: 15, Y: 80}, ProductRecord{
		Description: "Producto de ejemplo con nombre extremadamente largo que no cabe en la tarjeta del catalogo de ferreteria industrial",
	}, testEnv())
	lines := card.Description.Lines
	if len(lines) != 3 || !strings.HasSuffix(lines[2].Content, Ellipsis) {
		t.Fatalf("description lines = %+v", lines)
	}
	if card.Description.Align != "center" || card.Description.LineHeight <= 0 {
		t.Fatalf("description box = %+v", card.Description)
	}
}
