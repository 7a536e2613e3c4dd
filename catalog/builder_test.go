package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/ByLCY/catalogo/layout"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func writePNG(t *testing.T, path string, w, h int, c color.Color) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := imaging.Save(imaging.New(w, h, c), path); err != nil {
		t.Fatalf("save %s: %v", path, err)
	}
}

// fixture lays out a working directory with headers, a badge, one product image and a CSV table
// of n rows; every other row points at a missing image.
func fixture(t *testing.T, n int) Request {
	t.Helper()
	dir := t.TempDir()
	red := color.NRGBA{R: 200, G: 16, B: 46, A: 255}
	writePNG(t, filepath.Join(dir, "portada.png"), 99, 36, red)
	writePNG(t, filepath.Join(dir, "cabecera.png"), 200, 16, red)
	writePNG(t, filepath.Join(dir, "placeholder_codigos.png"), 38, 8, color.NRGBA{A: 255})
	writePNG(t, filepath.Join(dir, "imagenes", "ok.png"), 50, 25, color.NRGBA{B: 200, A: 255})

	var csv strings.Builder
	csv.WriteString("codigo,descripcion,und,und_bulto,und_venta,imagen\n")
	for i := 1; i <= n; i++ {
		img := "ok.png"
		if i%2 == 0 {
			img = "falta.png"
		}
		fmt.Fprintf(&csv, "P%03d,Producto numero %d,12,,1,%s\n", i, i, img)
	}
	table := filepath.Join(dir, "productos.csv")
	if err := os.WriteFile(table, []byte(csv.String()), 0o644); err != nil {
		t.Fatal(err)
	}

	return Request{
		Table:              table,
		Header:             filepath.Join(dir, "portada.png"),
		ContinuationHeader: filepath.Join(dir, "cabecera.png"),
		ImagesDir:          filepath.Join(dir, "imagenes"),
		Badge:              filepath.Join(dir, "placeholder_codigos.png"),
		Output:             filepath.Join(dir, "salida", "catalogo.pdf"),
		Meta:               layout.DocumentMeta{Title: "Catalogo"},
	}
}

func TestBuildWritesCatalog(t *testing.T) {
	req := fixture(t, 10)
	report, err := NewBuilder(quiet).Build(context.Background(), req)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if report.Rows != 10 || report.Cards != 10 || report.Pages != 2 {
		t.Fatalf("report = %+v", report)
	}
	if report.ImageFallbacks != 5 || report.BadgeFallback != "" || report.HeaderFallback != "" {
		t.Fatalf("fallbacks = %+v", report)
	}
	if report.AccentFallback != "" || report.Accent != "#c8102e" {
		t.Fatalf("accent = %s (%s)", report.Accent, report.AccentFallback)
	}
	data, err := os.ReadFile(req.Output)
	if err != nil {
		t.Fatalf("output missing: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
	leftovers, _ := filepath.Glob(filepath.Join(filepath.Dir(req.Output), ".catalogo-*"))
	if len(leftovers) != 0 {
		t.Fatalf("temp files left behind: %v", leftovers)
	}
}

func TestBuildOverwritesOutput(t *testing.T) {
	req := fixture(t, 1)
	if err := os.MkdirAll(filepath.Dir(req.Output), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(req.Output, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewBuilder(quiet).Build(context.Background(), req); err != nil {
		t.Fatalf("Build: %v", err)
	}
	data, _ := os.ReadFile(req.Output)
	if bytes.Equal(data, []byte("old")) {
		t.Fatalf("output was not replaced")
	}
}

func TestBuildFatalErrorsProduceNoOutput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
		want   error
	}{
		{name: "no header", mutate: func(r *Request) { r.Header = "" }, want: ErrNoHeader},
		{name: "no continuation header", mutate: func(r *Request) { r.ContinuationHeader = "" }, want: ErrNoHeader},
		{name: "missing table", mutate: func(r *Request) { r.Table += ".missing.csv" }, want: ErrSourceUnreadable},
		{name: "unsupported table", mutate: func(r *Request) { r.Table = strings.TrimSuffix(r.Table, ".csv") + ".ods" }, want: ErrSourceUnreadable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := fixture(t, 3)
			tt.mutate(&req)
			_, err := NewBuilder(quiet).Build(context.Background(), req)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if _, statErr := os.Stat(req.Output); !errors.Is(statErr, os.ErrNotExist) {
				t.Fatalf("output must not exist, stat err = %v", statErr)
			}
		})
	}
}

func TestBuildHonoursCancellation(t *testing.T) {
	req := fixture(t, 3)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewBuilder(quiet).Build(ctx, req); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if _, err := os.Stat(req.Output); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("cancelled run must not write output")
	}
}

func TestBuildDegradesMissingAssets(t *testing.T) {
	req := fixture(t, 2)
	req.Badge = ""
	req.ContinuationHeader = filepath.Join(filepath.Dir(req.Table), "no-existe.png")
	req.Fonts.RegularPath = filepath.Join(filepath.Dir(req.Table), "fuentes", "Regular.ttf")
	report, err := NewBuilder(quiet).Build(context.Background(), req)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if report.BadgeFallback == "" || report.FontFallbacks["regular"] == "" {
		t.Fatalf("report = %+v", report)
	}
	// only one page, so the broken continuation header is never used
	if report.Pages != 1 || report.ContinuationHeaderFallback != "" {
		t.Fatalf("report = %+v", report)
	}
}

func TestPlanWritesJSON(t *testing.T) {
	req := fixture(t, 4)
	req.PlanOutput = filepath.Join(filepath.Dir(req.Table), "plan", "layout.json")
	res, report, err := NewBuilder(quiet).Plan(context.Background(), req)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if len(res.Pages) != 1 || report.Cards != 4 {
		t.Fatalf("plan = %d pages, report %+v", len(res.Pages), report)
	}
	if _, err := os.Stat(req.PlanOutput); err != nil {
		t.Fatalf("plan JSON missing: %v", err)
	}
	if _, err := os.Stat(req.Output); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Plan must not render")
	}
}
