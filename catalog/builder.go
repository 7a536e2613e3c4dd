// Package catalog drives a whole catalog run: table, accent, layout, rendering and output.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ByLCY/catalogo/config"
	"github.com/ByLCY/catalogo/fonts"
	"github.com/ByLCY/catalogo/layout"
	"github.com/ByLCY/catalogo/palette"
	canvasrenderer "github.com/ByLCY/catalogo/renderer/canvas"
	"github.com/ByLCY/catalogo/source"
)

var (
	// ErrNoHeader means a header image was not selected; nothing is produced.
	ErrNoHeader = errors.New("header image not selected")
	// ErrSourceUnreadable means the product table could not be read; nothing is produced.
	ErrSourceUnreadable = errors.New("product table unreadable")
)

// Request is one catalog run.
type Request struct {
	Table              string
	Header             string
	ContinuationHeader string
	ImagesDir          string
	ImageTemplate      string
	Badge              string
	Output             string
	// PlanOutput, when set, also receives the layout as JSON.
	PlanOutput string

	Fonts    fonts.Options
	Geometry layout.Geometry
	Meta     layout.DocumentMeta
}

// RequestFromConfig turns resolved settings into a request.
func RequestFromConfig(cfg config.Config) (Request, error) {
	g, err := cfg.ResolveGeometry()
	if err != nil {
		return Request{}, err
	}
	return Request{
		Table:              cfg.Table,
		Header:             cfg.Header,
		ContinuationHeader: cfg.ContinuationHeader,
		ImagesDir:          cfg.ImagesDir,
		ImageTemplate:      cfg.ImageTemplate,
		Badge:              cfg.Badge,
		Output:             cfg.Output,
		Fonts:              fonts.Options{RegularPath: cfg.Fonts.Regular, BoldPath: cfg.Fonts.Bold},
		Geometry:           g,
		Meta: layout.DocumentMeta{
			Title:    cfg.Meta.Title,
			Author:   cfg.Meta.Author,
			Subject:  cfg.Meta.Subject,
			Creator:  "catalogo",
			Keywords: cfg.Meta.Keywords,
		},
	}, nil
}

// Report summarizes a run.
type Report struct {
	Output string `json:"output,omitempty"`
	Rows   int    `json:"rows"`
	Pages  int    `json:"pages"`
	Cards  int    `json:"cards"`
	Accent string `json:"accent"`

	// Fallback reasons and counts; empty or zero when the primary path was taken.
	AccentFallback             string            `json:"accentFallback,omitempty"`
	HeaderFallback             string            `json:"headerFallback,omitempty"`
	ContinuationHeaderFallback string            `json:"continuationHeaderFallback,omitempty"`
	BadgeFallback              string            `json:"badgeFallback,omitempty"`
	FontFallbacks              map[string]string `json:"fontFallbacks,omitempty"`
	ImageFallbacks             int               `json:"imageFallbacks"`
	DrawFallbacks              int               `json:"drawFallbacks"`
}

// Builder runs catalog requests.
type Builder struct {
	log *slog.Logger
}

// NewBuilder returns a builder logging to logger, or to slog.Default when nil.
func NewBuilder(logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{log: logger}
}

// Plan computes the layout without rendering it.
func (b *Builder) Plan(ctx context.Context, req Request) (*layout.Result, *Report, error) {
	p, err := b.plan(ctx, req)
	if err != nil {
		return nil, nil, err
	}
	return p.result, p.report, nil
}

// Build renders the catalog and writes it to req.Output, replacing any previous file.
// The file only appears once rendering succeeded.
func (b *Builder) Build(ctx context.Context, req Request) (*Report, error) {
	if req.Output == "" {
		return nil, fmt.Errorf("no output path given")
	}
	p, err := b.plan(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b.log.Info("Rendering catalog", "pages", p.report.Pages, "cards", p.report.Cards)
	pdfBytes, err := p.renderer.Render(p.result)
	if err != nil {
		return nil, fmt.Errorf("render catalog: %w", err)
	}
	p.report.DrawFallbacks = p.renderer.DrawFallbacks()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := writeAtomic(req.Output, pdfBytes); err != nil {
		return nil, err
	}
	p.report.Output = req.Output
	b.log.Info("Catalog written", "output", req.Output, "bytes", len(pdfBytes))
	return p.report, nil
}

type planned struct {
	result   *layout.Result
	report   *Report
	renderer *canvasrenderer.Renderer
}

func (b *Builder) plan(ctx context.Context, req Request) (*planned, error) {
	if req.Header == "" || req.ContinuationHeader == "" {
		return nil, ErrNoHeader
	}
	g := req.Geometry
	if g.CardWidth == 0 {
		g = layout.DefaultGeometry()
	}

	accent := palette.Sample(req.Header)
	if accent.IsFallback() {
		b.log.Warn("Accent colour not sampled, using fallback", "header", req.Header, "reason", accent.ReasonString())
	}
	b.log.Debug("Accent colour", "hex", palette.Hex(accent.Value))

	table, err := source.Open(req.Table)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnreadable, err)
	}
	b.log.Info("Product table loaded", "path", req.Table, "rows", len(table.Rows))

	reg, err := fonts.NewRegistry(req.Fonts)
	if err != nil {
		return nil, fmt.Errorf("load fonts: %w", err)
	}
	report := &Report{Rows: len(table.Rows), Accent: palette.Hex(accent.Value), AccentFallback: accent.ReasonString()}
	for _, style := range []layout.FontStyle{layout.FontRegular, layout.FontBold} {
		if src := reg.Source(style); src.IsFallback() {
			if report.FontFallbacks == nil {
				report.FontFallbacks = map[string]string{}
			}
			report.FontFallbacks[string(style)] = src.ReasonString()
			b.log.Warn("Font not loaded, using built-in", "style", style, "reason", src.ReasonString())
		}
	}

	records := make([]layout.ProductRecord, 0, len(table.Rows))
	for i, row := range table.Rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec := RecordFromRow(row, req.ImagesDir, req.ImageTemplate)
		b.log.Debug("Product row", "row", i+1, "code", rec.Code, "image", rec.ImagePath)
		records = append(records, rec)
	}

	r := canvasrenderer.NewRendererWithOptions(canvasrenderer.Options{Fonts: reg, Geometry: g, Logger: b.log})
	result, err := layout.Build(records, layout.BuildOptions{
		Geometry:           g,
		Measurer:           r,
		Assets:             newFileAssets(),
		Accent:             accent.Value,
		FirstHeader:        req.Header,
		ContinuationHeader: req.ContinuationHeader,
		BadgeImage:         req.Badge,
		Meta:               req.Meta,
	})
	if err != nil {
		return nil, fmt.Errorf("layout catalog: %w", err)
	}
	summarize(result, report, b.log)

	if req.PlanOutput != "" {
		if err := writePlan(result, req.PlanOutput); err != nil {
			return nil, err
		}
	}
	return &planned{result: result, report: report, renderer: r}, nil
}

func summarize(result *layout.Result, report *Report, log *slog.Logger) {
	report.Pages = len(result.Pages)
	for _, page := range result.Pages {
		if page.Header.Fallback != "" {
			switch page.Header.Kind {
			case layout.HeaderFirst:
				report.HeaderFallback = page.Header.Fallback
			default:
				report.ContinuationHeaderFallback = page.Header.Fallback
			}
		}
		for _, card := range page.Cards {
			report.Cards++
			if card.ImageFallback != "" {
				report.ImageFallbacks++
				log.Debug("Product image missing, drawing placeholder", "code", card.Code, "reason", card.ImageFallback)
			}
			if card.BadgeFallback != "" {
				report.BadgeFallback = card.BadgeFallback
			}
		}
	}
	if report.HeaderFallback != "" {
		log.Warn("First header image unreadable", "reason", report.HeaderFallback)
	}
	if report.ContinuationHeaderFallback != "" {
		log.Warn("Continuation header image unreadable", "reason", report.ContinuationHeaderFallback)
	}
	if report.BadgeFallback != "" {
		log.Warn("Badge image unavailable, drawing solid badges", "reason", report.BadgeFallback)
	}
}

func writePlan(result *layout.Result, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create plan directory: %w", err)
		}
	}
	if err := layout.WriteDebugJSON(result, path); err != nil {
		return fmt.Errorf("write plan: %w", err)
	}
	return nil
}

// writeAtomic writes data next to path and renames it into place.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".catalogo-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write output: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("write output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
