// Package fonts builds the font registry shared by measurement and rendering.
package fonts

import (
	"errors"
	"fmt"
	"image/color"
	"os"

	"github.com/tdewolff/canvas"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/ByLCY/catalogo/layout"
)

// Default font files, relative to the working directory.
const (
	DefaultRegularPath = "fuentes/CanvaSans-Regular.ttf"
	DefaultBoldPath    = "fuentes/CanvaSans-Bold.ttf"
)

// Options names the optional font files.
type Options struct {
	RegularPath string
	BoldPath    string
}

// Registry maps a layout.FontStyle to a loaded font family.
// It is constructed once per build and handed to the renderer.
type Registry struct {
	families map[layout.FontStyle]*canvas.FontFamily
	sources  map[layout.FontStyle]layout.Resolved[string]
}

// NewRegistry loads the configured fonts, falling back to the built-in Go fonts.
// Bold falls back to the regular file first, like a family that only ships one weight.
func NewRegistry(opts Options) (*Registry, error) {
	r := &Registry{
		families: map[layout.FontStyle]*canvas.FontFamily{},
		sources:  map[layout.FontStyle]layout.Resolved[string]{},
	}
	if err := r.load(layout.FontRegular, []string{opts.RegularPath}, goregular.TTF); err != nil {
		return nil, err
	}
	if err := r.load(layout.FontBold, []string{opts.BoldPath, opts.RegularPath}, gobold.TTF); err != nil {
		return nil, err
	}
	return r, nil
}

// Builtin returns a registry using only the built-in Go fonts.
func Builtin() *Registry {
	r, err := NewRegistry(Options{})
	if err != nil {
		panic(err)
	}
	return r
}

// load tries each candidate file in order and ends with the built-in font.
func (r *Registry) load(style layout.FontStyle, candidates []string, builtin []byte) error {
	var reasons []error
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			reasons = append(reasons, err)
			continue
		}
		family := canvas.NewFontFamily(string(style))
		if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
			reasons = append(reasons, fmt.Errorf("parse %s: %w", path, err))
			continue
		}
		r.families[style] = family
		r.sources[style] = layout.OK(path)
		return nil
	}

	family := canvas.NewFontFamily("builtin-" + string(style))
	if err := family.LoadFont(builtin, 0, canvas.FontRegular); err != nil {
		return fmt.Errorf("load built-in %s font: %w", style, err)
	}
	r.families[style] = family
	reason := errors.Join(reasons...)
	if reason == nil {
		reason = errors.New("no font file configured")
	}
	r.sources[style] = layout.Fallback("builtin", reason)
	return nil
}

// Source reports which file a style was loaded from, or the fallback reason.
func (r *Registry) Source(style layout.FontStyle) layout.Resolved[string] {
	return r.sources[style]
}

// Face returns a face of the given style at sizePt points.
func (r *Registry) Face(style layout.FontStyle, sizePt float64, col color.Color) *canvas.FontFace {
	family, ok := r.families[style]
	if !ok {
		family = r.families[layout.FontRegular]
	}
	return family.Face(sizePt, col, canvas.FontRegular, canvas.FontNormal)
}

// TextWidth implements layout.Measurer; the result is in mm.
func (r *Registry) TextWidth(text string, style layout.FontStyle, sizePt float64) float64 {
	return r.Face(style, sizePt, canvas.Black).TextWidth(text)
}

var _ layout.Measurer = (*Registry)(nil)
