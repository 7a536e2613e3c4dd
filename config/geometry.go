package config

import (
	"fmt"

	"github.com/ByLCY/catalogo/dsl"
	"github.com/ByLCY/catalogo/layout"
)

// GeometryOverrides replaces individual grid constants. Lengths are dimension expressions
// such as "6.4cm" or "page.width / 3"; unset fields keep the tuned defaults.
type GeometryOverrides struct {
	CardWidth               string    `yaml:"card_width"`
	CardHeight              string    `yaml:"card_height"`
	Columns                 []string  `yaml:"columns"`
	RowStep                 string    `yaml:"row_step"`
	FirstStartOffset        string    `yaml:"first_start_offset"`
	ContinuationStartOffset string    `yaml:"continuation_start_offset"`
	BottomMargin            string    `yaml:"bottom_margin"`
	// FirstHeaderRatio is height/width, e.g. "363/991".
	FirstHeaderRatio         string `yaml:"first_header_ratio"`
	ContinuationHeaderHeight string `yaml:"continuation_header_height"`
	FallbackHeaderHeight     string `yaml:"fallback_header_height"`
	MarkerSize               string `yaml:"marker_size"`

	// Cards per page; 0 derives the capacity from the page height.
	FirstCapacity        *int `yaml:"first_capacity"`
	ContinuationCapacity *int `yaml:"continuation_capacity"`
}

// ResolveGeometry applies the overrides to the default geometry.
func (c Config) ResolveGeometry() (layout.Geometry, error) {
	g := layout.DefaultGeometry()
	o := c.Geometry
	env := dsl.PageEnv(g)

	lengths := []struct {
		name string
		src  string
		dst  *float64
	}{
		{"card_width", o.CardWidth, &g.CardWidth},
		{"card_height", o.CardHeight, &g.CardHeight},
		{"row_step", o.RowStep, &g.RowStep},
		{"first_start_offset", o.FirstStartOffset, &g.FirstStartOffset},
		{"continuation_start_offset", o.ContinuationStartOffset, &g.ContinuationStartOffset},
		{"bottom_margin", o.BottomMargin, &g.BottomMargin},
		{"continuation_header_height", o.ContinuationHeaderHeight, &g.ContinuationHeaderHeight},
		{"fallback_header_height", o.FallbackHeaderHeight, &g.FallbackHeaderHeight},
		{"marker_size", o.MarkerSize, &g.MarkerSize},
	}
	if len(o.Columns) > 0 && len(o.Columns) != layout.GridColumns {
		return layout.Geometry{}, fmt.Errorf("geometry.columns: want %d positions, got %d", layout.GridColumns, len(o.Columns))
	}
	for i, src := range o.Columns {
		lengths = append(lengths, struct {
			name string
			src  string
			dst  *float64
		}{fmt.Sprintf("columns[%d]", i), src, &g.Columns[i]})
	}
	for _, l := range lengths {
		if l.src == "" {
			continue
		}
		v, err := dsl.Length(l.src, env)
		if err != nil {
			return layout.Geometry{}, fmt.Errorf("geometry.%s: %w", l.name, err)
		}
		*l.dst = v
	}
	if o.FirstHeaderRatio != "" {
		v, err := dsl.Ratio(o.FirstHeaderRatio, env)
		if err != nil {
			return layout.Geometry{}, fmt.Errorf("geometry.first_header_ratio: %w", err)
		}
		g.FirstHeaderRatio = v
	}
	if o.FirstCapacity != nil {
		g.FirstCapacity = *o.FirstCapacity
	}
	if o.ContinuationCapacity != nil {
		g.ContinuationCapacity = *o.ContinuationCapacity
	}
	if err := g.Validate(); err != nil {
		return layout.Geometry{}, err
	}
	return g, nil
}
