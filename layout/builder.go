package layout

import (
	"errors"
	"fmt"
)

// ErrNoBadgeImage is the fallback reason when no badge asset is configured.
var ErrNoBadgeImage = errors.New("no badge image configured")

// Build lays out every record as a card, page by page.
//
// Page 1 carries the first header; every page break opens a page with the continuation header.
// A page break after the last record does not leave an empty trailing page behind.
func Build(records []ProductRecord, opts BuildOptions) (*Result, error) {
	if opts.Measurer == nil {
		return nil, fmt.Errorf("layout: missing Measurer")
	}
	g := opts.Geometry
	if err := g.Validate(); err != nil {
		return nil, err
	}

	first := ResolveHeader(opts.FirstHeader, HeaderFirst, g, opts.Assets)
	continuation := ResolveHeader(opts.ContinuationHeader, HeaderContinuation, g, opts.Assets)
	env := CardEnv{
		Geometry: g,
		Fitter:   NewFitter(opts.Measurer),
		Assets:   opts.Assets,
		Accent:   opts.Accent,
		Badge:    probeBadge(opts.Assets, opts.BadgeImage),
	}

	pc := newPageCollector(g)
	pc.open(headerBand(first, g))
	contBand := headerBand(continuation, g)

	pager := NewPager(g, first.Value.Height, continuation.Value.Height)
	for _, rec := range records {
		slot, pageBreak := pager.Place()
		pc.curr().Cards = append(pc.curr().Cards, ComposeCard(slot, rec, env))
		if pageBreak {
			pc.open(contBand)
		}
	}

	return &Result{
		Pages:  pc.pages(),
		Accent: opts.Accent,
		Meta:   opts.Meta,
	}, nil
}

func probeBadge(assets Assets, path string) Resolved[string] {
	if path == "" {
		return Fallback("", ErrNoBadgeImage)
	}
	if assets == nil {
		return Fallback("", errors.New("no asset prober configured"))
	}
	if probe := assets.ImageSize(path); probe.IsFallback() {
		return Fallback("", probe.Reason)
	}
	return OK(path)
}

// pageCollector accumulates pages in order.
type pageCollector struct {
	geo  Geometry
	list []Page
}

func newPageCollector(g Geometry) *pageCollector {
	return &pageCollector{geo: g}
}

func (pc *pageCollector) open(header HeaderBand) {
	pc.list = append(pc.list, Page{
		Number: len(pc.list) + 1,
		Width:  pc.geo.PageWidth,
		Height: pc.geo.PageHeight,
		Header: header,
	})
}

func (pc *pageCollector) curr() *Page {
	return &pc.list[len(pc.list)-1]
}

// pages drops a trailing page that never received a card, keeping at least one page.
func (pc *pageCollector) pages() []Page {
	if n := len(pc.list); n > 1 && len(pc.list[n-1].Cards) == 0 {
		return pc.list[:n-1]
	}
	return pc.list
}
