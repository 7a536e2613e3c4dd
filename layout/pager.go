package layout

// Slot is where the next card goes.
type Slot struct {
	Index  int     `json:"index"` // 0-based position in the whole document
	Page   int     `json:"page"`  // 0-based page index
	Column int     `json:"column"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// Cursor is the pager's per-page state.
type Cursor struct {
	Column   int     `json:"column"`
	Y        float64 `json:"y"`
	Placed   int     `json:"placed"`
	Capacity int     `json:"capacity"`
	Page     int     `json:"page"`
}

// Pager hands out grid slots page by page.
//
// After every placement the column advances and wraps to a new row after GridColumns cards.
// When the number of cards on the page reaches the page capacity a page break is reported and
// the cursor restarts below the continuation header with the continuation capacity.
type Pager struct {
	geo          Geometry
	continuation float64 // continuation header height
	cursor       Cursor
	next         int
}

// NewPager starts on the first page below a header of firstHeader mm; continuationHeader is the
// header height used on every following page.
func NewPager(geo Geometry, firstHeader, continuationHeader float64) *Pager {
	start := geo.PageStart(firstHeader, geo.FirstStartOffset)
	return &Pager{
		geo:          geo,
		continuation: continuationHeader,
		cursor: Cursor{
			Y:        start,
			Capacity: geo.capacity(geo.FirstCapacity, start),
		},
	}
}

// Cursor returns a copy of the current state.
func (p *Pager) Cursor() Cursor { return p.cursor }

// Place returns the slot for the next card and advances the cursor.
// pageBreak is true when the page is full after this card; the cursor then already points at
// the first slot of the next page.
func (p *Pager) Place() (slot Slot, pageBreak bool) {
	c := &p.cursor
	slot = Slot{
		Index:  p.next,
		Page:   c.Page,
		Column: c.Column,
		X:      p.geo.Columns[c.Column],
		Y:      c.Y,
	}
	p.next++

	c.Placed++
	c.Column++
	if c.Column == GridColumns {
		c.Column = 0
		c.Y += p.geo.RowStep
	}
	if c.Placed >= c.Capacity {
		p.breakPage()
		return slot, true
	}
	return slot, false
}

func (p *Pager) breakPage() {
	start := p.geo.PageStart(p.continuation, p.geo.ContinuationStartOffset)
	p.cursor = Cursor{
		Column:   0,
		Y:        start,
		Placed:   0,
		Capacity: p.geo.capacity(p.geo.ContinuationCapacity, start),
		Page:     p.cursor.Page + 1,
	}
}
