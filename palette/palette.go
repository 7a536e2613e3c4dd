// Package palette picks the accent colour used by every card from a header image.
package palette

import (
	"errors"
	"fmt"
	"image"
	"sort"

	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ByLCY/catalogo/layout"
)

// SampleSize is the side of the square grid the image is reduced to before counting colours.
const SampleSize = 60

// FallbackHex is the neutral gray used when no accent can be sampled.
const FallbackHex = "#CCCCCC"

// ErrNoAccent means the image holds nothing but pure white and pure black.
var ErrNoAccent = errors.New("palette: image has no colour besides black and white")

// Fallback is the neutral accent.
var Fallback = mustHex(FallbackHex)

// Sample opens the image at path and returns its most frequent colour that is neither pure
// white nor pure black. Any failure yields the neutral gray fallback; Sample never panics.
func Sample(path string) (res layout.Resolved[layout.Color]) {
	defer func() {
		if r := recover(); r != nil {
			res = layout.Fallback(Fallback, fmt.Errorf("palette: decoding %s panicked: %v", path, r))
		}
	}()
	img, err := imaging.Open(path)
	if err != nil {
		return layout.Fallback(Fallback, fmt.Errorf("palette: %w", err))
	}
	return SampleImage(img)
}

// SampleImage runs the colour selection on an already decoded image.
func SampleImage(img image.Image) layout.Resolved[layout.Color] {
	if img == nil || img.Bounds().Empty() {
		return layout.Fallback(Fallback, errors.New("palette: empty image"))
	}
	small := imaging.Resize(img, SampleSize, SampleSize, imaging.NearestNeighbor)
	for _, c := range histogram(small) {
		if c.rgb == (layout.White) || c.rgb == (layout.Black) {
			continue
		}
		return layout.OK(c.rgb)
	}
	return layout.Fallback(Fallback, ErrNoAccent)
}

// Hex formats a colour as #RRGGBB.
func Hex(c layout.Color) string {
	return toColorful(c).Hex()
}

type bucket struct {
	rgb   layout.Color
	count int
}

// histogram counts every RGB value (alpha is ignored) and orders by descending count;
// ties are broken by ascending packed RGB so the result is deterministic.
func histogram(img *image.NRGBA) []bucket {
	counts := make(map[layout.Color]int)
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			i := img.PixOffset(x, y)
			px := img.Pix[i : i+3 : i+3]
			counts[layout.Color{R: int(px[0]), G: int(px[1]), B: int(px[2])}]++
		}
	}
	out := make([]bucket, 0, len(counts))
	for c, n := range counts {
		out = append(out, bucket{rgb: c, count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return pack(out[i].rgb) < pack(out[j].rgb)
	})
	return out
}

func pack(c layout.Color) int { return c.R<<16 | c.G<<8 | c.B }

func toColorful(c layout.Color) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func mustHex(s string) layout.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	r, g, b := c.RGB255()
	return layout.Color{R: int(r), G: int(g), B: int(b)}
}
