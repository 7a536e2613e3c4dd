package catalog

import (
	"fmt"

	"github.com/disintegration/imaging"

	"github.com/ByLCY/catalogo/layout"
)

// fileAssets probes images on disk. Images are decoded in full so a truncated file already
// falls back at layout time; results are cached per path.
type fileAssets struct {
	cache map[string]layout.Resolved[layout.Size]
}

func newFileAssets() *fileAssets {
	return &fileAssets{cache: map[string]layout.Resolved[layout.Size]{}}
}

func (a *fileAssets) ImageSize(path string) layout.Resolved[layout.Size] {
	if r, ok := a.cache[path]; ok {
		return r
	}
	r := probe(path)
	a.cache[path] = r
	return r
}

func probe(path string) (res layout.Resolved[layout.Size]) {
	defer func() {
		if p := recover(); p != nil {
			res = layout.Fallback(layout.Size{}, fmt.Errorf("decode %s panicked: %v", path, p))
		}
	}()
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return layout.Fallback(layout.Size{}, err)
	}
	b := img.Bounds()
	return layout.OK(layout.Size{Width: b.Dx(), Height: b.Dy()})
}
