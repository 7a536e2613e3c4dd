package renderer

import "github.com/ByLCY/catalogo/layout"

// Renderer turns a catalog layout into the final document bytes, e.g. a PDF.
type Renderer interface {
	Render(result *layout.Result) ([]byte, error)
}
