package catalog

import (
	"path/filepath"
	"strings"

	"github.com/ByLCY/catalogo/binding"
	"github.com/ByLCY/catalogo/layout"
	"github.com/ByLCY/catalogo/source"
)

// DefaultImageTemplate takes the image file name from the imagen column.
const DefaultImageTemplate = "${" + source.ColImage + "}"

// RecordFromRow maps one table row to a product record. The image file name comes from
// template and is resolved under imagesDir; an unresolved or blank name leaves ImagePath empty.
func RecordFromRow(row binding.Map, imagesDir, template string) layout.ProductRecord {
	if template == "" {
		template = DefaultImageTemplate
	}
	rec := layout.ProductRecord{
		Code:        text(row, source.ColCode),
		Description: text(row, source.ColDescription),
		Unit:        layout.OptionalField(row.Value(source.ColUnit)),
		BulkUnit:    layout.OptionalField(row.Value(source.ColBulkUnit)),
		SaleUnit:    layout.OptionalField(row.Value(source.ColSaleUnit)),
	}
	name, ok := binding.Interpolate(template, row)
	if !ok || layout.OptionalField(name, true) == nil {
		return rec
	}
	name = strings.TrimSpace(name)
	if filepath.IsAbs(name) || imagesDir == "" {
		rec.ImagePath = name
	} else {
		rec.ImagePath = filepath.Join(imagesDir, name)
	}
	return rec
}

func text(row binding.Map, column string) string {
	if v := layout.OptionalField(row.Value(column)); v != nil {
		return *v
	}
	return ""
}
