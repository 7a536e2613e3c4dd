package layout

import "strings"

// ProductRecord is one normalized input row. Unit fields are nil when absent or blank.
type ProductRecord struct {
	Code        string  `json:"code"`
	Description string  `json:"description"`
	Unit        *string `json:"unit,omitempty"`
	BulkUnit    *string `json:"bulkUnit,omitempty"`
	SaleUnit    *string `json:"saleUnit,omitempty"`
	ImagePath   string  `json:"imagePath"`
}

// UnitCell is one column of the unit table.
type UnitCell struct {
	Label string
	Value string
}

// Unit table labels in their fixed order.
const (
	LabelUnit     = "UND:"
	LabelBulkUnit = "BULTO:"
	LabelSaleUnit = "UND.VENTA:"
)

// UnitCells returns the present unit fields in the fixed order unit, bulk unit, sale unit.
func (p ProductRecord) UnitCells() []UnitCell {
	var cells []UnitCell
	for _, f := range []struct {
		label string
		value *string
	}{
		{LabelUnit, p.Unit},
		{LabelBulkUnit, p.BulkUnit},
		{LabelSaleUnit, p.SaleUnit},
	} {
		if f.value == nil || strings.TrimSpace(*f.value) == "" {
			continue
		}
		cells = append(cells, UnitCell{Label: f.label, Value: *f.value})
	}
	return cells
}

// OptionalField turns a raw cell into an optional value: blank cells are absent.
func OptionalField(raw string, present bool) *string {
	if !present {
		return nil
	}
	v := strings.TrimSpace(raw)
	switch v {
	case "", "nan", "NaN", "<NA>":
		return nil
	}
	return &v
}
