package source

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// readExcel reads the first worksheet; its first row is the header.
func readExcel(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return &Table{}, nil
	}
	b := newTableBuilder(rows[0])
	for _, row := range rows[1:] {
		b.add(row)
	}
	return b.table(), nil
}
