// Package source reads the product table from a spreadsheet, CSV or Parquet file.
package source

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/ByLCY/catalogo/binding"
)

// Column names of the product table, matched case-insensitively after trimming.
const (
	ColCode        = "codigo"
	ColDescription = "descripcion"
	ColUnit        = "und"
	ColBulkUnit    = "und_bulto"
	ColSaleUnit    = "und_venta"
	ColImage       = "imagen"
)

// ErrUnsupportedFormat is returned for file extensions no reader handles.
var ErrUnsupportedFormat = errors.New("unsupported table format")

// Table is the decoded product table. Rows are keyed by normalized column name.
type Table struct {
	Path    string
	Columns []string
	Rows    []binding.Map
}

// Has reports whether the table carries the column.
func (t *Table) Has(column string) bool {
	want := NormalizeColumn(column)
	for _, c := range t.Columns {
		if c == want {
			return true
		}
	}
	return false
}

// Open reads the table at path, picking the reader from the file extension.
func Open(path string) (*Table, error) {
	ext := strings.ToLower(filepath.Ext(path))
	slog.Debug("Opening product table", "path", path, "format", ext)

	var (
		t   *Table
		err error
	)
	switch ext {
	case ".xlsx", ".xlsm":
		t, err = readExcel(path)
	case ".csv":
		t, err = readCSV(path)
	case ".parquet":
		t, err = readParquet(path)
	default:
		return nil, fmt.Errorf("%w: %s (supported: .xlsx, .xlsm, .csv, .parquet)", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, err
	}
	t.Path = path
	slog.Debug("Finished reading product table", "rows", len(t.Rows), "columns", t.Columns)
	return t, nil
}

// NormalizeColumn lower-cases and trims a header cell; a UTF-8 BOM is dropped.
func NormalizeColumn(name string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
}

// tableBuilder turns a header row plus data rows into a Table.
type tableBuilder struct {
	t       Table
	indexes []int // header position -> index in t.Columns, -1 for unnamed or duplicate columns
}

func newTableBuilder(header []string) *tableBuilder {
	b := &tableBuilder{}
	seen := map[string]bool{}
	for _, h := range header {
		name := NormalizeColumn(h)
		if name == "" || seen[name] {
			b.indexes = append(b.indexes, -1)
			continue
		}
		seen[name] = true
		b.indexes = append(b.indexes, len(b.t.Columns))
		b.t.Columns = append(b.t.Columns, name)
	}
	return b
}

// add appends a data row; rows with only blank cells are skipped.
func (b *tableBuilder) add(cells []string) {
	row := binding.Map{}
	blank := true
	for i, cell := range cells {
		if i >= len(b.indexes) || b.indexes[i] < 0 {
			continue
		}
		row[b.t.Columns[b.indexes[i]]] = cell
		if strings.TrimSpace(cell) != "" {
			blank = false
		}
	}
	if blank {
		return
	}
	b.t.Rows = append(b.t.Rows, row)
}

func (b *tableBuilder) table() *Table {
	t := b.t
	return &t
}
