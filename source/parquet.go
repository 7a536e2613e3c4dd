package source

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/parquet-go/parquet-go"
)

// readParquet reads every row group of a flat Parquet file. Leaf columns are named by their
// top-level field; nulls become blank cells.
func readParquet(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}
	slog.Debug("Parquet file opened", "num_rows", pf.NumRows(), "num_row_groups", len(pf.RowGroups()))

	var header []string
	for _, col := range pf.Schema().Columns() {
		header = append(header, col[0])
	}
	b := newTableBuilder(header)

	batch := make([]parquet.Row, 128)
	for _, rg := range pf.RowGroups() {
		if err := readRowGroup(rg, batch, len(header), b); err != nil {
			return nil, err
		}
	}
	return b.table(), nil
}

func readRowGroup(rg parquet.RowGroup, batch []parquet.Row, width int, b *tableBuilder) error {
	rows := rg.Rows()
	defer rows.Close()
	for {
		n, err := rows.ReadRows(batch)
		for _, row := range batch[:n] {
			cells := make([]string, width)
			for _, v := range row {
				if c := v.Column(); c >= 0 && c < width {
					cells[c] = formatValue(v)
				}
			}
			b.add(cells)
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read parquet rows: %w", err)
		}
	}
}

func formatValue(v parquet.Value) string {
	if v.IsNull() {
		return ""
	}
	switch v.Kind() {
	case parquet.Boolean:
		return strconv.FormatBool(v.Boolean())
	case parquet.Int32:
		return strconv.FormatInt(int64(v.Int32()), 10)
	case parquet.Int64:
		return strconv.FormatInt(v.Int64(), 10)
	case parquet.Float:
		return strconv.FormatFloat(float64(v.Float()), 'f', -1, 32)
	case parquet.Double:
		return strconv.FormatFloat(v.Double(), 'f', -1, 64)
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return string(v.ByteArray())
	default:
		return v.String()
	}
}
