package source

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/xuri/excelize/v2"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func mustOpen(t *testing.T, path string) *Table {
	t.Helper()
	tbl, err := Open(path)
	if err != nil {
		t.Fatalf("Open(%s): %v", path, err)
	}
	return tbl
}

func checkCell(t *testing.T, tbl *Table, row int, column, want string, wantOK bool) {
	t.Helper()
	got, ok := tbl.Rows[row].Value(column)
	if got != want || ok != wantOK {
		t.Fatalf("row %d %s = %q, %v; want %q, %v", row, column, got, ok, want, wantOK)
	}
}

func TestOpenCSV(t *testing.T) {
	path := writeFile(t, "productos.csv", "\ufeff Codigo ,DESCRIPCION,und,und_bulto,imagen\n"+
		"A1,Tornillo,12,,a1.png\n"+
		",,,,\n"+
		"B2,\"Tuerca, hexagonal\",6,24\n")
	tbl := mustOpen(t, path)
	if len(tbl.Rows) != 2 {
		t.Fatalf("got %d rows, want 2 (blank row skipped)", len(tbl.Rows))
	}
	if !tbl.Has("CODIGO") || tbl.Has(ColSaleUnit) {
		t.Fatalf("columns = %v", tbl.Columns)
	}
	checkCell(t, tbl, 0, ColCode, "A1", true)
	checkCell(t, tbl, 0, ColBulkUnit, "", false)
	checkCell(t, tbl, 1, ColDescription, "Tuerca, hexagonal", true)
	checkCell(t, tbl, 1, ColImage, "", false)
	checkCell(t, tbl, 1, ColSaleUnit, "", false)
}

func TestOpenCSVSemicolon(t *testing.T) {
	path := writeFile(t, "productos.csv", "codigo;descripcion;und\nA1;Clavo de acero, 2 pulgadas;100\n")
	tbl := mustOpen(t, path)
	checkCell(t, tbl, 0, ColDescription, "Clavo de acero, 2 pulgadas", true)
	checkCell(t, tbl, 0, ColUnit, "100", true)
}

func TestOpenCSVEmpty(t *testing.T) {
	tbl := mustOpen(t, writeFile(t, "vacio.csv", ""))
	if len(tbl.Rows) != 0 {
		t.Fatalf("expected no rows")
	}
}

func TestOpenExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "productos.xlsx")
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	cells := map[string]any{
		"A1": "codigo", "B1": "descripcion", "C1": "und_venta", "D1": "imagen",
		"A2": "X-9", "B2": "Martillo", "C2": 1, "D2": "x9.jpg",
		"A3": "X-10", "B3": "Alicate",
	}
	for cell, v := range cells {
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			t.Fatal(err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	f.Close()

	tbl := mustOpen(t, path)
	if len(tbl.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(tbl.Rows))
	}
	checkCell(t, tbl, 0, ColSaleUnit, "1", true)
	checkCell(t, tbl, 1, ColCode, "X-10", true)
	checkCell(t, tbl, 1, ColSaleUnit, "", false)
}

type parquetProduct struct {
	Codigo      string   `parquet:"codigo"`
	Descripcion *string  `parquet:"descripcion,optional"`
	Und         *int64   `parquet:"und,optional"`
	UndBulto    *float64 `parquet:"und_bulto,optional"`
	Imagen      *string  `parquet:"imagen,optional"`
}

func TestOpenParquet(t *testing.T) {
	desc := "Llave inglesa"
	und := int64(12)
	bulto := 6.0
	path := filepath.Join(t.TempDir(), "productos.parquet")
	rows := []parquetProduct{
		{Codigo: "P1", Descripcion: &desc, Und: &und, UndBulto: &bulto},
		{Codigo: "P2"},
	}
	if err := parquet.WriteFile(path, rows); err != nil {
		t.Fatal(err)
	}

	tbl := mustOpen(t, path)
	if len(tbl.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(tbl.Rows))
	}
	checkCell(t, tbl, 0, ColDescription, "Llave inglesa", true)
	checkCell(t, tbl, 0, ColUnit, "12", true)
	checkCell(t, tbl, 0, ColBulkUnit, "6", true)
	checkCell(t, tbl, 1, ColCode, "P2", true)
	checkCell(t, tbl, 1, ColUnit, "", false)
	checkCell(t, tbl, 1, ColImage, "", false)
}

func TestOpenErrors(t *testing.T) {
	if _, err := Open(writeFile(t, "data.json", "{}")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("json error = %v", err)
	}
	if _, err := Open(filepath.Join(t.TempDir(), "missing.xlsx")); err == nil {
		t.Fatalf("missing workbook must fail")
	}
	if _, err := Open(writeFile(t, "broken.parquet", "not parquet")); err == nil {
		t.Fatalf("corrupt parquet must fail")
	}
}
