package catalog

import (
	"path/filepath"
	"testing"

	"github.com/ByLCY/catalogo/binding"
)

func deref(p *string) string {
	if p == nil {
		return "<nil>"
	}
	return *p
}

func TestRecordFromRow(t *testing.T) {
	tests := []struct {
		name     string
		row      binding.Map
		template string
		wantImg  string
		wantUnit string
		wantBulk string
	}{
		{
			name:     "all fields",
			row:      binding.Map{"codigo": "A1", "descripcion": "Tornillo", "und": "12", "und_bulto": "6", "imagen": "a1.png"},
			wantImg:  filepath.Join("imagenes", "a1.png"),
			wantUnit: "12",
			wantBulk: "6",
		},
		{
			name:     "blank image and nan units",
			row:      binding.Map{"codigo": "A2", "imagen": "  ", "und": "nan", "und_bulto": "<NA>"},
			wantImg:  "",
			wantUnit: "<nil>",
			wantBulk: "<nil>",
		},
		{
			name:     "nan image",
			row:      binding.Map{"codigo": "A3", "imagen": "NaN"},
			wantImg:  "",
			wantUnit: "<nil>",
			wantBulk: "<nil>",
		},
		{
			name:     "template from code",
			row:      binding.Map{"codigo": "A4"},
			template: "${codigo}.jpg",
			wantImg:  filepath.Join("imagenes", "A4.jpg"),
			wantUnit: "<nil>",
			wantBulk: "<nil>",
		},
		{
			name:     "template with missing column",
			row:      binding.Map{"codigo": "A5"},
			template: "${foto}.jpg",
			wantImg:  "",
			wantUnit: "<nil>",
			wantBulk: "<nil>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := RecordFromRow(tt.row, "imagenes", tt.template)
			if rec.ImagePath != tt.wantImg {
				t.Fatalf("ImagePath = %q, want %q", rec.ImagePath, tt.wantImg)
			}
			if got := deref(rec.Unit); got != tt.wantUnit {
				t.Fatalf("Unit = %s, want %s", got, tt.wantUnit)
			}
			if got := deref(rec.BulkUnit); got != tt.wantBulk {
				t.Fatalf("BulkUnit = %s, want %s", got, tt.wantBulk)
			}
			if rec.SaleUnit != nil {
				t.Fatalf("SaleUnit must be absent")
			}
		})
	}
}

func TestRecordFromRowAbsoluteImage(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "x.png")
	rec := RecordFromRow(binding.Map{"imagen": abs}, "imagenes", "")
	if rec.ImagePath != abs {
		t.Fatalf("ImagePath = %q, want %q", rec.ImagePath, abs)
	}
}
