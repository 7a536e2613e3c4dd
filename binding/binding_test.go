package binding

import "testing"

func TestInterpolate(t *testing.T) {
	row := Map{"codigo": "A-100", "imagen": "foto.png", "blank": "  "}
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{name: "plain", in: "foto.png", want: "foto.png", ok: true},
		{name: "column", in: "${codigo}.jpg", want: "A-100.jpg", ok: true},
		{name: "case insensitive", in: "${ CODIGO }.jpg", want: "A-100.jpg", ok: true},
		{name: "alternative", in: "${blank|imagen}", want: "foto.png", ok: true},
		{name: "missing", in: "${nope}.png", want: "${nope}.png", ok: false},
		{name: "blank value", in: "${blank}", want: "${blank}", ok: false},
		{name: "two", in: "${codigo}/${imagen}", want: "A-100/foto.png", ok: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Interpolate(tt.in, row)
			if got != tt.want || ok != tt.ok {
				t.Fatalf("Interpolate(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestInterpolateNilRow(t *testing.T) {
	if got, ok := Interpolate("${codigo}", nil); ok || got != "${codigo}" {
		t.Fatalf("nil row: %q, %v", got, ok)
	}
	if got, ok := Interpolate("x", nil); !ok || got != "x" {
		t.Fatalf("text without placeholders must pass: %q, %v", got, ok)
	}
}

func TestReferences(t *testing.T) {
	got := References("${codigo}-${imagen|descripcion}.png")
	want := []string{"codigo", "imagen", "descripcion"}
	if len(got) != len(want) {
		t.Fatalf("References = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("References = %v, want %v", got, want)
		}
	}
	if IsTemplate("foto.png") || !IsTemplate("${codigo}") {
		t.Fatalf("IsTemplate misreports")
	}
}
