package layout

import (
	"math"
	"testing"
)

// TestPtMmRoundTrip checks pt<->mm conversion precision.
func TestPtMmRoundTrip(t *testing.T) {
	samples := []float64{0, 0.001, 1, 7, 9, 13, 72, 144, 1000}
	for _, pt := range samples {
		back := pt * PtToMm * MmToPt
		if diff := math.Abs(back - pt); diff > 1e-9 {
			t.Fatalf("pt->mm->pt drift too large: in=%gpt back=%g diff=%g", pt, back, diff)
		}
	}
}

func TestLengthToConversions(t *testing.T) {
	tests := []struct {
		name string
		in   Length
		mm   float64
	}{
		{name: "cm", in: CM(6.4), mm: 64},
		{name: "mm", in: MM(17), mm: 17},
		{name: "inch", in: Length{Value: 1, Unit: UnitIN}, mm: 25.4},
		{name: "pt", in: PT(12), mm: 12 * PtToMm},
		{name: "unitless passes through", in: Length{Value: 3}, mm: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.ToMM(); math.Abs(got-tt.mm) > 1e-9 {
				t.Fatalf("ToMM() = %g, want %g", got, tt.mm)
			}
		})
	}
	if got := MM(10).ToPT(); math.Abs(got-10*MmToPt) > 1e-9 {
		t.Fatalf("10mm in pt = %g, want %g", got, 10*MmToPt)
	}
}

func TestUnitStringRoundTrip(t *testing.T) {
	for _, u := range []Unit{UnitMM, UnitCM, UnitIN, UnitPT} {
		if got := UnitFromString(UnitToString(u)); got != u {
			t.Fatalf("unit %d round trip = %d", u, got)
		}
	}
	if UnitFromString("px") != UnitNone {
		t.Fatalf("unknown suffix must map to UnitNone")
	}
}

// TestLineHeightResolve covers the factor and absolute line-height forms in mm.
func TestLineHeightResolve(t *testing.T) {
	size := PT(9)
	factor := LineHeightSpec{Kind: LineHeightFactor, Factor: 0.9}
	if got, want := factor.Resolve(size, UnitMM), 9*0.9*PtToMm; math.Abs(got-want) > 1e-9 {
		t.Fatalf("0.9x resolved to %g, want %g", got, want)
	}
	abs := LineHeightSpec{Kind: LineHeightAbsolute, Len: MM(6)}
	if got := abs.Resolve(size, UnitMM); math.Abs(got-6) > 1e-9 {
		t.Fatalf("6mm resolved to %g", got)
	}
}
