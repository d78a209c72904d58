package params

import (
	"testing"

	"github.com/leemwalker/planetgen/internal/apperr"
)

func TestDefault_Validates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("expected default params to validate, got %v", err)
	}
}

func TestValidate_RejectsNonPositiveRadius(t *testing.T) {
	p := Default()
	p.EarthRadius = 0
	err := p.Validate()
	if err == nil {
		t.Fatal("expected error for zero radius")
	}
	if kind, ok := apperr.KindOf(err); !ok || kind != apperr.KindGeometryDegeneracy {
		t.Fatalf("expected GeometryDegeneracy kind, got %v", err)
	}
}

func TestValidate_RejectsOutOfRangeWaterRatio(t *testing.T) {
	p := Default()
	p.EarthWaterRatio = 1.5
	if err := p.Validate(); err == nil {
		t.Fatal("expected error for water ratio > 1")
	}
}

func TestNew_AppliesOptionsOverDefaults(t *testing.T) {
	p := New(WithWaterRatio(0), WithAxialTilt(0))
	if p.EarthWaterRatio != 0 {
		t.Fatalf("expected water ratio override to apply, got %v", p.EarthWaterRatio)
	}
	if p.EarthAxialTilt != 0 {
		t.Fatalf("expected axial tilt override to apply, got %v", p.EarthAxialTilt)
	}
	if p.EarthRadius != Default().EarthRadius {
		t.Fatalf("expected unrelated defaults preserved, got %v", p.EarthRadius)
	}
}

func TestHumanBreathable_HasOxygenBand(t *testing.T) {
	req := HumanBreathable()
	found := false
	for _, a := range req.Atmospheric {
		if a.Substance == "o2" {
			found = true
			if a.MinProportion >= a.MaxProportion {
				t.Fatalf("expected min < max for o2 band, got %+v", a)
			}
		}
	}
	if !found {
		t.Fatal("expected an o2 atmospheric requirement")
	}
}
