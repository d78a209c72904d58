package generator

import (
	"testing"

	"github.com/google/uuid"

	"github.com/leemwalker/planetgen/internal/external"
)

func TestTidalStress_NoSatellitesIsZero(t *testing.T) {
	if got := TidalStress(nil); got != 0 {
		t.Errorf("TidalStress(nil) = %v, want 0", got)
	}
}

func TestTidalStress_EarthMoonEquivalentIsApproxOne(t *testing.T) {
	moon := external.Satellite{Mass: 7.342e22, Distance: 384400e3}
	got := TidalStress([]external.Satellite{moon})
	if got < 0.99 || got > 1.01 {
		t.Errorf("TidalStress(earth-moon) = %v, want ~1.0", got)
	}
}

func TestObliquityStability_MassiveSatelliteStabilizes(t *testing.T) {
	planetMass := 5.972e24
	heavy := []external.Satellite{{Mass: 0.02 * planetMass}}
	light := []external.Satellite{{Mass: 0.0001 * planetMass}}

	if got := ObliquityStability(heavy, planetMass); got != 1.0 {
		t.Errorf("ObliquityStability(heavy) = %v, want 1.0", got)
	}
	if got := ObliquityStability(light, planetMass); got != 0.1 {
		t.Errorf("ObliquityStability(light) = %v, want 0.1", got)
	}
	if got := ObliquityStability(nil, planetMass); got != 0.1 {
		t.Errorf("ObliquityStability(nil) = %v, want 0.1", got)
	}
}

func TestApplyTidalRingWidening_NoRingsIsNoop(t *testing.T) {
	p := &Planet{}
	ApplyTidalRingWidening(p, []external.Satellite{{Mass: 7.342e22, Distance: 384400e3}})
	if p.Rings != nil {
		t.Errorf("expected Rings to remain nil, got %v", p.Rings)
	}
}

func TestApplyTidalRingWidening_WidensProportionalToStress(t *testing.T) {
	p := &Planet{
		Rings: []Ring{{ID: uuid.New(), InnerRadius: 1e8, OuterRadius: 2e8, Icy: true}},
	}
	originalWidth := p.Rings[0].OuterRadius - p.Rings[0].InnerRadius

	closeHeavyMoon := external.Satellite{Mass: 7.342e22 * 5, Distance: 200000e3}
	ApplyTidalRingWidening(p, []external.Satellite{closeHeavyMoon})

	widenedWidth := p.Rings[0].OuterRadius - p.Rings[0].InnerRadius
	if widenedWidth <= originalWidth {
		t.Errorf("expected ring to widen: original=%v widened=%v", originalWidth, widenedWidth)
	}
	if p.Rings[0].InnerRadius != 1e8 {
		t.Errorf("InnerRadius should be unchanged, got %v", p.Rings[0].InnerRadius)
	}
}

func TestApplyTidalRingWidening_NoSatellitesIsNoop(t *testing.T) {
	p := &Planet{
		Rings: []Ring{{ID: uuid.New(), InnerRadius: 1e8, OuterRadius: 2e8}},
	}
	ApplyTidalRingWidening(p, nil)
	if p.Rings[0].OuterRadius != 2e8 {
		t.Errorf("expected no widening with no satellites, got OuterRadius=%v", p.Rings[0].OuterRadius)
	}
}
