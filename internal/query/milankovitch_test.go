package query

import (
	"math"
	"testing"

	"github.com/leemwalker/planetgen/internal/external"
	"github.com/leemwalker/planetgen/internal/generator"
)

func TestCalculateOrbitalState_BaselineAtYearZero(t *testing.T) {
	state := CalculateOrbitalState(0, 1.0)
	if math.Abs(state.Eccentricity-eccentricityBaseline) > 1e-9 {
		t.Errorf("Eccentricity at year 0 = %v, want baseline %v", state.Eccentricity, eccentricityBaseline)
	}
	if math.Abs(state.ObliquityDeg-obliquityBaselineDeg) > 1e-9 {
		t.Errorf("ObliquityDeg at year 0 = %v, want baseline %v", state.ObliquityDeg, obliquityBaselineDeg)
	}
}

func TestCalculateOrbitalState_LowStabilityAmplifiesObliquitySwing(t *testing.T) {
	quarterCycle := int64(obliquityCycleYears / 4)
	stable := CalculateOrbitalState(quarterCycle, 1.0)
	chaotic := CalculateOrbitalState(quarterCycle, 0.0)

	stableSwing := math.Abs(stable.ObliquityDeg - obliquityBaselineDeg)
	chaoticSwing := math.Abs(chaotic.ObliquityDeg - obliquityBaselineDeg)
	if chaoticSwing <= stableSwing {
		t.Errorf("expected chaotic (stability=0) obliquity swing %v > stable swing %v", chaoticSwing, stableSwing)
	}
}

func TestInsolation_BaselineStateIsNearOne(t *testing.T) {
	state := OrbitalState{Eccentricity: eccentricityBaseline, ObliquityDeg: obliquityBaselineDeg, Precession: 0}
	got := Insolation(state)
	if math.Abs(got-1.0) > 0.06 {
		t.Errorf("Insolation(baseline) = %v, want close to 1.0", got)
	}
}

func TestIceAgePotential_Bounded(t *testing.T) {
	for _, year := range []int64{0, 10000, 50000, 90000} {
		state := CalculateOrbitalState(year, 0.5)
		potential := IceAgePotential(state)
		if potential < 0 || potential > 1 {
			t.Errorf("IceAgePotential(year=%d) = %v, outside [0,1]", year, potential)
		}
	}
}

func TestEngine_OrbitalState_NoSatellitesDefaultsToChaotic(t *testing.T) {
	p := testPlanet(t, 1, generator.Terrestrial)
	eng := New(p, nil)

	stableState := eng.OrbitalState(int64(obliquityCycleYears/4), []external.Satellite{{Mass: 1e23}})
	chaoticState := eng.OrbitalState(int64(obliquityCycleYears/4), nil)

	stableSwing := math.Abs(stableState.ObliquityDeg - obliquityBaselineDeg)
	chaoticSwing := math.Abs(chaoticState.ObliquityDeg - obliquityBaselineDeg)
	if chaoticSwing <= stableSwing {
		t.Errorf("expected no-satellite case to swing more: chaotic=%v stable=%v", chaoticSwing, stableSwing)
	}
}
