package query

import (
	"math"

	"github.com/leemwalker/planetgen/internal/external"
)

// Orbital cycle periods, in years, for the three classical Milankovitch
// cycles.
const (
	eccentricityCycleYears = 100000
	obliquityCycleYears    = 41000
	precessionCycleYears   = 26000
)

const (
	eccentricityBaseline  = 0.017
	eccentricityAmplitude = 0.01
	obliquityBaselineDeg  = 23.44
	obliquityAmplitudeDeg = 1.2
)

// OrbitalState is a long-period Milankovitch-style snapshot of a planet's
// orbital parameters at a given year — additive over OrbitGeometry, never
// consumed by Generator or SurfaceSampler, so it cannot perturb the core
// pipeline's determinism.
type OrbitalState struct {
	Eccentricity float64
	ObliquityDeg float64
	Precession   float64 // normalized [-1,1] phase of orbital precession
}

// CalculateOrbitalState computes orbital parameters for the given
// simulation year under sine-wave superposition of the three Milankovitch
// cycles, scaled by obliquityStability ∈ [0,1] (1.0 = Earth-Moon-like
// stabilized tilt, 0.0 = Mars-like chaotic swing — see
// generator.ObliquityStability).
func CalculateOrbitalState(year int64, obliquityStability float64) OrbitalState {
	stability := clampUnit01(obliquityStability)
	y := float64(year)

	eccAngle := 2 * math.Pi * y / eccentricityCycleYears
	oblAngle := 2 * math.Pi * y / obliquityCycleYears
	precAngle := 2 * math.Pi * y / precessionCycleYears

	chaosMultiplier := 1.0 + (1.0-stability)*10.0
	effectiveAmplitude := obliquityAmplitudeDeg * chaosMultiplier

	return OrbitalState{
		Eccentricity: eccentricityBaseline + eccentricityAmplitude*math.Sin(eccAngle),
		ObliquityDeg: obliquityBaselineDeg + effectiveAmplitude*math.Sin(oblAngle),
		Precession:   math.Sin(precAngle),
	}
}

func clampUnit01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Insolation returns a normalized solar-energy factor (1.0 = baseline)
// from an OrbitalState's obliquity/eccentricity/precession combination.
func Insolation(state OrbitalState) float64 {
	obliquityMin := obliquityBaselineDeg - obliquityAmplitudeDeg
	obliquityMax := obliquityBaselineDeg + obliquityAmplitudeDeg
	obliquityNorm := (state.ObliquityDeg - obliquityMin) / (obliquityMax - obliquityMin)
	obliquityEffect := (obliquityNorm - 0.5) * 0.06

	eccentricityEffect := state.Eccentricity * state.Precession * 0.5

	return 1.0 + obliquityEffect + eccentricityEffect
}

// IceAgePotential maps Insolation onto a [0,1] likelihood of ice-age-prone
// conditions.
func IceAgePotential(state OrbitalState) float64 {
	insolation := Insolation(state)
	potential := (1.0 - insolation) / 0.07
	return clampUnit01(potential)
}

// OrbitalState is the Engine-scoped convenience wrapper: it derives
// obliquity stability from the planet's satellites (the same formula as
// generator.ObliquityStability, repeated here in
// obliquityStabilityFromSatellites — both read directly off
// external.Satellite).
func (e *Engine) OrbitalState(year int64, satellites []external.Satellite) OrbitalState {
	return CalculateOrbitalState(year, obliquityStabilityFromSatellites(satellites, e.Planet.Mass))
}

func obliquityStabilityFromSatellites(satellites []external.Satellite, planetMass float64) float64 {
	if len(satellites) == 0 || planetMass <= 0 {
		return 0.1
	}
	var totalSatelliteMass float64
	for _, sat := range satellites {
		totalSatelliteMass += sat.Mass
	}
	const stableSatelliteMassRatio = 0.01
	if totalSatelliteMass/planetMass > stableSatelliteMassRatio {
		return 1.0
	}
	return 0.1
}
