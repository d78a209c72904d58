// Package params holds the generator's configuration surface: PlanetParams
// (Earth-baseline physical constants the generator scales from) and
// HabitabilityRequirements (the bounds a query checks a finished planet
// against), built via a functional-options constructor over a config
// struct with validation.
package params

import "github.com/leemwalker/planetgen/internal/apperr"

// PlanetParams is the spec.md §6 configuration table: Earth baseline
// constants the Generator scales every planet type from.
type PlanetParams struct {
	EarthAxialTilt           float64 // radians
	EarthRotationalPeriod    float64 // seconds
	EarthRevolutionPeriod    float64 // seconds
	EarthAtmosphericPressure float64 // kPa
	EarthSurfaceTemperature  float64 // K
	EarthWaterRatio          float64 // [0,1]
	EarthWaterVaporRatio     float64 // atmospheric fraction
	EarthAlbedo              float64 // [0,1]
	EarthRadius              float64 // meters
	EarthSurfaceGravity      float64 // m/s^2
	EarthEccentricity        float64
}

// Default returns the Earth-baseline PlanetParams spec.md §6 describes as
// the option defaults.
func Default() PlanetParams {
	return PlanetParams{
		EarthAxialTilt:           23.4 * 0.017453292519943295,
		EarthRotationalPeriod:    86164.0905,
		EarthRevolutionPeriod:    31558149.504,
		EarthAtmosphericPressure: 101.325,
		EarthSurfaceTemperature:  288.15,
		EarthWaterRatio:          0.708,
		EarthWaterVaporRatio:     0.04,
		EarthAlbedo:              0.306,
		EarthRadius:              6_371_000,
		EarthSurfaceGravity:      9.80665,
		EarthEccentricity:        0.0167,
	}
}

// Validate checks the bounds every field must satisfy before the Generator
// trusts the params — numeric degeneracy downstream (division by
// EarthRadius, EarthSurfaceGravity, etc.) is guarded at the call site per
// spec.md §7, but a params struct with a zero or negative radius/gravity/
// period is a configuration error rather than a value to clamp, so it is
// rejected here with KindGeometryDegeneracy instead of silently clamped.
func (p PlanetParams) Validate() error {
	switch {
	case p.EarthRadius <= 0:
		return apperr.New(apperr.KindGeometryDegeneracy, "earth_radius must be positive, got %v", p.EarthRadius)
	case p.EarthSurfaceGravity <= 0:
		return apperr.New(apperr.KindGeometryDegeneracy, "earth_surface_gravity must be positive, got %v", p.EarthSurfaceGravity)
	case p.EarthRotationalPeriod <= 0:
		return apperr.New(apperr.KindGeometryDegeneracy, "earth_rotational_period must be positive, got %v", p.EarthRotationalPeriod)
	case p.EarthRevolutionPeriod <= 0:
		return apperr.New(apperr.KindGeometryDegeneracy, "earth_revolution_period must be positive, got %v", p.EarthRevolutionPeriod)
	case p.EarthWaterRatio < 0 || p.EarthWaterRatio > 1:
		return apperr.New(apperr.KindGeometryDegeneracy, "earth_water_ratio must be in [0,1], got %v", p.EarthWaterRatio)
	case p.EarthAlbedo < 0 || p.EarthAlbedo > 1:
		return apperr.New(apperr.KindGeometryDegeneracy, "earth_albedo must be in [0,1], got %v", p.EarthAlbedo)
	case p.EarthEccentricity < 0 || p.EarthEccentricity >= 1:
		return apperr.New(apperr.KindGeometryDegeneracy, "earth_eccentricity must be in [0,1), got %v", p.EarthEccentricity)
	}
	return nil
}

// Option mutates a PlanetParams under the usual functional-options
// pattern.
type Option func(*PlanetParams)

// WithWaterRatio overrides EarthWaterRatio — the dial the spec.md §8 end-
// to-end scenarios exercise most (water_ratio = 0, 0.5, 1).
func WithWaterRatio(ratio float64) Option {
	return func(p *PlanetParams) { p.EarthWaterRatio = ratio }
}

// WithAxialTilt overrides EarthAxialTilt.
func WithAxialTilt(radians float64) Option {
	return func(p *PlanetParams) { p.EarthAxialTilt = radians }
}

// WithAlbedo overrides EarthAlbedo.
func WithAlbedo(albedo float64) Option {
	return func(p *PlanetParams) { p.EarthAlbedo = albedo }
}

// New builds a PlanetParams from Earth defaults with the given overrides
// applied in order.
func New(opts ...Option) PlanetParams {
	p := Default()
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// AtmosphericRequirement is one entry of HabitabilityRequirements'
// atmospheric_requirements list: a substance's acceptable proportion band.
type AtmosphericRequirement struct {
	Substance     string
	MinProportion float64
	MaxProportion float64 // upper bound, applied only when HasMax is set
	HasMax        bool
}

// HabitabilityRequirements is spec.md §6's habitability bound set, checked
// by internal/query's habitability query.
type HabitabilityRequirements struct {
	RequireLiquidWater bool
	Atmospheric        []AtmosphericRequirement
	MinTemperature     float64
	MaxTemperature     float64
	MinPressure        float64
	MaxPressure        float64
	MinGravity         float64
	MaxGravity         float64
}

// HumanBreathable returns the HabitabilityRequirements used by the
// Generator's breathability top-up (spec.md §4.5 step 12): an atmospheric
// band around Earth-normal O2/CO2 plus human-survivable temperature,
// pressure and gravity ranges.
func HumanBreathable() HabitabilityRequirements {
	return HabitabilityRequirements{
		RequireLiquidWater: true,
		Atmospheric: []AtmosphericRequirement{
			{Substance: "o2", MinProportion: 0.19, MaxProportion: 0.21, HasMax: true},
			{Substance: "co2", MinProportion: 0, MaxProportion: 0.01, HasMax: true},
		},
		MinTemperature: 250,
		MaxTemperature: 320,
		MinPressure:    30,
		MaxPressure:    400,
		MinGravity:     4,
		MaxGravity:     20,
	}
}
