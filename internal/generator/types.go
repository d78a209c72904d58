// Package generator orchestrates the full pipeline of spec.md §4.5:
// composition, orbit assignment, axis construction, temperature
// bootstrap, hydrosphere, atmosphere, the convergence loop, phase
// cascade, carbon-silicate sink, life hook, breathability top-up,
// resources, and rings, as a numbered-step pipeline with functional-
// options configuration and context-cancellation checks between steps.
package generator

import (
	"github.com/google/uuid"

	"github.com/leemwalker/planetgen/internal/material"
	"github.com/leemwalker/planetgen/internal/noisefield"
	"github.com/leemwalker/planetgen/internal/orbitgeom"
)

// PlanetType is the branch spec.md §4.5 step 2 composes material by.
type PlanetType int

const (
	Terrestrial PlanetType = iota
	Carbon
	GasGiant
	IceGiant
	Dwarf
	Asteroid
	Comet
)

func (t PlanetType) String() string {
	switch t {
	case Terrestrial:
		return "terrestrial"
	case Carbon:
		return "carbon"
	case GasGiant:
		return "gas_giant"
	case IceGiant:
		return "ice_giant"
	case Dwarf:
		return "dwarf"
	case Asteroid:
		return "asteroid"
	case Comet:
		return "comet"
	default:
		return "unknown"
	}
}

// HasCrust reports whether this type composes a crust layer at all
// (spec.md §4.5 step 2: gas/ice giants have none).
func (t PlanetType) HasCrust() bool {
	return t != GasGiant && t != IceGiant
}

// HasHydrosphereCycle reports whether this type runs the hydrosphere and
// convergence-loop steps (spec.md §4.5 steps 6 and 8: terrestrial only).
func (t PlanetType) HasHydrosphereCycle() bool {
	return t == Terrestrial
}

// Resource is one entry of spec.md §3's `resources` list.
type Resource struct {
	ID         uuid.UUID
	Substance  string
	Proportion float64
	Vein       bool
	NoiseSeed  int64
}

// Ring is one alternating icy/rocky band of spec.md §4.5 step 14.
type Ring struct {
	ID          uuid.UUID
	InnerRadius float64 // meters
	OuterRadius float64 // meters
	Icy         bool
}

// Planet is the root data model of spec.md §3, collapsing the original's
// deep CelestialBody -> Orbiter -> Location -> IdItem inheritance into one
// record (spec.md §9's first design note) — positioning, identity, and
// persistence fields are just fields here, not a trait hierarchy.
type Planet struct {
	ID   uuid.UUID
	Seed uint32
	Type PlanetType

	// Geometry
	Radius          float64 // equatorial radius, meters
	Flattening      float64 // ellipsoid flattening
	Position        [3]float64
	Axis             orbitgeom.Axis
	AngleOfRotation  float64
	AxialPrecession  float64
	RotationalPeriod float64 // seconds; drives query.Sunrise/sunset's angular_velocity
	Orbit            *orbitgeom.Orbit

	// Bulk physical properties
	Mass           float64 // kg
	SurfaceGravity float64 // m/s^2
	Density        float64 // kg/m^3

	// Thermal state
	Albedo                        float64
	SurfaceAlbedo                 float64
	BlackbodyTemperature          float64
	AverageBlackbodyTemperature   float64
	SurfaceTemperatureAtApoapsis  float64
	SurfaceTemperatureAtPeriapsis float64
	GreenhouseEffect              float64
	InsolationFactorEquatorial    float64
	InsolationFactorPolar         float64
	greenhouseValid               bool

	// Composition
	Material    *material.Composite
	Hydrosphere *material.Layer // nil means empty (spec.md §3 "no sea" sentinel)
	Atmosphere  *material.Atmosphere
	Resources   []Resource
	Rings       []Ring

	// Sea level bookkeeping (spec.md §3)
	NormalizedSeaLevel float64 // in [-1.1, 1]
	SeaLevel           float64
	MaxElevation       float64

	HasBiosphere bool

	NoiseSeeds noisefield.Seeds
	Noise      *noisefield.Field
}

// InvalidateCache clears the cached thermal fields spec.md §3's lifecycle
// section says are reset by mutators (pressure, tilt, orbit changes) and
// by the generator's own atmosphere-altering steps (carbon-silicate sink,
// breathability top-up).
func (p *Planet) InvalidateCache() {
	p.greenhouseValid = false
	p.GreenhouseEffect = 0
}

// SetAtmosphericPressure is the spec.md §3 mutating setter; it invalidates
// the cached thermal fields.
func (p *Planet) SetAtmosphericPressure(kPa float64) {
	p.Atmosphere.PressureKPa = kPa
	p.InvalidateCache()
}

// SetAxialTilt is the spec.md §3 mutating setter; it invalidates the
// cached thermal fields and rebuilds the axis.
func (p *Planet) SetAxialTilt(tilt float64) {
	p.AngleOfRotation = tilt
	p.Axis = orbitgeom.NewAxis(tilt, p.AxialPrecession)
	p.InvalidateCache()
}

// HasLiquidWater reports whether the hydrosphere layer is present and its
// temperature (if known) is above freezing — used by the life hook and by
// the habitability query.
func (p *Planet) HasLiquidWater() bool {
	if p.Hydrosphere == nil {
		return false
	}
	if !p.Hydrosphere.HasTemp {
		return true
	}
	return p.Hydrosphere.Temperature > 273.15
}

// maxElevationFor returns spec.md §3's "200_000 / surface_gravity".
func maxElevationFor(surfaceGravity float64) float64 {
	if surfaceGravity <= 0 {
		return 0
	}
	return 200_000 / surfaceGravity
}
