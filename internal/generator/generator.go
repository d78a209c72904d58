package generator

import (
	"context"
	"math"

	"github.com/google/uuid"

	"github.com/leemwalker/planetgen/internal/external"
	"github.com/leemwalker/planetgen/internal/material"
	"github.com/leemwalker/planetgen/internal/noisefield"
	"github.com/leemwalker/planetgen/internal/obslog"
	"github.com/leemwalker/planetgen/internal/orbitgeom"
	"github.com/leemwalker/planetgen/internal/params"
	"github.com/leemwalker/planetgen/internal/rehydrate"
	"github.com/leemwalker/planetgen/internal/thermo"
)

// Generator orchestrates the full spec.md §4.5 pipeline — one invocation
// per seed, via a small config struct plus a single entry point method.
type Generator struct {
	Params       params.PlanetParams
	Habitability params.HabitabilityRequirements
}

// New constructs a Generator from the given params and habitability
// requirements.
func New(p params.PlanetParams, h params.HabitabilityRequirements) *Generator {
	return &Generator{Params: p, Habitability: h}
}

func (g *Generator) rehydrator(seed uint32) *rehydrate.Rehydrator {
	return rehydrate.New(seed)
}

// Generate runs the full pipeline for one seed and planet type, against
// the given orbit (nil to have one assigned) and the stars that will
// provide its insolation. It is synchronous and deterministic: the only
// suspension point is the context cancellation check between phases
// (spec.md §5 — no suspension inside the generator otherwise).
func (g *Generator) Generate(ctx context.Context, seed uint32, planetType PlanetType, orbit *orbitgeom.Orbit, stars []external.Star) (*Planet, error) {
	ctx = obslog.WithSeed(ctx, seed)
	r := g.rehydrator(seed)

	p := &Planet{
		ID:   uuid.New(),
		Seed: seed,
		Type: planetType,
	}

	// Step: noise seeds (indices 0-4).
	p.NoiseSeeds = noisefield.Seeds{
		N1: int64(r.NextU32(0)),
		N2: int64(r.NextU32(1)),
		N3: int64(r.NextU32(2)),
		N4: int64(r.NextU32(3)),
		N5: int64(r.NextU32(4)),
	}
	p.Noise = noisefield.New(p.NoiseSeeds)

	// Step 1: rehydrate bulk properties.
	p.AxialPrecession = r.NextDouble(6, 0, 2*math.Pi)
	p.Radius = g.Params.EarthRadius * typeRadiusFactor(planetType)
	p.Mass, p.SurfaceGravity, p.Flattening = composeBulkProperties(r, planetType, p.Radius)
	p.MaxElevation = maxElevationFor(p.SurfaceGravity)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Step 2: compose material.
	ctx = obslog.WithPhase(ctx, "composition")
	p.Material = composeMaterial(r, planetType, p.Mass)
	p.Density = p.Mass / sphereVolume(p.Radius)
	hasMagnetosphere := r.NextBool(76)
	p.Resources = buildResources(r, p.Material.Layer(material.LayerCrust), hasMagnetosphere)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Step 3: orbit.
	orbitedMass := dominantStarMass(stars)
	if orbit == nil {
		orbit = assignOrbit(r, planetType, g.Params.EarthRevolutionPeriod, orbitedMass)
	}
	p.Orbit = orbit

	// Step 4: axis.
	p.RotationalPeriod = g.Params.EarthRotationalPeriod
	p.AngleOfRotation = math.Mod(g.Params.EarthAxialTilt+orbit.Inclination, math.Pi)
	p.Axis = orbitgeom.NewAxis(p.AngleOfRotation, p.AxialPrecession)

	// Step 5: temperatures at position/apoapsis/periapsis.
	p.Albedo = g.Params.EarthAlbedo
	p.SurfaceAlbedo = g.Params.EarthAlbedo
	fluxAtSemiMajor := sumFlux(stars, orbit.SemiMajorAxis)
	p.BlackbodyTemperature = thermo.BlackbodyTemperature(fluxAtSemiMajor, p.Albedo)
	p.AverageBlackbodyTemperature = p.BlackbodyTemperature
	p.SurfaceTemperatureAtApoapsis = thermo.BlackbodyTemperature(sumFlux(stars, orbit.Apoapsis), p.Albedo)
	p.SurfaceTemperatureAtPeriapsis = thermo.BlackbodyTemperature(sumFlux(stars, orbit.Periapsis), p.Albedo)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !planetType.HasHydrosphereCycle() {
		p.Atmosphere = composeAtmosphere(r, planetType, g.Params)
		p.NormalizedSeaLevel = -1.1
		p.SeaLevel = -1.1 * p.MaxElevation
		g.refreshGreenhouse(p)
		p.Rings = buildRings(r, planetType, p.Radius, p.Density, p.Mass, orbit.SemiMajorAxis, orbitedMass)
		return p, nil
	}

	// Step 6: hydrosphere.
	ctx = obslog.WithPhase(ctx, "hydrosphere")
	hydro, seaLevel, normalizedSeaLevel := buildHydrosphere(r, g.Params.EarthWaterRatio, p.MaxElevation)
	p.Hydrosphere = hydro
	p.SeaLevel = seaLevel
	p.NormalizedSeaLevel = normalizedSeaLevel

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Step 7: atmosphere.
	p.Atmosphere = composeAtmosphere(r, planetType, g.Params)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Step 8: convergence loop.
	ctx = obslog.WithPhase(ctx, "convergence")
	g.runConvergenceLoop(ctx, p, fluxAtSemiMajor)
	g.refreshGreenhouse(p)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Step 9: phase cascade.
	updatedHydro, iceArea, cloudCover := calculatePhases(p.Atmosphere, p.Hydrosphere, p.AverageBlackbodyTemperature)
	p.Hydrosphere = updatedHydro
	p.SurfaceAlbedo = surfaceAlbedoFromPhases(p.Albedo, iceArea, cloudCover)

	// Step 10: carbon-silicate sink.
	if carbonSilicateSink(r, p.Atmosphere, p.AverageBlackbodyTemperature) {
		p.InvalidateCache()
	}

	// Step 11: life hook.
	if p.HasLiquidWater() && !p.HasBiosphere {
		p.HasBiosphere = true
		lifeHook(p)
	} else if !p.HasLiquidWater() {
		p.HasBiosphere = false
	}

	// Step 12: breathability top-up.
	if breathabilityTopUp(p.Atmosphere, g.Habitability) {
		p.InvalidateCache()
	}

	// Step 13: resources were built alongside material composition above
	// (spec.md §4.5 step 13 depends only on crust constituents, which
	// don't change after step 2 for terrestrial/carbon bodies).

	// Step 14: rings.
	p.Rings = buildRings(r, planetType, p.Radius, p.Density, p.Mass, orbit.SemiMajorAxis, orbitedMass)

	// Steps 10 and 12 invalidate the cache when they change the
	// atmosphere; recompute it from the final composition.
	if !p.greenhouseValid {
		g.refreshGreenhouse(p)
	}

	return p, nil
}

// refreshGreenhouse recomputes the cached equatorial/polar insolation
// factors and greenhouse effect from the planet's current atmosphere and
// temperature state, and marks the cache valid. Called after the
// convergence loop, and again at the end of Generate if a later step
// invalidated the cache (spec.md §3's cached-field lifecycle: invalidated
// by mutators, recomputed by the generator).
func (g *Generator) refreshGreenhouse(p *Planet) {
	if p.Atmosphere == nil {
		p.greenhouseValid = true
		return
	}
	atmMass := atmosphereMassKg(p.Atmosphere.PressureKPa, p.Radius, p.SurfaceGravity)
	p.InsolationFactorEquatorial = thermo.InsolationFactor(atmMass, p.Mass, p.Radius, p.Atmosphere.ScaleHeight, false)
	p.InsolationFactorPolar = thermo.InsolationFactor(atmMass, p.Mass, p.Radius, p.Atmosphere.ScaleHeight, true)
	p.GreenhouseEffect = thermo.GreenhouseEffect(p.AverageBlackbodyTemperature, p.InsolationFactorEquatorial, p.Atmosphere.GreenhouseFactor)
	p.greenhouseValid = true
}

// atmosphereMassKg derives the total atmospheric mass from surface
// pressure via the hydrostatic relation mass = pressure * area / gravity,
// used as InsolationFactor's atmosphere-mass term since the atmosphere is
// tracked by pressure/proportions rather than an explicit mass field.
func atmosphereMassKg(pressureKPa, radius, gravity float64) float64 {
	if gravity <= 0 {
		return 0
	}
	pressurePa := pressureKPa * 1000
	surfaceArea := 4 * math.Pi * radius * radius
	return pressurePa * surfaceArea / gravity
}

func sphereVolume(radius float64) float64 {
	if radius <= 0 {
		return 1
	}
	return 4.0 / 3.0 * math.Pi * radius * radius * radius
}

// dominantStarMass returns the most massive star in the system, used as
// the orbit's gravitating body — a simplification for multi-star systems
// (spec.md §6 does not define a barycenter model, and this module's scope
// is the planet's own generation, not N-body stellar dynamics).
func dominantStarMass(stars []external.Star) float64 {
	var max float64
	for _, s := range stars {
		if s.Mass > max {
			max = s.Mass
		}
	}
	if max == 0 {
		return solarMassKg
	}
	return max
}
