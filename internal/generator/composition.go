package generator

import (
	"math"

	"github.com/leemwalker/planetgen/internal/material"
	"github.com/leemwalker/planetgen/internal/rehydrate"
)

// composeBulkProperties implements spec.md §4.5 step 1: mass from
// gravity*R^2/G, bounded by type-specific min/max, using the density and
// flattening draws at indices 7 and 10.
func composeBulkProperties(r *rehydrate.Rehydrator, t PlanetType, radius float64) (mass, gravity, flattening float64) {
	densityJitter := r.PositiveNormal(7, 1.0, 0.08)
	gravity = 9.80665 * typeGravityFactor(t) * densityJitter
	flattening = r.NextDouble(10, 0, 0.1)

	mass = gravity * radius * radius / gravitationalConstant
	lo, hi := typeMassBounds(t)
	mass = clampFloat(mass, lo, hi)
	// Mass clamped; re-derive gravity from the clamped mass so g = GM/R^2
	// holds exactly for the composite's later mass-conservation checks.
	gravity = gravitationalConstant * mass / (radius * radius)
	return mass, gravity, flattening
}

// traceMineralDraw normalizes one of the 10 indexed trace-mineral draws in
// spec.md §4.5 step 2 ("normally-distributed draws at fixed indices per
// mineral, ensuring same seed -> same composition").
func traceMineralDraw(r *rehydrate.Rehydrator, index int) float64 {
	v := r.PositiveNormal(index, 0.02, 0.012)
	return clampFloat(v, 0, 0.12)
}

// composeTerrestrialCrust builds the rocky crust with trace minerals at
// indices 11..20 (spec.md §9's fixed seed index table).
func composeTerrestrialCrust(r *rehydrate.Rehydrator, mass float64) *material.Layer {
	l := material.NewLayer(material.LayerCrust, material.ShapeHollowSphere)
	l.Mass = mass

	minerals := []string{
		"quartz", "feldspar", "mica", "olivine", "pyroxene",
		"calcite", "hematite", "gold_ore", "silver_ore", "copper_ore",
	}
	var traceSum float64
	for i, name := range minerals {
		p := traceMineralDraw(r, 11+i)
		l.Add(name, p)
		traceSum += p
	}
	l.Add("basalt", math.Max(0, 1-traceSum))
	l.Normalize()
	return l
}

// composeCarbonCrust builds the carbon-type crust at indices 21..30:
// diamond/graphite/coal/oil/gas plus 5 trace rock-forming minerals, with
// the hydrocarbon+diamond group combining to ~1-minerals (spec.md §8
// scenario 4).
func composeCarbonCrust(r *rehydrate.Rehydrator, mass float64) *material.Layer {
	l := material.NewLayer(material.LayerCrust, material.ShapeHollowSphere)
	l.Mass = mass

	traceMinerals := []string{"olivine", "pyroxene", "quartz", "feldspar", "mica"}
	var traceSum float64
	for i, name := range traceMinerals {
		p := traceMineralDraw(r, 26+i)
		l.Add(name, p)
		traceSum += p
	}

	remaining := math.Max(0, 1-traceSum)
	diamond := r.NextDouble(21, 0.05, 0.25) * remaining
	graphite := r.NextDouble(22, 0.1, 0.3) * remaining
	coal := r.NextDouble(23, 0.1, 0.3) * remaining
	oil := r.NextDouble(24, 0.05, 0.2) * remaining
	gas := math.Max(0, remaining-diamond-graphite-coal-oil)
	_ = r.NextDouble(25, 0, 1) // reserved draw, kept for index spacing

	l.Add("diamond", diamond)
	l.Add("graphite", graphite)
	l.Add("coal", coal)
	l.Add("oil", oil)
	l.Add("gas", gas)
	l.Normalize()
	return l
}

// volatileCrust builds the ices-and-chondritic-mix crust spec.md §4.5 step
// 2 describes for dwarfs, asteroids and comets — fewer indices are needed
// here since these bodies don't carry the full 10-mineral trace suite.
func volatileCrust(r *rehydrate.Rehydrator, mass float64, icy bool) *material.Layer {
	l := material.NewLayer(material.LayerCrust, material.ShapeHollowSphere)
	l.Mass = mass

	if icy {
		water := r.NextDouble(11, 0.4, 0.8)
		co2ice := r.NextDouble(12, 0.05, 0.2)
		ammoniaIce := r.NextDouble(13, 0.02, 0.1)
		rock := math.Max(0, 1-water-co2ice-ammoniaIce)
		l.Add("water_ice", water)
		l.Add("co2_ice", co2ice)
		l.Add("ammonia_ice", ammoniaIce)
		l.Add("chondrite", rock)
	} else {
		chondrite := r.NextDouble(11, 0.6, 0.95)
		nickelIron := math.Max(0, 1-chondrite)
		l.Add("chondrite", chondrite)
		l.Add("nickel_iron", nickelIron)
	}
	l.Normalize()
	return l
}

// composeCore builds the Fe-Ni (or carbon-type Fe-steel-Ni) core. The mass
// fraction defaults to 0.15 (spec.md §4.5 step 2) jittered by the index-9
// draw spec.md §9's seed table assigns to "mass fraction jitter"; the
// Composite is rescaled to the planet's total mass afterward regardless,
// so this jitter only perturbs the *relative* core/mantle/crust split.
func composeCore(r *rehydrate.Rehydrator, t PlanetType, mass float64) *material.Layer {
	minFraction := 0.05
	fraction := clampFloat(r.NormalSample(9, 0.15, 0.02, &minFraction), 0.05, 0.35)

	l := material.NewLayer(material.LayerCore, material.ShapeSphere)
	l.Mass = fraction * mass
	switch t {
	case Carbon:
		l.Add("iron", 0.65)
		l.Add("steel", 0.20)
		l.Add("nickel", 0.15)
	case GasGiant, IceGiant:
		l.Add("iron", 0.7)
		l.Add("nickel", 0.3)
	default:
		l.Add("iron", 0.85)
		l.Add("nickel", 0.15)
	}
	l.Normalize()
	return l
}

// composeMantle builds the mantle layer by type. For gas/ice giants the
// mantle's mass and constituents absorb what would otherwise be a
// separate supercritical-fluid upper layer — spec.md §4.5 step 2 and §8
// scenario 3 both require giants to carry *no crust layer at all*, so the
// lower/upper split is folded into constituent proportions within the
// single mantle layer rather than a second LayerCrust-kind layer.
func composeMantle(t PlanetType, mass float64) *material.Layer {
	l := material.NewLayer(material.LayerMantle, material.ShapeHollowSphere)
	switch t {
	case Carbon:
		l.Mass = 0.70 * mass
		l.Add("silicon_carbide", 0.6)
		l.Add("diamond", 0.4)
	case GasGiant:
		l.Mass = 0.85 * mass
		l.Add("metallic_hydrogen", 0.70)
		l.Add("hydrogen", 0.22)
		l.Add("helium", 0.07)
		l.Add("trace_volatiles", 0.01)
	case IceGiant:
		l.Mass = 0.85 * mass
		l.Add("diamond", 0.55)
		l.Add("water", 0.27)
		l.Add("ammonia", 0.16)
		l.Add("trace_volatiles", 0.02)
	default:
		l.Mass = 0.67 * mass
		l.Add("peridotite", 1.0)
	}
	l.Normalize()
	return l
}

// composeMaterial implements spec.md §4.5 step 2 in full: the five
// planet-type branches, each producing core, mantle and crust layers from
// per-type mass fractions; the Composite is then rescaled so its layer
// masses sum to the planet mass.
func composeMaterial(r *rehydrate.Rehydrator, t PlanetType, mass float64) *material.Composite {
	c := material.NewComposite()
	c.AddLayer(composeCore(r, t, mass))
	c.AddLayer(composeMantle(t, mass))

	switch t {
	case Terrestrial:
		crustMass := 0.18 * mass
		c.AddLayer(composeTerrestrialCrust(r, crustMass))
	case Carbon:
		crustMass := 0.15 * mass
		c.AddLayer(composeCarbonCrust(r, crustMass))
	case Dwarf, Asteroid, Comet:
		icy := t != Asteroid
		crustMass := 0.70 * mass
		c.AddLayer(volatileCrust(r, crustMass, icy))
	}

	c.RescaleToMass(mass)
	return c
}
