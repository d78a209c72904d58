package generator

import (
	"math"

	"github.com/google/uuid"

	"github.com/leemwalker/planetgen/internal/rehydrate"
)

const (
	ringDensityIcy   = 920.0  // kg/m^3, water ice
	ringDensityRocky = 2000.0 // kg/m^3, rocky debris

	ringChanceTerrestrial = 0.10
	ringChanceGiant       = 0.90
)

// ringPresenceChance returns spec.md §4.5 step 14's "10% chance
// terrestrial, 90% giants" presence probability by type.
func ringPresenceChance(t PlanetType) float64 {
	switch t {
	case GasGiant, IceGiant:
		return ringChanceGiant
	default:
		return ringChanceTerrestrial
	}
}

// rocheLikeDistance implements spec.md §4.5 step 14's
// "1.26 · R · (ρ_planet / ρ_ring)^(1/3)".
func rocheLikeDistance(planetRadius, planetDensity, ringDensity float64) float64 {
	if ringDensity <= 0 {
		return 0
	}
	return 1.26 * planetRadius * math.Cbrt(planetDensity/ringDensity)
}

// hillSphereRadius approximates the planet's Hill sphere given its orbit's
// semi-major axis and the orbited mass, used to cap the ring system's
// outer extent at hill_sphere/3 (spec.md §4.5 step 14).
func hillSphereRadius(semiMajorAxis, planetMass, orbitedMass float64) float64 {
	if orbitedMass <= 0 || semiMajorAxis <= 0 {
		return 0
	}
	return semiMajorAxis * math.Cbrt(planetMass/(3*orbitedMass))
}

// buildRings implements spec.md §4.5 step 14: a presence coin flip
// (index 70), then alternating icy/rocky bands out to
// min(rocheLikeDistance-derived extent, hill_sphere/3), split by indexed
// coin flips (indices 71, 74 and 75, one per band).
func buildRings(r *rehydrate.Rehydrator, t PlanetType, planetRadius, planetDensity, planetMass, semiMajorAxis, orbitedMass float64) []Ring {
	if r.NextDouble(70, 0, 1) >= ringPresenceChance(t) {
		return nil
	}

	icyOuter := rocheLikeDistance(planetRadius, planetDensity, ringDensityIcy)
	rockyOuter := rocheLikeDistance(planetRadius, planetDensity, ringDensityRocky)
	cap := hillSphereRadius(semiMajorAxis, planetMass, orbitedMass) / 3
	if cap > 0 {
		icyOuter = math.Min(icyOuter, cap)
		rockyOuter = math.Min(rockyOuter, cap)
	}

	inner := planetRadius * 1.1
	const bandCount = 3
	bandWidth := (math.Max(icyOuter, rockyOuter) - inner) / bandCount
	if bandWidth <= 0 {
		return nil
	}

	bandIndices := [bandCount]int{71, 74, 75}
	rings := make([]Ring, 0, bandCount)
	for i := 0; i < bandCount; i++ {
		icy := r.NextBool(bandIndices[i])
		bandInner := inner + float64(i)*bandWidth
		bandOuter := bandInner + bandWidth
		rings = append(rings, Ring{
			ID:          uuid.New(),
			InnerRadius: bandInner,
			OuterRadius: bandOuter,
			Icy:         icy,
		})
	}
	return rings
}
