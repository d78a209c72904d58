package generator

import (
	"math"

	"github.com/leemwalker/planetgen/internal/orbitgeom"
	"github.com/leemwalker/planetgen/internal/rehydrate"
)

// typeOrbitalPeriodFactor scales the baseline Earth revolution period by
// planet type — giants and distant icy bodies orbit on much longer
// periods than terrestrial worlds in the same system.
func typeOrbitalPeriodFactor(t PlanetType) float64 {
	switch t {
	case GasGiant:
		return 11.9
	case IceGiant:
		return 84.0
	case Dwarf:
		return 248.0
	case Comet:
		return 76.0
	case Asteroid:
		return 4.6
	default:
		return 1.0
	}
}

// assignOrbit implements spec.md §4.5 step 3's "assign one with type-
// specific eccentricity and true-anomaly draws (comets seeded around
// apoapsis)", using the fixed indices 31 (eccentricity), 32 (true
// anomaly), 33 (comet apoapsis phase jitter).
func assignOrbit(r *rehydrate.Rehydrator, t PlanetType, earthRevolutionPeriod, orbitedMass float64) *orbitgeom.Orbit {
	var eccentricity, trueAnomaly float64
	switch t {
	case Comet:
		eccentricity = r.NextDouble(31, 0.5, 0.95)
		trueAnomaly = math.Pi + r.NormalSample(33, 0, 0.2, nil)
	default:
		eccentricity = r.NextDouble(31, 0, 0.3)
		trueAnomaly = r.NextDouble(32, 0, 2*math.Pi)
	}

	period := earthRevolutionPeriod * typeOrbitalPeriodFactor(t)
	semiMajorAxis := keplerSemiMajorAxis(period, orbitedMass)
	apoapsis := semiMajorAxis * (1 + eccentricity)
	periapsis := semiMajorAxis * (1 - eccentricity)

	return &orbitgeom.Orbit{
		SemiMajorAxis:            semiMajorAxis,
		Eccentricity:             eccentricity,
		Inclination:              r.NextDouble(34, 0, 0.1),
		LongitudeOfPeriapsis:     r.NextDouble(35, 0, 2*math.Pi),
		LongitudeOfAscendingNode: 0,
		ArgumentOfPeriapsis:      0,
		TrueAnomaly:              trueAnomaly,
		Period:                   period,
		Apoapsis:                 apoapsis,
		Periapsis:                periapsis,
		OrbitedMass:              orbitedMass,
	}
}

// keplerSemiMajorAxis inverts Kepler's third law: period^2 =
// 4*pi^2*a^3/(G*M).
func keplerSemiMajorAxis(period, orbitedMass float64) float64 {
	if orbitedMass <= 0 || period <= 0 {
		return 0
	}
	a3 := gravitationalConstant * orbitedMass * period * period / (4 * math.Pi * math.Pi)
	return math.Cbrt(a3)
}
