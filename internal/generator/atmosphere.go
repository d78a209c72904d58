package generator

import (
	"github.com/leemwalker/planetgen/internal/material"
	"github.com/leemwalker/planetgen/internal/params"
	"github.com/leemwalker/planetgen/internal/rehydrate"
)

// terrestrialDryFractions is spec.md §4.5 step 7's "Earth
// composition with 12 named constituents at fixed fractions" — values are
// Earth's actual dry-atmosphere composition plus a water-vapor slot
// sourced from PlanetParams.EarthWaterVaporRatio rather than a fixed
// constant, since that ratio is itself a configuration dial (spec.md §6).
var terrestrialDryFractions = map[string]float64{
	"n2":  0.780_84,
	"o2":  0.209_46,
	"ar":  0.009_34,
	"co2": 0.000_417,
	"ne":  0.000_018_2,
	"he":  0.000_005_2,
	"ch4": 0.000_001_9,
	"kr":  0.000_001_14,
	"h2":  0.000_000_55,
	"n2o": 0.000_000_33,
	"co":  0.000_000_1,
	"xe":  0.000_000_09,
}

// composeTerrestrialAtmosphere implements spec.md §4.5 step 7's
// terrestrial branch.
func composeTerrestrialAtmosphere(p params.PlanetParams) *material.Atmosphere {
	a := material.NewAtmosphere()
	waterVapor := clampFloat(p.EarthWaterVaporRatio, 0, 0.04)
	dryShare := 1 - waterVapor
	for substance, fraction := range terrestrialDryFractions {
		a.Layer.Add(substance, fraction*dryShare)
	}
	a.Layer.Add("h2o", waterVapor)
	a.Layer.Normalize()

	a.PressureKPa = p.EarthAtmosphericPressure
	a.ScaleHeight = 8500
	a.MaxPrecipitation = 1000
	a.MaxSnowfall = 500
	a.WaterRatio = waterVapor
	a.GreenhouseFactor = 1.15
	return a
}

// composeGiantAtmosphere implements spec.md §4.5 step 7's giant branch,
// drawing trace constituents at indices 47..51.
func composeGiantAtmosphere(r *rehydrate.Rehydrator, t PlanetType) *material.Atmosphere {
	a := material.NewAtmosphere()
	switch t {
	case IceGiant:
		a.Layer.Add("h2", 0.80)
		a.Layer.Add("he", 0.19)
		a.Layer.Add("ch4", r.NextDouble(47, 0.005, 0.03))
	default: // GasGiant
		a.Layer.Add("h2", 0.86)
		a.Layer.Add("he", 0.135)
		a.Layer.Add("ch4", r.NextDouble(47, 0.0001, 0.003))
	}
	a.Layer.Add("nh3", r.NextDouble(48, 0, 0.001))
	a.Layer.Add("h2o", r.NextDouble(49, 0, 0.0005))
	a.Layer.Normalize()

	a.PressureKPa = 100_000 + r.NextDouble(50, 0, 900_000)
	a.ScaleHeight = 27_000
	a.GreenhouseFactor = 1 + r.NextDouble(51, 0, 0.4)
	a.WaterRatio = 0
	return a
}

// composeSmallBodyAtmosphere implements spec.md §4.5 step 7's dwarf/
// small-body branch: a thin, largely sublimated-volatile atmosphere,
// using the remaining 47-53 index range (52, 53) plus index 65 for
// pressure, so the n2 constituent draw and the pressure draw don't read
// the same stream.
func composeSmallBodyAtmosphere(r *rehydrate.Rehydrator) *material.Atmosphere {
	a := material.NewAtmosphere()
	a.Layer.Add("n2", r.NextDouble(52, 0.3, 0.7))
	a.Layer.Add("ch4", r.NextDouble(53, 0.05, 0.3))
	a.Layer.Add("co", 0.1)
	a.Layer.Normalize()

	a.PressureKPa = r.NextDouble(65, 0, 0.01)
	a.ScaleHeight = 20_000
	a.GreenhouseFactor = 1.0
	a.WaterRatio = 0
	return a
}

// composeAtmosphere dispatches spec.md §4.5 step 7's type branch.
func composeAtmosphere(r *rehydrate.Rehydrator, t PlanetType, p params.PlanetParams) *material.Atmosphere {
	switch t {
	case Terrestrial, Carbon:
		return composeTerrestrialAtmosphere(p)
	case GasGiant, IceGiant:
		return composeGiantAtmosphere(r, t)
	default:
		return composeSmallBodyAtmosphere(r)
	}
}
