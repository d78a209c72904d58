package generator

import (
	"math"

	"github.com/leemwalker/planetgen/internal/material"
	"github.com/leemwalker/planetgen/internal/params"
	"github.com/leemwalker/planetgen/internal/rehydrate"
)

// phaseConstants is the per-gas {boilingPointK, meltingPointK,
// latentHeatJPerKg} triple used
// by the simplified Antoine-style vapor-pressure check in calculatePhases
// (spec.md §4.5 step 9's "condense when T < T_antoine_max and P_atm >
// P_vap" — the Antoine coefficients themselves are a documented physical
// approximation, not the original's exact table, since spec.md does not
// supply one).
type phaseConstants struct {
	boilingPointK    float64
	meltingPointK    float64
	latentHeatJPerKg float64
}

var gasPhaseOrder = []string{"ch4", "co", "co2", "n2", "o2", "so2", "h2o"}

var gasPhaseConstants = map[string]phaseConstants{
	"ch4": {boilingPointK: 111.7, meltingPointK: 90.7, latentHeatJPerKg: 5.1e5},
	"co":  {boilingPointK: 81.6, meltingPointK: 68.1, latentHeatJPerKg: 2.1e5},
	"co2": {boilingPointK: 194.7, meltingPointK: 216.6, latentHeatJPerKg: 5.7e5},
	"n2":  {boilingPointK: 77.4, meltingPointK: 63.2, latentHeatJPerKg: 2.0e5},
	"o2":  {boilingPointK: 90.2, meltingPointK: 54.4, latentHeatJPerKg: 2.1e5},
	"so2": {boilingPointK: 263.0, meltingPointK: 200.0, latentHeatJPerKg: 4.0e5},
	"h2o": {boilingPointK: 373.15, meltingPointK: 273.15, latentHeatJPerKg: 2.26e6},
}

// vaporPressureKPa approximates saturation vapor pressure via a
// Clausius-Clapeyron shape anchored at the gas's boiling point, the same
// documented-approximation spirit as thermo.saturationMixingRatio.
func vaporPressureKPa(gas string, temperatureK float64) float64 {
	c, ok := gasPhaseConstants[gas]
	if !ok || temperatureK <= 0 {
		return 0
	}
	const idealGasConstant = 8.3144598
	exponent := -c.latentHeatJPerKg / idealGasConstant * (1/temperatureK - 1/c.boilingPointK)
	return 101.325 * math.Exp(exponent)
}

// calculatePhases implements spec.md §4.5 step 9: for each gas in the
// fixed order {CH4, CO, CO2, N2, O2, SO2, H2O}, condense into the
// hydrosphere (or remove if below the melting point) when the
// atmospheric pressure of that constituent exceeds its saturation vapor
// pressure; otherwise evaporate back from the hydrosphere if present.
// Returns the updated hydrosphere plus the ice area and cloud cover the
// caller feeds into surfaceAlbedoFromPhases.
func calculatePhases(atmosphere *material.Atmosphere, hydrosphere *material.Layer, temperatureK float64) (updatedHydrosphere *material.Layer, iceArea, cloudCover float64) {
	updatedHydrosphere = hydrosphere

	for _, gas := range gasPhaseOrder {
		proportion := atmosphere.Proportion(gas)
		if proportion <= 0 {
			continue
		}
		partialPressure := atmosphere.PressureKPa * proportion
		vaporPressure := vaporPressureKPa(gas, temperatureK)
		c := gasPhaseConstants[gas]

		condensing := temperatureK < c.boilingPointK && partialPressure > vaporPressure
		if condensing {
			if temperatureK < c.meltingPointK {
				// Too cold to stay liquid: removed from the active cycle as ice,
				// not returned to a liquid hydrosphere layer.
				if gas == "h2o" {
					iceArea += proportion
				}
				atmosphere.SetProportion(gas, 0)
				continue
			}
			if updatedHydrosphere == nil {
				updatedHydrosphere = material.NewLayer(material.LayerHydrosphere, material.ShapeHollowSphere)
			}
			updatedHydrosphere.Add(gas, proportion*0.1)
			atmosphere.SetProportion(gas, proportion*0.9)
			if gas == "h2o" {
				cloudCover += proportion * 0.05
			}
		} else if updatedHydrosphere != nil {
			if present := updatedHydrosphere.Constituents[gas]; present > 0 {
				evaporated := present * 0.1
				updatedHydrosphere.Add(gas, -evaporated)
				atmosphere.SetProportion(gas, proportion+evaporated)
			}
		}
	}

	if updatedHydrosphere != nil {
		updatedHydrosphere.Normalize()
	}
	atmosphere.Layer.Normalize()

	iceArea = clampFloat(iceArea, 0, 1)
	cloudCover = clampFloat(cloudCover, 0, 1)
	return updatedHydrosphere, iceArea, cloudCover
}

// surfaceAlbedoFromPhases implements spec.md §4.5 step 9's closing
// formula: "surface_albedo = clamp((albedo − 0.9·max(ice, cloud)) / (1 −
// max(ice, cloud)), 0, 1)".
func surfaceAlbedoFromPhases(albedo, iceArea, cloudCover float64) float64 {
	maxCover := math.Max(iceArea, cloudCover)
	denom := 1 - maxCover
	if denom <= 0 {
		return clampFloat(albedo, 0, 1)
	}
	return clampFloat((albedo-0.9*maxCover)/denom, 0, 1)
}

// carbonSilicateSink implements spec.md §4.5 step 10: if water-vapor
// partial pressure is at least 1% of saturation and CO2 proportion is at
// least 1e-3, draw a trace CO2 target in [15e-6, 1e-3] (index 60) and
// move the freed mass into N2 plus small Ar/Kr/Xe/Ne draws (indices
// 61-64). Returns whether it fired, so the caller knows to invalidate
// cached temperatures/greenhouse.
func carbonSilicateSink(r *rehydrate.Rehydrator, atmosphere *material.Atmosphere, temperatureK float64) bool {
	co2 := atmosphere.Proportion("co2")
	if co2 < 1e-3 {
		return false
	}
	waterVaporPressure := atmosphere.PressureKPa * atmosphere.Proportion("h2o")
	saturation := vaporPressureKPa("h2o", temperatureK)
	if saturation <= 0 || waterVaporPressure/saturation < 0.01 {
		return false
	}

	traceTarget := r.NextDouble(60, 15e-6, 1e-3)
	freed := co2 - traceTarget
	atmosphere.SetProportion("co2", traceTarget)

	argon := r.NextDouble(61, 0, 0.002) * freed
	krypton := r.NextDouble(62, 0, 0.0005) * freed
	xenon := r.NextDouble(63, 0, 0.0002) * freed
	neon := r.NextDouble(64, 0, 0.001) * freed
	traceTotal := argon + krypton + xenon + neon

	atmosphere.Layer.Add("ar", argon)
	atmosphere.Layer.Add("kr", krypton)
	atmosphere.Layer.Add("xe", xenon)
	atmosphere.Layer.Add("ne", neon)
	atmosphere.Layer.Add("n2", math.Max(0, freed-traceTotal))
	atmosphere.Layer.Normalize()
	return true
}

// breathabilityTopUp implements spec.md §4.5 step 12: clamp each required
// atmospheric substance's proportion into range, returning whether any
// clamp actually changed state (the caller must reset greenhouse/cached
// temperatures when it did).
func breathabilityTopUp(atmosphere *material.Atmosphere, requirements params.HabitabilityRequirements) bool {
	changed := false
	for _, req := range requirements.Atmospheric {
		max := req.MaxProportion
		if !req.HasMax {
			max = 1
		}
		if atmosphere.ClampProportion(req.Substance, req.MinProportion, max) {
			changed = true
		}
	}
	return changed
}

// lifeHook implements spec.md §4.5 step 11: the extensibility point for
// greenhouse perturbation from a biosphere. Always returns false today —
// "current implementation returns false but the hook is a contract"
// (spec.md §4.5) — callers must still set HasBiosphere when liquid water
// is present, independent of this hook's return value.
func lifeHook(p *Planet) bool {
	return false
}
