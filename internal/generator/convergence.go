package generator

import (
	"context"
	"math"

	"github.com/leemwalker/planetgen/internal/external"
	"github.com/leemwalker/planetgen/internal/obslog"
	"github.com/leemwalker/planetgen/internal/thermo"
)

const (
	convergenceMaxIterations = 10
	convergenceToleranceK    = 0.5
)

func signOf(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// requiredAlbedoForTarget analytically inverts the blackbody equation to
// find the surface albedo that would produce targetTemp at the given
// stellar flux sum — spec.md §4.5 step 8c's "analytic inverse of the
// blackbody equation using L, σ, 4π, T − T_ambient".
func requiredAlbedoForTarget(fluxSum, targetTemp float64) float64 {
	if fluxSum <= 0 || targetTemp <= 0 {
		return 0
	}
	required := 1 - (16*math.Pi*thermo.StefanBoltzmann*math.Pow(targetTemp, 4))/fluxSum
	return clampFloat(required, 0, 1)
}

// runConvergenceLoop implements spec.md §4.5 step 8: the terrestrial-only
// temperature/atmosphere equilibrium loop, bounded by
// convergenceMaxIterations and convergenceToleranceK, with anti-
// oscillation (halve the step on a sign flip) and a runaway guard (reset
// to the original effective target and flag atmosphere regeneration if
// the residual grows while the sign is stable).
//
// Step 8c's albedo/temperature coupling runs the phase cascade (step 9's
// calculatePhases) once per iteration against the current
// AverageBlackbodyTemperature, so SurfaceAlbedo tracks the ice/cloud cover
// that temperature implies. Once SurfaceAlbedo diverges from the albedo
// actually in use, requiredAlbedoForTarget inverts the blackbody equation
// to pull Albedo toward the value that would hold target — the "heart of
// the system" coupling spec.md describes, rather than a fixed-point nudge
// of temperature alone. The runaway guard restores a pristine hydrosphere
// clone on reset, so repeated per-iteration condensation/evaporation can't
// accumulate across a regenerated atmosphere.
func (g *Generator) runConvergenceLoop(ctx context.Context, p *Planet, fluxSum float64) {
	lapseDry := thermo.DryLapseRate(p.SurfaceGravity)
	avgElevation := 0.04 * p.MaxElevation

	targetEquatorial := g.Params.EarthSurfaceTemperature*1.06 + avgElevation*lapseDry
	targetEffective := targetEquatorial - thermo.GreenhouseEffect(targetEquatorial, 1.0, p.Atmosphere.GreenhouseFactor)

	target := targetEffective
	prevDelta := 0.0
	newAtmosphereFlag := false
	pristineHydrosphere := p.Hydrosphere.Clone()

	for i := 0; i < convergenceMaxIterations; i++ {
		if ctx.Err() != nil {
			return
		}

		if i > 0 && p.Albedo != p.SurfaceAlbedo {
			p.Albedo = requiredAlbedoForTarget(fluxSum, target)
		}
		p.InvalidateCache()

		if newAtmosphereFlag {
			p.Atmosphere = composeAtmosphere(g.rehydrator(p.Seed), p.Type, g.Params)
			newAtmosphereFlag = false
		}

		p.AverageBlackbodyTemperature = thermo.BlackbodyTemperature(fluxSum, p.Albedo)
		elevTemp := thermo.TemperatureAtElevation(
			target, p.AverageBlackbodyTemperature, avgElevation,
			p.Atmosphere.ScaleHeight, p.MaxElevation, p.SurfaceGravity, p.Atmosphere.PressureKPa,
		)

		updatedHydro, iceArea, cloudCover := calculatePhases(p.Atmosphere, p.Hydrosphere, p.AverageBlackbodyTemperature)
		p.Hydrosphere = updatedHydro
		p.SurfaceAlbedo = surfaceAlbedoFromPhases(p.Albedo, iceArea, cloudCover)

		delta := target - elevTemp
		obslog.Iteration(ctx, i, delta)

		if math.Abs(delta) <= convergenceToleranceK {
			return
		}

		if i > 0 && signOf(delta) != signOf(prevDelta) {
			delta /= 2
		}

		if i > 0 && math.Abs(delta) > math.Abs(prevDelta) && signOf(delta) == signOf(prevDelta) {
			target = targetEffective
			newAtmosphereFlag = true
			p.Hydrosphere = pristineHydrosphere.Clone()
		} else {
			target += delta
		}
		prevDelta = delta

		if i == convergenceMaxIterations-1 {
			obslog.ConvergenceExhausted(ctx, delta)
		}
	}
}

// sumFlux implements the "(L/d²)" term the generator sums across every
// system star, feeding thermo.BlackbodyTemperature (spec.md §4.5 step 5).
func sumFlux(stars []external.Star, distance float64) float64 {
	if distance <= 0 {
		return 0
	}
	var sum float64
	for _, s := range stars {
		sum += s.Luminosity / (distance * distance)
	}
	return sum
}
