package generator

import (
	"math"

	"github.com/leemwalker/planetgen/internal/external"
)

// earthMoonTidalBaseline normalizes TidalStress to 1.0 for an Earth-Moon
// equivalent system: Mass / Distance³ for Earth's Moon.
const earthMoonTidalBaseline = 7.342e22 / (384400e3 * 384400e3 * 384400e3)

// stableSatelliteMassRatio: above this total-satellite-mass-to-planet-mass
// ratio, axial obliquity is considered gravitationally stabilized.
const stableSatelliteMassRatio = 0.01

// TidalStress returns the normalized tidal-stress scalar Σ(mass/distance³)
// from a planet's satellites, 1.0 equivalent to Earth's Moon, feeding the
// ring-widening adjustment below.
func TidalStress(satellites []external.Satellite) float64 {
	if len(satellites) == 0 {
		return 0
	}
	var total float64
	for _, sat := range satellites {
		if sat.Distance > 0 {
			total += sat.Mass / (sat.Distance * sat.Distance * sat.Distance)
		}
	}
	return total / earthMoonTidalBaseline
}

// ObliquityStability returns 1.0 (Earth-like, gravitationally stabilized
// axial tilt) when the combined satellite mass exceeds 1% of the planet's
// mass, else 0.1 (Mars-like, chaotic).
func ObliquityStability(satellites []external.Satellite, planetMass float64) float64 {
	if len(satellites) == 0 || planetMass <= 0 {
		return 0.1
	}
	var totalSatelliteMass float64
	for _, sat := range satellites {
		totalSatelliteMass += sat.Mass
	}
	if totalSatelliteMass/planetMass > stableSatelliteMassRatio {
		return 1.0
	}
	return 0.1
}

// ApplyTidalRingWidening widens an already-generated ring system outward
// in proportion to tidal stress from the planet's satellites: a massive,
// close moon disrupts a wider band of orbital debris than spec.md §4.5
// step 14's static Roche-limit distance alone predicts. Applied as a pure
// post-generation adjustment — Generate() itself stays deterministic from
// (seed, params, stars) alone, with no satellite dependency.
func ApplyTidalRingWidening(p *Planet, satellites []external.Satellite) {
	if len(p.Rings) == 0 {
		return
	}
	stress := TidalStress(satellites)
	if stress <= 0 {
		return
	}
	widen := 1 + math.Min(stress, 2.0)*0.05
	for i := range p.Rings {
		width := p.Rings[i].OuterRadius - p.Rings[i].InnerRadius
		p.Rings[i].OuterRadius = p.Rings[i].InnerRadius + width*widen
	}
}
