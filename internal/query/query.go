// Package query implements spec.md §4.7's Queries component: illumination,
// sunrise/sunset, satellite phase, habitability checks, and seasonal
// proportion lookups against a finished Planet. Unlike Generator and
// SurfaceSampler, queries consult an external StarSystem collaborator
// (spec.md §6) for stellar geometry rather than reading cached state off
// Planet directly.
package query

import (
	"context"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/leemwalker/planetgen/internal/external"
	"github.com/leemwalker/planetgen/internal/generator"
	"github.com/leemwalker/planetgen/internal/orbitgeom"
	"github.com/leemwalker/planetgen/internal/params"
	"github.com/leemwalker/planetgen/internal/surface"
)

// equatorialDiurnalBaseK is the documented day/night temperature swing
// assumed for an airless body (spec.md §4.7 names "diurnal variation" but
// gives no formula); diurnalVariation below damps it by atmospheric
// pressure, since a thick atmosphere redistributes heat and flattens the
// day/night swing (see DESIGN.md).
const equatorialDiurnalBaseK = 60.0

// diurnalDampingReferenceKPa sets how quickly atmospheric pressure damps
// the diurnal swing; Earth-normal pressure reduces it to ~2% of the
// airless-body baseline.
const diurnalDampingReferenceKPa = 25.0

func isNearZero(v float64) bool {
	const eps = 1e-9
	return v > -eps && v < eps
}

func clampUnit(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

func wrapTau(angle float64) float64 {
	const tau = 2 * math.Pi
	a := math.Mod(angle, tau)
	if a < 0 {
		a += tau
	}
	return a
}

// wrapUnit wraps a day-fraction into [0,1).
func wrapUnit(v float64) float64 {
	v = math.Mod(v, 1)
	if v < 0 {
		v++
	}
	return v
}

func maxNonZero(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}

func vecLen(v [3]float64) float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// Engine answers spec.md §4.7's queries against one generated Planet.
// Stars is nil-able: a nil StarSystem is spec.md §7's MissingDependency
// case, and every query degrades to its documented neutral value rather
// than erroring.
type Engine struct {
	Planet *generator.Planet
	Stars  external.StarSystem
}

// New constructs a query Engine for the given planet and star system
// (nil Stars is valid — see Engine.Stars).
func New(p *generator.Planet, stars external.StarSystem) *Engine {
	return &Engine{Planet: p, Stars: stars}
}

// trueAnomalyAtMoment converts a moment (seconds since epoch) into the
// planet's true anomaly at that instant, treating the orbital period as
// the repeating cycle. ok is false when the planet has no orbit (spec.md
// §8: "No orbit → proportion_of_year is undefined").
func (e *Engine) trueAnomalyAtMoment(moment float64) (trueAnomaly float64, ok bool) {
	o := e.Planet.Orbit
	if o == nil || o.Period <= 0 {
		return 0, false
	}
	proportion := math.Mod(moment, o.Period) / o.Period
	if proportion < 0 {
		proportion++
	}
	return orbitgeom.TrueAnomalyAtProportion(o, proportion), true
}

// ProportionOfYear implements spec.md §4.3's seasonal-proportion query:
// the fraction of a year elapsed since the winter solstice at the given
// moment. ok is false when the planet has no orbit.
func (e *Engine) ProportionOfYear(moment float64) (proportion float64, ok bool) {
	trueAnomaly, ok := e.trueAnomalyAtMoment(moment)
	if !ok {
		return 0, false
	}
	return e.Planet.Orbit.ProportionOfYear(trueAnomaly), true
}

// rotationPhase returns the fraction of a sidereal day elapsed at moment,
// scaled to radians — the planet's spin angle, independent of its axis
// orientation (which only encodes tilt/precession, not the daily spin).
func rotationPhase(rotationalPeriod, moment float64) float64 {
	if rotationalPeriod <= 0 {
		return 0
	}
	return 2 * math.Pi * wrapUnit(moment/rotationalPeriod)
}

// resolvedStar bundles a star with its position and distance from the
// planet at a given moment — StaticStarSystem (and any real StarSystem)
// reports star position already relative to the planet (spec.md §6).
type resolvedStar struct {
	star     external.Star
	position [3]float64
	distance float64
}

// resolveStars fetches every star's position at moment, skipping any a
// collaborator fails to resolve (treated as locally absent, not fatal —
// spec.md §7's MissingDependency degrades to neutral values, it does not
// abort the whole query). A nil Stars collaborator yields no stars at all.
func (e *Engine) resolveStars(ctx context.Context, moment float64) ([]resolvedStar, error) {
	if e.Stars == nil {
		return nil, nil
	}
	stars, err := e.Stars.GetStars(ctx)
	if err != nil {
		return nil, err
	}
	resolved := make([]resolvedStar, 0, len(stars))
	for _, star := range stars {
		pos, err := e.Stars.GetPositionAtTime(ctx, star, moment)
		if err != nil {
			continue
		}
		resolved = append(resolved, resolvedStar{star: star, position: pos, distance: vecLen(pos)})
	}
	return resolved, nil
}

func nearest(stars []resolvedStar) (resolvedStar, bool) {
	best, found := resolvedStar{}, false
	bestDist := math.Inf(1)
	for _, s := range stars {
		if s.distance > 0 && s.distance < bestDist {
			best, bestDist, found = s, s.distance, true
		}
	}
	return best, found
}

// Illumination implements spec.md §4.7's Illumination(moment, lat, lon):
// summed direct stellar flux for stars above the horizon, plus reflected
// satellite flux weighted by lit-fraction, albedo, and inverse-square
// distance. Returns 0 with no error when Stars is nil (MissingDependency,
// spec.md §7); with no star above the horizon the direct term is 0 but the
// reflected satellite flux is still added.
func (e *Engine) Illumination(ctx context.Context, moment, lat, lon float64, satellites []external.Satellite) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	stars, err := e.resolveStars(ctx, moment)
	if err != nil {
		return 0, err
	}
	if len(stars) == 0 {
		return 0, nil
	}

	phase := rotationPhase(e.Planet.RotationalPeriod, moment)

	var total float64
	for _, rs := range stars {
		if rs.distance <= 0 {
			continue
		}
		direction := mgl64.Vec3{rs.position[0] / rs.distance, rs.position[1] / rs.distance, rs.position[2] / rs.distance}
		ra, dec := orbitgeom.EquatorialPosition(e.Planet.Axis, direction)
		hourAngle := lon + phase - ra
		sinElevation := math.Sin(lat)*math.Sin(dec) + math.Cos(lat)*math.Cos(dec)*math.Cos(hourAngle)
		if sinElevation <= 0 {
			continue
		}
		flux := rs.star.Luminosity / (4 * math.Pi * rs.distance * rs.distance)
		total += flux * sinElevation
	}

	primary, ok := nearest(stars)
	if !ok {
		return total, nil
	}
	for _, sat := range satellites {
		phaseResult := satellitePhaseAt(sat, primary, moment)
		incidentFluxAtSatellite := primary.star.Luminosity / (4 * math.Pi * maxNonZero(primary.distance*primary.distance))
		reflectedLuminosity := sat.Albedo * incidentFluxAtSatellite * math.Pi * sat.Radius * sat.Radius
		total += reflectedLuminosity * phaseResult.IlluminatedFraction / (4 * math.Pi * maxNonZero(sat.Distance*sat.Distance))
	}
	return total, nil
}

// SunriseSunset implements spec.md §4.7's Sunrise/sunset(moment, lat):
// closed-form local-solar-time fractions of the rotational period at
// which the nearest star crosses the horizon. Both return nil when the
// planet has no orbit or rotational period (proportion_of_year undefined,
// spec.md §8). In the polar-night/midnight-sun branch (`cos δ · cos lat ≈
// 0`), exactly one of the two returns nil, decided by the sign of
// `sin(declination) · sin(latitude)` (DESIGN.md's resolution of the
// source's ambiguous `latitude.IsNearlyZero()` check).
func (e *Engine) SunriseSunset(moment, lat float64) (sunrise, sunset *float64) {
	trueAnomaly, ok := e.trueAnomalyAtMoment(moment)
	if !ok || e.Planet.RotationalPeriod <= 0 {
		return nil, nil
	}

	declination := orbitgeom.SolarDeclination(e.Planet.Axis, e.Planet.Orbit, trueAnomaly)
	d := math.Cos(declination) * math.Cos(lat)
	period := e.Planet.RotationalPeriod
	angularVelocity := 2 * math.Pi / period

	if isNearZero(d) {
		always := math.Sin(declination)*math.Sin(lat) > 0
		zero := 0.0
		if always {
			return &zero, nil // midnight sun: sun never sets
		}
		return nil, &zero // polar night: sun never rises
	}

	cosH := clampUnit(-math.Sin(declination) * math.Sin(lat) / d)
	h := math.Acos(cosH) / angularVelocity

	riseVal := wrapUnit((period/2 - h) / period)
	setVal := wrapUnit((h + period/2) / period)
	return &riseVal, &setVal
}

// SatellitePhase is spec.md §4.7's satellite-phase result: elongation,
// phase angle, illuminated fraction, and (only meaningful with a single
// star) a waxing flag.
type SatellitePhase struct {
	Elongation          float64
	PhaseAngle          float64
	IlluminatedFraction float64
	Waxing              bool
	HasWaxing           bool
}

// satellitePhaseAt computes the phase geometry for one satellite against
// one resolved star, at the given moment. The satellite's orbit is
// assumed coplanar with the ecliptic (φ = 0 in spec.md §4.7's elongation
// formula) — satellites here carry no inclination, a documented
// simplification (see DESIGN.md).
func satellitePhaseAt(sat external.Satellite, star resolvedStar, moment float64) SatellitePhase {
	lambdaSun := math.Atan2(star.position[2], star.position[0])
	lambdaSat := wrapTau(sat.PhaseOffset + 2*math.Pi*moment/maxNonZero(sat.Period))

	elongation := math.Acos(clampUnit(math.Cos(lambdaSun - lambdaSat)))
	dSat, dStar := sat.Distance, star.distance
	phaseAngle := math.Atan2(dSat-dStar*math.Cos(elongation), dStar*math.Sin(elongation))
	illuminated := (1 + math.Cos(phaseAngle)) / 2

	return SatellitePhase{
		Elongation:          elongation,
		PhaseAngle:          phaseAngle,
		IlluminatedFraction: illuminated,
	}
}

// SatellitePhase implements spec.md §4.7's satellite-phase query against
// the nearest star in the system. Returns the zero value when Stars is
// nil or no star resolves (MissingDependency).
func (e *Engine) SatellitePhase(ctx context.Context, moment float64, sat external.Satellite) (SatellitePhase, error) {
	if err := ctx.Err(); err != nil {
		return SatellitePhase{}, err
	}
	stars, err := e.resolveStars(ctx, moment)
	if err != nil {
		return SatellitePhase{}, err
	}
	primary, ok := nearest(stars)
	if !ok {
		return SatellitePhase{}, nil
	}

	result := satellitePhaseAt(sat, primary, moment)
	if len(stars) == 1 {
		lambdaSun := math.Atan2(primary.position[2], primary.position[0])
		lambdaSat := wrapTau(sat.PhaseOffset + 2*math.Pi*moment/maxNonZero(sat.Period))
		result.HasWaxing = true
		result.Waxing = wrapTau(lambdaSat-lambdaSun) < math.Pi
	}
	return result, nil
}

// diurnalVariation returns the documented day/night temperature swing
// used by Habitability's "coldest = min equator at apoapsis minus diurnal
// variation" (spec.md §4.7), damped by atmospheric pressure.
func diurnalVariation(p *generator.Planet) float64 {
	if p.Atmosphere == nil {
		return equatorialDiurnalBaseK
	}
	damping := math.Exp(-p.Atmosphere.PressureKPa / diurnalDampingReferenceKPa)
	return equatorialDiurnalBaseK * damping
}

// coldestAndHottest returns the coldest and hottest surface temperatures
// spec.md §4.7 names: "coldest = min equator at apoapsis minus diurnal
// variation; hottest = max polar at periapsis".
func (e *Engine) coldestAndHottest() (coldest, hottest float64) {
	p := e.Planet
	if p.Orbit == nil {
		return p.BlackbodyTemperature - diurnalVariation(p), p.BlackbodyTemperature
	}
	sampler := surface.New(p, nil)
	apoapsisProportion := p.Orbit.ProportionOfYear(math.Pi)
	periapsisProportion := p.Orbit.ProportionOfYear(0)

	const nearPole = math.Pi/2 - 1e-6
	coldest = sampler.Temperature(0, 0, apoapsisProportion) - diurnalVariation(p)
	hottest = sampler.Temperature(nearPole, 0, periapsisProportion)
	return coldest, hottest
}

// HabitabilityFlag is spec.md §4.7's boolean habitability-rejection set —
// a bitset rather than an exception, per spec.md §7's "never aborts
// generation" rule.
type HabitabilityFlag uint16

const (
	NoWater HabitabilityFlag = 1 << iota
	UnbreathableAtmosphere
	TooCold
	TooHot
	LowPressure
	HighPressure
	LowGravity
	HighGravity
)

// Has reports whether flag is set.
func (f HabitabilityFlag) Has(flag HabitabilityFlag) bool { return f&flag != 0 }

// Habitability implements spec.md §4.7's habitability check against the
// given requirements, never erroring — rejection is communicated purely
// through the returned bitset.
func (e *Engine) Habitability(req params.HabitabilityRequirements) HabitabilityFlag {
	p := e.Planet
	var flags HabitabilityFlag

	if req.RequireLiquidWater && !p.HasLiquidWater() {
		flags |= NoWater
	}

	if p.Atmosphere == nil && len(req.Atmospheric) > 0 {
		flags |= UnbreathableAtmosphere
	}
	for _, want := range req.Atmospheric {
		if p.Atmosphere == nil {
			break
		}
		prop := p.Atmosphere.Proportion(want.Substance)
		if prop < want.MinProportion || (want.HasMax && prop > want.MaxProportion) {
			flags |= UnbreathableAtmosphere
		}
	}

	coldest, hottest := e.coldestAndHottest()
	if coldest < req.MinTemperature {
		flags |= TooCold
	}
	if hottest > req.MaxTemperature {
		flags |= TooHot
	}

	if p.Atmosphere != nil {
		if p.Atmosphere.PressureKPa < req.MinPressure {
			flags |= LowPressure
		}
		if p.Atmosphere.PressureKPa > req.MaxPressure {
			flags |= HighPressure
		}
	}

	if p.SurfaceGravity < req.MinGravity {
		flags |= LowGravity
	}
	if p.SurfaceGravity > req.MaxGravity {
		flags |= HighGravity
	}

	return flags
}
