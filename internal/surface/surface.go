// Package surface implements the per-(lat, lon) scalar field sampler of
// spec.md §4.6: elevation, seasonally-interpolated temperature,
// precipitation/snowfall, atmospheric density/pressure at altitude, and
// per-resource spatial vein density. Generalized from a precomputed,
// mutable simulation grid to a stateless analytic sampler over
// generator.Planet's noise fields — this module has no time-stepped
// simulation (spec.md §1 Non-goals), so there is nothing to store between
// samples.
package surface

import (
	"image"
	"math"

	"github.com/aquilax/go-perlin"

	"github.com/leemwalker/planetgen/internal/external"
	"github.com/leemwalker/planetgen/internal/generator"
	"github.com/leemwalker/planetgen/internal/noisefield"
	"github.com/leemwalker/planetgen/internal/orbitgeom"
	"github.com/leemwalker/planetgen/internal/thermo"
)

// resourceDensityFrequency scales the unit-sphere sample point before it
// reaches Perlin noise, so a deposit's density field forms patches rather
// than one smooth global gradient.
const resourceDensityFrequency = 6.0

// DefaultMapResolution is spec.md §4.6's "default vertical resolution 320".
const DefaultMapResolution = 320

// freezingPointK is fresh water's freezing point, used by Precipitation's
// snow/rain split and by the phase-cascade's melting-point checks.
const freezingPointK = 273.15

// snowToRainRatio approximates the typical 10:1 snow-depth-to-liquid-
// equivalent ratio (spec.md §4.2 leaves the exact ratio unspecified; this
// is the conventional meteorological rule of thumb).
const snowToRainRatio = 10.0

// Sampler is spec.md §4.6's SurfaceSampler: a read-only view over a
// generated Planet. Stars is optional — when supplied, Temperature
// recomputes the instantaneous blackbody temperature from the planet's
// actual distance at the sampled true anomaly; when nil, it falls back to
// interpolating between the cached apoapsis/periapsis temperatures by
// true anomaly (a documented simplification, see blackbodyAt).
type Sampler struct {
	Planet *generator.Planet
	Stars  []external.Star
}

// New constructs a Sampler for the given planet, optionally with the star
// system that produced its insolation (nil is valid — see Sampler.Stars).
func New(p *generator.Planet, stars []external.Star) *Sampler {
	return &Sampler{Planet: p, Stars: stars}
}

// Elevation implements spec.md §4.6's Elevation(lat, lon): the unit-sphere
// noise composition scaled by MaxElevation, minus the planet's sea level.
func (s *Sampler) Elevation(lat, lon float64) float64 {
	p := s.Planet
	v := p.Axis.LatLonToVector(lat, lon)
	e := p.Noise.Elevation(v[0], v[1], v[2]) * p.MaxElevation
	return e - p.SeaLevel
}

// ResourceDensity samples a resource deposit's spatial vein density at
// (lat, lon): a 2D Perlin field (teacher geography.NewPerlinGenerator's
// alpha=2, beta=2, n=3 octave convention) seeded from the resource's own
// NoiseSeed so each discovered deposit gets an independent, deterministic
// field, scaled into [0, res.Proportion].
func (s *Sampler) ResourceDensity(res generator.Resource, lat, lon float64) float64 {
	v := s.Planet.Axis.LatLonToVector(lat, lon)
	field := perlin.NewPerlin(2, 2, 3, res.NoiseSeed)
	n := field.Noise2D(v[0]*resourceDensityFrequency, v[1]*resourceDensityFrequency)
	return (n + 1) / 2 * res.Proportion
}

func sumFlux(stars []external.Star, distance float64) float64 {
	if distance <= 0 {
		return 0
	}
	var sum float64
	for _, star := range stars {
		sum += star.Luminosity / (distance * distance)
	}
	return sum
}

// blackbodyAt returns the planet's blackbody temperature at the given true
// anomaly. With a known star system it recomputes flux at the true
// instantaneous distance; otherwise it interpolates between the cached
// apoapsis/periapsis temperatures by cos(true anomaly), which is exact at
// ν=0 and ν=π and a reasonable approximation in between (documented
// simplification — see DESIGN.md).
func (s *Sampler) blackbodyAt(trueAnomaly float64) float64 {
	p := s.Planet
	if p.Orbit == nil {
		return p.AverageBlackbodyTemperature
	}
	if len(s.Stars) > 0 {
		distance := orbitgeom.DistanceAtTrueAnomaly(p.Orbit, trueAnomaly)
		flux := sumFlux(s.Stars, distance)
		return thermo.BlackbodyTemperature(flux, p.Albedo)
	}
	t := (1 - math.Cos(trueAnomaly)) / 2 // 0 at periapsis, 1 at apoapsis
	return p.SurfaceTemperatureAtPeriapsis*(1-t) + p.SurfaceTemperatureAtApoapsis*t
}

// insolationAt blends the cached equatorial/polar insolation factors by
// |sin(seasonal latitude)| — spec.md §4.4 defines the insolation factor
// only at the equator and pole; this interpolation is the documented
// choice for intermediate latitudes (see DESIGN.md).
func (s *Sampler) insolationAt(seasonalLatitude float64) float64 {
	w := math.Abs(math.Sin(seasonalLatitude))
	p := s.Planet
	return p.InsolationFactorEquatorial*(1-w) + p.InsolationFactorPolar*w
}

// Temperature implements spec.md §4.6's Temperature(lat, lon,
// proportion_of_year): seasonal-latitude-adjusted effective temperature,
// blended toward the equatorial-insolation temperature by the documented
// convective weight sin(2.5·√|seasonal_lat|)/1.75.
func (s *Sampler) Temperature(lat, lon, proportionOfYear float64) float64 {
	p := s.Planet
	trueAnomaly := orbitgeom.TrueAnomalyAtProportion(p.Orbit, proportionOfYear)
	declination := orbitgeom.SolarDeclination(p.Axis, p.Orbit, trueAnomaly)
	seasonalLat := orbitgeom.WrapLatitude(lat + declination)

	tbb := s.blackbodyAt(trueAnomaly)
	effective := tbb*s.insolationAt(seasonalLat) + p.GreenhouseEffect
	equatorial := tbb*p.InsolationFactorEquatorial + p.GreenhouseEffect

	weight := math.Sin(2.5*math.Sqrt(math.Abs(seasonalLat))) / 1.75
	weight = math.Max(0, math.Min(1, weight))
	return effective*(1-weight) + equatorial*weight
}

// SurfaceTemperature further adjusts Temperature by this point's elevation
// via the lapse-rate formula (spec.md §4.4's TemperatureAtElevation) — a
// supplement beyond the literal §4.6 formula, since a sampler that ignores
// elevation entirely would make every point at a given latitude identical
// regardless of terrain.
func (s *Sampler) SurfaceTemperature(lat, lon, proportionOfYear float64) float64 {
	p := s.Planet
	base := s.Temperature(lat, lon, proportionOfYear)
	elevation := s.Elevation(lat, lon)
	return thermo.TemperatureAtElevation(
		base, p.AverageBlackbodyTemperature, elevation,
		p.Atmosphere.ScaleHeight, p.MaxElevation, p.SurfaceGravity, p.Atmosphere.PressureKPa,
	)
}

// Precipitation implements spec.md §4.6's Precipitation(lat, lon,
// proportion_of_year): samples temperature first, then the §4.2
// precipitation noise composition.
func (s *Sampler) Precipitation(lat, lon, proportionOfYear float64) noisefield.PrecipitationResult {
	p := s.Planet
	trueAnomaly := orbitgeom.TrueAnomalyAtProportion(p.Orbit, proportionOfYear)
	declination := orbitgeom.SolarDeclination(p.Axis, p.Orbit, trueAnomaly)
	seasonalLat := orbitgeom.WrapLatitude(lat + declination)
	temperature := s.Temperature(lat, lon, proportionOfYear)

	v := p.Axis.LatLonToVector(lat, lon)
	return p.Noise.Precipitation(noisefield.PrecipitationInputs{
		X: v[0], Y: v[1], Z: v[2],
		Latitude:         lat,
		SeasonalLatitude: seasonalLat,
		Temperature:      temperature,
		FreezingPoint:    freezingPointK,
		AveragePrecip:    p.Atmosphere.MaxPrecipitation,
		SnowToRainRatio:  snowToRainRatio,
	})
}

// AtmosphericState implements spec.md §4.6's "atmospheric density / drag /
// pressure at (moment, lat, lon, altitude, surface flag)". altitude is
// measured from the planet's sea level; when surface is true, altitude is
// interpreted relative to this point's terrain elevation instead.
func (s *Sampler) AtmosphericState(lat, lon, proportionOfYear, altitude float64, surface bool) (density, pressureKPa float64) {
	p := s.Planet
	if surface {
		altitude += s.Elevation(lat, lon)
	}
	temperature := s.SurfaceTemperature(lat, lon, proportionOfYear)
	pressureKPa = thermo.AtmosphericPressureAtElevation(p.Atmosphere.PressureKPa, p.SurfaceGravity, temperature, altitude)
	density = atmosphericDensity(pressureKPa, temperature)
	return density, pressureKPa
}

// dryAirSpecificGasConstant is R/M for Earth-composition dry air, J/(kg·K).
const dryAirSpecificGasConstant = 287.05

// atmosphericDensity applies the ideal gas law ρ = P/(R·T).
func atmosphericDensity(pressureKPa, temperatureK float64) float64 {
	if temperatureK <= 0 {
		return 0
	}
	return (pressureKPa * 1000) / (dryAirSpecificGasConstant * temperatureK)
}

// DragFactor returns a dimensionless drag scaling relative to sea-level
// density, for callers modeling orbital or atmospheric-entry drag without
// this package needing to know their velocity model.
func (s *Sampler) DragFactor(lat, lon, proportionOfYear, altitude float64, surface bool) float64 {
	density, _ := s.AtmosphericState(lat, lon, proportionOfYear, altitude, surface)
	seaLevelDensity := atmosphericDensity(s.Planet.Atmosphere.PressureKPa, s.Planet.AverageBlackbodyTemperature)
	if seaLevelDensity <= 0 {
		return 0
	}
	return density / seaLevelDensity
}

// clampImageValue maps a float into [0, 65535] for image.Gray16 encoding.
func clampImageValue(v float64) uint16 {
	if v < 0 {
		return 0
	}
	if v > 65535 {
		return 65535
	}
	return uint16(v)
}

// projection maps a pixel (x, y) in a width x height grid to (lat, lon)
// under an equirectangular projection (spec.md §4.6).
func projection(x, y, width, height int) (lat, lon float64) {
	lon = (float64(x)+0.5)/float64(width)*2*math.Pi - math.Pi
	lat = math.Pi/2 - (float64(y)+0.5)/float64(height)*math.Pi
	return lat, lon
}

// GenerateElevationMap renders the elevation field at the given resolution
// as a 16-bit grayscale equirectangular map (spec.md §6's image-format
// rule: luminance 0.5 = mean surface, scaled linearly by MaxElevation).
func (s *Sampler) GenerateElevationMap(width, height int) *image.Gray16 {
	img := image.NewGray16(image.Rect(0, 0, width, height))
	maxElevation := s.Planet.MaxElevation
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			lat, lon := projection(x, y, width, height)
			e := s.Elevation(lat, lon)
			normalized := 0.5 + e/(2*maxNonZero(maxElevation))
			img.SetGray16(x, y, image.Gray16{Y: clampImageValue(normalized * 65535)})
		}
	}
	return img
}

// GenerateTemperatureMap renders the seasonal temperature map at
// proportionOfYear (0 = winter solstice, 0.5 = summer solstice), per
// spec.md §6's "luminance scaled by 5000K" rule.
func (s *Sampler) GenerateTemperatureMap(width, height int, proportionOfYear float64) *image.Gray16 {
	img := image.NewGray16(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			lat, lon := projection(x, y, width, height)
			t := s.SurfaceTemperature(lat, lon, proportionOfYear)
			img.SetGray16(x, y, image.Gray16{Y: clampImageValue(t / 5000 * 65535)})
		}
	}
	return img
}

// PrecipitationFrame is one of the N evenly-spaced seasonal precipitation/
// snowfall map pairs spec.md §4.6 describes.
type PrecipitationFrame struct {
	ProportionOfYear float64
	Precipitation    *image.Gray16
	Snowfall         *image.Gray16
}

// GeneratePrecipitationFrames renders frameCount evenly-spaced seasonal
// precipitation/snowfall map pairs (spec.md §4.6: "produced as N evenly
// spaced frames in [0,1]").
func (s *Sampler) GeneratePrecipitationFrames(width, height, frameCount int) []PrecipitationFrame {
	if frameCount <= 0 {
		return nil
	}
	maxPrecip := s.Planet.Atmosphere.MaxPrecipitation
	maxSnow := s.Planet.Atmosphere.MaxSnowfall
	frames := make([]PrecipitationFrame, frameCount)
	for i := 0; i < frameCount; i++ {
		proportion := float64(i) / float64(frameCount)
		precipImg := image.NewGray16(image.Rect(0, 0, width, height))
		snowImg := image.NewGray16(image.Rect(0, 0, width, height))
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				lat, lon := projection(x, y, width, height)
				result := s.Precipitation(lat, lon, proportion)
				precipImg.SetGray16(x, y, image.Gray16{Y: clampImageValue(result.Precipitation / maxNonZero(maxPrecip) * 65535)})
				snowImg.SetGray16(x, y, image.Gray16{Y: clampImageValue(result.Snowfall / maxNonZero(maxSnow) * 65535)})
			}
		}
		frames[i] = PrecipitationFrame{ProportionOfYear: proportion, Precipitation: precipImg, Snowfall: snowImg}
	}
	return frames
}

// BracketPrecipitationFrames returns the two frame indices bracketing
// proportionOfYear and the linear blend fraction between them (0 = i0,
// 1 = i1), per spec.md §4.6's "interpolated linearly for intermediate
// proportions". Callers blend each pixel of frames[i0] and frames[i1] by
// frac themselves, since the frames are plain *image.Gray16 values.
func BracketPrecipitationFrames(frames []PrecipitationFrame, proportionOfYear float64) (i0, i1 int, frac float64, ok bool) {
	n := len(frames)
	if n == 0 {
		return 0, 0, 0, false
	}
	if n == 1 {
		return 0, 0, 0, true
	}
	scaled := (proportionOfYear - math.Floor(proportionOfYear)) * float64(n)
	i0 = int(math.Floor(scaled)) % n
	i1 = (i0 + 1) % n
	frac = scaled - math.Floor(scaled)
	return i0, i1, frac, true
}

func maxNonZero(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}
