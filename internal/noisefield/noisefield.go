// Package noisefield implements the five independent fractal/simplex noise
// samplers that drive every surface field (spec.md §4.2): elevation and
// precipitation/snowfall. All sampling is on the unit sphere so elevation
// and precipitation are continuous across longitude wraparound and the
// poles, with no seams.
package noisefield

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// fractal composes octaves of 3D OpenSimplex noise into a single sampler,
// the idiomatic fractal-noise construction (frequency doubling per octave,
// amplitude halving), generalized to an arbitrary octave count and
// persistence/lacunarity so it can express all five spec.md §4.2 fields
// from one building block.
type fractal struct {
	noise      opensimplex.Noise
	frequency  float64
	octaves    int
	lacunarity float64
	gain       float64
	billow     bool // rectify each octave's contribution to |n| before summing
}

func newFractal(seed int64, frequency float64, octaves int, billow bool) *fractal {
	return &fractal{
		noise:      opensimplex.New(seed),
		frequency:  frequency,
		octaves:    octaves,
		lacunarity: 2.0,
		gain:       0.5,
		billow:     billow,
	}
}

// sample3 evaluates the fractal sum at an arbitrary point, normalized so
// the result stays within roughly [-1, 1] regardless of octave count.
func (f *fractal) sample3(x, y, z float64) float64 {
	var sum, amplitude, freq, norm float64
	amplitude = 1
	freq = f.frequency
	for o := 0; o < f.octaves; o++ {
		n := f.noise.Eval3(x*freq, y*freq, z*freq)
		if f.billow {
			n = math.Abs(n)
		}
		sum += n * amplitude
		norm += amplitude
		amplitude *= f.gain
		freq *= f.lacunarity
	}
	if norm == 0 {
		return 0
	}
	return sum / norm
}

// Seeds holds the five per-field noise seeds drawn by the Rehydrator at
// indices 0..4 (spec.md §4.1). Kept as a named type so callers cannot
// accidentally transpose them.
type Seeds struct {
	N1, N2, N3, N4, N5 int64
}

// Field is the composed five-noise sampler for one planet.
type Field struct {
	n1, n2, n3, n4, n5 *fractal
}

// New constructs a Field from the five noise seeds, with the frequency and
// octave counts fixed by spec.md §4.2's table — these are not
// configurable per planet, only per seed.
func New(seeds Seeds) *Field {
	return &Field{
		n1: newFractal(seeds.N1, 0.8, 6, false),
		n2: newFractal(seeds.N2, 0.6, 6, true),
		n3: newFractal(seeds.N3, 1.2, 1, false),
		n4: newFractal(seeds.N4, 1.0, 1, false),
		n5: newFractal(seeds.N5, 3.0, 3, false),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// Elevation computes the unit-sphere elevation composition from spec.md
// §4.2 "Elevation composition": a continent base (N1) modulated by a
// ridged, masked mountain term (N2 billowed + negated, masked by N3). The
// result is roughly in [-1, 1] and is interpreted by the caller relative
// to MaxElevation.
func (f *Field) Elevation(x, y, z float64) float64 {
	base := f.n1.sample3(x, y, z)
	mtn := (-f.n2.sample3(x, y, z) - 0.25) * (4.0 / 3.0)

	scaled := base*(0.25+mtn*0.0625) - 0.04

	mask := clamp(f.n3.sample3(x, y, z)+1, 0, 1)
	mtnMasked := mtn * mask

	mtnShaped := sign(mtnMasked) * mtnMasked * mtnMasked * (0.525 + base*0.13125)

	return scaled + mtnShaped
}

// PrecipitationInputs bundles the per-point context the precipitation
// composition needs beyond the unit-sphere position.
type PrecipitationInputs struct {
	X, Y, Z          float64 // unit-sphere position (for N4/N5 sampling)
	Latitude         float64 // radians
	SeasonalLatitude float64 // radians, latitude shifted by solar declination
	Temperature      float64 // kelvin
	FreezingPoint    float64 // kelvin, water freezing point for this atmosphere
	AveragePrecip    float64 // atmosphere.max_precipitation-derived average
	SnowToRainRatio  float64
}

// PrecipitationResult is the {precipitation, snowfall} pair spec.md §9
// describes replacing a C#-style out-parameter with.
type PrecipitationResult struct {
	Precipitation float64
	Snowfall      float64
}

const (
	arcticLatitudeOffset = math.Pi / 16
	horseLatitude        = math.Pi / 5
	itczHalfWidth        = math.Pi / 8
)

// Precipitation computes the precipitation/snowfall composition of
// spec.md §4.2 "Precipitation composition".
func (f *Field) Precipitation(in PrecipitationInputs) PrecipitationResult {
	r1 := 1.25 + 0.75*f.n4.sample3(in.X, in.Y, in.Z)
	r2 := 0.675 + 0.75*f.n5.sample3(in.X, in.Y, in.Z)
	r := r1 * r2

	arcticLat := math.Pi/2 - arcticLatitudeOffset
	absLat := math.Abs(in.Latitude)
	absSeasonalLat := math.Abs(in.SeasonalLatitude)

	var h float64
	if absLat > arcticLat {
		h += -3 * ((absLat - arcticLat) / arcticLatitudeOffset)
	}
	if absLat < horseLatitude {
		h += 2 * (r1 - 2) * ((horseLatitude - absLat) / horseLatitude)
	}
	if absSeasonalLat < itczHalfWidth {
		frac := (itczHalfWidth - absSeasonalLat) / itczHalfWidth
		h += 10 * r * frac * frac * frac
	}

	tempFactor := clamp((in.Temperature-(in.FreezingPoint-48))/16, 0, 1)
	humidity := (r + h) * tempFactor

	precip := in.AveragePrecip * math.Max(humidity, 0)

	result := PrecipitationResult{Precipitation: precip}
	if in.Temperature <= in.FreezingPoint {
		result.Snowfall = precip * in.SnowToRainRatio
	}
	return result
}
