package surface

import (
	"context"
	"math"
	"testing"

	"github.com/leemwalker/planetgen/internal/external"
	"github.com/leemwalker/planetgen/internal/generator"
	"github.com/leemwalker/planetgen/internal/params"
)

func testPlanet(t *testing.T) *generator.Planet {
	t.Helper()
	g := generator.New(params.Default(), params.HumanBreathable())
	stars := []external.Star{{Luminosity: 3.828e26, Mass: 1.989e30}}
	p, err := g.Generate(context.Background(), 1, generator.Terrestrial, nil, stars)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	return p
}

func TestElevation_BoundedByClampTolerance(t *testing.T) {
	p := testPlanet(t)

	for i := 0; i < 200; i++ {
		lat := -math.Pi/2 + float64(i)/200*math.Pi
		lon := float64(i) / 200 * 2 * math.Pi
		v := p.Axis.LatLonToVector(lat, lon)
		e := p.Noise.Elevation(v[0], v[1], v[2])
		if math.Abs(e) > 1.1 {
			t.Fatalf("noise_elevation(%v,%v) = %v exceeds 1.1 clamp tolerance", lat, lon, e)
		}
	}
}

func TestElevation_SubtractsSeaLevel(t *testing.T) {
	p := testPlanet(t)
	s := New(p, nil)
	lat, lon := 0.3, 1.2
	v := p.Axis.LatLonToVector(lat, lon)
	rawElevation := p.Noise.Elevation(v[0], v[1], v[2]) * p.MaxElevation

	got := s.Elevation(lat, lon)
	want := rawElevation - p.SeaLevel
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Elevation = %v, want %v", got, want)
	}
}

func TestTemperature_WithinPhysicalRange(t *testing.T) {
	p := testPlanet(t)
	s := New(p, nil)

	for _, prop := range []float64{0, 0.25, 0.5, 0.75, 1.0} {
		temp := s.Temperature(0, 0, prop)
		if temp < 0 || temp > 400 {
			t.Errorf("Temperature(0,0,%v) = %v, outside plausible range", prop, temp)
		}
	}
}

func TestTemperature_EquatorWarmerThanPoleOnAverage(t *testing.T) {
	p := testPlanet(t)
	s := New(p, nil)

	var equatorSum, poleSum float64
	const samples = 8
	for i := 0; i < samples; i++ {
		prop := float64(i) / samples
		equatorSum += s.Temperature(0, 0, prop)
		poleSum += s.Temperature(math.Pi/2-0.01, 0, prop)
	}
	if equatorSum/samples <= poleSum/samples {
		t.Errorf("expected equator average temperature to exceed near-pole average: equator=%v pole=%v", equatorSum/samples, poleSum/samples)
	}
}

func TestPrecipitation_NonNegative(t *testing.T) {
	p := testPlanet(t)
	s := New(p, nil)

	for i := 0; i < 50; i++ {
		lat := -math.Pi/2 + float64(i)/50*math.Pi
		result := s.Precipitation(lat, 0, 0.3)
		if result.Precipitation < 0 || result.Snowfall < 0 {
			t.Errorf("Precipitation(%v,0,0.3) = %+v, expected non-negative", lat, result)
		}
	}
}

func TestPrecipitation_SnowOnlyBelowFreezing(t *testing.T) {
	p := testPlanet(t)
	s := New(p, nil)
	result := s.Precipitation(math.Pi/2-0.01, 0, 0)
	temp := s.Temperature(math.Pi/2-0.01, 0, 0)
	if temp > freezingPointK && result.Snowfall != 0 {
		t.Errorf("snowfall reported above freezing: temp=%v snowfall=%v", temp, result.Snowfall)
	}
}

func TestAtmosphericState_PressureDecreasesWithAltitude(t *testing.T) {
	p := testPlanet(t)
	s := New(p, nil)

	_, lowPressure := s.AtmosphericState(0, 0, 0, 0, true)
	_, highPressure := s.AtmosphericState(0, 0, 0, 10000, true)
	if highPressure >= lowPressure {
		t.Errorf("pressure at 10km (%v) should be less than at sea level (%v)", highPressure, lowPressure)
	}
}

func TestGenerateElevationMap_Dimensions(t *testing.T) {
	p := testPlanet(t)
	s := New(p, nil)
	img := s.GenerateElevationMap(64, 32)
	bounds := img.Bounds()
	if bounds.Dx() != 64 || bounds.Dy() != 32 {
		t.Errorf("map dimensions = %dx%d, want 64x32", bounds.Dx(), bounds.Dy())
	}
}

func TestGeneratePrecipitationFrames_Count(t *testing.T) {
	p := testPlanet(t)
	s := New(p, nil)
	frames := s.GeneratePrecipitationFrames(16, 8, 4)
	if len(frames) != 4 {
		t.Fatalf("got %d frames, want 4", len(frames))
	}
	for i, f := range frames {
		wantProp := float64(i) / 4
		if math.Abs(f.ProportionOfYear-wantProp) > 1e-9 {
			t.Errorf("frame %d proportion = %v, want %v", i, f.ProportionOfYear, wantProp)
		}
	}
}

func TestBracketPrecipitationFrames_WrapsAtYearBoundary(t *testing.T) {
	frames := make([]PrecipitationFrame, 4)
	i0, i1, frac, ok := BracketPrecipitationFrames(frames, 0.99)
	if !ok {
		t.Fatal("expected ok=true for non-empty frames")
	}
	if i0 != 3 || i1 != 0 {
		t.Errorf("got i0=%d i1=%d, want i0=3 i1=0 near year boundary", i0, i1)
	}
	if frac < 0 || frac >= 1 {
		t.Errorf("frac = %v, want in [0,1)", frac)
	}
}

func TestResourceDensity_BoundedByProportionAndVariesSpatially(t *testing.T) {
	p := testPlanet(t)
	if len(p.Resources) == 0 {
		t.Fatal("expected test planet to have discovered resources")
	}
	s := New(p, nil)
	res := p.Resources[0]

	a := s.ResourceDensity(res, 0, 0)
	b := s.ResourceDensity(res, 0.9, 2.1)
	if a < 0 || a > res.Proportion || b < 0 || b > res.Proportion {
		t.Fatalf("density out of [0, %v]: got %v and %v", res.Proportion, a, b)
	}
	if a == b {
		t.Error("expected density to vary across distinct sample points")
	}
}

func TestResourceDensity_DistinctSeedsDiverge(t *testing.T) {
	p := testPlanet(t)
	if len(p.Resources) < 2 {
		t.Skip("test planet did not discover at least two resources")
	}
	s := New(p, nil)
	first := s.ResourceDensity(p.Resources[0], 0.3, 1.1)
	second := s.ResourceDensity(p.Resources[1], 0.3, 1.1)
	if first == second {
		t.Error("expected distinct resources' noise seeds to diverge at the same sample point")
	}
}
