package noisefield

import (
	"math"
	"math/rand"
	"testing"
)

func testSeeds() Seeds {
	return Seeds{N1: 1, N2: 2, N3: 3, N4: 4, N5: 5}
}

func TestElevation_Deterministic(t *testing.T) {
	f1 := New(testSeeds())
	f2 := New(testSeeds())

	pts := randomUnitVectors(50, 1)
	for _, p := range pts {
		e1 := f1.Elevation(p[0], p[1], p[2])
		e2 := f2.Elevation(p[0], p[1], p[2])
		if e1 != e2 {
			t.Fatalf("elevation not deterministic at %v: %v != %v", p, e1, e2)
		}
	}
}

func TestElevation_WithinClampTolerance(t *testing.T) {
	f := New(testSeeds())
	for _, p := range randomUnitVectors(5000, 7) {
		e := f.Elevation(p[0], p[1], p[2])
		if math.Abs(e) > 1.1 {
			t.Fatalf("elevation %v exceeds [-1.1, 1.1] tolerance at %v", e, p)
		}
	}
}

func TestElevation_DifferentSeedsDiffer(t *testing.T) {
	a := New(testSeeds())
	b := New(Seeds{N1: 11, N2: 12, N3: 13, N4: 14, N5: 15})

	same := true
	for _, p := range randomUnitVectors(20, 3) {
		if a.Elevation(p[0], p[1], p[2]) != b.Elevation(p[0], p[1], p[2]) {
			same = false
			break
		}
	}
	if same {
		t.Fatal("elevation identical across different noise seeds")
	}
}

func TestPrecipitation_NeverNegative(t *testing.T) {
	f := New(testSeeds())
	for _, p := range randomUnitVectors(200, 9) {
		res := f.Precipitation(PrecipitationInputs{
			X: p[0], Y: p[1], Z: p[2],
			Latitude:         0.3,
			SeasonalLatitude: 0.1,
			Temperature:      290,
			FreezingPoint:    273.15,
			AveragePrecip:    1000,
			SnowToRainRatio:  1.0,
		})
		if res.Precipitation < 0 || res.Snowfall < 0 {
			t.Fatalf("negative precipitation/snowfall: %+v", res)
		}
	}
}

func TestPrecipitation_SnowOnlyBelowFreezing(t *testing.T) {
	f := New(testSeeds())
	in := PrecipitationInputs{
		X: 0.1, Y: 0.2, Z: 0.97,
		Latitude: 0.2, SeasonalLatitude: 0.05,
		FreezingPoint: 273.15, AveragePrecip: 1000, SnowToRainRatio: 0.8,
	}

	in.Temperature = 280
	warm := f.Precipitation(in)
	if warm.Snowfall != 0 {
		t.Fatalf("expected no snowfall above freezing, got %v", warm.Snowfall)
	}

	in.Temperature = 260
	cold := f.Precipitation(in)
	if cold.Precipitation > 0 && cold.Snowfall == 0 {
		t.Fatalf("expected snowfall below freezing when precipitation > 0, got %+v", cold)
	}
}

func randomUnitVectors(n int, seed int64) [][3]float64 {
	r := rand.New(rand.NewSource(seed))
	out := make([][3]float64, n)
	for i := range out {
		// Uniform-ish point on sphere via normalized Gaussian components.
		x, y, z := r.NormFloat64(), r.NormFloat64(), r.NormFloat64()
		length := math.Sqrt(x*x + y*y + z*z)
		if length == 0 {
			length = 1
		}
		out[i] = [3]float64{x / length, y / length, z / length}
	}
	return out
}
