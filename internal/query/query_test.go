package query

import (
	"context"
	"math"
	"testing"

	"github.com/leemwalker/planetgen/internal/external"
	"github.com/leemwalker/planetgen/internal/generator"
	"github.com/leemwalker/planetgen/internal/orbitgeom"
	"github.com/leemwalker/planetgen/internal/params"
)

func testPlanet(t *testing.T, seed uint32, pt generator.PlanetType, opts ...params.Option) *generator.Planet {
	t.Helper()
	g := generator.New(params.New(opts...), params.HumanBreathable())
	stars := []external.Star{{Luminosity: 3.828e26, Mass: 1.989e30}}
	p, err := g.Generate(context.Background(), seed, pt, nil, stars)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	return p
}

func TestProportionOfYear_NoOrbitUndefined(t *testing.T) {
	p := testPlanet(t, 1, generator.Terrestrial)
	p.Orbit = nil
	e := New(p, nil)

	if _, ok := e.ProportionOfYear(0); ok {
		t.Fatal("expected ok=false with no orbit")
	}
	rise, set := e.SunriseSunset(0, 0)
	if rise != nil || set != nil {
		t.Fatalf("expected both nil with no orbit, got rise=%v set=%v", rise, set)
	}
}

func TestIllumination_MissingStarsIsNeutral(t *testing.T) {
	p := testPlanet(t, 1, generator.Terrestrial)
	e := New(p, nil)

	got, err := e.Illumination(context.Background(), 0, 0, 0, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0 {
		t.Errorf("Illumination with no star system = %v, want 0", got)
	}
}

func TestIllumination_ContextCancellation(t *testing.T) {
	p := testPlanet(t, 1, generator.Terrestrial)
	e := New(p, &external.StaticStarSystem{Stars: []external.Star{{Luminosity: 3.828e26}}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := e.Illumination(ctx, 0, 0, 0, nil)
	if err == nil {
		t.Fatal("expected context cancellation error")
	}
}

// Scenario 6: equator, axial_tilt=0, circular single-star orbit ->
// sunrise/sunset ~= (0.25, 0.75).
func TestSunriseSunset_Scenario6_EquatorNoTiltCircularOrbit(t *testing.T) {
	p := testPlanet(t, 1, generator.Terrestrial, params.WithAxialTilt(0))
	p.Axis = orbitgeom.NewAxis(0, 0)
	p.Orbit.Eccentricity = 0
	p.Orbit.Inclination = 0
	p.Orbit.LongitudeOfPeriapsis = 0
	p.Orbit.LongitudeOfAscendingNode = 0
	p.RotationalPeriod = 86164.0905

	e := New(p, nil)
	rise, set := e.SunriseSunset(0, 0)
	if rise == nil || set == nil {
		t.Fatal("expected both sunrise and sunset to be defined at the equator")
	}
	if math.Abs(*rise-0.25) > 1e-6 {
		t.Errorf("sunrise = %v, want ~0.25", *rise)
	}
	if math.Abs(*set-0.75) > 1e-6 {
		t.Errorf("sunset = %v, want ~0.75", *set)
	}
}

func TestSunriseSunset_PolarNightVsMidnightSun(t *testing.T) {
	p := testPlanet(t, 1, generator.Terrestrial, params.WithAxialTilt(23.4*math.Pi/180))
	p.Axis = orbitgeom.NewAxis(23.4*math.Pi/180, 0)
	p.Orbit.Eccentricity = 0
	p.Orbit.Inclination = 0
	p.Orbit.LongitudeOfPeriapsis = 0
	p.Orbit.LongitudeOfAscendingNode = 0
	p.RotationalPeriod = 86164.0905

	// At the true anomaly giving declination = +axial_tilt (this model's
	// solar-declination sign convention yields that at the winter-solstice
	// true anomaly, 3*pi/2 - see orbitgeom.SolarDeclination), the north
	// pole is continuously lit.
	trueAnomaly := p.Orbit.WinterSolsticeTrueAnomaly()
	proportion := p.Orbit.ProportionOfYear(trueAnomaly)
	moment := proportion * p.Orbit.Period

	rise, set := e(p).SunriseSunset(moment, math.Pi/2)
	if (rise == nil) == (set == nil) {
		t.Fatalf("expected exactly one of sunrise/sunset to be nil at the pole, got rise=%v set=%v", rise, set)
	}
	if rise == nil {
		t.Error("expected midnight sun (sunrise defined, sunset nil) at the illuminated pole")
	}
}

func e(p *generator.Planet) *Engine { return New(p, nil) }

func TestHabitability_NoWaterFlag(t *testing.T) {
	p := testPlanet(t, 1, generator.Terrestrial, params.WithWaterRatio(0))
	eng := New(p, nil)
	flags := eng.Habitability(params.HumanBreathable())
	if !flags.Has(NoWater) {
		t.Error("expected NoWater flag with water_ratio=0")
	}
}

func TestHabitability_EarthlikePassesCoreChecks(t *testing.T) {
	p := testPlanet(t, 1, generator.Terrestrial)
	eng := New(p, nil)
	flags := eng.Habitability(params.HumanBreathable())
	if flags.Has(LowGravity) || flags.Has(HighGravity) {
		t.Errorf("earthlike planet unexpectedly flagged on gravity: %b", flags)
	}
}

func TestSatellitePhase_IlluminatedFractionBounded(t *testing.T) {
	p := testPlanet(t, 1, generator.Terrestrial)
	stars := &external.StaticStarSystem{
		Stars:           []external.Star{{Luminosity: 3.828e26}},
		OrbitRadius:     []float64{1.496e11},
		AngularVelocity: []float64{2 * math.Pi / p.Orbit.Period},
	}
	eng := New(p, stars)
	sat := external.Satellite{Mass: 7.342e22, Distance: 3.844e8, Period: 2.36e6, Radius: 1.7374e6, Albedo: 0.12}

	for _, moment := range []float64{0, sat.Period / 4, sat.Period / 2, 3 * sat.Period / 4} {
		phase, err := eng.SatellitePhase(context.Background(), moment, sat)
		if err != nil {
			t.Fatalf("SatellitePhase error: %v", err)
		}
		if phase.IlluminatedFraction < 0 || phase.IlluminatedFraction > 1 {
			t.Errorf("IlluminatedFraction at moment=%v = %v, outside [0,1]", moment, phase.IlluminatedFraction)
		}
		if !phase.HasWaxing {
			t.Errorf("expected HasWaxing=true with a single star")
		}
	}
}

func TestSatellitePhase_NoStarsIsNeutral(t *testing.T) {
	p := testPlanet(t, 1, generator.Terrestrial)
	eng := New(p, nil)
	phase, err := eng.SatellitePhase(context.Background(), 0, external.Satellite{Distance: 3.8e8, Period: 2.3e6})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if phase.HasWaxing {
		t.Error("expected HasWaxing=false with no star system")
	}
}
