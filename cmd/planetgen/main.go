// Command planetgen demonstrates the generation pipeline end to end: seed
// in, planet + satellites + queryable climate out. It is a thin
// demonstration harness rather than a CLI framework — flag parsing and
// plain log lines only.
package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/leemwalker/planetgen/internal/external"
	"github.com/leemwalker/planetgen/internal/generator"
	"github.com/leemwalker/planetgen/internal/obslog"
	"github.com/leemwalker/planetgen/internal/params"
	"github.com/leemwalker/planetgen/internal/query"
	"github.com/leemwalker/planetgen/internal/surface"
)

func main() {
	seed := flag.Uint("seed", 1, "planet seed")
	planetTypeFlag := flag.String("type", "terrestrial", "terrestrial|gas_giant|ice_giant")
	waterRatio := flag.Float64("water-ratio", -1, "override water ratio, 0-1 (-1 = Earth baseline)")
	flag.Parse()

	obslog.Init()
	ctx := context.Background()

	planetType, err := parsePlanetType(*planetTypeFlag)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid -type")
	}

	var opts []params.Option
	if *waterRatio >= 0 {
		opts = append(opts, params.WithWaterRatio(*waterRatio))
	}
	planetParams := params.New(opts...)
	requirements := params.HumanBreathable()

	stars := []external.Star{{Luminosity: 3.828e26, Mass: 1.989e30}}
	g := generator.New(planetParams, requirements)

	p, err := g.Generate(ctx, uint32(*seed), planetType, nil, stars)
	if err != nil {
		log.Fatal().Err(err).Msg("generation failed")
	}

	satellites := external.GenerateSatellites(int64(*seed), p.Mass, p.Radius, external.SatelliteConfig{})
	generator.ApplyTidalRingWidening(p, satellites)

	printSummary(p, satellites)

	sampler := surface.New(p, stars)
	fmt.Printf("equator elevation (lat=0,lon=0): %.1f m\n", sampler.Elevation(0, 0))
	fmt.Printf("equator surface temperature at year-start: %.1f K\n", sampler.SurfaceTemperature(0, 0, 0))
	for _, res := range p.Resources {
		fmt.Printf("%s equator vein density: %.4f\n", res.Substance, sampler.ResourceDensity(res, 0, 0))
	}

	starSystem := &external.StaticStarSystem{
		Stars:           stars,
		OrbitRadius:     []float64{p.Orbit.SemiMajorAxis},
		AngularVelocity: []float64{2 * 3.141592653589793 / p.Orbit.Period},
	}
	engine := query.New(p, starSystem)

	if rise, set := engine.SunriseSunset(0, 0); rise != nil && set != nil {
		fmt.Printf("equator sunrise/sunset (proportion of day): %.3f / %.3f\n", *rise, *set)
	} else {
		fmt.Println("equator sunrise/sunset: polar day or night")
	}

	flags := engine.Habitability(requirements)
	fmt.Printf("habitability flags: %s\n", describeHabitability(flags))
}

func parsePlanetType(s string) (generator.PlanetType, error) {
	switch s {
	case "terrestrial":
		return generator.Terrestrial, nil
	case "gas_giant":
		return generator.GasGiant, nil
	case "ice_giant":
		return generator.IceGiant, nil
	default:
		return 0, fmt.Errorf("unknown planet type %q", s)
	}
}

func printSummary(p *generator.Planet, satellites []external.Satellite) {
	log.Info().
		Str("id", p.ID.String()).
		Uint32("seed", p.Seed).
		Str("type", p.Type.String()).
		Float64("radius_m", p.Radius).
		Float64("mass_kg", p.Mass).
		Float64("surface_gravity_mps2", p.SurfaceGravity).
		Int("satellite_count", len(satellites)).
		Int("ring_count", len(p.Rings)).
		Msg("planet generated")
}

func describeHabitability(flags query.HabitabilityFlag) string {
	if flags == 0 {
		return "habitable (no flags raised)"
	}
	names := []struct {
		flag query.HabitabilityFlag
		name string
	}{
		{query.NoWater, "no_water"},
		{query.UnbreathableAtmosphere, "unbreathable_atmosphere"},
		{query.TooCold, "too_cold"},
		{query.TooHot, "too_hot"},
		{query.LowPressure, "low_pressure"},
		{query.HighPressure, "high_pressure"},
		{query.LowGravity, "low_gravity"},
		{query.HighGravity, "high_gravity"},
	}
	out := ""
	for _, n := range names {
		if flags.Has(n.flag) {
			if out != "" {
				out += ","
			}
			out += n.name
		}
	}
	if out == "" {
		return "none"
	}
	return out
}
