package generator

import (
	"sort"

	"github.com/google/uuid"

	"github.com/leemwalker/planetgen/internal/material"
	"github.com/leemwalker/planetgen/internal/rehydrate"
)

// veinSubstances and nonVeinSubstances classify crust constituents per
// spec.md §4.5 step 13: "gemstone/metal-ore" deposits are veins,
// "hydrocarbon" deposits are not.
var veinSubstances = map[string]bool{
	"gold_ore": true, "silver_ore": true, "copper_ore": true,
	"diamond": true,
}

var nonVeinSubstances = map[string]bool{
	"coal": true, "oil": true, "gas": true, "graphite": true,
}

// extraDeposits are the always-considered named deposits spec.md §4.5
// step 13 lists explicitly beyond whatever the crust composition already
// contains: "halite, sulfur (if magnetosphere), beryl/emerald/corundum/
// ruby/sapphire/diamond (normal draws)". Halite draws index 72; sulfur
// and each gemstone draw their own index in 54-59 so the five "normal
// draws" are actually five independent samples rather than five reads of
// the same stream; the per-resource spatial noise seed for each
// discovered resource uses index 80+i (spec.md §9).
func buildResources(r *rehydrate.Rehydrator, crust *material.Layer, hasMagnetosphere bool) []Resource {
	var resources []Resource
	nextNoiseIndex := 80

	addResource := func(substance string, proportion float64, vein bool) {
		resources = append(resources, Resource{
			ID:         uuid.New(),
			Substance:  substance,
			Proportion: proportion,
			Vein:       vein,
			NoiseSeed:  int64(r.NextU32(nextNoiseIndex)),
		})
		nextNoiseIndex++
	}

	if crust != nil {
		// Sorted so each substance gets the same 80+i index on every run.
		substances := make([]string, 0, len(crust.Constituents))
		for substance := range crust.Constituents {
			substances = append(substances, substance)
		}
		sort.Strings(substances)
		for _, substance := range substances {
			proportion := crust.Constituents[substance]
			switch {
			case veinSubstances[substance]:
				addResource(substance, proportion, true)
			case nonVeinSubstances[substance]:
				addResource(substance, proportion, false)
			}
		}
	}

	halite := r.NextDouble(72, 0.001, 0.02)
	addResource("halite", halite, false)

	if hasMagnetosphere {
		sulfur := r.NextDouble(54, 0.0005, 0.01)
		addResource("sulfur", sulfur, true)
	}

	gemstones := []struct {
		substance string
		index     int
	}{
		{"beryl", 55}, {"emerald", 56}, {"corundum", 57}, {"ruby", 58}, {"sapphire", 59},
	}
	for _, gem := range gemstones {
		proportion := r.PositiveNormal(gem.index, 0.0008, 0.0006)
		addResource(gem.substance, proportion, true)
	}

	return resources
}
