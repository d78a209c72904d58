package generator

import (
	"math"

	"github.com/leemwalker/planetgen/internal/material"
	"github.com/leemwalker/planetgen/internal/rehydrate"
)

// buildHydrosphere implements spec.md §4.5 step 6 exactly, including its
// named constants (randomMapElevationFactor, hemiHalfVolumeConstant) and
// fixed indices 40 (seawater proportion) and 41 (variance sign).
func buildHydrosphere(r *rehydrate.Rehydrator, waterRatio, maxElevation float64) (layer *material.Layer, seaLevel, normalizedSeaLevel float64) {
	switch waterRatio {
	case 0:
		return nil, -1.1 * maxElevation, -1.1
	case 1:
		l := material.NewLayer(material.LayerHydrosphere, material.ShapeHollowSphere)
		salt := r.NormalSample(40, 0.945, 0.015, nil)
		salt = clampFloat(salt, 0, 1)
		l.Add("saltwater", salt)
		l.Add("freshwater", 1-salt)
		l.Normalize()
		return l, maxElevation, 1
	}

	variance := (math.Exp(math.Abs(waterRatio-0.5)) - 1) * randomMapElevationFactor
	sign := 1.0
	if r.NextBool(41) {
		sign = -1.0
	}
	seaLevel = sign * variance * maxElevation
	normalizedSeaLevel = clampFloat(seaLevel/maxNonZero(maxElevation), -1.1, 1)

	l := material.NewLayer(material.LayerHydrosphere, material.ShapeHollowSphere)
	l.Mass = hemiHalfVolumeConstant * variance
	salt := clampFloat(r.NormalSample(40, 0.945, 0.015, nil), 0, 1)
	l.Add("saltwater", salt)
	l.Add("freshwater", 1-salt)
	l.Normalize()

	return l, seaLevel, normalizedSeaLevel
}

func maxNonZero(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}
