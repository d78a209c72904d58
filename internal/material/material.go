// Package material implements the layered composition model of spec.md
// §3's "Material layer": core/mantle/crust/hydrosphere/atmosphere layers
// each carrying mass, density, shape, optional temperature, and a
// substance-proportion map that sums to 1, generalized from a single
// rock layer with mineral-proportion bookkeeping to the full planetary
// stack.
package material

import "math"

// Shape is the geometric solid a layer occupies.
type Shape int

const (
	ShapeSphere Shape = iota
	ShapeHollowSphere
)

// LayerKind names the role a layer plays in the planet stack (spec.md §3).
type LayerKind int

const (
	LayerCore LayerKind = iota
	LayerMantle
	LayerCrust
	LayerHydrosphere
	LayerAtmosphere
)

func (k LayerKind) String() string {
	switch k {
	case LayerCore:
		return "core"
	case LayerMantle:
		return "mantle"
	case LayerCrust:
		return "crust"
	case LayerHydrosphere:
		return "hydrosphere"
	case LayerAtmosphere:
		return "atmosphere"
	default:
		return "unknown"
	}
}

// Layer is one shell of the planetary composition.
type Layer struct {
	Kind         LayerKind
	Shape        Shape
	Density      float64 // kg/m^3
	Mass         float64 // kg
	Temperature  float64 // K, 0 means "not set"
	HasTemp      bool
	Constituents map[string]float64 // substance -> proportion, sums to 1
}

// NewLayer constructs a layer with a constituent map ready for accumulation.
func NewLayer(kind LayerKind, shape Shape) *Layer {
	return &Layer{Kind: kind, Shape: shape, Constituents: make(map[string]float64)}
}

// SetTemperature sets the optional per-layer temperature.
func (l *Layer) SetTemperature(k float64) {
	l.Temperature = k
	l.HasTemp = true
}

// ProportionSum returns Σ constituent_proportion for this layer, which
// spec.md §8's invariant requires to equal 1 within 1e-9.
func (l *Layer) ProportionSum() float64 {
	var sum float64
	for _, p := range l.Constituents {
		sum += p
	}
	return sum
}

// Normalize rescales constituent proportions so they sum to exactly 1,
// renormalizing after several independent draws accumulate floating-point
// drift (spec.md §9's decimal-precision note; see the no-decimal-library
// justification in DESIGN.md — this package uses float64 plus explicit
// renormalization at every composition boundary instead).
func (l *Layer) Normalize() {
	sum := l.ProportionSum()
	if sum <= 0 {
		return
	}
	for k, p := range l.Constituents {
		l.Constituents[k] = p / sum
	}
}

// Add accumulates a proportion into a constituent, creating it if absent.
func (l *Layer) Add(substance string, proportion float64) {
	l.Constituents[substance] += proportion
}

// Clone returns a deep copy, used by the convergence loop's runaway guard
// to snapshot and restore the hydrosphere across iterations.
func (l *Layer) Clone() *Layer {
	if l == nil {
		return nil
	}
	constituents := make(map[string]float64, len(l.Constituents))
	for k, v := range l.Constituents {
		constituents[k] = v
	}
	clone := *l
	clone.Constituents = constituents
	return &clone
}

// Composite is the full layered planetary structure: Σ layer masses must
// equal the planet mass within 1e-6 relative tolerance (spec.md §8).
type Composite struct {
	Layers []*Layer
}

// NewComposite builds an empty composite.
func NewComposite() *Composite {
	return &Composite{}
}

// AddLayer appends a layer to the composite and returns it for chaining.
func (c *Composite) AddLayer(l *Layer) *Layer {
	c.Layers = append(c.Layers, l)
	return l
}

// Layer returns the first layer of the given kind, or nil.
func (c *Composite) Layer(kind LayerKind) *Layer {
	for _, l := range c.Layers {
		if l.Kind == kind {
			return l
		}
	}
	return nil
}

// TotalMass returns Σ layer masses.
func (c *Composite) TotalMass() float64 {
	var sum float64
	for _, l := range c.Layers {
		sum += l.Mass
	}
	return sum
}

// MassBalanced reports whether Σ layer masses matches planetMass within the
// spec.md §8 tolerance |Σ layer_mass − planet_mass| < 1e-6 · planet_mass.
func (c *Composite) MassBalanced(planetMass float64) bool {
	if planetMass == 0 {
		return c.TotalMass() == 0
	}
	return math.Abs(c.TotalMass()-planetMass) < 1e-6*math.Abs(planetMass)
}

// RescaleToMass scales every layer's mass proportionally so the composite's
// total mass matches target exactly — used by the generator after building
// the core, mantle and crust layers from per-type mass fractions (which do
// not sum to 1) so the mass-conservation invariant holds.
func (c *Composite) RescaleToMass(target float64) {
	total := c.TotalMass()
	if total <= 0 {
		return
	}
	factor := target / total
	for _, l := range c.Layers {
		l.Mass *= factor
	}
}

// Atmosphere is the single-layer special case of spec.md §3: one material
// layer plus the derived/cached scalar state the generator's convergence
// loop mutates.
type Atmosphere struct {
	Layer            *Layer
	PressureKPa      float64
	GreenhouseFactor float64
	ScaleHeight      float64 // meters
	MaxPrecipitation float64 // mm/hr
	MaxSnowfall      float64 // mm/hr
	WaterRatio       float64
}

// NewAtmosphere constructs an atmosphere wrapping a fresh constituent layer.
func NewAtmosphere() *Atmosphere {
	return &Atmosphere{Layer: NewLayer(LayerAtmosphere, ShapeHollowSphere)}
}

// Proportion returns the atmosphere's proportion of the named substance,
// or 0 if absent.
func (a *Atmosphere) Proportion(substance string) float64 {
	if a == nil || a.Layer == nil {
		return 0
	}
	return a.Layer.Constituents[substance]
}

// SetProportion sets (not accumulates) a substance's proportion, used by
// the breathability top-up and carbon-silicate sink steps which replace
// rather than add to existing fractions.
func (a *Atmosphere) SetProportion(substance string, proportion float64) {
	if proportion <= 0 {
		delete(a.Layer.Constituents, substance)
		return
	}
	a.Layer.Constituents[substance] = proportion
}

// ClampProportion clamps a substance's proportion into [min, max] and
// reports whether the value changed — used by the breathability top-up
// (spec.md §4.5 step 12) to detect when cached temperatures/greenhouse must
// be invalidated.
func (a *Atmosphere) ClampProportion(substance string, min, max float64) bool {
	current := a.Proportion(substance)
	clamped := current
	if clamped < min {
		clamped = min
	}
	if clamped > max {
		clamped = max
	}
	if clamped == current {
		return false
	}
	a.SetProportion(substance, clamped)
	// Rescale the other constituents to fill the remaining share so the
	// layer still sums to 1 while the clamped value stays in range.
	others := a.Layer.ProportionSum() - clamped
	if others > 0 {
		scale := (1 - clamped) / others
		for k, p := range a.Layer.Constituents {
			if k != substance {
				a.Layer.Constituents[k] = p * scale
			}
		}
	}
	return true
}
