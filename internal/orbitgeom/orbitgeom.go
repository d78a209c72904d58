// Package orbitgeom implements the axis/orbit geometry used to locate a
// surface point in time (spec.md §4.3): latitude/longitude <-> unit vector
// conversions, solar declination, and solstice/season bookkeeping. Axis
// orientation is carried as a quaternion (github.com/go-gl/mathgl's
// double-precision mgl64 package) rather than an Euler-angle stack, which
// is what lets LatLonToVector/VectorToLatitude round-trip cleanly near the
// poles (spec.md §8's round-trip law).
package orbitgeom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

func wrapTau(angle float64) float64 {
	const tau = 2 * math.Pi
	a := math.Mod(angle, tau)
	if a < 0 {
		a += tau
	}
	return a
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

// Orbit carries the classical orbital elements named in spec.md §3.
type Orbit struct {
	SemiMajorAxis            float64 // meters
	Eccentricity             float64
	Inclination              float64 // radians
	LongitudeOfPeriapsis     float64 // radians
	LongitudeOfAscendingNode float64 // radians
	ArgumentOfPeriapsis      float64 // radians
	TrueAnomaly              float64 // radians
	Period                   float64 // seconds
	Apoapsis                 float64 // meters
	Periapsis                float64 // meters
	OrbitedPosition          mgl64.Vec3
	OrbitedMass              float64 // kg
}

// EclipticLongitude returns the planet's ecliptic longitude at the given
// true anomaly, used by solar declination (spec.md §4.3).
func (o Orbit) EclipticLongitude(trueAnomaly float64) float64 {
	return wrapTau(o.LongitudeOfPeriapsis + trueAnomaly)
}

// SummerSolsticeTrueAnomaly returns "(π/2 − Ω) mod 2π" (spec.md §4.3).
func (o Orbit) SummerSolsticeTrueAnomaly() float64 {
	return wrapTau(math.Pi/2 - o.LongitudeOfAscendingNode)
}

// WinterSolsticeTrueAnomaly returns "(3π/2 − Ω) mod 2π" (spec.md §4.3).
func (o Orbit) WinterSolsticeTrueAnomaly() float64 {
	return wrapTau(3*math.Pi/2 - o.LongitudeOfAscendingNode)
}

// ProportionOfYear returns the fraction of a year elapsed since the winter
// solstice, for the given true anomaly (spec.md §4.3): "(τ −
// winter_solstice_true_anomaly) mod 2π / 2π".
func (o Orbit) ProportionOfYear(trueAnomaly float64) float64 {
	return wrapTau(trueAnomaly-o.WinterSolsticeTrueAnomaly()) / (2 * math.Pi)
}

// TrueAnomalyAtProportion inverts ProportionOfYear: given a fraction of the
// year elapsed since the winter solstice, returns the corresponding true
// anomaly. Used by surface/query sampling, both of which take
// proportion_of_year as their time input rather than true anomaly
// directly (spec.md §4.6/§4.7).
func TrueAnomalyAtProportion(o *Orbit, proportionOfYear float64) float64 {
	if o == nil {
		return 0
	}
	return wrapTau(o.WinterSolsticeTrueAnomaly() + proportionOfYear*2*math.Pi)
}

// DistanceAtTrueAnomaly returns the orbital radius at true anomaly ν via
// the standard conic-section relation r = a(1-e²)/(1+e·cos ν).
func DistanceAtTrueAnomaly(o *Orbit, trueAnomaly float64) float64 {
	if o == nil || o.SemiMajorAxis <= 0 {
		return 0
	}
	denom := 1 + o.Eccentricity*math.Cos(trueAnomaly)
	if denom <= 0 {
		return o.SemiMajorAxis
	}
	return o.SemiMajorAxis * (1 - o.Eccentricity*o.Eccentricity) / denom
}

// Axis represents a planet's rotational axis: its tilt relative to the
// orbital plane, its precession, the resulting unit vector in world space,
// and the quaternion relating the two frames.
type Axis struct {
	Tilt       float64 // angle_of_rotation, radians
	Precession float64 // axial_precession, radians
	Vector     mgl64.Vec3
	Rotation   mgl64.Quat // conjugate of the quaternion mapping world Y to Vector
}

// NewAxis builds an Axis from a tilt and precession angle (both radians).
// The planet's axis is produced by tilting world Y around world X, then
// precessing the result around world Y, matching spec.md §4.5 step 4's "angle_of_rotation =
// (Earth_axial_tilt + orbit.inclination) mod π" composition — that sum is
// computed by the caller (generator package) and passed in as tilt.
func NewAxis(tilt, precession float64) Axis {
	precessionQ := mgl64.QuatRotate(precession, mgl64.Vec3{0, 1, 0})
	tiltQ := mgl64.QuatRotate(tilt, mgl64.Vec3{1, 0, 0})
	q := precessionQ.Mul(tiltQ).Normalize()

	return Axis{
		Tilt:       tilt,
		Precession: precession,
		Vector:     q.Rotate(mgl64.Vec3{0, 1, 0}).Normalize(),
		Rotation:   q.Conjugate(),
	}
}

// forward returns the quaternion mapping a planet-local vector (where
// local Y is the axis) into world space. It is the conjugate of the
// stored Rotation, per spec.md §3's invariant description.
func (a Axis) forward() mgl64.Quat {
	return a.Rotation.Conjugate()
}

// LatLonToVector returns the unit surface direction for (lat, lon),
// applying the inverse axis rotation to the planet-local direction
// (spec.md §4.3).
func (a Axis) LatLonToVector(lat, lon float64) mgl64.Vec3 {
	local := mgl64.Vec3{
		math.Cos(lat) * math.Sin(lon),
		math.Sin(lat),
		math.Cos(lat) * math.Cos(lon),
	}
	return a.forward().Rotate(local).Normalize()
}

// VectorToLatitude returns "π/2 − angle(axis, v)" (spec.md §4.3).
func (a Axis) VectorToLatitude(v mgl64.Vec3) float64 {
	vn := v.Normalize()
	cosAngle := clampUnit(a.Vector.Dot(vn))
	return math.Pi/2 - math.Acos(cosAngle)
}

// VectorToLongitude rotates v into the planet's local frame and returns
// atan2(x, z) (spec.md §4.3).
func (a Axis) VectorToLongitude(v mgl64.Vec3) float64 {
	local := a.Rotation.Rotate(v.Normalize())
	return math.Atan2(local[0], local[2])
}

// SolarDeclination returns the solar declination at the given true
// anomaly (spec.md §4.3): "asin(sin(−axial_tilt) · sin(ecliptic_longitude(τ)))".
// orbit is nil when the planet has no assigned orbit, in which case
// declination is defined as zero.
func SolarDeclination(axis Axis, orbit *Orbit, trueAnomaly float64) float64 {
	if orbit == nil {
		return 0
	}
	eclipticLon := orbit.EclipticLongitude(trueAnomaly)
	return math.Asin(clampUnit(math.Sin(-axis.Tilt) * math.Sin(eclipticLon)))
}

// WrapLatitude wraps a seasonal latitude (latitude shifted by declination)
// back into [-π/2, π/2] by reflecting across the pole, matching how a
// point's apparent latitude behaves once the solar declination pushes it
// past a pole.
func WrapLatitude(lat float64) float64 {
	const halfPi = math.Pi / 2
	for lat > halfPi {
		lat = math.Pi - lat
	}
	for lat < -halfPi {
		lat = -math.Pi - lat
	}
	return lat
}

// EquatorialPosition computes right ascension/declination of an external
// point (e.g. a star or satellite) given its world-space direction from
// the planet, via the same axis-rotation transform used for surface
// points (spec.md §4.3 "Right ascension / declination of an external point
// use equatorial transform by axis_rotation").
func EquatorialPosition(axis Axis, direction mgl64.Vec3) (rightAscension, declination float64) {
	local := axis.Rotation.Rotate(direction.Normalize())
	declination = math.Asin(clampUnit(local[1]))
	rightAscension = math.Atan2(local[0], local[2])
	return rightAscension, declination
}
