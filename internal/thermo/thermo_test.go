package thermo

import (
	"math"
	"testing"
)

func TestBlackbodyTemperature_Zero(t *testing.T) {
	if got := BlackbodyTemperature(0, 0.3); got != 0 {
		t.Fatalf("expected 0 for zero flux, got %v", got)
	}
	if got := BlackbodyTemperature(-5, 0.3); got != 0 {
		t.Fatalf("expected 0 for negative flux, got %v", got)
	}
}

func TestBlackbodyTemperature_EarthApprox(t *testing.T) {
	// Sun-like luminosity/distance term tuned so Earth's albedo yields
	// something in the right ballpark of an airless equilibrium temperature.
	const sunLuminosity = 3.828e26 // watts
	const auMeters = 1.496e11
	fluxTerm := sunLuminosity / (auMeters * auMeters)

	got := BlackbodyTemperature(fluxTerm, 0.3)
	if got < 200 || got > 300 {
		t.Fatalf("expected plausible airless equilibrium temp, got %v", got)
	}
}

func TestGreenhouseEffect_NeverNegative(t *testing.T) {
	if got := GreenhouseEffect(250, 0.5, 0.5); got != 0 {
		t.Fatalf("expected clamp to 0, got %v", got)
	}
	if got := GreenhouseEffect(250, 1.5, 1.5); got <= 0 {
		t.Fatalf("expected positive greenhouse warming, got %v", got)
	}
}

func TestInsolationFactor_PolarLessThanEquatorial(t *testing.T) {
	const mass = 5.97e24
	const radius = 6.371e6
	const scaleHeight = 8500.0

	eq := InsolationFactor(5.1e18, mass, radius, scaleHeight, false)
	polar := InsolationFactor(5.1e18, mass, radius, scaleHeight, true)

	if polar >= eq {
		t.Fatalf("expected polar insolation factor < equatorial, got polar=%v eq=%v", polar, eq)
	}
}

func TestInsolationFactor_ZeroMassGuarded(t *testing.T) {
	if got := InsolationFactor(1, 0, 1, 1, false); got != 0 {
		t.Fatalf("expected 0 for zero planet mass, got %v", got)
	}
}

func TestDryLapseRate_Positive(t *testing.T) {
	if got := DryLapseRate(9.81); got <= 0 {
		t.Fatalf("expected positive lapse rate, got %v", got)
	}
}

func TestMoistLapseRate_LessThanDry(t *testing.T) {
	dry := DryLapseRate(9.81)
	moist := MoistLapseRate(290, 9.81, 101.325)
	if moist <= 0 || moist >= dry {
		t.Fatalf("expected 0 < moist (%v) < dry (%v)", moist, dry)
	}
}

func TestMoistLapseRate_GuardsNearZeroTemp(t *testing.T) {
	got := MoistLapseRate(0, 9.81, 101.325)
	want := DryLapseRate(9.81)
	if got != want {
		t.Fatalf("expected fallback to dry lapse rate at T=0, got %v want %v", got, want)
	}
}

func TestTemperatureAtElevation_Boundaries(t *testing.T) {
	const surface, blackbody, atmHeight, maxElev, g, p = 288.0, 255.0, 100000.0, 8848.0, 9.81, 101.325

	if got := TemperatureAtElevation(surface, blackbody, atmHeight, atmHeight, maxElev, g, p); got != blackbody {
		t.Fatalf("at/above atmospheric height expected blackbody temp, got %v", got)
	}
	if got := TemperatureAtElevation(surface, blackbody, -10, atmHeight, maxElev, g, p); got != surface {
		t.Fatalf("below sea level expected surface temp, got %v", got)
	}
}

func TestTemperatureAtElevation_MonotonicWithinRange(t *testing.T) {
	const surface, blackbody, atmHeight, maxElev, g, p = 288.0, 255.0, 100000.0, 8848.0, 9.81, 101.325

	low := TemperatureAtElevation(surface, blackbody, 1000, atmHeight, maxElev, g, p)
	high := TemperatureAtElevation(surface, blackbody, 8000, atmHeight, maxElev, g, p)
	if math.IsNaN(low) || math.IsNaN(high) {
		t.Fatalf("unexpected NaN: low=%v high=%v", low, high)
	}
	if high >= low {
		t.Fatalf("expected temperature to fall with elevation: low=%v high=%v", low, high)
	}
}

func TestAtmosphericPressureAtElevation_DecreasesWithHeight(t *testing.T) {
	sea := AtmosphericPressureAtElevation(101.325, 9.81, 288, 0)
	summit := AtmosphericPressureAtElevation(101.325, 9.81, 288, 8848)

	if summit >= sea {
		t.Fatalf("expected pressure to decrease with elevation, sea=%v summit=%v", sea, summit)
	}
	if summit < 0 {
		t.Fatalf("pressure must not go negative, got %v", summit)
	}
}

func TestAtmosphericPressureAtElevation_GuardsNearZeroTemp(t *testing.T) {
	got := AtmosphericPressureAtElevation(101.325, 9.81, 0, 5000)
	if got != 101.325 {
		t.Fatalf("expected fallback to surface pressure at T=0, got %v", got)
	}
}
