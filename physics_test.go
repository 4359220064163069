package rocketsim

import (
	"testing"

	"github.com/gonum/floats"
)

func TestVelocityReference(t *testing.T) {
	// Textbook values at sea level.
	if !floats.EqualWithinAbs(EscapeVelocity(0), 11.186, 5e-3) {
		t.Fatalf("surface escape velocity = %f", EscapeVelocity(0))
	}
	if !floats.EqualWithinAbs(OrbitalVelocity(0), 7.910, 5e-3) {
		t.Fatalf("surface orbital velocity = %f", OrbitalVelocity(0))
	}
	for _, altitude := range []float64{0, 408, 35786, 384400} {
		escapeV := EscapeVelocity(altitude)
		orbitalV := OrbitalVelocity(altitude)
		if orbitalV <= 0 || escapeV <= orbitalV {
			t.Fatalf("at %f km: escape %f, orbital %f", altitude, escapeV, orbitalV)
		}
		// v_esc = sqrt(2) * v_circ at every radius.
		if !floats.EqualWithinAbs(escapeV/orbitalV, 1.41421356, 1e-6) {
			t.Fatalf("escape/orbital ratio = %f at %f km", escapeV/orbitalV, altitude)
		}
	}
	// Both velocities decrease with altitude.
	if EscapeVelocity(408) >= EscapeVelocity(0) || OrbitalVelocity(384400) >= OrbitalVelocity(408) {
		t.Fatal("velocities must decrease with altitude")
	}
}

func TestGravityAndDensity(t *testing.T) {
	if !floats.EqualWithinAbs(GravitationalAcceleration(0), 9.82, 2e-2) {
		t.Fatalf("surface gravity = %f", GravitationalAcceleration(0))
	}
	if GravitationalAcceleration(408) >= GravitationalAcceleration(0) {
		t.Fatal("gravity must decrease with altitude")
	}
	if AtmosphericDensity(0) != SeaLevelDensity {
		t.Fatalf("sea level density = %f", AtmosphericDensity(0))
	}
	if !floats.EqualWithinAbs(AtmosphericDensity(ScaleHeight), SeaLevelDensity/2.718281828, 1e-6) {
		t.Fatalf("density at one scale height = %f", AtmosphericDensity(ScaleHeight))
	}
	if AtmosphericDensity(AtmosphereCeiling+1) != 0 {
		t.Fatal("density must vanish above the Karman line")
	}
	if DragForce(1, 200, 10, 0.3) != 0 {
		t.Fatal("no drag in vacuum")
	}
	if DragForce(0, 0, 10, 0.3) != 0 {
		t.Fatal("no drag at rest")
	}
	if DragForce(1, 0, 10, 0.3) <= DragForce(0.5, 0, 10, 0.3) {
		t.Fatal("drag must grow with velocity")
	}
}

func TestOrbitalCapability(t *testing.T) {
	alt := 408.0
	orbitalV := OrbitalVelocity(alt)
	escapeV := EscapeVelocity(alt)

	low := AnalyzeOrbitalCapability(orbitalV-1, alt)
	if low.CanOrbit || low.CanEscape || low.Status != Suborbital {
		t.Fatalf("below orbital velocity: %+v", low)
	}
	if !floats.EqualWithinAbs(low.VelocityDeficit, 1, 1e-12) {
		t.Fatalf("velocity deficit = %f", low.VelocityDeficit)
	}

	mid := AnalyzeOrbitalCapability(orbitalV, alt)
	if !mid.CanOrbit || mid.CanEscape || mid.Status != StableOrbit {
		t.Fatalf("at orbital velocity: %+v", mid)
	}
	if mid.VelocityDeficit != 0 || mid.EscapeDeficit <= 0 {
		t.Fatalf("deficits at orbital velocity: %+v", mid)
	}

	high := AnalyzeOrbitalCapability(escapeV+0.1, alt)
	if !high.CanOrbit || !high.CanEscape || high.Status != EscapeTrajectory {
		t.Fatalf("above escape velocity: %+v", high)
	}
	if high.VelocityDeficit != 0 || high.EscapeDeficit != 0 {
		t.Fatalf("deficits above escape velocity: %+v", high)
	}

	assertPanic(t, func() {
		_ = OrbitalStatus(0).String()
	})
}

func TestRequiredDeltaV(t *testing.T) {
	if !floats.EqualWithinAbs(RequiredDeltaV(408, 408), 0, 1e-9) {
		t.Fatalf("same-orbit transfer Δv = %f", RequiredDeltaV(408, 408))
	}
	// Symmetric in its arguments.
	up := RequiredDeltaV(408, 35786)
	down := RequiredDeltaV(35786, 408)
	if !floats.EqualWithinAbs(up, down, 1e-12) {
		t.Fatalf("transfer Δv not symmetric: %f vs %f", up, down)
	}
	// LEO to GEO costs about 3.9 km/s.
	if !floats.EqualWithinAbs(up, 3.9, 0.1) {
		t.Fatalf("LEO to GEO Δv = %f", up)
	}
	if RequiredDeltaV(0, 384400) <= up {
		t.Fatal("farther targets must require more Δv")
	}
}

func TestReachability(t *testing.T) {
	heavy, err := NewRocket("Heavy", 2600000, 40000, 3)
	if err != nil {
		t.Fatal(err)
	}
	tiny, err := NewRocket("Tiny", 500, 1000, 1)
	if err != nil {
		t.Fatal(err)
	}
	leo, err := NewTarget("LEO", 408)
	if err != nil {
		t.Fatal(err)
	}

	ra := AnalyzeReachability(heavy, leo)
	if !ra.CanReachTarget {
		t.Fatalf("heavy lifter cannot reach LEO: %+v", ra)
	}
	if ra.DeltaVDeficit() != 0 {
		t.Fatalf("deficit on reachable target = %f", ra.DeltaVDeficit())
	}
	if ra.AchievableVelocity <= 0 || ra.RequiredDeltaV <= 0 {
		t.Fatalf("degenerate analysis: %+v", ra)
	}

	rb := AnalyzeReachability(tiny, leo)
	if rb.AchievableVelocity >= ra.AchievableVelocity {
		t.Fatal("single small stage must deliver less Δv than a heavy three-stage stack")
	}
	if rb.DeltaVDeficit() != rb.RequiredDeltaV-rb.AchievableVelocity && rb.CanReachTarget {
		t.Fatalf("inconsistent deficit: %+v", rb)
	}

	// Isp and mass ratio stay in their clamped bands.
	if isp := estimateSpecificImpulse(heavy); isp < 250 || isp > 450 {
		t.Fatalf("Isp = %f out of band", isp)
	}
	if mr := estimateMassRatio(heavy); mr > 20 {
		t.Fatalf("mass ratio = %f out of band", mr)
	}
	if mr := estimateMassRatio(tiny); !floats.EqualWithinAbs(mr, 3, 1e-12) {
		t.Fatalf("single stage mass ratio = %f", mr)
	}
}
