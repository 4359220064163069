package rocketsim

import (
	"errors"
	"testing"

	"github.com/gonum/floats"
)

func TestRocketValidation(t *testing.T) {
	for _, tc := range []struct {
		name         string
		fuelCapacity float64
		maxSpeed     float64
		stages       int
	}{
		{"", 1000, 1000, 1},
		{"   ", 1000, 1000, 1},
		{"NoFuel", 0, 1000, 1},
		{"NegFuel", -5, 1000, 1},
		{"NoSpeed", 1000, 0, 1},
		{"NoStages", 1000, 1000, 0},
	} {
		if _, err := NewRocket(tc.name, tc.fuelCapacity, tc.maxSpeed, tc.stages); err == nil {
			t.Fatalf("NewRocket(%q, %f, %f, %d) did not fail", tc.name, tc.fuelCapacity, tc.maxSpeed, tc.stages)
		}
	}
	r, err := NewRocket("  Ariane 6  ", 150000, 28000, 2)
	if err != nil {
		t.Fatal(err)
	}
	if r.Name() != "Ariane 6" {
		t.Fatalf("name not trimmed: %q", r.Name())
	}
	if r.Fuel() != r.FuelCapacity() || r.Stage() != 1 || r.Launched() {
		t.Fatalf("fresh rocket not in pre-launch state: %s", r)
	}
}

func TestRocketLaunchOnce(t *testing.T) {
	r, _ := NewRocket("Once", 1000, 1000, 1)
	if err := r.Launch(); err != nil {
		t.Fatal(err)
	}
	if err := r.Launch(); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("second launch returned %v", err)
	}
	r.ResetState()
	if err := r.Launch(); err != nil {
		t.Fatalf("launch after reset returned %v", err)
	}
}

func TestRocketUpdateDeterminism(t *testing.T) {
	a, _ := NewRocket("A", 1000000, 30000, 3)
	b, _ := NewRocket("B", 1000000, 30000, 3)
	a.Launch()
	b.Launch()
	for i := 0; i < 20; i++ {
		stillA := a.Update(1.0)
		stillB := b.Update(1.0)
		if stillA != stillB || a.Fuel() != b.Fuel() || a.Speed() != b.Speed() || a.Altitude() != b.Altitude() {
			t.Fatalf("identical rockets diverged at tick %d: %f vs %f km", i, a.Altitude(), b.Altitude())
		}
	}
	if a.Speed() < 0 || a.Speed() > a.MaxSpeed() {
		t.Fatalf("speed %f outside [0, %f]", a.Speed(), a.MaxSpeed())
	}
}

func TestRocketFuelExhaustion(t *testing.T) {
	r, _ := NewRocket("Tiny", 1, 100, 1)
	r.Launch()
	// One whole step worth of fuel: the step that empties the tank reports
	// the rocket as no longer flying and leaves the trajectory untouched.
	if still := r.Update(50); still {
		t.Fatal("rocket flew through fuel exhaustion")
	}
	if r.Fuel() != 0 || r.HasFuel() {
		t.Fatalf("fuel not drained: %f kg", r.Fuel())
	}
	if r.Speed() != 0 || r.Altitude() != 0 {
		t.Fatalf("exhaustion step moved the rocket: %f km/h, %f km", r.Speed(), r.Altitude())
	}
	if r.Update(1) {
		t.Fatal("update on an empty tank reported flying")
	}

	// A smaller step leaves fuel and advances the state.
	r2, _ := NewRocket("Tiny2", 1, 100, 1)
	r2.Launch()
	if still := r2.Update(1); !still {
		t.Fatal("rocket with fuel reported not flying")
	}
	if !floats.EqualWithinAbs(r2.Fuel(), 0.98, 1e-12) {
		t.Fatalf("fuel after one second = %f", r2.Fuel())
	}
}

func TestRocketNotLaunched(t *testing.T) {
	r, _ := NewRocket("Grounded", 1000, 1000, 1)
	if r.Update(1) {
		t.Fatal("unlaunched rocket reported flying")
	}
	if r.Fuel() != r.FuelCapacity() {
		t.Fatal("unlaunched update consumed fuel")
	}
}

func TestStageSeparation(t *testing.T) {
	r, _ := NewRocket("Stager", 1000, 1000, 2)
	r.Launch()
	// Stage 1 of 2 separates at 50% fuel; burn is 2% of capacity per second.
	for i := 0; i < 24; i++ {
		r.Update(1.0)
		if r.ShouldSeparateStage() {
			t.Fatalf("separation signalled at %.1f%% fuel", r.FuelPercentage())
		}
	}
	r.Update(1.0)
	if !floats.EqualWithinAbs(r.FuelPercentage(), 50, 1e-9) {
		t.Fatalf("fuel after 25 s = %.3f%%", r.FuelPercentage())
	}
	if !r.ShouldSeparateStage() {
		t.Fatal("no separation at the 50% threshold")
	}
	if !r.SeparateStage() || r.Stage() != 2 {
		t.Fatalf("separation failed, stage = %d", r.Stage())
	}
	// Final stage never separates.
	if r.ShouldSeparateStage() || r.SeparateStage() {
		t.Fatal("final stage separated")
	}

	single, _ := NewRocket("Single", 1000, 1000, 1)
	single.Launch()
	single.Update(1.0)
	if single.ShouldSeparateStage() || single.SeparateStage() {
		t.Fatal("single stage rocket separated")
	}
}

func TestEstimatedRange(t *testing.T) {
	r, _ := NewRocket("Ranger", 1000000, 30000, 3)
	// 1000 * 50 * 1.6 * 1.2
	if !floats.EqualWithinAbs(r.EstimatedRange(), 96000, 1e-6) {
		t.Fatalf("estimated range = %f", r.EstimatedRange())
	}
	slower, _ := NewRocket("Slower", 1000000, 15000, 3)
	if slower.EstimatedRange() >= r.EstimatedRange() {
		t.Fatal("range must grow with max speed")
	}
	fewer, _ := NewRocket("Fewer", 1000000, 30000, 1)
	if fewer.EstimatedRange() >= r.EstimatedRange() {
		t.Fatal("range must grow with stage count")
	}
}
