package rocketsim

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

const (
	fuelConsumptionRate  = 0.02 // fraction of capacity per second at stage 1
	stageEfficiencyBase  = 1.2  // fuel consumption divisor per stage climbed
	thrustPerKgCapacity  = 0.01 // Newtons of base thrust per kg of capacity
	stageThrustBase      = 1.3  // thrust multiplier per stage
	dryMassFraction      = 0.1  // dry mass as a fraction of fuel capacity
	lowFuelThrustCutoff  = 0.1  // fraction of capacity below which thrust tapers
	rangePerThousandKg   = 50.0 // km of estimated range per 1000 kg of fuel
	rangeStageBonus      = 0.3  // estimated range bonus per extra stage
	rangeSpeedNormalizer = 25000.0
)

// Rocket defines a launch vehicle: an immutable specification plus the
// mutable flight state of the current mission.
type Rocket struct {
	name         string
	fuelCapacity float64 // kg
	maxSpeed     float64 // km/h
	totalStages  int

	fuel     float64 // kg remaining
	speed    float64 // km/h
	altitude float64 // km
	stage    int
	launched bool
}

// NewRocket returns a new rocket in its pre-launch state.
func NewRocket(name string, fuelCapacity, maxSpeed float64, totalStages int) (*Rocket, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("rocket name cannot be empty")
	}
	if fuelCapacity <= 0 {
		return nil, fmt.Errorf("fuel capacity must be positive (got %f)", fuelCapacity)
	}
	if maxSpeed <= 0 {
		return nil, fmt.Errorf("max speed must be positive (got %f)", maxSpeed)
	}
	if totalStages < 1 {
		return nil, fmt.Errorf("total stages must be at least 1 (got %d)", totalStages)
	}
	r := &Rocket{name: name, fuelCapacity: fuelCapacity, maxSpeed: maxSpeed, totalStages: totalStages}
	r.ResetState()
	return r, nil
}

// ResetState returns the rocket to its initial pre-launch state. Called at
// the start of every mission.
func (r *Rocket) ResetState() {
	r.fuel = r.fuelCapacity
	r.speed = 0
	r.altitude = 0
	r.stage = 1
	r.launched = false
}

// Launch marks the rocket as launched. Launching twice without a reset is a
// state violation.
func (r *Rocket) Launch() error {
	if r.launched {
		return fmt.Errorf("%w: rocket %s is already launched", ErrInvalidState, r.name)
	}
	r.launched = true
	return nil
}

// Update advances the flight state by Δt seconds and reports whether the
// rocket is still under power. Fuel exhaustion within the step ends the step
// immediately: no velocity or altitude change is applied for it.
func (r *Rocket) Update(Δt float64) (stillFlying bool) {
	if !r.launched || r.fuel <= 0 {
		return false
	}

	used := r.fuelCapacity * fuelConsumptionRate * Δt / r.stageEfficiency()
	r.fuel = math.Max(0, r.fuel-used)
	if r.fuel <= 0 {
		return false
	}

	speedKmS := r.speed / 3600
	gravity := GravitationalAcceleration(r.altitude)
	thrust := r.thrust()
	mass := r.currentMass()
	cfg := simConfig()
	drag := DragForce(speedKmS, r.altitude, cfg.CrossSection, cfg.DragCoeff)

	// Net acceleration in m/s^2.
	accel := (thrust - drag - gravity*mass) / mass

	ΔvKmS := accel * Δt / 1000
	ΔvKmH := ΔvKmS * 3600
	r.speed = math.Max(0, math.Min(r.maxSpeed, r.speed+ΔvKmH))

	// Trapezoidal altitude advance over the step, after clamping. The clamp
	// feeds into the average, so a stalled climb still gains altitude.
	avgSpeedKmH := r.speed - ΔvKmH/2
	r.altitude += (avgSpeedKmH / 3600) * Δt

	return true
}

// thrust returns the instantaneous thrust in Newtons. It grows with the
// stage and tapers off once the remaining fuel drops below the cutoff.
func (r *Rocket) thrust() float64 {
	if r.fuel <= 0 {
		return 0
	}
	base := r.fuelCapacity * thrustPerKgCapacity
	stageMultiplier := math.Pow(stageThrustBase, float64(r.stage))
	fuelEfficiency := math.Min(1, r.fuel/(r.fuelCapacity*lowFuelThrustCutoff))
	return base * stageMultiplier * fuelEfficiency
}

// currentMass returns the vehicle mass in kg including remaining fuel.
func (r *Rocket) currentMass() float64 {
	return r.fuelCapacity*dryMassFraction + r.fuel
}

// stageEfficiency is the fuel consumption divisor for the current stage.
func (r *Rocket) stageEfficiency() float64 {
	return math.Pow(stageEfficiencyBase, float64(r.stage-1))
}

// ShouldSeparateStage reports whether the fuel level has dropped below the
// separation threshold of the current stage. The threshold descends with
// each stage so that later stages separate on less remaining fuel.
func (r *Rocket) ShouldSeparateStage() bool {
	if r.stage >= r.totalStages {
		return false
	}
	threshold := 100 * float64(r.totalStages-r.stage+1) / float64(r.totalStages) / 2
	return r.FuelPercentage() <= threshold
}

// SeparateStage advances to the next stage and reports whether a separation
// occurred. It only moves the stage counter: thrust and consumption pick up
// the new stage on the next update.
func (r *Rocket) SeparateStage() bool {
	if r.stage >= r.totalStages {
		return false
	}
	r.stage++
	return true
}

// EstimatedRange returns a heuristic maximum range in km from the
// specification alone, independent of the current flight state.
func (r *Rocket) EstimatedRange() float64 {
	base := r.fuelCapacity / 1000 * rangePerThousandKg
	stageMultiplier := 1 + float64(r.totalStages-1)*rangeStageBonus
	speedMultiplier := r.maxSpeed / rangeSpeedNormalizer
	return base * stageMultiplier * speedMultiplier
}

// Name returns the rocket name.
func (r *Rocket) Name() string { return r.name }

// FuelCapacity returns the fuel capacity in kg.
func (r *Rocket) FuelCapacity() float64 { return r.fuelCapacity }

// MaxSpeed returns the maximum speed in km/h.
func (r *Rocket) MaxSpeed() float64 { return r.maxSpeed }

// TotalStages returns the number of stages.
func (r *Rocket) TotalStages() int { return r.totalStages }

// Fuel returns the remaining fuel in kg.
func (r *Rocket) Fuel() float64 { return r.fuel }

// FuelPercentage returns the remaining fuel as a percentage of capacity.
func (r *Rocket) FuelPercentage() float64 { return r.fuel / r.fuelCapacity * 100 }

// HasFuel reports whether any fuel remains.
func (r *Rocket) HasFuel() bool { return r.fuel > 0 }

// Speed returns the current speed in km/h.
func (r *Rocket) Speed() float64 { return r.speed }

// Altitude returns the current altitude in km.
func (r *Rocket) Altitude() float64 { return r.altitude }

// Stage returns the current stage, in [1, TotalStages].
func (r *Rocket) Stage() int { return r.stage }

// Launched reports whether the rocket has been launched.
func (r *Rocket) Launched() bool { return r.launched }

// String implements the Stringer interface.
func (r *Rocket) String() string {
	return fmt.Sprintf("Rocket{name=%s fuel=%.0fkg maxSpeed=%.0fkm/h stages=%d}",
		r.name, r.fuelCapacity, r.maxSpeed, r.totalStages)
}
