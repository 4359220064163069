package rocketsim

import (
	"errors"
	"fmt"
	"math"
	"os"

	kitlog "github.com/go-kit/kit/log"
)

// ErrInvalidState is wrapped by every state-violation error: an operation
// attempted in a mission state which forbids it.
var ErrInvalidState = errors.New("invalid operation for current mission state")

// MissionState defines an enum of controller states.
type MissionState uint8

const (
	// Idle means ready for mission setup.
	Idle MissionState = iota + 1
	// InFlight means a mission is in progress.
	InFlight
	// Completed means the mission has finished.
	Completed
)

func (s MissionState) String() string {
	switch s {
	case Idle:
		return "Idle - ready for mission setup"
	case InFlight:
		return "In flight - mission in progress"
	case Completed:
		return "Completed - mission finished"
	}
	panic(fmt.Errorf("cannot stringify unknown mission state %d", uint8(s)))
}

/* Sequences a single mission from setup through completion. */

// Controller runs one mission at a time: pre-launch analysis, launch, a
// second-by-second simulation advance, and completion. It owns the mission
// state machine and is the only component which mutates the mission record.
type Controller struct {
	rocket *Rocket
	target *Target

	state          MissionState
	missionTime    int     // seconds since launch
	maxAltitude    float64 // km, highest point reached this mission
	stageSeparated bool    // a separation happened during the current advance
	finalResult    *MissionResult

	logger kitlog.Logger
}

// NewController returns an idle controller. A nil logger gets a logfmt
// logger on stdout.
func NewController(logger kitlog.Logger) *Controller {
	if logger == nil {
		logger = kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	}
	return &Controller{state: Idle, logger: logger}
}

// SetRocket assigns the rocket for the next mission and resets its flight
// state. Fails while a mission is in flight.
func (c *Controller) SetRocket(r *Rocket) error {
	if c.state == InFlight {
		return fmt.Errorf("%w: cannot change rocket during an active mission", ErrInvalidState)
	}
	c.rocket = r
	if r != nil {
		r.ResetState()
		c.logger.Log("level", "info", "subsys", "mission", "rocket", r.Name())
	}
	return nil
}

// SetTarget assigns the target for the next mission. Fails while a mission
// is in flight.
func (c *Controller) SetTarget(t *Target) error {
	if c.state == InFlight {
		return fmt.Errorf("%w: cannot change target during an active mission", ErrInvalidState)
	}
	c.target = t
	if t != nil {
		c.logger.Log("level", "info", "subsys", "mission", "target", t.Name(), "distance(km)", t.DistanceFromEarth())
	}
	return nil
}

// PerformPreLaunchChecks reports mission readiness. Valid in any state; the
// reachability and orbital analyses are only computed once both a rocket and
// a target are set.
func (c *Controller) PerformPreLaunchChecks() PreLaunchCheckResult {
	res := PreLaunchCheckResult{
		HasRocket: c.rocket != nil,
		HasTarget: c.target != nil,
	}
	if res.HasRocket {
		res.RocketName = c.rocket.Name()
		res.EstimatedRange = c.rocket.EstimatedRange()
	}
	if res.HasTarget {
		res.TargetName = c.target.Name()
		res.TargetDistance = c.target.DistanceFromEarth()
	}
	if res.HasRocket && res.HasTarget {
		reach := AnalyzeReachability(c.rocket, c.target)
		// The final velocity is unknown before flight; assume the vehicle
		// tops out at 80% of its rated speed by the time it arrives.
		estFinalV := c.rocket.MaxSpeed() / 3600 * 0.8
		orbital := AnalyzeOrbitalCapability(estFinalV, res.TargetDistance)
		res.Reachability = &reach
		res.Orbital = &orbital
		res.Reachable = reach.CanReachTarget
		res.Shortfall = reach.DeltaVDeficit()
	}
	return res
}

// Launch starts the mission: the rocket is reset, the accumulators are
// zeroed and the state moves to InFlight. The returned MissionResult is a
// placeholder carrying only the target distance; callers drive
// UpdateSimulation and read FinalResult once the state reaches Completed.
func (c *Controller) Launch() (MissionResult, error) {
	if c.rocket == nil || c.target == nil {
		return MissionResult{}, fmt.Errorf("%w: both a rocket and a target must be selected before launch", ErrInvalidState)
	}
	if c.state == InFlight {
		return MissionResult{}, fmt.Errorf("%w: a mission is already in progress", ErrInvalidState)
	}

	c.rocket.ResetState()
	c.missionTime = 0
	c.maxAltitude = 0
	c.stageSeparated = false
	c.finalResult = nil

	if err := c.rocket.Launch(); err != nil {
		return MissionResult{}, err
	}
	c.state = InFlight

	c.logger.Log("level", "notice", "subsys", "mission", "status", "launched",
		"rocket", c.rocket.Name(), "target", c.target.Name(), "distance(km)", c.target.DistanceFromEarth())

	return MissionResult{TargetDistance: c.target.DistanceFromEarth()}, nil
}

// UpdateSimulation advances the mission by Δt whole seconds, one second at a
// time. The mission completes as soon as the rocket stops flying or reaches
// the target distance; remaining requested seconds are discarded. No-op
// unless a mission is in flight.
func (c *Controller) UpdateSimulation(Δt int) {
	if c.state != InFlight {
		return
	}

	c.stageSeparated = false

	for i := 0; i < Δt; i++ {
		c.missionTime++

		if c.rocket.ShouldSeparateStage() && c.rocket.SeparateStage() {
			c.stageSeparated = true
			c.logger.Log("level", "info", "subsys", "mission", "separation", c.rocket.Stage(),
				"fuel(%)", c.rocket.FuelPercentage(), "t(s)", c.missionTime)
		}

		stillFlying := c.rocket.Update(1.0)
		if c.rocket.Altitude() > c.maxAltitude {
			c.maxAltitude = c.rocket.Altitude()
		}

		if !stillFlying || c.rocket.Altitude() >= c.target.DistanceFromEarth() {
			c.completeMission()
			break
		}
	}
}

// completeMission freezes the final result and moves the state to Completed.
func (c *Controller) completeMission() {
	c.state = Completed

	finalAltitude := c.rocket.Altitude()
	finalSpeed := c.rocket.Speed()
	finalVelocity := finalSpeed / 3600 // km/s
	targetDistance := c.target.DistanceFromEarth()
	successful := finalAltitude >= targetDistance
	orbital := AnalyzeOrbitalCapability(finalVelocity, finalAltitude)

	c.finalResult = &MissionResult{
		Successful:       successful,
		FinalAltitude:    finalAltitude,
		FinalSpeed:       finalSpeed,
		FinalVelocity:    finalVelocity,
		MissionDuration:  c.missionTime,
		TargetDistance:   targetDistance,
		DistanceToTarget: math.Max(0, targetDistance-finalAltitude),
		MaxAltitude:      c.maxAltitude,
		Orbital:          &orbital,
	}

	c.logger.Log("level", "notice", "subsys", "mission", "status", "completed",
		"success", successful, "altitude(km)", finalAltitude, "duration(s)", c.missionTime)
}

// FlightStatus returns a live snapshot while in flight, and the zero status
// otherwise.
func (c *Controller) FlightStatus() FlightStatus {
	if c.state != InFlight {
		return FlightStatus{}
	}
	return FlightStatus{
		Stage:          c.rocket.Stage(),
		FuelPercentage: c.rocket.FuelPercentage(),
		Altitude:       c.rocket.Altitude(),
		Speed:          c.rocket.Speed(),
		StageSeparated: c.stageSeparated,
	}
}

// FinalResult returns the completion result, or false while the mission has
// not completed.
func (c *Controller) FinalResult() (MissionResult, bool) {
	if c.finalResult == nil {
		return MissionResult{}, false
	}
	return *c.finalResult, true
}

// State returns the current mission state.
func (c *Controller) State() MissionState { return c.state }

// IsInFlight reports whether a mission is in progress.
func (c *Controller) IsInFlight() bool { return c.state == InFlight }

// MissionTime returns the elapsed mission time in seconds.
func (c *Controller) MissionTime() int { return c.missionTime }

// Rocket returns the assigned rocket, which may be nil.
func (c *Controller) Rocket() *Rocket { return c.rocket }

// Target returns the assigned target, which may be nil.
func (c *Controller) Target() *Target { return c.target }
