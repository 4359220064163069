package rocketsim

/* Immutable snapshots handed to the presentation layer. */

// PreLaunchCheckResult reports mission readiness. The Reachability and
// Orbital analyses are only present when both a rocket and a target are set.
type PreLaunchCheckResult struct {
	HasRocket      bool
	HasTarget      bool
	RocketName     string
	TargetName     string
	TargetDistance float64 // km
	EstimatedRange float64 // km
	Reachable      bool
	Shortfall      float64 // km/s of Δv missing, zero when reachable

	Reachability *ReachabilityAnalysis
	Orbital      *OrbitalAnalysis
}

// FlightStatus is a live snapshot of an in-flight rocket. The zero value is
// returned when no mission is in flight.
type FlightStatus struct {
	Stage          int
	FuelPercentage float64
	Altitude       float64 // km
	Speed          float64 // km/h
	StageSeparated bool    // a separation occurred during the last update call
}

// MissionResult is the outcome of a completed mission. The Orbital analysis
// of the final state is present on completion and nil on the placeholder
// returned by Launch.
type MissionResult struct {
	Successful       bool
	FinalAltitude    float64 // km
	FinalSpeed       float64 // km/h
	FinalVelocity    float64 // km/s
	MissionDuration  int     // seconds
	TargetDistance   float64 // km
	DistanceToTarget float64 // km remaining, zero on success
	MaxAltitude      float64 // km, highest point reached

	Orbital *OrbitalAnalysis
}

// AchievedOrbit reports whether the final velocity sufficed for a stable
// orbit at the final altitude.
func (mr MissionResult) AchievedOrbit() bool {
	return mr.Orbital != nil && mr.Orbital.CanOrbit
}

// AchievedEscape reports whether the final velocity reached escape velocity
// at the final altitude.
func (mr MissionResult) AchievedEscape() bool {
	return mr.Orbital != nil && mr.Orbital.CanEscape
}
