package rocketsim

import (
	"fmt"
	"math"
)

/* Point-mass physics over an idealized spherical Earth. */

const (
	// EarthMass is the mass of the Earth in kg.
	EarthMass = 5.972e24
	// EarthRadius is the mean radius of the Earth in km.
	EarthRadius = 6371.0
	// GravitationalConst is G in m^3 kg^-1 s^-2.
	GravitationalConst = 6.67430e-11
	// AtmosphereCeiling is the Karman line in km: no drag above it.
	AtmosphereCeiling = 100.0
	// SeaLevelDensity is ρ0 in kg/m^3.
	SeaLevelDensity = 1.225
	// ScaleHeight of the exponential atmosphere in km.
	ScaleHeight = 8.4

	g0 = 9.80665 // standard gravity, m/s^2

	velocityε = 1e-9 // km/s
)

// EscapeVelocity returns the escape velocity in km/s at the given altitude in km.
func EscapeVelocity(altitude float64) float64 {
	r := (EarthRadius + altitude) * 1000
	return math.Sqrt(2*GravitationalConst*EarthMass/r) / 1000
}

// OrbitalVelocity returns the circular orbital velocity in km/s at the given altitude in km.
func OrbitalVelocity(altitude float64) float64 {
	r := (EarthRadius + altitude) * 1000
	return math.Sqrt(GravitationalConst*EarthMass/r) / 1000
}

// GravitationalAcceleration returns g in m/s^2 at the given altitude in km.
func GravitationalAcceleration(altitude float64) float64 {
	r := (EarthRadius + altitude) * 1000
	return GravitationalConst * EarthMass / (r * r)
}

// AtmosphericDensity returns ρ in kg/m^3 at the given altitude in km.
// The model is exponential up to the Karman line and zero above it.
func AtmosphericDensity(altitude float64) float64 {
	if altitude > AtmosphereCeiling {
		return 0
	}
	return SeaLevelDensity * math.Exp(-altitude/ScaleHeight)
}

// DragForce returns the drag force in Newtons for a velocity in km/s at the
// given altitude, with the provided cross section (m^2) and drag coefficient.
func DragForce(velocity, altitude, crossSection, dragCoeff float64) float64 {
	ρ := AtmosphericDensity(altitude)
	v := velocity * 1000 // m/s
	return 0.5 * ρ * v * v * dragCoeff * crossSection
}

// OrbitalStatus defines an enum of trajectory regimes.
type OrbitalStatus uint8

const (
	// Suborbital means the vehicle will fall back to Earth.
	Suborbital OrbitalStatus = iota + 1
	// StableOrbit means the vehicle is circling Earth.
	StableOrbit
	// EscapeTrajectory means the vehicle is leaving Earth's gravity well.
	EscapeTrajectory
)

func (s OrbitalStatus) String() string {
	switch s {
	case Suborbital:
		return "Suborbital - will fall back to Earth"
	case StableOrbit:
		return "Stable orbit - circling Earth"
	case EscapeTrajectory:
		return "Escape trajectory - leaving Earth's gravity well"
	}
	panic(fmt.Errorf("cannot stringify unknown orbital status %d", uint8(s)))
}

// OrbitalAnalysis reports whether a given speed suffices to orbit or escape
// at a given altitude, and by how much it falls short.
type OrbitalAnalysis struct {
	CanOrbit                bool
	CanEscape               bool
	Status                  OrbitalStatus
	RequiredOrbitalVelocity float64 // km/s
	RequiredEscapeVelocity  float64 // km/s
	VelocityDeficit         float64 // km/s short of orbit, never negative
	EscapeDeficit           float64 // km/s short of escape, never negative
}

// AnalyzeOrbitalCapability classifies the trajectory of a vehicle moving at
// speed km/s at the given altitude in km.
func AnalyzeOrbitalCapability(speed, altitude float64) OrbitalAnalysis {
	orbitalV := OrbitalVelocity(altitude)
	escapeV := EscapeVelocity(altitude)

	canOrbit := speed >= orbitalV
	canEscape := speed >= escapeV

	status := Suborbital
	if canEscape {
		status = EscapeTrajectory
	} else if canOrbit {
		status = StableOrbit
	}

	return OrbitalAnalysis{
		CanOrbit:                canOrbit,
		CanEscape:               canEscape,
		Status:                  status,
		RequiredOrbitalVelocity: orbitalV,
		RequiredEscapeVelocity:  escapeV,
		VelocityDeficit:         math.Max(0, orbitalV-speed),
		EscapeDeficit:           math.Max(0, escapeV-speed),
	}
}

// RequiredDeltaV returns the Δv in km/s for a simplified two-burn Hohmann
// transfer between circular orbits at the two altitudes (km): vis-viva at
// both ends of the transfer ellipse, summed against the circular velocities.
func RequiredDeltaV(startAltitude, targetAltitude float64) float64 {
	startOrbitalV := OrbitalVelocity(startAltitude)
	targetOrbitalV := OrbitalVelocity(targetAltitude)

	rP := (EarthRadius + math.Min(startAltitude, targetAltitude)) * 1000
	rA := (EarthRadius + math.Max(startAltitude, targetAltitude)) * 1000
	a := (rP + rA) / 2

	μ := GravitationalConst * EarthMass
	vDeparture := math.Sqrt(μ*(2/rP-1/a)) / 1000
	vArrival := math.Sqrt(μ*(2/rA-1/a)) / 1000

	Δv1 := math.Abs(vDeparture - startOrbitalV)
	Δv2 := math.Abs(targetOrbitalV - vArrival)
	return Δv1 + Δv2
}

// ReachabilityAnalysis compares the Δv budget a rocket can plausibly deliver
// against what the target requires.
type ReachabilityAnalysis struct {
	CanReachTarget          bool
	CanOrbitTarget          bool
	CanEscapeEarth          bool
	RequiredDeltaV          float64 // km/s, surface to target distance
	AchievableVelocity      float64 // km/s, from the rocket equation
	RequiredOrbitalVelocity float64 // km/s at target distance
	RequiredEscapeVelocity  float64 // km/s at the surface
}

// DeltaVDeficit returns how many km/s the rocket is short of the required Δv.
func (ra ReachabilityAnalysis) DeltaVDeficit() float64 {
	return math.Max(0, ra.RequiredDeltaV-ra.AchievableVelocity)
}

// AnalyzeReachability estimates whether the rocket can reach, orbit at, or
// escape toward the target distance.
func AnalyzeReachability(r *Rocket, t *Target) ReachabilityAnalysis {
	d := t.DistanceFromEarth()

	requiredEscapeV := EscapeVelocity(0)
	requiredOrbitalV := OrbitalVelocity(d)
	requiredΔv := RequiredDeltaV(0, d)
	achievable := achievableVelocity(r)

	return ReachabilityAnalysis{
		CanReachTarget:          achievable >= requiredΔv,
		CanOrbitTarget:          achievable >= requiredOrbitalV,
		CanEscapeEarth:          achievable >= requiredEscapeV,
		RequiredDeltaV:          requiredΔv,
		AchievableVelocity:      achievable,
		RequiredOrbitalVelocity: requiredOrbitalV,
		RequiredEscapeVelocity:  requiredEscapeV,
	}
}

// achievableVelocity applies the ideal rocket equation Δv = Isp·g0·ln(m0/mf)
// with Isp and mass ratio estimated from the rocket's specification.
func achievableVelocity(r *Rocket) float64 {
	isp := estimateSpecificImpulse(r)
	massRatio := estimateMassRatio(r)
	return isp * (g0 / 1000) * math.Log(massRatio)
}

// estimateSpecificImpulse guesses an Isp in seconds from the stage count and
// fuel capacity, clamped to the plausible chemical-propulsion band.
func estimateSpecificImpulse(r *Rocket) float64 {
	baseIsp := 300.0
	stageBonus := float64(r.TotalStages()-1) * 50
	fuelBonus := math.Log(r.FuelCapacity()/100000) * 20
	return math.Max(250, math.Min(450, baseIsp+stageBonus+fuelBonus))
}

// estimateMassRatio guesses m0/mf from the stage count: staging discards dead
// weight, so each extra stage compounds the ratio.
func estimateMassRatio(r *Rocket) float64 {
	baseRatio := 3.0
	stageMultiplier := math.Pow(2.5, float64(r.TotalStages()-1))
	return math.Min(20, baseRatio*stageMultiplier)
}
