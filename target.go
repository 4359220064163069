package rocketsim

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// DifficultyLevel bands targets by their distance from Earth.
type DifficultyLevel uint8

const (
	// Easy is low Earth orbit territory.
	Easy DifficultyLevel = iota + 1
	// Medium is beyond LEO.
	Medium
	// Hard is interplanetary.
	Hard
	// Extreme is deep space.
	Extreme
)

func (d DifficultyLevel) String() string {
	switch d {
	case Easy:
		return "Easy - Low Earth Orbit"
	case Medium:
		return "Medium - Beyond LEO"
	case Hard:
		return "Hard - Interplanetary"
	case Extreme:
		return "Extreme - Deep Space"
	}
	panic(fmt.Errorf("cannot stringify unknown difficulty level %d", uint8(d)))
}

// Target is an immutable mission destination at a fixed distance from Earth.
type Target struct {
	name              string
	distanceFromEarth float64 // km
}

// NewTarget returns a new target destination.
func NewTarget(name string, distanceFromEarth float64) (*Target, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("target name cannot be empty")
	}
	if distanceFromEarth < 0 {
		return nil, fmt.Errorf("distance cannot be negative (got %f)", distanceFromEarth)
	}
	return &Target{name: name, distanceFromEarth: distanceFromEarth}, nil
}

// Name returns the target name.
func (t *Target) Name() string { return t.name }

// DistanceFromEarth returns the distance in km.
func (t *Target) DistanceFromEarth() float64 { return t.distanceFromEarth }

// Difficulty bands the target by distance.
func (t *Target) Difficulty() DifficultyLevel {
	switch {
	case t.distanceFromEarth <= 1000:
		return Easy
	case t.distanceFromEarth <= 50000:
		return Medium
	case t.distanceFromEarth <= 1000000:
		return Hard
	default:
		return Extreme
	}
}

// FormattedDistance renders the distance with units fit for its magnitude.
func (t *Target) FormattedDistance() string {
	switch {
	case t.distanceFromEarth < 1000:
		return fmt.Sprintf("%.1f km", t.distanceFromEarth)
	case t.distanceFromEarth < 1000000:
		return fmt.Sprintf("%.0f km", t.distanceFromEarth)
	default:
		return fmt.Sprintf("%.2f million km", t.distanceFromEarth/1000000)
	}
}

// ReachableBy reports whether a rocket with the given estimated range can
// reach this target.
func (t *Target) ReachableBy(rocketRange float64) bool {
	return rocketRange >= t.distanceFromEarth
}

// Shortfall returns how many km short the given range falls, or zero.
func (t *Target) Shortfall(rocketRange float64) float64 {
	return math.Max(0, t.distanceFromEarth-rocketRange)
}

// String implements the Stringer interface.
func (t *Target) String() string {
	return fmt.Sprintf("Target{name=%s distance=%s difficulty=%s}", t.name, t.FormattedDistance(), t.Difficulty())
}
