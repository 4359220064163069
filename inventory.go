package rocketsim

import (
	"fmt"
	"sort"
	"strings"

	kitlog "github.com/go-kit/kit/log"
)

/* Named registries for the fleet and the target roster. */

// RocketInventory holds the available rockets, keyed by name.
type RocketInventory struct {
	rockets map[string]*Rocket
	logger  kitlog.Logger
}

// NewRocketInventory returns an empty rocket inventory.
func NewRocketInventory(logger kitlog.Logger) *RocketInventory {
	if logger == nil {
		logger = kitlog.NewNopLogger()
	}
	return &RocketInventory{rockets: make(map[string]*Rocket), logger: logger}
}

// Create builds a rocket, validates it and adds it to the inventory. A name
// already in use is rejected.
func (inv *RocketInventory) Create(name string, fuelCapacity, maxSpeed float64, totalStages int) (*Rocket, error) {
	r, err := NewRocket(name, fuelCapacity, maxSpeed, totalStages)
	if err != nil {
		return nil, err
	}
	if _, found := inv.rockets[r.Name()]; found {
		return nil, fmt.Errorf("rocket %s already exists", r.Name())
	}
	inv.rockets[r.Name()] = r
	inv.logger.Log("level", "info", "subsys", "inventory", "rocket", r.Name(),
		"fuel(kg)", fuelCapacity, "maxSpeed(km/h)", maxSpeed, "stages", totalStages)
	return r, nil
}

// Delete removes the named rocket and reports whether it existed.
func (inv *RocketInventory) Delete(name string) bool {
	name = strings.TrimSpace(name)
	if _, found := inv.rockets[name]; !found {
		return false
	}
	delete(inv.rockets, name)
	inv.logger.Log("level", "info", "subsys", "inventory", "deleted", name)
	return true
}

// Get returns the named rocket.
func (inv *RocketInventory) Get(name string) (*Rocket, bool) {
	r, found := inv.rockets[strings.TrimSpace(name)]
	return r, found
}

// Names returns the rocket names in sorted order.
func (inv *RocketInventory) Names() []string {
	names := make([]string, 0, len(inv.rockets))
	for name := range inv.rockets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns the rockets sorted by name.
func (inv *RocketInventory) All() []*Rocket {
	all := make([]*Rocket, 0, len(inv.rockets))
	for _, name := range inv.Names() {
		all = append(all, inv.rockets[name])
	}
	return all
}

// Len returns the number of rockets.
func (inv *RocketInventory) Len() int { return len(inv.rockets) }

// TargetInventory holds the known targets, keyed by name.
type TargetInventory struct {
	targets map[string]*Target
	logger  kitlog.Logger
}

// NewTargetInventory returns an empty target inventory.
func NewTargetInventory(logger kitlog.Logger) *TargetInventory {
	if logger == nil {
		logger = kitlog.NewNopLogger()
	}
	return &TargetInventory{targets: make(map[string]*Target), logger: logger}
}

// Create builds a target, validates it and adds it to the inventory. A name
// already in use is rejected.
func (inv *TargetInventory) Create(name string, distanceFromEarth float64) (*Target, error) {
	t, err := NewTarget(name, distanceFromEarth)
	if err != nil {
		return nil, err
	}
	if _, found := inv.targets[t.Name()]; found {
		return nil, fmt.Errorf("target %s already exists", t.Name())
	}
	inv.targets[t.Name()] = t
	inv.logger.Log("level", "info", "subsys", "inventory", "target", t.Name(), "distance(km)", distanceFromEarth)
	return t, nil
}

// Delete removes the named target and reports whether it existed.
func (inv *TargetInventory) Delete(name string) bool {
	name = strings.TrimSpace(name)
	if _, found := inv.targets[name]; !found {
		return false
	}
	delete(inv.targets, name)
	inv.logger.Log("level", "info", "subsys", "inventory", "deleted", name)
	return true
}

// Get returns the named target.
func (inv *TargetInventory) Get(name string) (*Target, bool) {
	t, found := inv.targets[strings.TrimSpace(name)]
	return t, found
}

// Names returns the target names in sorted order.
func (inv *TargetInventory) Names() []string {
	names := make([]string, 0, len(inv.targets))
	for name := range inv.targets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns the targets sorted by name.
func (inv *TargetInventory) All() []*Target {
	all := make([]*Target, 0, len(inv.targets))
	for _, name := range inv.Names() {
		all = append(all, inv.targets[name])
	}
	return all
}

// Len returns the number of targets.
func (inv *TargetInventory) Len() int { return len(inv.targets) }
