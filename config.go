package rocketsim

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

var (
	cfgLoaded = false
	config    = SimConfig{}
)

// RocketSpec is a rocket definition as it appears in the fleet section of
// the configuration file.
type RocketSpec struct {
	Name         string
	FuelCapacity float64 `mapstructure:"fuel_capacity"`
	MaxSpeed     float64 `mapstructure:"max_speed"`
	Stages       int
}

// TargetSpec is a target definition as it appears in the roster section of
// the configuration file.
type TargetSpec struct {
	Name     string
	Distance float64
}

// SimConfig holds the simulator configuration. Use Config to get the loaded
// instance instead of building one by hand.
type SimConfig struct {
	CrossSection     float64 // m^2
	DragCoeff        float64
	TelemetryEnabled bool
	TelemetryListen  string
	Fleet            []RocketSpec
	Roster           []TargetSpec
}

// Config returns the simulator configuration, loading it on first use.
func Config() SimConfig {
	return simConfig()
}

// simConfig loads the configuration on first call and caches it. The
// configuration file is optional: without RLSIM_CONFIG set every knob keeps
// its default, but a set RLSIM_CONFIG must point at a directory holding a
// readable conf.toml.
func simConfig() SimConfig {
	if cfgLoaded {
		return config
	}

	viper.SetDefault("aero.cross_section", 10.0)
	viper.SetDefault("aero.drag_coefficient", 0.3)
	viper.SetDefault("telemetry.enabled", false)
	viper.SetDefault("telemetry.listen", ":9099")

	if confPath := os.Getenv("RLSIM_CONFIG"); confPath != "" {
		viper.SetConfigName("conf")
		viper.AddConfigPath(confPath)
		if err := viper.ReadInConfig(); err != nil {
			panic(fmt.Errorf("%s/conf.toml not found", confPath))
		}
	}

	config = SimConfig{
		CrossSection:     viper.GetFloat64("aero.cross_section"),
		DragCoeff:        viper.GetFloat64("aero.drag_coefficient"),
		TelemetryEnabled: viper.GetBool("telemetry.enabled"),
		TelemetryListen:  viper.GetString("telemetry.listen"),
	}
	if err := viper.UnmarshalKey("fleet", &config.Fleet); err != nil {
		panic(fmt.Errorf("invalid fleet section: %s", err))
	}
	if err := viper.UnmarshalKey("roster", &config.Roster); err != nil {
		panic(fmt.Errorf("invalid roster section: %s", err))
	}
	cfgLoaded = true
	return config
}
