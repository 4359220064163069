package rocketsim

import (
	"os"
	"testing"
)

func TestConfigDefaults(t *testing.T) {
	if os.Getenv("RLSIM_CONFIG") != "" {
		t.Skip("RLSIM_CONFIG is set, defaults are not in effect")
	}
	cfg := Config()
	if cfg.CrossSection != 10 {
		t.Fatalf("default cross section = %f", cfg.CrossSection)
	}
	if cfg.DragCoeff != 0.3 {
		t.Fatalf("default drag coefficient = %f", cfg.DragCoeff)
	}
	if cfg.TelemetryEnabled {
		t.Fatal("telemetry enabled by default")
	}
	if cfg.TelemetryListen != ":9099" {
		t.Fatalf("default telemetry address = %q", cfg.TelemetryListen)
	}
	if len(cfg.Fleet) != 0 || len(cfg.Roster) != 0 {
		t.Fatalf("default fleet/roster not empty: %d/%d", len(cfg.Fleet), len(cfg.Roster))
	}
	// The loader caches: a second call returns the same configuration.
	if again := Config(); again.CrossSection != cfg.CrossSection || again.DragCoeff != cfg.DragCoeff {
		t.Fatal("cached configuration differs")
	}
}
