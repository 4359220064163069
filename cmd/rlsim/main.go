package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	kitlog "github.com/go-kit/kit/log"
	"github.com/spf13/cobra"

	"github.com/astroforge/rocketsim"
	"github.com/astroforge/rocketsim/telemetry"
)

var (
	configDir       string
	telemetryListen string
)

var rootCmd = &cobra.Command{
	Use:   "rlsim",
	Short: "rlsim simulates rocket launches against orbital targets.",
	Long: `rlsim runs second-by-second launch simulations: build a fleet of rockets,
pick a target at a given distance from Earth, run the pre-launch feasibility
analysis and fly the mission. Live flight data can be exposed as Prometheus
gauges with --telemetry.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if configDir != "" {
			os.Setenv("RLSIM_CONFIG", configDir)
		}
	},
}

var physicsCmd = &cobra.Command{
	Use:   "physics [altitude-km]",
	Short: "Print the reference physics values at an altitude",
	Long: `Prints gravitational acceleration, atmospheric density, orbital velocity
and escape velocity at the given altitude (default: sea level).`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		altitude := 0.0
		if len(args) == 1 {
			if _, err := fmt.Sscanf(args[0], "%f", &altitude); err != nil {
				cmd.SilenceUsage = true
				return fmt.Errorf("invalid altitude %q: %s", args[0], err)
			}
		}
		if altitude < 0 {
			cmd.SilenceUsage = true
			return fmt.Errorf("altitude cannot be negative (got %f)", altitude)
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "altitude\t%.1f km\n", altitude)
		fmt.Fprintf(w, "gravity\t%.4f m/s^2\n", rocketsim.GravitationalAcceleration(altitude))
		fmt.Fprintf(w, "air density\t%.6f kg/m^3\n", rocketsim.AtmosphericDensity(altitude))
		fmt.Fprintf(w, "orbital velocity\t%.3f km/s\n", rocketsim.OrbitalVelocity(altitude))
		fmt.Fprintf(w, "escape velocity\t%.3f km/s\n", rocketsim.EscapeVelocity(altitude))
		return w.Flush()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "directory holding conf.toml (overrides RLSIM_CONFIG)")
	rootCmd.AddCommand(physicsCmd, consoleCmd)
}

// newLogger builds the logfmt logger every subsystem shares.
func newLogger() kitlog.Logger {
	return kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
}

// startTelemetry serves the Prometheus endpoint when enabled by flag or
// configuration and returns the listen address, or "" when disabled.
func startTelemetry(logger kitlog.Logger) string {
	cfg := rocketsim.Config()
	addr := telemetryListen
	if addr == "" && cfg.TelemetryEnabled {
		addr = cfg.TelemetryListen
	}
	if addr == "" {
		return ""
	}
	go func() {
		if err := telemetry.Serve(addr); err != nil {
			logger.Log("level", "error", "subsys", "telemetry", "err", err)
		}
	}()
	logger.Log("level", "info", "subsys", "telemetry", "listen", addr)
	return addr
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
