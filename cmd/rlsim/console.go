package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	kitlog "github.com/go-kit/kit/log"
	"github.com/spf13/cobra"

	"github.com/astroforge/rocketsim"
	"github.com/astroforge/rocketsim/telemetry"
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Run the interactive mission console",
	Long: `Starts an interactive console: manage the rocket fleet and the target
roster, select a pairing, run pre-launch checks and fly missions. Type
"help" at the prompt for the command list.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newConsole(newLogger())
		return c.run()
	},
}

func init() {
	consoleCmd.Flags().StringVar(&telemetryListen, "telemetry", "", "serve Prometheus gauges on this address (e.g. :9099)")
}

type console struct {
	rockets    *rocketsim.RocketInventory
	targets    *rocketsim.TargetInventory
	controller *rocketsim.Controller
	logger     kitlog.Logger
	telemetry  bool
	out        *bufio.Writer
}

func newConsole(logger kitlog.Logger) *console {
	c := &console{
		rockets:    rocketsim.NewRocketInventory(logger),
		targets:    rocketsim.NewTargetInventory(logger),
		controller: rocketsim.NewController(logger),
		logger:     logger,
		out:        bufio.NewWriter(os.Stdout),
	}
	c.seed()
	return c
}

// seed loads the default fleet and roster, then anything the configuration
// file adds on top. Seeding errors only happen on bad config entries.
func (c *console) seed() {
	defaults := []rocketsim.RocketSpec{
		{Name: "Falcon Heavy", FuelCapacity: 1400000, MaxSpeed: 39600, Stages: 2},
		{Name: "Saturn V", FuelCapacity: 2600000, MaxSpeed: 40000, Stages: 3},
		{Name: "Starship", FuelCapacity: 3400000, MaxSpeed: 27000, Stages: 2},
	}
	roster := []rocketsim.TargetSpec{
		{Name: "Earth Orbit", Distance: 408},
		{Name: "Moon", Distance: 384400},
		{Name: "Mars", Distance: 54600000},
	}
	cfg := rocketsim.Config()
	for _, spec := range append(defaults, cfg.Fleet...) {
		if _, err := c.rockets.Create(spec.Name, spec.FuelCapacity, spec.MaxSpeed, spec.Stages); err != nil {
			c.logger.Log("level", "warning", "subsys", "console", "seed", spec.Name, "err", err)
		}
	}
	for _, spec := range append(roster, cfg.Roster...) {
		if _, err := c.targets.Create(spec.Name, spec.Distance); err != nil {
			c.logger.Log("level", "warning", "subsys", "console", "seed", spec.Name, "err", err)
		}
	}
}

func (c *console) run() error {
	c.telemetry = startTelemetry(c.logger) != ""

	fmt.Fprintln(c.out, "rlsim mission console. Type \"help\" for commands.")
	c.out.Flush()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Fprint(c.out, "rlsim> ")
		c.out.Flush()
		if !scanner.Scan() {
			fmt.Fprintln(c.out)
			c.out.Flush()
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]
		if cmd == "exit" || cmd == "quit" {
			return nil
		}
		if err := c.dispatch(cmd, args); err != nil {
			fmt.Fprintf(c.out, "error: %s\n", err)
		}
		c.out.Flush()
	}
}

func (c *console) dispatch(cmd string, args []string) error {
	switch cmd {
	case "help":
		c.printHelp()
	case "create_rocket":
		return c.createRocket(args)
	case "delete_rocket":
		return c.deleteByName(args, "rocket", func(name string) bool { return c.rockets.Delete(name) })
	case "list_rockets":
		c.listRockets()
	case "create_target":
		return c.createTarget(args)
	case "delete_target":
		return c.deleteByName(args, "target", func(name string) bool { return c.targets.Delete(name) })
	case "list_targets":
		c.listTargets()
	case "select_rocket":
		return c.selectRocket(args)
	case "select_target":
		return c.selectTarget(args)
	case "checks":
		c.printChecks()
	case "physics":
		return c.printPhysics(args)
	case "launch":
		return c.launch()
	case "fast_forward":
		return c.fastForward(args)
	case "status":
		c.printStatus()
	default:
		return fmt.Errorf("unknown command %q, type \"help\"", cmd)
	}
	return nil
}

func (c *console) printHelp() {
	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "create_rocket <name> <fuel-kg> <max-km/h> <stages>\tadd a rocket to the fleet")
	fmt.Fprintln(w, "delete_rocket <name>\tremove a rocket")
	fmt.Fprintln(w, "list_rockets\tshow the fleet")
	fmt.Fprintln(w, "create_target <name> <distance-km>\tadd a target to the roster")
	fmt.Fprintln(w, "delete_target <name>\tremove a target")
	fmt.Fprintln(w, "list_targets\tshow the roster")
	fmt.Fprintln(w, "select_rocket <name>\tassign the mission rocket")
	fmt.Fprintln(w, "select_target <name>\tassign the mission target")
	fmt.Fprintln(w, "checks\trun the pre-launch feasibility analysis")
	fmt.Fprintln(w, "physics [altitude-km]\tprint reference physics values")
	fmt.Fprintln(w, "launch\tfly the mission in real time")
	fmt.Fprintln(w, "fast_forward <seconds>\tadvance an in-flight mission instantly")
	fmt.Fprintln(w, "status\tshow the mission state")
	fmt.Fprintln(w, "exit\tleave the console")
	w.Flush()
}

func (c *console) createRocket(args []string) error {
	if len(args) < 4 {
		return fmt.Errorf("usage: create_rocket <name> <fuel-kg> <max-km/h> <stages>")
	}
	// The name may hold spaces; the three numbers are always last.
	n := len(args)
	name := strings.Join(args[:n-3], " ")
	fuel, err := strconv.ParseFloat(args[n-3], 64)
	if err != nil {
		return fmt.Errorf("invalid fuel capacity %q", args[n-3])
	}
	maxSpeed, err := strconv.ParseFloat(args[n-2], 64)
	if err != nil {
		return fmt.Errorf("invalid max speed %q", args[n-2])
	}
	stages, err := strconv.Atoi(args[n-1])
	if err != nil {
		return fmt.Errorf("invalid stage count %q", args[n-1])
	}
	r, err := c.rockets.Create(name, fuel, maxSpeed, stages)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "created %s (estimated range %.0f km)\n", r.Name(), r.EstimatedRange())
	return nil
}

func (c *console) createTarget(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: create_target <name> <distance-km>")
	}
	n := len(args)
	name := strings.Join(args[:n-1], " ")
	distance, err := strconv.ParseFloat(args[n-1], 64)
	if err != nil {
		return fmt.Errorf("invalid distance %q", args[n-1])
	}
	t, err := c.targets.Create(name, distance)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "created %s at %s (%s)\n", t.Name(), t.FormattedDistance(), t.Difficulty())
	return nil
}

func (c *console) deleteByName(args []string, kind string, del func(string) bool) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: delete_%s <name>", kind)
	}
	name := strings.Join(args, " ")
	if !del(name) {
		return fmt.Errorf("no %s named %q", kind, name)
	}
	fmt.Fprintf(c.out, "deleted %s\n", name)
	return nil
}

func (c *console) listRockets() {
	if c.rockets.Len() == 0 {
		fmt.Fprintln(c.out, "the fleet is empty")
		return
	}
	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tFUEL (kg)\tMAX SPEED (km/h)\tSTAGES\tEST. RANGE (km)")
	for _, r := range c.rockets.All() {
		fmt.Fprintf(w, "%s\t%.0f\t%.0f\t%d\t%.0f\n",
			r.Name(), r.FuelCapacity(), r.MaxSpeed(), r.TotalStages(), r.EstimatedRange())
	}
	w.Flush()
}

func (c *console) listTargets() {
	if c.targets.Len() == 0 {
		fmt.Fprintln(c.out, "the roster is empty")
		return
	}
	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDISTANCE\tDIFFICULTY")
	for _, t := range c.targets.All() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", t.Name(), t.FormattedDistance(), t.Difficulty())
	}
	w.Flush()
}

func (c *console) selectRocket(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: select_rocket <name>")
	}
	name := strings.Join(args, " ")
	r, found := c.rockets.Get(name)
	if !found {
		return fmt.Errorf("no rocket named %q", name)
	}
	if err := c.controller.SetRocket(r); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "mission rocket: %s\n", r.Name())
	return nil
}

func (c *console) selectTarget(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: select_target <name>")
	}
	name := strings.Join(args, " ")
	t, found := c.targets.Get(name)
	if !found {
		return fmt.Errorf("no target named %q", name)
	}
	if err := c.controller.SetTarget(t); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "mission target: %s (%s away)\n", t.Name(), t.FormattedDistance())
	return nil
}

func (c *console) printChecks() {
	res := c.controller.PerformPreLaunchChecks()
	if !res.HasRocket || !res.HasTarget {
		if !res.HasRocket {
			fmt.Fprintln(c.out, "no rocket selected")
		}
		if !res.HasTarget {
			fmt.Fprintln(c.out, "no target selected")
		}
		return
	}
	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "rocket\t%s\n", res.RocketName)
	fmt.Fprintf(w, "target\t%s (%.1f km)\n", res.TargetName, res.TargetDistance)
	fmt.Fprintf(w, "estimated range\t%.0f km\n", res.EstimatedRange)
	fmt.Fprintf(w, "reachable\t%t\n", res.Reachable)
	if !res.Reachable {
		fmt.Fprintf(w, "Δv shortfall\t%.2f km/s\n", res.Shortfall)
	}
	if ra := res.Reachability; ra != nil {
		fmt.Fprintf(w, "required Δv\t%.2f km/s\n", ra.RequiredDeltaV)
		fmt.Fprintf(w, "achievable Δv\t%.2f km/s\n", ra.AchievableVelocity)
		fmt.Fprintf(w, "can escape Earth\t%t\n", ra.CanEscapeEarth)
	}
	if oa := res.Orbital; oa != nil {
		fmt.Fprintf(w, "projected trajectory\t%s\n", oa.Status)
	}
	w.Flush()
}

func (c *console) printPhysics(args []string) error {
	altitude := 0.0
	if len(args) >= 1 {
		var err error
		altitude, err = strconv.ParseFloat(args[0], 64)
		if err != nil || altitude < 0 {
			return fmt.Errorf("invalid altitude %q", args[0])
		}
	}
	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "altitude\t%.1f km\n", altitude)
	fmt.Fprintf(w, "gravity\t%.4f m/s^2\n", rocketsim.GravitationalAcceleration(altitude))
	fmt.Fprintf(w, "air density\t%.6f kg/m^3\n", rocketsim.AtmosphericDensity(altitude))
	fmt.Fprintf(w, "orbital velocity\t%.3f km/s\n", rocketsim.OrbitalVelocity(altitude))
	fmt.Fprintf(w, "escape velocity\t%.3f km/s\n", rocketsim.EscapeVelocity(altitude))
	return w.Flush()
}

// launch flies the mission in real time at one simulated second per wall
// second, printing a status line each tick until completion.
func (c *console) launch() error {
	if _, err := c.controller.Launch(); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "liftoff: %s toward %s\n", c.controller.Rocket().Name(), c.controller.Target().Name())
	c.out.Flush()

	for c.controller.IsInFlight() {
		c.controller.UpdateSimulation(1)
		c.printTick()
		c.out.Flush()
		if c.controller.IsInFlight() {
			time.Sleep(time.Second)
		}
	}
	c.printResult()
	return nil
}

func (c *console) fastForward(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: fast_forward <seconds>")
	}
	seconds, err := strconv.Atoi(args[0])
	if err != nil || seconds <= 0 {
		return fmt.Errorf("invalid duration %q", args[0])
	}
	if !c.controller.IsInFlight() {
		return fmt.Errorf("no mission in flight")
	}
	c.controller.UpdateSimulation(seconds)
	c.printTick()
	if !c.controller.IsInFlight() {
		c.printResult()
	}
	return nil
}

func (c *console) printStatus() {
	fmt.Fprintf(c.out, "state: %s\n", c.controller.State())
	if r := c.controller.Rocket(); r != nil {
		fmt.Fprintf(c.out, "rocket: %s\n", r.Name())
	}
	if t := c.controller.Target(); t != nil {
		fmt.Fprintf(c.out, "target: %s (%s away)\n", t.Name(), t.FormattedDistance())
	}
	if c.controller.IsInFlight() {
		c.printTick()
	}
	if res, done := c.controller.FinalResult(); done {
		verdict := "failed"
		if res.Successful {
			verdict = "succeeded"
		}
		fmt.Fprintf(c.out, "last mission %s after %d s at %.3f km\n", verdict, res.MissionDuration, res.FinalAltitude)
	}
}

func (c *console) printTick() {
	if c.controller.IsInFlight() {
		st := c.controller.FlightStatus()
		sep := ""
		if st.StageSeparated {
			sep = "  [stage separation]"
		}
		fmt.Fprintf(c.out, "t=%4ds  stage %d  fuel %5.1f%%  alt %9.3f km  speed %8.1f km/h%s\n",
			c.controller.MissionTime(), st.Stage, st.FuelPercentage, st.Altitude, st.Speed, sep)
		if c.telemetry {
			telemetry.Publish(st.Stage, st.FuelPercentage, st.Altitude, st.Speed, c.controller.MissionTime())
		}
	}
}

func (c *console) printResult() {
	res, done := c.controller.FinalResult()
	if !done {
		return
	}
	if c.telemetry {
		telemetry.Publish(0, 0, res.FinalAltitude, res.FinalSpeed, res.MissionDuration)
	}
	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	verdict := "MISSION FAILED"
	if res.Successful {
		verdict = "MISSION SUCCESS"
	}
	fmt.Fprintln(w, verdict)
	fmt.Fprintf(w, "final altitude\t%.3f km\n", res.FinalAltitude)
	fmt.Fprintf(w, "max altitude\t%.3f km\n", res.MaxAltitude)
	fmt.Fprintf(w, "final speed\t%.1f km/h (%.3f km/s)\n", res.FinalSpeed, res.FinalVelocity)
	fmt.Fprintf(w, "duration\t%d s\n", res.MissionDuration)
	if !res.Successful {
		fmt.Fprintf(w, "short of target by\t%.3f km\n", res.DistanceToTarget)
	}
	if res.Orbital != nil {
		fmt.Fprintf(w, "trajectory\t%s\n", res.Orbital.Status)
	}
	w.Flush()
}
