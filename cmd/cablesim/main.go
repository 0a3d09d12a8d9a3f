// cablesim runs the cable solver on scene presets from the command line.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/guptarohit/asciigraph"
	"go.uber.org/zap"

	"github.com/Faultbox/tether/internal/config"
	"github.com/Faultbox/tether/internal/logger"
	"github.com/Faultbox/tether/internal/sim"
)

var (
	flagJoint  = flag.Int("joint", -1, "Joint slot to plot (-1 = largest force)")
	flagHeight = flag.Int("height", 12, "Plot height in rows")
	flagWidth  = flag.Int("width", 0, "Plot width in columns (0 = one per step)")
	flagEvery  = flag.Int("every", 25, "Print stats every N steps")
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := config.ParseFlags(os.Args[2:])

	switch command {
	case "scenes", "ls":
		cmdScenes()
	case "run":
		cmdRun(args)
	case "plot":
		cmdPlot(args)
	case "sample":
		cmdSample(args)
	case "config":
		cmdConfig()
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`cablesim - cable topology and constraint solver

Usage:
  cablesim <command> [options] [scene]

Commands:
  scenes                   List scene presets
  run <scene>              Run a scene and print cable stats
  plot <scene>             Plot joint force over time
  sample <scene>           Print the sampled cable polyline
  config                   Print the effective configuration

Options:
  -config <file>           Config file (default ./config.yaml)
  -steps <n>               Number of fixed steps
  -substeps <n>            Constraint substeps per step
  -split-merge             Enable dynamic split and merge
  -debug                   Enable debug logging
  -every <n>               Stats interval for run
  -joint <i>               Joint slot for plot
  -height <n>              Plot height

Examples:
  cablesim run -steps 300 obstacle
  cablesim plot -joint 0 winch
  cablesim sample -steps 100 crane`)
}

// setup loads the configuration and starts logging.
func setup() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// buildScene builds the scene named by the first argument.
func buildScene(cfg *config.Config, args []string, usage string) *sim.Simulation {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: "+usage)
		os.Exit(1)
	}
	sc, err := sim.Lookup(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Debug("building scene", zap.String("scene", sc.Name))
	return sc.Build(cfg)
}

func cmdScenes() {
	for _, sc := range sim.Scenes() {
		fmt.Printf("  %-10s %s\n", sc.Name, sc.Description)
	}
}

func cmdRun(args []string) {
	cfg := setup()
	defer logger.Sync()

	s := buildScene(cfg, args, "cablesim run [options] <scene>")
	every := max(1, *flagEvery)

	fmt.Print(s.Topology())
	s.Run(cfg.Simulation.Steps, func(s *sim.Simulation) {
		if s.Steps()%every != 0 {
			return
		}
		for i := range s.Cables() {
			fmt.Printf("cable %d  %v\n", i, s.Stats(i))
		}
	})
	fmt.Print(s.Topology())

	logger.Info("run finished",
		zap.String("scene", s.Name),
		zap.Int("steps", s.Steps()))
}

func cmdPlot(args []string) {
	cfg := setup()
	defer logger.Sync()

	s := buildScene(cfg, args, "cablesim plot [options] <scene>")
	forces := make([]float64, 0, cfg.Simulation.Steps)
	stretch := make([]float64, 0, cfg.Simulation.Steps)
	s.Run(cfg.Simulation.Steps, func(s *sim.Simulation) {
		st := s.Stats(0)
		f := st.MaxForce
		if j := *flagJoint; j >= 0 {
			f = 0
			if j < len(st.Forces) {
				f = st.Forces[j]
			}
		}
		forces = append(forces, float64(f))
		stretch = append(stretch, float64(st.Stretch))
	})
	if len(forces) == 0 {
		fmt.Fprintln(os.Stderr, "Error: nothing to plot, use -steps > 0")
		os.Exit(1)
	}

	caption := "largest joint force (N)"
	if *flagJoint >= 0 {
		caption = fmt.Sprintf("joint %d force (N)", *flagJoint)
	}
	opts := []asciigraph.Option{asciigraph.Height(*flagHeight), asciigraph.Precision(2)}
	if *flagWidth > 0 {
		opts = append(opts, asciigraph.Width(*flagWidth))
	}
	fmt.Println(asciigraph.Plot(forces, append(opts, asciigraph.Caption(caption))...))
	fmt.Println()
	fmt.Println(asciigraph.Plot(stretch, append(opts, asciigraph.Caption("stretch"))...))
}

func cmdSample(args []string) {
	cfg := setup()
	defer logger.Sync()

	s := buildScene(cfg, args, "cablesim sample [options] <scene>")
	s.Run(cfg.Simulation.Steps, nil)

	for i, c := range s.Cables() {
		c.Sample()
		fmt.Printf("cable %d  %v\n", i, s.Stats(i))
		for k, seg := range c.Sampled().Segments() {
			fmt.Printf("  segment %d (%d points)\n", k, len(seg))
			for _, p := range seg {
				fmt.Printf("    %8.4f %8.4f %8.4f\n", p.X, p.Y, p.Z)
			}
		}
		fmt.Println("  joints")
		for _, seg := range c.Segments() {
			state := "slack"
			if seg.Taut {
				state = "taut"
			}
			fmt.Printf("    (%.3f, %.3f) -> (%.3f, %.3f) %s\n", seg.From.X, seg.From.Y, seg.To.X, seg.To.Y, state)
		}
	}
}

func cmdConfig() {
	cfg := setup()
	defer logger.Sync()

	data, err := cfg.Marshal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(data)
}
