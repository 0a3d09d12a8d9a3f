package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagSteps      = flag.Int("steps", 0, "Number of fixed steps to run")
	flagSubsteps   = flag.Int("substeps", 0, "Constraint substeps per step")
	flagSplitMerge = flag.Bool("split-merge", false, "Enable dynamic split and merge")
)

// ParseFlags parses command-line flags from args and returns the remaining
// arguments. Call this early in main().
func ParseFlags(args []string) []string {
	flag.CommandLine.Parse(args)
	return flag.CommandLine.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagSteps > 0 {
		cfg.Simulation.Steps = *flagSteps
	}
	if *flagSubsteps > 0 {
		cfg.Simulation.Substeps = *flagSubsteps
	}
	if *flagSplitMerge {
		cfg.Cable.DynamicSplitMerge = true
	}
}
