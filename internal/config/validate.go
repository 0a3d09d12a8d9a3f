package config

import (
	"fmt"

	"go.uber.org/multierr"
)

var validLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
	"fatal": true,
}

// Validate checks every setting and returns all problems found.
func (c *Config) Validate() error {
	var err error
	sim := c.Simulation
	if sim.Timestep <= 0 {
		err = multierr.Append(err, fmt.Errorf("simulation.timestep must be positive, got %v", sim.Timestep))
	}
	if sim.Substeps < 1 {
		err = multierr.Append(err, fmt.Errorf("simulation.substeps must be at least 1, got %d", sim.Substeps))
	}
	if sim.Bias < 0 || sim.Bias > 1 {
		err = multierr.Append(err, fmt.Errorf("simulation.bias must be in [0, 1], got %v", sim.Bias))
	}
	if sim.Steps < 0 {
		err = multierr.Append(err, fmt.Errorf("simulation.steps must not be negative, got %d", sim.Steps))
	}
	if sim.SampleEvery < 1 {
		err = multierr.Append(err, fmt.Errorf("simulation.sample_every must be at least 1, got %d", sim.SampleEvery))
	}

	cab := c.Cable
	if cab.LoosenessScale < 0 || cab.LoosenessScale > 1 {
		err = multierr.Append(err, fmt.Errorf("cable.looseness_scale must be in [0, 1], got %v", cab.LoosenessScale))
	}
	if cab.MaxLooseCable < 0 {
		err = multierr.Append(err, fmt.Errorf("cable.max_loose_cable must not be negative, got %v", cab.MaxLooseCable))
	}
	if cab.VerticalThreshold < 0 {
		err = multierr.Append(err, fmt.Errorf("cable.vertical_threshold must not be negative, got %v", cab.VerticalThreshold))
	}
	if cab.MaxTangentIterations < 1 {
		err = multierr.Append(err, fmt.Errorf("cable.max_tangent_iterations must be at least 1, got %d", cab.MaxTangentIterations))
	}

	if !validLevels[c.Logging.Level] {
		err = multierr.Append(err, fmt.Errorf("logging.level %q is not one of debug, info, warn, error, fatal", c.Logging.Level))
	}
	return err
}
