// Package config handles simulator configuration loading and management.
package config

import "time"

// Config holds all simulator settings.
type Config struct {
	Simulation SimulationConfig `yaml:"simulation"`
	Cable      CableConfig      `yaml:"cable"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// SimulationConfig holds the fixed-step loop settings.
type SimulationConfig struct {
	Timestep    time.Duration `yaml:"timestep"`     // Fixed step length
	Substeps    int           `yaml:"substeps"`     // Constraint substeps per step
	Bias        float32       `yaml:"bias"`         // Positional error corrected per substep
	Gravity     float32       `yaml:"gravity"`      // Acceleration along -Y
	Steps       int           `yaml:"steps"`        // Steps run by the CLI
	SampleEvery int           `yaml:"sample_every"` // Steps between sampled frames
}

// CableConfig holds cable topology and sampling settings.
type CableConfig struct {
	DynamicSplitMerge    bool    `yaml:"dynamic_split_merge"`
	LoosenessScale       float32 `yaml:"looseness_scale"`
	MaxLooseCable        float32 `yaml:"max_loose_cable"`
	VerticalThreshold    float32 `yaml:"vertical_threshold"`
	VerticalCurlyness    uint    `yaml:"vertical_curlyness"`
	MaxTangentIterations int     `yaml:"max_tangent_iterations"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Simulation: SimulationConfig{
			Timestep:    20 * time.Millisecond,
			Substeps:    8,
			Bias:        0.2,
			Gravity:     9.81,
			Steps:       500,
			SampleEvery: 1,
		},
		Cable: CableConfig{
			DynamicSplitMerge:    false,
			LoosenessScale:       1,
			MaxLooseCable:        1,
			VerticalThreshold:    0.25,
			VerticalCurlyness:    1,
			MaxTangentIterations: 64,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
