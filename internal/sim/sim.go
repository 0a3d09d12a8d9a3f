// Package sim runs cables and rigid bodies in a fixed-step loop and
// provides the scene presets used by the command-line tools.
package sim

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Faultbox/tether/internal/body"
	"github.com/Faultbox/tether/internal/cable"
	"github.com/Faultbox/tether/internal/config"
	"github.com/Faultbox/tether/internal/logger"
	"github.com/Faultbox/tether/internal/physics"
	"github.com/Faultbox/tether/pkg/math"
)

// Driver scripts a scene. It runs at the start of every step.
type Driver func(s *Simulation)

// Simulation owns a physics world, the bodies in it and the cables
// strung between them.
type Simulation struct {
	Name  string
	World *physics.World

	cfg     config.SimulationConfig
	bodies  []*body.Body
	cables  []*cable.Cable
	drivers []Driver
	links   []int // link count per cable at the end of the last step
	step    int
}

// New creates an empty simulation. Gravity acts along -Y.
func New(name string, cfg config.SimulationConfig) *Simulation {
	return &Simulation{
		Name:  name,
		World: physics.NewWorld(math.Vec3{Y: -cfg.Gravity}),
		cfg:   cfg,
	}
}

// CableSettings converts cable configuration into solver settings.
func CableSettings(cfg config.CableConfig) cable.Settings {
	return cable.Settings{
		DynamicSplitMerge:    cfg.DynamicSplitMerge,
		LoosenessScale:       cfg.LoosenessScale,
		MaxLooseCable:        cfg.MaxLooseCable,
		VerticalThreshold:    cfg.VerticalThreshold,
		VerticalCurlyness:    cfg.VerticalCurlyness,
		MaxTangentIterations: cfg.MaxTangentIterations,
	}
}

// AddBody registers a body for integration. Colliders can split cables.
func (s *Simulation) AddBody(b *body.Body, collider bool) *body.Body {
	s.World.AddBody(b.RigidBody)
	if collider {
		s.World.AddCollider(b)
	}
	s.bodies = append(s.bodies, b)
	return b
}

// AddCable sets up a cable and adds it to the simulation.
func (s *Simulation) AddCable(c *cable.Cable) *cable.Cable {
	c.SetRaycaster(s.World)
	c.Setup()
	c.Sample()
	s.cables = append(s.cables, c)
	s.links = append(s.links, c.LinkCount())
	return c
}

// AddDriver adds a scripted behaviour.
func (s *Simulation) AddDriver(d Driver) {
	s.drivers = append(s.drivers, d)
}

// Body returns the body with the given name, or nil.
func (s *Simulation) Body(name string) *body.Body {
	for _, b := range s.bodies {
		if b.Name == name {
			return b
		}
	}
	return nil
}

// Bodies returns all bodies in insertion order.
func (s *Simulation) Bodies() []*body.Body {
	return s.bodies
}

// Cables returns all cables in insertion order.
func (s *Simulation) Cables() []*cable.Cable {
	return s.cables
}

// Steps returns the number of steps run so far.
func (s *Simulation) Steps() int {
	return s.step
}

// Dt returns the fixed step length in seconds.
func (s *Simulation) Dt() float32 {
	return float32(s.cfg.Timestep.Seconds())
}

// Tick advances the simulation by one fixed step: drivers, cable topology,
// constraint substeps and, every SampleEvery steps, the cable polylines.
func (s *Simulation) Tick() {
	for _, d := range s.drivers {
		d(s)
	}
	for _, c := range s.cables {
		c.UpdateCable()
	}
	s.World.Step(s.Dt(), s.cfg.Substeps, func(h float32) {
		for _, c := range s.cables {
			c.Solve(h, s.cfg.Bias)
		}
	})
	s.step++

	every := max(1, s.cfg.SampleEvery)
	for i, c := range s.cables {
		if s.step%every == 0 {
			c.Sample()
		}
		if n := c.LinkCount(); n != s.links[i] {
			logger.Info("cable topology changed",
				zap.String("scene", s.Name),
				zap.Int("cable", i),
				zap.Int("step", s.step),
				zap.Int("links", n),
				zap.Int("previous", s.links[i]))
			s.links[i] = n
			if logger.Enabled(zapcore.DebugLevel) {
				logger.Debug("cable topology", zap.String("topology", s.Topology()))
			}
		}
	}
}

// Run advances the simulation by steps, calling observe after each one.
func (s *Simulation) Run(steps int, observe func(s *Simulation)) {
	for i := 0; i < steps; i++ {
		s.Tick()
		if observe != nil {
			observe(s)
		}
	}
}
