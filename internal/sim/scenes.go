package sim

import (
	"errors"
	"fmt"

	"github.com/Faultbox/tether/internal/body"
	"github.com/Faultbox/tether/internal/cable"
	"github.com/Faultbox/tether/internal/config"
	"github.com/Faultbox/tether/internal/physics"
	"github.com/Faultbox/tether/pkg/math"
)

// ErrUnknownScene is returned by Lookup for names without a scene.
var ErrUnknownScene = errors.New("unknown scene")

// Scene is a named scene preset.
type Scene struct {
	Name        string
	Description string
	Build       func(cfg *config.Config) *Simulation
}

var scenes = []Scene{
	{"crane", "hybrid spool paying out over a pulley to a hanging hook", buildCrane},
	{"pinhole", "a hand pulls cable through a frictionless ring, lifting a weight", buildPinhole},
	{"obstacle", "a rising disc splits a taut cable, then falls away and merges", buildObstacle},
	{"loop", "closed belt over two fixed discs carrying a hanging block", buildLoop},
	{"winch", "an attachment feeding cable to lower a weight", buildWinch},
}

// Scenes returns all scene presets.
func Scenes() []Scene {
	return scenes
}

// Lookup finds a scene by name.
func Lookup(name string) (Scene, error) {
	for _, sc := range scenes {
		if sc.Name == name {
			return sc, nil
		}
	}
	return Scene{}, fmt.Errorf("%w: %q", ErrUnknownScene, name)
}

func vec(x, y float32) math.Vec3 {
	return math.Vec3{X: x, Y: y}
}

func static(name string, pos math.Vec3, shape body.Shape) *body.Body {
	return body.New(name, physics.NewStaticBody(pos, math.QuatIdentity()), shape)
}

// weight creates a dynamic body kept in its cable plane.
func weight(name string, pos math.Vec3, mass, inertia float32, shape body.Shape) *body.Body {
	rb := physics.NewRigidBody(pos, math.QuatIdentity(), mass, inertia)
	rb.Freezing.Planar = true
	rb.LinearDamping = 0.1
	rb.AngularDamping = 0.5
	return body.New(name, rb, shape)
}

// buildCrane unwinds a rotating spool over a pulley. The spool stops once
// little cable is left on it.
func buildCrane(cfg *config.Config) *Simulation {
	s := New("crane", cfg.Simulation)

	spool := s.AddBody(body.New("spool", physics.NewKinematicBody(vec(0, 5), math.QuatIdentity()), body.Disc{Radius: 0.5}), false)
	spool.SetAngularVelocity(math.Vec3{Z: -0.5})
	pulley := s.AddBody(static("pulley", vec(4, 5), body.Disc{Radius: 0.3}), false)
	hook := s.AddBody(weight("hook", vec(4.3, 2), 5, 0, body.Point{}), false)

	c := s.AddCable(cable.New([]cable.Link{
		{Body: spool, Type: cable.Hybrid, Orientation: true, StoredCable: 6, SpoolSeparation: 0.002},
		{Body: pulley, Type: cable.Rolling, Orientation: true},
		{Body: hook, Type: cable.Attachment},
	}, CableSettings(cfg.Cable)))

	s.AddDriver(func(s *Simulation) {
		if c.Link(0).StoredCable < 0.5 {
			spool.SetAngularVelocity(math.Vec3{})
		}
	})
	return s
}

// buildPinhole pulls cable through a ring with a kinematic hand. The weight
// on the other side rises as rest length slides through the ring.
func buildPinhole(cfg *config.Config) *Simulation {
	s := New("pinhole", cfg.Simulation)

	ring := s.AddBody(static("ring", vec(0, 4), body.Point{}), false)
	load := s.AddBody(weight("load", vec(-1, 1), 1, 0, body.Point{}), false)
	hand := s.AddBody(body.New("hand", physics.NewKinematicBody(vec(1, 1), math.QuatIdentity()), body.Point{}), false)
	hand.SetVelocity(math.Vec3{Y: -0.5})

	s.AddCable(cable.New([]cable.Link{
		{Body: load, Type: cable.Attachment},
		{Body: ring, Type: cable.Pinhole},
		{Body: hand, Type: cable.Attachment},
	}, CableSettings(cfg.Cable)))
	return s
}

// obstacleReverseStep is the step at which the obstacle starts to fall.
const obstacleReverseStep = 150

// buildObstacle pushes a kinematic disc up through a taut cable and pulls it
// back down. Split and merge are always on in this scene.
func buildObstacle(cfg *config.Config) *Simulation {
	s := New("obstacle", cfg.Simulation)

	left := s.AddBody(static("left", vec(-5, 0), body.Point{}), false)
	right := s.AddBody(static("right", vec(5, 0), body.Point{}), false)
	disc := s.AddBody(body.New("disc", physics.NewKinematicBody(vec(0, -2.5), math.QuatIdentity()), body.Disc{Radius: 1}), true)
	disc.SetVelocity(math.Vec3{Y: 1})

	settings := CableSettings(cfg.Cable)
	settings.DynamicSplitMerge = true
	s.AddCable(cable.New([]cable.Link{
		{Body: left, Type: cable.Attachment},
		{Body: right, Type: cable.Attachment},
	}, settings))

	s.AddDriver(func(s *Simulation) {
		if s.Steps() == obstacleReverseStep {
			disc.SetVelocity(math.Vec3{Y: -1})
		}
	})
	return s
}

// buildLoop hangs a block in a closed belt. Traversed in link order the
// belt runs counter-clockwise, so every link wraps with Orientation false.
func buildLoop(cfg *config.Config) *Simulation {
	s := New("loop", cfg.Simulation)

	left := s.AddBody(static("left", vec(0, 4), body.Disc{Radius: 0.5}), false)
	right := s.AddBody(static("right", vec(4, 4), body.Disc{Radius: 0.5}), false)
	block := s.AddBody(weight("block", vec(2, 1), 2, 0.25, body.Disc{Radius: 0.5}), false)

	s.AddCable(cable.New([]cable.Link{
		{Body: left, Type: cable.Rolling},
		{Body: block, Type: cable.Rolling},
		{Body: right, Type: cable.Rolling},
		{Body: left, Type: cable.Rolling},
	}, CableSettings(cfg.Cable)))
	return s
}

// winchSpeed is the cable fed per step by the winch scene.
const winchSpeed = 0.01

func buildWinch(cfg *config.Config) *Simulation {
	s := New("winch", cfg.Simulation)

	winch := s.AddBody(static("winch", vec(0, 6), body.Point{}), false)
	load := s.AddBody(weight("load", vec(0, 4), 3, 0, body.Point{}), false)

	s.AddCable(cable.New([]cable.Link{
		{Body: winch, Type: cable.Attachment, CableSpawnSpeed: winchSpeed},
		{Body: load, Type: cable.Attachment},
	}, CableSettings(cfg.Cable)))
	return s
}
