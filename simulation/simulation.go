// Package simulation provides the model that owns the components of an
// item-flow network. It hands out component IDs, lets components be looked up
// by ID or name, and announces the start of a run.
package simulation

import (
	"fmt"

	"github.com/sarchlab/flowsim/flow"
	"github.com/sarchlab/flowsim/sim/hooking"
	"github.com/sarchlab/flowsim/sim/id"
	"github.com/sarchlab/flowsim/sim/timing"
	"github.com/sirupsen/logrus"
)

// A Simulation is the owning model of a network.
type Simulation struct {
	hooking.HookableBase

	name        string
	idGenerator id.IDGenerator
	engine      timing.Engine
	log         logrus.FieldLogger

	components    []flow.Component
	compIDIndex   map[string]int
	compNameIndex map[string]int
	runs          int
}

var _ flow.Model = (*Simulation)(nil)

// NewSimulation creates a simulation with a serial engine and sequential IDs.
func NewSimulation() *Simulation {
	return MakeBuilder().Build("Simulation")
}

// Name returns the name of the simulation.
func (s *Simulation) Name() string {
	return s.name
}

// GenerateID returns a fresh component ID.
func (s *Simulation) GenerateID() string {
	return s.idGenerator.Generate()
}

// Register makes the component discoverable by its ID and name.
func (s *Simulation) Register(c flow.Component) error {
	if c.Model() != flow.Model(s) {
		return fmt.Errorf(
			"component %s belongs to model %s, not %s",
			c.Name(), c.Model().Name(), s.name)
	}

	if _, found := s.compIDIndex[c.ID()]; found {
		return fmt.Errorf("component id %s already registered", c.ID())
	}

	if _, found := s.compNameIndex[c.Name()]; found {
		return fmt.Errorf("component %s already registered", c.Name())
	}

	s.components = append(s.components, c)
	s.compIDIndex[c.ID()] = len(s.components) - 1
	s.compNameIndex[c.Name()] = len(s.components) - 1

	s.log.WithFields(logrus.Fields{
		"component": c.Name(),
		"id":        c.ID(),
	}).Debug("component registered")

	return nil
}

// Lookup finds a component by ID.
func (s *Simulation) Lookup(id string) (flow.Component, bool) {
	i, found := s.compIDIndex[id]
	if !found {
		return nil, false
	}

	return s.components[i], true
}

// GetComponentByName finds a component by name.
func (s *Simulation) GetComponentByName(name string) (flow.Component, bool) {
	i, found := s.compNameIndex[name]
	if !found {
		return nil, false
	}

	return s.components[i], true
}

// Components returns all registered components in registration order.
func (s *Simulation) Components() []flow.Component {
	return s.components
}

// GetEngine returns the engine used in the simulation.
func (s *Simulation) GetEngine() timing.Engine {
	return s.engine
}

// Start announces a new run to every component that listens for
// flow.HookPosModelStart.
func (s *Simulation) Start() {
	s.runs++

	s.log.WithField("run", s.runs).Info("simulation started")

	s.InvokeHook(hooking.HookCtx{
		Domain: s,
		Pos:    flow.HookPosModelStart,
		Item:   s.runs,
	})
}

// Run starts the simulation and processes events until none are left.
func (s *Simulation) Run() error {
	s.Start()
	return s.engine.Run()
}

// RunUntil starts the simulation and processes events up to time t.
func (s *Simulation) RunUntil(t timing.VTimeInSec) error {
	s.Start()
	return s.engine.RunUntil(t)
}
