package simulation

import (
	"github.com/sarchlab/flowsim/sim/id"
	"github.com/sarchlab/flowsim/sim/naming"
	"github.com/sarchlab/flowsim/sim/timing"
	"github.com/sirupsen/logrus"
)

// Builder can be used to build a simulation.
type Builder struct {
	parallelIDs bool
	engine      timing.Engine
	logger      logrus.FieldLogger
}

// MakeBuilder creates a new builder.
func MakeBuilder() Builder {
	return Builder{}
}

// WithParallelIDs makes the simulation hand out globally unique IDs instead of
// sequential numbers.
func (b Builder) WithParallelIDs() Builder {
	b.parallelIDs = true
	return b
}

// WithEngine sets the engine. A serial engine is created if none is given.
func (b Builder) WithEngine(e timing.Engine) Builder {
	b.engine = e
	return b
}

// WithLogger sets the logger used for lifecycle messages.
func (b Builder) WithLogger(l logrus.FieldLogger) Builder {
	b.logger = l
	return b
}

// Build builds the simulation.
func (b Builder) Build(name string) *Simulation {
	naming.NameMustBeValid(name)

	s := &Simulation{
		name:          name,
		engine:        b.engine,
		log:           b.logger,
		compIDIndex:   make(map[string]int),
		compNameIndex: make(map[string]int),
	}

	if s.engine == nil {
		s.engine = timing.NewSerialEngine()
	}

	if s.log == nil {
		s.log = logrus.StandardLogger()
	}

	if b.parallelIDs {
		s.idGenerator = id.NewParallelIDGenerator()
	} else {
		s.idGenerator = id.NewIDGenerator()
	}

	return s
}
