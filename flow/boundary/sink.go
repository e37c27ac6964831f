package boundary

import (
	"github.com/sarchlab/flowsim/flow"
	"github.com/sarchlab/flowsim/sim/hooking"
	"github.com/sarchlab/flowsim/sim/naming"
)

// HookPosItemConsumed marks an item that reached a sink.
var HookPosItemConsumed = &hooking.HookPos{Name: "Item Consumed"}

// ItemSink accepts every item pushed to it.
type ItemSink struct {
	*flow.ComponentBase

	in       *flow.Port
	consumed int
}

// In returns the input port.
func (s *ItemSink) In() *flow.Port {
	return s.in
}

// Consumed returns the number of items received.
func (s *ItemSink) Consumed() int {
	return s.consumed
}

// Arrival consumes the item.
func (s *ItemSink) Arrival(item flow.Item) bool {
	s.consumed++

	s.InvokeHook(hooking.HookCtx{
		Domain: s,
		Pos:    HookPosItemConsumed,
		Item:   item,
	})

	return true
}

// SinkBuilder can build item sinks.
type SinkBuilder struct {
	model flow.Model
}

// MakeSinkBuilder creates a SinkBuilder.
func MakeSinkBuilder() SinkBuilder {
	return SinkBuilder{}
}

// WithModel sets the model that owns the sink.
func (b SinkBuilder) WithModel(m flow.Model) SinkBuilder {
	b.model = m
	return b
}

// Build creates the sink.
func (b SinkBuilder) Build(name string) *ItemSink {
	s := &ItemSink{
		ComponentBase: flow.NewComponentBase(b.model, name),
	}

	s.in = flow.NewPort(s, naming.BuildName(name, "In"), flow.Input,
		flow.WithArrival(s.Arrival),
		flow.WithoutPull(),
	)
	s.AddPort("In", s.in)
	s.Seal(s)

	return s
}
