// Package boundary provides the components at the edge of an item-flow
// network: sources that create items and sinks that consume them.
package boundary

import (
	"fmt"

	"github.com/sarchlab/flowsim/flow"
	"github.com/sarchlab/flowsim/sim/hooking"
	"github.com/sarchlab/flowsim/sim/naming"
)

// HookPosItemProduced marks an item created by a source. The Detail is true
// if the downstream accepted the item.
var HookPosItemProduced = &hooking.HookPos{Name: "Item Produced"}

// A PulseSource raises flow.HookPosPulse, usually at a fixed rate.
type PulseSource interface {
	hooking.Hookable
}

// A Producer creates a new item.
type Producer func() flow.Item

// OutputMode determines what a pull on the output of a source returns.
type OutputMode int

const (
	// Volatile sources never have an item to pull.
	Volatile OutputMode = iota

	// Persistent sources replay the last produced item on every pull. The
	// remembered item is forgotten when the model starts a run.
	Persistent
)

func (m OutputMode) String() string {
	switch m {
	case Volatile:
		return "Volatile"
	case Persistent:
		return "Persistent"
	default:
		return fmt.Sprintf("OutputMode(%d)", int(m))
	}
}

// ItemSource creates one item per pulse and pushes it downstream.
type ItemSource struct {
	*flow.ComponentBase

	out      *flow.Port
	producer Producer
	mode     OutputMode
	pulses   PulseSource

	last     flow.Item
	hasLast  bool
	produced int
	refused  int
}

// Out returns the output port.
func (s *ItemSource) Out() *flow.Port {
	return s.out
}

// Mode returns the output mode.
func (s *ItemSource) Mode() OutputMode {
	return s.mode
}

// Produced returns the number of items created.
func (s *ItemSource) Produced() int {
	return s.produced
}

// Refused returns the number of created items the downstream did not accept.
func (s *ItemSource) Refused() int {
	return s.refused
}

// Fire creates one item and pushes it. It returns whether the downstream
// accepted the item.
func (s *ItemSource) Fire() bool {
	item := s.producer()
	s.produced++

	if s.mode == Persistent {
		s.last = item
		s.hasLast = true
	}

	accepted := s.out.Push(item)
	if !accepted {
		s.refused++
	}

	s.InvokeHook(hooking.HookCtx{
		Domain: s,
		Pos:    HookPosItemProduced,
		Item:   item,
		Detail: accepted,
	})

	if !accepted && s.mode == Persistent {
		s.out.NotifyDataAvailable()
	}

	return accepted
}

// Func reacts to pulses and to the start of a run.
func (s *ItemSource) Func(ctx hooking.HookCtx) {
	switch ctx.Pos {
	case flow.HookPosPulse:
		s.Fire()
	case flow.HookPosModelStart:
		s.last = nil
		s.hasLast = false
	}
}

// Detach stops listening to the pulse source.
func (s *ItemSource) Detach() {
	if s.pulses != nil {
		s.pulses.RemoveHook(s)
		s.pulses = nil
	}
}

func (s *ItemSource) provide(_ flow.PullRequest) (flow.Item, bool) {
	if s.mode == Volatile || !s.hasLast {
		return nil, false
	}

	return s.last, true
}

// SourceBuilder can build item sources.
type SourceBuilder struct {
	model    flow.Model
	producer Producer
	mode     OutputMode
	pulses   PulseSource
}

// MakeSourceBuilder creates a builder for a volatile source.
func MakeSourceBuilder() SourceBuilder {
	return SourceBuilder{mode: Volatile}
}

// WithModel sets the model that owns the source.
func (b SourceBuilder) WithModel(m flow.Model) SourceBuilder {
	b.model = m
	return b
}

// WithProducer sets the function that creates items.
func (b SourceBuilder) WithProducer(p Producer) SourceBuilder {
	b.producer = p
	return b
}

// WithOutputMode sets the output mode.
func (b SourceBuilder) WithOutputMode(m OutputMode) SourceBuilder {
	b.mode = m
	return b
}

// WithPulseSource makes the source fire on every pulse of p. Without a pulse
// source, items are only created by calling Fire.
func (b SourceBuilder) WithPulseSource(p PulseSource) SourceBuilder {
	b.pulses = p
	return b
}

// Build creates the source and subscribes it to the pulse source and to the
// model.
func (b SourceBuilder) Build(name string) *ItemSource {
	if b.producer == nil {
		panic("source " + name + " has no producer")
	}

	s := &ItemSource{
		ComponentBase: flow.NewComponentBase(b.model, name),
		producer:      b.producer,
		mode:          b.mode,
		pulses:        b.pulses,
	}

	s.out = flow.NewPort(s, naming.BuildName(name, "Out"), flow.Output,
		flow.WithProvision(s.provide),
	)
	s.AddPort("Out", s.out)
	s.Seal(s)

	if s.pulses != nil {
		s.pulses.AcceptHook(s)
	}

	b.model.AcceptHook(s)

	return s
}
