package routing

import (
	"github.com/sarchlab/flowsim/flow"
	"github.com/sarchlab/flowsim/sim/hooking"
	"github.com/sarchlab/flowsim/sim/naming"
)

// HookPosBranchRouted marks an item that a branch pushed to one of its
// outputs. The Detail is a BranchDecision.
var HookPosBranchRouted = &hooking.HookPos{Name: "Branch Routed"}

// BranchDecision is the Detail of HookPosBranchRouted.
type BranchDecision struct {
	Output   int
	Accepted bool
}

// A Decider picks the output of a branch for an item.
type Decider interface {
	Decide(item flow.Item) int
}

// DeciderFunc adapts a function to the Decider interface.
type DeciderFunc func(item flow.Item) int

// Decide calls f.
func (f DeciderFunc) Decide(item flow.Item) int {
	return f(item)
}

// Branch sends every item pushed to its input to exactly one output, chosen
// by its decider.
type Branch struct {
	*flow.ComponentBase

	self    flow.Component
	in      *flow.Port
	outs    []*flow.Port
	decider Decider
}

// newBranch creates the ports of a branch. The owner is the component that
// embeds the branch, or nil if the branch stands alone; it owns the ports and
// raises the hooks.
func newBranch(
	model flow.Model,
	name string,
	outNames []string,
	owner flow.Component,
) *Branch {
	b := &Branch{
		ComponentBase: flow.NewComponentBase(model, name),
	}

	b.self = owner
	if owner == nil {
		b.self = b
	}

	b.in = flow.NewPort(b.self, naming.BuildName(name, "In"), flow.Input,
		flow.WithArrival(b.Arrival),
		flow.WithoutPull(),
	)
	b.AddPort("In", b.in)

	for _, outName := range outNames {
		out := flow.NewPort(b.self, naming.BuildName(name, outName), flow.Output)
		b.AddPort(outName, out)
		b.outs = append(b.outs, out)
	}

	return b
}

// In returns the input port.
func (b *Branch) In() *flow.Port {
	return b.in
}

// Out returns the i-th output port.
func (b *Branch) Out(i int) *flow.Port {
	return b.outs[i]
}

// NumOutputs returns the number of output ports.
func (b *Branch) NumOutputs() int {
	return len(b.outs)
}

// Decider returns the current decider, or nil.
func (b *Branch) Decider() Decider {
	return b.decider
}

// SetDecider replaces the decider. A nil decider makes every push fail.
func (b *Branch) SetDecider(d Decider) {
	b.decider = d
}

// Arrival routes the item. It returns false if there is no decider, if the
// decider picks an output that does not exist, or if the downstream refuses
// the item.
func (b *Branch) Arrival(item flow.Item) bool {
	if b.decider == nil {
		return false
	}

	i := b.decider.Decide(item)
	if i < 0 || i >= len(b.outs) {
		return false
	}

	accepted := b.outs[i].Push(item)

	b.InvokeHook(hooking.HookCtx{
		Domain: b.self,
		Pos:    HookPosBranchRouted,
		Item:   item,
		Detail: BranchDecision{Output: i, Accepted: accepted},
	})

	return accepted
}

// BranchBuilder can build branches with indexed outputs.
type BranchBuilder struct {
	model      flow.Model
	numOutputs int
	decider    Decider
}

// MakeBranchBuilder creates a builder for a two-way branch without decider.
func MakeBranchBuilder() BranchBuilder {
	return BranchBuilder{numOutputs: 2}
}

// WithModel sets the model that owns the branch.
func (b BranchBuilder) WithModel(m flow.Model) BranchBuilder {
	b.model = m
	return b
}

// WithNumOutputs sets the number of output ports.
func (b BranchBuilder) WithNumOutputs(n int) BranchBuilder {
	if n < 1 {
		panic("a branch needs at least one output")
	}

	b.numOutputs = n

	return b
}

// WithDecider sets the decider.
func (b BranchBuilder) WithDecider(d Decider) BranchBuilder {
	b.decider = d
	return b
}

// Build creates the branch. Its outputs are named Out[0], Out[1], and so on.
func (b BranchBuilder) Build(name string) *Branch {
	outNames := make([]string, b.numOutputs)
	for i := range outNames {
		outNames[i] = naming.BuildNameWithIndex("", "Out", i)
	}

	br := newBranch(b.model, name, outNames, nil)
	br.decider = b.decider
	br.Seal(br)

	return br
}
