package routing

import (
	"fmt"

	"github.com/sarchlab/flowsim/flow"
	"github.com/sarchlab/flowsim/sim/naming"
)

// JoinPolicy determines how a Joiner merges its inputs.
type JoinPolicy int

const (
	// PushJoiner forwards every item pushed to any input through the output
	// and returns the verdict of the downstream component.
	PushJoiner JoinPolicy = iota

	// PullJoiner serves pulls on the output from the first input, in index
	// order, whose upstream has an item.
	PullJoiner
)

func (p JoinPolicy) String() string {
	switch p {
	case PushJoiner:
		return "Push"
	case PullJoiner:
		return "Pull"
	default:
		return fmt.Sprintf("JoinPolicy(%d)", int(p))
	}
}

// Joiner has several inputs and one output.
type Joiner struct {
	*flow.ComponentBase

	policy JoinPolicy
	ins    []*flow.Port
	out    *flow.Port
}

// In returns the i-th input port.
func (j *Joiner) In(i int) *flow.Port {
	return j.ins[i]
}

// NumInputs returns the number of input ports.
func (j *Joiner) NumInputs() int {
	return len(j.ins)
}

// Out returns the output port.
func (j *Joiner) Out() *flow.Port {
	return j.out
}

// Policy returns the join policy.
func (j *Joiner) Policy() JoinPolicy {
	return j.policy
}

// Arrival forwards the item and relays the downstream verdict.
func (j *Joiner) Arrival(item flow.Item) bool {
	return j.out.Push(item)
}

func (j *Joiner) provide(req flow.PullRequest) (flow.Item, bool) {
	for _, in := range j.ins {
		peer := in.Peer()
		if peer == nil || !peer.SupportsPull() {
			continue
		}

		var (
			item flow.Item
			ok   bool
		)

		if req.Peek {
			item, ok = in.Peek(req.Selector)
		} else {
			item, ok = in.Take(req.Selector)
		}

		if ok {
			return item, true
		}
	}

	return nil, false
}

func (j *Joiner) relayDataAvailable() {
	j.out.NotifyDataAvailable()
}

// JoinerBuilder can build joiners.
type JoinerBuilder struct {
	model     flow.Model
	numInputs int
	policy    JoinPolicy
}

// MakeJoinerBuilder creates a builder for a two-way push joiner.
func MakeJoinerBuilder() JoinerBuilder {
	return JoinerBuilder{
		numInputs: 2,
		policy:    PushJoiner,
	}
}

// WithModel sets the model that owns the joiner.
func (b JoinerBuilder) WithModel(m flow.Model) JoinerBuilder {
	b.model = m
	return b
}

// WithNumInputs sets the number of input ports.
func (b JoinerBuilder) WithNumInputs(n int) JoinerBuilder {
	if n < 1 {
		panic("a joiner needs at least one input")
	}

	b.numInputs = n

	return b
}

// WithPolicy sets the join policy.
func (b JoinerBuilder) WithPolicy(p JoinPolicy) JoinerBuilder {
	b.policy = p
	return b
}

// Build creates the joiner.
func (b JoinerBuilder) Build(name string) *Joiner {
	j := &Joiner{
		ComponentBase: flow.NewComponentBase(b.model, name),
		policy:        b.policy,
	}

	var inOpts, outOpts []flow.PortOption

	switch b.policy {
	case PushJoiner:
		inOpts = []flow.PortOption{
			flow.WithArrival(j.Arrival),
			flow.WithoutPull(),
		}
	case PullJoiner:
		inOpts = []flow.PortOption{
			flow.WithDataAvailable(j.relayDataAvailable),
		}
		outOpts = []flow.PortOption{
			flow.WithProvision(j.provide),
			flow.WithoutPush(),
		}
	default:
		panic("unknown join policy " + b.policy.String())
	}

	for i := 0; i < b.numInputs; i++ {
		in := flow.NewPort(j,
			naming.BuildNameWithIndex(name, "In", i), flow.Input,
			inOpts...)
		j.AddPort(naming.BuildNameWithIndex("", "In", i), in)
		j.ins = append(j.ins, in)
	}

	j.out = flow.NewPort(j, naming.BuildName(name, "Out"), flow.Output,
		outOpts...)
	j.AddPort("Out", j.out)

	j.Seal(j)

	return j
}
