package routing

import (
	"fmt"

	"github.com/sarchlab/flowsim/flow"
	"github.com/sarchlab/flowsim/sim/naming"
)

// SplitPolicy determines how a Splitter moves items from its input to its
// outputs.
type SplitPolicy int

const (
	// SimultaneousPushSplitter broadcasts every item pushed to the input to
	// all connected outputs. The push to the input always succeeds, even if
	// some or all downstream components refuse the item. The outputs do not
	// serve pulls.
	SimultaneousPushSplitter SplitPolicy = iota

	// PullThroughSplitter lets the downstream of every output pull from the
	// upstream of the input. Pushes to the input are refused.
	PullThroughSplitter
)

func (p SplitPolicy) String() string {
	switch p {
	case SimultaneousPushSplitter:
		return "SimultaneousPush"
	case PullThroughSplitter:
		return "PullThrough"
	default:
		return fmt.Sprintf("SplitPolicy(%d)", int(p))
	}
}

// Splitter has one input and several outputs.
type Splitter struct {
	*flow.ComponentBase

	policy SplitPolicy
	in     *flow.Port
	outs   []*flow.Port
}

// In returns the input port.
func (s *Splitter) In() *flow.Port {
	return s.in
}

// Out returns the i-th output port.
func (s *Splitter) Out(i int) *flow.Port {
	return s.outs[i]
}

// NumOutputs returns the number of output ports.
func (s *Splitter) NumOutputs() int {
	return len(s.outs)
}

// Policy returns the split policy.
func (s *Splitter) Policy() SplitPolicy {
	return s.policy
}

// Arrival broadcasts the item. Outputs that are not connected are skipped.
func (s *Splitter) Arrival(item flow.Item) bool {
	for _, out := range s.outs {
		// Unlike a push on a single port, a broadcast tolerates unconnected
		// outputs so that a splitter can be wired one output at a time.
		if !out.IsConnected() {
			continue
		}

		out.Push(item)
	}

	return true
}

func (s *Splitter) provide(req flow.PullRequest) (flow.Item, bool) {
	if req.Peek {
		return s.in.Peek(req.Selector)
	}

	return s.in.Take(req.Selector)
}

func (s *Splitter) relayDataAvailable() {
	for _, out := range s.outs {
		out.NotifyDataAvailable()
	}
}

// SplitterBuilder can build splitters.
type SplitterBuilder struct {
	model      flow.Model
	numOutputs int
	policy     SplitPolicy
}

// MakeSplitterBuilder creates a builder for a two-way simultaneous push
// splitter.
func MakeSplitterBuilder() SplitterBuilder {
	return SplitterBuilder{
		numOutputs: 2,
		policy:     SimultaneousPushSplitter,
	}
}

// WithModel sets the model that owns the splitter.
func (b SplitterBuilder) WithModel(m flow.Model) SplitterBuilder {
	b.model = m
	return b
}

// WithNumOutputs sets the number of output ports.
func (b SplitterBuilder) WithNumOutputs(n int) SplitterBuilder {
	if n < 1 {
		panic("a splitter needs at least one output")
	}

	b.numOutputs = n

	return b
}

// WithPolicy sets the split policy.
func (b SplitterBuilder) WithPolicy(p SplitPolicy) SplitterBuilder {
	b.policy = p
	return b
}

// Build creates the splitter.
func (b SplitterBuilder) Build(name string) *Splitter {
	s := &Splitter{
		ComponentBase: flow.NewComponentBase(b.model, name),
		policy:        b.policy,
	}

	var inOpts, outOpts []flow.PortOption

	switch b.policy {
	case SimultaneousPushSplitter:
		inOpts = []flow.PortOption{
			flow.WithArrival(s.Arrival),
			flow.WithoutPull(),
		}
	case PullThroughSplitter:
		inOpts = []flow.PortOption{
			flow.WithDataAvailable(s.relayDataAvailable),
		}
		outOpts = []flow.PortOption{
			flow.WithProvision(s.provide),
			flow.WithoutPush(),
		}
	default:
		panic("unknown split policy " + b.policy.String())
	}

	s.in = flow.NewPort(s, naming.BuildName(name, "In"), flow.Input, inOpts...)
	s.AddPort("In", s.in)

	for i := 0; i < b.numOutputs; i++ {
		out := flow.NewPort(s,
			naming.BuildNameWithIndex(name, "Out", i), flow.Output,
			outOpts...)
		s.AddPort(naming.BuildNameWithIndex("", "Out", i), out)
		s.outs = append(s.outs, out)
	}

	s.Seal(s)

	return s
}
