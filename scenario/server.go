package scenario

import (
	"github.com/sarchlab/flowsim/flow"
	"github.com/sarchlab/flowsim/sim/hooking"
	"github.com/sarchlab/flowsim/sim/naming"
)

// HookPosItemServed marks an item a server took from its queue. The Detail is
// true if the downstream accepted it.
var HookPosItemServed = &hooking.HookPos{Name: "Item Served"}

// Job is the item that travels through a scenario network.
type Job struct {
	ID      int
	Created float64
}

// A Server takes one item from its input every time it is pulsed and pushes
// it to its output.
type Server struct {
	*flow.ComponentBase

	in  *flow.Port
	out *flow.Port

	served  int
	dropped int
}

// NewServer creates a server and registers it with the model.
func NewServer(model flow.Model, name string) *Server {
	s := &Server{
		ComponentBase: flow.NewComponentBase(model, name),
	}

	s.in = flow.NewPort(s, naming.BuildName(name, "In"), flow.Input)
	s.out = flow.NewPort(s, naming.BuildName(name, "Out"), flow.Output)
	s.AddPort("In", s.in)
	s.AddPort("Out", s.out)
	s.Seal(s)

	return s
}

// In returns the port the server pulls from.
func (s *Server) In() *flow.Port {
	return s.in
}

// Out returns the port the server pushes to.
func (s *Server) Out() *flow.Port {
	return s.out
}

// Served returns the number of items taken from the input.
func (s *Server) Served() int {
	return s.served
}

// Dropped returns the number of served items the downstream refused.
func (s *Server) Dropped() int {
	return s.dropped
}

// Func serves one item on every pulse.
func (s *Server) Func(ctx hooking.HookCtx) {
	if ctx.Pos != flow.HookPosPulse {
		return
	}

	s.Serve()
}

// Serve moves one item from the input to the output. It returns false if
// there was nothing to serve.
func (s *Server) Serve() bool {
	item, ok := s.in.Take(nil)
	if !ok {
		return false
	}

	s.served++

	accepted := s.out.Push(item)
	if !accepted {
		s.dropped++
	}

	s.InvokeHook(hooking.HookCtx{
		Domain: s,
		Pos:    HookPosItemServed,
		Item:   item,
		Detail: accepted,
	})

	return true
}
