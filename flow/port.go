package flow

import (
	"fmt"

	"github.com/sarchlab/flowsim/sim/hooking"
	"github.com/sarchlab/flowsim/sim/naming"
)

// Item is anything that travels through the network.
type Item = any

// Direction tells whether a port receives or emits items.
type Direction int

// The two port directions.
const (
	Input Direction = iota
	Output
)

func (d Direction) String() string {
	switch d {
	case Input:
		return "Input"
	case Output:
		return "Output"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// PullRequest is handed to a provision handler.
type PullRequest struct {
	// Selector is supplied by the caller of Take or Peek. Most components
	// ignore it.
	Selector any

	// Peek is true when the caller must not consume the item.
	Peek bool
}

// ArrivalFunc decides whether an item pushed to an input port is accepted.
type ArrivalFunc func(item Item) bool

// ProvisionFunc answers a pull request on an output port. The boolean is false
// when no item is available.
type ProvisionFunc func(req PullRequest) (Item, bool)

// AcceptedFunc is told about items that the peer of an output port accepted.
type AcceptedFunc func(item Item)

// DataAvailableFunc is told that the peer of an input port has data to pull.
type DataAvailableFunc func()

// A PortOption configures the optional capabilities of a port.
type PortOption func(p *Port)

// WithArrival lets an input port receive pushes. Without it every push to the
// port is rejected.
func WithArrival(f ArrivalFunc) PortOption {
	return func(p *Port) {
		p.mustBeConfiguredAs(Input, "arrival handler")
		handlerMustNotBeNil(p, f == nil)
		p.arrival = f
	}
}

// WithProvision lets an output port serve pulls. Without it Take and Peek on
// the peer are illegal.
func WithProvision(f ProvisionFunc) PortOption {
	return func(p *Port) {
		p.mustBeConfiguredAs(Output, "provision handler")
		handlerMustNotBeNil(p, f == nil)
		p.provision = f
	}
}

// WithAccepted registers the owner's acceptance callback on an output port.
func WithAccepted(f AcceptedFunc) PortOption {
	return func(p *Port) {
		p.mustBeConfiguredAs(Output, "accepted handler")
		handlerMustNotBeNil(p, f == nil)
		p.accepted = f
	}
}

// WithDataAvailable registers the owner's data-available callback on an input
// port.
func WithDataAvailable(f DataAvailableFunc) PortOption {
	return func(p *Port) {
		p.mustBeConfiguredAs(Input, "data available handler")
		handlerMustNotBeNil(p, f == nil)
		p.dataAvailable = f
	}
}

// WithoutPull declares that the owner of an input port never pulls through it.
// It only affects the capability listing.
func WithoutPull() PortOption {
	return func(p *Port) {
		p.mustBeConfiguredAs(Input, "pull declaration")
		p.noPull = true
	}
}

// WithoutPush declares that the owner of an output port never pushes through
// it. It only affects the capability listing.
func WithoutPush() PortOption {
	return func(p *Port) {
		p.mustBeConfiguredAs(Output, "push declaration")
		p.noPush = true
	}
}

// A Port is owned by a component and is the only way items enter or leave it.
type Port struct {
	hooking.HookableBase

	name  string
	owner Component
	dir   Direction
	conn  *Connector

	arrival       ArrivalFunc
	provision     ProvisionFunc
	accepted      AcceptedFunc
	dataAvailable DataAvailableFunc
	noPull        bool
	noPush        bool
}

// NewPort creates a port. The name must be a valid hierarchical name, usually
// built with naming.BuildName from the owner's name.
func NewPort(
	owner Component,
	name string,
	dir Direction,
	opts ...PortOption,
) *Port {
	naming.NameMustBeValid(name)

	p := &Port{
		name:  name,
		owner: owner,
		dir:   dir,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Name returns the name of the port.
func (p *Port) Name() string {
	return p.name
}

// Owner returns the component that owns the port.
func (p *Port) Owner() Component {
	return p.owner
}

// Direction returns whether the port is an input or an output.
func (p *Port) Direction() Direction {
	return p.dir
}

// Connector returns the connector bound to the port, or nil.
func (p *Port) Connector() *Connector {
	return p.conn
}

// IsConnected tells whether the port has a peer.
func (p *Port) IsConnected() bool {
	return p.conn != nil
}

// Peer returns the port on the other side of the connector, or nil.
func (p *Port) Peer() *Port {
	if p.conn == nil {
		return nil
	}

	if p.dir == Output {
		return p.conn.in
	}

	return p.conn.out
}

// SupportsPush tells whether items can be pushed through the port. For an
// input port this means an arrival handler is registered.
func (p *Port) SupportsPush() bool {
	if p.dir == Input {
		return p.arrival != nil
	}

	return !p.noPush
}

// SupportsPull tells whether items can be pulled through the port. For an
// output port this means a provision handler is registered.
func (p *Port) SupportsPull() bool {
	if p.dir == Output {
		return p.provision != nil
	}

	return !p.noPull
}

// Push submits an item through an output port and returns whether the peer
// accepted it.
func (p *Port) Push(item Item) bool {
	p.mustBeUsedAs(Output, "push")
	peer := p.mustHavePeer("push")

	p.InvokeHook(hooking.HookCtx{
		Domain: p,
		Pos:    HookPosPortPush,
		Item:   item,
	})

	if peer.arrival == nil {
		return false
	}

	if !peer.arrival(item) {
		return false
	}

	p.InvokeHook(hooking.HookCtx{
		Domain: p,
		Pos:    HookPosPortItemAccepted,
		Item:   item,
	})

	if p.accepted != nil {
		p.accepted(item)
	}

	return true
}

// Take removes and returns an item from the peer of an input port.
func (p *Port) Take(selector any) (Item, bool) {
	return p.pull("take", PullRequest{Selector: selector})
}

// Peek returns the item that Take would return, without removing it.
func (p *Port) Peek(selector any) (Item, bool) {
	return p.pull("peek", PullRequest{Selector: selector, Peek: true})
}

func (p *Port) pull(op string, req PullRequest) (Item, bool) {
	p.mustBeUsedAs(Input, op)
	peer := p.mustHavePeer(op)

	if peer.provision == nil {
		panic(newProtocolError(op, p, ErrPullUnsupported))
	}

	item, ok := peer.provision(req)
	if ok && !req.Peek {
		p.InvokeHook(hooking.HookCtx{
			Domain: p,
			Pos:    HookPosPortPull,
			Item:   item,
		})
	}

	return item, ok
}

// NotifyDataAvailable tells the peer of an output port that a pull would
// succeed. It does nothing if the port is not connected.
func (p *Port) NotifyDataAvailable() {
	p.mustBeUsedAs(Output, "notify data available")

	peer := p.Peer()
	if peer == nil {
		return
	}

	peer.InvokeHook(hooking.HookCtx{
		Domain: peer,
		Pos:    HookPosPortDataAvailable,
		Item:   p,
	})

	if peer.dataAvailable != nil {
		peer.dataAvailable()
	}
}

func (p *Port) mustHavePeer(op string) *Port {
	peer := p.Peer()
	if peer == nil {
		panic(newProtocolError(op, p, ErrNotConnected))
	}

	return peer
}

func (p *Port) mustBeUsedAs(dir Direction, op string) {
	if p.dir != dir {
		panic(newProtocolError(op, p, ErrWrongDirection))
	}
}

func (p *Port) mustBeConfiguredAs(dir Direction, what string) {
	if p.dir != dir {
		panic(fmt.Sprintf(
			"port %s is an %s port and cannot have a %s", p.name, p.dir, what))
	}
}

func handlerMustNotBeNil(p *Port, isNil bool) {
	if isNil {
		panic("nil handler given to port " + p.name)
	}
}
