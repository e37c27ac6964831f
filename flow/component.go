package flow

import (
	"fmt"
	"os"

	"github.com/sarchlab/flowsim/sim/hooking"
	"github.com/sarchlab/flowsim/sim/naming"
)

// A Model owns components. It hands out identifiers and lets components be
// found by them afterwards.
type Model interface {
	naming.Named
	hooking.Hookable

	// GenerateID returns an identifier that no other component of the model
	// has.
	GenerateID() string

	// Register makes the component discoverable by its ID.
	Register(c Component) error

	// Lookup finds a registered component.
	Lookup(id string) (Component, bool)
}

// A Component is an element of the network.
type Component interface {
	naming.Named
	hooking.Hookable

	ID() string
	Model() Model
	Ports() []*Port
	GetPortByName(name string) *Port
	Capabilities() []Capability
}

// A Capability describes what a port of a component supports. It is meant for
// tools that assemble networks and is not enforced.
type Capability struct {
	Port      string
	Direction Direction
	Push      bool
	Pull      bool
}

func (c Capability) String() string {
	roles := ""
	if c.Push {
		roles += "push"
	}

	if c.Pull {
		if roles != "" {
			roles += "+"
		}

		roles += "pull"
	}

	if roles == "" {
		roles = "none"
	}

	return fmt.Sprintf("%s(%s:%s)", c.Port, c.Direction, roles)
}

// ComponentBase provides identity and port bookkeeping for components.
type ComponentBase struct {
	hooking.HookableBase

	id     string
	name   string
	model  Model
	ports  []*Port
	byName map[string]*Port
	sealed bool
}

// NewComponentBase creates a ComponentBase. The identifier is requested from
// the model right away and never changes.
func NewComponentBase(model Model, name string) *ComponentBase {
	naming.NameMustBeValid(name)

	if model == nil {
		panic("component " + name + " is built without a model")
	}

	return &ComponentBase{
		id:     model.GenerateID(),
		name:   name,
		model:  model,
		byName: make(map[string]*Port),
	}
}

// ID returns the identifier assigned by the model.
func (c *ComponentBase) ID() string {
	return c.id
}

// Name returns the name of the component.
func (c *ComponentBase) Name() string {
	return c.name
}

// Model returns the owning model.
func (c *ComponentBase) Model() Model {
	return c.model
}

// AddPort attaches a port under a local name such as "In" or "Out[2]". Ports
// can only be added before the component is sealed.
func (c *ComponentBase) AddPort(localName string, p *Port) {
	if c.sealed {
		panic(fmt.Sprintf(
			"cannot add port %s to %s: ports are fixed after construction",
			localName, c.name))
	}

	if _, found := c.byName[localName]; found {
		panic("port " + localName + " already added to " + c.name)
	}

	c.byName[localName] = p
	c.ports = append(c.ports, p)
}

// Ports returns the ports in the order they were added.
func (c *ComponentBase) Ports() []*Port {
	return c.ports
}

// GetPortByName returns the port by its local name.
func (c *ComponentBase) GetPortByName(name string) *Port {
	port, found := c.byName[name]
	if !found {
		errMsg := fmt.Sprintf(
			"Port %s is not available on component %s.\n", name, c.name)
		errMsg += "Available ports include:\n"

		for _, p := range c.ports {
			errMsg += fmt.Sprintf("\t%s\n", p.Name())
		}

		fmt.Fprint(os.Stderr, errMsg)

		panic("port not found")
	}

	return port
}

// Capabilities lists the push and pull support of every port.
func (c *ComponentBase) Capabilities() []Capability {
	caps := make([]Capability, 0, len(c.ports))
	for _, p := range c.ports {
		caps = append(caps, Capability{
			Port:      p.Name(),
			Direction: p.Direction(),
			Push:      p.SupportsPush(),
			Pull:      p.SupportsPull(),
		})
	}

	return caps
}

// Seal freezes the port set and registers self with the model. Builders call
// it as the last step of Build.
func (c *ComponentBase) Seal(self Component) {
	if c.sealed {
		panic("component " + c.name + " is already sealed")
	}

	c.sealed = true

	err := c.model.Register(self)
	if err != nil {
		panic(err)
	}
}
