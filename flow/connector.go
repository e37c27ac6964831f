package flow

// A Connector binds one output port to one input port for the life of the
// network.
type Connector struct {
	out *Port
	in  *Port
}

// Connect binds out to in. Both ports must be unconnected and of the right
// direction.
func Connect(out, in *Port) (*Connector, error) {
	if out.dir != Output {
		return nil, newProtocolError("connect", out, ErrWrongDirection)
	}

	if in.dir != Input {
		return nil, newProtocolError("connect", in, ErrWrongDirection)
	}

	if out.conn != nil {
		return nil, newProtocolError("connect", out, ErrAlreadyConnected)
	}

	if in.conn != nil {
		return nil, newProtocolError("connect", in, ErrAlreadyConnected)
	}

	c := &Connector{out: out, in: in}
	out.conn = c
	in.conn = c

	return c, nil
}

// MustConnect is like Connect but panics on error.
func MustConnect(out, in *Port) *Connector {
	c, err := Connect(out, in)
	if err != nil {
		panic(err)
	}

	return c
}

// Name returns a readable name of the binding.
func (c *Connector) Name() string {
	return c.out.Name() + "->" + c.in.Name()
}

// Out returns the output side of the binding.
func (c *Connector) Out() *Port {
	return c.out
}

// In returns the input side of the binding.
func (c *Connector) In() *Port {
	return c.in
}
