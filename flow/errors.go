package flow

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConnected is raised when a transfer is attempted on a port that
	// has no peer.
	ErrNotConnected = errors.New("port is not connected")

	// ErrPullUnsupported is raised when Take or Peek reaches an output port
	// that has no provision handler.
	ErrPullUnsupported = errors.New("peer port does not support pull")

	// ErrWrongDirection is raised when a port is used against its direction.
	ErrWrongDirection = errors.New("operation not allowed for port direction")

	// ErrAlreadyConnected is returned when connecting a port that already has
	// a peer.
	ErrAlreadyConnected = errors.New("port is already connected")
)

// A ProtocolError describes an illegal use of a port.
type ProtocolError struct {
	Op   string
	Port string
	Err  error
}

func newProtocolError(op string, p *Port, err error) *ProtocolError {
	return &ProtocolError{Op: op, Port: p.Name(), Err: err}
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("%s on port %s: %v", e.Op, e.Port, e.Err)
}

// Unwrap returns the sentinel error.
func (e *ProtocolError) Unwrap() error {
	return e.Err
}
