// Package topology checks assembled networks before they run.
//
// Nothing here is needed to move items. The checks report mistakes that the
// port protocol would otherwise only surface as a panic or as items that
// never move.
package topology

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/sarchlab/flowsim/flow"
)

var (
	// ErrUnconnectedPort is reported for a port without a peer.
	ErrUnconnectedPort = errors.New("port is not connected")

	// ErrDeadLink is reported for a connection on which neither a push nor a
	// pull can succeed.
	ErrDeadLink = errors.New("connection can neither push nor pull")
)

// Validate checks every port of the components. All problems found are
// returned together as a *multierror.Error.
func Validate(components []flow.Component) error {
	var result *multierror.Error

	for _, c := range components {
		for _, p := range c.Ports() {
			if !p.IsConnected() {
				result = multierror.Append(result,
					fmt.Errorf("%s: %w", p.Name(), ErrUnconnectedPort))

				continue
			}

			if p.Direction() == flow.Output && !linkUsable(p, p.Peer()) {
				result = multierror.Append(result,
					fmt.Errorf("%s: %w", p.Connector().Name(), ErrDeadLink))
			}
		}
	}

	return result.ErrorOrNil()
}

func linkUsable(out, in *flow.Port) bool {
	pushable := out.SupportsPush() && in.SupportsPush()
	pullable := in.SupportsPull() && out.SupportsPull()

	return pushable || pullable
}
