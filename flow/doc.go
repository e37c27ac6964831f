// Package flow defines the transfer protocol of the item-flow network.
//
// A network is made of components that own a fixed set of ports. An output
// port is bound to exactly one input port by a Connector. Items move across a
// connector in one of two ways:
//
//   - Push: the owner of the output port calls Push. The item is handed to
//     the arrival handler of the connected input port, which accepts or
//     rejects it.
//   - Pull: the owner of the input port calls Take or Peek. The request is
//     handed to the provision handler of the connected output port, which
//     returns an item or nothing.
//
// Every call runs synchronously on the caller's goroutine and recurses through
// the network until it completes. Nothing in this package blocks or schedules
// work for later; waiting is left to whoever drives the network.
//
// Rejected pushes and empty pulls are ordinary outcomes and are returned as
// values. Using a port that is not connected, pulling from a peer that cannot
// provide, or using a port against its direction are programming errors and
// panic with a *ProtocolError.
package flow
