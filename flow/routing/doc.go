// Package routing provides the components that move items between several
// ports: the MultiQueueHead that spreads arrivals over queues, and the
// Splitter, Joiner, and Branch combinators.
package routing
