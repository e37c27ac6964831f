// Package selection provides the policies that pick one queue out of a set of
// candidates.
package selection

import (
	"errors"
	"fmt"

	"github.com/sarchlab/flowsim/flow"
	"github.com/sarchlab/flowsim/sim/hooking"
)

// ErrNoCandidates is reported when a strategy is asked to select from an
// empty candidate set.
var ErrNoCandidates = errors.New("no candidates configured")

// A ConfigError reports a strategy that cannot select because of how it was
// set up.
type ConfigError struct {
	Strategy string
	Err      error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s strategy: %v", e.Strategy, e.Err)
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// A Candidate is something a strategy can select, usually a queue.
type Candidate interface {
	hooking.Hookable

	Name() string
	Count() int
}

// A Strategy chooses among a set of candidates.
type Strategy interface {
	// Configure replaces the candidate set.
	Configure(candidates []Candidate)

	// Candidates returns the current candidate set.
	Candidates() []Candidate

	// SelectNext returns one of the candidates. The context is supplied by
	// the caller and may be nil.
	SelectNext(ctx any) (Candidate, error)
}

// Names of the built-in strategies, as accepted by New.
const (
	NameShortest       = "shortest"
	NameOldestShortest = "oldest-shortest"
	NameRoundRobin     = "round-robin"
	NameRandom         = "random"
)

// New creates a built-in strategy by name. The random stream is only used by
// the random strategy.
func New(name string, stream flow.RandomStream) (Strategy, error) {
	switch name {
	case NameShortest:
		return NewShortestQueue(), nil
	case NameOldestShortest:
		return NewOldestShortestQueue(), nil
	case NameRoundRobin:
		return NewRoundRobin(), nil
	case NameRandom:
		if stream == nil {
			return nil, &ConfigError{
				Strategy: name,
				Err:      errors.New("random stream is required"),
			}
		}

		return NewRandom(stream), nil
	default:
		return nil, fmt.Errorf("unknown selection strategy: %s", name)
	}
}

// AvailableStrategies returns the names accepted by New.
func AvailableStrategies() []string {
	return []string{
		NameShortest,
		NameOldestShortest,
		NameRoundRobin,
		NameRandom,
	}
}

func candidatesMustBeUnique(candidates []Candidate) {
	for i := range candidates {
		for j := i + 1; j < len(candidates); j++ {
			if candidates[i] == candidates[j] {
				panic("candidate " + candidates[i].Name() + " given twice")
			}
		}
	}
}

func copyCandidates(candidates []Candidate) []Candidate {
	c := make([]Candidate, len(candidates))
	copy(c, candidates)

	return c
}
