package selection

import "github.com/sarchlab/flowsim/flow"

// Random picks a candidate uniformly with draws from a random stream.
type Random struct {
	candidates []Candidate
	stream     flow.RandomStream
}

// NewRandom creates a Random strategy.
func NewRandom(stream flow.RandomStream) *Random {
	return &Random{stream: stream}
}

// Configure replaces the candidate set.
func (s *Random) Configure(candidates []Candidate) {
	candidatesMustBeUnique(candidates)
	s.candidates = copyCandidates(candidates)
}

// Candidates returns the current candidate set.
func (s *Random) Candidates() []Candidate {
	return s.candidates
}

// SelectNext draws one candidate.
func (s *Random) SelectNext(_ any) (Candidate, error) {
	if len(s.candidates) == 0 {
		return nil, &ConfigError{Strategy: NameRandom, Err: ErrNoCandidates}
	}

	i := int(s.stream.RandU01() * float64(len(s.candidates)))
	if i >= len(s.candidates) {
		i = len(s.candidates) - 1
	}

	return s.candidates[i], nil
}
