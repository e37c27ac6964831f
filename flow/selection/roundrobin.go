package selection

// RoundRobin hands out the candidates in turn.
type RoundRobin struct {
	candidates []Candidate
	next       int
}

// NewRoundRobin creates a RoundRobin strategy.
func NewRoundRobin() *RoundRobin {
	return &RoundRobin{}
}

// Configure replaces the candidate set and restarts from the first candidate.
func (s *RoundRobin) Configure(candidates []Candidate) {
	candidatesMustBeUnique(candidates)
	s.candidates = copyCandidates(candidates)
	s.next = 0
}

// Candidates returns the current candidate set.
func (s *RoundRobin) Candidates() []Candidate {
	return s.candidates
}

// SelectNext returns the next candidate in turn.
func (s *RoundRobin) SelectNext(_ any) (Candidate, error) {
	if len(s.candidates) == 0 {
		return nil, &ConfigError{Strategy: NameRoundRobin, Err: ErrNoCandidates}
	}

	c := s.candidates[s.next]
	s.next = (s.next + 1) % len(s.candidates)

	return c, nil
}
