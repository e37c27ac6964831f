package selection

// ShortestQueue picks the candidate with the lowest count. Ties go to the
// candidate that comes first in the candidate set.
type ShortestQueue struct {
	candidates []Candidate
}

// NewShortestQueue creates a ShortestQueue strategy.
func NewShortestQueue() *ShortestQueue {
	return &ShortestQueue{}
}

// Configure replaces the candidate set.
func (s *ShortestQueue) Configure(candidates []Candidate) {
	candidatesMustBeUnique(candidates)
	s.candidates = copyCandidates(candidates)
}

// Candidates returns the current candidate set.
func (s *ShortestQueue) Candidates() []Candidate {
	return s.candidates
}

// SelectNext scans all candidates.
func (s *ShortestQueue) SelectNext(_ any) (Candidate, error) {
	if len(s.candidates) == 0 {
		return nil, &ConfigError{Strategy: NameShortest, Err: ErrNoCandidates}
	}

	best := s.candidates[0]
	bestCount := best.Count()

	for _, c := range s.candidates[1:] {
		count := c.Count()
		if count < bestCount {
			best = c
			bestCount = count
		}
	}

	return best, nil
}
