package selection

import (
	"github.com/sarchlab/flowsim/flow/queueing"
	"github.com/sarchlab/flowsim/sim/hooking"
)

// OldestShortestQueue keeps the candidates ordered by count and hands out the
// front of that order. Among candidates of the same count, the one that has
// held that count the longest comes first.
//
// The order is maintained from the candidates' HookPosLevelChanged
// notifications. A selected candidate leaves the order and only comes back
// when its own count changes next.
type OldestShortestQueue struct {
	candidates []Candidate
	order      []Candidate
}

// NewOldestShortestQueue creates an OldestShortestQueue strategy.
func NewOldestShortestQueue() *OldestShortestQueue {
	return &OldestShortestQueue{}
}

// Configure replaces the candidate set. The strategy stops listening to the
// previous candidates and starts listening to the new ones.
func (s *OldestShortestQueue) Configure(candidates []Candidate) {
	candidatesMustBeUnique(candidates)

	for _, c := range s.candidates {
		c.RemoveHook(s)
	}

	s.candidates = copyCandidates(candidates)
	s.order = make([]Candidate, 0, len(candidates))

	for _, c := range s.candidates {
		c.AcceptHook(s)
		s.insert(c, c.Count())
	}
}

// Candidates returns the current candidate set.
func (s *OldestShortestQueue) Candidates() []Candidate {
	return s.candidates
}

// Order returns a copy of the current ordering, front first.
func (s *OldestShortestQueue) Order() []Candidate {
	return copyCandidates(s.order)
}

// SelectNext removes and returns the front of the ordering. A returned
// candidate normally comes back only when its own level changes. When the
// ordering is empty, every candidate is put back by level instead, even if its
// level has not changed, so that selection never fails on a configured set.
func (s *OldestShortestQueue) SelectNext(_ any) (Candidate, error) {
	if len(s.candidates) == 0 {
		return nil, &ConfigError{
			Strategy: NameOldestShortest,
			Err:      ErrNoCandidates,
		}
	}

	if len(s.order) == 0 {
		for _, c := range s.candidates {
			s.insert(c, c.Count())
		}
	}

	front := s.order[0]
	s.order = s.order[1:]

	return front, nil
}

// Func re-sorts a candidate whose level changed.
func (s *OldestShortestQueue) Func(ctx hooking.HookCtx) {
	if ctx.Pos != queueing.HookPosLevelChanged {
		return
	}

	c := s.findCandidate(ctx.Domain)
	if c == nil {
		return
	}

	change := ctx.Detail.(queueing.LevelChange)

	s.remove(c)
	s.insert(c, change.Current)
}

func (s *OldestShortestQueue) findCandidate(domain hooking.Hookable) Candidate {
	for _, c := range s.candidates {
		if c == domain {
			return c
		}
	}

	return nil
}

func (s *OldestShortestQueue) remove(c Candidate) {
	for i, o := range s.order {
		if o == c {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}

// insert places c after every entry whose count is not greater than count.
func (s *OldestShortestQueue) insert(c Candidate, count int) {
	i := 0
	for i < len(s.order) && s.order[i].Count() <= count {
		i++
	}

	s.order = append(s.order, nil)
	copy(s.order[i+1:], s.order[i:])
	s.order[i] = c
}
