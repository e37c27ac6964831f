package routing

import (
	"fmt"

	"github.com/sarchlab/flowsim/flow"
)

const (
	yesOutput = 0
	noOutput  = 1
)

// TwoChoiceBranch is a Branch with a Yes and a No output. It decides either
// with a predicate or by comparing a random draw with a threshold.
type TwoChoiceBranch struct {
	*Branch
}

// Yes returns the output taken when the predicate holds or the draw does not
// exceed the threshold.
func (b *TwoChoiceBranch) Yes() *flow.Port {
	return b.outs[yesOutput]
}

// No returns the other output.
func (b *TwoChoiceBranch) No() *flow.Port {
	return b.outs[noOutput]
}

// SetPredicate makes the branch route items for which pred holds to Yes.
func (b *TwoChoiceBranch) SetPredicate(pred func(item flow.Item) bool) {
	b.SetDecider(predicateDecider(pred))
}

// SetThreshold makes the branch route an item to Yes when a draw from the
// stream is less than or equal to the threshold.
func (b *TwoChoiceBranch) SetThreshold(
	threshold float64,
	stream flow.RandomStream,
) {
	b.SetDecider(thresholdDecider(threshold, stream))
}

func predicateDecider(pred func(item flow.Item) bool) Decider {
	if pred == nil {
		panic("predicate must not be nil")
	}

	return DeciderFunc(func(item flow.Item) int {
		if pred(item) {
			return yesOutput
		}

		return noOutput
	})
}

func thresholdDecider(threshold float64, stream flow.RandomStream) Decider {
	if threshold < 0 || threshold > 1 {
		panic(fmt.Sprintf("threshold %f is not in [0, 1]", threshold))
	}

	if stream == nil {
		panic("random stream must not be nil")
	}

	return DeciderFunc(func(flow.Item) int {
		if stream.RandU01() <= threshold {
			return yesOutput
		}

		return noOutput
	})
}

// TwoChoiceBranchBuilder can build two-choice branches.
type TwoChoiceBranchBuilder struct {
	model   flow.Model
	decider Decider
}

// MakeTwoChoiceBranchBuilder creates a builder for a branch without decider.
func MakeTwoChoiceBranchBuilder() TwoChoiceBranchBuilder {
	return TwoChoiceBranchBuilder{}
}

// WithModel sets the model that owns the branch.
func (b TwoChoiceBranchBuilder) WithModel(
	m flow.Model,
) TwoChoiceBranchBuilder {
	b.model = m
	return b
}

// WithPredicate makes the branch decide with a predicate.
func (b TwoChoiceBranchBuilder) WithPredicate(
	pred func(item flow.Item) bool,
) TwoChoiceBranchBuilder {
	b.decider = predicateDecider(pred)
	return b
}

// WithThreshold makes the branch decide by random draws.
func (b TwoChoiceBranchBuilder) WithThreshold(
	threshold float64,
	stream flow.RandomStream,
) TwoChoiceBranchBuilder {
	b.decider = thresholdDecider(threshold, stream)
	return b
}

// Build creates the branch.
func (b TwoChoiceBranchBuilder) Build(name string) *TwoChoiceBranch {
	br := &TwoChoiceBranch{}
	br.Branch = newBranch(b.model, name, []string{"Yes", "No"}, br)
	br.decider = b.decider
	br.Seal(br)

	return br
}
