// Package logic combines facts the way the flow analysis needs to when it
// walks branches: and-ing them on a single path, or-ing them at joins, and
// approving implications once a condition is known to hold.
package logic

import (
	"github.com/cottand/flowfacts/dfa"
	"github.com/pkg/errors"
)

var (
	ErrNoFacts          = errors.New("no type facts to merge")
	ErrVariableMismatch = errors.New("type facts are about different variables")
)

// And merges facts that hold at the same time, like both sides of 'a && b'.
// The result is narrowed to the union of all types.
func And(facts ...dfa.TypeFact) (dfa.TypeFact, error) {
	return merge(facts, dfa.TypeSet.Union)
}

// Or merges facts that each hold on one of several joining branches.
// Only the types common to all of them survive.
func Or(facts ...dfa.TypeFact) (dfa.TypeFact, error) {
	return merge(facts, dfa.TypeSet.Intersect)
}

func merge(facts []dfa.TypeFact, op func(dfa.TypeSet, dfa.TypeSet) dfa.TypeSet) (dfa.TypeFact, error) {
	if len(facts) == 0 {
		return dfa.TypeFact{}, ErrNoFacts
	}
	res := facts[0]
	for _, f := range facts[1:] {
		if f.Var.ID() != res.Var.ID() {
			return dfa.TypeFact{}, errors.Wrapf(ErrVariableMismatch, "cannot merge '%s' with '%s'", res, f)
		}
		res = dfa.NewTypeFactFromSet(res.Var, op(res.Types, f.Types))
	}
	return res, nil
}
