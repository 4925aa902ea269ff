package logic

import (
	"testing"

	"github.com/cottand/flowfacts/dfa"
	"github.com/cottand/flowfacts/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var flag = dfa.NewSyntheticVariable(10)

func TestFlowZeroValue(t *testing.T) {
	var f Flow
	assert.Empty(t, f.AllImplications())
	assert.Empty(t, f.TypeFacts())
	assert.Empty(t, f.Approve(dfa.NewConditionFact(v, dfa.IsTrue)))
	_, ok := f.TypeFact(v)
	assert.False(t, ok)

	f = f.AddTypeFact(dfa.NewTypeFact(v, t1))
	tf, ok := f.TypeFact(v)
	require.True(t, ok)
	assert.Equal(t, "v: {T1}", tf.String())
}

func TestFlowAddImplicationDeduplicates(t *testing.T) {
	cond := dfa.NewConditionFact(v, dfa.IsNonNull)
	f := NewFlow().
		AddImplication(dfa.NewImplication(cond, dfa.NewTypeFact(v, t1, t2))).
		AddImplication(dfa.NewImplication(cond, dfa.NewTypeFact(v, t2, t1))).
		AddImplication(dfa.NewImplication(cond.Invert(), dfa.NewTypeFact(v, t3)))

	assert.Len(t, f.Implications(v), 2)
	assert.Len(t, f.AllImplications(), 2)
	assert.Empty(t, f.Implications(w))
}

func TestFlowIsPersistent(t *testing.T) {
	cond := dfa.NewConditionFact(v, dfa.IsNonNull)
	base := NewFlow().AddImplication(dfa.NewImplication(cond, dfa.NewTypeFact(v, t1)))
	left := base.AddImplication(dfa.NewImplication(cond, dfa.NewTypeFact(w, t2)))
	right := base.AddTypeFact(dfa.NewTypeFact(w, t3))

	assert.Len(t, base.Implications(v), 1)
	assert.Len(t, left.Implications(v), 2)
	assert.Len(t, right.Implications(v), 1)
	assert.Empty(t, base.TypeFacts())
	assert.Empty(t, left.TypeFacts())
	assert.Len(t, right.TypeFacts(), 1)
}

func TestFlowAddTypeFactAndsWithExisting(t *testing.T) {
	f := NewFlow().
		AddTypeFact(dfa.NewTypeFact(v, t1)).
		AddTypeFact(dfa.NewTypeFact(v, t2)).
		AddTypeFact(dfa.NewTypeFact(w, t3))
	assert.Equal(t, []string{"v: {T1, T2}", "w: {T3}"}, util.Render(f.TypeFacts()))
}

func TestFlowApproveIsTransitive(t *testing.T) {
	// $10 == True -> v != Null -> v: {T1}
	flagTrue := dfa.NewConditionFact(flag, dfa.IsTrue)
	vNonNull := dfa.NewConditionFact(v, dfa.IsNonNull)
	f := NewFlow().
		AddImplication(dfa.NewImplication(flagTrue, vNonNull)).
		AddImplication(dfa.NewImplication(vNonNull, dfa.NewTypeFact(v, t1))).
		AddImplication(dfa.NewImplication(vNonNull.Invert(), dfa.NewTypeFact(v, t2))).
		AddImplication(dfa.NewImplication(flagTrue.Invert(), dfa.NewTypeFact(w, t3)))

	approved := f.Approve(flagTrue)
	assert.Equal(t, []string{"v != Null", "v: {T1}"}, util.Render(approved))

	approved = f.Approve(flagTrue.Invert())
	assert.Equal(t, []string{"w: {T3}"}, util.Render(approved))

	assert.Empty(t, f.Approve(dfa.NewConditionFact(w, dfa.IsTrue)))
}

func TestFlowApproveStopsOnCycles(t *testing.T) {
	a := dfa.NewConditionFact(v, dfa.IsTrue)
	b := dfa.NewConditionFact(w, dfa.IsTrue)
	f := NewFlow().
		AddImplication(dfa.NewImplication(a, b)).
		AddImplication(dfa.NewImplication(b, a)).
		AddImplication(dfa.NewImplication(b, dfa.NewTypeFact(w, t1)))

	assert.Equal(t, []string{"w == True", "v == True", "w: {T1}"}, util.Render(f.Approve(a)))
}

func TestFlowApproveInto(t *testing.T) {
	cond := dfa.NewConditionFact(v, dfa.IsNonNull)
	f := NewFlow().
		AddTypeFact(dfa.NewTypeFact(v, t1)).
		AddImplication(dfa.NewImplication(cond, dfa.NewTypeFact(v, t2))).
		ApproveInto(cond)
	tf, ok := f.TypeFact(v)
	require.True(t, ok)
	assert.Equal(t, "v: {T1, T2}", tf.String())
}

func TestJoin(t *testing.T) {
	shared := dfa.NewImplication(dfa.NewConditionFact(flag, dfa.IsTrue), dfa.NewTypeFact(v, t1))
	onlyLeft := dfa.NewImplication(dfa.NewConditionFact(flag, dfa.IsFalse), dfa.NewTypeFact(v, t2))

	left := NewFlow().
		AddImplication(shared).
		AddImplication(onlyLeft).
		AddTypeFact(dfa.NewTypeFact(v, t1, t2)).
		AddTypeFact(dfa.NewTypeFact(w, t1))
	right := NewFlow().
		AddImplication(shared).
		AddTypeFact(dfa.NewTypeFact(v, t2, t3))

	joined := Join(left, right)
	assert.Equal(t, []string{shared.String()}, util.Render(joined.AllImplications()))
	// w is not narrowed on the right branch
	assert.Equal(t, []string{"v: {T2}"}, util.Render(joined.TypeFacts()))

	assert.Empty(t, Join().TypeFacts())
	assert.Equal(t, util.Render(left.TypeFacts()), util.Render(Join(left).TypeFacts()))
}

func TestJoinKeepsOnlyVariablesKnownOnEveryBranch(t *testing.T) {
	shared := dfa.NewImplication(dfa.NewConditionFact(flag, dfa.IsTrue), dfa.NewTypeFact(v, t1))
	onW := dfa.NewImplication(dfa.NewConditionFact(w, dfa.IsNonNull), dfa.NewTypeFact(w, t2))

	a := NewFlow().AddImplication(shared).AddImplication(onW).
		AddTypeFact(dfa.NewTypeFact(v, t1)).AddTypeFact(dfa.NewTypeFact(w, t2))
	b := NewFlow().AddImplication(shared).
		AddTypeFact(dfa.NewTypeFact(v, t2)).AddTypeFact(dfa.NewTypeFact(w, t2))
	c := NewFlow().AddImplication(shared).AddImplication(onW).
		AddTypeFact(dfa.NewTypeFact(v, t3))
	flows := []Flow{a, b, c}

	joined := Join(flows...)
	assert.Equal(t, []string{shared.String()}, util.Render(joined.AllImplications()))
	assert.Equal(t, []string{"v: {}"}, util.Render(joined.TypeFacts()))

	var zero Flow
	assert.Empty(t, Join(a, zero).AllImplications())
	assert.Empty(t, Join(zero, a).TypeFacts())
	// the arguments are left untouched
	assert.Equal(t, Flow{}, zero)
	assert.Len(t, flows[1].TypeFacts(), 2)
}

func TestCommonKeys(t *testing.T) {
	withVars := func(ids ...dfa.VariableID) Flow {
		f := NewFlow()
		for _, id := range ids {
			f = f.AddTypeFact(dfa.NewTypeFact(dfa.NewRealVariable(id, "x", t1), t1))
		}
		return f
	}
	typeFactKeys := func(f Flow) []dfa.VariableID { return sortedKeys(f.typeFacts) }
	flows := []Flow{withVars(7, 1, 5, 3), withVars(2, 3, 5, 8), withVars(0, 5, 7)}

	assert.Equal(t, []dfa.VariableID{5}, commonKeys(flows, typeFactKeys))
	assert.Equal(t, []dfa.VariableID{3, 5}, commonKeys(flows[:2], typeFactKeys))
	assert.Equal(t, []dfa.VariableID{1, 3, 5, 7}, commonKeys(flows[:1], typeFactKeys))
	assert.Empty(t, commonKeys([]Flow{withVars(1), withVars(2), withVars(1)}, typeFactKeys))
}
