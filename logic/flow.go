package logic

import (
	"cmp"
	"slices"

	"github.com/benbjohnson/immutable"
	"github.com/cottand/flowfacts/dfa"
	"github.com/cottand/flowfacts/internal/log"
	"github.com/hashicorp/go-set/v3"
	sortedset "github.com/xtgo/set"
)

var logger = log.DefaultLogger.With("section", "logic")

type idHasher struct{}

func (idHasher) Hash(id dfa.VariableID) uint32 { return uint32(id) }
func (idHasher) Equal(a, b dfa.VariableID) bool { return a == b }

// Flow is what is known at one program point. It is persistent: every
// method returns a new Flow and leaves the receiver untouched, so flows
// of sibling branches can share their common parts.
//
// The zero value is an empty Flow.
type Flow struct {
	// keyed by the variable of the implication's condition
	implications *immutable.Map[dfa.VariableID, []dfa.Implication]
	typeFacts    *immutable.Map[dfa.VariableID, dfa.TypeFact]
}

func NewFlow() Flow {
	return Flow{
		implications: immutable.NewMap[dfa.VariableID, []dfa.Implication](idHasher{}),
		typeFacts:    immutable.NewMap[dfa.VariableID, dfa.TypeFact](idHasher{}),
	}
}

func (f Flow) ensure() Flow {
	if f.implications == nil {
		f.implications = immutable.NewMap[dfa.VariableID, []dfa.Implication](idHasher{})
	}
	if f.typeFacts == nil {
		f.typeFacts = immutable.NewMap[dfa.VariableID, dfa.TypeFact](idHasher{})
	}
	return f
}

// AddImplication records i unless an equal implication is already known
func (f Flow) AddImplication(i dfa.Implication) Flow {
	f = f.ensure()
	id := i.Condition.Var.ID()
	existing, _ := f.implications.Get(id)
	if slices.ContainsFunc(existing, i.Equal) {
		return f
	}
	// existing may be shared with other flows, so never append in place
	updated := make([]dfa.Implication, len(existing), len(existing)+1)
	copy(updated, existing)
	f.implications = f.implications.Set(id, append(updated, i))
	return f
}

// Implications returns the implications whose condition is about v
func (f Flow) Implications(v dfa.Variable) []dfa.Implication {
	if f.implications == nil {
		return nil
	}
	found, _ := f.implications.Get(v.ID())
	return slices.Clone(found)
}

// AllImplications returns every implication, ordered by condition variable
func (f Flow) AllImplications() []dfa.Implication {
	if f.implications == nil {
		return nil
	}
	var all []dfa.Implication
	for _, id := range sortedKeys(f.implications) {
		found, _ := f.implications.Get(id)
		all = append(all, found...)
	}
	return all
}

// AddTypeFact and-merges tf with what is already known about its variable
func (f Flow) AddTypeFact(tf dfa.TypeFact) Flow {
	f = f.ensure()
	id := tf.Var.ID()
	if existing, ok := f.typeFacts.Get(id); ok {
		// same variable, so And cannot fail
		tf, _ = And(existing, tf)
	}
	f.typeFacts = f.typeFacts.Set(id, tf)
	return f
}

func (f Flow) TypeFact(v dfa.RealVariable) (dfa.TypeFact, bool) {
	if f.typeFacts == nil {
		return dfa.TypeFact{}, false
	}
	return f.typeFacts.Get(v.ID())
}

// TypeFacts returns every type fact, ordered by variable
func (f Flow) TypeFacts() []dfa.TypeFact {
	if f.typeFacts == nil {
		return nil
	}
	var all []dfa.TypeFact
	for _, id := range sortedKeys(f.typeFacts) {
		tf, _ := f.typeFacts.Get(id)
		all = append(all, tf)
	}
	return all
}

// Approve returns the effects of the implications that follow from cond.
// Effects that are themselves conditions are approved in turn.
// Facts are returned once each, in the order they were found.
func (f Flow) Approve(cond dfa.ConditionFact) []dfa.Fact {
	if f.implications == nil {
		return nil
	}
	var approved []dfa.Fact
	seen := set.NewHashSet[dfa.Fact, uint64](8)
	visited := set.NewHashSet[dfa.ConditionFact, uint64](4)
	visited.Insert(cond)

	queue := []dfa.ConditionFact{cond}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		candidates, _ := f.implications.Get(current.Var.ID())
		for _, i := range candidates {
			if !i.Condition.Equal(current) {
				continue
			}
			effect := i.Effect
			if seen.Contains(effect) && slices.ContainsFunc(approved, func(other dfa.Fact) bool {
				return dfa.EqualFacts(effect, other)
			}) {
				continue
			}
			seen.Insert(effect)
			approved = append(approved, effect)
			logger.Debug("approved fact", "condition", current, "effect", effect)

			switch effect := effect.(type) {
			case dfa.ConditionFact:
				if visited.Insert(effect) {
					queue = append(queue, effect)
				}
			case dfa.TypeFact:
			default:
				panic("unexpected fact " + effect.String())
			}
		}
	}
	return approved
}

// ApproveInto approves cond and records every resulting type fact
func (f Flow) ApproveInto(cond dfa.ConditionFact) Flow {
	for _, effect := range f.Approve(cond) {
		if tf, ok := effect.(dfa.TypeFact); ok {
			f = f.AddTypeFact(tf)
		}
	}
	return f
}

// Join merges the flows of converging branches. Implications survive if
// every branch knows them, and type facts are or-merged. A variable
// that is not narrowed on some branch is not narrowed after the join.
func Join(flows ...Flow) Flow {
	if len(flows) == 0 {
		return NewFlow()
	}
	flows = slices.Clone(flows)
	for i := range flows {
		flows[i] = flows[i].ensure()
	}
	first, rest := flows[0], flows[1:]
	res := NewFlow()

	conditionVars := commonKeys(flows, func(f Flow) []dfa.VariableID { return sortedKeys(f.implications) })
	for _, id := range conditionVars {
		candidates, _ := first.implications.Get(id)
		for _, implication := range candidates {
			inAll := !slices.ContainsFunc(rest, func(other Flow) bool {
				found, _ := other.implications.Get(id)
				return !slices.ContainsFunc(found, implication.Equal)
			})
			if inAll {
				res = res.AddImplication(implication)
			}
		}
	}

	for _, id := range commonKeys(flows, func(f Flow) []dfa.VariableID { return sortedKeys(f.typeFacts) }) {
		facts := make([]dfa.TypeFact, 0, len(flows))
		for _, f := range flows {
			tf, _ := f.typeFacts.Get(id)
			facts = append(facts, tf)
		}
		// all about the same variable, so Or cannot fail
		merged, _ := Or(facts...)
		res = res.AddTypeFact(merged)
	}
	logger.Debug("joined flows", "count", len(flows), "typeFacts", len(res.TypeFacts()))
	return res
}

type variableIDs []dfa.VariableID

func (ids variableIDs) Len() int           { return len(ids) }
func (ids variableIDs) Less(i, j int) bool { return ids[i] < ids[j] }
func (ids variableIDs) Swap(i, j int)      { ids[i], ids[j] = ids[j], ids[i] }

// commonKeys returns the sorted variable IDs that keysOf yields for every flow.
// keysOf must return sorted keys without duplicates.
func commonKeys(flows []Flow, keysOf func(Flow) []dfa.VariableID) []dfa.VariableID {
	keys := keysOf(flows[0])
	for _, f := range flows[1:] {
		if len(keys) == 0 {
			break
		}
		data := append(slices.Clone(keys), keysOf(f)...)
		keys = data[:sortedset.Inter(variableIDs(data), len(keys))]
	}
	return keys
}

func sortedKeys[V any](m *immutable.Map[dfa.VariableID, V]) []dfa.VariableID {
	keys := make([]dfa.VariableID, 0, m.Len())
	itr := m.Iterator()
	for !itr.Done() {
		k, _, ok := itr.Next()
		if !ok {
			break
		}
		keys = append(keys, k)
	}
	slices.SortFunc(keys, cmp.Compare[dfa.VariableID])
	return keys
}
