package dfa

import (
	"fmt"
	"hash/fnv"
)

// Fact is known information about a single variable.
// It is either a ConditionFact or a TypeFact.
type Fact interface {
	Variable() Variable
	Hash() uint64
	String() string
	isFact()
}

var (
	_ Fact = ConditionFact{}
	_ Fact = TypeFact{}
)

// ConditionFact states the outcome of a boolean or nullability test,
// like 'x != Null'. As for Condition, the zero Condition is invalid and
// Invert panics on it.
type ConditionFact struct {
	Var       Variable
	Condition Condition
}

func NewConditionFact(v Variable, c Condition) ConditionFact {
	return ConditionFact{Var: v, Condition: c}
}

func (f ConditionFact) Variable() Variable { return f.Var }
func (ConditionFact) isFact()              {}

// Invert returns the fact that holds on the other branch of the same test
func (f ConditionFact) Invert() ConditionFact {
	return ConditionFact{Var: f.Var, Condition: f.Condition.Invert()}
}

func (f ConditionFact) Equal(other ConditionFact) bool {
	return f.Condition == other.Condition && SameVariable(f.Var, other.Var)
}

func (f ConditionFact) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte{'c', byte(f.Condition)})
	_, _ = h.Write(idBytes(f.Var))
	return h.Sum64()
}

func (f ConditionFact) String() string {
	return fmt.Sprintf("%v %v", f.Var, f.Condition)
}

// TypeFact states that a real variable is known to have all the types in Types.
// An empty set means no narrowing is known.
//
// There is no inversion for a TypeFact: the complement of a finite set of
// types is not a finite set of types.
//
// TypeFact is not comparable with ==, use Equal and Hash.
type TypeFact struct {
	Var   RealVariable
	Types TypeSet
}

func NewTypeFact(v RealVariable, types ...Type) TypeFact {
	return TypeFact{Var: v, Types: NewTypeSet(types...)}
}

func NewTypeFactFromSet(v RealVariable, types TypeSet) TypeFact {
	return TypeFact{Var: v, Types: types}
}

func (f TypeFact) Variable() Variable { return f.Var }
func (TypeFact) isFact()              {}
func (f TypeFact) IsEmpty() bool      { return f.Types.IsEmpty() }
func (f TypeFact) IsNotEmpty() bool   { return !f.IsEmpty() }

func (f TypeFact) Equal(other TypeFact) bool {
	return f.Var.ID() == other.Var.ID() && f.Types.Equal(other.Types)
}

func (f TypeFact) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte{'t'})
	_, _ = h.Write(idBytes(f.Var))
	return h.Sum64() ^ f.Types.Hash()
}

func (f TypeFact) String() string {
	return fmt.Sprintf("%v: %v", f.Var, f.Types)
}

// EqualFacts is structural equality over both kinds of Fact.
// Facts of different kinds are never equal.
func EqualFacts(a, b Fact) bool {
	switch a := a.(type) {
	case ConditionFact:
		b, ok := b.(ConditionFact)
		return ok && a.Equal(b)
	case TypeFact:
		b, ok := b.(TypeFact)
		return ok && a.Equal(b)
	case nil:
		return b == nil
	default:
		panic(fmt.Sprintf("unexpected fact %T", a))
	}
}

func idBytes(v Variable) []byte {
	if v == nil {
		return nil
	}
	id := v.ID()
	return []byte{byte(id), byte(id >> 8), byte(id >> 16), byte(id >> 24)}
}
