package dfa

import "strconv"

// VariableID is the handle the analysis engine issues for every tracked variable.
// Two variables are the same iff their IDs are equal.
type VariableID uint32

// Variable is either a RealVariable or a SyntheticVariable
type Variable interface {
	ID() VariableID
	String() string
	isVariable()
}

var (
	_ Variable = RealVariable{}
	_ Variable = SyntheticVariable{}
)

// RealVariable is a declared entity with a static type.
// Only real variables can be narrowed, see TypeFact.
type RealVariable struct {
	id       VariableID
	name     string
	declared Type
}

func NewRealVariable(id VariableID, name string, declared Type) RealVariable {
	return RealVariable{id: id, name: name, declared: declared}
}

func (v RealVariable) ID() VariableID { return v.id }
func (v RealVariable) Name() string   { return v.name }

// Declared is the static type of the variable, it may be nil when unknown
func (v RealVariable) Declared() Type { return v.declared }
func (v RealVariable) String() string { return v.name }
func (RealVariable) isVariable()      {}

// SyntheticVariable stands for a value that has no declaration,
// like the result of a comparison
type SyntheticVariable struct {
	id VariableID
}

func NewSyntheticVariable(id VariableID) SyntheticVariable {
	return SyntheticVariable{id: id}
}

func (v SyntheticVariable) ID() VariableID { return v.id }
func (v SyntheticVariable) String() string {
	return "$" + strconv.FormatUint(uint64(v.id), 10)
}
func (SyntheticVariable) isVariable() {}

// SameVariable reports whether a and b identify the same variable
func SameVariable(a, b Variable) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.ID() == b.ID()
}
