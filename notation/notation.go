// Package notation reads facts and implications back from the text
// they render to, such as
//
//	x != Null -> x: {String}
//
// which makes them convenient to write in scenario files and tests.
package notation

import (
	"fmt"

	"github.com/cottand/flowfacts/dfa"
)

// Resolver looks up the variables and types named in the notation
type Resolver interface {
	Variable(name string) (dfa.Variable, bool)
	Type(name string) (dfa.Type, bool)
}

// Symbols is a Resolver backed by maps
type Symbols struct {
	Variables map[string]dfa.Variable
	Types     map[string]dfa.Type
}

func (s Symbols) Variable(name string) (dfa.Variable, bool) {
	v, ok := s.Variables[name]
	return v, ok
}

func (s Symbols) Type(name string) (dfa.Type, bool) {
	t, ok := s.Types[name]
	return t, ok
}

type Error struct {
	Input string
	Msg   string
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("in '%s': %s: %v", e.Input, e.Msg, e.Cause)
	}
	return fmt.Sprintf("in '%s': %s", e.Input, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func ParseImplication(input string, r Resolver) (dfa.Implication, error) {
	node, err := implicationParser.ParseString("", input)
	if err != nil {
		return dfa.Implication{}, &Error{Input: input, Msg: "invalid implication", Cause: err}
	}
	c := converter{input: input, resolver: r}
	condition, err := c.condition(node.Condition.Var, node.Condition.Op)
	if err != nil {
		return dfa.Implication{}, err
	}
	effect, err := c.fact(node.Effect)
	if err != nil {
		return dfa.Implication{}, err
	}
	return dfa.NewImplication(condition, effect), nil
}

func ParseFact(input string, r Resolver) (dfa.Fact, error) {
	node, err := factParser.ParseString("", input)
	if err != nil {
		return nil, &Error{Input: input, Msg: "invalid fact", Cause: err}
	}
	c := converter{input: input, resolver: r}
	return c.fact(*node)
}

func ParseCondition(input string, r Resolver) (dfa.ConditionFact, error) {
	node, err := conditionParser.ParseString("", input)
	if err != nil {
		return dfa.ConditionFact{}, &Error{Input: input, Msg: "invalid condition", Cause: err}
	}
	c := converter{input: input, resolver: r}
	return c.condition(node.Var, node.Op)
}

type converter struct {
	input    string
	resolver Resolver
}

func (c converter) errorf(format string, args ...any) error {
	return &Error{Input: c.input, Msg: fmt.Sprintf(format, args...)}
}

func (c converter) fact(node factNode) (dfa.Fact, error) {
	if node.Condition != nil {
		cond, err := c.condition(node.Var, *node.Condition)
		if err != nil {
			return nil, err
		}
		return cond, nil
	}
	v, ok := c.resolver.Variable(node.Var)
	if !ok {
		return nil, c.errorf("unknown variable '%s'", node.Var)
	}
	realVar, ok := v.(dfa.RealVariable)
	if !ok {
		return nil, c.errorf("variable '%s' cannot be narrowed as it is not a real variable", node.Var)
	}
	types := dfa.TypeSet{}
	if node.Types != nil {
		for _, name := range node.Types.Types {
			t, ok := c.resolver.Type(name)
			if !ok {
				return nil, c.errorf("unknown type '%s'", name)
			}
			types = types.Add(t)
		}
	}
	return dfa.NewTypeFactFromSet(realVar, types), nil
}

func (c converter) condition(varName string, op conditionOp) (dfa.ConditionFact, error) {
	v, ok := c.resolver.Variable(varName)
	if !ok {
		return dfa.ConditionFact{}, c.errorf("unknown variable '%s'", varName)
	}
	cond, ok := conditionFor(op)
	if !ok {
		return dfa.ConditionFact{}, c.errorf("unsupported condition '%s %s'", op.Op, op.Value)
	}
	return dfa.NewConditionFact(v, cond), nil
}

func conditionFor(op conditionOp) (dfa.Condition, bool) {
	for _, cond := range dfa.Conditions() {
		if cond.String() == op.Op+" "+op.Value {
			return cond, true
		}
	}
	return 0, false
}
