// Package dfa holds the vocabulary of the flow-sensitive narrowing analysis:
// conditions, facts about tracked variables and implications between them.
//
// Every value in this package is immutable. Operations that change knowledge
// return new values, so facts can be shared freely across branches and
// goroutines.
package dfa

import "fmt"

// Condition is the outcome of a boolean or nullability test on a variable
type Condition uint8

const (
	_ Condition = iota
	IsTrue
	IsFalse
	IsNull
	IsNonNull
)

// Conditions returns every valid Condition
func Conditions() []Condition {
	return []Condition{IsTrue, IsFalse, IsNull, IsNonNull}
}

// Invert swaps c with its complement. It never crosses
// between the boolean and the nullability pair.
func (c Condition) Invert() Condition {
	switch c {
	case IsTrue:
		return IsFalse
	case IsFalse:
		return IsTrue
	case IsNull:
		return IsNonNull
	case IsNonNull:
		return IsNull
	default:
		panic(fmt.Sprintf("invalid condition %d", uint8(c)))
	}
}

func (c Condition) IsValid() bool {
	return c >= IsTrue && c <= IsNonNull
}

func (c Condition) String() string {
	switch c {
	case IsTrue:
		return "== True"
	case IsFalse:
		return "== False"
	case IsNull:
		return "== Null"
	case IsNonNull:
		return "!= Null"
	default:
		return "invalid"
	}
}
