package dfa

import "fmt"

// Implication reads 'if Condition holds then Effect holds'.
// Only a ConditionFact can be the antecedent. Compare implications with
// Equal: == panics when the effect is a TypeFact.
type Implication struct {
	Condition ConditionFact
	Effect    Fact
}

func NewImplication(condition ConditionFact, effect Fact) Implication {
	return Implication{Condition: condition, Effect: effect}
}

// InvertCondition keeps the effect but expects the opposite outcome of the test
func (i Implication) InvertCondition() Implication {
	return Implication{Condition: i.Condition.Invert(), Effect: i.Effect}
}

func (i Implication) Equal(other Implication) bool {
	return i.Condition.Equal(other.Condition) && EqualFacts(i.Effect, other.Effect)
}

func (i Implication) Hash() uint64 {
	var effect uint64
	if i.Effect != nil {
		effect = i.Effect.Hash()
	}
	return i.Condition.Hash()*31 + effect*37
}

func (i Implication) String() string {
	return fmt.Sprintf("%v -> %v", i.Condition, i.Effect)
}
