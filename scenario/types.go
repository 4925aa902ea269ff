package scenario

import (
	"hash/fnv"

	"github.com/cottand/flowfacts/dfa"
)

var _ dfa.Type = NominalType{}

// NominalType is a type known only by its name, which is all scenarios need
type NominalType struct {
	Name string
}

func (t NominalType) String() string { return t.Name }

func (t NominalType) Hash() uint64 {
	const prime1 uint64 = 1299709
	hasher := fnv.New64a()
	_, _ = hasher.Write([]byte(t.Name))
	return prime1 ^ hasher.Sum64()
}
