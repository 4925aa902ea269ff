package dfa

import (
	"cmp"
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/benbjohnson/immutable"
	"github.com/cottand/flowfacts/util"
)

// Type is a semantic type descriptor owned by the type checker.
// Two descriptors are the same type iff their hashes are equal.
type Type interface {
	fmt.Stringer
	Hash() uint64
}

// EqualTypes compares two type descriptors by hash
func EqualTypes(a, b Type) bool {
	return a.Hash() == b.Hash()
}

var _ immutable.Hasher[Type] = typeHasher{}

type typeHasher struct{}

func (typeHasher) Hash(t Type) uint32 {
	h := t.Hash()
	return uint32(h ^ (h >> 32))
}

func (typeHasher) Equal(a, b Type) bool {
	return EqualTypes(a, b)
}

// TypeSet is a persistent set of types.
// The zero value is the empty set. Sets cannot be compared with ==,
// use Equal and Hash.
type TypeSet struct {
	_ [0]func()
	// nil when empty
	items *immutable.Set[Type]
	// sum of the mixed element hashes so that it does not depend on insertion order
	hash uint64
}

func NewTypeSet(types ...Type) TypeSet {
	s := TypeSet{}
	for _, t := range types {
		s = s.Add(t)
	}
	return s
}

func (s TypeSet) Len() int {
	if s.items == nil {
		return 0
	}
	return s.items.Len()
}

func (s TypeSet) IsEmpty() bool {
	return s.Len() == 0
}

func (s TypeSet) Contains(t Type) bool {
	if s.items == nil {
		return false
	}
	return s.items.Has(t)
}

// Add returns a set containing t as well as every element of s
func (s TypeSet) Add(t Type) TypeSet {
	if s.Contains(t) {
		return s
	}
	var items immutable.Set[Type]
	if s.items == nil {
		items = immutable.NewSet[Type](typeHasher{}, t)
	} else {
		items = s.items.Add(t)
	}
	return TypeSet{items: &items, hash: s.hash + mixHash(t.Hash())}
}

// Union is used when both sets are known to hold at once
func (s TypeSet) Union(other TypeSet) TypeSet {
	larger, smaller := s, other
	if smaller.Len() > larger.Len() {
		larger, smaller = smaller, larger
	}
	for t := range smaller.All() {
		larger = larger.Add(t)
	}
	return larger
}

// Intersect keeps the types present in both sets, which is
// what survives when two branches join
func (s TypeSet) Intersect(other TypeSet) TypeSet {
	larger, smaller := s, other
	if smaller.Len() > larger.Len() {
		larger, smaller = smaller, larger
	}
	res := TypeSet{}
	for t := range smaller.All() {
		if larger.Contains(t) {
			res = res.Add(t)
		}
	}
	return res
}

// Equal has set semantics: insertion order and duplicates do not matter
func (s TypeSet) Equal(other TypeSet) bool {
	if s.Len() != other.Len() || s.hash != other.hash {
		return false
	}
	for t := range s.All() {
		if !other.Contains(t) {
			return false
		}
	}
	return true
}

func (s TypeSet) Hash() uint64 {
	return s.hash
}

func (s TypeSet) All() iter.Seq[Type] {
	return func(yield func(Type) bool) {
		if s.items == nil {
			return
		}
		for _, t := range s.items.Items() {
			if !yield(t) {
				return
			}
		}
	}
}

// Sorted returns the elements ordered by their rendering and then by hash
func (s TypeSet) Sorted() []Type {
	ts := slices.Collect(s.All())
	slices.SortFunc(ts, func(a, b Type) int {
		if c := strings.Compare(a.String(), b.String()); c != 0 {
			return c
		}
		return cmp.Compare(a.Hash(), b.Hash())
	})
	return ts
}

// String renders every element of the set in Sorted order, as {A, B}
func (s TypeSet) String() string {
	names := util.MapIter(slices.Values(s.Sorted()), Type.String)
	return "{" + strings.Join(slices.Collect(names), ", ") + "}"
}

// mixHash is the splitmix64 finaliser, so that summing element hashes
// does not cancel out for related hashes
func mixHash(h uint64) uint64 {
	h ^= h >> 30
	h *= 0xbf58476d1ce4e5b9
	h ^= h >> 27
	h *= 0x94d049bb133111eb
	h ^= h >> 31
	return h
}
