package processor

import (
	"slices"
	"strings"
)

// NameSet is an immutable set of fully-qualified annotation names.
// The zero value is the empty set.
type NameSet struct {
	names []string // sorted, unique
}

// NewNameSet returns a set holding the given names. Duplicates collapse.
func NewNameSet(names ...string) NameSet {
	if len(names) == 0 {
		return NameSet{}
	}
	sorted := slices.Clone(names)
	slices.Sort(sorted)
	return NameSet{names: slices.Compact(sorted)}
}

// Len returns the number of names in the set.
func (s NameSet) Len() int {
	return len(s.names)
}

// Contains reports whether name is a member. Matching is exact and
// case-sensitive.
func (s NameSet) Contains(name string) bool {
	_, found := slices.BinarySearch(s.names, name)
	return found
}

// ContainsAll reports whether every member of other is also a member of s.
// It is trivially true for an empty other.
func (s NameSet) ContainsAll(other NameSet) bool {
	for _, name := range other.names {
		if !s.Contains(name) {
			return false
		}
	}
	return true
}

// Names returns the members in sorted order. The returned slice is a copy.
func (s NameSet) Names() []string {
	return slices.Clone(s.names)
}

// Equal reports whether both sets hold the same names.
func (s NameSet) Equal(other NameSet) bool {
	return slices.Equal(s.names, other.names)
}

// Union returns a new set holding the members of both sets.
func (s NameSet) Union(other NameSet) NameSet {
	return NewNameSet(append(slices.Clone(s.names), other.names...)...)
}

// Minus returns a new set holding the members of s that are not in other.
func (s NameSet) Minus(other NameSet) NameSet {
	var rest []string
	for _, name := range s.names {
		if !other.Contains(name) {
			rest = append(rest, name)
		}
	}
	return NameSet{names: rest}
}

func (s NameSet) String() string {
	return "[" + strings.Join(s.names, ", ") + "]"
}
