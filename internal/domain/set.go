package domain

import "sort"

// Set is a string set used for term IDs, term labels and gene identifiers.
type Set map[string]struct{}

func NewSet(items ...string) Set {
	s := make(Set, len(items))
	for _, it := range items {
		s.Add(it)
	}
	return s
}

func (s Set) Add(v string) {
	s[v] = struct{}{}
}

func (s Set) Has(v string) bool {
	_, ok := s[v]
	return ok
}

func (s Set) Intersect(other Set) Set {
	out := Set{}
	for v := range s {
		if other.Has(v) {
			out.Add(v)
		}
	}
	return out
}

// Sorted returns the members in lexicographic order, for deterministic
// output and iteration.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
