package domain

// Instance is one fully specified interpretation (color) of the network,
// holding its classified attractors in the order the pipeline produced them.
type Instance struct {
	Attractors []*Attractor
	Types      []string
	Color      string
}

func NewInstance() *Instance {
	return &Instance{}
}

// AddAttractor appends; attractors are never removed. Adding the same
// attractor twice double-counts it in the frequency queries, which is a
// caller error.
func (in *Instance) AddAttractor(a *Attractor) {
	in.Attractors = append(in.Attractors, a)
	in.Types = append(in.Types, a.Type)
}

func (in *Instance) SetColor(color string) {
	in.Color = color
}

// AllTerms merges the attractors' term maps. Term IDs are globally stable,
// so a collision always refers to the same term.
func (in *Instance) AllTerms() map[string]*Term {
	out := map[string]*Term{}
	for _, a := range in.Attractors {
		for id, t := range a.Terms {
			out[id] = t
		}
	}
	return out
}

// TermIDIntersection returns the term IDs present in every attractor.
func (in *Instance) TermIDIntersection() (Set, error) {
	if len(in.Attractors) == 0 {
		return nil, ErrNoAttractors
	}
	inter := in.Attractors[0].TermIDs()
	for _, a := range in.Attractors[1:] {
		inter = inter.Intersect(a.TermIDs())
	}
	return inter, nil
}

// TermLabelIntersection returns the term labels present in every attractor.
func (in *Instance) TermLabelIntersection() (Set, error) {
	if len(in.Attractors) == 0 {
		return nil, ErrNoAttractors
	}
	inter := in.Attractors[0].Labels()
	for _, a := range in.Attractors[1:] {
		inter = inter.Intersect(a.Labels())
	}
	return inter, nil
}

// TermIntersection resolves TermIDIntersection to the term objects.
func (in *Instance) TermIntersection() (map[string]*Term, error) {
	ids, err := in.TermIDIntersection()
	if err != nil {
		return nil, err
	}
	all := in.AllTerms()
	out := make(map[string]*Term, len(ids))
	for id := range ids {
		out[id] = all[id]
	}
	return out, nil
}

// TermIDFrequencies maps every term ID seen in this instance to the number
// of attractors containing it. Quadratic over terms and attractors, which
// stays cheap at the cardinalities involved.
func (in *Instance) TermIDFrequencies() map[string]int {
	freq := map[string]int{}
	for id := range in.AllTerms() {
		for _, a := range in.Attractors {
			if _, ok := a.Terms[id]; ok {
				freq[id]++
			}
		}
	}
	return freq
}

// UniqueTermsPerAttractor returns, aligned with the attractor order, the term
// IDs each attractor holds that no other attractor in this instance holds.
func (in *Instance) UniqueTermsPerAttractor() ([]Set, error) {
	if len(in.Attractors) == 0 {
		return nil, ErrNoAttractors
	}
	out := make([]Set, len(in.Attractors))
	for i, a := range in.Attractors {
		unique := a.TermIDs()
		for j, other := range in.Attractors {
			if j == i {
				continue
			}
			for id := range other.Terms {
				delete(unique, id)
			}
		}
		out[i] = unique
	}
	return out, nil
}

// IdentifierFrequencies counts, per identifier of the chosen kind, the number
// of attractors whose set contains it. An attractor contributes at most one
// per identifier since the sets are deduplicated.
func (in *Instance) IdentifierFrequencies(kind IDKind) map[string]int {
	freq := map[string]int{}
	for _, a := range in.Attractors {
		for id := range a.identifierSet(kind) {
			freq[id]++
		}
	}
	return freq
}

// IdentifierIntersection returns the identifiers of the chosen kind present
// in every attractor.
func (in *Instance) IdentifierIntersection(kind IDKind) (Set, error) {
	if len(in.Attractors) == 0 {
		return nil, ErrNoAttractors
	}
	inter := NewSet(in.Attractors[0].identifierSet(kind).Sorted()...)
	for _, a := range in.Attractors[1:] {
		inter = inter.Intersect(a.identifierSet(kind))
	}
	return inter, nil
}
