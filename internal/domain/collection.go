package domain

// Collection is the top-level aggregate over every network instance being
// compared. Its queries mirror the Instance ones one level up: intersections
// intersect the per-instance intersections, frequencies sum the per-instance
// frequencies.
type Collection struct {
	Instances []*Instance
}

func NewCollection() *Collection {
	return &Collection{}
}

func (c *Collection) AddInstance(in *Instance) {
	c.Instances = append(c.Instances, in)
}

// AllTerms merges the term maps of every instance.
func (c *Collection) AllTerms() map[string]*Term {
	out := map[string]*Term{}
	for _, in := range c.Instances {
		for id, t := range in.AllTerms() {
			out[id] = t
		}
	}
	return out
}

// TermIDIntersectionAll returns the term IDs common to every attractor of
// every instance: the intersection, across instances, of each instance's own
// term-ID intersection.
func (c *Collection) TermIDIntersectionAll() (Set, error) {
	if len(c.Instances) == 0 {
		return nil, ErrNoInstances
	}
	inter, err := c.Instances[0].TermIDIntersection()
	if err != nil {
		return nil, err
	}
	for _, in := range c.Instances[1:] {
		next, err := in.TermIDIntersection()
		if err != nil {
			return nil, err
		}
		inter = inter.Intersect(next)
	}
	return inter, nil
}

// TermLabelIntersectionAll is the label analogue of TermIDIntersectionAll.
func (c *Collection) TermLabelIntersectionAll() (Set, error) {
	if len(c.Instances) == 0 {
		return nil, ErrNoInstances
	}
	inter, err := c.Instances[0].TermLabelIntersection()
	if err != nil {
		return nil, err
	}
	for _, in := range c.Instances[1:] {
		next, err := in.TermLabelIntersection()
		if err != nil {
			return nil, err
		}
		inter = inter.Intersect(next)
	}
	return inter, nil
}

// TermIntersectionAll resolves TermIDIntersectionAll to the term objects.
func (c *Collection) TermIntersectionAll() (map[string]*Term, error) {
	ids, err := c.TermIDIntersectionAll()
	if err != nil {
		return nil, err
	}
	all := c.AllTerms()
	out := make(map[string]*Term, len(ids))
	for id := range ids {
		out[id] = all[id]
	}
	return out, nil
}

// TermIDFrequenciesAll sums each instance's term-ID frequencies, so a term's
// global count is the number of attractors containing it across the whole
// collection.
func (c *Collection) TermIDFrequenciesAll() map[string]int {
	freq := map[string]int{}
	for _, in := range c.Instances {
		for id, n := range in.TermIDFrequencies() {
			freq[id] += n
		}
	}
	return freq
}

// IdentifierFrequenciesAll sums each instance's identifier frequencies for
// the chosen kind.
func (c *Collection) IdentifierFrequenciesAll(kind IDKind) map[string]int {
	freq := map[string]int{}
	for _, in := range c.Instances {
		for id, n := range in.IdentifierFrequencies(kind) {
			freq[id] += n
		}
	}
	return freq
}

// IdentifierIntersectionAll intersects, across instances, each instance's
// own identifier-set intersection of the chosen kind.
func (c *Collection) IdentifierIntersectionAll(kind IDKind) (Set, error) {
	if len(c.Instances) == 0 {
		return nil, ErrNoInstances
	}
	inter, err := c.Instances[0].IdentifierIntersection(kind)
	if err != nil {
		return nil, err
	}
	for _, in := range c.Instances[1:] {
		next, err := in.IdentifierIntersection(kind)
		if err != nil {
			return nil, err
		}
		inter = inter.Intersect(next)
	}
	return inter, nil
}

// TotalAttractorCount sums the attractor counts across instances.
func (c *Collection) TotalAttractorCount() int {
	count := 0
	for _, in := range c.Instances {
		count += len(in.Attractors)
	}
	return count
}
