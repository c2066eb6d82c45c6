package domain

import "strings"

// Terms whose label starts with this marker are placeholders the enrichment
// source emits for unclassified processes; they are never retained.
const invalidLabelMarker = "-"

// IDKind selects one of the two identifier sets an attractor carries.
type IDKind int

const (
	Mapped IDKind = iota
	Unmapped
)

func (k IDKind) String() string {
	if k == Mapped {
		return "mapped"
	}
	return "unmapped"
}

// Attractor is one classified attractor of a network instance together with
// the GO terms that survived the significance filter. The filter runs exactly
// once, in NewAttractor.
type Attractor struct {
	Type         string
	Nodes        Set
	FDRThreshold float64

	// Identifier-mapping report copied verbatim from the enrichment result,
	// plus the derived sets.
	MappedIDs     string
	UnmappedIDs   string
	MappedIDSet   Set
	UnmappedIDSet Set

	// Terms holds every retained term keyed by term ID.
	Terms map[string]*Term
}

// NewAttractor parses nodes (comma-separated, possibly padded, possibly with
// empty entries) and filters the raw result down to terms with
// FDR <= threshold and a valid label. A nil result leaves the term and
// identifier sets empty while keeping the node set and type.
func NewAttractor(nodes, attractorType string, result *EnrichmentResult, threshold float64) *Attractor {
	a := &Attractor{
		Type:          attractorType,
		Nodes:         splitCSV(nodes),
		FDRThreshold:  threshold,
		MappedIDSet:   Set{},
		UnmappedIDSet: Set{},
		Terms:         map[string]*Term{},
	}
	if result == nil {
		return a
	}

	a.MappedIDs = result.MappedIDs
	a.UnmappedIDs = result.UnmappedIDs
	a.MappedIDSet = splitCSV(result.MappedIDs)
	a.UnmappedIDSet = splitCSV(result.UnmappedIDs)

	for _, rec := range result.Records {
		if rec.FDR > threshold || strings.HasPrefix(rec.Label, invalidLabelMarker) {
			continue
		}
		a.Terms[rec.ID] = NewTerm(rec)
	}
	return a
}

// TermIDs returns the set of retained term IDs.
func (a *Attractor) TermIDs() Set {
	s := make(Set, len(a.Terms))
	for id := range a.Terms {
		s.Add(id)
	}
	return s
}

// Labels returns the set of display labels of the retained terms.
func (a *Attractor) Labels() Set {
	s := make(Set, len(a.Terms))
	for _, t := range a.Terms {
		s.Add(t.Label)
	}
	return s
}

// Select returns the terms whose IDs appear in wanted, in lexicographic ID
// order. IDs absent from this attractor are skipped.
func (a *Attractor) Select(wanted Set) []*Term {
	out := make([]*Term, 0, len(wanted))
	for _, id := range wanted.Sorted() {
		if t, ok := a.Terms[id]; ok {
			out = append(out, t)
		}
	}
	return out
}

func (a *Attractor) identifierSet(kind IDKind) Set {
	if kind == Mapped {
		return a.MappedIDSet
	}
	return a.UnmappedIDSet
}

func (a *Attractor) String() string { return a.Type }

func splitCSV(s string) Set {
	out := Set{}
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out.Add(trimmed)
		}
	}
	return out
}
