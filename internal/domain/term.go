package domain

// EnrichmentRecord is one per-term entry of a raw enrichment result, already
// decoded from the wire by the enrichment client.
type EnrichmentRecord struct {
	ID                string
	Label             string
	FoldEnrichment    float64
	FDR               float64
	Expected          float64
	NumberInReference int
	PValue            float64
	PlusMinus         string
}

// EnrichmentResult is the raw outcome of one enrichment request: the
// identifier-mapping report plus the per-term records. A nil *EnrichmentResult
// means the upstream service reported an error for the request ("no data").
type EnrichmentResult struct {
	Organism      string
	MappedIDs     string
	MappedCount   int
	UnmappedIDs   string
	UnmappedCount int
	Records       []EnrichmentRecord
}

// Term is a single GO term with its enrichment statistics and its parent and
// child edges inside the term set of interest. The statistics are fixed at
// construction; the edges are attached later by the termgraph builder and
// keyed by term ID so that repeated population overwrites instead of
// duplicating.
type Term struct {
	ID                string
	Label             string
	FoldEnrichment    float64
	FDR               float64
	Expected          float64
	NumberInReference int
	PValue            float64
	PlusMinus         string

	// Children maps child term ID to the relation label; Parents maps
	// parent term ID to the empty label.
	Children map[string]string
	Parents  map[string]string
}

func NewTerm(rec EnrichmentRecord) *Term {
	return &Term{
		ID:                rec.ID,
		Label:             rec.Label,
		FoldEnrichment:    rec.FoldEnrichment,
		FDR:               rec.FDR,
		Expected:          rec.Expected,
		NumberInReference: rec.NumberInReference,
		PValue:            rec.PValue,
		PlusMinus:         rec.PlusMinus,
		Children:          map[string]string{},
		Parents:           map[string]string{},
	}
}

func (t *Term) AddChild(childID, relation string) {
	if t.Children == nil {
		t.Children = map[string]string{}
	}
	t.Children[childID] = relation
}

func (t *Term) AddParent(parentID string) {
	if t.Parents == nil {
		t.Parents = map[string]string{}
	}
	t.Parents[parentID] = ""
}

// IsRoot reports whether the term has no parent inside the populated set.
func (t *Term) IsRoot() bool { return len(t.Parents) == 0 }

// IsLeaf reports whether the term has no child inside the populated set.
func (t *Term) IsLeaf() bool { return len(t.Children) == 0 }

func (t *Term) String() string { return t.PlusMinus + t.Label }
