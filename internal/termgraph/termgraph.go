// Package termgraph turns a flat set of enriched GO terms into a navigable
// parent/child hierarchy using relationship records fetched from an ontology
// service, and derives roots, leaves and per-root subgraphs from it.
package termgraph

import (
	"sort"

	"github.com/sybila/psbn-enrichment/internal/domain"
)

// Child is one outgoing edge of a relationship record.
type Child struct {
	ID       string
	Relation string
}

// Record is the relationship entry for a single queried term, as returned by
// the relationship source.
type Record struct {
	ID       string
	Children []Child
}

// PopulateRelationships attaches parent and child edges to the terms in
// place. Edges pointing at terms outside the given set are discarded. Edge
// storage is keyed by term ID, so applying the same records twice leaves the
// edge set unchanged.
func PopulateRelationships(terms map[string]*domain.Term, records []Record) {
	for _, rec := range records {
		parent, ok := terms[rec.ID]
		if !ok {
			continue
		}
		for _, child := range rec.Children {
			ct, ok := terms[child.ID]
			if !ok {
				continue
			}
			ct.AddParent(rec.ID)
			parent.AddChild(child.ID, child.Relation)
		}
	}
}

// RootsAndLeaves splits the term set into terms without parents and terms
// without children. Before PopulateRelationships has run, every term is both.
func RootsAndLeaves(terms map[string]*domain.Term) (roots, leaves []*domain.Term) {
	for _, t := range terms {
		if t.IsRoot() {
			roots = append(roots, t)
		}
		if t.IsLeaf() {
			leaves = append(leaves, t)
		}
	}
	return roots, leaves
}

// SortBySignificance orders terms by ascending FDR, breaking ties by term ID
// so the order is reproducible regardless of input order.
func SortBySignificance(terms []*domain.Term) []*domain.Term {
	out := make([]*domain.Term, len(terms))
	copy(out, terms)
	sort.Slice(out, func(i, j int) bool {
		if out[i].FDR != out[j].FDR {
			return out[i].FDR < out[j].FDR
		}
		return out[i].ID < out[j].ID
	})
	return out
}
