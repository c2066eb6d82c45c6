package termgraph

import (
	"fmt"
	"io"
	"sort"

	"github.com/sybila/psbn-enrichment/internal/domain"
)

// Graph is a directed term graph: one node per term ID with a display label,
// one edge per parent->child relation.
type Graph struct {
	// Nodes maps term ID to display label.
	Nodes map[string]string
	Edges []Edge
}

// Edge is a directed parent->child relation between two terms.
type Edge struct {
	From     string
	To       string
	Relation string
}

// BuildDigraph builds the directed graph over the given terms. Children
// referenced by an edge but absent from the term map still get a node, with
// their ID standing in for the label.
func BuildDigraph(terms map[string]*domain.Term) *Graph {
	g := &Graph{Nodes: map[string]string{}}
	for id, t := range terms {
		g.Nodes[id] = t.Label
		for childID, relation := range t.Children {
			if _, ok := g.Nodes[childID]; !ok {
				if ct, inSet := terms[childID]; inSet {
					g.Nodes[childID] = ct.Label
				} else {
					g.Nodes[childID] = childID
				}
			}
			g.Edges = append(g.Edges, Edge{From: id, To: childID, Relation: relation})
		}
	}
	sortEdges(g.Edges)
	return g
}

// SubgraphFromRoot returns the induced subgraph over the root and every node
// reachable from it by directed edges. An unknown root yields an empty graph.
func SubgraphFromRoot(g *Graph, rootID string) *Graph {
	sub := &Graph{Nodes: map[string]string{}}
	if _, ok := g.Nodes[rootID]; !ok {
		return sub
	}

	succ := map[string][]string{}
	for _, e := range g.Edges {
		succ[e.From] = append(succ[e.From], e.To)
	}

	reachable := map[string]bool{rootID: true}
	queue := []string{rootID}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range succ[cur] {
			if !reachable[next] {
				reachable[next] = true
				queue = append(queue, next)
			}
		}
	}

	for id := range reachable {
		sub.Nodes[id] = g.Nodes[id]
	}
	for _, e := range g.Edges {
		if reachable[e.From] && reachable[e.To] {
			sub.Edges = append(sub.Edges, e)
		}
	}
	sortEdges(sub.Edges)
	return sub
}

// WriteDOT writes the graph as Graphviz DOT text. Nodes and edges are emitted
// in sorted order so the output is deterministic.
func WriteDOT(w io.Writer, g *Graph, name string) error {
	if name == "" {
		name = "termgraph"
	}
	if _, err := fmt.Fprintf(w, "digraph %q {\n", name); err != nil {
		return err
	}

	ids := make([]string, 0, len(g.Nodes))
	for id := range g.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if _, err := fmt.Fprintf(w, "  %q [label=%q];\n", id, g.Nodes[id]); err != nil {
			return err
		}
	}

	for _, e := range g.Edges {
		if _, err := fmt.Fprintf(w, "  %q -> %q [label=%q];\n", e.From, e.To, e.Relation); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(w, "}")
	return err
}

func sortEdges(edges []Edge) {
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		return edges[i].To < edges[j].To
	})
}
