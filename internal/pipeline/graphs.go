package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sybila/psbn-enrichment/internal/domain"
	"github.com/sybila/psbn-enrichment/internal/termgraph"
)

// ExportIntersectionGraphs builds the term graph over the terms common to
// every attractor of every instance and writes one DOT file per root,
// covering the root and its descendants, most significant root first.
// Returns the written paths.
func ExportIntersectionGraphs(ctx context.Context, deps Deps, collection *domain.Collection, outPrefix string) ([]string, error) {
	terms, err := collection.TermIntersectionAll()
	if err != nil {
		return nil, err
	}
	if len(terms) == 0 {
		deps.Log.Info("intersection is empty, no graphs to export")
		return nil, nil
	}
	return exportTermGraphs(ctx, deps, terms, outPrefix)
}

// ExportInstanceIntersectionGraphs does the same per instance, over the terms
// common to every attractor of that instance. Output files carry the instance
// index in their name.
func ExportInstanceIntersectionGraphs(ctx context.Context, deps Deps, collection *domain.Collection, outPrefix string) ([]string, error) {
	var written []string
	for i, instance := range collection.Instances {
		terms, err := instance.TermIntersection()
		if err != nil {
			return nil, fmt.Errorf("instance %d (%s): %w", i, instance.Color, err)
		}
		if len(terms) == 0 {
			deps.Log.Info("instance intersection is empty, no graphs to export", "instance", i, "color", instance.Color)
			continue
		}
		paths, err := exportTermGraphs(ctx, deps, terms, fmt.Sprintf("%s_instance_%d", outPrefix, i))
		if err != nil {
			return nil, fmt.Errorf("instance %d (%s): %w", i, instance.Color, err)
		}
		written = append(written, paths...)
	}
	return written, nil
}

func exportTermGraphs(ctx context.Context, deps Deps, terms map[string]*domain.Term, outPrefix string) ([]string, error) {
	ids := make([]string, 0, len(terms))
	for id := range terms {
		ids = append(ids, id)
	}
	records, err := deps.Relationships.Terms(ctx, domain.NewSet(ids...).Sorted())
	if err != nil {
		return nil, fmt.Errorf("fetch term relationships: %w", err)
	}
	termgraph.PopulateRelationships(terms, records)

	roots, leaves := termgraph.RootsAndLeaves(terms)
	deps.Log.Info("term graph populated", "prefix", outPrefix, "terms", len(terms), "roots", len(roots), "leaves", len(leaves))

	graph := termgraph.BuildDigraph(terms)

	var written []string
	for _, root := range termgraph.SortBySignificance(roots) {
		sub := termgraph.SubgraphFromRoot(graph, root.ID)

		var buf bytes.Buffer
		if err := termgraph.WriteDOT(&buf, sub, root.Label); err != nil {
			return nil, err
		}

		path := fmt.Sprintf("%s_root_%s.dot", outPrefix, sanitizeID(root.ID))
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

// sanitizeID makes a term ID safe for use in a file name.
func sanitizeID(id string) string {
	return strings.ReplaceAll(id, ":", "_")
}
