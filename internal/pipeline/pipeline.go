// Package pipeline runs the per-color aggregation loop: enrich every
// classified attractor, collect the results into the domain model, and
// append the aggregate columns to the spreadsheet outputs.
package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/sybila/psbn-enrichment/internal/clients/panther"
	"github.com/sybila/psbn-enrichment/internal/clients/quickgo"
	"github.com/sybila/psbn-enrichment/internal/domain"
	"github.com/sybila/psbn-enrichment/internal/dynamics"
	"github.com/sybila/psbn-enrichment/internal/platform/logger"
)

// ColumnSink appends one named column of values to the spreadsheet at path.
type ColumnSink interface {
	AppendColumn(path string, values []string, header string) error
}

// Deps are the collaborators the pipeline drives.
type Deps struct {
	Log           *logger.Logger
	Enrichment    panther.Client
	Relationships quickgo.Client
	Dynamics      dynamics.Source
	Sink          ColumnSink
}

// Config fixes one pipeline run.
type Config struct {
	Organism     string
	Category     panther.Category
	FDRThreshold float64
	// OutPrefix prefixes the three spreadsheet outputs
	// (<prefix>_OnAttractors.xlsx, _OnInstance.xlsx, _OnAllInstances.xlsx).
	OutPrefix  string
	TestType   string
	Correction string
}

// Run processes every color sequentially and returns the built collection
// for further querying. Transport failures abort the run; an upstream-
// reported enrichment error degrades that attractor to empty sets.
func Run(ctx context.Context, deps Deps, cfg Config) (*domain.Collection, error) {
	log := deps.Log.With("run_id", uuid.NewString())

	colors, err := deps.Dynamics.Colors(ctx)
	if err != nil {
		return nil, err
	}
	log.Info("starting enrichment run", "colors", len(colors), "organism", cfg.Organism, "fdr_threshold", cfg.FDRThreshold)

	collection := domain.NewCollection()

	for colorIndex, color := range colors {
		instance := domain.NewInstance()
		instance.SetColor(colorName(color, colorIndex))

		for attIndex, classified := range color.Attractors {
			evaluated, err := dynamics.EvaluatedNodes(classified.Nodes, true)
			if err != nil {
				return nil, fmt.Errorf("color %d attractor %d: %w", colorIndex, attIndex, err)
			}
			genes := panther.PrepareGeneList(evaluated)

			result, err := deps.Enrichment.Overrepresentation(ctx, panther.Request{
				Genes:      genes,
				Organism:   cfg.Organism,
				Category:   cfg.Category,
				TestType:   cfg.TestType,
				Correction: cfg.Correction,
			})
			if err != nil {
				return nil, fmt.Errorf("enrich color %d attractor %d: %w", colorIndex, attIndex, err)
			}

			attractor := domain.NewAttractor(genes, classified.Type, result, cfg.FDRThreshold)
			instance.AddAttractor(attractor)

			header := fmt.Sprintf("[clr:%d][att:%d]", colorIndex, attIndex)
			if err := deps.Sink.AppendColumn(cfg.OutPrefix+"_OnAttractors.xlsx", attractor.TermIDs().Sorted(), header); err != nil {
				return nil, err
			}
			log.Debug("attractor enriched",
				"color", colorIndex,
				"attractor", attIndex,
				"type", classified.Type,
				"terms", len(attractor.Terms),
			)
		}

		intersection, err := instance.TermIDIntersection()
		if err != nil {
			return nil, fmt.Errorf("color %d: %w", colorIndex, err)
		}
		if err := deps.Sink.AppendColumn(cfg.OutPrefix+"_OnInstance.xlsx", intersection.Sorted(), fmt.Sprintf("[%d]", colorIndex)); err != nil {
			return nil, err
		}

		collection.AddInstance(instance)
		log.Info("color aggregated", "color", colorIndex, "attractors", len(instance.Attractors), "shared_terms", len(intersection))
	}

	whole, err := collection.TermIDIntersectionAll()
	if err != nil {
		return nil, err
	}
	if err := deps.Sink.AppendColumn(cfg.OutPrefix+"_OnAllInstances.xlsx", whole.Sorted(), "[whole]"); err != nil {
		return nil, err
	}

	log.Info("enrichment run done",
		"instances", len(collection.Instances),
		"attractors", collection.TotalAttractorCount(),
		"terms_common_to_all", len(whole),
	)
	return collection, nil
}

func colorName(color dynamics.Color, index int) string {
	if color.Name != "" {
		return color.Name
	}
	return fmt.Sprintf("color-%d", index)
}
