package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sybila/psbn-enrichment/internal/app"
	"github.com/sybila/psbn-enrichment/internal/clients/panther"
	"github.com/sybila/psbn-enrichment/internal/dynamics"
	"github.com/sybila/psbn-enrichment/internal/pipeline"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML run file (optional)")
		colorsPath = flag.String("colors", "", "JSON file with classified attractors per color")
		organism   = flag.String("organism", "", "reference genome / organism ID for enrichment")
		category   = flag.String("category", "", "GO category: BP, MF or CC")
		fdr        = flag.Float64("fdr", -1, "FDR significance threshold")
		outPrefix  = flag.String("out", "", "prefix for the spreadsheet outputs")
		graphs     = flag.Bool("graphs", false, "also export per-root DOT graphs of the per-instance and whole-net intersections")
	)
	flag.Parse()

	cfg := app.Load()
	if *configPath != "" {
		if err := cfg.ApplyFile(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "config: %v\n", err)
			os.Exit(1)
		}
	}
	if *colorsPath != "" {
		cfg.ColorsPath = *colorsPath
	}
	if *organism != "" {
		cfg.Organism = *organism
	}
	if *category != "" {
		cfg.Category = panther.Category(*category)
	}
	if *fdr >= 0 {
		cfg.FDRThreshold = *fdr
	}
	if *outPrefix != "" {
		cfg.OutPrefix = *outPrefix
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	application, err := app.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps := pipeline.Deps{
		Log:           application.Log,
		Enrichment:    application.Enrichment,
		Relationships: application.Relationships,
		Dynamics:      dynamics.NewFileSource(cfg.ColorsPath),
		Sink:          application.Sink,
	}

	collection, err := pipeline.Run(ctx, deps, pipeline.Config{
		Organism:     cfg.Organism,
		Category:     cfg.Category,
		FDRThreshold: cfg.FDRThreshold,
		OutPrefix:    cfg.OutPrefix,
	})
	if err != nil {
		application.Log.Error("pipeline failed", "error", err)
		application.Close()
		os.Exit(1)
	}

	if *graphs {
		perInstance, err := pipeline.ExportInstanceIntersectionGraphs(ctx, deps, collection, cfg.OutPrefix)
		if err != nil {
			application.Log.Error("instance graph export failed", "error", err)
			application.Close()
			os.Exit(1)
		}
		whole, err := pipeline.ExportIntersectionGraphs(ctx, deps, collection, cfg.OutPrefix)
		if err != nil {
			application.Log.Error("graph export failed", "error", err)
			application.Close()
			os.Exit(1)
		}
		application.Log.Info("graphs exported", "files", len(perInstance)+len(whole))
	}
}
