// Package app loads configuration and wires the logger, the external
// clients and the spreadsheet sink together.
package app

import (
	"fmt"

	"github.com/sybila/psbn-enrichment/internal/clients/panther"
	"github.com/sybila/psbn-enrichment/internal/clients/quickgo"
	"github.com/sybila/psbn-enrichment/internal/platform/logger"
	"github.com/sybila/psbn-enrichment/internal/sink/xlsx"
)

type App struct {
	Log           *logger.Logger
	Cfg           Config
	Enrichment    panther.Client
	Relationships quickgo.Client
	Sink          *xlsx.Writer
}

func New(cfg Config) (*App, error) {
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	enrichment, err := panther.New(log, panther.Config{
		BaseURL: cfg.PantherBaseURL,
		Timeout: cfg.HTTPTimeout,
	})
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init panther client: %w", err)
	}

	relationships, err := quickgo.New(log, quickgo.Config{
		BaseURL:   cfg.QuickGOBaseURL,
		Timeout:   cfg.HTTPTimeout,
		BatchSize: cfg.QuickGOBatchSize,
	})
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init quickgo client: %w", err)
	}

	return &App{
		Log:           log,
		Cfg:           cfg,
		Enrichment:    enrichment,
		Relationships: relationships,
		Sink:          xlsx.NewWriter(),
	}, nil
}

func (a *App) Close() {
	if a != nil && a.Log != nil {
		a.Log.Sync()
	}
}
