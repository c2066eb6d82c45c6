// Package quickgo wraps the QuickGO batched term endpoint, the relationship
// source used to build the term graph.
package quickgo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sybila/psbn-enrichment/internal/platform/logger"
	"github.com/sybila/psbn-enrichment/internal/termgraph"
)

type Client interface {
	// Terms fetches relationship records for the given term IDs in batched
	// requests of at most Config.BatchSize IDs each.
	Terms(ctx context.Context, ids []string) ([]termgraph.Record, error)
}

type Config struct {
	BaseURL string
	Timeout time.Duration
	// BatchSize caps the number of term IDs per request; the endpoint
	// rejects batches that are too large.
	BatchSize int
}

type client struct {
	log  *logger.Logger
	cfg  Config
	http *http.Client
}

func New(log *logger.Logger, cfg Config) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = "https://www.ebi.ac.uk/QuickGO/services"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 200
	}
	return &client{
		log:  log.With("client", "QuickGOClient"),
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

type wireResponse struct {
	Results []struct {
		ID       string `json:"id"`
		Children []struct {
			ID       string `json:"id"`
			Relation string `json:"relation"`
		} `json:"children"`
	} `json:"results"`
}

func (c *client) Terms(ctx context.Context, ids []string) ([]termgraph.Record, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var out []termgraph.Record
	for start := 0; start < len(ids); start += c.cfg.BatchSize {
		end := start + c.cfg.BatchSize
		if end > len(ids) {
			end = len(ids)
		}
		batch, err := c.fetchBatch(ctx, ids[start:end])
		if err != nil {
			return nil, err
		}
		out = append(out, batch...)
	}

	c.log.Debug("relationships fetched", "requested", len(ids), "returned", len(out))
	return out, nil
}

func (c *client) fetchBatch(ctx context.Context, ids []string) ([]termgraph.Record, error) {
	u := strings.TrimRight(c.cfg.BaseURL, "/") + "/ontology/go/terms/" + strings.Join(ids, ",")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("quickgo request: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("quickgo http %d: %s", resp.StatusCode, string(raw))
	}

	var wire wireResponse
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("quickgo decode: %w", err)
	}

	out := make([]termgraph.Record, 0, len(wire.Results))
	for _, res := range wire.Results {
		rec := termgraph.Record{ID: res.ID}
		for _, child := range res.Children {
			rec.Children = append(rec.Children, termgraph.Child{ID: child.ID, Relation: child.Relation})
		}
		out = append(out, rec)
	}
	return out, nil
}
