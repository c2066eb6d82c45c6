// Package panther wraps the PANTHER overrepresentation REST endpoint, the
// statistical-enrichment source of the pipeline.
package panther

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sybila/psbn-enrichment/internal/domain"
	"github.com/sybila/psbn-enrichment/internal/platform/logger"
)

// Category is a GO annotation category accepted by the enrichment endpoint.
type Category string

const (
	BiologicalProcess Category = "BP"
	MolecularFunction Category = "MF"
	CellularComponent Category = "CC"
)

// annotDataSet maps the category to the GO root term the endpoint expects.
func (c Category) annotDataSet() (string, error) {
	switch c {
	case BiologicalProcess:
		return "GO:0008150", nil
	case MolecularFunction:
		return "GO:0003674", nil
	case CellularComponent:
		return "GO:0005575", nil
	default:
		return "", fmt.Errorf("unknown GO category %q (use BP, MF or CC)", string(c))
	}
}

type Client interface {
	// Overrepresentation runs one enrichment request. A (nil, nil) return
	// means the service reported an error for the input list ("no data");
	// the caller proceeds with an empty attractor in that case.
	Overrepresentation(ctx context.Context, req Request) (*domain.EnrichmentResult, error)
}

type Config struct {
	BaseURL string
	Timeout time.Duration
}

type Request struct {
	Genes      string
	Organism   string
	Category   Category
	TestType   string
	Correction string
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
		cfg.BaseURL = "https://pantherdb.org/services/oai/pantherdb"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &client{
		log:  log.With("client", "PantherClient"),
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// PrepareGeneList joins gene names into the comma-separated form the
// endpoint expects.
func PrepareGeneList(genes []string) string {
	return strings.Join(genes, ", ")
}

type wireResponse struct {
	Search *struct {
		Error json.RawMessage `json:"error"`
	} `json:"search"`
	Results *struct {
		InputList struct {
			Organism      string `json:"organism"`
			MappedIDs     string `json:"mapped_ids"`
			MappedCount   int    `json:"mapped_count"`
			UnmappedIDs   string `json:"unmapped_ids"`
			UnmappedCount int    `json:"unmapped_count"`
		} `json:"input_list"`
		Result []wireRecord `json:"result"`
	} `json:"results"`
}

type wireRecord struct {
	Term struct {
		ID    string `json:"id"`
		Label string `json:"label"`
	} `json:"term"`
	FoldEnrichment    float64 `json:"fold_enrichment"`
	FDR               float64 `json:"fdr"`
	Expected          float64 `json:"expected"`
	NumberInReference int     `json:"number_in_reference"`
	PValue            float64 `json:"pValue"`
	PlusMinus         string  `json:"plus_minus"`
}

func (c *client) Overrepresentation(ctx context.Context, req Request) (*domain.EnrichmentResult, error) {
	if strings.TrimSpace(req.Organism) == "" {
		return nil, fmt.Errorf("organism required")
	}
	dataSet, err := req.Category.annotDataSet()
	if err != nil {
		return nil, err
	}
	if req.TestType == "" {
		req.TestType = "FISHER"
	}
	if req.Correction == "" {
		req.Correction = "FDR"
	}

	q := url.Values{}
	q.Set("geneInputList", req.Genes)
	q.Set("organism", req.Organism)
	q.Set("annotDataSet", dataSet)
	q.Set("enrichmentTestType", req.TestType)
	q.Set("correction", req.Correction)
	u := strings.TrimRight(c.cfg.BaseURL, "/") + "/enrich/overrep?" + q.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("panther request: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("panther http %d: %s", resp.StatusCode, string(raw))
	}

	var wire wireResponse
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("panther decode: %w", err)
	}

	if wire.Search != nil && len(wire.Search.Error) > 0 {
		c.log.Warn("enrichment service reported an error for the input list",
			"organism", req.Organism,
			"error", string(wire.Search.Error),
		)
		return nil, nil
	}
	if wire.Results == nil {
		return nil, fmt.Errorf("panther response missing results")
	}

	out := &domain.EnrichmentResult{
		Organism:      wire.Results.InputList.Organism,
		MappedIDs:     wire.Results.InputList.MappedIDs,
		MappedCount:   wire.Results.InputList.MappedCount,
		UnmappedIDs:   wire.Results.InputList.UnmappedIDs,
		UnmappedCount: wire.Results.InputList.UnmappedCount,
		Records:       make([]domain.EnrichmentRecord, 0, len(wire.Results.Result)),
	}
	for i, rec := range wire.Results.Result {
		if rec.Term.ID == "" {
			return nil, fmt.Errorf("panther decode: record %d missing term id", i)
		}
		out.Records = append(out.Records, domain.EnrichmentRecord{
			ID:                rec.Term.ID,
			Label:             rec.Term.Label,
			FoldEnrichment:    rec.FoldEnrichment,
			FDR:               rec.FDR,
			Expected:          rec.Expected,
			NumberInReference: rec.NumberInReference,
			PValue:            rec.PValue,
			PlusMinus:         rec.PlusMinus,
		})
	}

	c.log.Debug("enrichment request done",
		"organism", req.Organism,
		"mapped", out.MappedCount,
		"unmapped", out.UnmappedCount,
		"records", len(out.Records),
	)
	return out, nil
}
