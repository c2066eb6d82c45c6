package app

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sybila/psbn-enrichment/internal/clients/panther"
	"github.com/sybila/psbn-enrichment/internal/platform/envutil"
)

// Config fixes one invocation of the tool. Precedence: flags override the
// run file, the run file overrides env, env overrides defaults.
type Config struct {
	LogMode          string
	Organism         string
	Category         panther.Category
	FDRThreshold     float64
	OutPrefix        string
	ColorsPath       string
	PantherBaseURL   string
	QuickGOBaseURL   string
	QuickGOBatchSize int
	HTTPTimeout      time.Duration
}

// Load reads the env-backed defaults.
func Load() Config {
	return Config{
		LogMode:          envutil.Str("LOG_MODE", "development"),
		Organism:         envutil.Str("ENRICH_ORGANISM", ""),
		Category:         panther.Category(envutil.Str("ENRICH_CATEGORY", string(panther.BiologicalProcess))),
		FDRThreshold:     envutil.Float("ENRICH_FDR_THRESHOLD", 0.05),
		OutPrefix:        envutil.Str("ENRICH_OUT_PREFIX", "net"),
		ColorsPath:       envutil.Str("ENRICH_COLORS_PATH", ""),
		PantherBaseURL:   envutil.Str("PANTHER_BASE_URL", ""),
		QuickGOBaseURL:   envutil.Str("QUICKGO_BASE_URL", ""),
		QuickGOBatchSize: envutil.Int("QUICKGO_BATCH_SIZE", 200),
		HTTPTimeout:      envutil.Dur("ENRICH_HTTP_TIMEOUT", 60*time.Second),
	}
}

// runFile is the YAML shape of the optional run configuration file.
type runFile struct {
	Organism     string   `yaml:"organism"`
	Category     string   `yaml:"category"`
	FDRThreshold *float64 `yaml:"fdr_threshold"`
	OutPrefix    string   `yaml:"out_prefix"`
	Colors       string   `yaml:"colors"`
	Panther      struct {
		BaseURL string `yaml:"base_url"`
	} `yaml:"panther"`
	QuickGO struct {
		BaseURL string `yaml:"base_url"`
	} `yaml:"quickgo"`
}

// ApplyFile overlays the YAML run file at path onto the config. Absent
// fields keep their current value.
func (c *Config) ApplyFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read run file: %w", err)
	}
	var rf runFile
	if err := yaml.Unmarshal(raw, &rf); err != nil {
		return fmt.Errorf("decode run file %s: %w", path, err)
	}

	if rf.Organism != "" {
		c.Organism = rf.Organism
	}
	if rf.Category != "" {
		c.Category = panther.Category(rf.Category)
	}
	if rf.FDRThreshold != nil {
		c.FDRThreshold = *rf.FDRThreshold
	}
	if rf.OutPrefix != "" {
		c.OutPrefix = rf.OutPrefix
	}
	if rf.Colors != "" {
		c.ColorsPath = rf.Colors
	}
	if rf.Panther.BaseURL != "" {
		c.PantherBaseURL = rf.Panther.BaseURL
	}
	if rf.QuickGO.BaseURL != "" {
		c.QuickGOBaseURL = rf.QuickGO.BaseURL
	}
	return nil
}

// Validate checks the fields every run needs.
func (c Config) Validate() error {
	if c.Organism == "" {
		return fmt.Errorf("organism is required (flag -organism, run file, or ENRICH_ORGANISM)")
	}
	if c.ColorsPath == "" {
		return fmt.Errorf("colors input is required (flag -colors, run file, or ENRICH_COLORS_PATH)")
	}
	if c.FDRThreshold < 0 || c.FDRThreshold > 1 {
		return fmt.Errorf("fdr threshold %v outside [0, 1]", c.FDRThreshold)
	}
	return nil
}
