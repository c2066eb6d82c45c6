package panther

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sybila/psbn-enrichment/internal/platform/logger"
)

const enrichmentBody = `{
	"results": {
		"input_list": {
			"organism": "Homo sapiens",
			"mapped_ids": "TP53,MDM2",
			"mapped_count": 2,
			"unmapped_ids": "FOO",
			"unmapped_count": 1
		},
		"result": [
			{
				"term": {"id": "GO:0008150", "label": "biological_process"},
				"fold_enrichment": 2.5,
				"fdr": 0.01,
				"expected": 1.2,
				"number_in_reference": 42,
				"pValue": 0.001,
				"plus_minus": "+"
			}
		]
	}
}`

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	require.NoError(t, err)
	return log
}

func TestOverrepresentation(t *testing.T) {
	t.Run("decodes input list and records", func(t *testing.T) {
		var gotQuery map[string]string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = map[string]string{}
			for k := range r.URL.Query() {
				gotQuery[k] = r.URL.Query().Get(k)
			}
			w.Write([]byte(enrichmentBody))
		}))
		defer srv.Close()

		c, err := New(testLogger(t), Config{BaseURL: srv.URL})
		require.NoError(t, err)

		result, err := c.Overrepresentation(context.Background(), Request{
			Genes:    "TP53, MDM2, FOO",
			Organism: "9606",
			Category: BiologicalProcess,
		})

		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, "Homo sapiens", result.Organism)
		assert.Equal(t, "TP53,MDM2", result.MappedIDs)
		assert.Equal(t, 2, result.MappedCount)
		assert.Equal(t, "FOO", result.UnmappedIDs)
		assert.Equal(t, 1, result.UnmappedCount)
		require.Len(t, result.Records, 1)
		rec := result.Records[0]
		assert.Equal(t, "GO:0008150", rec.ID)
		assert.Equal(t, "biological_process", rec.Label)
		assert.Equal(t, 2.5, rec.FoldEnrichment)
		assert.Equal(t, 0.01, rec.FDR)
		assert.Equal(t, 42, rec.NumberInReference)
		assert.Equal(t, "+", rec.PlusMinus)

		assert.Equal(t, "TP53, MDM2, FOO", gotQuery["geneInputList"])
		assert.Equal(t, "9606", gotQuery["organism"])
		assert.Equal(t, "GO:0008150", gotQuery["annotDataSet"])
		assert.Equal(t, "FISHER", gotQuery["enrichmentTestType"])
		assert.Equal(t, "FDR", gotQuery["correction"])
	})

	t.Run("search error means no data, not a failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"search": {"error": "No IDs mapped"}}`))
		}))
		defer srv.Close()

		c, err := New(testLogger(t), Config{BaseURL: srv.URL})
		require.NoError(t, err)

		result, err := c.Overrepresentation(context.Background(), Request{
			Genes:    "UNKNOWN",
			Organism: "9606",
			Category: BiologicalProcess,
		})

		require.NoError(t, err)
		assert.Nil(t, result)
	})

	t.Run("non-2xx is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "overloaded", http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		c, err := New(testLogger(t), Config{BaseURL: srv.URL})
		require.NoError(t, err)

		_, err = c.Overrepresentation(context.Background(), Request{
			Genes:    "TP53",
			Organism: "9606",
			Category: BiologicalProcess,
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "503")
	})

	t.Run("response without results is a structural failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		c, err := New(testLogger(t), Config{BaseURL: srv.URL})
		require.NoError(t, err)

		_, err = c.Overrepresentation(context.Background(), Request{
			Genes:    "TP53",
			Organism: "9606",
			Category: BiologicalProcess,
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing results")
	})

	t.Run("record without a term id is a structural failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{
				"results": {
					"input_list": {"organism": "Homo sapiens", "mapped_count": 1},
					"result": [
						{"term": {"id": "GO:0008150", "label": "biological_process"}, "fdr": 0.01},
						{"fdr": 0.02}
					]
				}
			}`))
		}))
		defer srv.Close()

		c, err := New(testLogger(t), Config{BaseURL: srv.URL})
		require.NoError(t, err)

		_, err = c.Overrepresentation(context.Background(), Request{
			Genes:    "TP53",
			Organism: "9606",
			Category: BiologicalProcess,
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing term id")
	})

	t.Run("unknown category is rejected before any request", func(t *testing.T) {
		c, err := New(testLogger(t), Config{BaseURL: "http://127.0.0.1:0"})
		require.NoError(t, err)

		_, err = c.Overrepresentation(context.Background(), Request{
			Genes:    "TP53",
			Organism: "9606",
			Category: Category("XX"),
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown GO category")
	})

	t.Run("organism is required", func(t *testing.T) {
		c, err := New(testLogger(t), Config{BaseURL: "http://127.0.0.1:0"})
		require.NoError(t, err)

		_, err = c.Overrepresentation(context.Background(), Request{
			Genes:    "TP53",
			Category: BiologicalProcess,
		})

		require.Error(t, err)
	})
}

func TestCategoryMapping(t *testing.T) {
	cases := []struct {
		category Category
		dataSet  string
	}{
		{BiologicalProcess, "GO:0008150"},
		{MolecularFunction, "GO:0003674"},
		{CellularComponent, "GO:0005575"},
	}
	for _, tc := range cases {
		got, err := tc.category.annotDataSet()
		require.NoError(t, err)
		assert.Equal(t, tc.dataSet, got)
	}
}

func TestPrepareGeneList(t *testing.T) {
	assert.Equal(t, "A, B, C", PrepareGeneList([]string{"A", "B", "C"}))
	assert.Equal(t, "", PrepareGeneList(nil))
}
