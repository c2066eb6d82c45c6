// Package dynamics supplies the classified attractors computed upstream for
// each network interpretation (color). The dynamics themselves are computed
// elsewhere; this package only enumerates the results and evaluates the
// sign-prefixed node phenotypes they carry.
package dynamics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrMissingSignPrefix is returned when a phenotype node lacks the "+"/"-"
// evaluation prefix the upstream classifier is expected to emit.
var ErrMissingSignPrefix = errors.New("phenotype node missing +/- sign prefix")

// Classified is one classified attractor: its sign-prefixed phenotype nodes
// and the classifier's type label.
type Classified struct {
	Nodes []string `json:"nodes"`
	Type  string   `json:"type"`
}

// Color is one fully specified interpretation of the network together with
// its classified attractors.
type Color struct {
	Name       string       `json:"name"`
	Attractors []Classified `json:"attractors"`
}

// Source enumerates the interpretations to aggregate over.
type Source interface {
	Colors(ctx context.Context) ([]Color, error)
}

// FileSource reads colors from a JSON document of the form
// {"colors": [{"name": ..., "attractors": [{"nodes": [...], "type": ...}]}]}.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Colors(_ context.Context) ([]Color, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read colors file: %w", err)
	}
	var doc struct {
		Colors []Color `json:"colors"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode colors file %s: %w", s.path, err)
	}
	return doc.Colors, nil
}

// EvaluatedNodes filters sign-prefixed phenotype nodes down to the positively
// (or negatively) evaluated ones, with the prefix stripped. Any node without
// a recognized prefix fails the whole call.
func EvaluatedNodes(nodes []string, positive bool) ([]string, error) {
	out := make([]string, 0, len(nodes))
	for _, node := range nodes {
		switch {
		case strings.HasPrefix(node, "+"):
			if positive {
				out = append(out, node[1:])
			}
		case strings.HasPrefix(node, "-"):
			if !positive {
				out = append(out, node[1:])
			}
		default:
			return nil, fmt.Errorf("%w: %q", ErrMissingSignPrefix, node)
		}
	}
	return out, nil
}
