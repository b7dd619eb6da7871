// Package mapping holds the static lookup from canonical filenames to
// warehouse targets. The registry is populated at construction and immutable
// for the duration of a run.
package mapping

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/thaole73/snowload/pkg/snowload"
)

// Registry maps canonical filenames to their target table and DDL file.
// Immutable after construction; safe for concurrent reads.
type Registry struct {
	entries map[string]snowload.TableMapping
}

// Default returns a registry with the built-in MovieLens dataset mappings.
func Default() *Registry {
	return &Registry{
		entries: map[string]snowload.TableMapping{
			"genome-scores.csv": {TableName: "raw_genome_scores", SchemaFile: "raw_genome_scores.sql"},
			"genome-tags.csv":   {TableName: "raw_genome_tags", SchemaFile: "raw_genome_tags.sql"},
			"links.csv":         {TableName: "raw_links", SchemaFile: "raw_links.sql"},
			"movies.csv":        {TableName: "raw_movies", SchemaFile: "raw_movies.sql"},
			"ratings.csv":       {TableName: "raw_ratings", SchemaFile: "raw_ratings.sql"},
			"tags.csv":          {TableName: "raw_tags", SchemaFile: "raw_tags.sql"},
		},
	}
}

// mappingEntry is the YAML shape of one overlay entry.
type mappingEntry struct {
	Table      string `yaml:"table"`
	SchemaFile string `yaml:"schema_file"`
}

// WithOverlay returns a new registry extended by entries parsed from YAML
// content. Overlay entries override built-ins with the same canonical name.
//
// Expected shape:
//
//	mappings:
//	  reviews.csv:
//	    table: raw_reviews
//	    schema_file: raw_reviews.sql
func (r *Registry) WithOverlay(content []byte) (*Registry, error) {
	var doc struct {
		Mappings map[string]mappingEntry `yaml:"mappings"`
	}
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse mappings overlay: %w", err)
	}

	merged := make(map[string]snowload.TableMapping, len(r.entries)+len(doc.Mappings))
	for name, m := range r.entries {
		merged[name] = m
	}
	for name, e := range doc.Mappings {
		if e.Table == "" || e.SchemaFile == "" {
			return nil, fmt.Errorf("mapping for %q must set table and schema_file: %w", name, snowload.ErrInvalidConfig)
		}
		merged[name] = snowload.TableMapping{TableName: e.Table, SchemaFile: e.SchemaFile}
	}

	return &Registry{entries: merged}, nil
}

// Lookup resolves a canonical filename. The comma-ok result forces callers
// to handle unknown names explicitly; a miss is "skip, not fatal" for the
// ingestion loop.
func (r *Registry) Lookup(canonicalName string) (snowload.TableMapping, bool) {
	m, ok := r.entries[canonicalName]
	return m, ok
}

// Names returns all registered canonical names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
