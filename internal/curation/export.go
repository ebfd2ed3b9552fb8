// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package curation

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/profile-curator/pkg/types"
)

// ExportYAML writes the collection to path in insertion order. An empty
// kind exports every source.
func (s *Store) ExportYAML(ctx context.Context, kind types.SourceKind, path string) error {
	entries, err := s.All(ctx, kind)
	if err != nil {
		return fmt.Errorf("querying for export: %w", err)
	}
	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ExportJSON writes the collection to path in insertion order. An empty
// kind exports every source.
func (s *Store) ExportJSON(ctx context.Context, kind types.SourceKind, path string) error {
	entries, err := s.All(ctx, kind)
	if err != nil {
		return fmt.Errorf("querying for export: %w", err)
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
