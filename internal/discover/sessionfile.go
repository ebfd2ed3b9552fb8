// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package discover

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/profile-curator/pkg/types"
)

// SessionFile is the on-disk representation of a discovery run. A reviewer
// can save a search to a file, inspect or edit it, and promote from it later
// without re-querying the catalog.
type SessionFile struct {
	Source   types.SourceKind      `yaml:"source"`
	Provider ProviderParams        `yaml:"provider"`
	Result   types.DiscoveryResult `yaml:"result"`
}

// ProviderParams stores the search inputs in a serializable form.
type ProviderParams struct {
	Name        string `yaml:"name"`
	Affiliation string `yaml:"affiliation,omitempty"`
}

// WriteSessionFile saves a discovery result and the inputs that produced it
// to a YAML file.
func WriteSessionFile(path string, kind types.SourceKind, name, affiliation string, result types.DiscoveryResult) error {
	sf := SessionFile{
		Source: kind,
		Provider: ProviderParams{
			Name:        name,
			Affiliation: affiliation,
		},
		Result: result,
	}

	data, err := yaml.Marshal(&sf)
	if err != nil {
		return fmt.Errorf("marshaling session file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadSessionFile loads a previously saved discovery session from disk.
func ReadSessionFile(path string) (*SessionFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading session file: %w", err)
	}
	var sf SessionFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parsing session file: %w", err)
	}
	if sf.Source == "" {
		return nil, fmt.Errorf("session file %s has no source", path)
	}
	return &sf, nil
}
