// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/profile-curator/internal/curation"
	"github.com/pdiddy/profile-curator/internal/source"
	"github.com/pdiddy/profile-curator/pkg/types"
)

const (
	defaultTimeout    = 30 * time.Second
	defaultUserAgent  = "profile-curator/0.1"
	defaultMaxResults = 20
	defaultProfileDir = "profile"
)

// parseKind validates a --source flag value.
func parseKind(s string) (types.SourceKind, error) {
	switch kind := types.SourceKind(s); kind {
	case types.SourcePubMed, types.SourceTrials, types.SourceMedia:
		return kind, nil
	default:
		return "", fmt.Errorf("unknown source %q: use pubmed, trials, or media", s)
	}
}

// httpConfig merges viper settings with defaults.
func httpConfig() types.HTTPConfig {
	timeout := viper.GetDuration("http.timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}
	userAgent := viper.GetString("http.user_agent")
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return types.HTTPConfig{Timeout: timeout, UserAgent: userAgent}
}

// newAdapter constructs the source adapter for kind from config, env, and
// loaded secrets.
func newAdapter(kind types.SourceKind, maxResults int) (source.Adapter, error) {
	hc := httpConfig()
	client := &http.Client{Timeout: hc.Timeout}
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	switch kind {
	case types.SourcePubMed:
		return &source.PubMed{
			Client: client,
			Config: types.PubMedConfig{
				HTTPConfig: hc,
				APIKey:     secretDefault("ncbi-api-key", viper.GetString("pubmed.api_key")),
				MaxResults: maxResults,
			},
		}, nil
	case types.SourceTrials:
		return &source.Trials{
			Client: client,
			Config: types.TrialsConfig{
				HTTPConfig: hc,
				MaxResults: maxResults,
			},
		}, nil
	case types.SourceMedia:
		return &source.Media{
			Client: client,
			Config: types.MediaConfig{
				HTTPConfig: hc,
				BaseURL:    viper.GetString("media.base_url"),
				APIKey:     secretDefault("newsroom-api-key", viper.GetString("media.api_key")),
				MaxResults: maxResults,
			},
		}, nil
	default:
		return nil, fmt.Errorf("unknown source %q", kind)
	}
}

// profileDir resolves the collection directory: flag, then config, then
// the default.
func profileDir(cmd *cobra.Command) string {
	if dir, _ := cmd.Flags().GetString("profile-dir"); dir != "" {
		return dir
	}
	if dir := viper.GetString("curation.profile_dir"); dir != "" {
		return dir
	}
	return defaultProfileDir
}

// openStore opens the collection store for the command's profile directory.
func openStore(cmd *cobra.Command) (*curation.Store, error) {
	return curation.NewStore(types.CurationConfig{ProfileDir: profileDir(cmd)}, os.Stderr)
}
