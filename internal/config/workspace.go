package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// WorkspaceConfig is the optional per-workspace overlay, read from
// .garapagent/config.yaml under the workspace root. It can extend the
// documentation allow-list and override the provider selection locally.
type WorkspaceConfig struct {
	Provider      string   `yaml:"provider,omitempty"`
	Model         string   `yaml:"model,omitempty"`
	ExtraDocHosts []string `yaml:"extra_doc_hosts,omitempty"`
}

// LoadWorkspace reads the workspace overlay. A missing file yields an empty
// overlay; a malformed one is an error so silent misconfiguration cannot
// pass unnoticed.
func LoadWorkspace(workspaceRoot string) (*WorkspaceConfig, error) {
	wc := &WorkspaceConfig{}
	if workspaceRoot == "" {
		return wc, nil
	}

	path := filepath.Join(workspaceRoot, ".garapagent", "config.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return wc, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, wc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return wc, nil
}

// Apply overlays workspace-local values onto the global config.
func (w *WorkspaceConfig) Apply(cfg *Config) {
	if w.Provider != "" {
		cfg.Provider = w.Provider
	}
	if w.Model != "" {
		cfg.Model = w.Model
	}
}
