// Package prompts holds the fixed system instructions sent with every
// inference call, loaded from an embedded YAML file so prompt edits never
// touch Go code.
package prompts

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed config/prompts.yaml
var configFiles embed.FS

// Prompts holds the system instruction for each AI operation.
type Prompts struct {
	Generate  string `yaml:"generate"`
	Explain   string `yaml:"explain"`
	Assistant string `yaml:"assistant"`
}

// Load reads and validates the embedded prompt file.
func Load() (*Prompts, error) {
	data, err := configFiles.ReadFile("config/prompts.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read prompts file: %w", err)
	}

	var p Prompts
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal prompts: %w", err)
	}

	if p.Generate == "" || p.Explain == "" || p.Assistant == "" {
		return nil, fmt.Errorf("prompts file is missing one or more instructions")
	}

	return &p, nil
}
