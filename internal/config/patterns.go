package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Patterns are optional additive overrides loaded from patterns.yaml. They
// extend the config lists; they never replace or relax them.
type Patterns struct {
	Commands   []string `yaml:"commands"`
	WarnCmds   []string `yaml:"warn_commands"`
	ReadPaths  []string `yaml:"read_paths"`
	WritePaths []string `yaml:"write_paths"`
	Extensions []string `yaml:"extensions"`
}

// LoadPatterns reads a YAML override file. A missing file is not an error;
// it yields empty patterns.
func LoadPatterns(path string) (Patterns, error) {
	var p Patterns
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return p, nil
		}
		return p, err
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Patterns{}, err
	}
	return p, nil
}

// ApplyPatterns merges overrides into the config lists.
func (c *Config) ApplyPatterns(p Patterns) {
	c.Bash.BlockedCommands = append(c.Bash.BlockedCommands, p.Commands...)
	c.Bash.WarnCommands = append(c.Bash.WarnCommands, p.WarnCmds...)
	c.Read.BlockedPaths = append(c.Read.BlockedPaths, p.ReadPaths...)
	c.Read.BlockedExtensions = append(c.Read.BlockedExtensions, p.Extensions...)
	c.Write.BlockedPaths = append(c.Write.BlockedPaths, p.WritePaths...)
}
