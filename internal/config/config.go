// Package config loads the gate configuration from disk. Missing or
// malformed files fall back to hardcoded security-conservative defaults;
// loading can never fail a verdict. The loaded Config is an explicit
// read-only value threaded into the dispatcher — there is no package-level
// singleton, so predicates stay testable in isolation.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// Config is the full gate configuration.
type Config struct {
	Read      ReadConfig      `json:"read"`
	Bash      BashConfig      `json:"bash"`
	Write     WriteConfig     `json:"write"`
	Intent    IntentConfig    `json:"intent"`
	Audit     AuditConfig     `json:"audit"`
	Telemetry TelemetryConfig `json:"telemetry"`
}

// ReadConfig governs the Read/Glob/Grep path policy.
type ReadConfig struct {
	Enabled           bool     `json:"enabled"`
	BlockedPaths      []string `json:"blocked_paths"`
	BlockedExtensions []string `json:"blocked_extensions"`
	WarnExtensions    []string `json:"warn_extensions"`
	WarnPatterns      []string `json:"warn_patterns"`
}

// BashConfig governs the shell-command policy.
type BashConfig struct {
	Enabled         bool     `json:"enabled"`
	BlockedCommands []string `json:"blocked_commands"`
	WarnCommands    []string `json:"warn_commands"`
}

// WriteConfig governs the write-path policy.
type WriteConfig struct {
	Enabled      bool     `json:"enabled"`
	BlockedPaths []string `json:"blocked_paths"`
}

// IntentConfig governs the prompt-submit cascade.
type IntentConfig struct {
	Enabled bool `json:"enabled"`
}

// AuditConfig governs the hash-chained verdict audit log.
type AuditConfig struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path"`
}

// TelemetryConfig governs the sqlite decision counters.
type TelemetryConfig struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path"`
}

// Default returns the hardcoded security-conservative configuration.
func Default() *Config {
	return &Config{
		Read: ReadConfig{
			Enabled: true,
			BlockedPaths: []string{
				"/etc/shadow",
				"/etc/passwd",
				"/.ssh/id_rsa",
				"/.ssh/id_ed25519",
				"/.aws/credentials",
				"/.gnupg/",
			},
			BlockedExtensions: []string{".pem", ".key", ".p12", ".pfx"},
			WarnExtensions:    []string{".env", ".secret"},
			WarnPatterns:      []string{"credentials", "password", "token"},
		},
		Bash: BashConfig{
			Enabled: true,
			BlockedCommands: []string{
				"rm -rf /",
				"rm -rf /*",
				"> /dev/sda",
				"curl | bash",
				"wget | sh",
				":(){ :|:& };:",
			},
			WarnCommands: []string{"sudo", "rm -rf"},
		},
		Write: WriteConfig{
			Enabled: true,
			BlockedPaths: []string{
				"/etc/",
				"/usr/",
				"/bin/",
				"/.ssh/",
				"/.aws/",
			},
		},
		Intent:    IntentConfig{Enabled: true},
		Audit:     AuditConfig{Enabled: false, Path: ""},
		Telemetry: TelemetryConfig{Enabled: true, Path: ""},
	}
}

// DefaultPath is the canonical config location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "hookgate", "config.json")
}

// Load reads the JSON config at path (DefaultPath when empty). Any error —
// missing file, unreadable, malformed — yields the defaults. Overrides from
// patterns.yaml next to the config file are merged in.
func Load(path string) *Config {
	if path == "" {
		path = DefaultPath()
	}
	cfg := Default()
	if path != "" {
		if data, err := os.ReadFile(path); err == nil {
			var loaded Config
			if err := json.Unmarshal(data, &loaded); err == nil {
				cfg = &loaded
			}
		}
		if p, err := LoadPatterns(filepath.Join(filepath.Dir(path), "patterns.yaml")); err == nil {
			cfg.ApplyPatterns(p)
		}
	}
	return cfg
}

// IsBlockedReadPath reports whether the read policy blocks the path.
func (c *Config) IsBlockedReadPath(path string) bool {
	if !c.Read.Enabled {
		return false
	}
	return containsAnyFold(path, c.Read.BlockedPaths)
}

// IsBlockedExtension reports whether the read policy blocks the extension.
func (c *Config) IsBlockedExtension(path string) bool {
	if !c.Read.Enabled {
		return false
	}
	return hasSuffixAnyFold(path, c.Read.BlockedExtensions)
}

// IsWarnPath reports whether the path deserves a secrets warning.
func (c *Config) IsWarnPath(path string) bool {
	if !c.Read.Enabled {
		return false
	}
	return hasSuffixAnyFold(path, c.Read.WarnExtensions) ||
		containsAnyFold(path, c.Read.WarnPatterns)
}

// IsBlockedCommand reports whether the shell policy blocks the command.
func (c *Config) IsBlockedCommand(cmd string) bool {
	if !c.Bash.Enabled {
		return false
	}
	return containsAnyFold(cmd, c.Bash.BlockedCommands)
}

// IsBlockedWritePath reports whether the write policy blocks the path.
func (c *Config) IsBlockedWritePath(path string) bool {
	if !c.Write.Enabled {
		return false
	}
	return containsAnyFold(path, c.Write.BlockedPaths)
}

func containsAnyFold(s string, patterns []string) bool {
	lower := strings.ToLower(s)
	for _, p := range patterns {
		if p == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

func hasSuffixAnyFold(s string, suffixes []string) bool {
	lower := strings.ToLower(s)
	for _, suf := range suffixes {
		if suf == "" {
			continue
		}
		if strings.HasSuffix(lower, strings.ToLower(suf)) {
			return true
		}
	}
	return false
}
