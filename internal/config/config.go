// Package config provides configuration loading and structs for the fsearch server and CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hyperjump/fsearch/internal/models"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug  bool         `yaml:"debug"`
	Server ServerConfig `yaml:"server"`
	Search SearchConfig `yaml:"search"`
	Watch  WatchConfig  `yaml:"watch"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// SearchConfig holds the defaults applied to every find call.
type SearchConfig struct {
	// Executable is the rg binary; looked up on PATH unless absolute.
	Executable string `yaml:"executable"`
	// DefaultLimit applies when a request sets no limit. 0 means unbounded.
	DefaultLimit int `yaml:"default_limit"`
	// MaxLimit caps any requested limit. 0 means no cap.
	MaxLimit        int      `yaml:"max_limit"`
	FuzzyMatch      *bool    `yaml:"fuzzy_match"`
	UseGitIgnore    *bool    `yaml:"use_git_ignore"`
	IncludePatterns []string `yaml:"include_patterns"`
	ExcludePatterns []string `yaml:"exclude_patterns"`
	// MaxConcurrentRoots bounds how many rg processes run at once. 0 means one per root.
	MaxConcurrentRoots int `yaml:"max_concurrent_roots"`
	// Roots are searched when a request names none.
	Roots       []string                      `yaml:"roots"`
	RootOptions map[string]models.RootOptions `yaml:"root_options"`
}

// FuzzyMatchOrDefault returns whether fuzzy matching is on; defaults to true when unset.
func (s *SearchConfig) FuzzyMatchOrDefault() bool {
	if s.FuzzyMatch != nil {
		return *s.FuzzyMatch
	}
	return true
}

// UseGitIgnoreOrDefault returns whether ignore files are honored; defaults to true when unset.
func (s *SearchConfig) UseGitIgnoreOrDefault() bool {
	if s.UseGitIgnore != nil {
		return *s.UseGitIgnore
	}
	return true
}

// WatchConfig controls reloading of the config file while the server runs.
type WatchConfig struct {
	Config *bool `yaml:"config"`
}

// ConfigOrDefault returns whether the config file is watched; defaults to true when unset.
func (w *WatchConfig) ConfigOrDefault() bool {
	if w.Config != nil {
		return *w.Config
	}
	return true
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	if strings.HasPrefix(cfg.Search.Executable, "./") {
		cfg.Search.Executable = expandPath(cfg.Search.Executable, configDir)
	}
	for i := range cfg.Search.Roots {
		cfg.Search.Roots[i] = expandPath(cfg.Search.Roots[i], configDir)
	}
	if len(cfg.Search.RootOptions) > 0 {
		expanded := make(map[string]models.RootOptions, len(cfg.Search.RootOptions))
		for root, opts := range cfg.Search.RootOptions {
			expanded[expandPath(root, configDir)] = opts
		}
		cfg.Search.RootOptions = expanded
	}

	return &cfg, nil
}

// Save writes the config to path, creating its directory if needed.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory. URIs are returned unchanged.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) || strings.Contains(path, "://") {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if strings.HasPrefix(path, "~/") {
		path = path[2:]
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
