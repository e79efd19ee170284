// Package main is the fsearch CLI entry point.
package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hyperjump/fsearch/internal/config"
	"github.com/spf13/cobra"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/fsearch/config.yaml"

var (
	configPath string
	debug      bool
)

// out is where commands write results. Tests replace it to capture output.
var out io.Writer = os.Stdout

var rootCmd = &cobra.Command{
	Use:   "fsearch",
	Short: "Fast file path search across many roots",
	Long: `fsearch lists files under one or more root directories with ripgrep and returns the
paths matching a pattern: substring matches first, then fuzzy matches ranked by relevance.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath, "config file path")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig loads config from path. When path is the default, config.yaml in the current
// directory takes precedence, and a missing default file yields the built-in defaults.
// Returns the config and the path it was read from, or would be saved to.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, err := os.Getwd(); err == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			cfg := &config.Config{}
			config.ApplyDefaults(cfg)
			return cfg, path, nil
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
