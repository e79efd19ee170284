package main

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/hyperjump/fsearch/internal/config"
	"github.com/spf13/cobra"
)

var rootsCmd = &cobra.Command{
	Use:   "roots",
	Short: "List the roots searched when a request names none",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, _, err := loadConfig(configPath)
		if err != nil {
			return err
		}
		for _, root := range cfg.Search.Roots {
			fmt.Fprintln(out, root)
		}
		return nil
	},
}

var rootsAddCmd = &cobra.Command{
	Use:   "add <dir>",
	Short: "Add a default root to the config file",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return updateRoots(args[0], func(roots []string, root string) ([]string, bool) {
			if slices.Contains(roots, root) {
				return roots, false
			}
			return append(roots, root), true
		})
	},
}

var rootsRemoveCmd = &cobra.Command{
	Use:   "remove <dir>",
	Short: "Remove a default root from the config file",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return updateRoots(args[0], func(roots []string, root string) ([]string, bool) {
			i := slices.Index(roots, root)
			if i < 0 {
				return roots, false
			}
			return slices.Delete(roots, i, i+1), true
		})
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Fprintf(out, "fsearch version %s\n", version)
	},
}

func init() {
	rootsCmd.AddCommand(rootsAddCmd, rootsRemoveCmd)
	rootCmd.AddCommand(rootsCmd, versionCmd)
}

// updateRoots applies edit to the configured roots and saves the config file when it changed.
// A running server picks the change up through its config watcher.
func updateRoots(dir string, edit func(roots []string, root string) ([]string, bool)) error {
	cfg, path, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolve %q: %w", dir, err)
	}
	roots, changed := edit(cfg.Search.Roots, abs)
	if !changed {
		fmt.Fprintf(out, "roots unchanged: %s\n", abs)
		return nil
	}
	cfg.Search.Roots = roots
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Fprintf(out, "roots updated in %s\n", path)
	return nil
}
