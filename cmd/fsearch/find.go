package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/hyperjump/fsearch/internal/cli"
	"github.com/hyperjump/fsearch/internal/fileuri"
	"github.com/hyperjump/fsearch/internal/models"
	"github.com/hyperjump/fsearch/internal/ripgrep"
	"github.com/hyperjump/fsearch/internal/search"
	"github.com/hyperjump/fsearch/pkg/utils"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	findRoots     []string
	findIncludes  []string
	findExcludes  []string
	findLimit     int
	findFuzzy     bool
	findGitIgnore bool
	findOutput    string
	findServer    string
	findTimeout   time.Duration
)

var findCmd = &cobra.Command{
	Use:   "find [flags] [pattern]",
	Short: "Find files whose paths match a pattern",
	Long: `Find files whose paths match a pattern.

An empty pattern or "*" matches every file. Matching is case-insensitive; with --fuzzy
(the default) paths that contain the pattern's characters in order are also returned,
ranked after the substring matches.

Examples:
  fsearch find --root ~/src main.go
  fsearch find --root . --include '*.go' --exclude vendor handler
  fsearch find --root . --fuzzy=false --limit 20 readme
  fsearch find --server http://localhost:8080 config`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFind,
}

func init() {
	f := findCmd.Flags()
	f.StringArrayVar(&findRoots, "root", nil, "root directory or file:// URI to search (repeatable; default: configured roots)")
	f.StringArrayVar(&findIncludes, "include", nil, "only list files matching this glob (repeatable)")
	f.StringArrayVar(&findExcludes, "exclude", nil, "skip files matching this glob (repeatable)")
	f.IntVar(&findLimit, "limit", 0, "maximum number of results (0 = configured default)")
	f.BoolVar(&findFuzzy, "fuzzy", true, "also return fuzzy matches")
	f.BoolVar(&findGitIgnore, "git-ignore", true, "honor .gitignore and other ignore files")
	f.StringVar(&findOutput, "output", "text", "output format: text, compact (one URI per line), or json")
	f.StringVar(&findServer, "server", "", "fsearch server URL (empty = search directly)")
	f.DurationVar(&findTimeout, "timeout", 0, "give up after this long and return no results (0 = no timeout)")
	rootCmd.AddCommand(findCmd)
}

func runFind(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseOutputFormat(findOutput)
	if err != nil {
		return err
	}
	pattern := ""
	if len(args) == 1 {
		pattern = args[0]
	}
	opts, err := buildFindOptions(cmd, findRoots)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if findTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, findTimeout)
		defer cancel()
	}

	var response *models.FindResponse
	if findServer != "" {
		response, err = findViaHTTP(ctx, findServer, &models.FindRequest{Pattern: pattern, Options: opts})
	} else {
		response, err = findDirect(ctx, pattern, opts)
	}
	if err != nil {
		return fmt.Errorf("find failed: %w", err)
	}
	return cli.WriteResults(out, response, format)
}

// buildFindOptions turns the find flags into request options. Flags left at their defaults
// stay unset so the configuration decides.
func buildFindOptions(cmd *cobra.Command, roots []string) (*models.FindOptions, error) {
	opts := &models.FindOptions{
		IncludePatterns: findIncludes,
		ExcludePatterns: findExcludes,
		Limit:           findLimit,
	}
	for _, root := range roots {
		uri, err := rootURI(root)
		if err != nil {
			return nil, err
		}
		opts.RootURIs = append(opts.RootURIs, uri)
	}
	if cmd.Flags().Changed("fuzzy") {
		v := findFuzzy
		opts.FuzzyMatch = &v
	}
	if cmd.Flags().Changed("git-ignore") {
		v := findGitIgnore
		opts.UseGitIgnore = &v
	}
	return opts, nil
}

// rootURI accepts a file:// URI as is and turns a path, relative or not, into one.
func rootURI(root string) (string, error) {
	if strings.Contains(root, "://") {
		return root, nil
	}
	if strings.HasPrefix(root, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			root = filepath.Join(home, root[2:])
		}
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve root %q: %w", root, err)
	}
	return fileuri.FromPath(abs), nil
}

func findDirect(ctx context.Context, pattern string, opts *models.FindOptions) (*models.FindResponse, error) {
	cfg, _, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	logger, err := utils.NewCLILogger(cfg.Debug || debug)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	if len(opts.RootURIs) == 0 && len(cfg.Search.Roots) == 0 {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			opts.RootURIs = []string{fileuri.FromPath(cwd)}
		}
	}

	runner := ripgrep.NewRunner(cfg.Search.Executable, ripgrep.WithLogger(logger))
	engine := search.NewEngine(runner, &cfg.Search, logger)
	start := time.Now()
	results, err := engine.Find(ctx, pattern, opts)
	if err != nil {
		return nil, err
	}
	logger.Debug("find complete", zap.Int("results", len(results)))
	return &models.FindResponse{
		Results:   results,
		Total:     len(results),
		QueryTime: time.Since(start).Milliseconds(),
		Pattern:   pattern,
	}, nil
}

func findViaHTTP(ctx context.Context, serverURL string, req *models.FindRequest) (*models.FindResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimRight(serverURL, "/")+"/api/v1/find", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return &models.FindResponse{Results: []string{}, Pattern: req.Pattern}, nil
		}
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, apiErr.Error)
	}
	var response models.FindResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &response, nil
}
