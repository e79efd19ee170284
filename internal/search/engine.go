// Package search finds files by path across several roots, fanning out one rg process
// per root and ranking the merged matches.
package search

import (
	"context"
	"errors"
	"slices"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/hyperjump/fsearch/internal/config"
	"github.com/hyperjump/fsearch/internal/fileuri"
	"github.com/hyperjump/fsearch/internal/models"
	"github.com/hyperjump/fsearch/internal/ripgrep"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// lineBuffer decouples rg's output from classification without reading far ahead.
const lineBuffer = 64

// noFilesExitCode is rg's status when nothing was listed, e.g. every file was filtered out.
const noFilesExitCode = 1

var (
	// ErrLimitReached is the cancellation cause when exact matches fill the limit.
	ErrLimitReached = errors.New("result limit reached")
	// ErrNoRunner is returned by Find on an engine built without a runner.
	ErrNoRunner = errors.New("search engine has no runner")
)

// Runner lists the files under one root. See ripgrep.Runner.
type Runner interface {
	Run(ctx context.Context, dir string, args []string, lines chan<- string) error
}

// Engine runs multi-root file searches.
type Engine struct {
	runner Runner
	config atomic.Pointer[config.SearchConfig]
	logger *zap.Logger
}

// NewEngine creates a search engine with the given dependencies.
func NewEngine(runner Runner, cfg *config.SearchConfig, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{runner: runner, logger: logger}
	e.SetConfig(cfg)
	return e
}

// SetConfig replaces the search defaults. Calls already running keep the old ones.
func (e *Engine) SetConfig(cfg *config.SearchConfig) {
	if cfg == nil {
		cfg = &config.SearchConfig{}
	}
	e.config.Store(cfg)
}

// Config returns the current search defaults.
func (e *Engine) Config() *config.SearchConfig {
	return e.config.Load()
}

// Find returns the file:// URIs under the requested roots whose paths match pattern:
// exact (case-insensitive substring) matches in discovery order, then fuzzy matches by
// relevance, at most the effective limit in total.
//
// A root that fails is logged and contributes nothing further; it never fails the call.
// If ctx is cancelled before Find returns, the result is empty.
func (e *Engine) Find(ctx context.Context, pattern string, opts *models.FindOptions) ([]string, error) {
	if e.runner == nil {
		return nil, ErrNoRunner
	}
	if ctx.Err() != nil {
		return []string{}, nil
	}
	startTime := time.Now()
	cfg := e.Config()
	logger := e.logger.With(zap.String("search_id", uuid.NewString()))

	eff := Merge(opts, cfg)
	q := prepareQuery(pattern)
	col := newCollector(q, eff.FuzzyMatch, eff.Limit)

	searchCtx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	roots := make([]string, 0, len(eff.Roots))
	for root := range eff.Roots {
		roots = append(roots, root)
	}
	slices.Sort(roots)
	logger.Debug("search started",
		zap.String("pattern", pattern),
		zap.Strings("roots", roots),
		zap.Int("limit", eff.Limit),
		zap.Bool("fuzzy", eff.FuzzyMatch))

	var g errgroup.Group
	if cfg.MaxConcurrentRoots > 0 {
		g.SetLimit(cfg.MaxConcurrentRoots)
	}
	for _, root := range roots {
		rootOpts := eff.Roots[root]
		g.Go(func() error {
			err := e.searchRoot(searchCtx, cancel, root, rootOpts, col)
			var exitErr *ripgrep.ExitError
			switch {
			case err == nil:
			case errors.As(err, &exitErr) && exitErr.Code == noFilesExitCode:
				logger.Debug("root listed no files", zap.String("root", root), zap.Error(err))
			default:
				logger.Warn("root search failed", zap.String("root", root), zap.Error(err))
			}
			return nil
		})
	}
	_ = g.Wait()

	if ctx.Err() != nil {
		logger.Debug("search cancelled by caller", zap.Duration("elapsed", time.Since(startTime)))
		return []string{}, nil
	}
	results := col.results()
	logger.Debug("search finished",
		zap.Int("results", len(results)),
		zap.Bool("limit_reached", errors.Is(context.Cause(searchCtx), ErrLimitReached)),
		zap.Duration("elapsed", time.Since(startTime)))
	return results, nil
}

// searchRoot streams one root's candidates into col. The runner produces lines on its own
// goroutine; this goroutine is their only consumer.
func (e *Engine) searchRoot(ctx context.Context, cancel context.CancelCauseFunc, rootURI string, opts models.RootOptions, col *collector) error {
	rootPath, err := fileuri.ToPath(rootURI)
	if err != nil {
		return err
	}
	lines := make(chan string, lineBuffer)
	runErr := make(chan error, 1)
	go func() {
		runErr <- e.runner.Run(ctx, rootPath, ripgrep.BuildArgs(opts), lines)
		close(lines)
	}()
	for line := range lines {
		if ctx.Err() != nil {
			continue
		}
		if col.add(fileuri.Resolve(rootPath, line), line) {
			cancel(ErrLimitReached)
		}
	}
	return <-runErr
}
