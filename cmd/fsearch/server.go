package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hyperjump/fsearch/internal/config"
	"github.com/hyperjump/fsearch/internal/ripgrep"
	"github.com/hyperjump/fsearch/internal/search"
	"github.com/hyperjump/fsearch/internal/server"
	"github.com/hyperjump/fsearch/internal/watcher"
	"github.com/hyperjump/fsearch/pkg/utils"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Serve the find API over HTTP",
	Args:  cobra.NoArgs,
	RunE:  runServer,
}

func init() {
	rootCmd.AddCommand(serverCmd)
}

func runServer(cmd *cobra.Command, _ []string) error {
	cfg, resolvedConfigPath, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	debugMode := cfg.Debug || debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
		zap.Strings("roots", cfg.Search.Roots),
	)

	runner := ripgrep.NewRunner(cfg.Search.Executable, ripgrep.WithLogger(logger))
	engine := search.NewEngine(runner, &cfg.Search, logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Watch.ConfigOrDefault() {
		if _, statErr := os.Stat(resolvedConfigPath); statErr == nil {
			w := watcher.NewConfigWatcher(resolvedConfigPath, reloadSearchConfig(resolvedConfigPath, engine, logger),
				watcher.WithLogger(logger))
			if err := w.Start(ctx); err != nil {
				logger.Warn("config watcher unavailable", zap.String("path", resolvedConfigPath), zap.Error(err))
			} else {
				defer w.Stop()
			}
		}
	}

	srv := server.NewServer(engine, &cfg.Server, logger)
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Stop(shutdownCtx)
}

// reloadSearchConfig returns the config watcher callback. A file that no longer parses
// leaves the running configuration in place.
func reloadSearchConfig(path string, engine *search.Engine, logger *zap.Logger) func() {
	return func() {
		cfg, err := config.Load(path)
		if err != nil {
			logger.Warn("config reload failed", zap.String("path", path), zap.Error(err))
			return
		}
		engine.SetConfig(&cfg.Search)
		logger.Info("config reloaded", zap.String("path", path), zap.Strings("roots", cfg.Search.Roots))
	}
}
