package main

import (
	"context"
	"fmt"
	"io"

	"github.com/entrhq/llmmixer/pkg/browser"
	"github.com/entrhq/llmmixer/pkg/config"
	"github.com/entrhq/llmmixer/pkg/executor/cli"
	"github.com/entrhq/llmmixer/pkg/executor/tui"
	"github.com/entrhq/llmmixer/pkg/logging"
	"github.com/entrhq/llmmixer/pkg/navguard"
	"github.com/spf13/cobra"
)

// runShell loads the layout, starts the browser engine and runs the TUI, or
// the line executor with --plain, until the user quits.
func runShell(cmd *cobra.Command, opts *rootOptions) error {
	if !opts.plain {
		logging.SetFallbackOutput(io.Discard)
	}
	logger, err := logging.NewLogger("llmmixer")
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
	}
	defer logger.Close()
	logger.Infof("LLMMixer v%s starting, session %s", version, logger.SessionID())

	store, err := opts.openStore(logger.Named("config"))
	if err != nil {
		return fmt.Errorf("failed to open settings: %w", err)
	}
	cfg := store.Load()
	logger.Infof("settings: %s (%d services)", store.Path(), len(cfg.Services))

	appDir, err := config.AppDir()
	if err != nil {
		return err
	}
	browserOpts := config.ResolveBrowserOptions(opts.browserFlags(cmd), cfg.Browser, appDir)

	guard, err := navguard.New(navguard.DefaultHeaders(browserOpts.AcceptLanguage), navguard.DefaultRules())
	if err != nil {
		return fmt.Errorf("failed to build navigation guard: %w", err)
	}

	mgr, err := browser.NewManager(browserOpts, guard, logger.Named("browser"))
	if err != nil {
		return err
	}
	defer func() {
		if err := mgr.Shutdown(); err != nil {
			logger.Warnf("browser shutdown: %v", err)
		}
	}()

	var executor interface {
		Run(ctx context.Context) error
	}
	if opts.plain {
		executor = cli.NewExecutor(cfg, store, mgr.Browsers(config.SlotCount),
			cli.WithReader(cmd.InOrStdin()),
			cli.WithWriter(cmd.OutOrStdout()),
			cli.WithLogger(logger.Named("pane")),
		)
	} else {
		executor = tui.NewExecutor(tui.Options{
			Config:   cfg,
			Store:    store,
			Browsers: mgr.Browsers(config.SlotCount),
			Logger:   logger.Named("pane"),
		})
	}
	return executor.Run(cmd.Context())
}
