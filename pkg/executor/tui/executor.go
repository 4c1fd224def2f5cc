// Package tui provides the terminal shell that drives the LLMMixer pane
// grid.
//
// The TUI codebase is split into multiple files:
// - executor.go: Executor implementation and program lifecycle
// - model.go: Core model structure and state
// - update.go: Bubble Tea Update function and message handling
// - view.go: Bubble Tea View function and rendering
// - grid.go: Header, menu and column grid collaborators
// - overlay.go: Modal error and confirmation dialogs
// - keys.go: Key bindings and help
// - styles.go: Color schemes and styling
package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/entrhq/llmmixer/pkg/config"
	"github.com/entrhq/llmmixer/pkg/logging"
	"github.com/entrhq/llmmixer/pkg/pane"
)

// Options configures an Executor.
type Options struct {
	// Config is the loaded configuration.
	Config config.Configuration

	// Store persists the configuration after every change.
	Store pane.Persister

	// Browsers holds one unprepared browser per slot.
	Browsers []pane.Browser

	Logger *logging.Logger

	// Clipboard writes text to the system clipboard. Nil uses the
	// platform clipboard.
	Clipboard func(string) error
}

// Executor runs the pane grid in the terminal.
type Executor struct {
	opts    Options
	program *tea.Program
}

// NewExecutor creates a new TUI executor.
func NewExecutor(opts Options) *Executor {
	return &Executor{opts: opts}
}

// Run starts the TUI and blocks until the user exits or ctx is done. The
// configuration is persisted on the way out.
func (e *Executor) Run(ctx context.Context) error {
	m, err := newModel(ctx, e.opts)
	if err != nil {
		return fmt.Errorf("failed to set up panes: %w", err)
	}
	m.logger.Infof("TUI executor starting")

	e.program = tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	_, runErr := e.program.Run()

	if err := m.rec.Close(); err != nil {
		m.logger.Errorf("failed to persist layout on exit: %v", err)
	}

	if runErr != nil && !(errors.Is(runErr, tea.ErrProgramKilled) && ctx.Err() != nil) {
		return fmt.Errorf("failed to run TUI program: %w", runErr)
	}
	return nil
}
