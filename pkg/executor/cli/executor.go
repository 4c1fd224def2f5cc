// Package cli provides a line-oriented executor for the LLMMixer pane grid.
//
// It drives the same reconciler as the TUI but reads one command per line,
// which suits headless browsers, scripts and terminals without mouse
// support:
//
//	> list
//	> hide Grok
//	> move 1 3
//	> width 2 1.5
//	> reset
//	> quit
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/entrhq/llmmixer/pkg/config"
	"github.com/entrhq/llmmixer/pkg/logging"
	"github.com/entrhq/llmmixer/pkg/pane"
)

// Executor reads pane commands from an input stream and applies them to the
// grid.
type Executor struct {
	cfg      config.Configuration
	store    pane.Persister
	browsers []pane.Browser

	reader *bufio.Reader
	writer io.Writer
	logger *logging.Logger

	rec  *pane.Reconciler
	grid *grid
}

// ExecutorOption is a function that configures an Executor.
type ExecutorOption func(*Executor)

// WithReader sets the command source (default is os.Stdin).
func WithReader(r io.Reader) ExecutorOption {
	return func(e *Executor) {
		e.reader = bufio.NewReader(r)
	}
}

// WithWriter sets a custom output writer (default is os.Stdout).
func WithWriter(w io.Writer) ExecutorOption {
	return func(e *Executor) {
		e.writer = w
	}
}

// WithLogger sets the logger handed to the reconciler.
func WithLogger(l *logging.Logger) ExecutorOption {
	return func(e *Executor) {
		e.logger = l
	}
}

// NewExecutor creates a new line executor over cfg. browsers must hold one
// unprepared browser per slot.
func NewExecutor(cfg config.Configuration, store pane.Persister, browsers []pane.Browser, opts ...ExecutorOption) *Executor {
	e := &Executor{
		cfg:      cfg,
		store:    store,
		browsers: browsers,
		reader:   bufio.NewReader(os.Stdin),
		writer:   os.Stdout,
		logger:   logging.NewNop(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Run prepares the browsers, then reads commands until quit, end of input or
// ctx is done. The configuration is persisted on the way out.
func (e *Executor) Run(ctx context.Context) error {
	if err := e.setup(); err != nil {
		return fmt.Errorf("failed to set up panes: %w", err)
	}

	fmt.Fprintln(e.writer, "LLMMixer")
	fmt.Fprintln(e.writer, "Type 'help' for commands. Type 'exit' or 'quit' to end the session.")
	fmt.Fprintln(e.writer)

	if failed := e.rec.InitializeBrowsers(ctx); failed > 0 {
		fmt.Fprintf(e.writer, "%d of %d panes failed to start\n", failed, e.rec.Slots())
	}

	for {
		select {
		case <-ctx.Done():
			e.shutdown()
			return ctx.Err()
		default:
		}

		fmt.Fprint(e.writer, "> ")
		input, err := e.reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && input != "") {
			if errors.Is(err, io.EOF) {
				e.shutdown()
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		fields := strings.Fields(input)
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "exit" || fields[0] == "quit" {
			e.shutdown()
			return nil
		}

		if err := e.dispatch(fields[0], fields[1:]); err != nil {
			fmt.Fprintf(e.writer, "❌ %v\n", err)
		}
	}
}

func (e *Executor) setup() error {
	if len(e.browsers) != config.SlotCount {
		return fmt.Errorf("expected %d browsers, got %d", config.SlotCount, len(e.browsers))
	}

	e.grid = newGrid(len(e.browsers))
	slots := make([]pane.Slot, len(e.browsers))
	for i, b := range e.browsers {
		slots[i] = pane.Slot{Header: &label{}, Browser: b}
	}

	// Visibility is read back from the configuration, so the menu entries
	// only need to exist.
	menu := make(map[string]pane.MenuEntry, len(e.cfg.Services))
	for _, s := range e.cfg.Services {
		menu[s.Name] = entry{}
	}

	rec, err := pane.New(e.cfg, pane.Deps{
		Slots:    slots,
		Menu:     menu,
		Grid:     e.grid,
		Notifier: printNotifier{w: e.writer},
		Store:    e.store,
		Logger:   e.logger,
	})
	if err != nil {
		return err
	}
	rec.ApplyConfiguration()
	e.rec = rec
	return nil
}

func (e *Executor) dispatch(cmd string, args []string) error {
	switch cmd {
	case "help", "?":
		e.printHelp()
	case "list", "ls":
		e.printList()
	case "show":
		return e.setVisible(args, true)
	case "hide":
		return e.setVisible(args, false)
	case "toggle":
		name, err := e.resolve(args)
		if err != nil {
			return err
		}
		visible, _ := e.rec.ToggleVisibility(name)
		fmt.Fprintf(e.writer, "%s %s\n", name, visibleWord(visible))
	case "move":
		return e.move(args)
	case "width":
		return e.width(args)
	case "refresh":
		return e.refresh(args)
	case "newchat":
		e.rec.NewChatAll()
		fmt.Fprintln(e.writer, "Started new chats")
	case "reset":
		if e.rec.ResetLayout(pane.ConfirmFunc(e.confirm)) {
			fmt.Fprintln(e.writer, "Layout reset")
		}
	case "save":
		if err := e.rec.Save(); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		fmt.Fprintln(e.writer, "Saved")
	default:
		return fmt.Errorf("unknown command %q (type 'help')", cmd)
	}
	return nil
}

func (e *Executor) setVisible(args []string, want bool) error {
	name, err := e.resolve(args)
	if err != nil {
		return err
	}
	rec, _ := e.rec.Service(e.rec.SlotOf(name))
	if rec.Visible == want {
		fmt.Fprintf(e.writer, "%s is already %s\n", name, visibleWord(want))
		return nil
	}
	visible, _ := e.rec.ToggleVisibility(name)
	fmt.Fprintf(e.writer, "%s %s\n", name, visibleWord(visible))
	return nil
}

func (e *Executor) move(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: move <from> <to>")
	}
	from, err := e.slotArg(args[0])
	if err != nil {
		return err
	}
	to, err := e.slotArg(args[1])
	if err != nil {
		return err
	}
	if from == to {
		return nil
	}
	if err := e.rec.Reorder(from, to); err != nil {
		return err
	}
	a, _ := e.rec.Service(from)
	b, _ := e.rec.Service(to)
	fmt.Fprintf(e.writer, "Swapped %s and %s\n", b.Name, a.Name)
	return nil
}

func (e *Executor) width(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: width <pane> <proportion>")
	}
	slot, err := e.slotArg(args[0])
	if err != nil {
		return err
	}
	w, err := strconv.ParseFloat(args[1], 64)
	if err != nil || w <= 0 || math.IsNaN(w) || math.IsInf(w, 0) {
		return fmt.Errorf("invalid width %q: must be a positive number", args[1])
	}
	rec, _ := e.rec.Service(slot)
	if !rec.Visible {
		return fmt.Errorf("%s is hidden", rec.Name)
	}
	e.grid.SetColumnWidth(slot, w)
	if err := e.rec.Save(); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Fprintf(e.writer, "%s width %s\n", rec.Name, formatWidth(w))
	return nil
}

func (e *Executor) refresh(args []string) error {
	if len(args) == 0 {
		e.rec.RefreshAll()
		fmt.Fprintln(e.writer, "Refreshed all panes")
		return nil
	}
	slot, err := e.slotArg(args[0])
	if err != nil {
		return err
	}
	return e.rec.RefreshOne(slot)
}

// resolve maps a pane number or service name to a service name.
func (e *Executor) resolve(args []string) (string, error) {
	if len(args) != 1 {
		return "", errors.New("expected one pane number or service name")
	}
	if n, err := strconv.Atoi(args[0]); err == nil {
		rec, ok := e.rec.Service(n - 1)
		if !ok {
			return "", fmt.Errorf("pane %d: %w", n, pane.ErrSlotOutOfRange)
		}
		return rec.Name, nil
	}
	for i := 0; i < e.rec.Slots(); i++ {
		if rec, ok := e.rec.Service(i); ok && strings.EqualFold(rec.Name, args[0]) {
			return rec.Name, nil
		}
	}
	return "", fmt.Errorf("unknown service %q", args[0])
}

// slotArg parses a 1-based pane number.
func (e *Executor) slotArg(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid pane number %q", arg)
	}
	if _, ok := e.rec.Service(n - 1); !ok {
		return 0, fmt.Errorf("pane %d: %w", n, pane.ErrSlotOutOfRange)
	}
	return n - 1, nil
}

func (e *Executor) confirm(title, message string) bool {
	fmt.Fprintf(e.writer, "%s: %s [y/N] ", title, message)
	answer, _ := e.reader.ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		fmt.Fprintln(e.writer, "Aborted.")
		return false
	}
}

func (e *Executor) printList() {
	for i := 0; i < e.rec.Slots(); i++ {
		rec, ok := e.rec.Service(i)
		if !ok {
			continue
		}
		width := "-"
		if w, ok := e.grid.ColumnWidth(i); ok {
			width = formatWidth(w)
		}
		source := e.browsers[i].Source()
		if source == "" {
			source = pane.BlankAddress
		}
		fmt.Fprintf(e.writer, "%d  %-9s %-7s %-5s %-8s %s\n",
			i+1, rec.Name, visibleWord(rec.Visible), width, e.rec.State(i), source)
	}
}

func (e *Executor) printHelp() {
	fmt.Fprint(e.writer, `Commands:
  list                     show every pane
  show|hide|toggle <pane>  change visibility (pane number or service name)
  move <from> <to>         swap two panes
  width <pane> <w>         set a pane's proportional width
  refresh [pane]           reload one or all panes
  newchat                  send every pane back to its home page
  reset                    restore the default layout
  save                     persist the layout now
  quit                     save and exit
`)
}

func (e *Executor) shutdown() {
	fmt.Fprintln(e.writer, "\nShutting down...")
	if err := e.rec.Close(); err != nil {
		fmt.Fprintf(e.writer, "Warning: failed to persist layout: %v\n", err)
	}
}

func visibleWord(visible bool) string {
	if visible {
		return "shown"
	}
	return "hidden"
}

func formatWidth(w float64) string {
	return strconv.FormatFloat(w, 'f', 2, 64)
}
