package tui

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/entrhq/llmmixer/pkg/config"
	"github.com/entrhq/llmmixer/pkg/logging"
	"github.com/entrhq/llmmixer/pkg/pane"
)

const (
	// resizeStep is how much one key press changes a column's proportion.
	resizeStep = 0.25
	// minColumnWidth keeps a visible column from being shrunk away.
	minColumnWidth = 0.25

	menuRow   = 0
	headerRow = 1
)

// model represents the state of the TUI application.
type model struct {
	ctx context.Context

	// Pane integration
	rec      *pane.Reconciler
	browsers []pane.Browser
	headers  []*headerLabel
	menu     []*menuItem
	grid     *columnGrid
	dialogs  *dialogQueue
	logger   *logging.Logger

	// Bubble Tea components
	keys keyMap
	help help.Model

	// UI state
	selected  int
	moving    bool
	preparing bool
	status    string

	// Window dimensions
	width  int
	height int
	ready  bool

	copyText func(string) error
}

// prepareDoneMsg reports that one slot's browser finished preparing.
type prepareDoneMsg struct {
	slot int
	err  error
}

func newModel(ctx context.Context, opts Options) (*model, error) {
	if len(opts.Browsers) != config.SlotCount {
		return nil, fmt.Errorf("expected %d browsers, got %d", config.SlotCount, len(opts.Browsers))
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	m := &model{
		ctx:      ctx,
		browsers: opts.Browsers,
		grid:     newColumnGrid(len(opts.Browsers)),
		dialogs:  &dialogQueue{},
		logger:   logger,
		keys:     defaultKeyMap(),
		help:     help.New(),
		copyText: opts.Clipboard,
	}
	if m.copyText == nil {
		m.copyText = clipboard.WriteAll
	}

	slots := make([]pane.Slot, len(opts.Browsers))
	for i, b := range opts.Browsers {
		h := &headerLabel{}
		m.headers = append(m.headers, h)
		slots[i] = pane.Slot{Header: h, Browser: b}
	}

	// The menu keeps the default service order regardless of the layout.
	entries := make(map[string]pane.MenuEntry)
	for _, name := range config.DefaultNames() {
		item := &menuItem{name: name}
		m.menu = append(m.menu, item)
		entries[name] = item
	}

	rec, err := pane.New(opts.Config, pane.Deps{
		Slots:    slots,
		Menu:     entries,
		Grid:     m.grid,
		Notifier: m.dialogs,
		Store:    opts.Store,
		Logger:   logger,
	})
	if err != nil {
		return nil, err
	}
	m.rec = rec
	m.rec.ApplyConfiguration()
	m.selected = m.nearestVisible(0)
	return m, nil
}

// visible reports whether slot currently shows a visible record.
func (m *model) visible(slot int) bool {
	rec, ok := m.rec.Service(slot)
	return ok && rec.Visible
}

// step returns the next visible slot from the selection in direction dir,
// or the selection itself when there is none.
func (m *model) step(dir int) int {
	n := m.rec.Slots()
	for i := m.selected + dir; i >= 0 && i < n; i += dir {
		if m.visible(i) {
			return i
		}
	}
	return m.selected
}

// nearestVisible returns the visible slot closest to from, preferring the
// right, or from when nothing is visible.
func (m *model) nearestVisible(from int) int {
	n := m.rec.Slots()
	for d := 0; d < n; d++ {
		if r := from + d; r < n && m.visible(r) {
			return r
		}
		if l := from - d; l >= 0 && m.visible(l) {
			return l
		}
	}
	return min(max(from, 0), n-1)
}
