// Package pane keeps the live pane grid, the browser instances behind it and
// the persisted service configuration consistent with each other.
//
// A Reconciler owns the configuration and a fixed array of slots. Each slot
// is one grid position bound for the process lifetime to a header label and
// a browser instance; reordering moves service records between slots, never
// the slots themselves. User actions (toggle, reorder, resize, reset) are
// folded back into the configuration and persisted.
//
// A Reconciler is not safe for concurrent use. Every method except
// PrepareSlot must be called from the UI goroutine.
package pane

import (
	"context"
	"errors"

	"github.com/entrhq/llmmixer/pkg/config"
)

var (
	// ErrSlotOutOfRange is returned for slot indexes outside the grid.
	ErrSlotOutOfRange = errors.New("slot index out of range")

	// ErrBrowserNotReady is returned when a slot's browser has not finished
	// preparing.
	ErrBrowserNotReady = errors.New("browser not ready")
)

// BlankAddress is what an unnavigated browser reports as its source.
const BlankAddress = "about:blank"

// Browser is one embedded browser instance.
type Browser interface {
	// Prepare readies the instance. It may block; it must not be called
	// again after it succeeds.
	Prepare(ctx context.Context) error

	// Ready reports whether Prepare has succeeded.
	Ready() bool

	// Navigate starts loading url and returns without waiting for the page.
	Navigate(url string) error

	// Reload reloads the current page in place.
	Reload() error

	// Source returns the currently loaded address, "" or BlankAddress when
	// nothing has been loaded.
	Source() string
}

// Label is a pane header text element.
type Label interface {
	Text() string
	SetText(text string)
}

// MenuEntry is a checkable visibility toggle bound to one service name.
type MenuEntry interface {
	SetChecked(checked bool)
}

// Grid is the row of proportional columns the panes live in. Column i holds
// slot i; splitter i sits between columns i and i+1.
type Grid interface {
	// SetColumnWidth sets a proportional width; 0 collapses the column.
	SetColumnWidth(slot int, width float64)

	// ColumnWidth reads back the current proportional width. ok is false
	// when the column is collapsed.
	ColumnWidth(slot int) (width float64, ok bool)

	SetSplitterVisible(index int, visible bool)
}

// Notifier shows a blocking error notification to the user.
type Notifier interface {
	NotifyError(title, message string)
}

// Confirmer asks the user to confirm a destructive action.
type Confirmer interface {
	Confirm(title, message string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(title, message string) bool

// Confirm calls f.
func (f ConfirmFunc) Confirm(title, message string) bool { return f(title, message) }

// Confirmed is a Confirmer for callers that have already asked the user.
var Confirmed Confirmer = ConfirmFunc(func(string, string) bool { return true })

// Persister stores the configuration.
type Persister interface {
	Save(cfg config.Configuration) error
}

// Slot is one fixed grid position and the elements bound to it.
type Slot struct {
	Header  Label
	Browser Browser
}

// SlotState tracks a slot's browser preparation.
type SlotState int

const (
	StatePending SlotState = iota
	StateReady
	StateFailed
)

func (s SlotState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}
