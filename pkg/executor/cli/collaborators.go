package cli

import (
	"fmt"
	"io"
)

// label is a pane header with no on-screen presence; list reads names from
// the configuration.
type label struct {
	text string
}

func (l *label) Text() string        { return l.text }
func (l *label) SetText(text string) { l.text = text }

type entry struct{}

func (entry) SetChecked(bool) {}

// grid records proportional widths. A width of 0 is a collapsed column.
type grid struct {
	widths    []float64
	splitters []bool
}

func newGrid(n int) *grid {
	return &grid{
		widths:    make([]float64, n),
		splitters: make([]bool, max(n-1, 0)),
	}
}

func (g *grid) SetColumnWidth(slot int, width float64) {
	if slot < 0 || slot >= len(g.widths) {
		return
	}
	g.widths[slot] = max(width, 0)
}

func (g *grid) ColumnWidth(slot int) (float64, bool) {
	if slot < 0 || slot >= len(g.widths) || g.widths[slot] <= 0 {
		return 0, false
	}
	return g.widths[slot], true
}

func (g *grid) SetSplitterVisible(index int, visible bool) {
	if index >= 0 && index < len(g.splitters) {
		g.splitters[index] = visible
	}
}

// printNotifier writes notifications inline.
type printNotifier struct {
	w io.Writer
}

func (n printNotifier) NotifyError(title, message string) {
	fmt.Fprintf(n.w, "❌ %s: %s\n", title, message)
}
