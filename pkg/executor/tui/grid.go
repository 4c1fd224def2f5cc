package tui

import (
	"math"

	"github.com/entrhq/llmmixer/pkg/pane"
)

// headerLabel is a pane header. The view reads its text each frame.
type headerLabel struct {
	text string
}

func (l *headerLabel) Text() string        { return l.text }
func (l *headerLabel) SetText(text string) { l.text = text }

// menuItem is one checkable service entry of the menu bar.
type menuItem struct {
	name    string
	checked bool
}

func (i *menuItem) SetChecked(checked bool) { i.checked = checked }

// columnGrid holds proportional column widths and splitter visibility for
// the pane row.
type columnGrid struct {
	widths    []float64
	splitters []bool
}

var (
	_ pane.Label     = (*headerLabel)(nil)
	_ pane.MenuEntry = (*menuItem)(nil)
	_ pane.Grid      = (*columnGrid)(nil)
)

func newColumnGrid(columns int) *columnGrid {
	n := max(columns-1, 0)
	return &columnGrid{
		widths:    make([]float64, columns),
		splitters: make([]bool, n),
	}
}

func (g *columnGrid) SetColumnWidth(slot int, width float64) {
	if slot < 0 || slot >= len(g.widths) {
		return
	}
	g.widths[slot] = math.Max(width, 0)
}

func (g *columnGrid) ColumnWidth(slot int) (float64, bool) {
	if slot < 0 || slot >= len(g.widths) || g.widths[slot] <= 0 {
		return 0, false
	}
	return g.widths[slot], true
}

func (g *columnGrid) SetSplitterVisible(index int, visible bool) {
	if index < 0 || index >= len(g.splitters) {
		return
	}
	g.splitters[index] = visible
}

// resize changes a visible column's width by delta, never below minWidth.
// It reports whether the width changed.
func (g *columnGrid) resize(slot int, delta, minWidth float64) bool {
	w, ok := g.ColumnWidth(slot)
	if !ok {
		return false
	}
	next := math.Max(w+delta, minWidth)
	if next == w {
		return false
	}
	g.widths[slot] = next
	return true
}

// span is a horizontal run of terminal cells.
type span struct {
	x, w int
}

func (s span) contains(x int) bool {
	return s.w > 0 && x >= s.x && x < s.x+s.w
}

// layout distributes total cells across the columns in proportion to their
// widths. Each visible splitter takes one cell after its column; collapsed
// columns take none. Rounding is cumulative so the spans always fill total
// exactly when anything is visible.
func (g *columnGrid) layout(total int) []span {
	spans := make([]span, len(g.widths))

	gutters := 0
	for _, v := range g.splitters {
		if v {
			gutters++
		}
	}
	sum := 0.0
	for _, w := range g.widths {
		if w > 0 {
			sum += w
		}
	}
	avail := total - gutters
	if sum <= 0 || avail <= 0 {
		return spans
	}

	x, cum, prev := 0, 0.0, 0
	for i, w := range g.widths {
		cells := 0
		if w > 0 {
			cum += w
			edge := int(math.Round(cum / sum * float64(avail)))
			cells = edge - prev
			prev = edge
		}
		spans[i] = span{x: x, w: cells}
		x += cells
		if i < len(g.splitters) && g.splitters[i] {
			x++
		}
	}
	return spans
}

// columnAt returns the column under cell x, or -1.
func columnAt(spans []span, x int) int {
	for i, s := range spans {
		if s.contains(x) {
			return i
		}
	}
	return -1
}
