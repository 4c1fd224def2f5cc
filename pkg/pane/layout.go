package pane

import (
	"math"

	"github.com/entrhq/llmmixer/pkg/config"
)

// defaultColumnWidth is used for visible records persisted with no usable
// width.
const defaultColumnWidth = 1.0

// SplitterVisible reports whether the splitter after column index is shown:
// the column itself is visible and some column to its right, among the
// first slots columns, is visible too. Trailing empty gutters collapse.
func SplitterVisible(services []config.ServiceRecord, index, slots int) bool {
	n := min(len(services), slots)
	if index < 0 || index >= n || !services[index].Visible {
		return false
	}
	for j := index + 1; j < n; j++ {
		if services[j].Visible {
			return true
		}
	}
	return false
}

func columnWidth(rec config.ServiceRecord) float64 {
	if !rec.Visible {
		return 0
	}
	if rec.Width <= 0 || math.IsNaN(rec.Width) || math.IsInf(rec.Width, 0) {
		return defaultColumnWidth
	}
	return rec.Width
}
