package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColumnGrid_Layout(t *testing.T) {
	tests := []struct {
		name      string
		widths    []float64
		splitters []bool
		total     int
		want      []span
	}{
		{
			name:      "equal columns",
			widths:    []float64{1, 1, 1},
			splitters: []bool{true, true},
			total:     32,
			want:      []span{{0, 10}, {11, 10}, {22, 10}},
		},
		{
			name:      "hidden middle column takes no cells",
			widths:    []float64{1, 0, 1},
			splitters: []bool{true, false},
			total:     21,
			want:      []span{{0, 10}, {11, 0}, {11, 10}},
		},
		{
			name:      "proportional widths",
			widths:    []float64{2, 1, 1},
			splitters: []bool{false, false},
			total:     40,
			want:      []span{{0, 20}, {20, 10}, {30, 10}},
		},
		{
			name:      "rounding fills the row",
			widths:    []float64{1, 1, 1},
			splitters: []bool{false, false},
			total:     10,
			want:      []span{{0, 3}, {3, 4}, {7, 3}},
		},
		{
			name:      "nothing visible",
			widths:    []float64{0, 0},
			splitters: []bool{false},
			total:     10,
			want:      []span{{0, 0}, {0, 0}},
		},
		{
			name:      "no room",
			widths:    []float64{1, 1},
			splitters: []bool{true},
			total:     1,
			want:      []span{{0, 0}, {0, 0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &columnGrid{widths: tt.widths, splitters: tt.splitters}
			assert.Equal(t, tt.want, g.layout(tt.total))
		})
	}
}

func TestColumnGrid_Collaborator(t *testing.T) {
	g := newColumnGrid(3)

	g.SetColumnWidth(0, 1.5)
	g.SetColumnWidth(1, -2)
	g.SetColumnWidth(7, 1)
	g.SetSplitterVisible(0, true)
	g.SetSplitterVisible(5, true)

	w, ok := g.ColumnWidth(0)
	assert.True(t, ok)
	assert.Equal(t, 1.5, w)
	_, ok = g.ColumnWidth(1)
	assert.False(t, ok, "negative width collapses")
	_, ok = g.ColumnWidth(9)
	assert.False(t, ok)
	assert.Equal(t, []bool{true, false}, g.splitters)
}

func TestColumnGrid_Resize(t *testing.T) {
	g := newColumnGrid(2)
	g.SetColumnWidth(0, 0.5)

	assert.True(t, g.resize(0, -0.25, 0.25))
	assert.Equal(t, 0.25, g.widths[0])
	assert.False(t, g.resize(0, -0.25, 0.25), "already at the minimum")
	assert.False(t, g.resize(1, 0.25, 0.25), "collapsed columns do not grow")
}

func TestColumnAt(t *testing.T) {
	spans := []span{{0, 10}, {11, 0}, {11, 10}}
	assert.Equal(t, 0, columnAt(spans, 0))
	assert.Equal(t, -1, columnAt(spans, 10), "splitter cell")
	assert.Equal(t, 2, columnAt(spans, 11))
	assert.Equal(t, -1, columnAt(spans, 21))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "chat.qwen.ai", truncate("chat.qwen.ai", 20))
	assert.Equal(t, "chat…", truncate("chat.qwen.ai", 5))
	assert.Equal(t, "…", truncate("chat.qwen.ai", 1))
	assert.Equal(t, "", truncate("chat.qwen.ai", 0))
}

func TestDialogQueue(t *testing.T) {
	q := &dialogQueue{}
	assert.False(t, q.isActive())

	q.NotifyError("a", "first")
	confirmed := false
	q.confirm("b", "second", func() { confirmed = true })
	assert.Equal(t, 2, q.len())

	d, _ := q.front()
	assert.Equal(t, "first", d.message)
	q.pop()
	d, _ = q.front()
	assert.Equal(t, dialogConfirm, d.kind)
	d.onConfirm()
	assert.True(t, confirmed)
	q.pop()
	q.pop()
	assert.False(t, q.isActive())
}
