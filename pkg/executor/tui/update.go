package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/entrhq/llmmixer/pkg/pane"
)

// Init starts preparing the browsers, one slot after another.
func (m *model) Init() tea.Cmd {
	m.preparing = true
	return tea.Batch(tea.SetWindowTitle("LLMMixer"), m.prepareCmd(0))
}

// prepareCmd prepares slot off the UI goroutine. The result is folded back
// into the reconciler by Update.
func (m *model) prepareCmd(slot int) tea.Cmd {
	return func() tea.Msg {
		return prepareDoneMsg{slot: slot, err: m.rec.PrepareSlot(m.ctx, slot)}
	}
}

// Update handles all state updates for the TUI model.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		return m, nil

	case prepareDoneMsg:
		return m.handlePrepareDone(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		if m.dialogs.isActive() {
			return m.handleDialogKey(msg)
		}
		return m.handleKeyPress(msg)
	}
	return m, nil
}

func (m *model) handlePrepareDone(msg prepareDoneMsg) (tea.Model, tea.Cmd) {
	m.rec.AfterPrepare(msg.slot, msg.err)
	next := msg.slot + 1
	if next < m.rec.Slots() {
		return m, m.prepareCmd(next)
	}
	m.preparing = false
	m.logger.Infof("browser preparation finished")
	return m, nil
}

func (m *model) handleDialogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d, _ := m.dialogs.front()
	switch d.kind {
	case dialogConfirm:
		switch msg.String() {
		case "y", "Y", "enter":
			m.dialogs.pop()
			if d.onConfirm != nil {
				d.onConfirm()
			}
		case "n", "N", "esc":
			m.dialogs.pop()
		case "ctrl+c":
			return m, tea.Quit
		}
	default:
		switch msg.String() {
		case "enter", "esc", " ":
			m.dialogs.pop()
		case "ctrl+c":
			return m, tea.Quit
		}
	}
	return m, nil
}

//nolint:gocyclo
func (m *model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.rec.CancelDrag()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Left):
		m.selected = m.step(-1)

	case key.Matches(msg, m.keys.Right):
		m.selected = m.step(1)

	case key.Matches(msg, m.keys.Cancel):
		if m.moving {
			m.rec.CancelDrag()
			m.moving = false
			m.status = "Move cancelled"
		}

	case key.Matches(msg, m.keys.Drop):
		if m.moving {
			m.moving = false
			m.drop(m.selected)
		}

	case key.Matches(msg, m.keys.Move):
		if m.rec.BeginDrag(m.selected) {
			m.moving = true
			m.status = "Moving pane: choose a target with ←/→ and press enter"
		}

	case key.Matches(msg, m.keys.Toggle):
		if rec, ok := m.rec.Service(m.selected); ok {
			m.toggle(rec.Name)
		}

	case key.Matches(msg, m.keys.Menu):
		i := int(msg.String()[0] - '1')
		if i >= 0 && i < len(m.menu) {
			m.toggle(m.menu[i].name)
		}

	case key.Matches(msg, m.keys.Shrink):
		m.resize(-resizeStep)

	case key.Matches(msg, m.keys.Grow):
		m.resize(resizeStep)

	case key.Matches(msg, m.keys.Refresh):
		if err := m.rec.RefreshOne(m.selected); err != nil {
			m.status = fmt.Sprintf("Refresh failed: %v", err)
		}

	case key.Matches(msg, m.keys.RefreshAll):
		m.rec.RefreshAll()
		m.status = "Refreshing all panes"

	case key.Matches(msg, m.keys.NewChat):
		m.rec.NewChatAll()
		m.status = "Starting new chats"

	case key.Matches(msg, m.keys.Reset):
		m.dialogs.confirm(pane.ResetTitle, pane.ResetMessage, func() {
			if m.rec.ResetLayout(pane.Confirmed) {
				m.moving = false
				m.selected = m.nearestVisible(0)
				m.status = "Layout reset"
			}
		})

	case key.Matches(msg, m.keys.Copy):
		m.copyEndpoint()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

func (m *model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.dialogs.isActive() || !m.ready {
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if msg.Y == menuRow {
			if i := columnAt(m.menuSpans(), msg.X); i >= 0 {
				m.toggle(m.menu[i].name)
			}
			return m, nil
		}
		col := columnAt(m.grid.layout(m.width), msg.X)
		if col < 0 {
			return m, nil
		}
		m.selected = col
		if msg.Y == headerRow && m.rec.BeginDrag(col) {
			m.moving = false
		}

	case tea.MouseActionRelease:
		source, dragging := m.rec.Dragging()
		if !dragging || m.moving {
			return m, nil
		}
		col := -1
		if msg.Y >= headerRow {
			col = columnAt(m.grid.layout(m.width), msg.X)
		}
		if col < 0 || col == source {
			m.rec.CancelDrag()
			return m, nil
		}
		m.drop(col)
	}
	return m, nil
}

func (m *model) toggle(name string) {
	visible, found := m.rec.ToggleVisibility(name)
	if !found {
		return
	}
	if !visible && !m.visible(m.selected) {
		m.selected = m.nearestVisible(m.selected)
	}
}

func (m *model) drop(target int) {
	moved, err := m.rec.Drop(target)
	switch {
	case err != nil:
		m.status = fmt.Sprintf("Move failed: %v", err)
	case moved:
		m.selected = target
		rec, _ := m.rec.Service(target)
		m.status = fmt.Sprintf("Moved %s", rec.Name)
	}
}

func (m *model) resize(delta float64) {
	if !m.grid.resize(m.selected, delta, minColumnWidth) {
		return
	}
	if err := m.rec.Save(); err != nil {
		m.status = fmt.Sprintf("Could not save layout: %v", err)
	}
}

func (m *model) copyEndpoint() {
	rec, ok := m.rec.Service(m.selected)
	if !ok || !rec.HasEndpoint() {
		return
	}
	if err := m.copyText(rec.Endpoint); err != nil {
		m.logger.Warnf("clipboard write failed: %v", err)
		m.status = fmt.Sprintf("Copy failed: %v", err)
		return
	}
	m.status = "Copied " + rec.Endpoint
}
