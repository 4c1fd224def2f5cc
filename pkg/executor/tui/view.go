package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/entrhq/llmmixer/pkg/pane"
)

// View renders the entire TUI interface.
func (m *model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if d, ok := m.dialogs.front(); ok {
		return renderDialog(d, m.dialogs.len(), m.width, m.height)
	}

	menu := m.buildMenuBar()
	status := m.buildStatusBar()
	helpView := m.help.View(m.keys)

	gridHeight := m.height - lipgloss.Height(menu) - lipgloss.Height(status) - lipgloss.Height(helpView)
	gridHeight = max(gridHeight, 1)

	return lipgloss.JoinVertical(lipgloss.Left, menu, m.buildGrid(gridHeight), status, helpView)
}

// menuLabel renders the menu text of entry i without styling.
func (m *model) menuLabel(i int) string {
	check := " "
	if m.menu[i].checked {
		check = "x"
	}
	return fmt.Sprintf("[%s] %d %s", check, i+1, m.menu[i].name)
}

// menuSpans locates each menu entry on the menu row.
func (m *model) menuSpans() []span {
	spans := make([]span, len(m.menu))
	x := 1
	for i := range m.menu {
		w := lipgloss.Width(m.menuLabel(i))
		spans[i] = span{x: x, w: w}
		x += w + 2
	}
	return spans
}

func (m *model) buildMenuBar() string {
	var b strings.Builder
	b.WriteString(" ")
	for i, item := range m.menu {
		if i > 0 {
			b.WriteString("  ")
		}
		style := menuOffStyle
		if item.checked {
			style = menuOnStyle
		}
		b.WriteString(style.Render(m.menuLabel(i)))
	}
	return lipgloss.NewStyle().MaxWidth(m.width).Render(b.String())
}

func (m *model) buildGrid(height int) string {
	spans := m.grid.layout(m.width)

	var parts []string
	for i, s := range spans {
		if s.w > 0 {
			parts = append(parts, m.buildColumn(i, s.w, height))
		}
		if i < len(m.grid.splitters) && m.grid.splitters[i] {
			parts = append(parts, splitterStyle.Render(strings.TrimSuffix(strings.Repeat("│\n", height), "\n")))
		}
	}
	if len(parts) == 0 {
		return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center,
			menuOffStyle.Render("All panes are hidden. Press 1-8 to show a service."))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *model) buildColumn(slot, width, height int) string {
	rec, _ := m.rec.Service(slot)
	title := m.headers[slot].Text()

	style := headerStyle
	source, dragging := m.rec.Dragging()
	switch {
	case dragging && slot == source:
		style = dragSourceStyle
		title = "⇄ " + title
	case m.moving && slot == m.selected:
		style = dropTargetStyle
		title = "→ " + title
	case slot == m.selected:
		style = selectedHeaderStyle
	}

	lines := []string{
		style.Width(width).Render(truncate(title, width)),
		domainStyle.Render(truncate(rec.Domain(), width)),
		"",
		m.stateLine(slot, width),
		sourceStyle.Render(truncate(m.browsers[slot].Source(), width)),
	}

	return lipgloss.NewStyle().
		Width(width).
		MaxWidth(width).
		Height(height).
		MaxHeight(height).
		Render(strings.Join(lines, "\n"))
}

func (m *model) stateLine(slot, width int) string {
	switch m.rec.State(slot) {
	case pane.StateReady:
		return readyStyle.Render(truncate("● ready", width))
	case pane.StateFailed:
		return failedStyle.Render(truncate("✗ failed", width))
	default:
		return pendingStyle.Render(truncate("… starting", width))
	}
}

func (m *model) buildStatusBar() string {
	text := m.status
	if text == "" {
		if source, dragging := m.rec.Dragging(); dragging && !m.moving {
			rec, _ := m.rec.Service(source)
			text = fmt.Sprintf("Dragging %s: release over another pane", rec.Name)
		} else if m.preparing {
			text = "Starting browsers..."
		}
	}
	return statusBarStyle.Width(m.width).MaxWidth(m.width).Render(text)
}
