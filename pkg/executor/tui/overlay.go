package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type dialogKind int

const (
	dialogError dialogKind = iota
	dialogConfirm
)

// dialog is one modal message. Confirm dialogs run onConfirm when accepted.
type dialog struct {
	kind      dialogKind
	title     string
	message   string
	onConfirm func()
}

// dialogQueue shows modal dialogs one at a time, oldest first. It is the
// reconciler's Notifier, so browser failures stack up rather than replace
// each other.
type dialogQueue struct {
	items []dialog
}

func (q *dialogQueue) NotifyError(title, message string) {
	q.items = append(q.items, dialog{kind: dialogError, title: title, message: message})
}

func (q *dialogQueue) confirm(title, message string, onConfirm func()) {
	q.items = append(q.items, dialog{kind: dialogConfirm, title: title, message: message, onConfirm: onConfirm})
}

func (q *dialogQueue) isActive() bool {
	return len(q.items) > 0
}

func (q *dialogQueue) front() (dialog, bool) {
	if len(q.items) == 0 {
		return dialog{}, false
	}
	return q.items[0], true
}

func (q *dialogQueue) pop() {
	if len(q.items) > 0 {
		q.items = q.items[1:]
	}
}

func (q *dialogQueue) len() int {
	return len(q.items)
}

// renderDialog draws d centered on a clean background.
func renderDialog(d dialog, queued, width, height int) string {
	var content strings.Builder
	content.WriteString(dialogTitleStyle.Render(d.title))
	content.WriteString("\n\n")
	content.WriteString(d.message)
	content.WriteString("\n\n")

	borderColor := salmonPink
	switch d.kind {
	case dialogConfirm:
		content.WriteString(dialogHelpStyle.Render("y confirm • n cancel"))
	default:
		borderColor = errorRed
		hint := "enter to dismiss"
		if queued > 1 {
			hint += " • " + plural(queued-1, "more message")
		}
		content.WriteString(dialogHelpStyle.Render(hint))
	}

	boxWidth := min(max(width/2, 40), max(width-4, 1))
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Width(boxWidth).
		Render(content.String())

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color("0")),
	)
}
