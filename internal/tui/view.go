package tui

import (
	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.state {
	case StateAddHabit:
		return docStyle.Render(m.form.View())
	case StateConfirmDelete:
		return m.viewConfirmDelete()
	}

	var content string
	if len(m.list.Items()) == 0 {
		content = "\n  No habits yet.\n  Press 'a' to add one."
	} else {
		content = m.list.View()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render("cadence"),
		docStyle.Render(content),
		statusStyle.Render(m.status),
		m.help.View(m.keys),
	)
}

func (m Model) viewConfirmDelete() string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render("Delete this habit and all of its completions?"),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
