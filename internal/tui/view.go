package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238"))
)

func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(m.Viewport.View())
	sb.WriteString("\n")

	if m.IsLoading {
		status := m.Status
		if status == "" {
			status = "Thinking..."
		}
		fmt.Fprintf(&sb, "%s %s\n", m.Spinner.View(), statusStyle.Render(status))
	} else {
		sb.WriteString("\n")
	}

	sb.WriteString(inputStyle.Render(m.Textarea.View()))
	sb.WriteString("\n")
	sb.WriteString(hintStyle.Render("enter to send • /exit to quit"))

	return sb.String()
}
