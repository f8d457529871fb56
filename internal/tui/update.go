package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		taCmd tea.Cmd
		vpCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyEnter:
			text := strings.TrimSpace(m.Textarea.Value())
			if text == "" || m.IsLoading {
				return m, nil
			}
			if text == "/exit" || text == "/quit" {
				return m, tea.Quit
			}
			m.Textarea.Reset()
			m.send(text)
			m.refreshViewport()
			return m, m.Spinner.Tick
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.Viewport.Width = msg.Width
		m.Viewport.Height = msg.Height - 4
		m.Textarea.SetWidth(msg.Width - 2)
		m.refreshViewport()

	case StreamMsg:
		if msg.Done {
			if m.current != "" {
				m.blocks = append(m.blocks, m.renderMarkdown(m.current))
				m.current = ""
			}
			m.IsLoading = false
			m.Status = ""
		} else {
			m.current += msg.Content
		}
		m.refreshViewport()
		return m, m.waitForMsg()

	case MarkdownMsg:
		m.blocks = append(m.blocks, m.renderMarkdown(msg.Content))
		m.refreshViewport()
		return m, m.waitForMsg()

	case ProgressMsg:
		m.Status = msg.Text
		return m, m.waitForMsg()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		if m.IsLoading {
			return m, cmd
		}
		return m, nil
	}

	m.Textarea, taCmd = m.Textarea.Update(msg)
	m.Viewport, vpCmd = m.Viewport.Update(msg)
	return m, tea.Batch(taCmd, vpCmd)
}

func (m *Model) refreshViewport() {
	content := strings.Join(m.blocks, "\n")
	if m.current != "" {
		content += "\n" + m.current
	}
	m.Viewport.SetContent(content)
	m.Viewport.GotoBottom()
}

func (m *Model) renderMarkdown(text string) string {
	if m.Renderer == nil {
		return text
	}
	out, err := m.Renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}
