package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"

	"github.com/garapadev/garapagent/internal/chat"
)

// -- Messages --

// StreamMsg carries one streamed reply fragment; Done marks the end of a
// whole exchange.
type StreamMsg struct {
	Content string
	Done    bool
}

// MarkdownMsg is a complete block (command output, action report).
type MarkdownMsg struct {
	Content string
}

// ProgressMsg is a transient status line shown next to the spinner.
type ProgressMsg struct {
	Text string
}

// -- Model --

type Model struct {
	Engine  *chat.Engine
	MsgChan chan tea.Msg

	Viewport  viewport.Model
	Textarea  textarea.Model
	Spinner   spinner.Model
	IsLoading bool
	Status    string

	Renderer *glamour.TermRenderer

	// Finished blocks plus the reply currently streaming in.
	blocks  []string
	current string

	width  int
	height int
}

func NewModel(engine *chat.Engine, modelName, cwd string) Model {
	renderer, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
		glamour.WithColorProfile(termenv.ANSI),
	)

	ta := textarea.New()
	ta.Placeholder = "Ask GarapaAgent..."
	ta.Focus()
	ta.Prompt = ""
	ta.CharLimit = 0
	ta.SetHeight(1)
	ta.ShowLineNumbers = false

	vp := viewport.New(80, 20)

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	welcome := fmt.Sprintf(`Welcome to GarapaAgent
Model: %s
Workspace: %s

Type /help for commands.
`, modelName, cwd)
	vp.SetContent(welcome)

	return Model{
		Engine:   engine,
		MsgChan:  make(chan tea.Msg, 64),
		Viewport: vp,
		Textarea: ta,
		Spinner:  sp,
		Renderer: renderer,
		blocks:   []string{welcome},
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.Spinner.Tick,
		m.waitForMsg(),
	)
}

func (m Model) waitForMsg() tea.Cmd {
	return func() tea.Msg {
		return <-m.MsgChan
	}
}

// send hands a message to the engine off the UI goroutine. Output arrives
// back as messages on MsgChan.
func (m *Model) send(text string) {
	m.IsLoading = true
	m.Status = ""
	m.blocks = append(m.blocks, "> "+text)

	go func() {
		stream := &channelStream{ch: m.MsgChan}
		if err := m.Engine.HandleMessage(context.Background(), text, stream); err != nil {
			m.MsgChan <- MarkdownMsg{Content: fmt.Sprintf("❌ %v", err)}
		}
		m.MsgChan <- StreamMsg{Done: true}
	}()
}

// channelStream bridges the engine's output into bubbletea messages.
type channelStream struct {
	ch chan tea.Msg
}

func (s *channelStream) Markdown(text string)  { s.ch <- MarkdownMsg{Content: text} }
func (s *channelStream) Fragment(delta string) { s.ch <- StreamMsg{Content: delta} }
func (s *channelStream) Progress(text string)  { s.ch <- ProgressMsg{Text: text} }
