package format

import (
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Renderer renders assistant markdown for a terminal. When stdout is not a
// TTY (pipes, CI) the markdown passes through untouched.
type Renderer struct {
	tr    *glamour.TermRenderer
	plain bool
}

func NewRenderer() *Renderer {
	fd := os.Stdout.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return &Renderer{plain: true}
	}

	style := glamour.WithAutoStyle()
	if termenv.EnvColorProfile() == termenv.Ascii {
		style = glamour.WithStandardStyle("notty")
	}

	tr, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(100))
	if err != nil {
		return &Renderer{plain: true}
	}
	return &Renderer{tr: tr}
}

// Render returns the styled text, or the input verbatim in plain mode.
func (r *Renderer) Render(markdown string) string {
	if r.plain || r.tr == nil {
		return markdown
	}
	out, err := r.tr.Render(markdown)
	if err != nil {
		return markdown
	}
	return strings.TrimRight(out, "\n") + "\n"
}
