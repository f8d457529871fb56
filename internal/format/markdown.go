package format

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	codeBlockPattern  = regexp.MustCompile("(?s)```([a-zA-Z]*)\n?(.*?)```")
	inlineCodePattern = regexp.MustCompile("`([^`]+)`")
	headerPattern     = regexp.MustCompile(`(?m)^#{1,6}\s+(.*)$`)
	boldPattern       = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicPattern     = regexp.MustCompile(`\*([^*]+)\*`)
	strikePattern     = regexp.MustCompile(`~~([^~]+)~~`)
	linkPattern       = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	bulletPattern     = regexp.MustCompile(`(?m)^[\s]*[-*+][\s]+(.*)$`)
)

// ToTelegramHTML converts assistant Markdown into the HTML subset Telegram
// accepts. Code spans are lifted out first so their content survives the
// escaping and inline passes untouched.
func ToTelegramHTML(text string) string {
	if text == "" {
		return ""
	}

	blocks := make(map[string]string)
	text = codeBlockPattern.ReplaceAllStringFunc(text, func(m string) string {
		match := codeBlockPattern.FindStringSubmatch(m)
		id := fmt.Sprintf("{CB-%d}", len(blocks))
		if lang := match[1]; lang != "" {
			blocks[id] = fmt.Sprintf("<pre><code class=\"language-%s\">%s</code></pre>", lang, EscapeHTML(match[2]))
		} else {
			blocks[id] = fmt.Sprintf("<pre><code>%s</code></pre>", EscapeHTML(match[2]))
		}
		return id
	})
	text = inlineCodePattern.ReplaceAllStringFunc(text, func(m string) string {
		match := inlineCodePattern.FindStringSubmatch(m)
		id := fmt.Sprintf("{IL-%d}", len(blocks))
		blocks[id] = fmt.Sprintf("<code>%s</code>", EscapeHTML(match[1]))
		return id
	})

	text = EscapeHTML(text)
	text = headerPattern.ReplaceAllString(text, "<b>$1</b>")
	text = boldPattern.ReplaceAllString(text, "<b>$1</b>")
	text = italicPattern.ReplaceAllString(text, "<i>$1</i>")
	text = strikePattern.ReplaceAllString(text, "<s>$1</s>")
	text = linkPattern.ReplaceAllString(text, "<a href=\"$2\">$1</a>")
	text = bulletPattern.ReplaceAllString(text, "• $1")

	for id, html := range blocks {
		text = strings.ReplaceAll(text, id, html)
	}
	return text
}

// EscapeHTML escapes the characters Telegram's HTML parser treats specially.
func EscapeHTML(text string) string {
	text = strings.ReplaceAll(text, "&", "&amp;")
	text = strings.ReplaceAll(text, "<", "&lt;")
	text = strings.ReplaceAll(text, ">", "&gt;")
	return text
}
