package docs

import (
	"regexp"
	"strings"
)

var (
	scriptPattern    = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	stylePattern     = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	blockTagPattern  = regexp.MustCompile(`(?i)</?(h[1-6]|p|div|section|article)[^>]*>`)
	listItemOpen     = regexp.MustCompile(`(?i)<(li|dd)[^>]*>`)
	listItemClose    = regexp.MustCompile(`(?i)</(li|dd)>`)
	listTagPattern   = regexp.MustCompile(`(?i)</?(ul|ol|dl)[^>]*>`)
	anyTagPattern    = regexp.MustCompile(`<[^>]*>`)
	blankRunPattern  = regexp.MustCompile(`\n\s*\n`)
	spaceRunPattern  = regexp.MustCompile(`[ \t]+`)
)

// HTMLToText reduces an HTML page to readable plain text: scripts and styles
// are removed with their content, block-level tags become newlines, list
// items become "- " bullets, every other tag is stripped, and whitespace
// runs are collapsed.
func HTMLToText(html string) string {
	text := scriptPattern.ReplaceAllString(html, "")
	text = stylePattern.ReplaceAllString(text, "")

	text = blockTagPattern.ReplaceAllString(text, "\n")
	text = listItemOpen.ReplaceAllString(text, "\n- ")
	text = listItemClose.ReplaceAllString(text, "\n")
	text = listTagPattern.ReplaceAllString(text, "\n")
	text = anyTagPattern.ReplaceAllString(text, "")

	text = blankRunPattern.ReplaceAllString(text, "\n")
	text = spaceRunPattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
