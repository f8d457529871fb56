package prompts

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/garapadev/garapagent/internal/docs"
	"github.com/garapadev/garapagent/internal/session"
)

// ExcerptCap bounds each documentation excerpt inlined into a prompt. The
// fetcher already caps a page at docs.FetchCap; this smaller cap bounds the
// prompt growth per document when several are injected.
const ExcerptCap = 3000

// Composer assembles layered system prompts. Documentation is re-fetched on
// every composition: role URLs change rarely but freshness matters more
// than latency at interactive rates.
type Composer struct {
	fetcher *docs.Fetcher
}

func NewComposer(fetcher *docs.Fetcher) *Composer {
	return &Composer{fetcher: fetcher}
}

// Compose builds the system prompt for plain chat: identity, workspace
// context, the active role (if any) with its documentation, the role
// closing, and the general instructions. Every filtered documentation URL
// yields exactly one block or one error line, in extraction order.
func (c *Composer) Compose(ctx context.Context, st *session.State, workspaceSummary string) string {
	var sb strings.Builder

	sb.WriteString(GetIdentity())
	sb.WriteString("\n\n====\nWORKSPACE CONTEXT\n\n")
	sb.WriteString(workspaceSummary)

	if role := st.ActiveRole(); role != nil {
		fmt.Fprintf(&sb, "\n\n====\nACTIVE ROLE: %s\n\n%s", role.Name, role.Content)
		c.writeDocumentation(ctx, &sb, role.Content)
		sb.WriteString("\n\n")
		sb.WriteString(GetRoleClosing())
	}

	sb.WriteString("\n\n")
	sb.WriteString(GetGeneralInstructions())

	prompt := sb.String()
	log.Printf("Composed prompt: ~%d tokens", EstimateTokens(prompt))
	return prompt
}

func (c *Composer) writeDocumentation(ctx context.Context, sb *strings.Builder, roleContent string) {
	urls := c.fetcher.FilterKnownDocs(docs.ExtractCandidateURLs(roleContent))
	if len(urls) == 0 {
		return
	}

	sb.WriteString("\n\n====\nLOADED DOCUMENTATION\n")
	for _, url := range urls {
		text, ok := c.fetcher.Fetch(ctx, url)
		if !ok {
			fmt.Fprintf(sb, "\nERROR: could not load documentation from %s\n", url)
			continue
		}
		text = docs.TruncateBytes(text, ExcerptCap)
		fmt.Fprintf(sb, "\n--- DOCUMENTATION FROM %s ---\n%s...\n--- END OF DOCUMENTATION ---\n", url, text)
	}
}

// Forward is the unit handed to the model: the composed system prompt
// followed by the user's message.
func Forward(composed, userMessage string) string {
	return fmt.Sprintf("%s\n\nUser: %s", composed, userMessage)
}
