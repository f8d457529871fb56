package prompts

import (
	"fmt"
	"strings"

	"github.com/garapadev/garapagent/internal/session"
)

// BuildAgentPrompt composes the agent-flavored system prompt. Unlike the
// plain-chat prompt it explicitly grants workspace capabilities and embeds
// the action block grammar the reply parser understands.
func BuildAgentPrompt(st *session.State, workspaceSummary string) string {
	var sb strings.Builder

	sb.WriteString(GetIdentity())
	sb.WriteString("\n\n====\nAGENT MODE\n\n")
	sb.WriteString(`You can act on the user's workspace: create and edit files, read files, run terminal commands and trigger project searches. Perform the requested task by emitting action blocks, then explain what you did.`)

	sb.WriteString("\n\n====\nWORKSPACE CONTEXT\n\n")
	sb.WriteString(workspaceSummary)

	if role := st.ActiveRole(); role != nil {
		fmt.Fprintf(&sb, "\n\n====\nACTIVE ROLE: %s\n\n%s", role.Name, role.Content)
	}

	sb.WriteString("\n\n")
	sb.WriteString(actionGrammar)
	return sb.String()
}

const fence = "```"

// actionGrammar is the fixed action-block grammar embedded into every agent
// prompt. The reply parser in internal/agent depends on this exact shape.
var actionGrammar = `====
ACTION BLOCK GRAMMAR

Emit each action as a fenced block tagged with its kind. Any number of
blocks may appear, mixed with explanatory text. Paths are relative to the
workspace root unless absolute.

Create a file (first line is the path, the rest is the content):
` + fence + `action:create-file
path: src/example.js
console.log("hello");
` + fence + `

Edit a file (search is optional; without it the content is replaced whole):
` + fence + `action:edit-file
path: src/example.js
search: console.log("hello");
replace:
console.log("hello world");
` + fence + `

Read a file:
` + fence + `action:read-file
path: src/example.js
` + fence + `

Run a terminal command (the block body is the literal command line):
` + fence + `action:run-command
npm install
` + fence + `

Search the project (the block body is the literal query):
` + fence + `action:search-code
TODO handlers
` + fence + ``
