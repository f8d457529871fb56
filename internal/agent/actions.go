package agent

import (
	"regexp"
	"strings"
)

// ActionKind identifies what an action block asks for.
type ActionKind string

const (
	ActionCreateFile ActionKind = "create-file"
	ActionEditFile   ActionKind = "edit-file"
	ActionReadFile   ActionKind = "read-file"
	ActionRunCommand ActionKind = "run-command"
	ActionSearchCode ActionKind = "search-code"
)

// ActionRequest is one fenced action block extracted from a model reply.
// RawParams is the block body, parsed per kind at dispatch time.
type ActionRequest struct {
	Kind      ActionKind
	RawParams string
}

// actionBlockPattern matches fenced blocks tagged action:<kind>. The body
// is everything up to the closing fence.
var actionBlockPattern = regexp.MustCompile("(?s)```action:([a-z-]+)\\s*\n(.*?)```")

var knownKinds = map[ActionKind]bool{
	ActionCreateFile: true,
	ActionEditFile:   true,
	ActionReadFile:   true,
	ActionRunCommand: true,
	ActionSearchCode: true,
}

// ParseActions extracts action blocks from a reply, in textual order. A
// reply with no blocks (plain explanatory text) yields an empty slice.
// Blocks with an unknown kind tag are ignored.
func ParseActions(reply string) []ActionRequest {
	matches := actionBlockPattern.FindAllStringSubmatch(reply, -1)
	var actions []ActionRequest
	for _, m := range matches {
		kind := ActionKind(m[1])
		if !knownKinds[kind] {
			continue
		}
		actions = append(actions, ActionRequest{
			Kind:      kind,
			RawParams: strings.TrimRight(m[2], "\n"),
		})
	}
	return actions
}
