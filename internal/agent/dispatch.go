package agent

import (
	"fmt"
	"log"
	"strings"

	"github.com/garapadev/garapagent/internal/host"
)

// ActionResult reports the outcome of one dispatched action. Err is nil on
// success; Summary is a short user-facing line either way.
type ActionResult struct {
	Kind    ActionKind
	Summary string
	Err     error
}

// Executor dispatches parsed actions against a host. Each action runs
// independently: a malformed or failing block never prevents the blocks
// around it from executing.
type Executor struct {
	host host.Host
}

func NewExecutor(h host.Host) *Executor {
	return &Executor{host: h}
}

// Dispatch executes actions in order and returns one result per action.
func (e *Executor) Dispatch(actions []ActionRequest) []ActionResult {
	results := make([]ActionResult, 0, len(actions))
	for _, action := range actions {
		result := e.dispatchOne(action)
		if result.Err != nil {
			log.Printf("⚠️ Action %s failed: %v", action.Kind, result.Err)
		} else {
			log.Printf("✅ Action %s: %s", action.Kind, result.Summary)
		}
		results = append(results, result)
	}
	return results
}

func (e *Executor) dispatchOne(action ActionRequest) ActionResult {
	result := ActionResult{Kind: action.Kind}
	switch action.Kind {
	case ActionCreateFile:
		result.Summary, result.Err = e.createFile(action.RawParams)
	case ActionEditFile:
		result.Summary, result.Err = e.editFile(action.RawParams)
	case ActionReadFile:
		result.Summary, result.Err = e.readFile(action.RawParams)
	case ActionRunCommand:
		result.Summary, result.Err = e.runCommand(action.RawParams)
	case ActionSearchCode:
		result.Summary, result.Err = e.searchCode(action.RawParams)
	default:
		result.Err = fmt.Errorf("unknown action kind %q", action.Kind)
	}
	if result.Err != nil {
		result.Summary = result.Err.Error()
	}
	return result
}

func (e *Executor) createFile(params string) (string, error) {
	path, content, err := splitPathHeader(params)
	if err != nil {
		return "", err
	}
	if err := e.host.WriteFile(path, []byte(content)); err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	return fmt.Sprintf("created %s", path), nil
}

func (e *Executor) editFile(params string) (string, error) {
	path, body, err := splitPathHeader(params)
	if err != nil {
		return "", err
	}

	search, replace := splitSearchReplace(body)

	existing, err := e.host.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("edit %s: %w", path, err)
	}

	var updated string
	if search == "" {
		// No search term means replace the whole file.
		updated = replace
	} else {
		content := string(existing)
		if !strings.Contains(content, search) {
			return "", fmt.Errorf("edit %s: search text not found", path)
		}
		updated = strings.Replace(content, search, replace, 1)
	}

	if err := e.host.WriteFile(path, []byte(updated)); err != nil {
		return "", fmt.Errorf("edit %s: %w", path, err)
	}
	return fmt.Sprintf("edited %s", path), nil
}

func (e *Executor) readFile(params string) (string, error) {
	path, _, err := splitPathHeader(params)
	if err != nil {
		return "", err
	}
	data, err := e.host.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return fmt.Sprintf("read %s (%d bytes)", path, len(data)), nil
}

func (e *Executor) runCommand(params string) (string, error) {
	command := strings.TrimSpace(params)
	if command == "" {
		return "", fmt.Errorf("run-command: empty command")
	}
	if err := e.host.RunInTerminal(command); err != nil {
		return "", fmt.Errorf("run %q: %w", command, err)
	}
	return fmt.Sprintf("running `%s`", command), nil
}

func (e *Executor) searchCode(params string) (string, error) {
	query := strings.TrimSpace(params)
	if query == "" {
		return "", fmt.Errorf("search-code: empty query")
	}
	if err := e.host.SearchProject(query); err != nil {
		return "", fmt.Errorf("search %q: %w", query, err)
	}
	return fmt.Sprintf("searching for %q", query), nil
}

// splitPathHeader parses the "path: <p>" header line off a block body and
// returns the path and the remaining lines.
func splitPathHeader(params string) (path, rest string, err error) {
	line := params
	if idx := strings.IndexByte(params, '\n'); idx >= 0 {
		line = params[:idx]
		rest = params[idx+1:]
	}
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "path:") {
		return "", "", fmt.Errorf("missing path header")
	}
	path = strings.TrimSpace(strings.TrimPrefix(line, "path:"))
	if path == "" {
		return "", "", fmt.Errorf("missing path header")
	}
	return path, rest, nil
}

// splitSearchReplace parses the optional "search: <line>" header and the
// "replace:" section of an edit-file body. Everything after "replace:" is
// the replacement text, verbatim.
func splitSearchReplace(body string) (search, replace string) {
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "search:") {
			search = strings.TrimSpace(strings.TrimPrefix(trimmed, "search:"))
			continue
		}
		if trimmed == "replace:" || strings.HasPrefix(trimmed, "replace:") {
			after := strings.TrimPrefix(trimmed, "replace:")
			replace = strings.Join(lines[i+1:], "\n")
			if strings.TrimSpace(after) != "" {
				replace = strings.TrimSpace(after) + "\n" + replace
			}
			return search, replace
		}
	}
	// No replace section: treat the whole body as the new content.
	return search, body
}
