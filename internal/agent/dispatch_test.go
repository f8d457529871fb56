package agent

import (
	"fmt"
	"strings"
	"testing"
)

// fakeHost records everything the executor asks it to do.
type fakeHost struct {
	files    map[string]string
	commands []string
	searches []string
}

func newFakeHost() *fakeHost {
	return &fakeHost{files: make(map[string]string)}
}

func (h *fakeHost) Root() string { return "/workspace" }

func (h *fakeHost) ReadFile(path string) ([]byte, error) {
	content, ok := h.files[path]
	if !ok {
		return nil, fmt.Errorf("open %s: no such file", path)
	}
	return []byte(content), nil
}

func (h *fakeHost) WriteFile(path string, data []byte) error {
	h.files[path] = string(data)
	return nil
}

func (h *fakeHost) FileExists(path string) bool {
	_, ok := h.files[path]
	return ok
}

func (h *fakeHost) RunInTerminal(command string) error {
	h.commands = append(h.commands, command)
	return nil
}

func (h *fakeHost) SearchProject(query string) error {
	h.searches = append(h.searches, query)
	return nil
}

func TestDispatchCreateFile(t *testing.T) {
	h := newFakeHost()
	exec := NewExecutor(h)

	results := exec.Dispatch([]ActionRequest{{
		Kind:      ActionCreateFile,
		RawParams: "path: src/hello.js\nconsole.log(\"hello world\");",
	}})

	if len(results) != 1 || results[0].Err != nil {
		t.Fatalf("unexpected results: %+v", results)
	}
	if got := h.files["src/hello.js"]; got != "console.log(\"hello world\");" {
		t.Errorf("file content = %q", got)
	}
}

func TestDispatchEditFileSearchReplace(t *testing.T) {
	h := newFakeHost()
	h.files["app.js"] = "const x = 1;\nconst y = 2;\n"
	exec := NewExecutor(h)

	results := exec.Dispatch([]ActionRequest{{
		Kind:      ActionEditFile,
		RawParams: "path: app.js\nsearch: const y = 2;\nreplace:\nconst y = 3;",
	}})

	if results[0].Err != nil {
		t.Fatalf("edit failed: %v", results[0].Err)
	}
	if got := h.files["app.js"]; got != "const x = 1;\nconst y = 3;\n" {
		t.Errorf("file content = %q", got)
	}
}

func TestDispatchEditFileWholeReplace(t *testing.T) {
	h := newFakeHost()
	h.files["app.js"] = "old content\n"
	exec := NewExecutor(h)

	results := exec.Dispatch([]ActionRequest{{
		Kind:      ActionEditFile,
		RawParams: "path: app.js\nreplace:\nnew content",
	}})

	if results[0].Err != nil {
		t.Fatalf("edit failed: %v", results[0].Err)
	}
	if got := h.files["app.js"]; got != "new content" {
		t.Errorf("file content = %q", got)
	}
}

func TestDispatchEditFileSearchNotFound(t *testing.T) {
	h := newFakeHost()
	h.files["app.js"] = "const x = 1;\n"
	exec := NewExecutor(h)

	results := exec.Dispatch([]ActionRequest{{
		Kind:      ActionEditFile,
		RawParams: "path: app.js\nsearch: const z = 9;\nreplace:\nconst z = 10;",
	}})

	if results[0].Err == nil {
		t.Fatal("expected error for unmatched search text")
	}
	if got := h.files["app.js"]; got != "const x = 1;\n" {
		t.Errorf("file changed despite unmatched search: %q", got)
	}
}

func TestDispatchFailureIsolation(t *testing.T) {
	h := newFakeHost()
	exec := NewExecutor(h)

	// A well-formed create between two malformed blocks: the create must
	// still land, the malformed ones must each report their own failure.
	results := exec.Dispatch([]ActionRequest{
		{Kind: ActionEditFile, RawParams: "search: x\nreplace:\ny"}, // missing path
		{Kind: ActionCreateFile, RawParams: "path: ok.txt\nfine"},
		{Kind: ActionReadFile, RawParams: "path: missing.txt"},
	})

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].Err == nil {
		t.Error("malformed edit should fail")
	}
	if !strings.Contains(results[0].Summary, "path") {
		t.Errorf("edit failure summary = %q, want mention of missing path", results[0].Summary)
	}
	if results[1].Err != nil {
		t.Errorf("create should succeed: %v", results[1].Err)
	}
	if h.files["ok.txt"] != "fine" {
		t.Errorf("create did not land: %q", h.files["ok.txt"])
	}
	if results[2].Err == nil {
		t.Error("read of missing file should fail")
	}
}

func TestDispatchRunCommandAndSearch(t *testing.T) {
	h := newFakeHost()
	exec := NewExecutor(h)

	results := exec.Dispatch([]ActionRequest{
		{Kind: ActionRunCommand, RawParams: "npm install"},
		{Kind: ActionSearchCode, RawParams: "TODO handlers"},
	})

	for _, r := range results {
		if r.Err != nil {
			t.Fatalf("%s failed: %v", r.Kind, r.Err)
		}
	}
	if len(h.commands) != 1 || h.commands[0] != "npm install" {
		t.Errorf("commands = %v", h.commands)
	}
	if len(h.searches) != 1 || h.searches[0] != "TODO handlers" {
		t.Errorf("searches = %v", h.searches)
	}
}
