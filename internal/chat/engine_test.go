package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/garapadev/garapagent/internal/agent"
	"github.com/garapadev/garapagent/internal/docs"
	"github.com/garapadev/garapagent/internal/prompts"
	"github.com/garapadev/garapagent/internal/roles"
	"github.com/garapadev/garapagent/internal/workspace"
)

// bufferStream captures everything an engine renders.
type bufferStream struct {
	blocks    []string
	fragments []string
}

func (b *bufferStream) Markdown(text string)  { b.blocks = append(b.blocks, text) }
func (b *bufferStream) Fragment(delta string) { b.fragments = append(b.fragments, delta) }
func (b *bufferStream) Progress(string)       {}

func (b *bufferStream) allMarkdown() string { return strings.Join(b.blocks, "\n") }

// scriptedProvider replies with canned text and records the last request.
type scriptedProvider struct {
	reply   string
	err     error
	lastReq *agent.ChatRequest
	calls   int
}

func (p *scriptedProvider) Name() string { return "scripted" }

func (p *scriptedProvider) ChatStream(_ context.Context, req *agent.ChatRequest, callback agent.StreamCallback) error {
	p.lastReq = req
	p.calls++
	if p.err != nil {
		return p.err
	}
	// Deliver in two chunks to exercise streaming.
	half := len(p.reply) / 2
	for _, part := range []string{p.reply[:half], p.reply[half:]} {
		if part == "" {
			continue
		}
		if err := callback(&agent.StreamChunk{Delta: part}); err != nil {
			return err
		}
	}
	return callback(&agent.StreamChunk{StopReason: "end_turn"})
}

// recordingHost is an in-memory workspace for action dispatch.
type recordingHost struct {
	root     string
	files    map[string]string
	commands []string
	searches []string
}

func newRecordingHost(root string) *recordingHost {
	return &recordingHost{root: root, files: make(map[string]string)}
}

func (h *recordingHost) Root() string { return h.root }

func (h *recordingHost) ReadFile(path string) ([]byte, error) {
	content, ok := h.files[path]
	if !ok {
		return nil, fmt.Errorf("open %s: no such file", path)
	}
	return []byte(content), nil
}

func (h *recordingHost) WriteFile(path string, data []byte) error {
	h.files[path] = string(data)
	return nil
}

func (h *recordingHost) FileExists(path string) bool { _, ok := h.files[path]; return ok }

func (h *recordingHost) RunInTerminal(command string) error {
	h.commands = append(h.commands, command)
	return nil
}

func (h *recordingHost) SearchProject(query string) error {
	h.searches = append(h.searches, query)
	return nil
}

func newTestEngine(t *testing.T, provider agent.Provider) (*Engine, *recordingHost) {
	t.Helper()
	root := t.TempDir()
	h := newRecordingHost(root)
	composer := prompts.NewComposer(docs.NewFetcher())
	return New(provider, "", composer, h, workspace.NewInfo(root), nil), h
}

func TestHelpCommand(t *testing.T) {
	e, _ := newTestEngine(t, &scriptedProvider{})
	out := &bufferStream{}

	if err := e.HandleMessage(context.Background(), "/help", out); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.allMarkdown(), "Available Commands") {
		t.Errorf("help output = %q", out.allMarkdown())
	}
}

// Surfaces like Telegram can deliver two quick messages from different
// goroutines. The engine must serialize them itself: each call sees its own
// stream for its whole duration and every reply comes through complete.
func TestConcurrentMessagesAreSerialized(t *testing.T) {
	provider := &scriptedProvider{reply: "Goroutines are lightweight threads."}
	e, _ := newTestEngine(t, provider)

	const callers = 4
	streams := make([]*bufferStream, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		streams[i] = &bufferStream{}
		wg.Add(1)
		go func(out *bufferStream) {
			defer wg.Done()
			if err := e.HandleMessage(context.Background(), "explain goroutines", out); err != nil {
				t.Errorf("HandleMessage: %v", err)
			}
		}(streams[i])
	}
	wg.Wait()

	if provider.calls != callers {
		t.Errorf("provider calls = %d, want %d", provider.calls, callers)
	}
	for i, out := range streams {
		if got := strings.Join(out.fragments, ""); got != provider.reply {
			t.Errorf("caller %d streamed reply = %q", i, got)
		}
	}
}

func TestAgentModeToggle(t *testing.T) {
	e, _ := newTestEngine(t, &scriptedProvider{})
	out := &bufferStream{}
	ctx := context.Background()

	if err := e.HandleMessage(ctx, "/agent on", out); err != nil {
		t.Fatal(err)
	}
	if !e.State().AgentMode() {
		t.Fatal("agent mode should be on")
	}

	if err := e.HandleMessage(ctx, "/agent", out); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.allMarkdown(), "enabled") {
		t.Errorf("status output = %q", out.allMarkdown())
	}

	if err := e.HandleMessage(ctx, "/agent off", out); err != nil {
		t.Fatal(err)
	}
	if e.State().AgentMode() {
		t.Fatal("agent mode should be off")
	}
}

func TestRoleSelectionFuzzy(t *testing.T) {
	provider := &scriptedProvider{reply: "ok"}
	e, h := newTestEngine(t, provider)
	out := &bufferStream{}
	ctx := context.Background()

	if _, err := roles.ScaffoldDefaults(h.Root()); err != nil {
		t.Fatal(err)
	}

	if err := e.HandleMessage(ctx, "/role front", out); err != nil {
		t.Fatal(err)
	}
	role := e.State().ActiveRole()
	if role == nil || role.Name != "frontend-developer" {
		t.Fatalf("active role = %+v, want frontend-developer", role)
	}

	out = &bufferStream{}
	if err := e.HandleMessage(ctx, "/role zzz", out); err != nil {
		t.Fatal(err)
	}
	got := out.allMarkdown()
	if !strings.Contains(got, "No role matches") || !strings.Contains(got, "frontend-developer") {
		t.Errorf("miss output should list available roles: %q", got)
	}
	// A failed lookup must not disturb the active role.
	if e.State().ActiveRole() == nil {
		t.Error("active role lost after failed lookup")
	}
}

func TestListRolesWithTrailingText(t *testing.T) {
	e, h := newTestEngine(t, &scriptedProvider{})
	out := &bufferStream{}

	if _, err := roles.ScaffoldDefaults(h.Root()); err != nil {
		t.Fatal(err)
	}

	// Prefix match routes this to the listing, not to content handling.
	if err := e.HandleMessage(context.Background(), "/roles please", out); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.allMarkdown(), "Available Roles") {
		t.Errorf("output = %q", out.allMarkdown())
	}
}

func TestClearRole(t *testing.T) {
	e, _ := newTestEngine(t, &scriptedProvider{})
	out := &bufferStream{}
	ctx := context.Background()

	if err := e.HandleMessage(ctx, "/clear", out); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.allMarkdown(), "No role is active") {
		t.Errorf("output = %q", out.allMarkdown())
	}

	e.State().SetRole(roles.Role{Name: "backend-architect", Content: "# Backend"})
	out = &bufferStream{}
	if err := e.HandleMessage(ctx, "/clear", out); err != nil {
		t.Fatal(err)
	}
	if e.State().ActiveRole() != nil {
		t.Error("role should be cleared")
	}
	if !strings.Contains(out.allMarkdown(), "backend-architect") {
		t.Errorf("output = %q", out.allMarkdown())
	}
}

func TestPlainChatStreams(t *testing.T) {
	provider := &scriptedProvider{reply: "Goroutines are lightweight threads."}
	e, _ := newTestEngine(t, provider)
	out := &bufferStream{}

	if err := e.HandleMessage(context.Background(), "explain goroutines", out); err != nil {
		t.Fatal(err)
	}

	if got := strings.Join(out.fragments, ""); got != provider.reply {
		t.Errorf("streamed reply = %q", got)
	}
	if provider.lastReq.Temperature != chatTemperature || provider.lastReq.MaxTokens != chatMaxTokens {
		t.Errorf("chat sampling = %v/%v", provider.lastReq.Temperature, provider.lastReq.MaxTokens)
	}
	forwarded := provider.lastReq.Messages[0].Content
	if !strings.Contains(forwarded, "User: explain goroutines") {
		t.Errorf("forwarding pattern missing: %q", forwarded)
	}
}

func TestAgentCreatesFile(t *testing.T) {
	reply := "Creating the file now.\n\n```action:create-file\npath: teste.js\nconsole.log(\"hello world\");\n```\n"
	provider := &scriptedProvider{reply: reply}
	e, h := newTestEngine(t, provider)
	out := &bufferStream{}
	ctx := context.Background()

	if err := e.HandleMessage(ctx, "/agent on", out); err != nil {
		t.Fatal(err)
	}
	if err := e.HandleMessage(ctx, "criar um arquivo teste.js com hello world", out); err != nil {
		t.Fatal(err)
	}

	if got := h.files["teste.js"]; got != "console.log(\"hello world\");" {
		t.Errorf("file content = %q", got)
	}
	if provider.lastReq.Temperature != agentTemperature || provider.lastReq.MaxTokens != agentMaxTokens {
		t.Errorf("agent sampling = %v/%v", provider.lastReq.Temperature, provider.lastReq.MaxTokens)
	}
	if provider.lastReq.SystemPrompt == "" || !strings.Contains(provider.lastReq.SystemPrompt, "AGENT MODE") {
		t.Error("agent system prompt missing")
	}
	// The raw reply is surfaced alongside the action results.
	if !strings.Contains(out.allMarkdown(), "Creating the file now.") {
		t.Errorf("raw reply not surfaced: %q", out.allMarkdown())
	}
}

func TestAgentModeOffSkipsActions(t *testing.T) {
	reply := "```action:create-file\npath: teste.js\nhi\n```"
	provider := &scriptedProvider{reply: reply}
	e, h := newTestEngine(t, provider)
	out := &bufferStream{}

	if err := e.HandleMessage(context.Background(), "criar um arquivo teste.js", out); err != nil {
		t.Fatal(err)
	}
	if len(h.files) != 0 {
		t.Errorf("no file should be written with agent mode off: %v", h.files)
	}
}

func TestProviderErrorTranslated(t *testing.T) {
	provider := &scriptedProvider{err: errors.New("API error 401: Unauthorized")}
	e, _ := newTestEngine(t, provider)
	out := &bufferStream{}

	if err := e.HandleMessage(context.Background(), "hello", out); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.allMarkdown(), "Authentication error") {
		t.Errorf("output = %q", out.allMarkdown())
	}
}

func TestAgentFailureFallsBackToChat(t *testing.T) {
	provider := &scriptedProvider{err: errors.New("boom")}
	e, _ := newTestEngine(t, provider)
	out := &bufferStream{}
	ctx := context.Background()

	if err := e.HandleMessage(ctx, "/agent on", out); err != nil {
		t.Fatal(err)
	}
	if err := e.HandleMessage(ctx, "criar um arquivo teste.js", out); err != nil {
		t.Fatal(err)
	}
	// Agent call fails, plain-chat fallback fails too: two provider calls,
	// and the user still gets a translated message, never a raw error.
	if provider.calls != 2 {
		t.Errorf("provider calls = %d, want 2", provider.calls)
	}
	if len(out.blocks) == 0 {
		t.Error("expected a user-facing error message")
	}
}
