package prompts

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/garapadev/garapagent/internal/docs"
	"github.com/garapadev/garapagent/internal/roles"
	"github.com/garapadev/garapagent/internal/session"
)

func TestComposeWithoutRole(t *testing.T) {
	c := NewComposer(docs.NewFetcher())
	st := session.New()

	got := c.Compose(context.Background(), st, "Workspace: demo")

	if !strings.HasPrefix(got, GetIdentity()) {
		t.Error("prompt does not start with the identity preamble")
	}
	if !strings.Contains(got, "Workspace: demo") {
		t.Error("prompt missing workspace summary")
	}
	if strings.Contains(got, "ACTIVE ROLE") {
		t.Error("prompt mentions a role while none is active")
	}
	if !strings.Contains(got, "GENERAL INSTRUCTIONS") {
		t.Error("prompt missing general instructions block")
	}
}

func TestComposeSectionOrdering(t *testing.T) {
	c := NewComposer(docs.NewFetcher())
	st := session.New()
	st.SetRole(roles.Role{Name: "code-mentor", Content: "# Code Mentor\nbe didactic"})

	got := c.Compose(context.Background(), st, "Workspace: demo")

	order := []string{
		GetIdentity(),
		"WORKSPACE CONTEXT",
		"ACTIVE ROLE: code-mentor",
		"be didactic",
		GetRoleClosing(),
		"GENERAL INSTRUCTIONS",
	}
	pos := -1
	for _, section := range order {
		idx := strings.Index(got, section)
		if idx < 0 {
			t.Fatalf("prompt missing section %q", section)
		}
		if idx < pos {
			t.Errorf("section %q out of order", section)
		}
		pos = idx
	}
}

func TestComposeOneBlockOrErrorPerURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/docs/ok":
			w.Write([]byte("<p>some documentation</p>"))
		default:
			http.Error(w, "nope", http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	host := strings.TrimPrefix(srv.URL, "http://")
	fetcher := docs.NewFetcher(host)
	c := NewComposer(fetcher)

	st := session.New()
	st.SetRole(roles.Role{
		Name:    "docs-role",
		Content: "# Docs\n- " + srv.URL + "/docs/ok\n- " + srv.URL + "/docs/missing\n",
	})

	got := c.Compose(context.Background(), st, "Workspace: demo")

	blocks := strings.Count(got, "--- DOCUMENTATION FROM ")
	errLines := strings.Count(got, "ERROR: could not load documentation from ")
	if blocks+errLines != 2 {
		t.Fatalf("got %d blocks + %d error lines, want exactly one output per URL (2)", blocks, errLines)
	}
	if blocks != 1 || errLines != 1 {
		t.Errorf("expected 1 block and 1 error line, got %d/%d", blocks, errLines)
	}

	// Extraction order is preserved: the successful URL comes first.
	if strings.Index(got, "/docs/ok") > strings.Index(got, "/docs/missing") {
		t.Error("documentation outputs out of extraction order")
	}
}

func TestComposeExcerptTruncation(t *testing.T) {
	long := strings.Repeat("a", docs.FetchCap) // fetcher returns up to 5000
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(long))
	}))
	defer srv.Close()

	host := strings.TrimPrefix(srv.URL, "http://")
	c := NewComposer(docs.NewFetcher(host))
	st := session.New()
	st.SetRole(roles.Role{Name: "r", Content: srv.URL + "/page"})

	got := c.Compose(context.Background(), st, "ws")

	start := strings.Index(got, "---\n") // end of the block header line
	end := strings.Index(got, "\n--- END OF DOCUMENTATION ---")
	if start < 0 || end < 0 {
		t.Fatal("documentation block not found")
	}
	excerpt := got[start+len("---\n") : end]
	if len(excerpt) > ExcerptCap+3 { // + ellipsis marker
		t.Errorf("excerpt length %d exceeds cap %d", len(excerpt), ExcerptCap)
	}
	if !strings.HasSuffix(excerpt, "...") {
		t.Error("excerpt missing ellipsis marker")
	}
}

func TestComposeExcerptKeepsRunesWhole(t *testing.T) {
	// A leading ASCII byte shifts the 2-byte runes so the cap lands mid-rune.
	long := "x" + strings.Repeat("é", docs.FetchCap/2)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(long))
	}))
	defer srv.Close()

	host := strings.TrimPrefix(srv.URL, "http://")
	c := NewComposer(docs.NewFetcher(host))
	st := session.New()
	st.SetRole(roles.Role{Name: "r", Content: srv.URL + "/page"})

	got := c.Compose(context.Background(), st, "ws")

	if !utf8.ValidString(got) {
		t.Error("excerpt truncation produced invalid UTF-8")
	}
}

func TestForward(t *testing.T) {
	got := Forward("SYSTEM", "hello there")
	if got != "SYSTEM\n\nUser: hello there" {
		t.Errorf("Forward = %q", got)
	}
}

func TestBuildAgentPromptEmbedsGrammarAndRole(t *testing.T) {
	st := session.New()
	st.SetRole(roles.Role{Name: "backend-architect", Content: "# Backend"})

	got := BuildAgentPrompt(st, "Workspace: demo")

	for _, want := range []string{
		"AGENT MODE",
		"ACTION BLOCK GRAMMAR",
		"action:create-file",
		"action:edit-file",
		"action:read-file",
		"action:run-command",
		"action:search-code",
		"ACTIVE ROLE: backend-architect",
		"Workspace: demo",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("agent prompt missing %q", want)
		}
	}
}
