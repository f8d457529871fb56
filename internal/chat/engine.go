package chat

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/garapadev/garapagent/internal/agent"
	"github.com/garapadev/garapagent/internal/history"
	"github.com/garapadev/garapagent/internal/host"
	"github.com/garapadev/garapagent/internal/prompts"
	"github.com/garapadev/garapagent/internal/router"
	"github.com/garapadev/garapagent/internal/session"
	"github.com/garapadev/garapagent/internal/workspace"
)

// Plain chat favors fluency, the agent path favors determinism and needs
// room for action payloads.
const (
	chatTemperature  = 0.7
	chatMaxTokens    = 1000
	agentTemperature = 0.2
	agentMaxTokens   = 4000
)

// ResponseStream is the surface a reply is rendered onto. The TUI, the
// Telegram bot and the editor bridge each implement it.
type ResponseStream interface {
	// Markdown emits a complete markdown block.
	Markdown(text string)
	// Fragment emits one streamed piece of a model reply.
	Fragment(delta string)
	// Progress emits a transient status line.
	Progress(text string)
}

// Engine processes inbound messages: slash commands through the router,
// everything else as content for the model. One Engine serves one
// conversation; messages are handled one at a time, in arrival order.
type Engine struct {
	provider agent.Provider
	model    string
	composer *prompts.Composer
	executor *agent.Executor
	state    *session.State
	router   *router.Router
	hist     *history.Log
	info     workspace.Info
	host     host.Host

	// mu serializes HandleMessage. Surfaces may deliver updates from
	// multiple goroutines; the engine guarantees one-at-a-time processing
	// itself rather than trusting every caller to.
	mu sync.Mutex

	// Set for the duration of one HandleMessage call, under mu.
	out ResponseStream
	ctx context.Context
}

// New wires an engine. hist may be nil to disable persistent history.
func New(provider agent.Provider, model string, composer *prompts.Composer, h host.Host, info workspace.Info, hist *history.Log) *Engine {
	e := &Engine{
		provider: provider,
		model:    model,
		composer: composer,
		executor: agent.NewExecutor(h),
		state:    session.New(),
		hist:     hist,
		info:     info,
		host:     h,
	}
	e.router = e.buildRouter()
	return e
}

// State exposes the session state, mainly for surfaces that show it.
func (e *Engine) State() *session.State {
	return e.state
}

// SetWorkspaceInfo replaces the workspace context. Connected editors call
// this as the user moves between files; the next prompt picks it up.
func (e *Engine) SetWorkspaceInfo(info workspace.Info) {
	e.info = info
}

// buildRouter registers the command table. Order is priority: the more
// specific prefixes come first, "/role " keeps "/roles" reachable.
func (e *Engine) buildRouter() *router.Router {
	r := router.New()
	r.Handle("/help", e.cmdHelp)
	r.Handle("/init", e.cmdInit)
	r.Handle("/setup", e.cmdSetup)
	r.Handle("/agent on", e.cmdAgentOn)
	r.Handle("/agent off", e.cmdAgentOff)
	r.Handle("/agent", e.cmdAgentStatus)
	r.Handle("/mode", e.cmdAgentStatus)
	r.Handle("/role ", e.cmdSelectRole)
	r.Handle("/rules", e.cmdListRoles)
	r.Handle("/roles", e.cmdListRoles)
	r.Handle("/clear", e.cmdClearRole)
	r.Handle("/status", e.cmdStatus)
	return r
}

// HandleMessage fully processes one inbound message before returning.
// Concurrent calls are serialized in arrival order. Unrecognized "/x" text
// falls through to content handling on purpose.
func (e *Engine) HandleMessage(ctx context.Context, message string, out ResponseStream) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.out = out
	e.ctx = ctx
	defer func() { e.out = nil; e.ctx = nil }()

	handled, err := e.router.Dispatch(message)
	if err != nil {
		out.Markdown(agent.TranslateError(err))
		return nil
	}
	if handled {
		return nil
	}
	return e.handleContent(ctx, message, out)
}

func (e *Engine) handleContent(ctx context.Context, message string, out ResponseStream) error {
	if e.hist != nil {
		e.hist.Append("user", message)
	}

	if e.state.AgentMode() && agent.IsActionable(message) {
		err := e.runAgent(ctx, message, out)
		if err == nil {
			return nil
		}
		// Agent path failures degrade to plain chat instead of surfacing
		// a raw error.
		log.Printf("⚠️ Agent path failed, falling back to chat: %v", err)
	}

	return e.plainChat(ctx, message, out)
}

func (e *Engine) plainChat(ctx context.Context, message string, out ResponseStream) error {
	composed := e.composer.Compose(ctx, e.state, e.info.Summary())

	var reply strings.Builder
	err := e.provider.ChatStream(ctx, &agent.ChatRequest{
		Model:       e.model,
		Messages:    []agent.Message{{Role: "user", Content: prompts.Forward(composed, message)}},
		Temperature: chatTemperature,
		MaxTokens:   chatMaxTokens,
	}, func(chunk *agent.StreamChunk) error {
		if chunk.Delta != "" {
			reply.WriteString(chunk.Delta)
			out.Fragment(chunk.Delta)
		}
		return nil
	})
	if err != nil {
		out.Markdown(agent.TranslateError(err))
		return nil
	}

	if e.hist != nil {
		e.hist.Append("assistant", reply.String())
	}
	return nil
}

// runAgent drives the action protocol: agent prompt, full reply, parsed
// actions dispatched in order, then the raw reply as the narrative.
func (e *Engine) runAgent(ctx context.Context, message string, out ResponseStream) error {
	out.Progress("🤖 Agent working...")

	prompt := prompts.BuildAgentPrompt(e.state, e.info.Summary())

	var reply strings.Builder
	err := e.provider.ChatStream(ctx, &agent.ChatRequest{
		Model:        e.model,
		Messages:     []agent.Message{{Role: "user", Content: message}},
		SystemPrompt: prompt,
		Temperature:  agentTemperature,
		MaxTokens:    agentMaxTokens,
	}, func(chunk *agent.StreamChunk) error {
		reply.WriteString(chunk.Delta)
		return nil
	})
	if err != nil {
		return err
	}

	actions := agent.ParseActions(reply.String())
	results := e.executor.Dispatch(actions)
	for _, res := range results {
		if res.Err != nil {
			out.Markdown(fmt.Sprintf("⚠️ %s: %s", res.Kind, res.Summary))
		} else {
			out.Markdown(fmt.Sprintf("✅ %s", res.Summary))
		}
	}

	// Actions and narrative are both always surfaced.
	out.Markdown(reply.String())

	if e.hist != nil {
		e.hist.Append("assistant", reply.String())
	}
	return nil
}
