package chat

import (
	"fmt"
	"strings"

	"github.com/garapadev/garapagent/internal/prompts"
	"github.com/garapadev/garapagent/internal/roles"
	"github.com/garapadev/garapagent/internal/workspace"
)

const helpText = `# 🤖 GarapaAgent Assistant - Available Commands

## 📋 Main Commands

- ` + "`/role <name>`" + ` - Activate a role (fuzzy name matching)
- ` + "`/rules`" + ` or ` + "`/roles`" + ` - List available roles
- ` + "`/clear`" + ` - Deactivate the current role
- ` + "`/init`" + ` - Scaffold the default roles into the workspace
- ` + "`/setup`" + ` - Scan the development environment
- ` + "`/agent on`" + ` / ` + "`/agent off`" + ` - Toggle agent mode
- ` + "`/agent`" + ` or ` + "`/mode`" + ` - Show agent mode status
- ` + "`/help`" + ` - Show this help
- ` + "`/status`" + ` - Show the assistant status

## 🤖 Agent Mode

With agent mode on, requests to create/edit files, run commands or search
the project are executed against the workspace. Everything else is a
normal conversation.

💡 Any other message is sent to the model as-is — including text that
starts with an unrecognized ` + "`/`" + `.
`

func (e *Engine) cmdHelp(string) error {
	e.out.Markdown(helpText)
	return nil
}

func (e *Engine) cmdInit(string) error {
	res, err := roles.ScaffoldDefaults(e.info.Root)
	if err != nil {
		return fmt.Errorf("scaffold roles: %w", err)
	}
	e.out.Markdown(fmt.Sprintf(
		"📁 Roles directory: `%s`\n\n✅ Created %d file(s), kept %d existing file(s).\n\n💡 Use `/rules` to see the available roles.",
		res.Dir, res.Created, res.Skipped))
	return nil
}

func (e *Engine) cmdSetup(string) error {
	e.out.Progress("🔍 Scanning environment...")

	osName := workspace.DetectOS()
	info := workspace.AnalyzeProject(e.info.Root)
	deps := workspace.CheckDependencies()

	wroteRules := false
	if e.info.Root != "" {
		created, err := workspace.WriteDevelopRules(e.info.Root, osName, info)
		if err != nil {
			return fmt.Errorf("write develop rules: %w", err)
		}
		wroteRules = created
	}

	e.out.Markdown(workspace.SetupReport(osName, info, deps, wroteRules))
	return nil
}

func (e *Engine) cmdAgentOn(string) error {
	e.state.SetAgentMode(true)
	e.out.Markdown("🤖 **Agent mode enabled.** I can now create and edit files, run commands and search the project on request.")
	return nil
}

func (e *Engine) cmdAgentOff(string) error {
	e.state.SetAgentMode(false)
	e.out.Markdown("💬 **Agent mode disabled.** Back to conversation only.")
	return nil
}

func (e *Engine) cmdAgentStatus(string) error {
	if e.state.AgentMode() {
		e.out.Markdown("🤖 Agent mode is **enabled**. Use `/agent off` to disable it.")
	} else {
		e.out.Markdown("💬 Agent mode is **disabled**. Use `/agent on` to enable it.")
	}
	return nil
}

func (e *Engine) cmdSelectRole(message string) error {
	query := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(message), "/role"))
	store := roles.Load(e.info.Root)

	role, ok := store.Resolve(query)
	if !ok {
		e.out.Markdown(fmt.Sprintf("❌ No role matches `%s`.\n\n%s", query, rolesListing(store)))
		return nil
	}

	e.state.SetRole(role)
	e.out.Markdown(fmt.Sprintf("🎭 Role **%s** activated: %s", role.Name, roles.Title(role.Content)))
	return nil
}

func (e *Engine) cmdListRoles(string) error {
	e.out.Markdown(rolesListing(roles.Load(e.info.Root)))
	return nil
}

func rolesListing(store *roles.Store) string {
	if store.Len() == 0 {
		return "📭 No roles found in this workspace.\n\n💡 Run `/init` to scaffold the default roles."
	}

	var sb strings.Builder
	sb.WriteString("## 🎭 Available Roles\n\n")
	for _, r := range store.All() {
		fmt.Fprintf(&sb, "- `/role %s` - %s\n", r.Name, roles.Title(r.Content))
	}
	return sb.String()
}

func (e *Engine) cmdClearRole(string) error {
	name, had := e.state.ClearRole()
	if !had {
		e.out.Markdown("ℹ️ No role is active.")
		return nil
	}
	e.out.Markdown(fmt.Sprintf("🧹 Role **%s** deactivated.", name))
	return nil
}

func (e *Engine) cmdStatus(string) error {
	var sb strings.Builder
	sb.WriteString("# 📊 GarapaAgent Assistant Status\n\n")

	sb.WriteString("## 🎭 Active Role\n")
	if role := e.state.ActiveRole(); role != nil {
		fmt.Fprintf(&sb, "✅ **%s** - %s\n\n", role.Name, roles.Title(role.Content))
	} else {
		sb.WriteString("❌ None. Use `/role <name>` to activate one.\n\n")
	}

	sb.WriteString("## 📁 Workspace\n")
	if e.info.Root != "" {
		fmt.Fprintf(&sb, "✅ **%s** (`%s`)\n\n", e.info.Name, e.info.Root)
	} else {
		sb.WriteString("❌ No workspace open.\n\n")
	}

	if e.info.ActiveFile != "" {
		sb.WriteString("## 📄 Active File\n")
		fmt.Fprintf(&sb, "`%s`", e.info.ActiveFile)
		if e.info.Language != "" {
			fmt.Fprintf(&sb, " (%s)", e.info.Language)
		}
		sb.WriteString("\n\n")
	}

	sb.WriteString("## 🤖 Agent Mode\n")
	if e.state.AgentMode() {
		sb.WriteString("✅ Enabled\n\n")
	} else {
		sb.WriteString("❌ Disabled\n\n")
	}

	composed := e.composer.Compose(e.ctx, e.state, e.info.Summary())
	fmt.Fprintf(&sb, "## 🧮 Prompt Size\n~%d tokens\n", prompts.EstimateTokens(composed))

	e.out.Markdown(sb.String())
	return nil
}
