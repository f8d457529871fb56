package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/garapadev/garapagent/internal/agent"
	"github.com/garapadev/garapagent/internal/bridge"
	"github.com/garapadev/garapagent/internal/chat"
	"github.com/garapadev/garapagent/internal/config"
	"github.com/garapadev/garapagent/internal/docs"
	"github.com/garapadev/garapagent/internal/format"
	"github.com/garapadev/garapagent/internal/history"
	"github.com/garapadev/garapagent/internal/host"
	"github.com/garapadev/garapagent/internal/prompts"
	"github.com/garapadev/garapagent/internal/roles"
	"github.com/garapadev/garapagent/internal/telegram"
	"github.com/garapadev/garapagent/internal/tui"
	"github.com/garapadev/garapagent/internal/workspace"
)

const version = "0.1.0"

var bridgeAddr string

var rootCmd = &cobra.Command{
	Use:   "garapagent",
	Short: "GarapaAgent - a role-driven coding assistant",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat()
	},
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat in the current workspace",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the editor bridge over a websocket",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

var telegramCmd = &cobra.Command{
	Use:   "telegram",
	Short: "Serve the assistant over Telegram",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTelegram()
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Scaffold the default roles into the current workspace",
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		res, err := roles.ScaffoldDefaults(cwd)
		if err != nil {
			return err
		}
		fmt.Printf("📁 %s\n✅ Created %d file(s), kept %d existing file(s).\n", res.Dir, res.Created, res.Skipped)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("garapagent " + version)
	},
}

func init() {
	serveCmd.Flags().StringVar(&bridgeAddr, "addr", "", "bridge listen address (overrides config)")
	rootCmd.AddCommand(chatCmd, serveCmd, telegramCmd, initCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildEngine wires a full engine for the workspace at cwd.
func buildEngine(cwd string) (*chat.Engine, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	wc, err := config.LoadWorkspace(cwd)
	if err != nil {
		return nil, nil, err
	}
	wc.Apply(cfg)

	provider, err := agent.NewProvider(agent.ProviderConfig{
		Provider: cfg.Provider,
		APIKey:   cfg.APIKey,
		Model:    cfg.Model,
		BaseURL:  cfg.BaseURL,
	})
	if err != nil {
		return nil, nil, err
	}

	composer := prompts.NewComposer(docs.NewFetcher(wc.ExtraDocHosts...))

	hist, err := history.Open(cwd)
	if err != nil {
		log.Printf("⚠️ History disabled: %v", err)
		hist = nil
	}

	engine := chat.New(provider, cfg.Model, composer, host.NewNativeHost(cwd), workspace.NewInfo(cwd), hist)
	return engine, cfg, nil
}

func runChat() error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	engine, cfg, err := buildEngine(cwd)
	if err != nil {
		return err
	}

	if isatty.IsTerminal(os.Stdin.Fd()) {
		model := tui.NewModel(engine, cfg.Model, cwd)
		_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
		return err
	}
	return runPipedChat(engine)
}

// runPipedChat reads messages line by line, one exchange per line. Used
// when stdin is not a terminal.
func runPipedChat(engine *chat.Engine) error {
	renderer := format.NewRenderer()
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		stream := &cliStream{renderer: renderer}
		if err := engine.HandleMessage(context.Background(), text, stream); err != nil {
			return err
		}
		stream.finish()
	}
	return scanner.Err()
}

type cliStream struct {
	renderer *format.Renderer
	streamed bool
}

func (s *cliStream) Markdown(text string) {
	fmt.Print(s.renderer.Render(text))
	fmt.Println()
}

func (s *cliStream) Fragment(delta string) {
	s.streamed = true
	fmt.Print(delta)
}

func (s *cliStream) Progress(text string) {
	fmt.Fprintln(os.Stderr, text)
}

func (s *cliStream) finish() {
	if s.streamed {
		fmt.Println()
	}
}

func runServe() error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	_, cfg, err := buildEngine(cwd)
	if err != nil {
		return err
	}

	addr := cfg.BridgeAddr
	if bridgeAddr != "" {
		addr = bridgeAddr
	}

	srv := bridge.NewServer(addr, func(info workspace.Info) *chat.Engine {
		engine, _, err := buildEngine(info.Root)
		if err == nil {
			return engine
		}
		log.Printf("⚠️ Engine for %q fell back to server workspace: %v", info.Root, err)
		engine, _, err = buildEngine(cwd)
		if err != nil {
			// nil tells the server to drop this connection.
			log.Printf("⚠️ Fallback engine failed: %v", err)
			return nil
		}
		return engine
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return srv.Start(ctx)
}

func runTelegram() error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	_, cfg, err := buildEngine(cwd)
	if err != nil {
		return err
	}
	if cfg.TelegramToken == "" {
		return fmt.Errorf("no telegram token: set TELEGRAM_BOT_TOKEN or telegram_token in %s", config.Path())
	}

	bot, err := telegram.New(cfg.TelegramToken, cfg.AllowedUserIDs, func() *chat.Engine {
		engine, _, err := buildEngine(cwd)
		if err != nil {
			log.Fatalf("Failed to build engine: %v", err)
		}
		return engine
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return bot.Start(ctx)
}
