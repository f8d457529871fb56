package telegram

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/gofrs/flock"

	"github.com/garapadev/garapagent/internal/chat"
	"github.com/garapadev/garapagent/internal/format"
	"github.com/garapadev/garapagent/internal/paths"
)

// Bot serves the assistant over Telegram long polling. Each chat gets its
// own engine, so roles and agent mode are per-conversation. A file lock
// guarantees a single polling instance per machine: Telegram rejects
// concurrent getUpdates consumers for the same token.
type Bot struct {
	bot       *bot.Bot
	allowed   map[int64]bool
	newEngine func() *chat.Engine
	lock      *flock.Flock

	mu      sync.Mutex
	engines map[int64]*chat.Engine
}

// New creates the Telegram surface. newEngine is called once per chat.
func New(token string, allowedIDs []int64, newEngine func() *chat.Engine) (*Bot, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram token is empty")
	}

	allowed := make(map[int64]bool)
	for _, id := range allowedIDs {
		allowed[id] = true
	}

	b := &Bot{
		allowed:   allowed,
		newEngine: newEngine,
		engines:   make(map[int64]*chat.Engine),
		lock:      flock.New(filepath.Join(paths.GetGlobalDir(), "telegram.lock")),
	}

	// Handlers run synchronously: the library dispatches each update in
	// its own goroutine otherwise, and two quick messages in one chat
	// would hit the same engine concurrently.
	tgBot, err := bot.New(token,
		bot.WithDefaultHandler(b.handleUpdate),
		bot.WithNotAsyncHandlers(),
	)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}
	b.bot = tgBot
	return b, nil
}

// Start acquires the single-instance lock and begins long polling. It
// blocks until the context is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	if err := paths.EnsureDir(paths.GetGlobalDir()); err != nil {
		return err
	}
	locked, err := b.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire telegram lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another garapagent telegram instance is already running")
	}
	defer b.lock.Unlock()

	log.Println("🤖 Telegram bot started")
	b.bot.Start(ctx)
	return nil
}

func (b *Bot) engineFor(chatID int64) *chat.Engine {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, ok := b.engines[chatID]
	if !ok {
		e = b.newEngine()
		b.engines[chatID] = e
	}
	return e
}

func (b *Bot) handleUpdate(ctx context.Context, tgBot *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}
	message := update.Message
	chatID := message.Chat.ID

	if len(b.allowed) > 0 && !b.allowed[message.From.ID] {
		log.Printf("Unauthorized access attempt from user %d", message.From.ID)
		return
	}

	if strings.HasPrefix(message.Text, "/start") {
		b.send(ctx, chatID, "👋 Welcome to GarapaAgent!\n\nSend `/help` for the available commands, or just ask a question.")
		return
	}

	b.sendTyping(ctx, chatID)

	stream := &chatStream{bot: b, ctx: ctx, chatID: chatID}
	if err := b.engineFor(chatID).HandleMessage(ctx, message.Text, stream); err != nil {
		log.Printf("⚠️ Telegram message handling failed: %v", err)
	}
	stream.flush()
}

func (b *Bot) send(ctx context.Context, chatID int64, text string) {
	if text == "" {
		return
	}
	_, err := b.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      format.ToTelegramHTML(text),
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		log.Printf("Failed to send telegram message: %v", err)
	}
}

func (b *Bot) sendTyping(ctx context.Context, chatID int64) {
	b.bot.SendChatAction(ctx, &bot.SendChatActionParams{
		ChatID: chatID,
		Action: models.ChatActionTyping,
	})
}

// chatStream renders engine output into Telegram messages. Markdown blocks
// go out immediately; streamed fragments are accumulated and flushed as one
// message, since Telegram has no incremental message updates worth the
// edit-rate limits.
type chatStream struct {
	bot    *Bot
	ctx    context.Context
	chatID int64
	buf    strings.Builder
}

func (s *chatStream) Markdown(text string) {
	s.bot.send(s.ctx, s.chatID, text)
}

func (s *chatStream) Fragment(delta string) {
	s.buf.WriteString(delta)
}

func (s *chatStream) Progress(string) {
	s.bot.sendTyping(s.ctx, s.chatID)
}

func (s *chatStream) flush() {
	if s.buf.Len() == 0 {
		return
	}
	s.bot.send(s.ctx, s.chatID, s.buf.String())
	s.buf.Reset()
}
