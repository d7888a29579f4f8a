package telegram

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/sandevgo/brainchat/internal/core"
	"github.com/sandevgo/brainchat/internal/service/command"
	"github.com/sandevgo/brainchat/internal/service/session"
	"github.com/sandevgo/brainchat/pkg/log"
	tele "gopkg.in/telebot.v3"
)

const baseContextKey = "base_context"

// Brain is the brain client as the bot needs it.
type Brain interface {
	core.Brain
	ResolveURL(ref string) string
	FetchAsset(ctx context.Context, ref string) (io.ReadCloser, error)
}

type chatSession struct {
	ctrl   *session.Controller
	router *command.Router
}

type Bot struct {
	bot      *tele.Bot
	brain    Brain
	brainCfg core.BrainConfig
	ownerID  int64
	sender   *sender

	mu    sync.Mutex
	chats map[int64]*chatSession
}

func NewBot(
	ctx context.Context,
	cfg core.TelegramConfig,
	brainCfg core.BrainConfig,
	brain Brain,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.GetTelegramToken(),
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:      b,
		brain:    brain,
		brainCfg: brainCfg,
		ownerID:  cfg.GetTelegramOwnerID(),
		sender:   newSender(b),
		chats:    make(map[int64]*chatSession),
	}

	// Use context from Signal with logger
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	// Middleware: Only allow the owner
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if c.Sender() == nil || c.Sender().ID != bot.ownerID {
				return nil // Ignore unauthorized users
			}
			return next(c)
		}
	})

	b.Handle("/start", bot.handleStart)
	b.Handle(tele.OnText, bot.handleMessage)
	b.Handle(&tele.InlineButton{Unique: feedbackUnique}, bot.handleFeedback)

	return bot, nil
}

func (b *Bot) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)

	if err := b.bot.SetCommands(botCommands()); err != nil {
		logger.Warn().Err(err).Msg("failed to register telegram commands")
	}

	logger.Info().Int64("owner_id", b.ownerID).Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

// session returns the chat's controller, creating it on first use.
func (b *Bot) session(ctx context.Context, chat *tele.Chat) *chatSession {
	b.mu.Lock()
	defer b.mu.Unlock()

	if s, ok := b.chats[chat.ID]; ok {
		return s
	}

	view := newChatView(ctx, chat, b.sender, b.brain.FetchAsset)
	ctrl := session.NewController(b.brain, view, b.brainCfg, session.WithURLResolver(b.brain.ResolveURL))
	s := &chatSession{
		ctrl:   ctrl,
		router: command.NewSessionRouter(ctrl),
	}
	b.chats[chat.ID] = s

	log.FromCtx(ctx).Debug().Int64("chat_id", chat.ID).Msg("chat session created")
	return s
}

func (b *Bot) handleStart(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)
	s := b.session(ctx, c.Chat())

	help, _ := s.router.Execute(ctx, "/help")
	_, err := b.sender.sendMarkdown(ctx, c.Chat(), "Hi! Everything you write goes to the brain.\n\n"+help, nil)
	return err
}

func (b *Bot) handleMessage(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)
	s := b.session(ctx, c.Chat())

	// Notify user we are working
	_ = c.Notify(tele.Typing)

	if out, handled := s.router.Execute(ctx, c.Text()); handled {
		if out == "" {
			return nil
		}
		_, err := b.sender.sendMarkdown(ctx, c.Chat(), out, nil)
		return err
	}

	s.ctrl.SendMessage(ctx, c.Text())
	return nil
}

func (b *Bot) handleFeedback(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)
	logger := log.FromCtx(ctx)

	id, positive, err := parseFeedback(c.Callback().Data)
	if err != nil {
		logger.Warn().Err(err).Msg("ignoring feedback callback")
		return c.Respond()
	}

	s := b.session(ctx, c.Chat())
	if !s.ctrl.SendFeedback(ctx, id, positive) {
		return c.Respond(&tele.CallbackResponse{Text: "This reply is no longer known."})
	}
	return c.Respond(&tele.CallbackResponse{Text: "Thanks for the feedback!"})
}

// botCommands lists the slash commands for the Telegram menu.
func botCommands() []tele.Command {
	cmds := command.NewCommands(nil)
	res := make([]tele.Command, 0, len(cmds))
	for _, cmd := range cmds {
		res = append(res, tele.Command{Text: cmd.Name(), Description: cmd.Description()})
	}
	return res
}
