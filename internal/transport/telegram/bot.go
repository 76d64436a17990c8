package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sandevgo/wearbot/internal/config"
	"github.com/sandevgo/wearbot/internal/core"
	"github.com/sandevgo/wearbot/internal/service/command"
	"github.com/sandevgo/wearbot/pkg/log"
	tele "gopkg.in/telebot.v3"
)

const baseContextKey = "base_context"

type Bot struct {
	bot       *tele.Bot
	cfg       *config.TelegramConfig
	assistant core.Assistant
	router    core.CmdRouter
	mode      *command.ModeState
	sender    *sender
	ownerID   int64
}

func NewBot(
	ctx context.Context,
	cfg *config.TelegramConfig,
	assistant core.Assistant,
	router core.CmdRouter,
	mode *command.ModeState,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:       b,
		cfg:       cfg,
		assistant: assistant,
		router:    router,
		mode:      mode,
		sender:    newSender(b),
		ownerID:   cfg.OwnerID,
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
			if c.Sender().ID != bot.ownerID {
				return nil // Ignore unauthorized users
			}
			return next(c)
		}
	})

	b.Handle(tele.OnText, bot.handleMessage)

	return bot, nil
}

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

func (b *Bot) handleMessage(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)
	logger := log.FromCtx(ctx)
	sessionID := fmt.Sprintf("telegram-%d", c.Chat().ID)

	// Notify user we are working
	_ = c.Notify(tele.Typing)

	text := strings.TrimSpace(c.Text())

	if reply, handled := b.router.Execute(ctx, sessionID, text); handled {
		return b.sender.sendMarkdown(ctx, c.Chat(), reply, false)
	}

	mode, query, err := command.SplitModeToken(b.mode.Get(), text)
	if err != nil {
		logger.Warn().Err(err).Msg("invalid mode token, using session default")
	}
	reply := b.assistant.Run(ctx, sessionID, mode, query)

	if err := b.sender.sendMarkdown(ctx, c.Chat(), reply, false); err != nil {
		logger.Error().Err(err).Msg("failed to send telegram reply")
	}
	return nil
}
