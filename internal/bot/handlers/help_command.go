package handlers

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"Saya/internal/bot"
	"Saya/internal/bot/messages"
	"Saya/internal/bot/verification"
	"Saya/internal/core/ports"
	"Saya/internal/shared/config"
)

func init() {
	bot.RegisterCommand(NewHelpHandler)
}

// helpHandler is the plugin for the help command.
type helpHandler struct {
	log  zerolog.Logger
	chat ports.ChatClient
	cfg  *config.Config
}

// NewHelpHandler creates the handler for the help command.
func NewHelpHandler(
	cfg *config.Config,
	chat ports.ChatClient,
	_ ports.GuildConfigStore,
	_ verification.Service,
	baseLogger *zerolog.Logger,
) ports.CommandHandler {
	return &helpHandler{
		log:  baseLogger.With().Str("component", "help_handler").Logger(),
		chat: chat,
		cfg:  cfg,
	}
}

func (h *helpHandler) Name() string { return "help" }

func (h *helpHandler) Aliases() []string { return []string{"commands"} }

func (h *helpHandler) Handle(ctx context.Context, update *ports.Update) error {
	p := h.cfg.CommandPrefix
	embed := messages.New(fmt.Sprintf("%s Help 📖", h.cfg.BotName), "All the ways to talk to me.").
		WithField("Commands", fmt.Sprintf(
			"`%shelp` — this overview\n"+
				"`%savatar [@user]` — show a user's avatar\n"+
				"`%suserinfo [@user]` — inspect a user's profile",
			p, p, p,
		), false).
		WithField("Slash Commands", "`/verify` — request verification\n"+
			"`/avatar` — show a user's avatar\n"+
			"`/setup` — configure verification (moderators)\n"+
			"`/panel` — post the verification panel (moderators)", false).
		Build()
	return reply(ctx, h.chat, update, embed)
}
