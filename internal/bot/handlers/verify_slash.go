package handlers

import (
	"context"

	"github.com/rs/zerolog"

	"Saya/internal/bot"
	"Saya/internal/bot/verification"
	"Saya/internal/core/ports"
	"Saya/internal/shared/config"
)

func init() {
	bot.RegisterSlash(NewVerifySlashHandler)
}

// verifySlashHandler is the /verify entry point into the same workflow the
// panel button uses.
type verifySlashHandler struct {
	log      zerolog.Logger
	workflow verification.Service
}

// NewVerifySlashHandler creates the handler for the /verify command.
func NewVerifySlashHandler(
	_ *config.Config,
	_ ports.ChatClient,
	_ ports.GuildConfigStore,
	workflow verification.Service,
	baseLogger *zerolog.Logger,
) ports.SlashHandler {
	return &verifySlashHandler{
		log:      baseLogger.With().Str("component", "verify_slash_handler").Logger(),
		workflow: workflow,
	}
}

func (h *verifySlashHandler) Command() ports.SlashCommand {
	return ports.SlashCommand{
		Name:        "verify",
		Description: "Request verification on this server",
	}
}

func (h *verifySlashHandler) Handle(ctx context.Context, update *ports.Update) error {
	h.log.Info().
		Str("guild_id", update.GuildID).
		Str("user_id", update.UserID).
		Msg("Verification requested via slash command")
	return h.workflow.Initiate(ctx, update)
}
