package handlers

import (
	"context"

	"github.com/rs/zerolog"

	"Saya/internal/bot"
	"Saya/internal/bot/verification"
	"Saya/internal/core/domain"
	"Saya/internal/core/ports"
	"Saya/internal/shared/config"
)

func init() {
	bot.RegisterComponent(NewVerifyButtonHandler)
}

// verifyButtonHandler starts the verification workflow when a member
// presses the panel button.
type verifyButtonHandler struct {
	log      zerolog.Logger
	workflow verification.Service
}

// NewVerifyButtonHandler creates the handler for the verification panel
// button.
func NewVerifyButtonHandler(
	_ *config.Config,
	_ ports.ChatClient,
	_ ports.GuildConfigStore,
	workflow verification.Service,
	baseLogger *zerolog.Logger,
) ports.ComponentHandler {
	return &verifyButtonHandler{
		log:      baseLogger.With().Str("component", "verify_button_handler").Logger(),
		workflow: workflow,
	}
}

func (h *verifyButtonHandler) Prefix() string {
	return domain.VerifyButtonID
}

func (h *verifyButtonHandler) Handle(ctx context.Context, update *ports.Update) error {
	h.log.Info().
		Str("guild_id", update.GuildID).
		Str("user_id", update.UserID).
		Msg("Verification requested")
	return h.workflow.Initiate(ctx, update)
}
