package handlers

import (
	"context"

	"github.com/rs/zerolog"

	"Saya/internal/bot"
	"Saya/internal/bot/messages"
	"Saya/internal/bot/verification"
	"Saya/internal/core/domain"
	"Saya/internal/core/ports"
	"Saya/internal/shared/config"
)

func init() {
	bot.RegisterComponent(NewApproveButtonHandler)
	bot.RegisterComponent(NewDenyButtonHandler)
}

// decisionButtonHandler routes an approve or deny button press to the
// workflow. One instance per custom-id prefix.
type decisionButtonHandler struct {
	log      zerolog.Logger
	chat     ports.ChatClient
	workflow verification.Service
	prefix   string
}

// NewApproveButtonHandler creates the handler for the approve control.
func NewApproveButtonHandler(
	_ *config.Config,
	chat ports.ChatClient,
	_ ports.GuildConfigStore,
	workflow verification.Service,
	baseLogger *zerolog.Logger,
) ports.ComponentHandler {
	return &decisionButtonHandler{
		log:      baseLogger.With().Str("component", "approve_button_handler").Logger(),
		chat:     chat,
		workflow: workflow,
		prefix:   domain.ApproveButtonPrefix,
	}
}

// NewDenyButtonHandler creates the handler for the deny control.
func NewDenyButtonHandler(
	_ *config.Config,
	chat ports.ChatClient,
	_ ports.GuildConfigStore,
	workflow verification.Service,
	baseLogger *zerolog.Logger,
) ports.ComponentHandler {
	return &decisionButtonHandler{
		log:      baseLogger.With().Str("component", "deny_button_handler").Logger(),
		chat:     chat,
		workflow: workflow,
		prefix:   domain.DenyButtonPrefix,
	}
}

func (h *decisionButtonHandler) Prefix() string {
	return h.prefix
}

func (h *decisionButtonHandler) Handle(ctx context.Context, update *ports.Update) error {
	ref, err := domain.ParseDecisionID(update.CustomID)
	if err != nil {
		h.log.Warn().Err(err).Str("custom_id", update.CustomID).Msg("Malformed decision control")
		return h.chat.Respond(ctx, update.Interaction, messages.Error(
			"Unknown Action",
			"This action was not recognized.",
		), true)
	}
	return h.workflow.Decide(ctx, ref, update)
}
