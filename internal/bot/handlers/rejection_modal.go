package handlers

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"Saya/internal/bot"
	"Saya/internal/bot/messages"
	"Saya/internal/bot/verification"
	"Saya/internal/core/domain"
	"Saya/internal/core/ports"
	"Saya/internal/shared/config"
)

func init() {
	bot.RegisterModal(NewRejectionModalHandler)
}

// rejectionModalHandler finishes a denial once the moderator submits the
// rejection-reason form. Reason validation happens here, before the
// workflow is involved.
type rejectionModalHandler struct {
	log      zerolog.Logger
	chat     ports.ChatClient
	workflow verification.Service
}

// NewRejectionModalHandler creates the handler for rejection-reason
// submissions.
func NewRejectionModalHandler(
	_ *config.Config,
	chat ports.ChatClient,
	_ ports.GuildConfigStore,
	workflow verification.Service,
	baseLogger *zerolog.Logger,
) ports.ModalHandler {
	return &rejectionModalHandler{
		log:      baseLogger.With().Str("component", "rejection_modal_handler").Logger(),
		chat:     chat,
		workflow: workflow,
	}
}

func (h *rejectionModalHandler) Prefix() string {
	return domain.RejectionModalPrefix
}

func (h *rejectionModalHandler) Handle(ctx context.Context, update *ports.Update) error {
	requesterID, err := domain.ParseRejectionModalID(update.CustomID)
	if err != nil {
		h.log.Warn().Err(err).Str("custom_id", update.CustomID).Msg("Malformed rejection form")
		return h.chat.Respond(ctx, update.Interaction, messages.Error(
			"Unknown Action",
			"This form was not recognized.",
		), true)
	}

	reason := strings.TrimSpace(update.Inputs[domain.RejectionReasonInputID])
	if reason == "" {
		return h.chat.Respond(ctx, update.Interaction, messages.Error(
			"Reason Required",
			"A rejection reason cannot be empty.",
		), true)
	}
	// The limit is in characters, matching the modal's MaxLength.
	if utf8.RuneCountInString(reason) > domain.MaxRejectionReasonLen {
		return h.chat.Respond(ctx, update.Interaction, messages.Error(
			"Reason Too Long",
			fmt.Sprintf("The rejection reason must be at most %d characters.", domain.MaxRejectionReasonLen),
		), true)
	}

	return h.workflow.ResolveDenial(ctx, requesterID, reason, update)
}
