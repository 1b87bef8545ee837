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
	bot.RegisterSlash(NewPanelHandler)
}

// panelHandler is the plugin for the /panel slash command. It posts the
// public verification panel into the current channel.
type panelHandler struct {
	log   zerolog.Logger
	chat  ports.ChatClient
	store ports.GuildConfigStore
}

// NewPanelHandler creates the handler for the /panel command.
func NewPanelHandler(
	_ *config.Config,
	chat ports.ChatClient,
	store ports.GuildConfigStore,
	_ verification.Service,
	baseLogger *zerolog.Logger,
) ports.SlashHandler {
	return &panelHandler{
		log:   baseLogger.With().Str("component", "panel_handler").Logger(),
		chat:  chat,
		store: store,
	}
}

func (h *panelHandler) Command() ports.SlashCommand {
	return ports.SlashCommand{
		Name:        "panel",
		Description: "Post the verification panel in this channel",
	}
}

func (h *panelHandler) Handle(ctx context.Context, update *ports.Update) error {
	if update.Member == nil || !domain.CanManageGuild(update.Member.Permissions) {
		return h.chat.Respond(ctx, update.Interaction, messages.Error(
			"Missing Permissions",
			"You need the **Manage Server** permission to post the panel.",
		), true)
	}

	cfg, err := h.store.Get(ctx, update.GuildID)
	if err != nil {
		return err
	}
	if cfg == nil {
		return h.chat.Respond(ctx, update.Interaction, messages.Error(
			"System Not Configured",
			"Run `/setup` before posting the verification panel.",
		), true)
	}

	panel := messages.New(
		"Server Verification 📋",
		"Press the button below to request verification.\n\n"+
			"A moderator will review your request and you will be notified of the outcome by direct message.",
	).WithColor(messages.ColorAccent).Build()

	_, err = h.chat.SendMessage(ctx, ports.SendMessageParams{
		ChannelID: update.ChannelID,
		Embeds:    []ports.Embed{panel},
		Buttons: [][]ports.Button{{
			{Label: "✅ Verify", CustomID: domain.VerifyButtonID, Style: ports.ButtonSuccess},
		}},
	})
	if err != nil {
		h.log.Error().Err(err).Str("channel_id", update.ChannelID).Msg("Failed to post panel")
		return err
	}

	return h.chat.Respond(ctx, update.Interaction, messages.Success(
		"Panel Posted ✅",
		"The verification panel is live in this channel.",
	), true)
}
