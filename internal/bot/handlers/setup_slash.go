package handlers

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"Saya/internal/bot"
	"Saya/internal/bot/messages"
	"Saya/internal/bot/verification"
	"Saya/internal/core/domain"
	"Saya/internal/core/ports"
	"Saya/internal/shared/config"
)

func init() {
	bot.RegisterSlash(NewSetupHandler)
}

// setupHandler is the plugin for the /setup slash command. It writes the
// per-guild verification configuration.
type setupHandler struct {
	log   zerolog.Logger
	chat  ports.ChatClient
	store ports.GuildConfigStore
}

// NewSetupHandler creates the handler for the /setup command.
func NewSetupHandler(
	_ *config.Config,
	chat ports.ChatClient,
	store ports.GuildConfigStore,
	_ verification.Service,
	baseLogger *zerolog.Logger,
) ports.SlashHandler {
	return &setupHandler{
		log:   baseLogger.With().Str("component", "setup_handler").Logger(),
		chat:  chat,
		store: store,
	}
}

func (h *setupHandler) Command() ports.SlashCommand {
	return ports.SlashCommand{
		Name:        "setup",
		Description: "Configure the verification system for this server",
		Options: []ports.SlashOption{
			{Type: ports.OptionChannel, Name: "channel", Description: "Channel for moderator notifications", Required: true},
			{Type: ports.OptionRole, Name: "role", Description: "Role granted to verified members", Required: true},
		},
	}
}

func (h *setupHandler) Handle(ctx context.Context, update *ports.Update) error {
	if update.Member == nil || !domain.CanManageGuild(update.Member.Permissions) {
		return h.chat.Respond(ctx, update.Interaction, messages.Error(
			"Missing Permissions",
			"You need the **Manage Server** permission to configure verification.",
		), true)
	}

	channelID := update.Options["channel"]
	roleID := update.Options["role"]
	if channelID == "" || roleID == "" {
		return h.chat.Respond(ctx, update.Interaction, messages.Error(
			"Missing Options",
			"Both a notification channel and a verified role are required.",
		), true)
	}

	cfg := domain.GuildConfig{
		VerifiedRoleID:  roleID,
		NotifyChannelID: channelID,
	}
	if err := h.store.Set(ctx, update.GuildID, cfg); err != nil {
		h.log.Error().Err(err).Str("guild_id", update.GuildID).Msg("Failed to save guild config")
		return err
	}

	h.log.Info().
		Str("guild_id", update.GuildID).
		Str("channel_id", channelID).
		Str("role_id", roleID).
		Msg("Verification configured")

	return h.chat.Respond(ctx, update.Interaction, messages.Success(
		"Verification Configured ✅",
		fmt.Sprintf(
			"The verification system is ready.\n\n"+
				"**Notification channel:** <#%s>\n"+
				"**Verified role:** <@&%s>\n\n"+
				"Use `/panel` to post the verification panel.",
			channelID, roleID,
		),
	), true)
}
