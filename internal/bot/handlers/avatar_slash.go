package handlers

import (
	"context"
	"errors"
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
	bot.RegisterSlash(NewAvatarSlashHandler)
}

// avatarSlashHandler is the plugin for the /avatar slash command.
type avatarSlashHandler struct {
	log  zerolog.Logger
	chat ports.ChatClient
}

// NewAvatarSlashHandler creates the handler for the /avatar command.
func NewAvatarSlashHandler(
	_ *config.Config,
	chat ports.ChatClient,
	_ ports.GuildConfigStore,
	_ verification.Service,
	baseLogger *zerolog.Logger,
) ports.SlashHandler {
	return &avatarSlashHandler{
		log:  baseLogger.With().Str("component", "avatar_slash_handler").Logger(),
		chat: chat,
	}
}

func (h *avatarSlashHandler) Command() ports.SlashCommand {
	return ports.SlashCommand{
		Name:        "avatar",
		Description: "Show a user's avatar",
		Options: []ports.SlashOption{
			{Type: ports.OptionUser, Name: "user", Description: "The user whose avatar to show", Required: false},
		},
	}
}

func (h *avatarSlashHandler) Handle(ctx context.Context, update *ports.Update) error {
	userID := update.Options["user"]
	if userID == "" {
		userID = update.UserID
	}

	user, err := h.chat.User(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownMember) {
			return h.chat.Respond(ctx, update.Interaction, messages.Error(
				"User Not Found",
				"No user with that ID exists.",
			), true)
		}
		return err
	}

	embed := messages.New(fmt.Sprintf("Avatar of %s", user.Tag), "").
		WithImage(user.AvatarURL).
		Build()
	return h.chat.Respond(ctx, update.Interaction, embed, false)
}
