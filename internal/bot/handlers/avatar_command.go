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
	bot.RegisterCommand(NewAvatarCommandHandler)
}

// avatarCommandHandler is the plugin for the avatar prefix command.
type avatarCommandHandler struct {
	log  zerolog.Logger
	chat ports.ChatClient
}

// NewAvatarCommandHandler creates the handler for the avatar command.
func NewAvatarCommandHandler(
	_ *config.Config,
	chat ports.ChatClient,
	_ ports.GuildConfigStore,
	_ verification.Service,
	baseLogger *zerolog.Logger,
) ports.CommandHandler {
	return &avatarCommandHandler{
		log:  baseLogger.With().Str("component", "avatar_command_handler").Logger(),
		chat: chat,
	}
}

func (h *avatarCommandHandler) Name() string { return "avatar" }

func (h *avatarCommandHandler) Aliases() []string { return []string{"av"} }

func (h *avatarCommandHandler) Handle(ctx context.Context, update *ports.Update) error {
	userID := update.UserID
	if len(update.Args) > 0 {
		userID = parseUserRef(update.Args[0])
		if userID == "" {
			return reply(ctx, h.chat, update, messages.Error(
				"Invalid User",
				"Mention a user or pass their ID, like `avatar @someone`.",
			))
		}
	}

	user, err := h.chat.User(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownMember) {
			return reply(ctx, h.chat, update, messages.Error("User Not Found", "No user with that ID exists."))
		}
		return err
	}

	embed := messages.New(fmt.Sprintf("Avatar of %s", user.Tag), "").
		WithImage(user.AvatarURL).
		Build()
	return reply(ctx, h.chat, update, embed)
}
