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
	bot.RegisterCommand(NewUserInfoHandler)
}

// userInfoHandler is the plugin for the userinfo prefix command. The reply
// carries the profile inspection buttons.
type userInfoHandler struct {
	log  zerolog.Logger
	chat ports.ChatClient
}

// NewUserInfoHandler creates the handler for the userinfo command.
func NewUserInfoHandler(
	_ *config.Config,
	chat ports.ChatClient,
	_ ports.GuildConfigStore,
	_ verification.Service,
	baseLogger *zerolog.Logger,
) ports.CommandHandler {
	return &userInfoHandler{
		log:  baseLogger.With().Str("component", "userinfo_handler").Logger(),
		chat: chat,
	}
}

func (h *userInfoHandler) Name() string { return "userinfo" }

func (h *userInfoHandler) Aliases() []string { return []string{"whois"} }

func (h *userInfoHandler) Handle(ctx context.Context, update *ports.Update) error {
	userID := update.UserID
	if len(update.Args) > 0 {
		userID = parseUserRef(update.Args[0])
		if userID == "" {
			return reply(ctx, h.chat, update, messages.Error(
				"Invalid User",
				"Mention a user or pass their ID, like `userinfo @someone`.",
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

	builder := messages.New(fmt.Sprintf("User Info: %s 🔍", user.Tag), "").
		WithField("ID", user.ID, true).
		WithField("Mention", user.Mention, true).
		WithField("Account Created", fmt.Sprintf("<t:%d:R>", user.CreatedAt.Unix()), true)

	// Guild-side details are best-effort; the user may not be a member here.
	if member, err := h.chat.Member(ctx, update.GuildID, userID); err == nil {
		builder.WithField("Joined Server", fmt.Sprintf("<t:%d:R>", member.JoinedAt.Unix()), true).
			WithField("Roles", fmt.Sprintf("%d", len(member.RoleIDs)), true)
	}

	buttons := [][]ports.Button{{
		{Label: "🖼️ Avatar", CustomID: avatarButtonPrefix + user.ID, Style: ports.ButtonSecondary},
		{Label: "🎨 Banner", CustomID: bannerButtonPrefix + user.ID, Style: ports.ButtonSecondary},
		{Label: "🛡️ Permissions", CustomID: permissionsButtonPrefix + user.ID, Style: ports.ButtonSecondary},
	}}

	_, err = h.chat.SendMessage(ctx, ports.SendMessageParams{
		ChannelID: update.ChannelID,
		Embeds:    []ports.Embed{builder.Build()},
		Buttons:   buttons,
	})
	return err
}
