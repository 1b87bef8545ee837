package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"Saya/internal/bot"
	"Saya/internal/bot/messages"
	"Saya/internal/bot/verification"
	"Saya/internal/core/domain"
	"Saya/internal/core/ports"
	"Saya/internal/shared/config"
)

// Profile inspection buttons posted under the userinfo embed.
const (
	avatarButtonPrefix      = "avatar_"
	bannerButtonPrefix      = "banner_"
	permissionsButtonPrefix = "permissions_"
)

func init() {
	bot.RegisterComponent(NewAvatarButtonHandler)
	bot.RegisterComponent(NewBannerButtonHandler)
	bot.RegisterComponent(NewPermissionsButtonHandler)
}

// profileButtonHandler serves one of the userinfo inspection buttons. The
// lookup and embed shape differ per prefix; everything else is shared.
type profileButtonHandler struct {
	log    zerolog.Logger
	chat   ports.ChatClient
	prefix string
	show   func(ctx context.Context, h *profileButtonHandler, userID string, update *ports.Update) error
}

// NewAvatarButtonHandler creates the avatar inspection button handler.
func NewAvatarButtonHandler(
	_ *config.Config,
	chat ports.ChatClient,
	_ ports.GuildConfigStore,
	_ verification.Service,
	baseLogger *zerolog.Logger,
) ports.ComponentHandler {
	return &profileButtonHandler{
		log:    baseLogger.With().Str("component", "avatar_button_handler").Logger(),
		chat:   chat,
		prefix: avatarButtonPrefix,
		show:   showAvatar,
	}
}

// NewBannerButtonHandler creates the banner inspection button handler.
func NewBannerButtonHandler(
	_ *config.Config,
	chat ports.ChatClient,
	_ ports.GuildConfigStore,
	_ verification.Service,
	baseLogger *zerolog.Logger,
) ports.ComponentHandler {
	return &profileButtonHandler{
		log:    baseLogger.With().Str("component", "banner_button_handler").Logger(),
		chat:   chat,
		prefix: bannerButtonPrefix,
		show:   showBanner,
	}
}

// NewPermissionsButtonHandler creates the permissions inspection button
// handler.
func NewPermissionsButtonHandler(
	_ *config.Config,
	chat ports.ChatClient,
	_ ports.GuildConfigStore,
	_ verification.Service,
	baseLogger *zerolog.Logger,
) ports.ComponentHandler {
	return &profileButtonHandler{
		log:    baseLogger.With().Str("component", "permissions_button_handler").Logger(),
		chat:   chat,
		prefix: permissionsButtonPrefix,
		show:   showPermissions,
	}
}

func (h *profileButtonHandler) Prefix() string {
	return h.prefix
}

func (h *profileButtonHandler) Handle(ctx context.Context, update *ports.Update) error {
	userID := strings.TrimPrefix(update.CustomID, h.prefix)
	if userID == "" {
		return h.chat.Respond(ctx, update.Interaction, messages.Error(
			"Unknown Action",
			"This action was not recognized.",
		), true)
	}
	return h.show(ctx, h, userID, update)
}

func showAvatar(ctx context.Context, h *profileButtonHandler, userID string, update *ports.Update) error {
	user, err := h.chat.User(ctx, userID)
	if err != nil {
		return h.userLookupFailed(ctx, err, update)
	}
	embed := messages.New(fmt.Sprintf("Avatar of %s", user.Tag), "").
		WithImage(user.AvatarURL).
		Build()
	return h.chat.Respond(ctx, update.Interaction, embed, true)
}

func showBanner(ctx context.Context, h *profileButtonHandler, userID string, update *ports.Update) error {
	user, err := h.chat.User(ctx, userID)
	if err != nil {
		return h.userLookupFailed(ctx, err, update)
	}
	if user.BannerURL == "" {
		return h.chat.Respond(ctx, update.Interaction, messages.New(
			"No Banner",
			fmt.Sprintf("%s has no profile banner set.", user.Tag),
		).WithColor(messages.ColorAccent).Build(), true)
	}
	embed := messages.New(fmt.Sprintf("Banner of %s", user.Tag), "").
		WithImage(user.BannerURL).
		Build()
	return h.chat.Respond(ctx, update.Interaction, embed, true)
}

func showPermissions(ctx context.Context, h *profileButtonHandler, userID string, update *ports.Update) error {
	member, err := h.chat.Member(ctx, update.GuildID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownMember) {
			return h.chat.Respond(ctx, update.Interaction, messages.Error(
				"User Not Found",
				"This user is no longer on the server.",
			), true)
		}
		return err
	}

	var names []string
	for _, p := range domain.PermissionNames {
		if member.Permissions&p.Bit != 0 {
			names = append(names, p.Name)
		}
	}
	value := "None of the moderation permissions."
	if len(names) > 0 {
		value = strings.Join(names, ", ")
	}

	embed := messages.New(fmt.Sprintf("Permissions of %s", member.User.Tag), "").
		WithField("Server Permissions", value, false).
		Build()
	return h.chat.Respond(ctx, update.Interaction, embed, true)
}

func (h *profileButtonHandler) userLookupFailed(ctx context.Context, err error, update *ports.Update) error {
	if errors.Is(err, domain.ErrUnknownMember) {
		return h.chat.Respond(ctx, update.Interaction, messages.Error(
			"User Not Found",
			"This user no longer exists.",
		), true)
	}
	return err
}
