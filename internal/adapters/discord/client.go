package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"Saya/internal/core/domain"
	"Saya/internal/core/ports"
)

// dgClient implements the ports.ChatClient port on top of a discordgo
// session. All lookups hit the REST API, never the gateway cache, so a
// member who joined seconds ago still resolves.
type dgClient struct {
	session *discordgo.Session
	log     zerolog.Logger
}

var _ ports.ChatClient = (*dgClient)(nil) // Ensure compliance

// NewClient creates a new Discord client adapter.
func NewClient(session *discordgo.Session, baseLogger *zerolog.Logger) ports.ChatClient {
	return &dgClient{
		session: session,
		log:     baseLogger.With().Str("component", "discord_client").Logger(),
	}
}

func (c *dgClient) User(ctx context.Context, userID string) (*ports.User, error) {
	u, err := c.session.User(userID)
	if err != nil {
		return nil, translateRESTError(err)
	}
	user := convertUser(u)
	return &user, nil
}

func (c *dgClient) Member(ctx context.Context, guildID, userID string) (*ports.Member, error) {
	m, err := c.session.GuildMember(guildID, userID)
	if err != nil {
		return nil, translateRESTError(err)
	}
	return convertMember(guildID, m), nil
}

func (c *dgClient) Guild(ctx context.Context, guildID string) (*ports.Guild, error) {
	g, err := c.session.Guild(guildID)
	if err != nil {
		return nil, translateRESTError(err)
	}
	return &ports.Guild{ID: g.ID, Name: g.Name}, nil
}

func (c *dgClient) SendMessage(ctx context.Context, params ports.SendMessageParams) (string, error) {
	send := &discordgo.MessageSend{
		Content:    params.Content,
		Embeds:     toMessageEmbeds(params.Embeds),
		Components: toComponents(params.Buttons),
	}

	msg, err := c.session.ChannelMessageSendComplex(params.ChannelID, send)
	if err != nil {
		c.log.Error().Err(err).Str("channel_id", params.ChannelID).Msg("Failed to send message")
		return "", translateRESTError(err)
	}
	return msg.ID, nil
}

// EditMessageButtons swaps the controls on an existing message. Only the
// components field is patched, so embeds stay untouched.
func (c *dgClient) EditMessageButtons(ctx context.Context, channelID, messageID string, buttons [][]ports.Button) error {
	components := toComponents(buttons)
	edit := discordgo.NewMessageEdit(channelID, messageID)
	edit.Components = &components

	if _, err := c.session.ChannelMessageEditComplex(edit); err != nil {
		c.log.Error().Err(err).
			Str("channel_id", channelID).
			Str("message_id", messageID).
			Msg("Failed to edit message components")
		return translateRESTError(err)
	}
	return nil
}

func (c *dgClient) RecentMessages(ctx context.Context, channelID string, limit int) ([]ports.Message, error) {
	msgs, err := c.session.ChannelMessages(channelID, limit, "", "", "")
	if err != nil {
		return nil, translateRESTError(err)
	}

	out := make([]ports.Message, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, convertMessage(m))
	}
	return out, nil
}

func (c *dgClient) AddRole(ctx context.Context, guildID, userID, roleID string) error {
	if err := c.session.GuildMemberRoleAdd(guildID, userID, roleID); err != nil {
		c.log.Error().Err(err).
			Str("guild_id", guildID).
			Str("user_id", userID).
			Str("role_id", roleID).
			Msg("Failed to add role")
		return translateRESTError(err)
	}
	return nil
}

func (c *dgClient) SendDirectMessage(ctx context.Context, userID string, embed ports.Embed) error {
	dm, err := c.session.UserChannelCreate(userID)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDMUndeliverable, err)
	}

	if _, err := c.session.ChannelMessageSendEmbed(dm.ID, toMessageEmbed(embed)); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDMUndeliverable, err)
	}
	return nil
}

func (c *dgClient) Respond(ctx context.Context, ref ports.InteractionRef, embed ports.Embed, ephemeral bool) error {
	data := &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{toMessageEmbed(embed)},
	}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}

	err := c.session.InteractionRespond(toInteraction(ref), &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		return translateRESTError(err)
	}
	return nil
}

func (c *dgClient) Followup(ctx context.Context, ref ports.InteractionRef, embed ports.Embed, ephemeral bool) error {
	params := &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{toMessageEmbed(embed)},
	}
	if ephemeral {
		params.Flags = discordgo.MessageFlagsEphemeral
	}

	if _, err := c.session.FollowupMessageCreate(toInteraction(ref), true, params); err != nil {
		return translateRESTError(err)
	}
	return nil
}

func (c *dgClient) ShowModal(ctx context.Context, ref ports.InteractionRef, modal ports.Modal) error {
	components := make([]discordgo.MessageComponent, 0, len(modal.Inputs))
	for _, in := range modal.Inputs {
		style := discordgo.TextInputShort
		if in.Paragraph {
			style = discordgo.TextInputParagraph
		}
		components = append(components, discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:    in.CustomID,
					Label:       in.Label,
					Placeholder: in.Placeholder,
					Style:       style,
					Required:    in.Required,
					MaxLength:   in.MaxLength,
				},
			},
		})
	}

	err := c.session.InteractionRespond(toInteraction(ref), &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID:   modal.CustomID,
			Title:      modal.Title,
			Components: components,
		},
	})
	if err != nil {
		return translateRESTError(err)
	}
	return nil
}

// toInteraction rebuilds the minimal interaction discordgo needs for
// responses and follow-ups.
func toInteraction(ref ports.InteractionRef) *discordgo.Interaction {
	return &discordgo.Interaction{
		ID:    ref.ID,
		AppID: ref.AppID,
		Token: ref.Token,
	}
}

// translateRESTError maps well-known Discord API error codes onto domain
// sentinels so the core can branch with errors.Is.
func translateRESTError(err error) error {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) || restErr.Message == nil {
		return err
	}

	switch restErr.Message.Code {
	case discordgo.ErrCodeUnknownMember, discordgo.ErrCodeUnknownUser:
		return fmt.Errorf("%w: %v", domain.ErrUnknownMember, err)
	case discordgo.ErrCodeUnknownChannel:
		return fmt.Errorf("%w: %v", domain.ErrUnknownChannel, err)
	case discordgo.ErrCodeCannotSendMessagesToThisUser:
		return fmt.Errorf("%w: %v", domain.ErrDMUndeliverable, err)
	default:
		return err
	}
}
