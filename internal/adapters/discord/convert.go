package discord

import (
	"time"

	"github.com/bwmarrin/discordgo"

	"Saya/internal/core/ports"
)

// Conversions between the library-agnostic port structures and discordgo's
// wire types. Kept in one place so the rest of the adapter stays readable.

func toMessageEmbed(e ports.Embed) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       e.Title,
		Description: e.Description,
		Color:       e.Color,
	}
	for _, f := range e.Fields {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   f.Name,
			Value:  f.Value,
			Inline: f.Inline,
		})
	}
	if e.Footer != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: e.Footer}
	}
	if e.ImageURL != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: e.ImageURL}
	}
	if !e.Timestamp.IsZero() {
		embed.Timestamp = e.Timestamp.Format(time.RFC3339)
	}
	return embed
}

func toMessageEmbeds(embeds []ports.Embed) []*discordgo.MessageEmbed {
	if len(embeds) == 0 {
		return nil
	}
	out := make([]*discordgo.MessageEmbed, 0, len(embeds))
	for _, e := range embeds {
		out = append(out, toMessageEmbed(e))
	}
	return out
}

func fromMessageEmbed(e *discordgo.MessageEmbed) ports.Embed {
	embed := ports.Embed{
		Title:       e.Title,
		Description: e.Description,
		Color:       e.Color,
	}
	for _, f := range e.Fields {
		embed.Fields = append(embed.Fields, ports.EmbedField{
			Name:   f.Name,
			Value:  f.Value,
			Inline: f.Inline,
		})
	}
	if e.Footer != nil {
		embed.Footer = e.Footer.Text
	}
	if e.Image != nil {
		embed.ImageURL = e.Image.URL
	}
	return embed
}

func toButtonStyle(s ports.ButtonStyle) discordgo.ButtonStyle {
	switch s {
	case ports.ButtonSecondary:
		return discordgo.SecondaryButton
	case ports.ButtonSuccess:
		return discordgo.SuccessButton
	case ports.ButtonDanger:
		return discordgo.DangerButton
	case ports.ButtonLink:
		return discordgo.LinkButton
	default:
		return discordgo.PrimaryButton
	}
}

func fromButtonStyle(s discordgo.ButtonStyle) ports.ButtonStyle {
	switch s {
	case discordgo.SecondaryButton:
		return ports.ButtonSecondary
	case discordgo.SuccessButton:
		return ports.ButtonSuccess
	case discordgo.DangerButton:
		return ports.ButtonDanger
	case discordgo.LinkButton:
		return ports.ButtonLink
	default:
		return ports.ButtonPrimary
	}
}

func toComponents(rows [][]ports.Button) []discordgo.MessageComponent {
	if len(rows) == 0 {
		return nil
	}
	out := make([]discordgo.MessageComponent, 0, len(rows))
	for _, row := range rows {
		actionsRow := discordgo.ActionsRow{}
		for _, b := range row {
			actionsRow.Components = append(actionsRow.Components, discordgo.Button{
				Label:    b.Label,
				CustomID: b.CustomID,
				URL:      b.URL,
				Style:    toButtonStyle(b.Style),
				Disabled: b.Disabled,
			})
		}
		out = append(out, actionsRow)
	}
	return out
}

func fromComponents(components []discordgo.MessageComponent) [][]ports.Button {
	var rows [][]ports.Button
	for _, c := range components {
		row, ok := c.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		var buttons []ports.Button
		for _, inner := range row.Components {
			b, ok := inner.(*discordgo.Button)
			if !ok {
				continue
			}
			buttons = append(buttons, ports.Button{
				Label:    b.Label,
				CustomID: b.CustomID,
				URL:      b.URL,
				Style:    fromButtonStyle(b.Style),
				Disabled: b.Disabled,
			})
		}
		if len(buttons) > 0 {
			rows = append(rows, buttons)
		}
	}
	return rows
}

func convertMessage(m *discordgo.Message) ports.Message {
	msg := ports.Message{
		ID:        m.ID,
		ChannelID: m.ChannelID,
		Buttons:   fromComponents(m.Components),
	}
	for _, e := range m.Embeds {
		msg.Embeds = append(msg.Embeds, fromMessageEmbed(e))
	}
	return msg
}

func convertUser(u *discordgo.User) ports.User {
	created, _ := discordgo.SnowflakeTimestamp(u.ID)
	return ports.User{
		ID:        u.ID,
		Username:  u.Username,
		Tag:       u.String(),
		Mention:   u.Mention(),
		AvatarURL: u.AvatarURL("1024"),
		BannerURL: u.BannerURL("1024"),
		CreatedAt: created,
	}
}

func convertMember(guildID string, m *discordgo.Member) *ports.Member {
	member := &ports.Member{
		GuildID:     guildID,
		JoinedAt:    m.JoinedAt,
		RoleIDs:     m.Roles,
		Permissions: m.Permissions,
	}
	if m.User != nil {
		member.User = convertUser(m.User)
	}
	return member
}
