package handlers

import (
	"context"
	"strings"

	"Saya/internal/core/ports"
)

// parseUserRef turns a command argument into a user ID. Accepts a raw
// snowflake or a mention like <@123> / <@!123>.
func parseUserRef(arg string) string {
	arg = strings.TrimSuffix(strings.TrimPrefix(arg, "<@"), ">")
	arg = strings.TrimPrefix(arg, "!")
	if arg == "" {
		return ""
	}
	for _, c := range arg {
		if c < '0' || c > '9' {
			return ""
		}
	}
	return arg
}

// reply posts an embed to the channel the command came from.
func reply(ctx context.Context, chat ports.ChatClient, update *ports.Update, embed ports.Embed) error {
	_, err := chat.SendMessage(ctx, ports.SendMessageParams{
		ChannelID: update.ChannelID,
		Embeds:    []ports.Embed{embed},
	})
	return err
}
